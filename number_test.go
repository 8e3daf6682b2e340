package datatypes_test

// datatypes is a rule based type validation library for Go.
// Copyright (C) 2023 John Dudmesh

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

import (
	"encoding/json"
	"math"
	"testing"

	dt "github.com/jdudmesh/pkg/datatypes"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func float(f float64) *float64 {
	return &f
}

func intp(i int) *int {
	return &i
}

func TestNumber(t *testing.T) {
	assert := assert.New(t)

	multipleOf10 := dt.NumberRule("multipleOf10", "Must be a multiple of 10", func(val int) bool {
		return val%10 == 0
	})
	v := dt.NewNumber("Amount", dt.NumberProps{
		Min:    float(10),
		Max:    float(20000),
		Format: dt.NumberFormatInteger,
	}, multipleOf10)

	assert.Equal(dt.Messages{"Minimum 10", "Must be a multiple of 10"}, v.Validate(5))
	assert.Nil(v.Validate(30))
	assert.Equal(dt.Messages{"Maximum 20000"}, v.Validate(20010))
	assert.Equal(dt.Messages{"Must be a whole number", "Must be a multiple of 10"}, v.Validate(30.5))

	assert.Equal([]string{"Optional", "Minimum 10", "Maximum 20000", "Must be a whole number", "Must be a multiple of 10"},
		v.RuleDescriptions())
}

func TestNumberRuleExactConversion(t *testing.T) {
	assert := assert.New(t)

	multipleOf10 := dt.NumberRule("multipleOf10", "Must be a multiple of 10", func(val int) bool {
		return val%10 == 0
	})
	v := dt.NewNumber("Amount", dt.NumberProps{}, multipleOf10)

	assert.Nil(v.Validate(30))
	assert.Nil(v.Validate(30.0))
	assert.Nil(v.Validate(json.Number("-20")))
	assert.Equal(dt.Messages{"Must be a multiple of 10"}, v.Validate(30.5))
	assert.Equal(dt.Messages{"Must be a multiple of 10"}, v.Validate("30.5"))
	assert.Equal(dt.Messages{"Must be a multiple of 10"}, v.Validate(1e19))
	assert.Equal(dt.Messages{"Must be a multiple of 10"}, v.Validate(-1e19))

	small := dt.NumberRule("positive", "Must be positive", func(val uint8) bool {
		return val > 0
	})
	assert.Nil(small.Check(200))
	assert.NotNil(small.Check(300))
	assert.NotNil(small.Check(-1))

	ratio := dt.NumberRule("ratio", "Below one", func(val float32) bool {
		return val < 1
	})
	assert.Nil(ratio.Check(0.1))
}

func TestNumberCoercion(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewNumber("Count", dt.NumberProps{Min: float(5), Max: float(10)})

	assert.Nil(v.Validate(int16(7)))
	assert.Nil(v.Validate(uint8(7)))
	assert.Nil(v.Validate(json.Number("7")))
	assert.Nil(v.Validate("7"))
	assert.Equal(dt.Messages{"Minimum 5", "Maximum 10"}, v.Validate("ursa"))
	assert.Equal(dt.Messages{"Minimum 5", "Maximum 10"}, v.Validate("0x8"))
}

func TestNumberCurrency(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewNumber("Price", dt.NumberProps{Format: dt.NumberFormatCurrency})

	assert.Nil(v.Validate(10))
	assert.Nil(v.Validate(10.5))
	assert.Nil(v.Validate(10.25))
	assert.Equal(dt.Messages{"Must be a currency amount"}, v.Validate(10.255))
	assert.Equal(dt.Messages{"Must be a currency amount"}, v.Validate(math.Inf(1)))
}

func TestNumberIsCorrectDataType(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewNumber("Count", dt.NumberProps{})

	assert.True(v.IsCorrectDataType(1))
	assert.True(v.IsCorrectDataType(1.5))
	assert.True(v.IsCorrectDataType(json.Number("1.5")))
	assert.False(v.IsCorrectDataType(math.NaN()))
	assert.False(v.IsCorrectDataType(math.Inf(-1)))
	assert.False(v.IsCorrectDataType("1"))
	assert.False(v.IsCorrectDataType(nil))
	assert.False(v.IsCorrectDataType(true))
}

func TestDecimal(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewDecimal("Rate", dt.DecimalProps{DecimalPlaces: intp(4)})

	assert.Equal(dt.Messages{"4 decimal places"}, v.Validate(19.12345))
	assert.Nil(v.Validate(19.1234))
	assert.Nil(v.Validate(decimal.RequireFromString("19.12340000")))
	assert.Equal(dt.Messages{"4 decimal places"}, v.Validate(json.Number("0.00001")))
}

func TestDecimalBounds(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewDecimal("Amount", dt.DecimalProps{Min: 0.1, Max: "1.3"})

	assert.Equal("0.1", v.Min().String())
	assert.Equal("1.3", v.Max().String())
	assert.Equal([]string{"Optional", "Minimum 0.1", "Maximum 1.3"}, v.RuleDescriptions())

	// 0.1 + 0.2 is not 0.3 in binary floating point
	sum := decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))
	assert.Nil(v.Validate(sum))
	assert.Nil(v.Validate(decimal.RequireFromString("0.1")))
	assert.Nil(v.Validate(1))
	assert.Equal(dt.Messages{"Minimum 0.1"}, v.Validate(decimal.RequireFromString("0.0999999999")))
	assert.Equal(dt.Messages{"Maximum 1.3"}, v.Validate(json.Number("1.30000000001")))
	assert.Equal(dt.Messages{"Minimum 0.1", "Maximum 1.3"}, v.Validate(true))
}

func TestDecimalInvalidBoundPanics(t *testing.T) {
	assert.Panics(t, func() {
		dt.NewDecimal("Amount", dt.DecimalProps{Min: "ten"})
	})
	assert.Panics(t, func() {
		dt.NewDecimal("Amount", dt.DecimalProps{Max: []int{1}})
	})
}

func TestDecimalIsCorrectDataType(t *testing.T) {
	assert := assert.New(t)

	v := dt.NewDecimal("Amount", dt.DecimalProps{})
	d := decimal.NewFromInt(1)

	assert.True(v.IsCorrectDataType(d))
	assert.True(v.IsCorrectDataType(&d))
	assert.True(v.IsCorrectDataType(1.5))
	assert.True(v.IsCorrectDataType(2))
	assert.False(v.IsCorrectDataType((*decimal.Decimal)(nil)))
	assert.False(v.IsCorrectDataType("1.5"))
	assert.False(v.IsCorrectDataType(map[string]any{}))
}
