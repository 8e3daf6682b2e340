package datatypes

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
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

type number interface {
	constraints.Integer | constraints.Float
}

type NumberFormat string

var numericText = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

const (
	NumberFormatNone     NumberFormat = ""
	NumberFormatInteger  NumberFormat = "integer"
	NumberFormatCurrency NumberFormat = "currency"
)

type NumberProps struct {
	Props
	Min    *float64
	Max    *float64
	Format NumberFormat
}

type Number struct {
	base
	min    *float64
	max    *float64
	format NumberFormat
}

func NewNumber(name string, props NumberProps, rules ...Rule) *Number {
	return &Number{
		base:   newBase(KindNumber, name, props.Props, rules),
		min:    clone(props.Min),
		max:    clone(props.Max),
		format: props.Format,
	}
}

func (n *Number) Min() *float64 {
	return clone(n.min)
}

func (n *Number) Max() *float64 {
	return clone(n.max)
}

func (n *Number) Format() NumberFormat {
	return n.format
}

func (n *Number) ShorthandRules() []Rule {
	var rules []Rule
	if n.min != nil {
		rules = append(rules, minRule(*n.min))
	}
	if n.max != nil {
		rules = append(rules, maxRule(*n.max))
	}
	switch n.format {
	case NumberFormatInteger:
		rules = append(rules, integerRule())
	case NumberFormatCurrency:
		rules = append(rules, currencyRule())
	}
	return rules
}

func (n *Number) RuleDescriptions() []string {
	return n.ruleDescriptions(n.ShorthandRules())
}

func (n *Number) Validate(val any) Errors {
	return n.validate(val, n.ShorthandRules())
}

func (n *Number) IsCorrectDataType(val any) bool {
	if _, ok := val.(string); ok {
		return false
	}
	f, ok := toFloat(val)
	return ok && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// NumberRule builds a rule over numbers of type T. Go numerics, json.Number
// and numeric strings are converted to T first; other values, and values T
// cannot hold exactly (a fraction or an out of range number for an integer
// T), fail the rule.
func NumberRule[T number](name, description string, fn func(val T) bool) Rule {
	return NewRule(name, description, func(val any) bool {
		f, ok := toFloat(val)
		if !ok || !representable[T](f) {
			return false
		}
		return fn(T(f))
	})
}

func representable[T number](f float64) bool {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return false
		}
		return float64(T(f)) == f
	default:
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return false
		}
		return float64(T(f)) == f
	}
}

func minRule(min float64) Rule {
	return NumberRule("min", fmt.Sprintf("Minimum %s", formatFloat(min)), func(val float64) bool {
		return val >= min
	})
}

func maxRule(max float64) Rule {
	return NumberRule("max", fmt.Sprintf("Maximum %s", formatFloat(max)), func(val float64) bool {
		return val <= max
	})
}

func integerRule() Rule {
	return NumberRule("integer", "Must be a whole number", func(val float64) bool {
		return val == math.Floor(val)
	})
}

func currencyRule() Rule {
	return NumberRule("currency", "Must be a currency amount", func(val float64) bool {
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return false
		}
		return decimalPlaces(decimal.NewFromFloat(val)) <= 2
	})
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toFloat(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch val := val.(type) {
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		return coerceToNumber(val)
	}
	if !isNumeric(val) {
		return 0, false
	}
	vo := reflect.ValueOf(val)
	return vo.Convert(reflect.TypeOf(float64(0))).Float(), true
}

// coerceToNumber parses decimal text only; hex, infinities and NaN are rejected.
func coerceToNumber(val string) (float64, bool) {
	if !numericText.MatchString(val) {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	return f, err == nil
}
