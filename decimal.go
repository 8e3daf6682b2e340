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
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalProps bounds may be given as Go numbers, numeric strings or
// decimal.Decimal values. They are converted to exact decimals when the type is built.
type DecimalProps struct {
	Props
	Min           any
	Max           any
	DecimalPlaces *int
}

type Decimal struct {
	base
	min           *decimal.Decimal
	max           *decimal.Decimal
	decimalPlaces *int
}

// NewDecimal panics if a bound cannot be converted to a decimal.
func NewDecimal(name string, props DecimalProps, rules ...Rule) *Decimal {
	return &Decimal{
		base:          newBase(KindDecimal, name, props.Props, rules),
		min:           mustDecimalBound(name, "min", props.Min),
		max:           mustDecimalBound(name, "max", props.Max),
		decimalPlaces: clone(props.DecimalPlaces),
	}
}

func (d *Decimal) Min() *decimal.Decimal {
	return clone(d.min)
}

func (d *Decimal) Max() *decimal.Decimal {
	return clone(d.max)
}

func (d *Decimal) DecimalPlaces() *int {
	return clone(d.decimalPlaces)
}

func (d *Decimal) ShorthandRules() []Rule {
	var rules []Rule
	if d.min != nil {
		min := *d.min
		rules = append(rules, decimalRule("min", fmt.Sprintf("Minimum %s", min), func(val decimal.Decimal) bool {
			return val.GreaterThanOrEqual(min)
		}))
	}
	if d.max != nil {
		max := *d.max
		rules = append(rules, decimalRule("max", fmt.Sprintf("Maximum %s", max), func(val decimal.Decimal) bool {
			return val.LessThanOrEqual(max)
		}))
	}
	if d.decimalPlaces != nil {
		places := *d.decimalPlaces
		rules = append(rules, decimalRule("decimalPlaces", fmt.Sprintf("%d decimal places", places), func(val decimal.Decimal) bool {
			return decimalPlaces(val) <= places
		}))
	}
	return rules
}

func (d *Decimal) RuleDescriptions() []string {
	return d.ruleDescriptions(d.ShorthandRules())
}

func (d *Decimal) Validate(val any) Errors {
	return d.validate(val, d.ShorthandRules())
}

func (d *Decimal) IsCorrectDataType(val any) bool {
	switch val.(type) {
	case decimal.Decimal, *decimal.Decimal:
		return !isAbsent(val)
	case string:
		return false
	}
	f, ok := toFloat(val)
	return ok && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func decimalRule(name, description string, fn func(val decimal.Decimal) bool) Rule {
	return NewRule(name, description, func(val any) bool {
		d, ok := toDecimal(val)
		if !ok {
			return false
		}
		return fn(d)
	})
}

// decimalPlaces counts the significant digits after the decimal point.
func decimalPlaces(d decimal.Decimal) int {
	s := d.String()
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return len(s) - idx - 1
}

func toDecimal(val any) (decimal.Decimal, bool) {
	switch val := val.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return val, true
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, false
		}
		return *val, true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		if !numericText.MatchString(val) {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(val)
		return d, err == nil
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		f := float64(val)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(val), true
	}

	vo := reflect.ValueOf(val)
	switch vo.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(vo.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromUint64(vo.Uint()), true
	}
	return decimal.Zero, false
}

func mustDecimalBound(typeName, prop string, bound any) *decimal.Decimal {
	if bound == nil {
		return nil
	}
	d, ok := toDecimal(bound)
	if !ok {
		panic(fmt.Sprintf("decimal type %q: invalid %s %v", typeName, prop, bound))
	}
	return &d
}
