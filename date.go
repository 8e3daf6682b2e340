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
	"fmt"
	"time"
)

const dateDisplayLayout = "02 Jan 2006"

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{time.RFC3339Nano, time.DateOnly}

type DateProps struct {
	Props
	Min *time.Time
	Max *time.Time
}

// Date bounds are inclusive. Min is compared by instant, Max by calendar day
// in the bound's own location.
type Date struct {
	base
	min *time.Time
	max *time.Time
}

func NewDate(name string, props DateProps, rules ...Rule) *Date {
	return &Date{
		base: newBase(KindDate, name, props.Props, rules),
		min:  clone(props.Min),
		max:  clone(props.Max),
	}
}

func (d *Date) Min() *time.Time {
	return clone(d.min)
}

func (d *Date) Max() *time.Time {
	return clone(d.max)
}

func (d *Date) ShorthandRules() []Rule {
	var rules []Rule
	if d.min != nil {
		min := *d.min
		rules = append(rules, dateRule("min", fmt.Sprintf("Earliest %s", min.Format(dateDisplayLayout)), func(val time.Time) bool {
			return !val.Before(min)
		}))
	}
	if d.max != nil {
		max := *d.max
		lastDay := calendarDay(max)
		rules = append(rules, dateRule("max", fmt.Sprintf("Latest %s", max.Format(dateDisplayLayout)), func(val time.Time) bool {
			return calendarDay(val.In(max.Location())) <= lastDay
		}))
	}
	return rules
}

func (d *Date) RuleDescriptions() []string {
	return d.ruleDescriptions(d.ShorthandRules())
}

func (d *Date) Validate(val any) Errors {
	return d.validate(val, d.ShorthandRules())
}

func (d *Date) IsCorrectDataType(val any) bool {
	_, ok := val.(time.Time)
	return ok
}

func dateRule(name, description string, fn func(val time.Time) bool) Rule {
	return NewRule(name, description, func(val any) bool {
		t, err := coerceToTime(val)
		if err != nil {
			return false
		}
		return fn(t)
	})
}

func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func coerceToTime(val any) (time.Time, error) {
	switch val := val.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val != nil {
			return *val, nil
		}
	case string:
		var err error
		for _, layout := range dateLayouts {
			var t time.Time
			if t, err = time.Parse(layout, val); err == nil {
				return t, nil
			}
		}
		return time.Time{}, err
	}
	return time.Time{}, fmt.Errorf("cannot use %T as a date", val)
}
