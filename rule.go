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

import "reflect"

type Rule struct {
	Name        string
	Description string
	Predicate   func(val any) bool
}

// RuleError is returned by Rule.Check when the predicate does not hold.
type RuleError struct {
	Rule    string
	message string
}

func (e *RuleError) Error() string {
	return e.message
}

func NewRule(name, description string, fn func(val any) bool) Rule {
	return Rule{Name: name, Description: description, Predicate: fn}
}

// RuleFor builds a rule whose predicate only sees values of type T.
// Values of any other type fail the rule.
func RuleFor[T any](name, description string, fn func(val T) bool) Rule {
	return NewRule(name, description, func(val any) bool {
		typedVal, ok := val.(T)
		if !ok {
			return false
		}
		return fn(typedVal)
	})
}

func (r Rule) Check(val any) *RuleError {
	if r.Predicate(val) {
		return nil
	}
	return &RuleError{Rule: r.Name, message: r.Description}
}

func descriptions(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Description
	}
	return out
}

func isAbsent(val any) bool {
	if val == nil {
		return true
	}
	vo := reflect.ValueOf(val)
	switch vo.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return vo.IsNil()
	}
	return false
}
