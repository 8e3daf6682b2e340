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
	"reflect"
	"strconv"
)

type ListProps struct {
	Props
}

type List struct {
	structured
	itemType Type
}

func NewList(name string, props ListProps, itemType Type, rules ...Rule) *List {
	return &List{
		structured: structured{base: newBase(KindList, name, props.Props, rules)},
		itemType:   itemType,
	}
}

func (l *List) ItemType() Type {
	return l.itemType
}

func (l *List) ShorthandRules() []Rule {
	return nil
}

func (l *List) RuleDescriptions() []string {
	return l.ruleDescriptions(nil)
}

func (l *List) Validate(val any) Errors {
	return l.validateStructured(val, nil, l.itemErrors)
}

func (l *List) IsCorrectDataType(val any) bool {
	_, ok := sequence(val)
	return ok
}

func (l *List) itemErrors(val any) []Entry {
	items, ok := sequence(val)
	if !ok {
		return nil
	}
	entries := make([]Entry, items.Len())
	for i := range entries {
		entries[i] = Entry{Key: strconv.Itoa(i), Errors: l.itemType.Validate(items.Index(i).Interface())}
	}
	return entries
}

// sequence returns val as a slice or array value. Byte slices are not sequences.
func sequence(val any) (reflect.Value, bool) {
	if val == nil {
		return reflect.Value{}, false
	}
	vo := reflect.ValueOf(val)
	switch vo.Kind() {
	case reflect.Slice, reflect.Array:
		if vo.Type().Elem().Kind() == reflect.Uint8 {
			return reflect.Value{}, false
		}
		return vo, true
	}
	return reflect.Value{}, false
}
