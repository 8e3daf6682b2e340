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
)

type RecordProps struct {
	Props
	BasedOn *Record
}

type Record struct {
	structured
	fields  []Type
	basedOn *Record
}

func NewRecord(name string, props RecordProps, fields []Type, rules ...Rule) *Record {
	return &Record{
		structured: structured{base: newBase(KindRecord, name, props.Props, rules)},
		fields:     append([]Type(nil), fields...),
		basedOn:    props.BasedOn,
	}
}

func (r *Record) BasedOn() *Record {
	return r.basedOn
}

// Fields returns the fields inherited from BasedOn followed by the record's own fields.
func (r *Record) Fields() []Type {
	var fields []Type
	if r.basedOn != nil {
		fields = r.basedOn.Fields()
	}
	return append(fields, r.fields...)
}

func (r *Record) OwnFields() []Type {
	return append([]Type(nil), r.fields...)
}

// Field looks up a field, inherited or own, by its code name.
func (r *Record) Field(codeName string) (Type, bool) {
	for _, f := range r.Fields() {
		if f.CodeName() == codeName {
			return f, true
		}
	}
	return nil, false
}

func (r *Record) ShorthandRules() []Rule {
	return nil
}

func (r *Record) RuleDescriptions() []string {
	return r.ruleDescriptions(nil)
}

func (r *Record) Validate(val any) Errors {
	return r.validateStructured(val, nil, r.itemErrors)
}

// IsCorrectDataType accepts maps keyed by strings only.
func (r *Record) IsCorrectDataType(val any) bool {
	if val == nil {
		return false
	}
	t := reflect.TypeOf(val)
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

func (r *Record) itemErrors(val any) []Entry {
	fields := r.Fields()
	entries := make([]Entry, len(fields))
	for i, f := range fields {
		name := f.CodeName()
		entries[i] = Entry{Key: name, Errors: f.Validate(extract(val, name))}
	}
	return entries
}

// extract reads a named member of a map or struct, following pointers. Any
// other value has no members.
func extract(val any, name string) any {
	vo := reflect.Indirect(reflect.ValueOf(val))

	var v reflect.Value
	switch vo.Kind() {
	case reflect.Struct:
		if f, ok := vo.Type().FieldByName(name); !ok || !f.IsExported() {
			return nil
		}
		v = vo.FieldByName(name)
	case reflect.Map:
		if vo.Type().Key().Kind() != reflect.String {
			return nil
		}
		v = vo.MapIndex(reflect.ValueOf(name).Convert(vo.Type().Key()))
	}

	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}
