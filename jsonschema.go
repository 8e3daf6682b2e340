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
	"math"

	"github.com/google/jsonschema-go/jsonschema"
)

var jsonSchemaTextFormats = map[TextFormat]string{
	TextFormatEmail: "email",
	TextFormatURL:   "uri",
	TextFormatUUID:  "uuid",
}

// JSONSchema describes t as a JSON Schema document. Custom rules have no
// JSON Schema equivalent and are left out.
func JSONSchema(t Type) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Title:       t.Name(),
		Description: t.Description(),
	}

	switch t := t.(type) {
	case *Text:
		s.Type = "string"
		s.MinLength = t.MinLength()
		s.MaxLength = t.MaxLength()
		s.Format = jsonSchemaTextFormats[t.Format()]
	case *Number:
		s.Type = "number"
		if t.Format() == NumberFormatInteger {
			s.Type = "integer"
		}
		if t.Format() == NumberFormatCurrency {
			s.MultipleOf = ptr(0.01)
		}
		s.Minimum = t.Min()
		s.Maximum = t.Max()
	case *Decimal:
		s.Type = "number"
		if t.Min() != nil {
			s.Minimum = ptr(t.Min().InexactFloat64())
		}
		if t.Max() != nil {
			s.Maximum = ptr(t.Max().InexactFloat64())
		}
		if t.DecimalPlaces() != nil {
			s.MultipleOf = ptr(math.Pow10(-*t.DecimalPlaces()))
		}
	case *Date:
		s.Type = "string"
		s.Format = "date"
	case *Choice:
		s.Type = "string"
		for _, v := range t.Values() {
			s.Enum = append(s.Enum, v)
		}
	case *TrueFalse:
		s.Type = "boolean"
	case *List:
		s.Type = "array"
		s.Items = JSONSchema(t.ItemType())
	case *Record:
		s.Type = "object"
		s.Properties = make(map[string]*jsonschema.Schema)
		for _, f := range t.Fields() {
			name := f.CodeName()
			s.Properties[name] = JSONSchema(f)
			s.PropertyOrder = append(s.PropertyOrder, name)
			if f.Required() {
				s.Required = append(s.Required, name)
			}
		}
	}

	return s
}

func ptr[T any](v T) *T {
	return &v
}
