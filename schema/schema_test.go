package schema_test

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdudmesh/pkg/datatypes"
	"github.com/jdudmesh/pkg/datatypes/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const customersYAML = `
types:
  - name: Customers
    kind: List
    rules: [allInUK]
    itemType:
      ref: Customer
  - name: Person
    kind: Record
    fields:
      - name: Name
        kind: Text
        required: true
  - name: Customer
    kind: Record
    basedOn: Person
    rules: [ukNeedsPostcode]
    fields:
      - name: Country
        kind: Text
        maxLength: 2
      - name: Post Code
        kind: Text
`

var customerRules = map[string]datatypes.Rule{
	"ukNeedsPostcode": datatypes.RuleFor("ukNeedsPostcode", "If country is UK postcode is required", func(val map[string]any) bool {
		return val["Country"] != "UK" || val["PostCode"] != nil
	}),
	"allInUK": datatypes.RuleFor("allInUK", "All customers must be in UK", func(items []any) bool {
		for _, item := range items {
			customer, _ := item.(map[string]any)
			if customer["Country"] != "UK" {
				return false
			}
		}
		return true
	}),
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	core, logs := observer.New(zap.DebugLevel)
	s, err := schema.Load(strings.NewReader(customersYAML),
		schema.WithRules(customerRules),
		schema.WithLogger(zap.New(core)))
	require.NoError(err)

	assert.Equal([]string{"Customers", "Person", "Customer"}, s.Names())
	assert.Equal(1, logs.FilterMessage("schema loaded").Len())

	customers, ok := s.Get("Customers")
	require.True(ok)
	assert.Equal(datatypes.KindList, customers.Kind())

	list := customers.(*datatypes.List)
	item := list.ItemType().(*datatypes.Record)
	assert.Equal("Customer", item.Name())
	assert.Equal("Person", item.BasedOn().Name())
	assert.Len(item.Fields(), 3)

	res := customers.Validate([]any{
		map[string]any{"Country": "France"},
		map[string]any{"Name": "Bob", "Country": "UK", "PostCode": "AB1 2CD"},
		map[string]any{"Name": "Jo", "Country": "UK"},
	})
	assert.Equal(map[string][]string{
		"_self":     {"All customers must be in UK"},
		"0.Name":    {"Required"},
		"0.Country": {"Maximum length 2"},
		"2._self":   {"If country is UK postcode is required"},
	}, datatypes.Flatten(res))

	_, ok = s.Get("Nope")
	assert.False(ok)
}

func TestLoadScalarProperties(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	doc := `
types:
  - name: Amount
    kind: Number
    description: An amount
    min: 10
    max: 20000.5
    format: integer
  - name: Rate
    kind: Decimal
    min: "0.1"
    max: 2
    decimalPlaces: 4
  - name: Start
    kind: Date
    min: 2020-01-01
    max: "2020-12-31"
  - name: Size
    kind: Choice
    values: [S, M, L]
    valueNames: [Small, Medium, Large]
  - name: Email
    kind: Text
    format: email
    minLength: 3
  - name: Agreed
    kind: TrueFalse
    required: true
`
	s, err := schema.Load(strings.NewReader(doc))
	require.NoError(err)

	amount, _ := s.Get("Amount")
	assert.Equal("An amount", amount.Description())
	assert.Equal([]string{"Optional", "Minimum 10", "Maximum 20000.5", "Must be a whole number"}, amount.RuleDescriptions())

	rate, _ := s.Get("Rate")
	assert.Equal([]string{"Optional", "Minimum 0.1", "Maximum 2", "4 decimal places"}, rate.RuleDescriptions())
	assert.Equal(datatypes.Messages{"4 decimal places"}, rate.Validate(1.12345))

	start, _ := s.Get("Start")
	assert.Equal([]string{"Optional", "Earliest 01 Jan 2020", "Latest 31 Dec 2020"}, start.RuleDescriptions())

	size, _ := s.Get("Size")
	assert.Equal([]string{"Optional", "One of: Small, Medium, Large"}, size.RuleDescriptions())

	email, _ := s.Get("Email")
	assert.Equal(datatypes.Messages{"Must be a valid email"}, email.Validate("nobody"))

	agreed, _ := s.Get("Agreed")
	assert.True(agreed.Required())
	assert.Equal(datatypes.Messages{"Required"}, agreed.Validate(nil))
}

func TestLoadRefOverrides(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	doc := `
types:
  - name: Address
    kind: Text
    maxLength: 5
  - name: Shipping
    kind: Record
    fields:
      - ref: Address
        name: Home Address
        required: true
      - ref: Address
`
	s, err := schema.Load(strings.NewReader(doc))
	require.NoError(err)

	shipping, _ := s.Get("Shipping")
	fields := shipping.(*datatypes.Record).Fields()
	require.Len(fields, 2)
	assert.Equal("HomeAddress", fields[0].CodeName())
	assert.True(fields[0].Required())
	assert.Equal("Address", fields[1].CodeName())
	assert.False(fields[1].Required())
	assert.Equal([]string{"Required", "Maximum length 5"}, fields[0].RuleDescriptions())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{
			name: "unknown kind",
			doc:  "types:\n  - name: A\n    kind: Blob\n",
			err:  schema.ErrUnknownKind,
		},
		{
			name: "unknown rule",
			doc:  "types:\n  - name: A\n    kind: Text\n    rules: [nope]\n",
			err:  schema.ErrUnknownRule,
		},
		{
			name: "unknown base",
			doc:  "types:\n  - name: A\n    kind: Record\n    basedOn: B\n",
			err:  schema.ErrUnknownType,
		},
		{
			name: "base is not a record",
			doc:  "types:\n  - name: B\n    kind: Text\n  - name: A\n    kind: Record\n    basedOn: B\n",
			err:  schema.ErrInvalidProperty,
		},
		{
			name: "duplicate",
			doc:  "types:\n  - name: A\n    kind: Text\n  - name: A\n    kind: Text\n",
			err:  schema.ErrDuplicateType,
		},
		{
			name: "circular",
			doc:  "types:\n  - name: A\n    kind: Record\n    fields:\n      - ref: A\n",
			err:  schema.ErrCircularType,
		},
		{
			name: "list without item type",
			doc:  "types:\n  - name: A\n    kind: List\n",
			err:  schema.ErrInvalidProperty,
		},
		{
			name: "bad number",
			doc:  "types:\n  - name: A\n    kind: Number\n    min: ten\n",
			err:  schema.ErrInvalidProperty,
		},
		{
			name: "bad decimal",
			doc:  "types:\n  - name: A\n    kind: Decimal\n    max: ten\n",
			err:  schema.ErrInvalidProperty,
		},
		{
			name: "bad date",
			doc:  "types:\n  - name: A\n    kind: Date\n    min: soon\n",
			err:  schema.ErrInvalidProperty,
		},
		{
			name: "unnamed",
			doc:  "types:\n  - kind: Text\n",
			err:  schema.ErrInvalidProperty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	s, err := schema.Load(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, s.Names())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customersYAML), 0o600))

	s, err := schema.LoadFile(path, schema.WithRules(customerRules))
	require.NoError(t, err)
	assert.Len(t, s.Names(), 3)

	_, err = schema.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
