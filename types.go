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
	"reflect"
	"strings"
	"time"
	"unicode"
)

type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDecimal
	KindDate
	KindChoice
	KindTrueFalse
	KindList
	KindRecord
)

var kindNames = map[Kind]string{
	KindText:      "Text",
	KindNumber:    "Number",
	KindDecimal:   "Decimal",
	KindDate:      "Date",
	KindChoice:    "Choice",
	KindTrueFalse: "TrueFalse",
	KindList:      "List",
	KindRecord:    "Record",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// Props holds the properties common to every kind.
type Props struct {
	Description string
	Required    bool
}

// Type is an immutable definition of a data shape plus its validation rules.
// Implementations are safe for concurrent use.
type Type interface {
	Kind() Kind
	Name() string
	CodeName() string
	Description() string
	Required() bool
	ShorthandRules() []Rule
	RuleDescriptions() []string
	Validate(val any) Errors
	IsCorrectDataType(val any) bool
}

var (
	ruleRequired = NewRule("required", "Required", func(val any) bool { return !isAbsent(val) })
	ruleOptional = NewRule("optional", "Optional", func(val any) bool { return true })
)

type base struct {
	kind        Kind
	name        string
	props       Props
	customRules []Rule
}

func newBase(kind Kind, name string, props Props, rules []Rule) base {
	return base{
		kind:        kind,
		name:        name,
		props:       props,
		customRules: append([]Rule(nil), rules...),
	}
}

func (b *base) Kind() Kind {
	return b.kind
}

func (b *base) Name() string {
	return b.name
}

func (b *base) CodeName() string {
	return CodeName(b.name)
}

func (b *base) Description() string {
	return b.props.Description
}

func (b *base) Required() bool {
	return b.props.Required
}

func (b *base) CustomRules() []Rule {
	return append([]Rule(nil), b.customRules...)
}

func (b *base) requiredRule() Rule {
	if b.props.Required {
		return ruleRequired
	}
	return ruleOptional
}

func (b *base) nonNullRules(shorthand []Rule) []Rule {
	rules := make([]Rule, 0, len(shorthand)+len(b.customRules))
	rules = append(rules, shorthand...)
	return append(rules, b.customRules...)
}

func (b *base) ruleDescriptions(shorthand []Rule) []string {
	return append([]string{b.requiredRule().Description}, descriptions(b.nonNullRules(shorthand))...)
}

// absent reports whether val is missing, and if so the result to return for it.
func (b *base) absent(val any) (bool, Errors) {
	if !isAbsent(val) {
		return false, nil
	}
	if b.props.Required {
		return true, Messages{ruleRequired.Description}
	}
	return true, nil
}

func (b *base) failures(val any, shorthand []Rule) Messages {
	var msgs Messages
	for _, rule := range b.nonNullRules(shorthand) {
		if err := rule.Check(val); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

func (b *base) validate(val any, shorthand []Rule) Errors {
	if missing, res := b.absent(val); missing {
		return res
	}
	if msgs := b.failures(val, shorthand); len(msgs) > 0 {
		return msgs
	}
	return nil
}

// clone copies an optional property so later changes by the caller do not
// reach the type.
func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// defaultIsCorrectDataType accepts plain scalars and rejects boxed values,
// composites and functions.
func defaultIsCorrectDataType(val any) bool {
	if val == nil {
		return false
	}
	if _, ok := val.(time.Time); ok {
		return true
	}
	switch reflect.TypeOf(val).Kind() {
	case reflect.String, reflect.Bool:
		return true
	default:
		return isNumeric(val)
	}
}

// CodeName normalizes a display name into the identifier used to look up
// record fields, by dropping every rune that is not a letter, digit or underscore.
func CodeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, name)
}

func isNumeric(i interface{}) bool {
	switch reflect.TypeOf(i).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
