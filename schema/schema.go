package schema

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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jdudmesh/pkg/datatypes"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKind     = errors.New("unknown kind")
	ErrUnknownRule     = errors.New("unknown rule")
	ErrUnknownType     = errors.New("unknown type")
	ErrDuplicateType   = errors.New("duplicate type")
	ErrCircularType    = errors.New("circular type reference")
	ErrInvalidProperty = errors.New("invalid property")
)

// definition is the declarative form of a type. Fields and item types are
// written inline; ref copies a top level definition under a new name.
type definition struct {
	Name          string        `yaml:"name"`
	Kind          string        `yaml:"kind"`
	Ref           string        `yaml:"ref"`
	Description   string        `yaml:"description"`
	Required      *bool         `yaml:"required"`
	MinLength     *int          `yaml:"minLength"`
	MaxLength     *int          `yaml:"maxLength"`
	Format        string        `yaml:"format"`
	Min           any           `yaml:"min"`
	Max           any           `yaml:"max"`
	DecimalPlaces *int          `yaml:"decimalPlaces"`
	Values        []string      `yaml:"values"`
	ValueNames    []string      `yaml:"valueNames"`
	BasedOn       string        `yaml:"basedOn"`
	Fields        []*definition `yaml:"fields"`
	ItemType      *definition   `yaml:"itemType"`
	Rules         []string      `yaml:"rules"`
}

type document struct {
	Types []*definition `yaml:"types"`
}

type Option func(l *loader)

// WithRules registers the custom rules definitions may refer to by name.
func WithRules(rules map[string]datatypes.Rule) Option {
	return func(l *loader) {
		for name, rule := range rules {
			l.rules[name] = rule
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		l.logger = logger
	}
}

// Schema is a set of named type definitions.
type Schema struct {
	types map[string]datatypes.Type
	names []string
}

func (s *Schema) Get(name string) (datatypes.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns the top level type names in document order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

type loader struct {
	rules    map[string]datatypes.Rule
	logger   *zap.Logger
	defs     map[string]*definition
	built    map[string]datatypes.Type
	building map[string]bool
}

func LoadFile(path string, opts ...Option) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Load reads a YAML (or JSON) document of type definitions.
func Load(r io.Reader, opts ...Option) (*Schema, error) {
	l := &loader{
		rules:    make(map[string]datatypes.Rule),
		logger:   zap.NewNop(),
		defs:     make(map[string]*definition),
		built:    make(map[string]datatypes.Type),
		building: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}

	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	s := &Schema{types: make(map[string]datatypes.Type)}
	for _, def := range doc.Types {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: top level type without a name", ErrInvalidProperty)
		}
		if _, ok := l.defs[def.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, def.Name)
		}
		l.defs[def.Name] = def
		s.names = append(s.names, def.Name)
	}

	for _, name := range s.names {
		t, err := l.named(name)
		if err != nil {
			return nil, err
		}
		s.types[name] = t
	}

	l.logger.Debug("schema loaded", zap.Int("types", len(s.names)), zap.Strings("names", s.names))
	return s, nil
}

func (l *loader) named(name string) (datatypes.Type, error) {
	if t, ok := l.built[name]; ok {
		return t, nil
	}
	def, ok := l.defs[name]
	if !ok {
		l.logger.Warn("unresolved type reference", zap.String("type", name))
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	if l.building[name] {
		return nil, fmt.Errorf("%w: %s", ErrCircularType, name)
	}

	l.building[name] = true
	defer delete(l.building, name)

	t, err := l.build(def)
	if err != nil {
		return nil, err
	}
	l.built[name] = t
	return t, nil
}

func (l *loader) build(def *definition) (datatypes.Type, error) {
	if def.Ref != "" {
		merged, err := l.resolveRef(def)
		if err != nil {
			return nil, err
		}
		def = merged
	}

	kind, err := datatypes.ParseKind(def.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: type %s: %w", ErrUnknownKind, def.Name, err)
	}

	rules, err := l.customRules(def)
	if err != nil {
		return nil, err
	}

	props := datatypes.Props{Description: def.Description, Required: def.Required != nil && *def.Required}

	var t datatypes.Type
	switch kind {
	case datatypes.KindText:
		t = datatypes.NewText(def.Name, datatypes.TextProps{
			Props:     props,
			MinLength: def.MinLength,
			MaxLength: def.MaxLength,
			Format:    datatypes.TextFormat(def.Format),
		}, rules...)

	case datatypes.KindNumber:
		min, err := floatProp(def, "min", def.Min)
		if err != nil {
			return nil, err
		}
		max, err := floatProp(def, "max", def.Max)
		if err != nil {
			return nil, err
		}
		t = datatypes.NewNumber(def.Name, datatypes.NumberProps{
			Props:  props,
			Min:    min,
			Max:    max,
			Format: datatypes.NumberFormat(def.Format),
		}, rules...)

	case datatypes.KindDecimal:
		min, err := decimalProp(def, "min", def.Min)
		if err != nil {
			return nil, err
		}
		max, err := decimalProp(def, "max", def.Max)
		if err != nil {
			return nil, err
		}
		t = datatypes.NewDecimal(def.Name, datatypes.DecimalProps{
			Props:         props,
			Min:           min,
			Max:           max,
			DecimalPlaces: def.DecimalPlaces,
		}, rules...)

	case datatypes.KindDate:
		min, err := dateProp(def, "min", def.Min)
		if err != nil {
			return nil, err
		}
		max, err := dateProp(def, "max", def.Max)
		if err != nil {
			return nil, err
		}
		t = datatypes.NewDate(def.Name, datatypes.DateProps{Props: props, Min: min, Max: max}, rules...)

	case datatypes.KindChoice:
		t = datatypes.NewChoice(def.Name, datatypes.ChoiceProps{
			Props:      props,
			Values:     def.Values,
			ValueNames: def.ValueNames,
		}, rules...)

	case datatypes.KindTrueFalse:
		t = datatypes.NewTrueFalse(def.Name, datatypes.TrueFalseProps{Props: props}, rules...)

	case datatypes.KindList:
		if def.ItemType == nil {
			return nil, fmt.Errorf("%w: list %s has no itemType", ErrInvalidProperty, def.Name)
		}
		itemType, err := l.build(def.ItemType)
		if err != nil {
			return nil, err
		}
		t = datatypes.NewList(def.Name, datatypes.ListProps{Props: props}, itemType, rules...)

	case datatypes.KindRecord:
		var basedOn *datatypes.Record
		if def.BasedOn != "" {
			bt, err := l.named(def.BasedOn)
			if err != nil {
				return nil, err
			}
			rec, ok := bt.(*datatypes.Record)
			if !ok {
				return nil, fmt.Errorf("%w: %s is based on %s which is not a record", ErrInvalidProperty, def.Name, def.BasedOn)
			}
			basedOn = rec
		}
		fields := make([]datatypes.Type, 0, len(def.Fields))
		for _, fd := range def.Fields {
			f, err := l.build(fd)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		t = datatypes.NewRecord(def.Name, datatypes.RecordProps{Props: props, BasedOn: basedOn}, fields, rules...)
	}

	l.logger.Debug("type built", zap.String("name", def.Name), zap.Stringer("kind", kind))
	return t, nil
}

// resolveRef copies the referenced definition, keeping the name, description,
// required flag and rules given at the point of use.
func (l *loader) resolveRef(def *definition) (*definition, error) {
	target, ok := l.defs[def.Ref]
	if !ok {
		l.logger.Warn("unresolved type reference", zap.String("type", def.Ref))
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, def.Ref)
	}
	if l.building[def.Ref] {
		return nil, fmt.Errorf("%w: %s", ErrCircularType, def.Ref)
	}

	merged := *target
	if def.Name != "" {
		merged.Name = def.Name
	}
	if def.Description != "" {
		merged.Description = def.Description
	}
	if def.Required != nil {
		merged.Required = def.Required
	}
	merged.Rules = append(append([]string(nil), target.Rules...), def.Rules...)

	if merged.Ref != "" {
		l.building[def.Ref] = true
		defer delete(l.building, def.Ref)
		return l.resolveRef(&merged)
	}
	return &merged, nil
}

func (l *loader) customRules(def *definition) ([]datatypes.Rule, error) {
	rules := make([]datatypes.Rule, 0, len(def.Rules))
	for _, name := range def.Rules {
		rule, ok := l.rules[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s on type %s", ErrUnknownRule, name, def.Name)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func floatProp(def *definition, prop string, val any) (*float64, error) {
	var f float64
	switch val := val.(type) {
	case nil:
		return nil, nil
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case uint64:
		f = float64(val)
	case float64:
		f = val
	default:
		return nil, fmt.Errorf("%w: %s of %s must be a number", ErrInvalidProperty, prop, def.Name)
	}
	return &f, nil
}

func decimalProp(def *definition, prop string, val any) (any, error) {
	switch val := val.(type) {
	case nil:
		return nil, nil
	case int, int64, uint64, float64:
		return val, nil
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %s of %s: %w", ErrInvalidProperty, prop, def.Name, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %s of %s must be a number", ErrInvalidProperty, prop, def.Name)
	}
}

func dateProp(def *definition, prop string, val any) (*time.Time, error) {
	switch val := val.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &val, nil
	case string:
		for _, layout := range []string{time.DateOnly, time.RFC3339} {
			if t, err := time.Parse(layout, val); err == nil {
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s of %s must be a date", ErrInvalidProperty, prop, def.Name)
}
