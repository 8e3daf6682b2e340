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
	"strings"
)

const maxChoiceNamesShown = 10

type ChoiceProps struct {
	Props
	Values     []string
	ValueNames []string
}

type Choice struct {
	base
	values     []string
	valueNames []string
}

func NewChoice(name string, props ChoiceProps, rules ...Rule) *Choice {
	return &Choice{
		base:       newBase(KindChoice, name, props.Props, rules),
		values:     append([]string(nil), props.Values...),
		valueNames: append([]string(nil), props.ValueNames...),
	}
}

func (c *Choice) Values() []string {
	return append([]string(nil), c.values...)
}

// ValueNames returns a display name for every value, falling back to the
// value itself where no name was given.
func (c *Choice) ValueNames() []string {
	names := make([]string, len(c.values))
	for i, v := range c.values {
		if i < len(c.valueNames) && c.valueNames[i] != "" {
			names[i] = c.valueNames[i]
		} else {
			names[i] = v
		}
	}
	return names
}

// An empty value list leaves the choice unconstrained.
func (c *Choice) ShorthandRules() []Rule {
	if len(c.values) == 0 {
		return nil
	}
	names := c.ValueNames()
	shown := names
	if len(names) > maxChoiceNamesShown {
		shown = names[:maxChoiceNamesShown]
	}
	desc := "One of: " + strings.Join(shown, ", ")
	if len(names) > maxChoiceNamesShown {
		desc += ", ..."
	}

	values := c.values
	return []Rule{NewRule("valueIn", desc, func(val any) bool {
		s, ok := val.(string)
		if !ok {
			s = fmt.Sprint(val)
		}
		for _, v := range values {
			if v == s {
				return true
			}
		}
		return false
	})}
}

func (c *Choice) RuleDescriptions() []string {
	return c.ruleDescriptions(c.ShorthandRules())
}

func (c *Choice) Validate(val any) Errors {
	return c.validate(val, c.ShorthandRules())
}

func (c *Choice) IsCorrectDataType(val any) bool {
	return defaultIsCorrectDataType(val)
}
