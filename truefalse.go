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

type TrueFalseProps struct {
	Props
}

type TrueFalse struct {
	base
}

func NewTrueFalse(name string, props TrueFalseProps, rules ...Rule) *TrueFalse {
	return &TrueFalse{base: newBase(KindTrueFalse, name, props.Props, rules)}
}

func (t *TrueFalse) ShorthandRules() []Rule {
	return nil
}

func (t *TrueFalse) RuleDescriptions() []string {
	return t.ruleDescriptions(nil)
}

func (t *TrueFalse) Validate(val any) Errors {
	return t.validate(val, nil)
}

func (t *TrueFalse) IsCorrectDataType(val any) bool {
	_, ok := val.(bool)
	return ok
}
