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

// structured extends base with aggregation of child results. Kinds embedding
// it provide the per-child results through itemErrors.
type structured struct {
	base
}

func (s *structured) validateStructured(val any, shorthand []Rule, itemErrors func(val any) []Entry) Errors {
	if missing, res := s.absent(val); missing {
		return res
	}

	res := &Nested{Self: s.failures(val, shorthand)}
	for _, e := range itemErrors(val) {
		if e.Errors != nil {
			res.Items = append(res.Items, e)
		}
	}

	if len(res.Self) == 0 && len(res.Items) == 0 {
		return nil
	}
	return res
}
