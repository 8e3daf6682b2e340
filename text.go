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
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

type TextFormat string

const (
	TextFormatNone  TextFormat = ""
	TextFormatEmail TextFormat = "email"
	TextFormatURL   TextFormat = "url"
	TextFormatUUID  TextFormat = "uuid"
)

type TextProps struct {
	Props
	MinLength *int
	MaxLength *int
	Format    TextFormat
}

type Text struct {
	base
	minLength *int
	maxLength *int
	format    TextFormat
}

func NewText(name string, props TextProps, rules ...Rule) *Text {
	return &Text{
		base:      newBase(KindText, name, props.Props, rules),
		minLength: clone(props.MinLength),
		maxLength: clone(props.MaxLength),
		format:    props.Format,
	}
}

func (t *Text) MinLength() *int {
	return clone(t.minLength)
}

func (t *Text) MaxLength() *int {
	return clone(t.maxLength)
}

func (t *Text) Format() TextFormat {
	return t.format
}

func (t *Text) ShorthandRules() []Rule {
	var rules []Rule
	if t.minLength != nil {
		min := *t.minLength
		rules = append(rules, RuleFor("minLength", fmt.Sprintf("Minimum length %d", min), func(val string) bool {
			return utf8.RuneCountInString(val) >= min
		}))
	}
	if t.maxLength != nil {
		max := *t.maxLength
		rules = append(rules, RuleFor("maxLength", fmt.Sprintf("Maximum length %d", max), func(val string) bool {
			return utf8.RuneCountInString(val) <= max
		}))
	}
	switch t.format {
	case TextFormatEmail:
		rules = append(rules, RuleFor("email", "Must be a valid email", isEmail))
	case TextFormatURL:
		rules = append(rules, RuleFor("url", "Must be a valid url", isURL))
	case TextFormatUUID:
		rules = append(rules, RuleFor("uuid", "Must be a valid uuid", isUUID))
	}
	return rules
}

func (t *Text) RuleDescriptions() []string {
	return t.ruleDescriptions(t.ShorthandRules())
}

func (t *Text) Validate(val any) Errors {
	return t.validate(val, t.ShorthandRules())
}

func (t *Text) IsCorrectDataType(val any) bool {
	_, ok := val.(string)
	return ok
}

func isEmail(val string) bool {
	addr, err := mail.ParseAddress(val)
	if err != nil || addr.Address != val {
		return false
	}
	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func isURL(val string) bool {
	u, err := url.ParseRequestURI(val)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
