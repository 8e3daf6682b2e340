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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SelfKey is the key used for a structured type's own rule failures when
// errors are rendered as a flat map or as JSON.
const SelfKey = "_self"

var (
	ErrInvalidJSON            = errors.New("invalid JSON value")
	ErrBodyTooLarge           = errors.New("request body too large")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrReadingBody            = errors.New("reading request body")
)

// Errors is the result of validating a value. A nil Errors means the value is
// valid. Non-nil results are either Messages (a scalar type failed some
// rules) or *Nested (a record or list has failing children or own rules).
type Errors interface {
	isErrors()
}

// Messages holds rule failure descriptions in rule order.
type Messages []string

func (Messages) isErrors() {}

// Entry is the validation result of one child of a structured value, keyed by
// field code name or list index.
type Entry struct {
	Key    string
	Errors Errors
}

// Nested holds the failures of a record or list. Only failing children are
// present, in field or index order.
type Nested struct {
	Self  Messages
	Items []Entry
}

func (*Nested) isErrors() {}

func (n *Nested) Get(key string) Errors {
	for _, e := range n.Items {
		if e.Key == key {
			return e.Errors
		}
	}
	return nil
}

func (n *Nested) Keys() []string {
	keys := make([]string, len(n.Items))
	for i, e := range n.Items {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON renders own failures under "_self" followed by the children in
// order. A record field whose code name is "_self" would be indistinguishable
// in this form.
func (n *Nested) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, val any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if len(n.Self) > 0 {
		if err := write(SelfKey, n.Self); err != nil {
			return nil, err
		}
	}
	for _, e := range n.Items {
		if err := write(e.Key, e.Errors); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Flatten turns an error tree into a map of dotted paths to messages. Own
// failures of a structure at path p are stored under "p._self"; own failures
// of the root structure under "_self". A scalar result is stored under "".
func Flatten(errs Errors) map[string][]string {
	out := make(map[string][]string)
	flatten("", errs, out)
	return out
}

func flatten(prefix string, errs Errors, out map[string][]string) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}
	switch errs := errs.(type) {
	case Messages:
		out[prefix] = errs
	case *Nested:
		if errs == nil {
			return
		}
		if len(errs.Self) > 0 {
			out[join(SelfKey)] = errs.Self
		}
		for _, e := range errs.Items {
			flatten(join(e.Key), e.Errors, out)
		}
	}
}

// ValidationError adapts a non-nil validation result to the error interface.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	flat := Flatten(e.Errors)
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		msg := strings.Join(flat[p], ", ")
		if p == "" {
			parts = append(parts, msg)
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", p, msg))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsError returns nil for a valid result and a *ValidationError otherwise.
func AsError(errs Errors) error {
	if errs == nil {
		return nil
	}
	return &ValidationError{Errors: errs}
}
