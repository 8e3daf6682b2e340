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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultMaxBodySize = 1024 * 1024 * 10

// DecodeJSON decodes a JSON document into plain Go values. Numbers are kept as
// json.Number so decimals are not rounded through float64.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var val any
	if err := dec.Decode(&val); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return val, nil
}

func ValidateJSON(t Type, data []byte) (Errors, error) {
	val, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return t.Validate(val), nil
}

// ValidateRequest decodes the body or form of req and validates it against t.
// A maxBodySize of zero or less means DefaultMaxBodySize.
func ValidateRequest(t Type, req *http.Request, maxBodySize int64) (Errors, error) {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	if req.Body != nil {
		defer req.Body.Close()
	}
	if req.ContentLength > maxBodySize {
		return nil, ErrBodyTooLarge
	}

	contentType := strings.TrimSpace(strings.Split(req.Header.Get("Content-Type"), ";")[0])
	switch contentType {
	case "application/json":
		buf, err := readBody(req.Body, maxBodySize)
		if err != nil {
			return nil, err
		}
		return ValidateJSON(t, buf)

	case "application/x-www-form-urlencoded":
		if err := req.ParseForm(); err != nil {
			return nil, fmt.Errorf("parsing form: %w", err)
		}
		return t.Validate(readForm(req.Form)), nil

	case "multipart/form-data":
		if err := req.ParseMultipartForm(maxBodySize); err != nil {
			return nil, fmt.Errorf("parsing multipart form: %w", err)
		}
		return t.Validate(readForm(req.Form)), nil

	default:
		if req.Method == http.MethodGet {
			if err := req.ParseForm(); err != nil {
				return nil, fmt.Errorf("parsing form: %w", err)
			}
			return t.Validate(readForm(req.Form)), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
}

func readBody(body io.Reader, maxBodySize int64) ([]byte, error) {
	if body == nil {
		return nil, fmt.Errorf("%w: empty body", ErrReadingBody)
	}
	buf, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingBody, err)
	}
	if int64(len(buf)) > maxBodySize {
		return nil, ErrBodyTooLarge
	}
	return buf, nil
}

// readForm keeps the first value of every form key.
func readForm(form url.Values) map[string]any {
	output := make(map[string]any, len(form))
	for k := range form {
		output[k] = form.Get(k)
	}
	return output
}
