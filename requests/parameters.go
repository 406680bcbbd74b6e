// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"encoding/json"
	"fmt"
	"time"
)

// Parameter is one named value of a request, normalized for the wire.
//
// A file-like input leaves Value nil and carries the payload in Files. A
// sequence input always keeps a (possibly empty) slice in Value, with any
// extracted files alongside in element order.
type Parameter struct {
	Name  string
	Value any
	Files []*InputFile
}

// FromInput normalizes one raw key-value pair as passed in through the
// client facade.
//
// Scalar values convert individually: time.Time becomes a Unix timestamp,
// *InputFile moves into Files, everything else passes through. Slice
// values expand element-wise with the same conversions.
func FromInput(name string, value any) Parameter {
	switch v := value.(type) {
	case []any:
		return fromSequence(name, v)
	case []string:
		return fromSequence(name, generalize(v))
	case []int:
		return fromSequence(name, generalize(v))
	case []int64:
		return fromSequence(name, generalize(v))
	case []float64:
		return fromSequence(name, generalize(v))
	case []time.Time:
		return fromSequence(name, generalize(v))
	case []*InputFile:
		return fromSequence(name, generalize(v))
	default:
		converted, files := convertValue(value)

		return Parameter{Name: name, Value: converted, Files: files}
	}
}

func generalize[T any](values []T) []any {
	seq := make([]any, len(values))
	for i, v := range values {
		seq[i] = v
	}

	return seq
}

func fromSequence(name string, seq []any) Parameter {
	values := make([]any, 0, len(seq))

	var files []*InputFile

	for _, item := range seq {
		converted, itemFiles := convertValue(item)
		if converted != nil {
			values = append(values, converted)
		}

		files = append(files, itemFiles...)
	}

	return Parameter{Name: name, Value: values, Files: files}
}

// convertValue converts one scalar into something the JSON encoder can
// take, splitting off any file payload.
func convertValue(value any) (any, []*InputFile) {
	switch v := value.(type) {
	case time.Time:
		return v.Unix(), nil
	case *InputFile:
		if v == nil {
			return nil, nil
		}

		return nil, []*InputFile{v}
	default:
		return value, nil
	}
}

// jsonValue renders the normalized value for the wire. Strings pass
// through unquoted; a nil value reports absent.
func (p Parameter) jsonValue() (string, bool, error) {
	switch v := p.Value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	default:
		encoded, err := json.Marshal(p.Value)
		if err != nil {
			return "", false, fmt.Errorf("failed to encode parameter %q: %w", p.Name, err)
		}

		return string(encoded), true, nil
	}
}
