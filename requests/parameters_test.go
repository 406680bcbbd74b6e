// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"testing"
	"time"
)

func mustJSONValue(t *testing.T, p Parameter) (string, bool) {
	t.Helper()

	value, present, err := p.jsonValue()
	if err != nil {
		t.Fatalf("jsonValue(%q): %v", p.Name, err)
	}

	return value, present
}

func TestFromInputScalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       any
		wantValue   string
		wantPresent bool
	}{
		{name: "string stays unquoted", input: "search term", wantValue: "search term", wantPresent: true},
		{name: "int", input: 12345, wantValue: "12345", wantPresent: true},
		{name: "bool", input: true, wantValue: "true", wantPresent: true},
		{name: "float", input: 1.5, wantValue: "1.5", wantPresent: true},
		{name: "nil is absent", input: nil, wantValue: "", wantPresent: false},
		{
			name:        "time becomes a unix timestamp",
			input:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			wantValue:   "1717243200",
			wantPresent: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			param := FromInput("key", tt.input)

			if len(param.Files) != 0 {
				t.Errorf("Files = %v, want none", param.Files)
			}

			value, present := mustJSONValue(t, param)
			if present != tt.wantPresent || value != tt.wantValue {
				t.Errorf("jsonValue = (%q, %v), want (%q, %v)", value, present, tt.wantValue, tt.wantPresent)
			}
		})
	}
}

func TestFromInputExtractsFile(t *testing.T) {
	t.Parallel()

	file, err := NewInputFile([]byte("content"), "pic.png")
	if err != nil {
		t.Fatal(err)
	}

	param := FromInput("cover", file)

	if _, present := mustJSONValue(t, param); present {
		t.Error("file parameter should have no wire value")
	}

	if len(param.Files) != 1 || param.Files[0] != file {
		t.Errorf("Files = %v, want the input file", param.Files)
	}
}

func TestFromInputSequences(t *testing.T) {
	t.Parallel()

	t.Run("scalar sequence", func(t *testing.T) {
		t.Parallel()

		param := FromInput("ids", []int{1, 2, 3})

		value, present := mustJSONValue(t, param)
		if !present || value != "[1,2,3]" {
			t.Errorf("jsonValue = (%q, %v)", value, present)
		}
	})

	t.Run("string sequence is JSON encoded", func(t *testing.T) {
		t.Parallel()

		param := FromInput("tags", []string{"original", "scenery"})

		value, present := mustJSONValue(t, param)
		if !present || value != `["original","scenery"]` {
			t.Errorf("jsonValue = (%q, %v)", value, present)
		}
	})

	t.Run("time elements convert", func(t *testing.T) {
		t.Parallel()

		stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		param := FromInput("dates", []time.Time{stamp})

		value, _ := mustJSONValue(t, param)
		if value != "[1717243200]" {
			t.Errorf("jsonValue = %q", value)
		}
	})

	t.Run("mixed sequence splits files from values", func(t *testing.T) {
		t.Parallel()

		first, err := NewInputFile([]byte("a"), "a.png")
		if err != nil {
			t.Fatal(err)
		}

		second, err := NewInputFile([]byte("b"), "b.png")
		if err != nil {
			t.Fatal(err)
		}

		param := FromInput("attachments", []any{first, "caption", second})

		value, _ := mustJSONValue(t, param)
		if value != `["caption"]` {
			t.Errorf("jsonValue = %q", value)
		}

		if len(param.Files) != 2 || param.Files[0] != first || param.Files[1] != second {
			t.Errorf("Files = %v, want both files in order", param.Files)
		}
	})

	t.Run("pure file sequence keeps an empty list value", func(t *testing.T) {
		t.Parallel()

		file, err := NewInputFile([]byte("a"), "a.png")
		if err != nil {
			t.Fatal(err)
		}

		param := FromInput("pages", []*InputFile{file, file})

		value, present := mustJSONValue(t, param)
		if !present || value != "[]" {
			t.Errorf("jsonValue = (%q, %v), want (%q, true)", value, present, "[]")
		}

		if len(param.Files) != 2 {
			t.Errorf("len(Files) = %d, want 2", len(param.Files))
		}
	})

	t.Run("nil elements are dropped", func(t *testing.T) {
		t.Parallel()

		param := FromInput("ids", []any{1, nil, 2})

		value, _ := mustJSONValue(t, param)
		if value != "[1,2]" {
			t.Errorf("jsonValue = %q", value)
		}
	})
}
