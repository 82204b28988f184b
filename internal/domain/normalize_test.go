package domain

import (
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "case preserved", input: "Hello World", want: "Hello World"},
		{name: "compress multiple spaces", input: "hello   world", want: "hello world"},
		{name: "newlines and tabs", input: "a\n\t b", want: "a b"},
		{name: "no-break space", input: "a\u00a0b", want: "a b"},
		{name: "diacritics preserved", input: " ǽvzag ", want: "ǽvzag"},
		{name: "ejective apostrophe preserved", input: "kʼæ", want: "kʼæ"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: " \n\t ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		got := Normalize(s)

		if Normalize(got) != got {
			t.Fatalf("Normalize is not idempotent for %q", s)
		}
		if strings.Contains(got, "  ") {
			t.Fatalf("Normalize(%q) = %q contains a double space", s, got)
		}
		if got != strings.TrimFunc(got, unicode.IsSpace) {
			t.Fatalf("Normalize(%q) = %q has surrounding whitespace", s, got)
		}
	})
}

func TestStrPtr(t *testing.T) {
	t.Parallel()

	if StrPtr("") != nil {
		t.Error("StrPtr(\"\") should be nil")
	}
	if p := StrPtr("os"); p == nil || *p != "os" {
		t.Errorf("StrPtr(\"os\") = %v", p)
	}
	if Deref(nil) != "" {
		t.Error("Deref(nil) should be empty")
	}
}
