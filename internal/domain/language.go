package domain

import (
	"slices"
	"strings"
)

// Language is a row of the language reference table.
type Language struct {
	Code       string
	Glottocode string
	NameRu     string
	NameEn     string
	Comment    string
	Latitude   *float64
	Longitude  *float64
}

// HasCoords reports whether both coordinates are known.
func (l Language) HasCoords() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Languages is the language reference table keyed by code.
type Languages map[string]Language

// NewLanguages indexes langs by code. Later rows win on repeated codes.
func NewLanguages(langs []Language) Languages {
	m := make(Languages, len(langs))
	for _, l := range langs {
		m[l.Code] = l
	}
	return m
}

// Sorted returns the languages ordered by code.
func (ls Languages) Sorted() []Language {
	out := make([]Language, 0, len(ls))
	for _, l := range ls {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b Language) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// IsVariantOf reports whether code is base or one of its private-use
// subtags (e.g. "os-x-iron" for "os").
func IsVariantOf(code, base string) bool {
	return code == base || strings.HasPrefix(code, base+"-")
}
