package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// ReadLanguages parses a language reference CSV. The header row is
// required; columns are matched by name so extra columns are ignored.
// Rows without a code are skipped.
func ReadLanguages(r io.Reader) (domain.Languages, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Languages{}, nil
		}
		return nil, fmt.Errorf("read languages header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	if _, ok := col["code"]; !ok {
		return nil, fmt.Errorf("languages: missing code column")
	}
	cell := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var langs []domain.Language
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read languages: %w", err)
		}
		line++

		code := cell(rec, "code")
		if code == "" {
			continue
		}
		lat, err := parseOptFloat("lat", cell(rec, "lat"))
		if err != nil {
			return nil, fmt.Errorf("languages line %d: %w", line, err)
		}
		long, err := parseOptFloat("long", cell(rec, "long"))
		if err != nil {
			return nil, fmt.Errorf("languages line %d: %w", line, err)
		}

		langs = append(langs, domain.Language{
			Code:       code,
			Glottocode: cell(rec, "glottolog"),
			NameRu:     cell(rec, "ru"),
			NameEn:     cell(rec, "en"),
			Comment:    cell(rec, "comment"),
			Latitude:   lat,
			Longitude:  long,
		})
	}

	return domain.NewLanguages(langs), nil
}

// ReadLanguagesFile opens and parses the CSV at path.
func ReadLanguagesFile(path string) (domain.Languages, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open languages file: %w", err)
	}
	defer f.Close()
	return ReadLanguages(f)
}

// WriteLanguages writes langs sorted by code.
func WriteLanguages(w io.Writer, langs domain.Languages) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(languageHeader); err != nil {
		return err
	}
	for _, l := range langs.Sorted() {
		if err := cw.Write([]string{
			l.Code, l.Glottocode, l.NameRu, l.NameEn, l.Comment,
			optFloat(l.Latitude), optFloat(l.Longitude),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLanguagesFile writes langs to path, replacing it.
func WriteLanguagesFile(path string, langs domain.Languages) error {
	return writeFile(path, func(w io.Writer) error { return WriteLanguages(w, langs) })
}
