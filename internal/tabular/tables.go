package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// FileInfo describes one written CSV file.
type FileInfo struct {
	Table  string   `yaml:"table"`
	File   string   `yaml:"file"`
	Header []string `yaml:"header"`
	Rows   int      `yaml:"rows"`
}

// WriteTables writes the language table and the seven extracted tables into
// dir, creating it if needed. Rows keep table order. A list item that
// contains the list delimiter is a validation error and nothing is written.
func WriteTables(dir string, t *domain.Tables, langs domain.Languages, opts Options) ([]FileInfo, error) {
	c := codec{delim: opts.delim()}
	if err := checkRows(c, mentionedSheet, t.Mentioneds.Rows()); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	files := make([]FileInfo, 0, 8)

	langPath := filepath.Join(dir, File(domain.TableLanguages))
	if err := writeFile(langPath, func(w io.Writer) error { return WriteLanguages(w, langs) }); err != nil {
		return nil, err
	}
	files = append(files, FileInfo{
		Table: domain.TableLanguages, File: File(domain.TableLanguages),
		Header: languageHeader, Rows: len(langs),
	})

	steps := []func() (FileInfo, error){
		func() (FileInfo, error) { return writeSheet(dir, c, entrySheet, t.Entries.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, formSheet, t.Forms.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, senseSheet, t.Senses.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, senseGroupSheet, t.SenseGroups.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, exampleSheet, t.Examples.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, exampleGroupSheet, t.ExampleGroups.Rows()) },
		func() (FileInfo, error) { return writeSheet(dir, c, mentionedSheet, t.Mentioneds.Rows()) },
	}
	for _, step := range steps {
		info, err := step()
		if err != nil {
			return nil, err
		}
		files = append(files, info)
	}
	return files, nil
}

// ReadTables reads the files written by WriteTables from dir.
func ReadTables(dir string, opts Options) (*domain.Tables, domain.Languages, error) {
	c := codec{delim: opts.delim()}

	f, err := os.Open(filepath.Join(dir, File(domain.TableLanguages)))
	if err != nil {
		return nil, nil, fmt.Errorf("open languages: %w", err)
	}
	defer f.Close()
	langs, err := ReadLanguages(f)
	if err != nil {
		return nil, nil, err
	}

	t := domain.NewTables()
	steps := []func() error{
		func() error { return readInto(dir, c, entrySheet, t.Entries) },
		func() error { return readInto(dir, c, formSheet, t.Forms) },
		func() error { return readInto(dir, c, senseSheet, t.Senses) },
		func() error { return readInto(dir, c, senseGroupSheet, t.SenseGroups) },
		func() error { return readInto(dir, c, exampleSheet, t.Examples) },
		func() error { return readInto(dir, c, exampleGroupSheet, t.ExampleGroups) },
		func() error { return readInto(dir, c, mentionedSheet, t.Mentioneds) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, nil, err
		}
	}
	return t, langs, nil
}

func checkRows[T domain.Record](c codec, s sheet[T], rows []T) error {
	if s.check == nil {
		return nil
	}
	for _, r := range rows {
		if err := s.check(c, r); err != nil {
			return fmt.Errorf("%s %s: %w", s.name, r.RecordID(), err)
		}
	}
	return nil
}

func writeSheet[T domain.Record](dir string, c codec, s sheet[T], rows []T) (FileInfo, error) {
	name := File(s.name)
	err := writeFile(filepath.Join(dir, name), func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(s.header); err != nil {
			return err
		}
		for _, r := range rows {
			if err := cw.Write(s.encode(c, r)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{Table: s.name, File: name, Header: s.header, Rows: len(rows)}, nil
}

func readInto[T domain.Record](dir string, c codec, s sheet[T], table *domain.Table[T]) error {
	f, err := os.Open(filepath.Join(dir, File(s.name)))
	if err != nil {
		return fmt.Errorf("open %s: %w", s.name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(s.header)

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", s.name, err)
	}
	if !slices.Equal(header, s.header) {
		return fmt.Errorf("%s: unexpected header %v", s.name, header)
	}

	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", s.name, err)
		}
		line++

		row, err := s.decode(c, rec)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", s.name, line, err)
		}
		if err := table.Add(row); err != nil {
			return fmt.Errorf("%s line %d: %w", s.name, line, err)
		}
	}
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
