// Package corpus merges per-document extraction results into one set of
// tables, fills in inherited languages and orders the entries.
package corpus

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/abaevdict/internal/collation"
	"github.com/heartmarshall/abaevdict/internal/domain"
)

// Languages names the codes used when a record has no language of its own.
type Languages struct {
	// Primary is assigned to headwords without xml:lang.
	Primary string
	// Dialect replaces Primary on examples, which are quoted in a dialect.
	Dialect string
}

// DefaultLanguages returns Ossetic with Iron as the example dialect.
func DefaultLanguages() Languages {
	return Languages{Primary: "os", Dialect: "os-x-iron"}
}

// Builder accumulates document tables in the order they are added.
type Builder struct {
	langs  Languages
	tables *domain.Tables
	docs   int
}

// NewBuilder creates an empty Builder.
func NewBuilder(langs Languages) *Builder {
	return &Builder{langs: langs, tables: domain.NewTables()}
}

// Add merges the tables of one document. A repeated id in any table fails
// with domain.ErrDuplicateID and leaves the builder unchanged.
func (b *Builder) Add(doc string, t *domain.Tables) error {
	if err := b.tables.Merge(t); err != nil {
		return domain.WithDoc(err, doc)
	}
	b.docs++
	return nil
}

// Documents returns the number of documents merged so far.
func (b *Builder) Documents() int { return b.docs }

// Finish validates entry parents, fills missing languages and sorts the
// entries by collation key. The builder must not be used afterwards.
func (b *Builder) Finish() (*domain.Tables, error) {
	t := b.tables

	for _, e := range t.Entries.Rows() {
		if e.MainEntry != nil && !t.Entries.Has(*e.MainEntry) {
			return nil, domain.NewExtractError(domain.ErrMalformedEntry, e.ID,
				fmt.Sprintf("main entry %q not found", *e.MainEntry))
		}
	}

	if err := b.inheritEntryLangs(); err != nil {
		return nil, err
	}
	if err := b.inheritFormLangs(); err != nil {
		return nil, err
	}

	senses := t.Senses.Rows()
	for i := range senses {
		if senses[i].Lang == nil {
			senses[i].Lang = b.entryLang(senses[i].EntryID)
		}
	}

	examples := t.Examples.Rows()
	for i := range examples {
		if examples[i].Lang != nil {
			continue
		}
		lang := b.entryLang(examples[i].EntryID)
		if lang != nil && *lang == b.langs.Primary {
			lang = ptr(b.langs.Dialect)
		}
		examples[i].Lang = lang
	}

	collation.SortTable(t.Entries)
	return t, nil
}

func (b *Builder) inheritEntryLangs() error {
	entries := b.tables.Entries.Rows()
	resolved := make(map[string]*string, len(entries))

	var resolve func(id string, depth int) (*string, error)
	resolve = func(id string, depth int) (*string, error) {
		if lang, ok := resolved[id]; ok {
			return lang, nil
		}
		if depth > len(entries) {
			return nil, domain.NewExtractError(domain.ErrMalformedEntry, id, "cyclic main entry chain")
		}
		e, _ := b.tables.Entries.Get(id)
		var lang *string
		switch {
		case e.Lang != nil:
			lang = ptr(*e.Lang)
		case e.MainEntry != nil:
			parent, err := resolve(*e.MainEntry, depth+1)
			if err != nil {
				return nil, err
			}
			lang = ptr(*parent)
		default:
			lang = ptr(b.langs.Primary)
		}
		resolved[id] = lang
		return lang, nil
	}

	for i := range entries {
		lang, err := resolve(entries[i].ID, 0)
		if err != nil {
			return err
		}
		entries[i].Lang = lang
	}
	return nil
}

func (b *Builder) inheritFormLangs() error {
	forms := b.tables.Forms.Rows()
	resolved := make(map[string]*string, len(forms))

	var resolve func(id string, depth int) (*string, error)
	resolve = func(id string, depth int) (*string, error) {
		if lang, ok := resolved[id]; ok {
			return lang, nil
		}
		if depth > len(forms) {
			return nil, domain.NewExtractError(domain.ErrMalformedEntry, id, "cyclic form relation")
		}
		f, ok := b.tables.Forms.Get(id)
		if !ok {
			return nil, domain.NewExtractError(domain.ErrDanglingCrossReference, id, "related form not found")
		}
		var lang *string
		switch {
		case f.Lang != nil:
			lang = f.Lang
		case f.RelOf != nil:
			rel, err := resolve(*f.RelOf, depth+1)
			if err != nil {
				return nil, err
			}
			lang = rel
		default:
			lang = b.entryLang(f.EntryID)
		}
		resolved[id] = lang
		return lang, nil
	}

	for i := range forms {
		lang, err := resolve(forms[i].ID, 0)
		if err != nil {
			return err
		}
		if lang != nil {
			forms[i].Lang = ptr(*lang)
		}
	}
	return nil
}

// entryLang returns a copy of the owning entry's language.
func (b *Builder) entryLang(entryID string) *string {
	e, ok := b.tables.Entries.Get(entryID)
	if !ok || e.Lang == nil {
		return nil
	}
	return ptr(*e.Lang)
}

func ptr(s string) *string { return &s }

// UnknownLanguages returns the distinct language codes used by t that are
// missing from the reference table, sorted.
func UnknownLanguages(t *domain.Tables, known domain.Languages) []string {
	seen := make(map[string]bool)
	check := func(code *string) {
		if code != nil && *code != "" {
			if _, ok := known[*code]; !ok {
				seen[*code] = true
			}
		}
	}

	for _, e := range t.Entries.Rows() {
		check(e.Lang)
	}
	for _, f := range t.Forms.Rows() {
		check(f.Lang)
	}
	for _, s := range t.Senses.Rows() {
		check(s.Lang)
	}
	for _, ex := range t.Examples.Rows() {
		check(ex.Lang)
	}
	for _, m := range t.Mentioneds.Rows() {
		for _, code := range m.Langs {
			check(&code)
		}
	}

	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
