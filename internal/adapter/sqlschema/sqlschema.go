// Package sqlschema maps the dictionary tables onto database rows. Both
// database adapters insert the same column lists in the same order.
package sqlschema

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
)

// Database table names.
const (
	Languages     = "languages"
	Entries       = "entries"
	Forms         = "forms"
	SenseGroups   = "sense_groups"
	Senses        = "senses"
	ExampleGroups = "example_groups"
	Examples      = "examples"
	Mentioneds    = "mentioneds"
	BuildRuns     = "build_runs"
)

// Columns lists the insert columns per table.
var Columns = map[string][]string{
	Languages:     {"code", "glottolog", "name_ru", "name_en", "comment", "lat", "long"},
	Entries:       {"db_id", "lemma", "lang", "num", "main_entry", "position"},
	Forms:         {"db_id", "entry_id", "orth", "lang", "rel_of", "rel_type"},
	SenseGroups:   {"db_id", "entry_id", "num"},
	Senses:        {"db_id", "entry_id", "description_ru", "description_en", "lang", "is_def", "sense_group", "num"},
	ExampleGroups: {"db_id", "entry_id", "num"},
	Examples:      {"db_id", "entry_id", "example_group", "text", "tr_ru", "tr_en", "num", "lang"},
	Mentioneds:    {"db_id", "xml_id", "entry_id", "langs", "form", "gloss_ru", "gloss_en"},
	BuildRuns: {"id", "source_dir", "documents", "skipped", "entries", "forms", "senses", "sense_groups",
		"examples", "example_groups", "mentioneds", "started_at", "finished_at"},
}

// Upserts holds the conflict clause of tables that may be loaded again
// over existing rows. Other tables fail on a repeated key.
var Upserts = map[string]string{
	Languages: "ON CONFLICT (code) DO UPDATE SET glottolog = excluded.glottolog, name_ru = excluded.name_ru, " +
		"name_en = excluded.name_en, comment = excluded.comment, lat = excluded.lat, long = excluded.long",
}

// InsertOrder lists the data tables so that every referenced row is
// inserted before the rows pointing at it.
var InsertOrder = []string{Languages, Entries, Forms, SenseGroups, Senses, ExampleGroups, Examples, Mentioneds}

// DeleteOrder is InsertOrder reversed, followed by the run log.
var DeleteOrder = []string{Mentioneds, Examples, ExampleGroups, Senses, SenseGroups, Forms, Entries, Languages, BuildRuns}

// Batch is the rows of one table ready for insertion.
type Batch struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Batches converts the tables into insert batches in InsertOrder. List
// values are []string (never nil); optional values are typed nil pointers.
func Batches(t *domain.Tables, langs domain.Languages) []Batch {
	return []Batch{
		batch(Languages, languageRows(langs)),
		batch(Entries, entryRows(t.Entries.Rows())),
		batch(Forms, formRows(t.Forms.Rows())),
		batch(SenseGroups, senseGroupRows(t.SenseGroups.Rows())),
		batch(Senses, senseRows(t.Senses.Rows())),
		batch(ExampleGroups, exampleGroupRows(t.ExampleGroups.Rows())),
		batch(Examples, exampleRows(t.Examples.Rows())),
		batch(Mentioneds, mentionedRows(t.Mentioneds.Rows())),
	}
}

// RunRow returns the build_runs row for run.
func RunRow(run domain.BuildRun) []any {
	c := run.Counts
	return []any{
		run.ID, run.SourceDir, run.Documents, run.Skipped,
		c.Entries, c.Forms, c.Senses, c.SenseGroups, c.Examples, c.ExampleGroups, c.Mentioneds,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
	}
}

func batch(table string, rows [][]any) Batch {
	return Batch{Table: table, Columns: Columns[table], Rows: rows}
}

func languageRows(langs domain.Languages) [][]any {
	rows := make([][]any, 0, len(langs))
	for _, l := range langs.Sorted() {
		rows = append(rows, []any{l.Code, l.Glottocode, l.NameRu, l.NameEn, l.Comment, l.Latitude, l.Longitude})
	}
	return rows
}

// entryRows puts headwords before sub-entries; position keeps the
// collation order of the table.
func entryRows(entries []domain.Entry) [][]any {
	rows := make([][]any, 0, len(entries))
	var subs [][]any
	for i, e := range entries {
		row := []any{e.ID, e.Lemma, e.Lang, e.Num, e.MainEntry, i}
		if e.IsSubEntry() {
			subs = append(subs, row)
			continue
		}
		rows = append(rows, row)
	}
	return append(rows, subs...)
}

func formRows(forms []domain.Form) [][]any {
	rows := make([][]any, 0, len(forms))
	for _, f := range forms {
		var rel *string
		if f.RelType != nil {
			s := f.RelType.String()
			rel = &s
		}
		rows = append(rows, []any{f.ID, f.EntryID, f.Orth, f.Lang, f.RelOf, rel})
	}
	return rows
}

func senseGroupRows(groups []domain.SenseGroup) [][]any {
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []any{g.ID, g.EntryID, g.Num})
	}
	return rows
}

func senseRows(senses []domain.Sense) [][]any {
	rows := make([][]any, 0, len(senses))
	for _, s := range senses {
		rows = append(rows, []any{s.ID, s.EntryID, s.DescriptionRu, s.DescriptionEn, s.Lang, s.IsDef, s.SenseGroup, s.Num})
	}
	return rows
}

func exampleGroupRows(groups []domain.ExampleGroup) [][]any {
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []any{g.ID, g.EntryID, g.Num})
	}
	return rows
}

func exampleRows(examples []domain.Example) [][]any {
	rows := make([][]any, 0, len(examples))
	for _, e := range examples {
		rows = append(rows, []any{e.ID, e.EntryID, e.ExampleGroup, e.Text, e.TrRu, e.TrEn, e.Num, e.Lang})
	}
	return rows
}

func mentionedRows(ms []domain.Mentioned) [][]any {
	rows := make([][]any, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []any{m.ID, list(m.XMLIDs), m.EntryID, list(m.Langs), list(m.Forms), list(m.GlossRu), list(m.GlossEn)})
	}
	return rows
}

func list(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
