package domain

import (
	"fmt"
	"slices"
)

// Table names, shared by the CSV files and the database schema.
const (
	TableLanguages     = "languages"
	TableEntries       = "entries"
	TableForms         = "forms"
	TableSenses        = "senses"
	TableSenseGroups   = "senseGroups"
	TableExamples      = "examples"
	TableExampleGroups = "exampleGroups"
	TableMentioneds    = "mentioneds"
)

// Record is implemented by every extracted record type.
type Record interface {
	RecordID() string
}

// Table is an insertion-ordered collection of records with unique ids.
type Table[T Record] struct {
	name  string
	rows  []T
	index map[string]int
}

// NewTable creates an empty table.
func NewTable[T Record](name string) *Table[T] {
	return &Table[T]{name: name, index: make(map[string]int)}
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) Len() int { return len(t.rows) }

// Rows returns the records in order. Callers may modify elements in place
// but must not change their ids.
func (t *Table[T]) Rows() []T { return t.rows }

// Get returns the record with the given id.
func (t *Table[T]) Get(id string) (T, bool) {
	i, ok := t.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.rows[i], true
}

// Has reports whether id is present.
func (t *Table[T]) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Add appends rec, failing with ErrDuplicateID if its id is taken.
func (t *Table[T]) Add(rec T) error {
	id := rec.RecordID()
	if _, ok := t.index[id]; ok {
		return NewExtractError(ErrDuplicateID, id, "table "+t.name)
	}
	t.index[id] = len(t.rows)
	t.rows = append(t.rows, rec)
	return nil
}

// AddAll adds every record in order, stopping at the first error.
func (t *Table[T]) AddAll(recs []T) error {
	for _, rec := range recs {
		if err := t.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// Merge appends the rows of other.
func (t *Table[T]) Merge(other *Table[T]) error {
	if other == nil {
		return nil
	}
	return t.AddAll(other.rows)
}

func (t *Table[T]) conflict(other *Table[T]) error {
	if other == nil {
		return nil
	}
	for _, rec := range other.rows {
		if t.Has(rec.RecordID()) {
			return NewExtractError(ErrDuplicateID, rec.RecordID(), "table "+t.name)
		}
	}
	return nil
}

// SortStableFunc reorders the rows and rebuilds the id index.
func (t *Table[T]) SortStableFunc(cmp func(a, b T) int) {
	slices.SortStableFunc(t.rows, cmp)
	for i, rec := range t.rows {
		t.index[rec.RecordID()] = i
	}
}

// Tables holds the seven extracted relations.
type Tables struct {
	Entries       *Table[Entry]
	Forms         *Table[Form]
	Senses        *Table[Sense]
	SenseGroups   *Table[SenseGroup]
	Examples      *Table[Example]
	ExampleGroups *Table[ExampleGroup]
	Mentioneds    *Table[Mentioned]
}

// NewTables creates an empty set of tables.
func NewTables() *Tables {
	return &Tables{
		Entries:       NewTable[Entry](TableEntries),
		Forms:         NewTable[Form](TableForms),
		Senses:        NewTable[Sense](TableSenses),
		SenseGroups:   NewTable[SenseGroup](TableSenseGroups),
		Examples:      NewTable[Example](TableExamples),
		ExampleGroups: NewTable[ExampleGroup](TableExampleGroups),
		Mentioneds:    NewTable[Mentioned](TableMentioneds),
	}
}

// Merge appends every table of other, failing on the first repeated id.
// Nothing is merged when any id collides.
func (t *Tables) Merge(other *Tables) error {
	if other == nil {
		return nil
	}
	checks := []func() error{
		func() error { return t.Entries.conflict(other.Entries) },
		func() error { return t.Forms.conflict(other.Forms) },
		func() error { return t.Senses.conflict(other.Senses) },
		func() error { return t.SenseGroups.conflict(other.SenseGroups) },
		func() error { return t.Examples.conflict(other.Examples) },
		func() error { return t.ExampleGroups.conflict(other.ExampleGroups) },
		func() error { return t.Mentioneds.conflict(other.Mentioneds) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	steps := []func() error{
		func() error { return t.Entries.Merge(other.Entries) },
		func() error { return t.Forms.Merge(other.Forms) },
		func() error { return t.Senses.Merge(other.Senses) },
		func() error { return t.SenseGroups.Merge(other.SenseGroups) },
		func() error { return t.Examples.Merge(other.Examples) },
		func() error { return t.ExampleGroups.Merge(other.ExampleGroups) },
		func() error { return t.Mentioneds.Merge(other.Mentioneds) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns the number of rows per table.
func (t *Tables) Counts() TableCounts {
	return TableCounts{
		Entries:       t.Entries.Len(),
		Forms:         t.Forms.Len(),
		Senses:        t.Senses.Len(),
		SenseGroups:   t.SenseGroups.Len(),
		Examples:      t.Examples.Len(),
		ExampleGroups: t.ExampleGroups.Len(),
		Mentioneds:    t.Mentioneds.Len(),
	}
}

// TableCounts holds row counts per extracted table.
type TableCounts struct {
	Entries       int `yaml:"entries"`
	Forms         int `yaml:"forms"`
	Senses        int `yaml:"senses"`
	SenseGroups   int `yaml:"sense_groups"`
	Examples      int `yaml:"examples"`
	ExampleGroups int `yaml:"example_groups"`
	Mentioneds    int `yaml:"mentioneds"`
}

// Total returns the sum of all counts.
func (c TableCounts) Total() int {
	return c.Entries + c.Forms + c.Senses + c.SenseGroups + c.Examples + c.ExampleGroups + c.Mentioneds
}

func (c TableCounts) String() string {
	return fmt.Sprintf("entries=%d forms=%d senses=%d sense_groups=%d examples=%d example_groups=%d mentioneds=%d",
		c.Entries, c.Forms, c.Senses, c.SenseGroups, c.Examples, c.ExampleGroups, c.Mentioneds)
}
