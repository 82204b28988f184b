package domain

// Entry is a headword (top-level) or a sub-entry nested under a headword.
type Entry struct {
	ID        string
	Lemma     string
	Lang      *string
	Num       *int
	MainEntry *string
}

func (e Entry) RecordID() string { return e.ID }

// IsSubEntry reports whether the entry belongs to a parent headword.
func (e Entry) IsSubEntry() bool { return e.MainEntry != nil }

// Form is an orthographic form of an entry. Nested forms point at the form
// they derive from through RelOf and RelType.
type Form struct {
	ID      string
	EntryID string
	Orth    string
	Lang    *string
	RelOf   *string
	RelType *FormRelType
}

func (f Form) RecordID() string { return f.ID }

// Validate checks that the relation fields are set together.
func (f Form) Validate() error {
	if (f.RelOf == nil) != (f.RelType == nil) {
		return NewValidationError("rel_type", "must be set exactly when rel_of is set")
	}
	if f.RelType != nil && !f.RelType.IsValid() {
		return NewValidationError("rel_type", "unknown relation kind "+f.RelType.String())
	}
	return nil
}

// Sense is a leaf meaning of an entry, optionally part of a SenseGroup.
type Sense struct {
	ID            string
	EntryID       string
	DescriptionRu string
	DescriptionEn string
	Lang          *string
	IsDef         bool
	SenseGroup    *string
	Num           *int
}

func (s Sense) RecordID() string { return s.ID }

// SenseGroup collects numbered sub-senses.
type SenseGroup struct {
	ID      string
	EntryID string
	Num     *int
}

func (g SenseGroup) RecordID() string { return g.ID }

// Example is a quoted usage example with optional translations.
type Example struct {
	ID           string
	EntryID      string
	ExampleGroup string
	Text         string
	TrRu         *string
	TrEn         *string
	Num          *int
	Lang         *string
}

func (e Example) RecordID() string { return e.ID }

// ExampleGroup collects examples illustrating one numbered sense.
type ExampleGroup struct {
	ID      string
	EntryID string
	Num     *int
}

func (g ExampleGroup) RecordID() string { return g.ID }

// Mentioned is a word form cited in an etymology section, possibly paired
// with its English counterpart through a cross-reference.
type Mentioned struct {
	ID      string
	XMLIDs  []string
	EntryID string
	Langs   []string
	Forms   []string
	GlossRu []string
	GlossEn []string
}

func (m Mentioned) RecordID() string { return m.ID }
