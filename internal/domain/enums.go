package domain

// FormRelType is the kind of relation a nested form has to its parent form.
type FormRelType string

const (
	FormRelVariant    FormRelType = "variant"
	FormRelParticiple FormRelType = "participle"
)

func (t FormRelType) String() string { return string(t) }

func (t FormRelType) IsValid() bool {
	switch t {
	case FormRelVariant, FormRelParticiple:
		return true
	}
	return false
}

// ParseFormRelType maps a markup type attribute to a relation kind.
func ParseFormRelType(s string) (FormRelType, bool) {
	t := FormRelType(s)
	return t, t.IsValid()
}

// OnError selects how the pipeline reacts to a document that fails extraction.
type OnError string

const (
	OnErrorAbort OnError = "abort"
	OnErrorSkip  OnError = "skip"
)

func (o OnError) String() string { return string(o) }

func (o OnError) IsValid() bool {
	switch o {
	case OnErrorAbort, OnErrorSkip:
		return true
	}
	return false
}
