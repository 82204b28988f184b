package extract

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Document assembles the tables for the first entry element of doc: the
// headword with its forms, senses, examples and cited forms, then every
// innermost re element with a lemma as a sub-entry with its own senses and
// examples. Errors name the document and the offending node.
func (x *Extractor) Document(doc *markup.Document) (*domain.Tables, error) {
	t, err := x.document(doc)
	if err != nil {
		return nil, domain.WithDoc(err, doc.Name)
	}
	return t, nil
}

func (x *Extractor) document(doc *markup.Document) (*domain.Tables, error) {
	entries, err := doc.ElementsByName("entry")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, malformed("", "no entry element")
	}
	root := entries[0]

	id, err := requireID(root, "")
	if err != nil {
		return nil, err
	}
	lemma := lemmaOf(root)
	if lemma == "" {
		return nil, malformed(id, "entry without lemma")
	}
	num, err := optInt(root, "n")
	if err != nil {
		return nil, err
	}

	t := domain.NewTables()
	if err := t.Entries.Add(domain.Entry{
		ID:    id,
		Lemma: lemma,
		Lang:  optString(root, "xml:lang"),
		Num:   num,
	}); err != nil {
		return nil, err
	}

	forms, err := x.Forms(root, id)
	if err != nil {
		return nil, err
	}
	if err := t.Forms.AddAll(forms); err != nil {
		return nil, err
	}

	if err := x.sensesAndExamples(t, root, id); err != nil {
		return nil, err
	}

	mentioned, err := x.Mentioneds(doc, root, id)
	if err != nil {
		return nil, err
	}
	if err := t.Mentioneds.AddAll(mentioned); err != nil {
		return nil, err
	}

	for _, re := range root.Descendants("re") {
		if re.HasChild("re") {
			continue
		}
		subLemma := lemmaOf(re)
		if subLemma == "" {
			continue
		}
		subID, err := requireID(re, id)
		if err != nil {
			return nil, err
		}
		subNum, err := optInt(re, "n")
		if err != nil {
			return nil, err
		}

		parent := id
		if err := t.Entries.Add(domain.Entry{
			ID:        subID,
			Lemma:     subLemma,
			Lang:      optString(re, "xml:lang"),
			Num:       subNum,
			MainEntry: &parent,
		}); err != nil {
			return nil, err
		}
		if err := x.sensesAndExamples(t, re, subID); err != nil {
			return nil, err
		}
		x.stats.SubEntries++
	}

	return t, nil
}

func (x *Extractor) sensesAndExamples(t *domain.Tables, node markup.Node, entryID string) error {
	senses, senseGroups, err := x.Senses(node, entryID)
	if err != nil {
		return err
	}
	if err := t.SenseGroups.AddAll(senseGroups); err != nil {
		return err
	}
	if err := t.Senses.AddAll(senses); err != nil {
		return err
	}

	examples, exampleGroups, err := x.Examples(node, entryID)
	if err != nil {
		return err
	}
	if err := t.ExampleGroups.AddAll(exampleGroups); err != nil {
		return err
	}
	return t.Examples.AddAll(examples)
}
