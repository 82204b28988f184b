package extract

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Examples extracts exampleGrp children of node and their examples.
// Examples marked xml:lang="ru" duplicate a translation and are ignored;
// examples whose quote is empty are skipped.
func (x *Extractor) Examples(node markup.Node, entryID string) ([]domain.Example, []domain.ExampleGroup, error) {
	var (
		examples []domain.Example
		groups   []domain.ExampleGroup
	)

	for _, gn := range node.Children("exampleGrp") {
		groupID, err := requireID(gn, entryID)
		if err != nil {
			return nil, nil, err
		}
		num, err := optInt(gn, "n")
		if err != nil {
			return nil, nil, err
		}
		groups = append(groups, domain.ExampleGroup{ID: groupID, EntryID: entryID, Num: num})

		for _, en := range gn.Children("example") {
			if lang, ok := en.Lang(); ok && lang == LocaleRu {
				continue
			}

			var text string
			if q, ok := en.FirstChild("quote"); ok {
				text = q.Text()
			}
			if text == "" {
				x.stats.EmptyExamples++
				continue
			}

			id, err := requireID(en, groupID)
			if err != nil {
				return nil, nil, err
			}

			ex := domain.Example{
				ID:           id,
				EntryID:      entryID,
				ExampleGroup: groupID,
				Text:         text,
				Num:          num,
				Lang:         optString(en, "xml:lang"),
			}
			if tr, ok := quote(en, "tr", LocaleRu); ok {
				ex.TrRu = domain.StrPtr(tr)
			}
			if tr, ok := quote(en, "tr", LocaleEn); ok {
				ex.TrEn = domain.StrPtr(tr)
			}
			examples = append(examples, ex)
		}
	}

	return examples, groups, nil
}
