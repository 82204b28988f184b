package extract

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Senses extracts the sense children of node. A sense with sense children
// becomes a SenseGroup and its children become grouped Senses that inherit
// the group's number and, unless they set their own, its language. Senses
// without a translation or definition, or with no text, are skipped.
func (x *Extractor) Senses(node markup.Node, entryID string) ([]domain.Sense, []domain.SenseGroup, error) {
	var (
		senses []domain.Sense
		groups []domain.SenseGroup
	)

	for _, sn := range node.Children("sense") {
		if !sn.HasDescendant("tr", "def") || sn.Text() == "" {
			x.stats.EmptySenses++
			continue
		}

		id, err := requireID(sn, entryID)
		if err != nil {
			return nil, nil, err
		}
		num, err := optInt(sn, "n")
		if err != nil {
			return nil, nil, err
		}
		lang := optString(sn, "xml:lang")

		subs := sn.Children("sense")
		if len(subs) == 0 {
			s := senseFrom(sn, id, entryID)
			s.Lang = lang
			s.Num = num
			senses = append(senses, s)
			continue
		}

		groups = append(groups, domain.SenseGroup{ID: id, EntryID: entryID, Num: num})
		for _, sub := range subs {
			subID, err := requireID(sub, id)
			if err != nil {
				return nil, nil, err
			}
			if sub.HasChild("sense") {
				return nil, nil, malformed(subID, "senses nested deeper than one group level")
			}

			s := senseFrom(sub, subID, entryID)
			groupID := id
			s.SenseGroup = &groupID
			s.Num = num
			s.Lang = lang
			if own := optString(sub, "xml:lang"); own != nil {
				s.Lang = own
			}
			senses = append(senses, s)
		}
	}

	return senses, groups, nil
}

// senseFrom fills the descriptions: translation quotes when any is
// present, otherwise the formal definitions.
func senseFrom(n markup.Node, id, entryID string) domain.Sense {
	s := domain.Sense{ID: id, EntryID: entryID}

	ru, hasRu := quote(n, "tr", LocaleRu)
	en, hasEn := quote(n, "tr", LocaleEn)
	if (hasRu && ru != "") || (hasEn && en != "") {
		s.DescriptionRu = ru
		s.DescriptionEn = en
		return s
	}

	s.DescriptionRu = localized(n, "def", LocaleRu)
	s.DescriptionEn = localized(n, "def", LocaleEn)
	s.IsDef = true
	return s
}
