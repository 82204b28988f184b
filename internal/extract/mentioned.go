package extract

import (
	"slices"
	"strings"

	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// wordClasses are the token elements that make up a cited form.
var wordClasses = []string{"w", "m", "cl", "phr", "s"}

// Mentioneds extracts the forms cited in the etymology sections under
// root. Russian-section forms come first, each paired through corresp with
// its English counterpart when one is referenced. English-section forms
// that carry no corresp and were not claimed as a pairing target follow as
// standalone records.
func (x *Extractor) Mentioneds(doc *markup.Document, root markup.Node, entryID string) ([]domain.Mentioned, error) {
	table := domain.NewTable[domain.Mentioned](domain.TableMentioneds)
	paired := make(map[string]bool)

	for _, mn := range mentionedIn(root, LocaleRu) {
		forms := tokens(mn)
		if len(forms) == 0 {
			continue
		}
		id, err := requireID(mn, entryID)
		if err != nil {
			return nil, err
		}

		m := domain.Mentioned{
			ID:      id,
			XMLIDs:  []string{id},
			EntryID: entryID,
			Langs:   langsOf(mn),
			Forms:   forms,
			GlossRu: glosses(mn),
		}

		if ref, ok := mn.Attr("corresp"); ok {
			target := strings.TrimPrefix(strings.TrimSpace(ref), "#")
			tn, found := doc.ByID(target)
			if !found || tn.Name() != "mentioned" {
				return nil, domain.NewExtractError(domain.ErrDanglingCrossReference, id, "corresp=\""+ref+"\"")
			}
			m.XMLIDs = append(m.XMLIDs, target)
			m.GlossEn = glosses(tn)
			paired[target] = true
		}

		if err := table.Add(m); err != nil {
			return nil, err
		}
	}

	for _, mn := range mentionedIn(root, LocaleEn) {
		if _, ok := mn.Attr("corresp"); ok {
			continue
		}
		forms := tokens(mn)
		if len(forms) == 0 {
			continue
		}
		id, err := requireID(mn, entryID)
		if err != nil {
			return nil, err
		}
		if paired[id] {
			continue
		}

		m := domain.Mentioned{
			ID:      id,
			XMLIDs:  []string{id},
			EntryID: entryID,
			Langs:   langsOf(mn),
			Forms:   forms,
			GlossEn: glosses(mn),
		}
		if err := table.Add(m); err != nil {
			return nil, err
		}
	}

	return table.Rows(), nil
}

// mentionedIn returns the distinct mentioned elements inside etym
// sections of the given locale, in document order.
func mentionedIn(root markup.Node, locale string) []markup.Node {
	var out []markup.Node
	seen := make(map[markup.Node]bool)
	for _, etym := range root.Descendants("etym") {
		if lang, ok := etym.Lang(); !ok || lang != locale {
			continue
		}
		for _, mn := range etym.Descendants("mentioned") {
			if seen[mn] {
				continue
			}
			seen[mn] = true
			out = append(out, mn)
		}
	}
	return out
}

// tokens returns the non-empty word-class children of n. Reconstructed
// tokens (type="rec") are prefixed with an asterisk.
func tokens(n markup.Node) []string {
	var out []string
	for _, c := range n.Children("") {
		if !slices.Contains(wordClasses, c.Name()) {
			continue
		}
		text := c.Text()
		if text == "" {
			continue
		}
		if typ, _ := c.Attr("type"); typ == "rec" {
			text = "*" + text
		}
		out = append(out, text)
	}
	return out
}

// langsOf returns the node's own language followed by its extralang codes.
func langsOf(n markup.Node) []string {
	var langs []string
	if lang := optString(n, "xml:lang"); lang != nil {
		langs = append(langs, *lang)
	}
	if extra, ok := n.Attr("extralang"); ok {
		langs = append(langs, strings.Fields(extra)...)
	}
	return langs
}

// glosses collects gloss children of n: the q children of each gloss when
// it has any, otherwise the gloss text itself. Empty glosses are dropped.
func glosses(n markup.Node) []string {
	var out []string
	for _, g := range n.Children("gloss") {
		qs := g.Children("q")
		if len(qs) == 0 {
			if text := g.Text(); text != "" {
				out = append(out, text)
			}
			continue
		}
		for _, q := range qs {
			if text := q.Text(); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}
