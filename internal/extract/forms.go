package extract

import (
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Forms extracts the form children of node and, recursively, the forms
// nested inside them, flattened in document order. Top-level forms carry no
// relation; a nested form relates to its enclosing form by its type
// attribute (variant or participle).
func (x *Extractor) Forms(node markup.Node, entryID string) ([]domain.Form, error) {
	return x.forms(node, entryID, "")
}

func (x *Extractor) forms(node markup.Node, entryID, parentID string) ([]domain.Form, error) {
	var out []domain.Form
	for _, fn := range node.Children("form") {
		id, err := requireID(fn, entryID)
		if err != nil {
			return nil, err
		}

		lang, ok := fn.InheritedLang()
		if !ok || lang == "" {
			return nil, domain.NewExtractError(domain.ErrMissingLanguage, id, "form has no xml:lang in scope")
		}

		form := domain.Form{
			ID:      id,
			EntryID: entryID,
			Lang:    &lang,
		}
		if orth, ok := fn.FirstChild("orth"); ok {
			form.Orth = orth.Text()
		}

		if parentID != "" {
			typ, _ := fn.Attr("type")
			kind, known := domain.ParseFormRelType(typ)
			switch {
			case known:
				rel := parentID
				form.RelOf = &rel
				form.RelType = &kind
			case x.opts.LenientFormTypes:
				x.stats.DroppedRelations++
			default:
				return nil, malformed(id, "nested form has unknown type %q", typ)
			}
		}

		out = append(out, form)

		nested, err := x.forms(fn, entryID, id)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
