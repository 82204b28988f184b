// Package extract turns one parsed TEI entry document into relational
// records. It is pure: document in, domain tables out, no I/O.
//
// Element vocabulary:
//
//	entry, re                 headword and nested sub-entry
//	form[@type] / orth        forms; nested forms are variants or participles
//	sense / tr / def / q      senses with translation quotes or definitions
//	exampleGrp / example      example groups; quote holds the source text
//	etym / mentioned          cited forms with w, m, cl, phr, s tokens and gloss
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Locales of the etymology sections and translation quotes.
const (
	LocaleRu = "ru"
	LocaleEn = "en"
)

// Options tune how strictly malformed markup is treated.
type Options struct {
	// LenientFormTypes keeps nested forms with an unknown type as plain
	// forms instead of failing the document.
	LenientFormTypes bool
}

// Stats holds extractor counters for logging.
type Stats struct {
	SubEntries       int
	EmptySenses      int
	EmptyExamples    int
	DroppedRelations int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.SubEntries += o.SubEntries
	s.EmptySenses += o.EmptySenses
	s.EmptyExamples += o.EmptyExamples
	s.DroppedRelations += o.DroppedRelations
}

// Extractor runs the per-node extractors and counts what it skips.
// It is not safe for concurrent use; create one per document.
type Extractor struct {
	opts  Options
	stats Stats
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Stats returns the counters accumulated so far.
func (x *Extractor) Stats() Stats { return x.stats }

// Document extracts all tables from doc with a fresh Extractor.
func Document(doc *markup.Document, opts Options) (*domain.Tables, Stats, error) {
	x := New(opts)
	t, err := x.Document(doc)
	return t, x.Stats(), err
}

func malformed(node, format string, args ...any) error {
	return domain.NewExtractError(domain.ErrMalformedEntry, node, fmt.Sprintf(format, args...))
}

// optString returns the attribute value, or nil when absent or empty.
func optString(n markup.Node, name string) *string {
	v, ok := n.Attr(name)
	if !ok {
		return nil
	}
	return domain.StrPtr(strings.TrimSpace(v))
}

// optInt parses an optional integer attribute.
func optInt(n markup.Node, name string) (*int, error) {
	v, ok := n.Attr(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, malformed(n.ID(), "attribute %s=%q is not a number", name, v)
	}
	return &i, nil
}

// requireID returns the node's xml:id or a malformed-entry error naming
// the enclosing owner.
func requireID(n markup.Node, owner string) (string, error) {
	id := strings.TrimSpace(n.ID())
	if id == "" {
		return "", malformed(owner, "%s element without xml:id", n.Name())
	}
	return id, nil
}

// quote returns the text of the first q inside a name[@xml:lang=lang]
// child, and whether such a q exists.
func quote(n markup.Node, name, lang string) (string, bool) {
	for _, c := range n.ChildrenWithLang(name, lang) {
		if q, ok := c.FirstChild("q"); ok {
			return q.Text(), true
		}
	}
	return "", false
}

// localized returns the text of the first name[@xml:lang=lang] child.
func localized(n markup.Node, name, lang string) string {
	if cs := n.ChildrenWithLang(name, lang); len(cs) > 0 {
		return cs[0].Text()
	}
	return ""
}

// lemmaOf returns the text of the first orth under a lemma form child.
func lemmaOf(n markup.Node) string {
	for _, f := range n.Children("form") {
		if t, _ := f.Attr("type"); t != "lemma" {
			continue
		}
		if orth, ok := f.FirstChild("orth"); ok {
			return orth.Text()
		}
	}
	return ""
}
