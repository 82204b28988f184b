// Package markup gives the extractors a small read-only view over a parsed
// TEI document. Elements are matched by local name, so the default TEI
// namespace and the project's "abv" namespace need no prefixes at call
// sites. Attributes distinguish absent from empty.
package markup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

const (
	xmlPrefix    = "xml"
	xmlNamespace = "http://www.w3.org/XML/1998/namespace"
)

// Document is a parsed TEI file.
type Document struct {
	Name string
	root *xmlquery.Node
	ids  map[string]*xmlquery.Node
}

// Parse reads a document from r. name identifies it in errors and logs.
func Parse(name string, r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse %s: %w", name, err)
	}
	return &Document{Name: name, root: root}, nil
}

// ParseFile reads and parses the file at path. The document is named after
// the file's base name.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("markup: open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(filepath.Base(path), f)
}

// ParseString parses an in-memory document.
func ParseString(name, s string) (*Document, error) {
	return Parse(name, strings.NewReader(s))
}

// Root returns the document element.
func (d *Document) Root() Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return Node{n: c}
		}
	}
	return Node{}
}

// Query evaluates an XPath expression against the document and returns the
// matching elements.
func (d *Document) Query(expr string) ([]Node, error) {
	found, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("markup: query %q: %w", expr, err)
	}
	out := make([]Node, 0, len(found))
	for _, n := range found {
		if n.Type == xmlquery.ElementNode {
			out = append(out, Node{n: n})
		}
	}
	return out, nil
}

// ElementsByName returns every element with the given local name in
// document order.
func (d *Document) ElementsByName(name string) ([]Node, error) {
	return d.Query(fmt.Sprintf("//*[local-name()='%s']", name))
}

// ByID finds the element carrying xml:id == id anywhere in the document.
// The first call builds an index.
func (d *Document) ByID(id string) (Node, bool) {
	if d.ids == nil {
		d.ids = make(map[string]*xmlquery.Node)
		walk(d.root, func(n *xmlquery.Node) {
			if v, ok := attr(n, xmlPrefix, "id"); ok {
				if _, seen := d.ids[v]; !seen {
					d.ids[v] = n
				}
			}
		})
	}
	n, ok := d.ids[id]
	return Node{n: n}, ok
}

// Node is an element of a Document. The zero Node is invalid.
type Node struct {
	n *xmlquery.Node
}

// Valid reports whether the node refers to an element.
func (n Node) Valid() bool { return n.n != nil }

// Name returns the element's local name.
func (n Node) Name() string {
	if n.n == nil {
		return ""
	}
	return n.n.Data
}

// Attr returns the attribute value and whether it is present. Names may be
// qualified with the "xml" prefix ("xml:lang"); other prefixes match by
// local name.
func (n Node) Attr(name string) (string, bool) {
	if n.n == nil {
		return "", false
	}
	prefix, local, found := strings.Cut(name, ":")
	if !found {
		prefix, local = "", name
	}
	return attr(n.n, prefix, local)
}

// ID returns xml:id, or "" when absent.
func (n Node) ID() string {
	v, _ := n.Attr("xml:id")
	return v
}

// Lang returns the node's own xml:lang.
func (n Node) Lang() (string, bool) {
	return n.Attr("xml:lang")
}

// InheritedLang returns xml:lang of the node or its nearest ancestor.
func (n Node) InheritedLang() (string, bool) {
	for cur := n.n; cur != nil; cur = cur.Parent {
		if cur.Type != xmlquery.ElementNode {
			continue
		}
		if v, ok := attr(cur, xmlPrefix, "lang"); ok {
			return v, true
		}
	}
	return "", false
}

// Parent returns the enclosing element.
func (n Node) Parent() (Node, bool) {
	if n.n == nil {
		return Node{}, false
	}
	for p := n.n.Parent; p != nil; p = p.Parent {
		if p.Type == xmlquery.ElementNode {
			return Node{n: p}, true
		}
	}
	return Node{}, false
}

// Children returns the child elements with the given local name, or all
// child elements when name is empty.
func (n Node) Children(name string) []Node {
	if n.n == nil {
		return nil
	}
	var out []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && (name == "" || c.Data == name) {
			out = append(out, Node{n: c})
		}
	}
	return out
}

// ChildrenWithLang returns the named children whose xml:lang equals lang.
func (n Node) ChildrenWithLang(name, lang string) []Node {
	var out []Node
	for _, c := range n.Children(name) {
		if v, ok := c.Lang(); ok && v == lang {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child element with the given local name.
func (n Node) FirstChild(name string) (Node, bool) {
	if n.n == nil {
		return Node{}, false
	}
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return Node{n: c}, true
		}
	}
	return Node{}, false
}

// HasChild reports whether a child element with the given name exists.
func (n Node) HasChild(name string) bool {
	_, ok := n.FirstChild(name)
	return ok
}

// Descendants returns every descendant element (excluding n) with one of
// the given local names, in document order.
func (n Node) Descendants(names ...string) []Node {
	if n.n == nil {
		return nil
	}
	var out []Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(d *xmlquery.Node) {
			if d.Type == xmlquery.ElementNode && slices.Contains(names, d.Data) {
				out = append(out, Node{n: d})
			}
		})
	}
	return out
}

// HasDescendant reports whether any descendant has one of the given names.
func (n Node) HasDescendant(names ...string) bool {
	return len(n.Descendants(names...)) > 0
}

// Text returns the normalized string value of the node: all descendant
// text concatenated, whitespace collapsed.
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	return domain.Normalize(n.n.InnerText())
}

// Is reports whether two nodes refer to the same element.
func (n Node) Is(other Node) bool { return n.n == other.n }

func attr(n *xmlquery.Node, prefix, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local != local {
			continue
		}
		switch {
		case prefix == "" && a.Name.Space == "":
			return a.Value, true
		case prefix == xmlPrefix && (a.Name.Space == xmlPrefix || a.Name.Space == xmlNamespace):
			return a.Value, true
		case prefix != "" && prefix != xmlPrefix:
			return a.Value, true
		}
	}
	return "", false
}

func walk(n *xmlquery.Node, fn func(*xmlquery.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
