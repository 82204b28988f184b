package markup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0" xmlns:abv="http://ossetic-studies.org/ns/abaevdict">
  <text><body>
    <entry xml:id="entry_x" xml:lang="os">
      <form type="lemma"><orth>  xæ
        dzar </orth></form>
      <sense xml:id="s1" n="">
        <abv:tr xml:lang="ru"><q>дом</q></abv:tr>
        <abv:tr xml:lang="en"><q>house</q></abv:tr>
      </sense>
      <etym xml:lang="ru"><mentioned xml:id="m1"><w>dzar</w></mentioned></etym>
    </entry>
  </body></text>
</TEI>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString("sample.xml", sample)
	require.NoError(t, err)
	return doc
}

func entryOf(t *testing.T, doc *Document) Node {
	t.Helper()
	entries, err := doc.ElementsByName("entry")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return entries[0]
}

func TestDocument_ElementsByName(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)
	entry := entryOf(t, doc)

	assert.Equal(t, "entry", entry.Name())
	assert.Equal(t, "entry_x", entry.ID())
	assert.Equal(t, "TEI", doc.Root().Name())
}

func TestNode_AttrPresence(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)
	sense, ok := entryOf(t, doc).FirstChild("sense")
	require.True(t, ok)

	n, ok := sense.Attr("n")
	assert.True(t, ok, "empty attribute is still present")
	assert.Equal(t, "", n)

	_, ok = sense.Attr("type")
	assert.False(t, ok)

	_, ok = sense.Lang()
	assert.False(t, ok, "sense has no own xml:lang")

	lang, ok := sense.InheritedLang()
	assert.True(t, ok)
	assert.Equal(t, "os", lang)
}

func TestNode_PrefixedChildren(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)
	sense, _ := entryOf(t, doc).FirstChild("sense")

	ru := sense.ChildrenWithLang("tr", "ru")
	require.Len(t, ru, 1)
	q, ok := ru[0].FirstChild("q")
	require.True(t, ok)
	assert.Equal(t, "дом", q.Text())

	assert.True(t, sense.HasDescendant("tr", "def"))
	assert.False(t, sense.HasDescendant("def"))
}

func TestNode_TextIsNormalized(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)
	form, _ := entryOf(t, doc).FirstChild("form")
	orth, _ := form.FirstChild("orth")

	assert.Equal(t, "xæ dzar", orth.Text())
}

func TestDocument_ByID(t *testing.T) {
	t.Parallel()

	doc := parseSample(t)

	m, ok := doc.ByID("m1")
	require.True(t, ok)
	assert.Equal(t, "mentioned", m.Name())

	parent, ok := m.Parent()
	require.True(t, ok)
	assert.Equal(t, "etym", parent.Name())

	_, ok = doc.ByID("missing")
	assert.False(t, ok)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "abaev_x.xml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abaev_x.xml", doc.Name)

	_, err = ParseFile(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseString("broken.xml", "<TEI><entry></TEI>")
	assert.Error(t, err)
}
