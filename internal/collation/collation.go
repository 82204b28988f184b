// Package collation orders dictionary entries by the traditional Ossetic
// alphabet. Key maps an entry id to a string whose code-point order matches
// the alphabet: each letter (with its accented and macroned variants) is
// rewritten to a class symbol, digraphs for ejective and labialized
// consonants are consumed as single units, and markers that carry no
// collation weight are dropped.
package collation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

const entryPrefix = "entry_"

// class assigns one symbol to every spelling of a letter. Symbols ascend in
// code-point order along the alphabet.
type class struct {
	symbol  string
	letters []string
}

var classes = []class{
	{"/", []string{"a", "á", "ā", "A", "Á", "Ā"}},
	{"1", []string{"æ", "ǽ", "ǣ", "Æ", "Ǽ", "Ǣ"}},
	{"2", []string{"b", "B"}},
	{"3", []string{"c", "C"}},
	{"4", []string{"cʼ", "Cʼ"}},
	{"5", []string{"d", "D"}},
	{"6", []string{"ʒ", "Ʒ"}},
	{"7", []string{"e", "é", "E", "É"}},
	{"8", []string{"f", "F"}},
	{"9", []string{"g", "ǵ", "g0", "G", "Ǵ", "G0"}},
	{"A", []string{"ǧ", "ǧ0", "Ǧ", "Ǧ0"}},
	{"B", []string{"i", "í", "ī", "I", "Í", "Ī"}},
	{"D", []string{"j", "J"}},
	{"E", []string{"k", "ḱ", "k0", "K", "Ḱ", "K0"}},
	{"F", []string{"kʼ", "ḱʼ", "kʼ0", "Kʼ", "Ḱʼ", "Kʼ0"}},
	{"H", []string{"l", "L"}},
	{"I", []string{"m", "M"}},
	{"J", []string{"n", "N"}},
	{"K", []string{"o", "ó", "O", "Ó"}},
	{"L", []string{"p", "P"}},
	{"M", []string{"pʼ", "Pʼ"}},
	{"N", []string{"q", "q0", "Q", "Q0"}},
	{"O", []string{"r", "R"}},
	{"P", []string{"s", "S"}},
	{"Q", []string{"t", "T"}},
	{"R", []string{"tʼ", "Tʼ"}},
	{"S", []string{"u", "ú", "ū", "U", "Ú", "Ū"}},
	{"T", []string{"v", "V"}},
	{"U", []string{"w", "W"}},
	{"V", []string{"x", "x0", "X", "X0"}},
	{"W", []string{"y", "ý", "Y", "Ý"}},
	{"X", []string{"z", "Z"}},
}

// dropLeading holds boundary markers ignored when they open an id.
const dropLeading = "78-6"

// acute is the combining stress mark. It is removed before recomposition so
// that a stressed consonant never folds into a precomposed letter.
const acute = "\u0301"

// dropAnywhere holds homograph digits and separators.
var dropAnywhere = strings.NewReplacer(
	"6", "", "9", "", "-", "", "_", "",
	"1", "", "2", "", "3", "", "4", "", "5", "",
)

type mapping struct {
	seq    string
	symbol string
}

// table indexes mappings by their first rune, longest sequence first.
var table = buildTable()

func buildTable() map[rune][]mapping {
	t := make(map[rune][]mapping)
	for _, c := range classes {
		for _, l := range c.letters {
			l = norm.NFC.String(l)
			first, _ := utf8.DecodeRuneInString(l)
			t[first] = append(t[first], mapping{seq: l, symbol: c.symbol})
		}
	}
	for r := range t {
		slices.SortStableFunc(t[r], func(a, b mapping) int { return len(b.seq) - len(a.seq) })
	}
	return t
}

// Key returns the collation key for an entry id. It is total and
// deterministic; unmapped characters pass through unchanged.
func Key(id string) string {
	s := strings.ReplaceAll(norm.NFD.String(id), acute, "")
	s = norm.NFC.String(s)
	s = strings.TrimPrefix(s, entryPrefix)
	if s != "" && strings.ContainsRune(dropLeading, rune(s[0])) {
		s = s[1:]
	}
	s = dropAnywhere.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		rest := s[i:]
		if n, sym := match(rest); n > 0 {
			b.WriteString(sym)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		b.WriteString(rest[:size])
		i += size
	}
	return b.String()
}

func match(rest string) (int, string) {
	first, _ := utf8.DecodeRuneInString(rest)
	for _, m := range table[first] {
		if strings.HasPrefix(rest, m.seq) {
			return len(m.seq), m.symbol
		}
	}
	return 0, ""
}

// Compare orders two entry ids by collation key, falling back to the raw
// ids so that the order is total.
func Compare(a, b string) int {
	if c := strings.Compare(Key(a), Key(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortEntries sorts entries in place by Compare on their ids.
func SortEntries(entries []domain.Entry) {
	slices.SortStableFunc(entries, byKey(entries))
}

// SortTable orders an entry table by Compare.
func SortTable(t *domain.Table[domain.Entry]) {
	t.SortStableFunc(byKey(t.Rows()))
}

// byKey computes every key once up front.
func byKey(entries []domain.Entry) func(a, b domain.Entry) int {
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.ID] = Key(e.ID)
	}
	return func(a, b domain.Entry) int {
		if c := strings.Compare(keys[a.ID], keys[b.ID]); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}
}
