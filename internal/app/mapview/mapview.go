// Package mapview renders the languages cited in an entry's etymology as a
// GeoJSON feature collection.
package mapview

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// Home is the dictionary's home location (North Ossetia).
var Home = orb.Point{44.61, 42.98}

const entryPrefix = "entry_"

// EntryID turns a bare headword name into an entry id.
func EntryID(name string) string {
	if strings.HasPrefix(name, entryPrefix) {
		return name
	}
	return entryPrefix + name
}

// Build returns a marker for Home plus one point per language of every
// mentioned form of the entry. Languages without coordinates and the
// dictionary's own language (primary and its variants) are left out.
func Build(entryID string, t *domain.Tables, langs domain.Languages, primary string) (*geojson.FeatureCollection, error) {
	if !t.Entries.Has(entryID) {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
	}

	fc := geojson.NewFeatureCollection()

	home := geojson.NewFeature(Home)
	home.Properties["marker"] = "home"
	home.Properties["entry"] = entryID
	fc.Append(home)

	for _, m := range t.Mentioneds.Rows() {
		if m.EntryID != entryID {
			continue
		}
		var form string
		if len(m.Forms) > 0 {
			form = m.Forms[0]
		}
		for _, code := range m.Langs {
			if domain.IsVariantOf(code, primary) {
				continue
			}
			l, ok := langs[code]
			if !ok || !l.HasCoords() {
				continue
			}
			f := geojson.NewFeature(orb.Point{*l.Longitude, *l.Latitude})
			f.Properties["language"] = code
			f.Properties["name"] = l.NameEn
			f.Properties["form"] = form
			f.Properties["gloss"] = gloss(m.GlossEn)
			fc.Append(f)
		}
	}
	return fc, nil
}

func gloss(en []string) string {
	if len(en) == 0 {
		return ""
	}
	return "‘" + en[0] + "’"
}
