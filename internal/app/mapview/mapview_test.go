package mapview

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func fixture(t *testing.T) (*domain.Tables, domain.Languages) {
	t.Helper()
	tables := domain.NewTables()
	require.NoError(t, tables.Entries.AddAll([]domain.Entry{
		{ID: "entry_kærc", Lemma: "kærc"},
		{ID: "entry_other", Lemma: "other"},
	}))
	require.NoError(t, tables.Mentioneds.AddAll([]domain.Mentioned{
		{ID: "m1", EntryID: "entry_kærc", Langs: []string{"sa", "os-x-dig", "xx"}, Forms: []string{"kṛtti", "kṛt"}, GlossEn: []string{"hide", "skin"}},
		{ID: "m2", EntryID: "entry_kærc", Langs: []string{"fa"}, Forms: []string{"kurk"}},
		{ID: "m3", EntryID: "entry_other", Langs: []string{"sa"}, Forms: []string{"x"}},
	}))
	langs := domain.NewLanguages([]domain.Language{
		{Code: "sa", NameEn: "Sanskrit", Latitude: floatPtr(20), Longitude: floatPtr(77)},
		{Code: "fa", NameEn: "Persian", Latitude: floatPtr(32), Longitude: floatPtr(53)},
		{Code: "os-x-dig", NameEn: "Digor", Latitude: floatPtr(43), Longitude: floatPtr(44)},
		{Code: "xx", NameEn: "Unknown"},
	})
	return tables, langs
}

func TestBuild(t *testing.T) {
	t.Parallel()
	tables, langs := fixture(t)

	fc, err := Build(EntryID("kærc"), tables, langs, "os")
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	home := fc.Features[0]
	assert.Equal(t, orb.Point{44.61, 42.98}, home.Geometry)
	assert.Equal(t, "home", home.Properties["marker"])

	sa := fc.Features[1]
	assert.Equal(t, orb.Point{77, 20}, sa.Geometry, "points are lon/lat")
	assert.Equal(t, "sa", sa.Properties["language"])
	assert.Equal(t, "kṛtti", sa.Properties["form"])
	assert.Equal(t, "‘hide’", sa.Properties["gloss"])

	fa := fc.Features[2]
	assert.Equal(t, "fa", fa.Properties["language"])
	assert.Equal(t, "", fa.Properties["gloss"])
}

func TestBuild_JSON(t *testing.T) {
	t.Parallel()
	tables, langs := fixture(t)

	fc, err := Build("entry_kærc", tables, langs, "os")
	require.NoError(t, err)

	data, err := json.Marshal(fc)
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 3)
	assert.Equal(t, "Point", decoded.Features[1].Geometry.Type)
	assert.Equal(t, []float64{77, 20}, decoded.Features[1].Geometry.Coordinates)
}

func TestBuild_UnknownEntry(t *testing.T) {
	t.Parallel()
	tables, langs := fixture(t)

	_, err := Build("entry_missing", tables, langs, "os")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEntryID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "entry_kærc", EntryID("kærc"))
	assert.Equal(t, "entry_kærc", EntryID("entry_kærc"))
}
