package geofilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []map[string]any {
	return []map[string]any{
		{"area_id": "11215", "area_name": "Park Slope"},
		{"area_id": "11217", "area_name": "Boerum Hill"},
		{"area_id": "19103", "area_name": "Center City"},
		{"area_id": "60614", "area_name": "Lincoln Park"},
	}
}

func TestGazetteer_ZIPPrefixFiltering(t *testing.T) {
	g := NewGazetteer()

	res, err := g.Resolve("nike performance in Brooklyn", sampleRecords())
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Brooklyn", res.Entities[0].Name)
	require.Len(t, res.Filtered, 2)
	assert.Equal(t, "11215", res.Filtered[0]["area_id"])
	assert.Equal(t, 4, res.Stats.Total)
	assert.Equal(t, 2, res.Stats.Matched)
}

func TestGazetteer_MultipleCities(t *testing.T) {
	g := NewGazetteer()

	res, err := g.Resolve("compare Brooklyn and Philadelphia", sampleRecords())
	require.NoError(t, err)

	assert.Len(t, res.Entities, 2)
	assert.Len(t, res.Filtered, 3, "records from either city are kept")
}

func TestGazetteer_AliasResolution(t *testing.T) {
	g := NewGazetteer()

	res, err := g.Resolve("market share in philly", sampleRecords())
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "Philadelphia", res.Entities[0].Name)
}

func TestGazetteer_ShortAliasNeedsWordBoundary(t *testing.T) {
	g := NewGazetteer()

	// "la" appears inside "last" but must not resolve Los Angeles.
	res, err := g.Resolve("last quarter results", sampleRecords())
	require.NoError(t, err)
	assert.Empty(t, res.Entities)
	assert.Len(t, res.Filtered, len(sampleRecords()), "no geography means no filtering")
}

func TestGazetteer_NoGeographyPassesThrough(t *testing.T) {
	g := NewGazetteer()
	records := sampleRecords()

	res, err := g.Resolve("top nike markets", records)
	require.NoError(t, err)
	assert.Empty(t, res.Entities)
	assert.Equal(t, records, res.Filtered)
	assert.Equal(t, len(records), res.Stats.Matched)
}

func TestGazetteer_EmptySelection(t *testing.T) {
	g := NewGazetteer()

	res, err := g.Resolve("results for Seattle", sampleRecords())
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	assert.Empty(t, res.Filtered, "a resolved entity with no matches yields an empty set, not a fallback")
	assert.Equal(t, 0, res.Stats.Matched)
}

func TestGazetteer_LabelMatchBeatsZIP(t *testing.T) {
	g := NewGazetteer()
	records := []map[string]any{
		{"area_id": "99999", "area_name": "Brooklyn Heights"},
	}

	res, err := g.Resolve("show me Brooklyn", records)
	require.NoError(t, err)
	assert.Len(t, res.Filtered, 1, "area name containing the entity matches regardless of ZIP")
}

func TestGazetteer_NumericIDs(t *testing.T) {
	g := NewGazetteer()
	records := []map[string]any{
		{"area_id": float64(11215), "value": 1.0},
	}

	res, err := g.Resolve("Brooklyn results", records)
	require.NoError(t, err)
	assert.Len(t, res.Filtered, 1)
}
