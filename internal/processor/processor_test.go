package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
)

func entryFor(t *testing.T, path string) catalog.Entry {
	t.Helper()
	e, ok := catalog.Get(path)
	require.True(t, ok, "catalog entry %s", path)
	return e
}

func testRegistry() *Registry {
	return NewRegistry(keywords.NewIndex())
}

func TestNewRegistry_InjectsKeywordIndex(t *testing.T) {
	idx := keywords.NewIndex()
	reg := NewRegistry(idx)

	p, ok := reg.processors[catalog.ProcessorDifference].(*BrandDifferenceProcessor)
	require.True(t, ok)
	assert.Same(t, idx, p.idx, "difference family uses the shared index, not a private copy")
}

func TestDefaultProcessor_Standardizes(t *testing.T) {
	raw := &model.RawDataset{
		Success: true,
		Results: []map[string]any{
			{"area_id": "10001", "area_name": "Chelsea", "value_MP30034A_B": 22.5},
			{"area_id": "10002", "area_name": "Tribeca", "value_MP30034A_B": 36.5},
		},
	}

	records, meta, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.NoError(t, err)
	assert.Nil(t, meta)
	require.Len(t, records, 2)

	// Value-descending with dense 1-based ranks.
	assert.Equal(t, "10002", records[0].AreaID)
	assert.Equal(t, 1, records[0].Rank)
	assert.Equal(t, 36.5, records[0].Value)
	assert.Equal(t, "10001", records[1].AreaID)
	assert.Equal(t, 2, records[1].Rank)
	assert.Equal(t, "Chelsea", records[1].AreaName)
}

func TestDefaultProcessor_ValueFieldAliases(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   float64
	}{
		{"configured field", map[string]any{"area_id": "1", "value_MP30034A_B": 5.0}, 5.0},
		{"stripped prefix", map[string]any{"area_id": "1", "MP30034A_B": 6.0}, 6.0},
		{"generic value", map[string]any{"area_id": "1", "value": 7.0}, 7.0},
		{"generic score", map[string]any{"area_id": "1", "score": 8.0}, 8.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &model.RawDataset{Success: true, Results: []map[string]any{tt.record}}
			records, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, records[0].Value)
		})
	}
}

func TestDefaultProcessor_AreaIDPrecedence(t *testing.T) {
	raw := &model.RawDataset{
		Success: true,
		Results: []map[string]any{
			// area_id wins over the later candidates.
			{"area_id": "primary", "GEOID": "36061", "value": 1.0},
			// Numeric ids are stringified.
			{"OBJECTID": float64(42), "value": 2.0},
			{"zip": "11215", "value": 3.0},
		},
	}

	records, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, r := range records {
		ids[r.AreaID] = true
	}
	assert.True(t, ids["primary"])
	assert.True(t, ids["42"])
	assert.True(t, ids["11215"])
}

func TestRegistry_SchemaValidation(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name string
		raw  *model.RawDataset
	}{
		{"nil dataset", nil},
		{"success false", &model.RawDataset{Success: false, Results: []map[string]any{}}},
		{"missing results", &model.RawDataset{Success: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := reg.Run(entryFor(t, "/analyze"), tt.raw, nil)
			require.Error(t, err)
			var sve *model.SchemaValidationError
			assert.True(t, errors.As(err, &sve))
		})
	}
}

func TestRegistry_EmptyDatasetIsEmptyResult(t *testing.T) {
	raw := &model.RawDataset{Success: true, Results: []map[string]any{}}

	_, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.Error(t, err)
	assert.True(t, model.IsEmptyResult(err), "zero records is an empty state, not a schema failure")

	var sve *model.SchemaValidationError
	assert.False(t, errors.As(err, &sve))
}

func TestRegistry_MissingValueAbortsWholeSet(t *testing.T) {
	raw := &model.RawDataset{
		Success: true,
		Results: []map[string]any{
			{"area_id": "10001", "value": 1.0},
			{"area_id": "10002"}, // no metric anywhere
		},
	}

	_, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.Error(t, err)
	var pe *model.ProcessingError
	assert.True(t, errors.As(err, &pe), "partial output is forbidden")
}

func TestRegistry_MissingAreaIDAborts(t *testing.T) {
	raw := &model.RawDataset{
		Success: true,
		Results: []map[string]any{{"value": 1.0}},
	}

	_, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.Error(t, err)
}

func TestRegistry_UnknownFamilyFallsBack(t *testing.T) {
	reg := testRegistry()
	entry := catalog.Entry{
		Path:           "/made-up",
		TargetVariable: "value",
		Processor:      "no-such-family",
	}
	p := reg.ForEndpoint(entry)
	assert.Equal(t, catalog.ProcessorDefault, p.Name())
}

func TestStandardize_ShapAndCoordinates(t *testing.T) {
	raw := &model.RawDataset{
		Success: true,
		Results: []map[string]any{{
			"area_id":          "10001",
			"value_MP30034A_B": 9.0,
			"shap_TOTPOP_CY":   0.42,
			"shap_MEDDI_CY":    -0.17,
			"coordinates":      []any{-73.99, 40.72},
			"category":         "urban",
		}},
	}

	records, _, err := testRegistry().Run(entryFor(t, "/analyze"), raw, nil)
	require.NoError(t, err)
	r := records[0]
	assert.Equal(t, map[string]float64{"shap_TOTPOP_CY": 0.42, "shap_MEDDI_CY": -0.17}, r.ShapValues)
	assert.Equal(t, []float64{-73.99, 40.72}, r.Coordinates)
	assert.Equal(t, "urban", r.Category)
}
