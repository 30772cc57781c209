// Package processor standardizes endpoint raw records into canonical
// records. One strategy per endpoint family, dispatched through a
// registry with an explicit default fallback.
package processor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
)

// Context carries query-derived hints some strategies need; the
// competitive family uses it to resolve which brands are being compared.
type Context struct {
	Query           string
	ExtractedBrands []string
}

// Metadata is the family-specific block a strategy may attach to the
// processed analysis.
type Metadata struct {
	Cluster     *model.ClusterMetadata
	Competitive *model.CompetitiveMetadata
	Demographic *model.DemographicMetadata
	RiskLevel   string
}

// Processor validates and transforms one endpoint family's raw datasets.
// Validate rejects structurally wrong input by returning false, never by
// panicking, so the caller can produce a typed error. Process either
// yields the full canonical set or fails; partial output is forbidden.
type Processor interface {
	Name() string
	Validate(raw *model.RawDataset) bool
	Process(entry catalog.Entry, raw *model.RawDataset, pctx *Context) ([]model.CanonicalRecord, *Metadata, error)
}

// Registry maps processor family names to strategies. Unknown families
// fall back to the default strategy explicitly.
type Registry struct {
	processors map[string]Processor
	fallback   Processor
}

// NewRegistry returns a registry with every built-in family registered.
// The keyword index backs brand-to-field resolution in the difference
// family.
func NewRegistry(idx *keywords.Index) *Registry {
	def := &DefaultProcessor{}
	r := &Registry{
		processors: make(map[string]Processor),
		fallback:   def,
	}
	r.Register(def)
	r.Register(&CompetitiveProcessor{})
	r.Register(&BrandDifferenceProcessor{idx: idx})
	r.Register(&ClusterProcessor{})
	r.Register(&DemographicProcessor{})
	r.Register(&RiskProcessor{})
	return r
}

// Register adds a strategy under its family name.
func (r *Registry) Register(p Processor) {
	r.processors[p.Name()] = p
}

// ForEndpoint returns the strategy for a catalog entry, falling back to
// the default family for unmapped names.
func (r *Registry) ForEndpoint(entry catalog.Entry) Processor {
	if p, ok := r.processors[entry.Processor]; ok {
		return p
	}
	return r.fallback
}

// Run validates then processes a raw dataset, wrapping failures in the
// spec'd typed errors so callers can distinguish schema rejections from
// transform failures.
func (r *Registry) Run(entry catalog.Entry, raw *model.RawDataset, pctx *Context) ([]model.CanonicalRecord, *Metadata, error) {
	p := r.ForEndpoint(entry)

	if !p.Validate(raw) {
		return nil, nil, &model.SchemaValidationError{
			Endpoint:  entry.Path,
			Processor: p.Name(),
			Reason:    describeShape(raw),
		}
	}
	if len(raw.Results) == 0 {
		// A well-formed dataset with nothing in it is an empty state for
		// the caller to render, not a schema or transform failure.
		return nil, nil, &model.EmptyResultError{}
	}

	records, meta, err := p.Process(entry, raw, pctx)
	if err != nil {
		return nil, nil, &model.ProcessingError{Endpoint: entry.Path, Processor: p.Name(), Err: err}
	}
	return records, meta, nil
}

func describeShape(raw *model.RawDataset) string {
	switch {
	case raw == nil:
		return "nil dataset"
	case !raw.Success:
		return "success flag not set"
	case raw.Results == nil:
		return "missing results array"
	default:
		return "unexpected shape"
	}
}

// validEnvelope is the shared structural check every family starts from.
func validEnvelope(raw *model.RawDataset) bool {
	return raw != nil && raw.Success && raw.Results != nil
}

// areaIDFields is the single ordered candidate list for extracting an
// area identifier from duck-typed raw records. Nothing else in the
// repository probes id fields ad hoc.
var areaIDFields = []string{"area_id", "ID", "GEOID", "OBJECTID", "id", "zip", "zipcode", "FSA_ID"}

// extractAreaID returns the record's stable geographic identifier, or
// false when none of the candidate fields is present.
func extractAreaID(rec map[string]any) (string, bool) {
	for _, f := range areaIDFields {
		v, ok := rec[f]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t, true
			}
		case float64:
			return fmt.Sprintf("%.0f", t), true
		case int:
			return fmt.Sprintf("%d", t), true
		}
	}
	return "", false
}

var areaNameFields = []string{"area_name", "DESCRIPTION", "NAME", "name"}

func extractAreaName(rec map[string]any, fallback string) string {
	for _, f := range areaNameFields {
		if v, ok := rec[f]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// extractValue probes the configured metric field and its common aliases.
func extractValue(rec map[string]any, field string) (float64, bool) {
	candidates := []string{field, strings.TrimPrefix(field, "value_"), "value", "score"}
	for _, f := range candidates {
		if v, ok := toFloat(rec[f]); ok {
			return v, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// extractShapValues collects every shap_-prefixed numeric field.
func extractShapValues(rec map[string]any) map[string]float64 {
	var out map[string]float64
	for k, v := range rec {
		if !strings.HasPrefix(k, "shap_") {
			continue
		}
		if f, ok := toFloat(v); ok {
			if out == nil {
				out = make(map[string]float64)
			}
			out[k] = f
		}
	}
	return out
}

func extractCoordinates(rec map[string]any) []float64 {
	v, ok := rec["coordinates"]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil
	}
	lon, ok1 := toFloat(arr[0])
	lat, ok2 := toFloat(arr[1])
	if !ok1 || !ok2 {
		return nil
	}
	return []float64{lon, lat}
}

func extractCategory(rec map[string]any) string {
	for _, f := range []string{"category", "tier", "segment"} {
		if v, ok := rec[f]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// assignRanks sorts canonical records by value descending and assigns
// dense 1-based ranks. Every family applies this identically.
func assignRanks(records []model.CanonicalRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Value > records[j].Value
	})
	for i := range records {
		records[i].Rank = i + 1
	}
}

// DefaultProcessor standardizes any endpoint whose records carry the
// configured metric field directly.
type DefaultProcessor struct{}

// Name implements Processor.
func (p *DefaultProcessor) Name() string { return catalog.ProcessorDefault }

// Validate implements Processor.
func (p *DefaultProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

// Process implements Processor.
func (p *DefaultProcessor) Process(entry catalog.Entry, raw *model.RawDataset, _ *Context) ([]model.CanonicalRecord, *Metadata, error) {
	records, err := standardize(entry, raw)
	if err != nil {
		return nil, nil, err
	}
	return records, nil, nil
}

// standardize converts every raw record using the entry's target
// variable. Records missing an identifier or metric abort the whole set.
func standardize(entry catalog.Entry, raw *model.RawDataset) ([]model.CanonicalRecord, error) {
	records := make([]model.CanonicalRecord, 0, len(raw.Results))
	for i, rec := range raw.Results {
		id, ok := extractAreaID(rec)
		if !ok {
			return nil, eris.Errorf("record %d: no area identifier in any of %v", i, areaIDFields)
		}
		value, ok := extractValue(rec, entry.TargetVariable)
		if !ok {
			return nil, eris.Errorf("record %s: no numeric value for %s", id, entry.TargetVariable)
		}

		records = append(records, model.CanonicalRecord{
			AreaID:      id,
			AreaName:    extractAreaName(rec, id),
			Value:       value,
			Category:    extractCategory(rec),
			Coordinates: extractCoordinates(rec),
			Properties:  rec,
			ShapValues:  extractShapValues(rec),
		})
	}
	assignRanks(records)
	return records, nil
}
