package processor

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/model"
)

// resolveBrandPair picks which two brands a comparison is about. Brands
// extracted from the query win; the Nike/Adidas pairing is the dataset's
// default framing when the query names fewer than two.
func resolveBrandPair(pctx *Context) (string, string) {
	if pctx != nil && len(pctx.ExtractedBrands) >= 2 {
		return pctx.ExtractedBrands[0], pctx.ExtractedBrands[1]
	}
	return "nike", "adidas"
}

// CompetitiveProcessor standardizes competitive-positioning endpoints.
// Records carry a pre-computed competitive score; the processor resolves
// the brand framing for downstream narrative use.
type CompetitiveProcessor struct{}

// Name implements Processor.
func (p *CompetitiveProcessor) Name() string { return catalog.ProcessorCompetitive }

// Validate implements Processor.
func (p *CompetitiveProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

// Process implements Processor.
func (p *CompetitiveProcessor) Process(entry catalog.Entry, raw *model.RawDataset, pctx *Context) ([]model.CanonicalRecord, *Metadata, error) {
	records, err := standardize(entry, raw)
	if err != nil {
		return nil, nil, err
	}

	brandA, brandB := resolveBrandPair(pctx)
	meta := &Metadata{
		Competitive: &model.CompetitiveMetadata{
			BrandA: brandA,
			BrandB: brandB,
			Metric: entry.TargetVariable,
		},
	}
	return records, meta, nil
}

// BrandDifferenceProcessor standardizes pairwise share-difference
// endpoints. When a record lacks the pre-computed difference metric, the
// difference is derived from the two brands' share fields.
type BrandDifferenceProcessor struct {
	idx *keywords.Index
}

// Name implements Processor.
func (p *BrandDifferenceProcessor) Name() string { return catalog.ProcessorDifference }

// Validate implements Processor.
func (p *BrandDifferenceProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

// Process implements Processor.
func (p *BrandDifferenceProcessor) Process(entry catalog.Entry, raw *model.RawDataset, pctx *Context) ([]model.CanonicalRecord, *Metadata, error) {
	brandA, brandB := resolveBrandPair(pctx)
	fieldA, okA := p.idx.FieldForBrand(brandA)
	fieldB, okB := p.idx.FieldForBrand(brandB)
	if !okA || !okB {
		return nil, nil, eris.Errorf("unknown brand pair %s/%s", brandA, brandB)
	}

	records := make([]model.CanonicalRecord, 0, len(raw.Results))
	for i, rec := range raw.Results {
		id, ok := extractAreaID(rec)
		if !ok {
			return nil, nil, eris.Errorf("record %d: no area identifier in any of %v", i, areaIDFields)
		}

		value, ok := extractValue(rec, entry.TargetVariable)
		if !ok {
			shareA, okA := toFloat(rec[fieldA])
			shareB, okB := toFloat(rec[fieldB])
			if !okA || !okB {
				return nil, nil, eris.Errorf("record %s: no difference metric and no %s/%s shares", id, fieldA, fieldB)
			}
			value = shareA - shareB
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

	meta := &Metadata{
		Competitive: &model.CompetitiveMetadata{
			BrandA: brandA,
			BrandB: brandB,
			Metric: entry.TargetVariable,
		},
	}
	return records, meta, nil
}
