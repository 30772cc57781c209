package processor

import (
	"sort"
	"strings"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/model"
)

// DemographicProcessor standardizes demographic/profile endpoints and
// reports which demographic fields the dataset surfaced alongside the
// primary metric.
type DemographicProcessor struct{}

// Name implements Processor.
func (p *DemographicProcessor) Name() string { return catalog.ProcessorDemographic }

// Validate implements Processor.
func (p *DemographicProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

// demographicFieldPrefixes identify demographic columns in raw records.
var demographicFieldPrefixes = []string{
	"value_TOTPOP", "value_MEDDI", "value_MEDAGE", "value_DIVINDX", "value_AVGHHSZ",
	"population", "income", "median_age",
}

// Process implements Processor.
func (p *DemographicProcessor) Process(entry catalog.Entry, raw *model.RawDataset, _ *Context) ([]model.CanonicalRecord, *Metadata, error) {
	records, err := standardize(entry, raw)
	if err != nil {
		return nil, nil, err
	}

	fields := make(map[string]struct{})
	for _, rec := range raw.Results {
		for k := range rec {
			for _, prefix := range demographicFieldPrefixes {
				if strings.HasPrefix(k, prefix) {
					fields[k] = struct{}{}
				}
			}
		}
	}

	meta := &Metadata{Demographic: &model.DemographicMetadata{}}
	for f := range fields {
		meta.Demographic.Fields = append(meta.Demographic.Fields, f)
	}
	sort.Strings(meta.Demographic.Fields)

	return records, meta, nil
}

// RiskProcessor standardizes risk endpoints and grades the overall risk
// posture of the selection.
type RiskProcessor struct{}

// Name implements Processor.
func (p *RiskProcessor) Name() string { return catalog.ProcessorRisk }

// Validate implements Processor.
func (p *RiskProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

// Risk grade cutoffs on the risk-adjusted score: higher score = safer.
const (
	riskLowCutoff    = 7.0
	riskMediumCutoff = 4.0
)

// Process implements Processor.
func (p *RiskProcessor) Process(entry catalog.Entry, raw *model.RawDataset, _ *Context) ([]model.CanonicalRecord, *Metadata, error) {
	records, err := standardize(entry, raw)
	if err != nil {
		return nil, nil, err
	}

	var sum float64
	for i := range records {
		if records[i].Category == "" {
			records[i].Category = gradeRisk(records[i].Value)
		}
		sum += records[i].Value
	}

	meta := &Metadata{}
	if len(records) > 0 {
		meta.RiskLevel = gradeRisk(sum / float64(len(records)))
	}
	return records, meta, nil
}

func gradeRisk(score float64) string {
	switch {
	case score >= riskLowCutoff:
		return "low"
	case score >= riskMediumCutoff:
		return "medium"
	default:
		return "high"
	}
}
