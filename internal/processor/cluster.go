package processor

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/catalog"
	"github.com/sells-group/insights-cli/internal/model"
)

// ClusterProcessor standardizes cluster-assignment endpoints. The
// canonical value is the cluster id itself, not the configured metric,
// so the rendering layer can bucket areas by assignment.
type ClusterProcessor struct{}

// Name implements Processor.
func (p *ClusterProcessor) Name() string { return catalog.ProcessorCluster }

// Validate implements Processor.
func (p *ClusterProcessor) Validate(raw *model.RawDataset) bool { return validEnvelope(raw) }

var clusterIDFields = []string{"cluster_id", "cluster", "CLUSTER_ID", "segment_id"}

// Process implements Processor.
func (p *ClusterProcessor) Process(entry catalog.Entry, raw *model.RawDataset, _ *Context) ([]model.CanonicalRecord, *Metadata, error) {
	type clusterAgg struct {
		size int
		sum  float64
		name string
	}
	aggs := make(map[int]*clusterAgg)

	records := make([]model.CanonicalRecord, 0, len(raw.Results))
	for i, rec := range raw.Results {
		id, ok := extractAreaID(rec)
		if !ok {
			return nil, nil, eris.Errorf("record %d: no area identifier in any of %v", i, areaIDFields)
		}

		clusterID, ok := extractClusterID(rec)
		if !ok {
			return nil, nil, eris.Errorf("record %s: no cluster assignment in any of %v", id, clusterIDFields)
		}
		clusterName := extractClusterName(rec, clusterID)

		// Underlying metric still rides along for cluster summaries.
		metric, _ := extractValue(rec, entry.TargetVariable)

		cid := clusterID
		records = append(records, model.CanonicalRecord{
			AreaID:      id,
			AreaName:    extractAreaName(rec, id),
			Value:       float64(clusterID),
			Category:    clusterName,
			Coordinates: extractCoordinates(rec),
			Properties:  rec,
			ShapValues:  extractShapValues(rec),
			ClusterID:   &cid,
			ClusterName: clusterName,
		})

		agg, ok := aggs[clusterID]
		if !ok {
			agg = &clusterAgg{name: clusterName}
			aggs[clusterID] = agg
		}
		agg.size++
		agg.sum += metric
	}
	assignRanks(records)

	ids := make([]int, 0, len(aggs))
	for id := range aggs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	meta := &Metadata{Cluster: &model.ClusterMetadata{}}
	for _, id := range ids {
		agg := aggs[id]
		meta.Cluster.Clusters = append(meta.Cluster.Clusters, model.ClusterSummary{
			ID:        id,
			Name:      agg.name,
			Size:      agg.size,
			MeanValue: agg.sum / float64(agg.size),
		})
	}
	return records, meta, nil
}

func extractClusterID(rec map[string]any) (int, bool) {
	for _, f := range clusterIDFields {
		if v, ok := toFloat(rec[f]); ok {
			return int(v), true
		}
	}
	return 0, false
}

func extractClusterName(rec map[string]any, id int) string {
	for _, f := range []string{"cluster_name", "cluster_label", "segment_name"} {
		if v, ok := rec[f]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("Cluster %d", id)
}
