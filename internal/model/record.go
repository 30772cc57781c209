// Package model defines the shared data shapes for the analysis pipeline.
package model

// CanonicalRecord is the standardized per-area record every endpoint's raw
// results are converted into. Value carries the endpoint's primary metric;
// its semantics vary by endpoint but are uniform within one record set.
type CanonicalRecord struct {
	AreaID      string             `json:"area_id"`
	AreaName    string             `json:"area_name"`
	Value       float64            `json:"value"`
	Rank        int                `json:"rank"`
	Category    string             `json:"category,omitempty"`
	Coordinates []float64          `json:"coordinates,omitempty"` // [lon, lat] centroid
	Properties  map[string]any     `json:"properties,omitempty"`
	ShapValues  map[string]float64 `json:"shap_values,omitempty"`
	ClusterID   *int               `json:"cluster_id,omitempty"`
	ClusterName string             `json:"cluster_name,omitempty"`
}

// EndpointScore is one scorer verdict for a candidate endpoint. Reasons
// exist for explainability only and never affect routing.
type EndpointScore struct {
	Endpoint string   `json:"endpoint"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons,omitempty"`
}

// AnalysisStatistics summarizes a processed record set. Family-specific
// fields are zero unless the endpoint's processor populates them.
type AnalysisStatistics struct {
	Total        int     `json:"total"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDev       float64 `json:"std_dev"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	IQR          float64 `json:"iqr"`
	OutlierCount int     `json:"outlier_count"`

	ClusterCount        int     `json:"cluster_count,omitempty"`
	CorrelationStrength float64 `json:"correlation_strength,omitempty"`
	RiskLevel           string  `json:"risk_level,omitempty"`
}

// RawDataset is the accepted storage shape for a cached endpoint dataset.
// Storage may also hold a bare JSON array of records; loaders normalize
// that into this envelope with Success=true.
type RawDataset struct {
	Success bool             `json:"success"`
	Results []map[string]any `json:"results"`
}

// ClusterMetadata describes cluster endpoints' groupings.
type ClusterMetadata struct {
	Clusters []ClusterSummary `json:"clusters"`
}

// ClusterSummary is one cluster's aggregate view.
type ClusterSummary struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Size      int     `json:"size"`
	MeanValue float64 `json:"mean_value"`
}

// CompetitiveMetadata describes brand-comparison endpoints' framing.
type CompetitiveMetadata struct {
	BrandA string `json:"brand_a"`
	BrandB string `json:"brand_b"`
	Metric string `json:"metric"`
}

// DemographicMetadata lists the demographic fields a profile endpoint
// surfaced alongside the primary metric.
type DemographicMetadata struct {
	Fields []string `json:"fields"`
}

// ProcessedAnalysis is the pipeline output handed to the rendering and
// narrative layers. NoData distinguishes a legitimately empty selection
// from "not yet computed".
type ProcessedAnalysis struct {
	Type           string             `json:"type"`
	Endpoint       string             `json:"endpoint"`
	Records        []CanonicalRecord  `json:"records"`
	Statistics     AnalysisStatistics `json:"statistics"`
	TargetVariable string             `json:"target_variable"`
	NoData         bool               `json:"no_data,omitempty"`

	Cluster     *ClusterMetadata     `json:"cluster,omitempty"`
	Competitive *CompetitiveMetadata `json:"competitive,omitempty"`
	Demographic *DemographicMetadata `json:"demographic,omitempty"`
}
