package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ScoringConfig holds the hand-tuned constants behind endpoint scoring.
// The values are configuration, not part of the algorithm's contract;
// routing scenarios are pinned by regression tests instead.
type ScoringConfig struct {
	PrimaryWeight float64 `yaml:"primary_weight" mapstructure:"primary_weight"`
	ContextWeight float64 `yaml:"context_weight" mapstructure:"context_weight"`
	AvoidPenalty  float64 `yaml:"avoid_penalty" mapstructure:"avoid_penalty"`

	// IntentBonuses maps intent name -> endpoint path -> bonus points.
	IntentBonuses map[string]map[string]float64 `yaml:"intent_bonuses" mapstructure:"intent_bonuses"`

	// Bonuses applied from field/brand mentions.
	BrandDifferenceBonus  float64 `yaml:"brand_difference_bonus" mapstructure:"brand_difference_bonus"`
	BrandCompetitiveBonus float64 `yaml:"brand_competitive_bonus" mapstructure:"brand_competitive_bonus"`
	LifestyleBonus        float64 `yaml:"lifestyle_bonus" mapstructure:"lifestyle_bonus"`
	ExplanatoryBonus      float64 `yaml:"explanatory_bonus" mapstructure:"explanatory_bonus"`

	// MultiEndpointThreshold is the number of distinct endpoint-family
	// phrase groups a query must mention before the multi-endpoint
	// detector fires on mention counting.
	MultiEndpointThreshold int `yaml:"multi_endpoint_threshold" mapstructure:"multi_endpoint_threshold"`

	// TablePath optionally points at a YAML file overriding these tables.
	TablePath string `yaml:"table_path" mapstructure:"table_path"`
}

// Intent names produced by the scorer's query classification.
const (
	IntentComparison   = "comparison"
	IntentRanking      = "ranking"
	IntentDemographic  = "demographic"
	IntentTrend        = "trend"
	IntentRelationship = "relationship"
	IntentAnalysis     = "analysis"
)

// DefaultScoringConfig returns the built-in scoring tables.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PrimaryWeight: 3,
		ContextWeight: 2,
		AvoidPenalty:  2,

		IntentBonuses: map[string]map[string]float64{
			IntentComparison: {
				"/comparative-analysis": 3,
				"/competitive-analysis": 2,
				"/brand-difference":     2,
			},
			IntentRanking: {
				"/analyze":            2,
				"/strategic-analysis": 2,
				"/market-sizing":      1,
			},
			IntentDemographic: {
				"/demographic-insights": 3,
				"/customer-profile":     2,
			},
			IntentTrend: {
				"/trend-analysis":      3,
				"/predictive-modeling": 1,
			},
			IntentRelationship: {
				"/correlation-analysis": 3,
				"/feature-interactions": 1,
			},
			IntentAnalysis: {
				"/analyze": 1,
			},
		},

		BrandDifferenceBonus:  4,
		BrandCompetitiveBonus: 3,
		LifestyleBonus:        1.5,
		ExplanatoryBonus:      2,

		MultiEndpointThreshold: 2,
	}
}

// ValidateScoringConfig checks that a ScoringConfig is internally
// consistent.
func ValidateScoringConfig(c ScoringConfig) error {
	var errs []string

	weights := map[string]float64{
		"primary_weight":          c.PrimaryWeight,
		"context_weight":          c.ContextWeight,
		"avoid_penalty":           c.AvoidPenalty,
		"brand_difference_bonus":  c.BrandDifferenceBonus,
		"brand_competitive_bonus": c.BrandCompetitiveBonus,
		"lifestyle_bonus":         c.LifestyleBonus,
		"explanatory_bonus":       c.ExplanatoryBonus,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if c.PrimaryWeight <= c.ContextWeight {
		errs = append(errs, "primary_weight should exceed context_weight")
	}
	if c.MultiEndpointThreshold < 2 {
		errs = append(errs, "multi_endpoint_threshold must be >= 2")
	}
	for intent := range c.IntentBonuses {
		switch intent {
		case IntentComparison, IntentRanking, IntentDemographic, IntentTrend, IntentRelationship, IntentAnalysis:
		default:
			errs = append(errs, fmt.Sprintf("unknown intent %q in intent_bonuses", intent))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: scoring validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadScoringTables reads scoring-table overrides from a YAML file and
// merges them over the defaults.
func LoadScoringTables(path string) (ScoringConfig, error) {
	cfg := DefaultScoringConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "config: read scoring tables %s", path)
	}

	// The YAML has a top-level "scoring" key.
	var wrapper struct {
		Scoring ScoringConfig `yaml:"scoring"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return cfg, eris.Wrap(err, "config: parse scoring tables")
	}

	o := wrapper.Scoring
	if o.PrimaryWeight > 0 {
		cfg.PrimaryWeight = o.PrimaryWeight
	}
	if o.ContextWeight > 0 {
		cfg.ContextWeight = o.ContextWeight
	}
	if o.AvoidPenalty > 0 {
		cfg.AvoidPenalty = o.AvoidPenalty
	}
	if o.BrandDifferenceBonus > 0 {
		cfg.BrandDifferenceBonus = o.BrandDifferenceBonus
	}
	if o.BrandCompetitiveBonus > 0 {
		cfg.BrandCompetitiveBonus = o.BrandCompetitiveBonus
	}
	if o.LifestyleBonus > 0 {
		cfg.LifestyleBonus = o.LifestyleBonus
	}
	if o.ExplanatoryBonus > 0 {
		cfg.ExplanatoryBonus = o.ExplanatoryBonus
	}
	if o.MultiEndpointThreshold > 0 {
		cfg.MultiEndpointThreshold = o.MultiEndpointThreshold
	}
	for intent, table := range o.IntentBonuses {
		if cfg.IntentBonuses[intent] == nil {
			cfg.IntentBonuses[intent] = map[string]float64{}
		}
		for endpoint, bonus := range table {
			cfg.IntentBonuses[intent][endpoint] = bonus
		}
	}

	if err := ValidateScoringConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
