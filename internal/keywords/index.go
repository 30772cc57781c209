// Package keywords maps domain concepts (brands, demographics, activities)
// to query keywords and underlying dataset field names. Matching is
// intentionally naive substring containment over hand-curated phrases:
// precision over recall, no stemming, no tokenization.
package keywords

import "strings"

// Concept ties a set of keyword synonyms to the dataset fields that carry
// the concept's raw value and its explanatory (shap) counterpart.
type Concept struct {
	Name        string
	Keywords    []string
	Fields      []string
	Description string
	Kind        Kind
}

// Kind classifies a concept for scoring bonuses.
type Kind string

const (
	KindBrand       Kind = "brand"
	KindDemographic Kind = "demographic"
	KindActivity    Kind = "activity"
	KindExplanatory Kind = "explanatory"
)

// FieldMatch is one concept hit for a query.
type FieldMatch struct {
	Field       string
	Description string
}

var concepts = []Concept{
	{
		Name:        "nike",
		Keywords:    []string{"nike", "air jordan", "jordan"},
		Fields:      []string{"value_MP30034A_B", "shap_MP30034A_B"},
		Description: "Nike athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "adidas",
		Keywords:    []string{"adidas"},
		Fields:      []string{"value_MP30029A_B", "shap_MP30029A_B"},
		Description: "Adidas athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "converse",
		Keywords:    []string{"converse", "chuck taylor"},
		Fields:      []string{"value_MP30031A_B", "shap_MP30031A_B"},
		Description: "Converse athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "new_balance",
		Keywords:    []string{"new balance"},
		Fields:      []string{"value_MP30033A_B", "shap_MP30033A_B"},
		Description: "New Balance athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "puma",
		Keywords:    []string{"puma"},
		Fields:      []string{"value_MP30035A_B", "shap_MP30035A_B"},
		Description: "Puma athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "reebok",
		Keywords:    []string{"reebok"},
		Fields:      []string{"value_MP30036A_B", "shap_MP30036A_B"},
		Description: "Reebok athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "asics",
		Keywords:    []string{"asics"},
		Fields:      []string{"value_MP30030A_B", "shap_MP30030A_B"},
		Description: "Asics athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "skechers",
		Keywords:    []string{"skechers"},
		Fields:      []string{"value_MP30037A_B", "shap_MP30037A_B"},
		Description: "Skechers athletic shoe purchase share",
		Kind:        KindBrand,
	},
	{
		Name:        "population",
		Keywords:    []string{"population", "people", "residents", "total pop"},
		Fields:      []string{"value_TOTPOP_CY", "shap_TOTPOP_CY"},
		Description: "Total population",
		Kind:        KindDemographic,
	},
	{
		Name:        "income",
		Keywords:    []string{"income", "earnings", "wealth", "median income", "disposable income"},
		Fields:      []string{"value_MEDDI_CY", "shap_MEDDI_CY"},
		Description: "Median disposable income",
		Kind:        KindDemographic,
	},
	{
		Name:        "age",
		Keywords:    []string{"age", "young", "older", "millennial", "gen z"},
		Fields:      []string{"value_MEDAGE_CY", "shap_MEDAGE_CY"},
		Description: "Median age",
		Kind:        KindDemographic,
	},
	{
		Name:        "diversity",
		Keywords:    []string{"diversity", "diverse", "ethnicity", "multicultural"},
		Fields:      []string{"value_DIVINDX_CY", "shap_DIVINDX_CY"},
		Description: "Diversity index",
		Kind:        KindDemographic,
	},
	{
		Name:        "household",
		Keywords:    []string{"household", "households", "family size"},
		Fields:      []string{"value_AVGHHSZ_CY", "shap_AVGHHSZ_CY"},
		Description: "Average household size",
		Kind:        KindDemographic,
	},
	{
		Name:        "running",
		Keywords:    []string{"running", "jogging", "runner", "marathon"},
		Fields:      []string{"value_MP33020A_B", "shap_MP33020A_B"},
		Description: "Participated in running or jogging",
		Kind:        KindActivity,
	},
	{
		Name:        "basketball",
		Keywords:    []string{"basketball", "hoops", "nba"},
		Fields:      []string{"value_MP33004A_B", "shap_MP33004A_B"},
		Description: "Participated in basketball",
		Kind:        KindActivity,
	},
	{
		Name:        "yoga",
		Keywords:    []string{"yoga", "pilates"},
		Fields:      []string{"value_MP33032A_B", "shap_MP33032A_B"},
		Description: "Participated in yoga",
		Kind:        KindActivity,
	},
	{
		Name:        "gym",
		Keywords:    []string{"gym", "fitness club", "workout", "exercise"},
		Fields:      []string{"value_MP33014A_B", "shap_MP33014A_B"},
		Description: "Belongs to a fitness club",
		Kind:        KindActivity,
	},
	{
		Name:        "explanation",
		Keywords:    []string{"shap", "explain", "explanation", "driver", "drivers", "contributing"},
		Fields:      []string{"shap_values"},
		Description: "Per-feature importance weights",
		Kind:        KindExplanatory,
	},
}

// Index performs concept lookups against free-text queries.
type Index struct {
	concepts []Concept
}

// NewIndex returns the built-in concept index.
func NewIndex() *Index {
	return &Index{concepts: concepts}
}

// Lookup returns the fields for every concept whose keywords appear in the
// query. A concept matches when any synonym is contained in the lowercased
// query text.
func (ix *Index) Lookup(query string) []FieldMatch {
	lower := strings.ToLower(query)
	var out []FieldMatch
	for _, c := range ix.concepts {
		if !matchesAny(lower, c.Keywords) {
			continue
		}
		for _, f := range c.Fields {
			out = append(out, FieldMatch{Field: f, Description: c.Description})
		}
	}
	return out
}

// Brands returns the distinct brand concept names mentioned in the query,
// in index order.
func (ix *Index) Brands(query string) []string {
	lower := strings.ToLower(query)
	var out []string
	for _, c := range ix.concepts {
		if c.Kind == KindBrand && matchesAny(lower, c.Keywords) {
			out = append(out, c.Name)
		}
	}
	return out
}

// HasDemographic reports whether any demographic or lifestyle concept is
// mentioned in the query.
func (ix *Index) HasDemographic(query string) bool {
	lower := strings.ToLower(query)
	for _, c := range ix.concepts {
		if (c.Kind == KindDemographic || c.Kind == KindActivity) && matchesAny(lower, c.Keywords) {
			return true
		}
	}
	return false
}

// HasExplanatory reports whether the query asks about feature explanations.
func (ix *Index) HasExplanatory(query string) bool {
	lower := strings.ToLower(query)
	for _, c := range ix.concepts {
		if c.Kind == KindExplanatory && matchesAny(lower, c.Keywords) {
			return true
		}
	}
	return false
}

// FieldForBrand returns the value field backing a brand concept name.
func (ix *Index) FieldForBrand(name string) (string, bool) {
	for _, c := range ix.concepts {
		if c.Kind == KindBrand && c.Name == name && len(c.Fields) > 0 {
			return c.Fields[0], true
		}
	}
	return "", false
}

func matchesAny(lowerQuery string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(lowerQuery, kw) {
			return true
		}
	}
	return false
}
