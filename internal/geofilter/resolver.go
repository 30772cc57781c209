// Package geofilter restricts raw record sets to the geographies named in
// a query. Only the resolution contract is depended on by the pipeline;
// the gazetteer implementation here is one provider of it.
package geofilter

// Entity is one resolved geographic reference from a query.
type Entity struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"` // "city" or "region"
	ZIPPrefixes []string `json:"zip_prefixes,omitempty"`
}

// Stats summarizes a resolution pass.
type Stats struct {
	Total   int `json:"total"`
	Matched int `json:"matched"`
}

// Resolution is the outcome of resolving a query against a record set.
// When no geographic entity is named, Filtered is the input unchanged.
type Resolution struct {
	Entities []Entity         `json:"entities"`
	Filtered []map[string]any `json:"-"`
	Stats    Stats            `json:"stats"`
}

// Resolver resolves geographic references in a query and filters raw
// records to them.
type Resolver interface {
	Resolve(query string, records []map[string]any) (*Resolution, error)
}
