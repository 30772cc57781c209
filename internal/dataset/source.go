// Package dataset loads and caches the pre-computed endpoint datasets.
// A Cache fronts an ordered chain of sources; the first source that
// yields a parseable dataset for a key wins.
package dataset

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/model"
)

// ErrNotFound is returned by a Source when it has no dataset for a key.
// The cache moves on to the next source; any other error is logged and
// also treated as a miss for that source.
var ErrNotFound = eris.New("dataset: not found")

// Source is one storage location for endpoint datasets.
type Source interface {
	// Name identifies the source in logs and unavailability errors.
	Name() string
	// Load fetches and parses the dataset for an endpoint cache key.
	Load(ctx context.Context, key string) (*model.RawDataset, error)
}

// Decode parses dataset bytes. Accepted shapes are the
// {success, results} envelope or a bare JSON array of records; anything
// else is a load error.
func Decode(data []byte) (*model.RawDataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, eris.New("dataset: empty payload")
	}

	if trimmed[0] == '[' {
		var results []map[string]any
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, eris.Wrap(err, "dataset: parse record array")
		}
		return &model.RawDataset{Success: true, Results: results}, nil
	}

	var ds model.RawDataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, eris.Wrap(err, "dataset: parse envelope")
	}
	if ds.Results == nil {
		return nil, eris.New("dataset: envelope missing results array")
	}
	return &ds, nil
}
