package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/insights-cli/internal/model"
)

// FileSource loads datasets from local files. Paths are tried in order:
//
//	{dir}/endpoints/{key}.json        per-endpoint file
//	{dir}/endpoints/all_endpoints.json combined file keyed by endpoint
//	{dir}/blob-cache.json             legacy combined format
//
// The first path that parses wins.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file:" + s.dir }

// Load implements Source.
func (s *FileSource) Load(_ context.Context, key string) (*model.RawDataset, error) {
	// Individual per-endpoint file.
	path := filepath.Join(s.dir, "endpoints", key+".json")
	if data, err := os.ReadFile(path); err == nil {
		ds, derr := Decode(data)
		if derr != nil {
			return nil, eris.Wrapf(derr, "file: decode %s", path)
		}
		return ds, nil
	}

	// Combined file keyed by endpoint.
	if ds, err := s.loadCombined(filepath.Join(s.dir, "endpoints", "all_endpoints.json"), key); err == nil {
		return ds, nil
	}

	// Legacy combined format.
	if ds, err := s.loadCombined(filepath.Join(s.dir, "blob-cache.json"), key); err == nil {
		return ds, nil
	}

	return nil, ErrNotFound
}

// loadCombined extracts one endpoint's dataset from a combined file whose
// top level maps endpoint keys to datasets, optionally nested under a
// "datasets" wrapper.
func (s *FileSource) loadCombined(path, key string) (*model.RawDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrNotFound
	}

	var combined map[string]json.RawMessage
	if err := json.Unmarshal(data, &combined); err != nil {
		return nil, eris.Wrapf(err, "file: parse combined %s", path)
	}

	if nested, ok := combined["datasets"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil {
			combined = inner
		}
	}

	raw, ok := combined[key]
	if !ok {
		return nil, ErrNotFound
	}

	ds, err := Decode(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "file: decode %s[%s]", path, key)
	}
	return ds, nil
}
