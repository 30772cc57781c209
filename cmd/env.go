package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insights-cli/internal/dataset"
	"github.com/sells-group/insights-cli/internal/geofilter"
	"github.com/sells-group/insights-cli/internal/keywords"
	"github.com/sells-group/insights-cli/internal/narrative"
	"github.com/sells-group/insights-cli/internal/pipeline"
	"github.com/sells-group/insights-cli/internal/processor"
	"github.com/sells-group/insights-cli/internal/router"
	"github.com/sells-group/insights-cli/internal/scorer"
	"github.com/sells-group/insights-cli/pkg/anthropic"
)

// pipelineEnv bundles the long-lived objects commands share.
type pipelineEnv struct {
	Cache    *dataset.Cache
	Store    dataset.SnapshotStore // nil when no driver configured
	Pipeline *pipeline.Pipeline
	Narrator narrative.Generator
}

// buildEnv assembles the dataset source chain and the query pipeline from
// the loaded config. Sources are ordered snapshot store, blob, local
// files, FTP archive; the first hit wins.
func buildEnv(ctx context.Context) (*pipelineEnv, error) {
	timeout := time.Duration(cfg.Dataset.TimeoutSecs) * time.Second

	var sources []dataset.Source
	var store dataset.SnapshotStore

	switch cfg.Dataset.Driver {
	case "sqlite":
		s, err := dataset.NewSQLite(cfg.Dataset.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = s
	case "postgres":
		s, err := dataset.NewPostgres(ctx, cfg.Dataset.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = s
	case "":
	default:
		return nil, eris.Errorf("unknown dataset driver %q", cfg.Dataset.Driver)
	}

	if store != nil {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		sources = append(sources, dataset.NewStoreSource("snapshot:"+cfg.Dataset.Driver, store))
	}
	if cfg.Dataset.BlobBaseURL != "" {
		blob := dataset.NewBlobSource(
			cfg.Dataset.BlobBaseURL, nil, cfg.Dataset.BlobRPS, cfg.Dataset.BlobBurst, timeout)
		sources = append(sources, dataset.WithRetry(blob, dataset.DefaultRetryConfig()))
	}
	if cfg.Dataset.DataDir != "" {
		sources = append(sources, dataset.NewFileSource(cfg.Dataset.DataDir))
	}
	if cfg.Dataset.FTPAddr != "" {
		ftp := dataset.NewFTPSource(
			cfg.Dataset.FTPAddr, cfg.Dataset.FTPUser, cfg.Dataset.FTPPassword, cfg.Dataset.FTPDir, timeout)
		sources = append(sources, dataset.WithRetry(ftp, dataset.DefaultRetryConfig()))
	}
	if len(sources) == 0 {
		return nil, eris.New("no dataset sources configured")
	}

	gaz := geofilter.NewGazetteer()
	if cfg.Geo.ShapefilePath != "" {
		if err := gaz.LoadShapefile(cfg.Geo.ShapefilePath); err != nil {
			zap.L().Warn("shapefile load failed, using built-in gazetteer",
				zap.String("path", cfg.Geo.ShapefilePath),
				zap.Error(err),
			)
		}
	}

	idx := keywords.NewIndex()
	rt := router.New(
		scorer.New(cfg.Scoring, idx),
		router.NewMultiDetector(cfg.Scoring.MultiEndpointThreshold),
	)
	cache := dataset.NewCache(sources...)

	var narrator narrative.Generator = narrative.NoopGenerator{}
	if cfg.Narrative.Key != "" {
		narrator = narrative.NewClaudeGenerator(
			anthropic.NewClient(cfg.Narrative.Key), cfg.Narrative.Model)
	}

	return &pipelineEnv{
		Cache:    cache,
		Store:    store,
		Pipeline: pipeline.New(rt, cache, processor.NewRegistry(idx), gaz, idx),
		Narrator: narrator,
	}, nil
}

// Close releases any held resources.
func (e *pipelineEnv) Close() {
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			zap.L().Warn("closing snapshot store", zap.Error(err))
		}
	}
}
