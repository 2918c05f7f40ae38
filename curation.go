// Copyright 2025 The Cooking Voice Assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package curation assembles the content curation pipeline from its parts:
// source adapters, the ingestion orchestrator, the validation gate, the
// similarity index, the tagging engine, the vision branch and the BadgerDB
// storage sink. A Curator owns the wiring and the storage backend.
package curation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Riya0071234/Cooking-Voice-Assistant/config"
	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/dedup"
	"github.com/Riya0071234/Cooking-Voice-Assistant/ingest"
	"github.com/Riya0071234/Cooking-Voice-Assistant/pipeline"
	"github.com/Riya0071234/Cooking-Voice-Assistant/retag"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
	storebadger "github.com/Riya0071234/Cooking-Voice-Assistant/storage/badger"
	"github.com/Riya0071234/Cooking-Voice-Assistant/tagging"
	"github.com/Riya0071234/Cooking-Voice-Assistant/vision"
)

// ErrVisionDepsRequired is returned when vision is enabled in the
// configuration but no frame extractor and detector were provided.
var ErrVisionDepsRequired = errors.New("vision is enabled but no extractor and detector were provided")

// Curator is the assembled curation system.
type Curator struct {
	cfg          config.Config
	backend      *storebadger.Backend
	items        *storebadger.ItemStore
	frames       *storebadger.FrameStore
	snapshots    *storebadger.SnapshotStore
	orchestrator *ingest.Orchestrator
	index        *dedup.Index
	engine       *tagging.Engine
	branch       *vision.Branch
	pipeline     *pipeline.Pipeline
	logger       *slog.Logger
}

// Option configures a Curator.
type Option func(*curatorOptions)

type curatorOptions struct {
	extractor vision.FrameExtractor
	detector  vision.Detector
	logger    *slog.Logger
}

// WithVision provides the frame extractor and detector the vision branch
// runs on. Required when vision is enabled in the configuration.
func WithVision(extractor vision.FrameExtractor, detector vision.Detector) Option {
	return func(o *curatorOptions) {
		o.extractor = extractor
		o.detector = detector
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *curatorOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Open assembles a Curator from the configuration and the given source
// adapters. The storage backend is opened at the configured path.
func Open(cfg config.Config, adapters []source.Adapter, opts ...Option) (*Curator, error) {
	options := &curatorOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Vision.Enabled && (options.extractor == nil || options.detector == nil) {
		return nil, ErrVisionDepsRequired
	}

	backend, err := storebadger.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return nil, err
	}

	c := &Curator{
		cfg:       cfg,
		backend:   backend,
		items:     storebadger.NewItemStore(backend),
		frames:    storebadger.NewFrameStore(backend),
		snapshots: storebadger.NewSnapshotStore(backend),
		logger:    logger,
	}

	c.orchestrator, err = ingest.New(adapters,
		ingest.WithWorkers(cfg.Scraping.ConcurrentWorkers),
		ingest.WithDelay(cfg.Scraping.Delay()),
		ingest.WithMaxRetries(cfg.Scraping.MaxRetries),
		ingest.WithTimeout(cfg.Scraping.RequestTimeout()),
		ingest.WithLogger(logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	params := cfg.Processing.AutoTagging.Params
	c.index = dedup.NewIndex(
		dedup.WithThreshold(cfg.Processing.DeduplicationSimilarityThreshold),
		dedup.WithMinWordLength(params.MinWordLength),
		dedup.WithLogger(logger))
	c.engine = tagging.New(
		tagging.WithMaxTags(params.MaxTagsPerItem),
		tagging.WithMinWordLength(params.MinWordLength),
		tagging.WithTopKeywords(params.TopNKeywordsPerCluster),
		tagging.WithLogger(logger))

	pipelineOpts := []pipeline.Option{
		pipeline.WithRules(cfg.Validation.Rules()),
		pipeline.WithTaggingEnabled(cfg.Processing.AutoTagging.Enabled),
		pipeline.WithLogger(logger),
	}
	if cfg.Processing.PersistIndex {
		pipelineOpts = append(pipelineOpts, pipeline.WithSnapshotStore(c.snapshots))
	}
	if cfg.Vision.Enabled {
		c.branch, err = vision.New(options.extractor, options.detector,
			vision.WithWorkers(cfg.Scraping.ConcurrentWorkers),
			vision.WithInterval(cfg.Vision.Interval()),
			vision.WithConfidence(cfg.Vision.ConfidenceThreshold),
			vision.WithLogger(logger))
		if err != nil {
			c.orchestrator.Release()
			backend.Close()
			return nil, err
		}
		pipelineOpts = append(pipelineOpts, pipeline.WithVisionBranch(c.branch, c.frames))
	}

	c.pipeline, err = pipeline.New(c.orchestrator, c.index, c.engine, c.items, pipelineOpts...)
	if err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Run executes one curation pass over the targets listed in the
// configuration.
func (c *Curator) Run(ctx context.Context) (*pipeline.RunSummary, error) {
	targets, err := TargetsFromConfig(c.cfg)
	if err != nil {
		return nil, err
	}
	return c.pipeline.Run(ctx, targets)
}

// RunTargets executes one curation pass over explicit targets.
func (c *Curator) RunTargets(ctx context.Context, targets []source.Target) (*pipeline.RunSummary, error) {
	return c.pipeline.Run(ctx, targets)
}

// NewRetagger creates a retagger over the stored corpus, using the curator's
// tagging engine.
// progress: where to write progress output (typically os.Stderr)
func (c *Curator) NewRetagger(retagCfg *retag.Config, progress io.Writer) (*retag.Retagger, error) {
	return retag.NewRetagger(c.items, c.engine, retagCfg, progress)
}

// ItemStore exposes the persisted content items.
func (c *Curator) ItemStore() storage.ItemStore {
	return c.items
}

// FrameStore exposes the persisted video frames.
func (c *Curator) FrameStore() storage.FrameStore {
	return c.frames
}

// Close releases the worker pools and closes the storage backend.
func (c *Curator) Close() error {
	if c.orchestrator != nil {
		c.orchestrator.Release()
	}
	if c.branch != nil {
		c.branch.Release()
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// TargetsFromConfig expands the configured sources into ingestion targets,
// one per URL.
func TargetsFromConfig(cfg config.Config) ([]source.Target, error) {
	var targets []source.Target
	for _, src := range cfg.Sources {
		sourceType, err := core.ParseSourceType(src.Type)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		for _, url := range src.URLs {
			targets = append(targets, source.Target{
				Source: sourceType,
				Name:   src.Name,
				URL:    url,
			})
		}
	}
	return targets, nil
}
