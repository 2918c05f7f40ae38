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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/dedup"
	"github.com/Riya0071234/Cooking-Voice-Assistant/ingest"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
	"github.com/Riya0071234/Cooking-Voice-Assistant/storage"
	"github.com/Riya0071234/Cooking-Voice-Assistant/tagging"
	"github.com/Riya0071234/Cooking-Voice-Assistant/vision"
)

// Pipeline wires the curation stages together and runs them end to end.
type Pipeline struct {
	orchestrator *ingest.Orchestrator
	index        *dedup.Index
	engine       *tagging.Engine
	items        storage.ItemStore
	frames       storage.FrameStore
	snapshots    storage.SnapshotStore
	branch       *vision.Branch
	rules        core.Rules
	tagItems     bool
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithVisionBranch enables frame sampling for validated video items. The
// frame store receives the qualifying frames.
func WithVisionBranch(branch *vision.Branch, frames storage.FrameStore) Option {
	return func(p *Pipeline) error {
		p.branch = branch
		p.frames = frames
		return nil
	}
}

// WithSnapshotStore enables similarity index persistence: the index is
// restored from the stored snapshot before a run and snapshotted after.
func WithSnapshotStore(snapshots storage.SnapshotStore) Option {
	return func(p *Pipeline) error {
		p.snapshots = snapshots
		return nil
	}
}

// WithTaggingEnabled toggles the tagging stage. Admitted items still move
// through the full lifecycle when disabled; they just carry no tags.
// Default is true.
func WithTaggingEnabled(enabled bool) Option {
	return func(p *Pipeline) error {
		p.tagItems = enabled
		return nil
	}
}

// WithRules overrides the validation rule set.
// Default is core.DefaultRules().
func WithRules(rules core.Rules) Option {
	return func(p *Pipeline) error {
		p.rules = rules
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a pipeline over the given stages and item store.
func New(orchestrator *ingest.Orchestrator, index *dedup.Index, engine *tagging.Engine, items storage.ItemStore, opts ...Option) (*Pipeline, error) {
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if items == nil {
		return nil, ErrItemStoreRequired
	}

	p := &Pipeline{
		orchestrator: orchestrator,
		index:        index,
		engine:       engine,
		items:        items,
		rules:        core.DefaultRules(),
		tagItems:     true,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.branch != nil && p.frames == nil {
		return nil, ErrFrameStoreRequired
	}
	return p, nil
}

// RunSummary is the accounting of one pipeline run.
type RunSummary struct {
	RunID        uuid.UUID
	Targets      int
	TargetErrors int
	Ingested     int
	Validated    int
	Rejected     map[core.RejectReason]int
	Duplicates   int
	Tagged       int
	Stored       int
	FramesStored int
}

// Run executes one full curation pass over the targets. Items that fail a
// stage are rejected with a reason and persisted for audit; a target that
// exhausts its retries is counted but never fails the run. The returned
// summary is valid even when Run returns an error.
func (p *Pipeline) Run(ctx context.Context, targets []source.Target) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:    uuid.New(),
		Targets:  len(targets),
		Rejected: make(map[core.RejectReason]int),
	}
	logger := p.logger.With("run", summary.RunID.String())

	if err := p.restoreIndex(ctx, logger); err != nil {
		return summary, err
	}

	logger.Info("run started", "targets", len(targets))

	results := p.orchestrator.Run(ctx, targets)
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	var batch []*core.ContentItem
	for _, result := range results {
		if result.Err != nil {
			summary.TargetErrors++
			continue
		}
		batch = append(batch, result.Items...)
	}
	summary.Ingested = len(batch)

	admitted := p.screen(batch, summary, logger)
	if p.tagItems {
		clusters := p.engine.Tag(admitted)
		summary.Tagged = len(admitted)
		if len(clusters) > 0 {
			logger.Info("batch clustered", "items", len(admitted), "clusters", len(clusters))
		}
	}

	for _, item := range admitted {
		if !p.tagItems {
			if err := item.Advance(core.StatusTagged); err != nil {
				logger.Warn("item not advanced to tagged",
					"id", uint64(item.Id), "status", item.Status.String(), "err", err)
			}
		}
		if err := item.Advance(core.StatusStored); err != nil {
			logger.Warn("item not advanced to stored",
				"id", uint64(item.Id), "status", item.Status.String(), "err", err)
		}
	}

	// A canceled run discards the uncommitted batch.
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	if err := p.items.PutItems(ctx, batch...); err != nil {
		return summary, fmt.Errorf("store items: %w", err)
	}
	summary.Stored = len(admitted)

	if p.branch != nil {
		if err := p.processVideos(ctx, admitted, summary, logger); err != nil {
			return summary, err
		}
	}

	if err := p.persistIndex(ctx, logger); err != nil {
		return summary, err
	}

	logger.Info("run finished",
		"ingested", summary.Ingested,
		"validated", summary.Validated,
		"duplicates", summary.Duplicates,
		"stored", summary.Stored,
		"frames", summary.FramesStored,
		"target_errors", summary.TargetErrors)
	return summary, nil
}

// screen applies the validation gate and the similarity index to the batch,
// in place, and returns the admitted items.
func (p *Pipeline) screen(batch []*core.ContentItem, summary *RunSummary, logger *slog.Logger) []*core.ContentItem {
	admitted := make([]*core.ContentItem, 0, len(batch))
	for _, item := range batch {
		if rej := core.Validate(item, p.rules); rej != nil {
			item.Reject(rej.Reason)
			summary.Rejected[rej.Reason]++
			logger.Debug("item rejected",
				"id", uint64(item.Id), "source", item.Source.String(), "reason", rej.Reason.String(), "detail", rej.Detail)
			continue
		}
		if err := item.Advance(core.StatusValidated); err != nil {
			logger.Warn("item not advanced to validated", "id", uint64(item.Id), "err", err)
			continue
		}
		summary.Validated++

		original, ok := p.index.Admit(item)
		if !ok {
			item.RejectDuplicate(original)
			summary.Rejected[core.ReasonDuplicate]++
			summary.Duplicates++
			logger.Debug("duplicate rejected",
				"id", uint64(item.Id), "original", uint64(original))
			continue
		}
		if err := item.Advance(core.StatusDeduplicated); err != nil {
			logger.Warn("item not advanced to deduplicated", "id", uint64(item.Id), "err", err)
			continue
		}
		admitted = append(admitted, item)
	}
	return admitted
}

// processVideos runs the vision branch over every stored video item and
// persists the qualifying frames per video.
func (p *Pipeline) processVideos(ctx context.Context, items []*core.ContentItem, summary *RunSummary, logger *slog.Logger) error {
	for _, item := range items {
		if item.Source != core.SourceVideo || item.Video == nil {
			continue
		}

		frames, err := p.branch.Process(ctx, item.Video)
		if err != nil {
			return fmt.Errorf("process video %s: %w", item.Video.VideoID, err)
		}
		if len(frames) == 0 {
			continue
		}

		if err := p.frames.PutFrames(ctx, frames...); err != nil {
			return fmt.Errorf("store frames for %s: %w", item.Video.VideoID, err)
		}
		summary.FramesStored += len(frames)
	}
	return nil
}

// restoreIndex loads the persisted similarity index, if any. A missing
// snapshot means a fresh index; a corrupted one fails the run so duplicates
// are not silently re-admitted.
func (p *Pipeline) restoreIndex(ctx context.Context, logger *slog.Logger) error {
	if p.snapshots == nil {
		return nil
	}

	data, err := p.snapshots.LoadSnapshot(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Info("no index snapshot found, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load index snapshot: %w", err)
	}

	if err := p.index.Restore(data); err != nil {
		return fmt.Errorf("restore index: %w", err)
	}
	logger.Info("index restored", "entries", p.index.Len())
	return nil
}

func (p *Pipeline) persistIndex(ctx context.Context, logger *slog.Logger) error {
	if p.snapshots == nil {
		return nil
	}

	if err := p.snapshots.SaveSnapshot(ctx, p.index.Snapshot()); err != nil {
		return fmt.Errorf("save index snapshot: %w", err)
	}
	logger.Info("index snapshot saved", "entries", p.index.Len())
	return nil
}
