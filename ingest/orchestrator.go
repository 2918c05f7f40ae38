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


package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/retry"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
)

// Orchestrator fans ingestion targets out over a bounded worker pool. Each
// target is fetched through its source adapter with a per-domain politeness
// delay, a per-call timeout and exponential-backoff retries for transient
// failures. One target failing never blocks its siblings.
type Orchestrator struct {
	adapters   map[core.SourceType]source.Adapter
	pool       *ants.Pool
	throttle   *throttle
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithWorkers sets the worker pool size. Values below 1 are clamped to 1.
// Default is 4.
func WithWorkers(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithDelay sets the minimum delay between requests to the same domain.
// Default is 2 seconds.
func WithDelay(delay time.Duration) Option {
	return func(o *Orchestrator) error {
		o.throttle = newThrottle(delay)
		return nil
	}
}

// WithMaxRetries sets how many additional attempts a transient failure gets.
// Default is 3.
func WithMaxRetries(retries int) Option {
	return func(o *Orchestrator) error {
		if retries < 0 {
			retries = 0
		}
		o.maxRetries = retries
		return nil
	}
}

// WithRetryBaseDelay sets the backoff base delay. Default is 1 second.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(o *Orchestrator) error {
		o.baseDelay = delay
		return nil
	}
}

// WithTimeout sets the per-fetch timeout. Default is 30 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) error {
		o.timeout = timeout
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// New creates an orchestrator over the given adapters, keyed by the source
// type each adapter reports.
func New(adapters []source.Adapter, opts ...Option) (*Orchestrator, error) {
	if len(adapters) == 0 {
		return nil, ErrAdapterRequired
	}

	byType := make(map[core.SourceType]source.Adapter, len(adapters))
	for _, adapter := range adapters {
		if _, ok := byType[adapter.Source()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAdapter, adapter.Source())
		}
		byType[adapter.Source()] = adapter
	}

	pool, err := ants.NewPool(4)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		adapters:   byType,
		pool:       pool,
		throttle:   newThrottle(2 * time.Second),
		maxRetries: 3,
		baseDelay:  time.Second,
		timeout:    30 * time.Second,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// TargetResult is the outcome of one target: the normalized items it yielded
// or the error that exhausted its retries.
type TargetResult struct {
	Target  source.Target
	Items   []*core.ContentItem
	Retries int
	Err     error
}

// Run fetches every target and returns one result per target, in input
// order. It blocks until all targets finish; cancellation of ctx stops
// waiting workers and fails their targets with the context error.
func (o *Orchestrator) Run(ctx context.Context, targets []source.Target) []TargetResult {
	results := make([]TargetResult, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		i, target := i, target
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			results[i] = o.runTarget(ctx, target)
		})
		if submitErr != nil {
			results[i] = TargetResult{Target: target, Err: submitErr}
			wg.Done()
		}
	}
	wg.Wait()

	return results
}

func (o *Orchestrator) runTarget(ctx context.Context, target source.Target) TargetResult {
	result := TargetResult{Target: target}

	adapter, ok := o.adapters[target.Source]
	if !ok {
		result.Err = fmt.Errorf("%w: %s", ErrNoAdapterForSource, target.Source)
		o.logger.Warn("target skipped", "url", target.URL, "err", result.Err)
		return result
	}

	var records []source.RawRecord
	operation := func() error {
		if err := o.throttle.wait(ctx, target.Domain()); err != nil {
			return err
		}
		fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
		defer cancel()

		var err error
		records, err = adapter.Fetch(fetchCtx, target)
		return err
	}

	attempts, err := retry.WithBackoff(ctx, operation, o.maxRetries+1, o.baseDelay, func(err error) bool {
		// Unclassified errors are treated as permanent.
		return source.IsTransient(err)
	})
	if attempts > 0 {
		result.Retries = attempts - 1
	}
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", target.URL, err)
		o.logger.Warn("target failed",
			"source", target.Source.String(),
			"url", target.URL,
			"retries", result.Retries,
			"err", err)
		return result
	}

	now := time.Now()
	result.Items = make([]*core.ContentItem, 0, len(records))
	for _, record := range records {
		result.Items = append(result.Items, Normalize(target.Source, record, now))
	}

	o.logger.Info("target ingested",
		"source", target.Source.String(),
		"url", target.URL,
		"records", len(result.Items),
		"retries", result.Retries)
	return result
}

// Release releases the worker pool. The orchestrator should not be used
// after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
