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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	curation "github.com/Riya0071234/Cooking-Voice-Assistant"
	"github.com/Riya0071234/Cooking-Voice-Assistant/config"
	"github.com/Riya0071234/Cooking-Voice-Assistant/retag"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source/recipesite"
)

func main() {
	app := &cli.App{
		Name:  "curator",
		Usage: "Cooking content curation pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run one curation pass over the configured sources",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML configuration file",
						Required: true,
					},
				},
			},
			{
				Name:   "retag",
				Usage:  "Recompute the tags of every stored item",
				Action: retagCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML configuration file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to write back in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "check-config",
				Usage:  "Load and validate a configuration file",
				Action: checkConfigCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML configuration file",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// Frame extraction and object detection are external integrations wired
	// through the library API; the standalone binary runs text sources only.
	if cfg.Vision.Enabled {
		slog.Warn("vision is enabled in the configuration but no extractor is linked, skipping frame sampling")
		cfg.Vision.Enabled = false
	}

	curator, err := curation.Open(cfg, buildAdapters())
	if err != nil {
		return fmt.Errorf("failed to open curator: %w", err)
	}
	defer curator.Close()

	summary, err := curator.Run(ctx)
	if err != nil {
		return fmt.Errorf("curation run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Run %s finished\n", summary.RunID)
	fmt.Fprintf(os.Stderr, "  targets:       %d (%d failed)\n", summary.Targets, summary.TargetErrors)
	fmt.Fprintf(os.Stderr, "  ingested:      %d\n", summary.Ingested)
	fmt.Fprintf(os.Stderr, "  validated:     %d\n", summary.Validated)
	fmt.Fprintf(os.Stderr, "  duplicates:    %d\n", summary.Duplicates)
	fmt.Fprintf(os.Stderr, "  stored:        %d\n", summary.Stored)
	for reason, count := range summary.Rejected {
		fmt.Fprintf(os.Stderr, "  rejected (%s): %d\n", reason, count)
	}
	return nil
}

func retagCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	cfg.Vision.Enabled = false

	retagConfig := &retag.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if retagConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if retagConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if retagConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	curator, err := curation.Open(cfg, buildAdapters())
	if err != nil {
		return fmt.Errorf("failed to open curator: %w", err)
	}
	defer curator.Close()

	retagger, err := curator.NewRetagger(retagConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create retagger: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n\n", cfg.Storage.Path)
	if err := retagger.Run(ctx); err != nil {
		return fmt.Errorf("retagging failed: %w", err)
	}
	return nil
}

func checkConfigCommand(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	targets, err := curation.TargetsFromConfig(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Configuration %s is valid\n", path)
	fmt.Fprintf(os.Stderr, "  storage:  %s\n", cfg.Storage.Path)
	fmt.Fprintf(os.Stderr, "  sources:  %d (%d targets)\n", len(cfg.Sources), len(targets))
	fmt.Fprintf(os.Stderr, "  tagging:  %v\n", cfg.Processing.AutoTagging.Enabled)
	fmt.Fprintf(os.Stderr, "  vision:   %v\n", cfg.Vision.Enabled)
	return nil
}

// buildAdapters lists the source adapters the standalone binary ships with.
func buildAdapters() []source.Adapter {
	return []source.Adapter{
		recipesite.New(nil),
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
