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


// Package config loads the pipeline configuration from YAML with ${ENV}
// placeholder substitution. Absent keys keep their defaults; Validate
// rejects values the pipeline cannot run with.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// envVarPattern matches ${VAR_NAME} placeholders anywhere in the raw file.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config is the root configuration document.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Scraping   ScrapingConfig   `yaml:"scraping"`
	Processing ProcessingConfig `yaml:"processing"`
	Vision     VisionConfig     `yaml:"vision_data"`
	Validation ValidationConfig `yaml:"validation"`
	Sources    []SourceConfig   `yaml:"sources"`
}

// StorageConfig describes where the sink keeps its data.
type StorageConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// ScrapingConfig tunes the ingestion orchestrator. Durations are whole
// seconds, matching the file format.
type ScrapingConfig struct {
	DelayBetweenRequests int `yaml:"delay_between_requests"`
	MaxRetries           int `yaml:"max_retries"`
	Timeout              int `yaml:"timeout"`
	ConcurrentWorkers    int `yaml:"concurrent_workers"`
}

// Delay returns the per-domain politeness delay.
func (s ScrapingConfig) Delay() time.Duration {
	return time.Duration(s.DelayBetweenRequests) * time.Second
}

// RequestTimeout returns the per-fetch timeout.
func (s ScrapingConfig) RequestTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// ProcessingConfig tunes deduplication and tagging.
type ProcessingConfig struct {
	DeduplicationSimilarityThreshold float64           `yaml:"deduplication_similarity_threshold"`
	PersistIndex                     bool              `yaml:"persist_index"`
	AutoTagging                      AutoTaggingConfig `yaml:"auto_tagging"`
}

// AutoTaggingConfig selects and parameterizes the tagging strategy.
type AutoTaggingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Strategy string        `yaml:"strategy"`
	Params   TaggingParams `yaml:"params"`
}

// TaggingParams are the knobs of the TF-IDF clustering strategy.
type TaggingParams struct {
	MaxTagsPerItem         int `yaml:"max_tags_per_item"`
	MinWordLength          int `yaml:"min_word_length"`
	TopNKeywordsPerCluster int `yaml:"top_n_keywords_per_cluster"`
}

// VisionConfig tunes the frame extraction branch.
type VisionConfig struct {
	Enabled               bool    `yaml:"enabled"`
	ConfidenceThreshold   float64 `yaml:"confidence_threshold"`
	FrameSamplingInterval int     `yaml:"frame_sampling_interval"`
}

// Interval returns the sampling interval as a duration.
func (v VisionConfig) Interval() time.Duration {
	return time.Duration(v.FrameSamplingInterval) * time.Second
}

// LengthBounds bounds a text field in runes. Zero max means unbounded.
type LengthBounds struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
}

// CountBounds bounds a list field. Zero max means unbounded.
type CountBounds struct {
	MinCount int `yaml:"min_count"`
	MaxCount int `yaml:"max_count"`
}

// RecipeValidation configures the recipe side of the gate.
type RecipeValidation struct {
	Title        LengthBounds `yaml:"title"`
	Ingredients  CountBounds  `yaml:"ingredients"`
	Instructions CountBounds  `yaml:"instructions"`
}

// LanguageValidation lists the accepted language codes.
type LanguageValidation struct {
	Accepted []string `yaml:"accepted"`
}

// ContextualValidation configures the Q&A side of the gate.
type ContextualValidation struct {
	Question LengthBounds       `yaml:"question"`
	Answer   LengthBounds       `yaml:"answer"`
	Tags     CountBounds        `yaml:"tags"`
	Language LanguageValidation `yaml:"language"`
}

// ValidationConfig mirrors the validation section of the file.
type ValidationConfig struct {
	RecipeEntry     RecipeValidation     `yaml:"recipe_entry"`
	ContextualEntry ContextualValidation `yaml:"contextual_entry"`
}

// Rules converts the file representation into the gate's rule set.
func (v ValidationConfig) Rules() core.Rules {
	return core.Rules{
		Recipe: core.RecipeRules{
			TitleMinLength: v.RecipeEntry.Title.MinLength,
			Ingredients: core.CountRule{
				Min: v.RecipeEntry.Ingredients.MinCount,
				Max: v.RecipeEntry.Ingredients.MaxCount,
			},
			Instructions: core.CountRule{
				Min: v.RecipeEntry.Instructions.MinCount,
				Max: v.RecipeEntry.Instructions.MaxCount,
			},
		},
		Contextual: core.ContextualRules{
			Question: core.LengthRule{
				Min: v.ContextualEntry.Question.MinLength,
				Max: v.ContextualEntry.Question.MaxLength,
			},
			Answer: core.LengthRule{
				Min: v.ContextualEntry.Answer.MinLength,
				Max: v.ContextualEntry.Answer.MaxLength,
			},
			MinTags:           v.ContextualEntry.Tags.MinCount,
			AcceptedLanguages: v.ContextualEntry.Language.Accepted,
		},
	}
}

// SourceConfig names one group of ingestion targets of a single source type.
type SourceConfig struct {
	Type string   `yaml:"type"` // site, video, social or forum
	Name string   `yaml:"name"`
	URLs []string `yaml:"urls"`
}

// Default returns the configuration the pipeline ships with.
func Default() Config {
	return Config{
		Storage: StorageConfig{Path: "data/curation"},
		Scraping: ScrapingConfig{
			DelayBetweenRequests: 2,
			MaxRetries:           3,
			Timeout:              30,
			ConcurrentWorkers:    4,
		},
		Processing: ProcessingConfig{
			DeduplicationSimilarityThreshold: 0.9,
			PersistIndex:                     true,
			AutoTagging: AutoTaggingConfig{
				Enabled:  true,
				Strategy: "dynamic_tfidf_clustering",
				Params: TaggingParams{
					MaxTagsPerItem:         10,
					MinWordLength:          3,
					TopNKeywordsPerCluster: 5,
				},
			},
		},
		Vision: VisionConfig{
			Enabled:               true,
			ConfidenceThreshold:   0.6,
			FrameSamplingInterval: 3,
		},
		Validation: ValidationConfig{
			RecipeEntry: RecipeValidation{
				Title:        LengthBounds{MinLength: 5},
				Ingredients:  CountBounds{MinCount: 3, MaxCount: 50},
				Instructions: CountBounds{MinCount: 3, MaxCount: 50},
			},
			ContextualEntry: ContextualValidation{
				Question: LengthBounds{MinLength: 15, MaxLength: 500},
				Answer:   LengthBounds{MinLength: 20, MaxLength: 5000},
				Tags:     CountBounds{MinCount: 1},
				Language: LanguageValidation{Accepted: []string{"en", "hi", "hi-en"}},
			},
		},
	}
}

// Load reads path, substitutes ${ENV} placeholders and unmarshals the result
// over the defaults, so keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	resolved, err := substituteEnv(raw)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(resolved, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// substituteEnv replaces every ${VAR} with the variable's value. A
// placeholder naming an unset variable is an error, never an empty string.
func substituteEnv(raw []byte) ([]byte, error) {
	var missing string
	resolved := envVarPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := string(envVarPattern.FindSubmatch(match)[1])
		value, ok := os.LookupEnv(name)
		if !ok && missing == "" {
			missing = name
		}
		return []byte(value)
	})
	if missing != "" {
		return nil, fmt.Errorf("config references unset environment variable %q", missing)
	}
	return resolved, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Storage.Path == "" && !c.Storage.InMemory {
		return fmt.Errorf("config: storage.path is required unless storage.in_memory is set")
	}
	if c.Scraping.ConcurrentWorkers < 1 {
		return fmt.Errorf("config: scraping.concurrent_workers must be at least 1, got %d", c.Scraping.ConcurrentWorkers)
	}
	if c.Scraping.MaxRetries < 0 {
		return fmt.Errorf("config: scraping.max_retries must not be negative, got %d", c.Scraping.MaxRetries)
	}
	if c.Scraping.Timeout < 1 {
		return fmt.Errorf("config: scraping.timeout must be at least 1 second, got %d", c.Scraping.Timeout)
	}
	t := c.Processing.DeduplicationSimilarityThreshold
	if t <= 0 || t > 1 {
		return fmt.Errorf("config: processing.deduplication_similarity_threshold must be in (0, 1], got %g", t)
	}
	if c.Processing.AutoTagging.Enabled {
		p := c.Processing.AutoTagging.Params
		if p.MaxTagsPerItem < 1 {
			return fmt.Errorf("config: auto_tagging.params.max_tags_per_item must be at least 1, got %d", p.MaxTagsPerItem)
		}
		if p.MinWordLength < 1 {
			return fmt.Errorf("config: auto_tagging.params.min_word_length must be at least 1, got %d", p.MinWordLength)
		}
		if p.TopNKeywordsPerCluster < 1 {
			return fmt.Errorf("config: auto_tagging.params.top_n_keywords_per_cluster must be at least 1, got %d", p.TopNKeywordsPerCluster)
		}
	}
	if c.Vision.Enabled {
		if c.Vision.ConfidenceThreshold < 0 || c.Vision.ConfidenceThreshold > 1 {
			return fmt.Errorf("config: vision_data.confidence_threshold must be in [0, 1], got %g", c.Vision.ConfidenceThreshold)
		}
		if c.Vision.FrameSamplingInterval < 1 {
			return fmt.Errorf("config: vision_data.frame_sampling_interval must be at least 1 second, got %d", c.Vision.FrameSamplingInterval)
		}
	}
	for i, src := range c.Sources {
		if _, err := core.ParseSourceType(src.Type); err != nil {
			return fmt.Errorf("config: sources[%d]: %w", i, err)
		}
		if len(src.URLs) == 0 {
			return fmt.Errorf("config: sources[%d] (%s) lists no urls", i, src.Name)
		}
	}
	return nil
}
