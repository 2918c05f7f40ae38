package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/curation-test
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/curation-test", cfg.Storage.Path)
	assert.Equal(t, 4, cfg.Scraping.ConcurrentWorkers)
	assert.Equal(t, 0.9, cfg.Processing.DeduplicationSimilarityThreshold)
	assert.True(t, cfg.Processing.PersistIndex)
	assert.Equal(t, 10, cfg.Processing.AutoTagging.Params.MaxTagsPerItem)
	assert.Equal(t, []string{"en", "hi", "hi-en"}, cfg.Validation.ContextualEntry.Language.Accepted)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/curation-test
scraping:
  delay_between_requests: 5
  concurrent_workers: 2
processing:
  deduplication_similarity_threshold: 0.8
  persist_index: false
sources:
  - type: site
    name: indian
    urls:
      - https://example.com/recipes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Scraping.ConcurrentWorkers)
	assert.Equal(t, "5s", cfg.Scraping.Delay().String())
	assert.Equal(t, 0.8, cfg.Processing.DeduplicationSimilarityThreshold)
	assert.False(t, cfg.Processing.PersistIndex)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "site", cfg.Sources[0].Type)
}

func TestLoadSubstitutesEnv(t *testing.T) {
	t.Setenv("CURATION_DATA_DIR", "/srv/curation")

	path := writeConfig(t, `
storage:
  path: ${CURATION_DATA_DIR}/db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/curation/db", cfg.Storage.Path)
}

func TestLoadFailsOnUnsetEnv(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: ${CURATION_UNSET_VAR_FOR_TEST}/db
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CURATION_UNSET_VAR_FOR_TEST")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"bad threshold", func(c *Config) { c.Processing.DeduplicationSimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"zero workers", func(c *Config) { c.Scraping.ConcurrentWorkers = 0 }, "concurrent_workers"},
		{"negative retries", func(c *Config) { c.Scraping.MaxRetries = -1 }, "max_retries"},
		{"zero interval", func(c *Config) { c.Vision.FrameSamplingInterval = 0 }, "frame_sampling_interval"},
		{"unknown source type", func(c *Config) {
			c.Sources = []SourceConfig{{Type: "rss", Name: "x", URLs: []string{"https://x"}}}
		}, "invalid source type"},
		{"source without urls", func(c *Config) {
			c.Sources = []SourceConfig{{Type: "site", Name: "empty"}}
		}, "no urls"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.errSub)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		cfg := Default()
		assert.NoError(t, cfg.Validate())
	})
}
