package curation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/config"
	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source"
	"github.com/Riya0071234/Cooking-Voice-Assistant/source/mock"
	"github.com/Riya0071234/Cooking-Voice-Assistant/vision"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Storage = config.StorageConfig{InMemory: true}
	cfg.Scraping.DelayBetweenRequests = 0
	cfg.Vision.Enabled = false
	return cfg
}

type nopExtractor struct{}

func (nopExtractor) ExtractFrame(context.Context, *core.VideoDetails, time.Duration) ([]byte, error) {
	return nil, nil
}

type nopDetector struct{}

func (nopDetector) Detect(context.Context, []byte) ([]core.Detection, error) {
	return nil, nil
}

var _ vision.FrameExtractor = nopExtractor{}
var _ vision.Detector = nopDetector{}

func TestTargetsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = []config.SourceConfig{
		{Type: "site", Name: "recipe-blog", URLs: []string{"https://a.example/1", "https://a.example/2"}},
		{Type: "forum", Name: "qa-board", URLs: []string{"https://b.example/q"}},
	}

	targets, err := TargetsFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, core.SourceSite, targets[0].Source)
	assert.Equal(t, "recipe-blog", targets[0].Name)
	assert.Equal(t, "https://a.example/2", targets[1].URL)
	assert.Equal(t, core.SourceForum, targets[2].Source)
}

func TestTargetsFromConfigUnknownType(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = []config.SourceConfig{{Type: "podcast", Name: "x", URLs: []string{"https://x.example"}}}

	_, err := TargetsFromConfig(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidSourceType)
}

func TestOpenRequiresVisionDeps(t *testing.T) {
	cfg := testConfig()
	cfg.Vision.Enabled = true

	adapter := mock.NewMockAdapter(core.SourceForum)
	_, err := Open(cfg, []source.Adapter{adapter})
	assert.ErrorIs(t, err, ErrVisionDepsRequired)
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Scraping.ConcurrentWorkers = 0

	adapter := mock.NewMockAdapter(core.SourceForum)
	_, err := Open(cfg, []source.Adapter{adapter})
	assert.Error(t, err)
}

func TestCuratorRunFromConfiguredSources(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = []config.SourceConfig{
		{Type: "forum", Name: "qa-board", URLs: []string{"https://forum.example/q"}},
	}

	adapter := mock.NewMockAdapter(core.SourceForum)
	adapter.Records["https://forum.example/q"] = []source.RawRecord{{
		SourceID: "q1",
		Question: "Why does my dosa batter refuse to ferment overnight?",
		Answer:   "Keep the batter somewhere warmer and add a pinch of methi seeds.",
	}}

	curator, err := Open(cfg, []source.Adapter{adapter})
	require.NoError(t, err)
	defer curator.Close()

	summary, err := curator.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, 1, summary.Stored)

	count, err := curator.ItemStore().CountItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCuratorOpenWithVision(t *testing.T) {
	cfg := testConfig()
	cfg.Vision.Enabled = true

	adapter := mock.NewMockAdapter(core.SourceVideo)
	curator, err := Open(cfg, []source.Adapter{adapter}, WithVision(nopExtractor{}, nopDetector{}))
	require.NoError(t, err)
	require.NoError(t, curator.Close())
}
