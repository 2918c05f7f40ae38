package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContentStable(t *testing.T) {
	a := IDFromContent("paneer butter masala")
	b := IDFromContent("paneer butter masala")
	c := IDFromContent("paneer butter masala ")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestItemIDScopedBySource(t *testing.T) {
	assert.NotEqual(t,
		ItemID(SourceSite, "r-100"),
		ItemID(SourceForum, "r-100"),
	)
	assert.Equal(t,
		ItemID(SourceSite, "r-100"),
		ItemID(SourceSite, "r-100"),
	)
}

func TestParseSourceType(t *testing.T) {
	for _, name := range []string{"site", "video", "social", "forum"} {
		st, err := ParseSourceType(name)
		require.NoError(t, err)
		assert.Equal(t, name, st.String())
	}

	_, err := ParseSourceType("rss")
	assert.ErrorIs(t, err, ErrInvalidSourceType)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusIngested, StatusValidated, true},
		{StatusValidated, StatusDeduplicated, true},
		{StatusDeduplicated, StatusTagged, true},
		{StatusTagged, StatusStored, true},
		{StatusIngested, StatusRejected, true},
		{StatusTagged, StatusRejected, true},
		{StatusIngested, StatusDeduplicated, false}, // no skipping
		{StatusValidated, StatusIngested, false},    // no going back
		{StatusRejected, StatusValidated, false},    // terminal
		{StatusStored, StatusRejected, false},       // terminal
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanAdvanceTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestContentItemAdvance(t *testing.T) {
	item := &ContentItem{Status: StatusIngested}

	require.NoError(t, item.Advance(StatusValidated))
	require.NoError(t, item.Advance(StatusDeduplicated))

	err := item.Advance(StatusStored)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusDeduplicated, item.Status)
}

func TestRejectDuplicate(t *testing.T) {
	original := ItemID(SourceSite, "r-1")
	item := &ContentItem{Status: StatusValidated}

	item.RejectDuplicate(original)

	assert.Equal(t, StatusRejected, item.Status)
	assert.Equal(t, ReasonDuplicate, item.Reason)
	assert.Equal(t, original, item.DuplicateOf)
	assert.False(t, item.Status.CanAdvanceTo(StatusDeduplicated))
}

func TestFrameID(t *testing.T) {
	f1 := &VideoFrame{VideoID: "vid-1", FrameIndex: 0}
	f2 := &VideoFrame{VideoID: "vid-1", FrameIndex: 1}

	assert.NotEqual(t, f1.FrameID(), f2.FrameID())
	assert.Equal(t, f1.FrameID(), (&VideoFrame{VideoID: "vid-1", FrameIndex: 0}).FrameID())
}
