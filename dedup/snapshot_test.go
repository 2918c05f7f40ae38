package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	idx := NewIndex()
	_, admitted := idx.Admit(item(core.SourceSite, "r1", "Paneer butter masala rich tomato gravy cream"))
	require.True(t, admitted)
	_, admitted = idx.Admit(item(core.SourceForum, "q1", "Why does my yogurt curdle when added to hot curry"))
	require.True(t, admitted)

	bs := idx.Snapshot()

	restored := NewIndex()
	require.NoError(t, restored.Restore(bs))
	assert.Equal(t, 2, restored.Len())

	// A duplicate of a pre-snapshot entry is still caught after restore.
	original, ok := restored.Admit(item(core.SourceSite, "r2", "Paneer butter masala rich tomato gravy cream"))
	assert.False(t, ok)
	assert.Equal(t, core.ItemID(core.SourceSite, "r1"), original)
}

func TestSnapshotDeterministic(t *testing.T) {
	build := func() *Index {
		idx := NewIndex()
		idx.Admit(item(core.SourceSite, "r1", "Masala dosa crisp fermented batter potato filling"))
		idx.Admit(item(core.SourceSite, "r2", "Gulab jamun fried milk dumplings sugar syrup"))
		idx.Admit(item(core.SourceVideo, "v1", "Biryani layering technique dum cooking"))
		return idx
	}

	assert.Equal(t, build().Snapshot(), build().Snapshot())
}

func TestRestoreCorruptedSnapshot(t *testing.T) {
	idx := NewIndex()
	idx.Admit(item(core.SourceSite, "r1", "Palak paneer spinach gravy"))
	bs := idx.Snapshot()

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"truncated", bs[:len(bs)/2]},
		{"trailing garbage", append(append([]byte{}, bs...), 0xFF, 0xFF)},
		{"bad version", append([]byte{0x7F}, bs[1:]...)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			restored := NewIndex()
			restored.Admit(item(core.SourceSite, "keep", "Existing entry stays intact"))

			err := restored.Restore(c.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIndexCorrupted)
			assert.Equal(t, 1, restored.Len(), "a failed restore must leave the index unchanged")
		})
	}
}
