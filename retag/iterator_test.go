package retag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
	storebadger "github.com/Riya0071234/Cooking-Voice-Assistant/storage/badger"
)

func seedItems(t *testing.T, store *storebadger.ItemStore, items ...*core.ContentItem) {
	t.Helper()
	require.NoError(t, store.PutItems(context.Background(), items...))
}

func corpusItem(sourceID, text string, status core.Status) *core.ContentItem {
	return &core.ContentItem{
		Id:       core.ItemID(core.SourceForum, sourceID),
		Source:   core.SourceForum,
		SourceID: sourceID,
		RawText:  text,
		Language: "en",
		Status:   status,
	}
}

func TestItemIteratorCollectFiltersByStatus(t *testing.T) {
	items, _, _, backend, err := storebadger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	seedItems(t, items,
		corpusItem("a", "paneer tikka marinade yogurt spices", core.StatusStored),
		corpusItem("b", "dal tadka tempering ghee cumin", core.StatusTagged),
		corpusItem("c", "spam spam spam", core.StatusRejected),
		corpusItem("d", "biryani layering saffron rice", core.StatusIngested),
	)

	it := NewItemIterator(items, 10)
	eligible, err := it.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, eligible, 2)
	for _, item := range eligible {
		assert.Contains(t, []core.Status{core.StatusTagged, core.StatusStored}, item.Status)
	}
}

func TestItemIteratorForEachBatches(t *testing.T) {
	it := NewItemIterator(nil, 2)

	items := []*core.ContentItem{
		corpusItem("a", "", core.StatusStored),
		corpusItem("b", "", core.StatusStored),
		corpusItem("c", "", core.StatusStored),
		corpusItem("d", "", core.StatusStored),
		corpusItem("e", "", core.StatusStored),
	}

	var sizes []int
	err := it.ForEach(context.Background(), items, func(batch []*core.ContentItem) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestItemIteratorForEachStopsOnError(t *testing.T) {
	it := NewItemIterator(nil, 1)

	items := []*core.ContentItem{
		corpusItem("a", "", core.StatusStored),
		corpusItem("b", "", core.StatusStored),
	}

	wantErr := errors.New("boom")
	calls := 0
	err := it.ForEach(context.Background(), items, func([]*core.ContentItem) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestItemIteratorForEachHonorsCancellation(t *testing.T) {
	it := NewItemIterator(nil, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := it.ForEach(ctx, []*core.ContentItem{corpusItem("a", "", core.StatusStored)}, func([]*core.ContentItem) error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewItemIteratorDefaultsBatchSize(t *testing.T) {
	it := NewItemIterator(nil, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
