package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/scent-cli/internal/model"
)

func TestMemory_UpsertListFind(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	n, err := st.UpsertItems(ctx, testItems())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	items, err := st.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)

	got, err := st.FindItem(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aqua", got.Name)

	got, err = st.FindItem(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_ListOrdersCaseInsensitively(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.UpsertItems(ctx, []model.Item{
		{ID: "a", Brand: "zeta", Name: "One"},
		{ID: "b", Brand: "Alpha", Name: "Two"},
		{ID: "c", Brand: "alpha", Name: "One"},
	})
	require.NoError(t, err)

	items, err := st.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "One", items[0].Name)
	assert.Equal(t, "Two", items[1].Name)
	assert.Equal(t, "zeta", items[2].Brand)
}

func TestMemory_SearchItems(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.UpsertItems(ctx, testItems())
	require.NoError(t, err)

	items, err := st.SearchItems(ctx, "ACME", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)

	items, err = st.SearchItems(ctx, "a", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = st.SearchItems(ctx, "zzz", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemory_ConcurrentReads(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.UpsertItems(ctx, testItems())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if _, err := st.ListItems(ctx); err != nil {
					t.Error(err)
					return
				}
				if _, err := st.SearchItems(ctx, "a", 0); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMemory_Favorites(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	require.NoError(t, st.AddFavorite(ctx, FavoriteRef{ID: "p1", Brand: "Acme", Name: "Nightfall"}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, st.AddFavorite(ctx, FavoriteRef{ID: "p2", Brand: "Brise", Name: "Aqua"}))

	refs, err := st.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "p2", refs[0].ID)

	ok, err := st.HasFavorite(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Re-adding keeps the original entry.
	require.NoError(t, st.AddFavorite(ctx, FavoriteRef{ID: "p1", Brand: "Acme", Name: "Nightfall"}))
	refs, err = st.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Equal(t, "p2", refs[0].ID)

	added, err := st.ToggleFavorite(ctx, FavoriteRef{ID: "p1"})
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, st.ClearFavorites(ctx))
	refs, err = st.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
