package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/scentlab/scent-cli/internal/model"
)

// MemoryStore implements Store entirely in memory. It backs demo mode and
// tests that do not need a database file.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]model.Item
	favorites map[string]favoriteEntry
}

type favoriteEntry struct {
	ref     FavoriteRef
	addedAt time.Time
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		items:     make(map[string]model.Item),
		favorites: make(map[string]favoriteEntry),
	}
}

func (s *MemoryStore) Migrate(_ context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) ListItems(_ context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	s.sortItems(items)
	return items, nil
}

func (s *MemoryStore) FindItem(_ context.Context, id string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *MemoryStore) SearchItems(_ context.Context, query string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []model.Item
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Brand), needle) ||
			strings.Contains(strings.ToLower(it.Name), needle) {
			items = append(items, it)
		}
	}
	s.sortItems(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *MemoryStore) UpsertItems(_ context.Context, items []model.Item) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range items {
		s.items[it.ID] = it
	}
	return len(items), nil
}

func (s *MemoryStore) CountItems(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) ListFavorites(_ context.Context) ([]FavoriteRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]favoriteEntry, 0, len(s.favorites))
	for _, e := range s.favorites {
		entries = append(entries, e)
	}
	// Newest first, id as tiebreaker, matching the database backends.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].addedAt.Equal(entries[j].addedAt) {
			return entries[i].addedAt.After(entries[j].addedAt)
		}
		return entries[i].ref.ID < entries[j].ref.ID
	})

	refs := make([]FavoriteRef, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, e.ref)
	}
	return refs, nil
}

func (s *MemoryStore) HasFavorite(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[id]
	return ok, nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, ref FavoriteRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[ref.ID]; ok {
		return nil
	}
	s.favorites[ref.ID] = favoriteEntry{ref: ref, addedAt: time.Now()}
	return nil
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, id)
	return nil
}

func (s *MemoryStore) ToggleFavorite(ctx context.Context, ref FavoriteRef) (bool, error) {
	present, err := s.HasFavorite(ctx, ref.ID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.RemoveFavorite(ctx, ref.ID)
	}
	return true, s.AddFavorite(ctx, ref)
}

func (s *MemoryStore) ClearFavorites(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = make(map[string]favoriteEntry)
	return nil
}

func (s *MemoryStore) sortItems(items []model.Item) {
	// Collator instances carry mutable iteration state, so each sort gets
	// its own rather than sharing one across concurrent readers.
	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := coll.CompareString(a.Brand, b.Brand); c != 0 {
			return c < 0
		}
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
