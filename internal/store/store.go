// Package store persists the perfume catalog and the favorites list behind a
// single interface with sqlite, postgres, and in-memory backends.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/scentlab/scent-cli/internal/config"
	"github.com/scentlab/scent-cli/internal/model"
)

// DefaultSearchLimit caps catalog search results when callers pass no limit.
const DefaultSearchLimit = 50

// FavoriteRef is a liked item reference. Only the display fields are
// persisted; the catalog remains the owner of the full record.
type FavoriteRef struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Name  string `json:"name"`
}

// Store is the persistence interface for the catalog and favorites.
//
// Catalog items are keyed by id and listed ordered by brand then name.
// Favorites are a durable set of item references listed newest first;
// AddFavorite and RemoveFavorite are idempotent, ToggleFavorite flips
// presence and reports the post-toggle state.
type Store interface {
	// Catalog
	ListItems(ctx context.Context) ([]model.Item, error)
	FindItem(ctx context.Context, id string) (*model.Item, error)
	SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error)
	UpsertItems(ctx context.Context, items []model.Item) (int, error)
	CountItems(ctx context.Context) (int, error)

	// Favorites
	ListFavorites(ctx context.Context) ([]FavoriteRef, error)
	HasFavorite(ctx context.Context, id string) (bool, error)
	AddFavorite(ctx context.Context, ref FavoriteRef) error
	RemoveFavorite(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, ref FavoriteRef) (bool, error)
	ClearFavorites(ctx context.Context) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the configured Store backend and runs migrations.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "", "sqlite":
		st, err = NewSQLite(cfg.Path)
	case "postgres":
		st, err = NewPostgres(ctx, cfg.DatabaseURL)
	case "memory":
		st = NewMemory()
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}
