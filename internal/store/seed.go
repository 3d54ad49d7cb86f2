package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/scentlab/scent-cli/internal/model"
)

// LoadSeedFile reads a catalog seed file. JSON and YAML are supported,
// chosen by file extension. Items without an id are assigned a fresh uuid.
func LoadSeedFile(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read seed file %s", path)
	}

	var items []model.Item
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "store: parse seed file %s", path)
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].Brand == "" || items[i].Name == "" {
			return nil, eris.Errorf("store: seed file %s: item %d missing brand or name", path, i)
		}
	}
	return items, nil
}

// SeedIfEmpty imports items only when the store holds no items yet.
// It reports how many items were written, zero when the store was
// already populated.
func SeedIfEmpty(ctx context.Context, s Store, items []model.Item) (int, error) {
	n, err := s.CountItems(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return s.UpsertItems(ctx, items)
}
