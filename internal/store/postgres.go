package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/scentlab/scent-cli/internal/model"
)

// Pool abstracts the subset of pgxpool.Pool the store uses, so tests can
// substitute a mock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS perfumes (
	id            TEXT PRIMARY KEY,
	brand         TEXT NOT NULL,
	name          TEXT NOT NULL,
	concentration TEXT,
	gender        TEXT,
	year          INTEGER,
	intensity     TEXT,
	longevity     INTEGER,
	notes         JSONB NOT NULL DEFAULT '[]',
	season        JSONB NOT NULL DEFAULT '[]',
	occasion      JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS favorites (
	id       TEXT PRIMARY KEY,
	brand    TEXT NOT NULL,
	name     TEXT NOT NULL,
	added_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_perfumes_brand ON perfumes(brand);
CREATE INDEX IF NOT EXISTS idx_perfumes_name ON perfumes(name);
CREATE INDEX IF NOT EXISTS idx_favorites_added_at ON favorites(added_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const pgItemColumns = `id, brand, name, concentration, gender, year, intensity, longevity, notes, season, occasion`

func (s *PostgresStore) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgItemColumns+` FROM perfumes ORDER BY brand, name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list items")
	}
	defer rows.Close()
	return scanPGItems(rows)
}

func (s *PostgresStore) FindItem(ctx context.Context, id string) (*model.Item, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgItemColumns+` FROM perfumes WHERE id = $1`, id)

	item, err := scanPGItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: find item %s", id)
	}
	return item, nil
}

func (s *PostgresStore) SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + query + "%"
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgItemColumns+` FROM perfumes
		 WHERE brand ILIKE $1 OR name ILIKE $1
		 ORDER BY brand, name LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: search items")
	}
	defer rows.Close()
	return scanPGItems(rows)
}

func (s *PostgresStore) UpsertItems(ctx context.Context, items []model.Item) (int, error) {
	for _, it := range items {
		notes, seasons, occasions, err := marshalTags(it)
		if err != nil {
			return 0, err
		}
		_, err = s.pool.Exec(ctx, `
			INSERT INTO perfumes (`+pgItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				brand = EXCLUDED.brand,
				name = EXCLUDED.name,
				concentration = EXCLUDED.concentration,
				gender = EXCLUDED.gender,
				year = EXCLUDED.year,
				intensity = EXCLUDED.intensity,
				longevity = EXCLUDED.longevity,
				notes = EXCLUDED.notes,
				season = EXCLUDED.season,
				occasion = EXCLUDED.occasion`,
			it.ID, it.Brand, it.Name,
			nullString(it.Concentration), nullString(it.Gender), nullInt(it.Year),
			string(it.Intensity), it.Longevity,
			notes, seasons, occasions,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: upsert item %s", it.ID)
		}
	}
	return len(items), nil
}

func (s *PostgresStore) CountItems(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM perfumes`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count items")
}

func (s *PostgresStore) ListFavorites(ctx context.Context) ([]FavoriteRef, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, brand, name FROM favorites ORDER BY added_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list favorites")
	}
	defer rows.Close()

	var refs []FavoriteRef
	for rows.Next() {
		var r FavoriteRef
		if err := rows.Scan(&r.ID, &r.Brand, &r.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan favorite")
		}
		refs = append(refs, r)
	}
	return refs, eris.Wrap(rows.Err(), "postgres: list favorites iterate")
}

func (s *PostgresStore) HasFavorite(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx,
		`SELECT 1 FROM favorites WHERE id = $1`, id).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "postgres: has favorite %s", id)
	}
	return true, nil
}

func (s *PostgresStore) AddFavorite(ctx context.Context, ref FavoriteRef) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO favorites (id, brand, name, added_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		ref.ID, ref.Brand, ref.Name, time.Now().UTC())
	return eris.Wrapf(err, "postgres: add favorite %s", ref.ID)
}

func (s *PostgresStore) RemoveFavorite(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	return eris.Wrapf(err, "postgres: remove favorite %s", id)
}

func (s *PostgresStore) ToggleFavorite(ctx context.Context, ref FavoriteRef) (bool, error) {
	present, err := s.HasFavorite(ctx, ref.ID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.RemoveFavorite(ctx, ref.ID)
	}
	return true, s.AddFavorite(ctx, ref)
}

func (s *PostgresStore) ClearFavorites(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM favorites`)
	return eris.Wrap(err, "postgres: clear favorites")
}

func scanPGItem(row pgx.Row) (*model.Item, error) {
	var (
		it                    model.Item
		concentration, gender *string
		year, longevity       *int
		intensity             *string
		notes, seasons, occ   []byte
	)
	err := row.Scan(&it.ID, &it.Brand, &it.Name,
		&concentration, &gender, &year, &intensity, &longevity,
		&notes, &seasons, &occ)
	if err != nil {
		return nil, err
	}

	if concentration != nil {
		it.Concentration = *concentration
	}
	if gender != nil {
		it.Gender = *gender
	}
	if year != nil {
		it.Year = *year
	}
	if intensity != nil {
		it.Intensity = model.Intensity(*intensity)
	}
	if longevity != nil {
		it.Longevity = *longevity
	}
	it.Notes = jsonbStrings(notes)
	for _, s := range jsonbStrings(seasons) {
		it.Season = append(it.Season, model.Season(s))
	}
	for _, s := range jsonbStrings(occ) {
		it.Occasion = append(it.Occasion, model.Occasion(s))
	}
	return &it, nil
}

func scanPGItems(rows pgx.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		it, err := scanPGItem(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan item")
		}
		items = append(items, *it)
	}
	return items, eris.Wrap(rows.Err(), "postgres: iterate items")
}

func jsonbStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
