package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/scentlab/scent-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS perfumes (
	id            TEXT PRIMARY KEY,
	brand         TEXT NOT NULL,
	name          TEXT NOT NULL,
	concentration TEXT,
	gender        TEXT,
	year          INTEGER,
	intensity     TEXT,
	longevity     INTEGER,
	notes_json    TEXT,
	season_json   TEXT,
	occasion_json TEXT
);

CREATE TABLE IF NOT EXISTS favorites (
	id       TEXT PRIMARY KEY,
	brand    TEXT NOT NULL,
	name     TEXT NOT NULL,
	added_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_perfumes_brand ON perfumes(brand);
CREATE INDEX IF NOT EXISTS idx_perfumes_name ON perfumes(name);
CREATE INDEX IF NOT EXISTS idx_favorites_added_at ON favorites(added_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteItemColumns = `id, brand, name, concentration, gender, year, intensity, longevity, notes_json, season_json, occasion_json`

func (s *SQLiteStore) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteItemColumns+` FROM perfumes ORDER BY brand, name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list items")
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *SQLiteStore) FindItem(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteItemColumns+` FROM perfumes WHERE id = ?`, id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: find item %s", id)
	}
	return item, nil
}

func (s *SQLiteStore) SearchItems(ctx context.Context, query string, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteItemColumns+` FROM perfumes
		 WHERE brand LIKE ? OR name LIKE ?
		 ORDER BY brand, name LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search items")
	}
	defer rows.Close()
	return scanItems(rows)
}

func (s *SQLiteStore) UpsertItems(ctx context.Context, items []model.Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO perfumes (`+sqliteItemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			brand = excluded.brand,
			name = excluded.name,
			concentration = excluded.concentration,
			gender = excluded.gender,
			year = excluded.year,
			intensity = excluded.intensity,
			longevity = excluded.longevity,
			notes_json = excluded.notes_json,
			season_json = excluded.season_json,
			occasion_json = excluded.occasion_json`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert")
	}
	defer stmt.Close()

	for _, it := range items {
		notes, seasons, occasions, err := marshalTags(it)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx,
			it.ID, it.Brand, it.Name,
			nullString(it.Concentration), nullString(it.Gender), nullInt(it.Year),
			string(it.Intensity), it.Longevity,
			notes, seasons, occasions,
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert item %s", it.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit upsert")
	}
	return len(items), nil
}

func (s *SQLiteStore) CountItems(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM perfumes`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count items")
}

func (s *SQLiteStore) ListFavorites(ctx context.Context) ([]FavoriteRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, brand, name FROM favorites ORDER BY added_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list favorites")
	}
	defer rows.Close()

	var refs []FavoriteRef
	for rows.Next() {
		var r FavoriteRef
		if err := rows.Scan(&r.ID, &r.Brand, &r.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan favorite")
		}
		refs = append(refs, r)
	}
	return refs, eris.Wrap(rows.Err(), "sqlite: list favorites iterate")
}

func (s *SQLiteStore) HasFavorite(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: has favorite %s", id)
	}
	return true, nil
}

func (s *SQLiteStore) AddFavorite(ctx context.Context, ref FavoriteRef) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (id, brand, name, added_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		ref.ID, ref.Brand, ref.Name, time.Now().UTC())
	return eris.Wrapf(err, "sqlite: add favorite %s", ref.ID)
}

func (s *SQLiteStore) RemoveFavorite(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	return eris.Wrapf(err, "sqlite: remove favorite %s", id)
}

func (s *SQLiteStore) ToggleFavorite(ctx context.Context, ref FavoriteRef) (bool, error) {
	present, err := s.HasFavorite(ctx, ref.ID)
	if err != nil {
		return false, err
	}
	if present {
		return false, s.RemoveFavorite(ctx, ref.ID)
	}
	return true, s.AddFavorite(ctx, ref)
}

func (s *SQLiteStore) ClearFavorites(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites`)
	return eris.Wrap(err, "sqlite: clear favorites")
}

// --- row helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	var (
		it                            model.Item
		concentration, gender         sql.NullString
		year, longevity               sql.NullInt64
		intensity                     sql.NullString
		notesJSON, seasonsJSON, occJSON sql.NullString
	)
	err := row.Scan(&it.ID, &it.Brand, &it.Name,
		&concentration, &gender, &year, &intensity, &longevity,
		&notesJSON, &seasonsJSON, &occJSON)
	if err != nil {
		return nil, err
	}

	it.Concentration = concentration.String
	it.Gender = gender.String
	it.Year = int(year.Int64)
	it.Intensity = model.Intensity(intensity.String)
	it.Longevity = int(longevity.Int64)
	it.Notes = jsonStrings(notesJSON)
	for _, s := range jsonStrings(seasonsJSON) {
		it.Season = append(it.Season, model.Season(s))
	}
	for _, s := range jsonStrings(occJSON) {
		it.Occasion = append(it.Occasion, model.Occasion(s))
	}
	return &it, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan item")
		}
		items = append(items, *it)
	}
	return items, eris.Wrap(rows.Err(), "sqlite: iterate items")
}

// jsonStrings tolerantly decodes a JSON array column. Anything that is not a
// JSON string array yields an empty set rather than an error, matching how
// the catalog treats malformed tag data.
func jsonStrings(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return nil
	}
	return out
}

func marshalTags(it model.Item) (notes, seasons, occasions string, err error) {
	n, err := json.Marshal(emptyIfNil(it.Notes))
	if err != nil {
		return "", "", "", eris.Wrapf(err, "store: marshal notes for %s", it.ID)
	}
	s, err := json.Marshal(emptyIfNilSeasons(it.Season))
	if err != nil {
		return "", "", "", eris.Wrapf(err, "store: marshal seasons for %s", it.ID)
	}
	o, err := json.Marshal(emptyIfNilOccasions(it.Occasion))
	if err != nil {
		return "", "", "", eris.Wrapf(err, "store: marshal occasions for %s", it.ID)
	}
	return string(n), string(s), string(o), nil
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func emptyIfNilSeasons(v []model.Season) []model.Season {
	if v == nil {
		return []model.Season{}
	}
	return v
}

func emptyIfNilOccasions(v []model.Occasion) []model.Occasion {
	if v == nil {
		return []model.Occasion{}
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
