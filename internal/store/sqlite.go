package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/adphone/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
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
	return &SQLiteStore{db: db, now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS parse_history (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	platform   TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	cost       INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_parse_history_created_at ON parse_history(created_at);
`

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRecord(ctx context.Context, rec model.ParseRecord) (*model.ParseRecord, error) {
	rec.ID = uuid.New().String()
	now := s.now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parse_history (id, url, platform, phone, status, cost, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.URL, string(rec.Platform), rec.Phone, string(rec.Status), rec.Cost, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert record")
	}

	rec.CreatedAt = &now
	return &rec, nil
}

func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]model.ParseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, platform, phone, status, created_at, cost FROM parse_history ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close() //nolint:errcheck

	records := []model.ParseRecord{}
	for rows.Next() {
		var (
			r                model.ParseRecord
			platform, status string
			createdAt        sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.URL, &platform, &r.Phone, &status, &createdAt, &r.Cost); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		r.Platform = model.Platform(platform)
		r.Status = model.ParseStatus(status)
		if createdAt.Valid {
			t := createdAt.Time
			r.CreatedAt = &t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate records")
	}
	return records, nil
}
