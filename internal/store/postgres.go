package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/adphone/internal/db"
	"github.com/sells-group/adphone/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

const (
	insertRecordSQL = `INSERT INTO parse_history (id, url, platform, phone, status, cost) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	listRecentSQL   = `SELECT id, url, platform, phone, status, created_at, cost FROM parse_history ORDER BY created_at DESC LIMIT $1`
)

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS parse_history (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	url        TEXT NOT NULL,
	platform   TEXT NOT NULL,
	phone      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	cost       INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_parse_history_created_at ON parse_history(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateRecord(ctx context.Context, rec model.ParseRecord) (*model.ParseRecord, error) {
	rec.ID = uuid.New().String()

	var createdAt time.Time
	err := s.pool.QueryRow(ctx, insertRecordSQL,
		rec.ID, rec.URL, string(rec.Platform), rec.Phone, string(rec.Status), rec.Cost,
	).Scan(&createdAt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert record")
	}

	rec.CreatedAt = &createdAt
	return &rec, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]model.ParseRecord, error) {
	rows, err := s.pool.Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	records := []model.ParseRecord{}
	for rows.Next() {
		var (
			r                model.ParseRecord
			platform, status string
			createdAt        pgtype.Timestamptz
		)
		if err := rows.Scan(&r.ID, &r.URL, &platform, &r.Phone, &status, &createdAt, &r.Cost); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
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
		return nil, eris.Wrap(err, "postgres: iterate records")
	}
	return records, nil
}
