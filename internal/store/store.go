// Package store persists the parse_history audit log.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adphone/internal/model"
)

// Supported store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store defines the persistence interface for extraction audit records.
type Store interface {
	// CreateRecord appends one record. The store assigns ID and CreatedAt.
	CreateRecord(ctx context.Context, rec model.ParseRecord) (*model.ParseRecord, error)
	// ListRecent returns up to limit records, newest first by created_at.
	ListRecent(ctx context.Context, limit int) ([]model.ParseRecord, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// Open connects to the store selected by driver. An empty driver means postgres.
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	if dsn == "" {
		return nil, eris.New("store: empty database url")
	}
	switch driver {
	case DriverPostgres, "":
		s, err := NewPostgres(ctx, dsn, poolCfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("store: unsupported driver %q", driver)
	}
}
