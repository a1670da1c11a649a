// Package history reads the extraction audit log, newest first.
package history

import (
	"context"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adphone/internal/apperr"
	"github.com/sells-group/adphone/internal/model"
)

// DefaultLimit is used when the caller does not ask for a specific count.
const DefaultLimit = 50

// MsgNotConfigured is reported when no store connection is configured.
const MsgNotConfigured = "Database not configured"

// Lister is the read side of the audit store.
type Lister interface {
	ListRecent(ctx context.Context, limit int) ([]model.ParseRecord, error)
}

// Reader serves history listings. A nil store makes every listing fail with
// an apperr.ConfigurationError.
type Reader struct {
	store        Lister
	defaultLimit int
}

// NewReader creates a Reader. A non-positive defaultLimit falls back to DefaultLimit.
func NewReader(store Lister, defaultLimit int) *Reader {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Reader{store: store, defaultLimit: defaultLimit}
}

// ParseLimit converts the raw limit parameter. An absent parameter yields the
// default limit; a present value that is not a non-negative integer, blank
// included, is a StoreError. There is no upper bound.
func (r *Reader) ParseLimit(raw string, present bool) (int, error) {
	if !present {
		return r.defaultLimit, nil
	}
	raw = strings.TrimSpace(raw)
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NewStore(eris.Wrapf(err, "history: invalid limit %q", raw))
	}
	if limit < 0 {
		return 0, apperr.NewStore(eris.Errorf("history: limit must not be negative: %d", limit))
	}
	return limit, nil
}

// List returns the limit most recent records mapped to their response shape.
func (r *Reader) List(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if r.store == nil {
		return nil, apperr.NewConfiguration(MsgNotConfigured)
	}
	if limit < 0 {
		return nil, apperr.NewStore(eris.Errorf("history: limit must not be negative: %d", limit))
	}

	records, err := r.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperr.NewStore(eris.Wrap(err, "history: list"))
	}

	entries := make([]model.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, model.NewHistoryEntry(rec))
	}
	return entries, nil
}
