package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adphone/internal/fetcher"
	"github.com/sells-group/adphone/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	if !cfg.Store.Configured() {
		return nil, eris.New("store.database_url is required (DATABASE_URL)")
	}
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	})
}

// initOptionalStore opens the store when one is configured and returns a nil
// Store otherwise.
func initOptionalStore(ctx context.Context) (store.Store, error) {
	if !cfg.Store.Configured() {
		return nil, nil
	}
	return initStore(ctx)
}

func initFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout(),
	})
}
