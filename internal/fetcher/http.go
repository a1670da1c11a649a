package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultUserAgent mimics a desktop Chrome browser; the marketplaces reject
// obvious non-browser clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single page fetch, body included.
const DefaultTimeout = 10 * time.Second

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
}

// HTTPFetcher implements Fetcher with a single GET per call. There is no
// retry: a failed fetch is reported once as a TransportError.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts: opts,
	}
}

// FetchHTML fetches the URL and returns its body as UTF-8 text. Byte
// sequences that are not valid UTF-8 are dropped.
func (f *HTTPFetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		zap.L().Debug("page fetch failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return "", NewTransportError(eris.Wrap(err, "fetch: request"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		zap.L().Debug("page fetch returned error status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
		)
		return "", NewTransportError(
			eris.Errorf("fetch: unexpected status %d from %s", resp.StatusCode, rawURL),
			resp.StatusCode,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		zap.L().Debug("page body read failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return "", NewTransportError(eris.Wrap(err, "fetch: read body"), resp.StatusCode)
	}

	return strings.ToValidUTF8(string(body), ""), nil
}
