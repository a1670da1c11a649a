// Package extract turns a classified-ad URL into a phone number and records
// the attempt in the audit log.
package extract

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adphone/internal/apperr"
	"github.com/sells-group/adphone/internal/cost"
	"github.com/sells-group/adphone/internal/fetcher"
	"github.com/sells-group/adphone/internal/model"
	"github.com/sells-group/adphone/internal/phone"
)

// Recorder persists one audit record per extraction attempt.
type Recorder interface {
	CreateRecord(ctx context.Context, rec model.ParseRecord) (*model.ParseRecord, error)
}

// Result is the outcome of a completed extraction. Phone is empty when
// nothing was found.
type Result struct {
	Phone    string         `json:"phone"`
	Platform model.Platform `json:"platform"`
	URL      string         `json:"url"`
	RecordID string         `json:"record_id,omitempty"`
}

// Found reports whether a phone number was extracted.
func (r *Result) Found() bool {
	return r.Phone != ""
}

// Extractor runs the validate, classify, fetch, match and record steps.
type Extractor struct {
	fetcher  fetcher.Fetcher
	recorder Recorder
	calc     *cost.Calculator
}

// New creates an Extractor. recorder may be nil, in which case attempts are
// not persisted. A nil calc uses the default rates.
func New(f fetcher.Fetcher, recorder Recorder, calc *cost.Calculator) *Extractor {
	if calc == nil {
		calc = cost.NewCalculator(cost.Rates{})
	}
	return &Extractor{fetcher: f, recorder: recorder, calc: calc}
}

// Extract validates rawURL, fetches the page and returns the first phone
// number found on it. Unsupported or blank URLs fail with an
// apperr.ValidationError before any network call. Transport failures are
// reported as a result with no phone, never as an error.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Result, error) {
	req := Request{URL: rawURL}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	platform, _ := DetectPlatform(req.URL)

	html, err := e.fetcher.FetchHTML(ctx, req.URL)
	if err != nil {
		if !fetcher.IsTransport(err) {
			return nil, eris.Wrap(err, "extract: fetch page")
		}
		var httpStatus int
		var te *fetcher.TransportError
		if errors.As(err, &te) {
			httpStatus = te.StatusCode
		}
		zap.L().Warn("treating unreachable page as not found",
			zap.String("url", req.URL),
			zap.Int("http_status", httpStatus),
			zap.Error(err),
		)
		html = ""
	}

	res := &Result{
		Phone:    phone.Find(html),
		Platform: platform,
		URL:      req.URL,
	}
	status := model.StatusFor(res.Phone)

	if e.recorder != nil {
		// The attempt is recorded even if the caller has gone away.
		rec, err := e.recorder.CreateRecord(context.WithoutCancel(ctx), model.ParseRecord{
			URL:      res.URL,
			Platform: res.Platform,
			Phone:    res.Phone,
			Status:   status,
			Cost:     e.calc.ForStatus(status),
		})
		if err != nil {
			return nil, apperr.NewStore(eris.Wrap(err, "extract: record attempt"))
		}
		res.RecordID = rec.ID
	}

	zap.L().Info("extraction complete",
		zap.String("url", res.URL),
		zap.String("platform", string(res.Platform)),
		zap.String("status", string(status)),
	)
	return res, nil
}
