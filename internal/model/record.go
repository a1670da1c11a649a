package model

import "time"

// Platform identifies a supported classified-ad marketplace.
type Platform string

const (
	PlatformAvito  Platform = "avito"
	PlatformRabota Platform = "rabota"
)

// ParseStatus is the outcome of a single extraction attempt.
type ParseStatus string

const (
	ParseStatusSuccess ParseStatus = "success"
	ParseStatusFailed  ParseStatus = "failed"
)

// StatusFor returns success when a phone was found and failed otherwise.
func StatusFor(phone string) ParseStatus {
	if phone != "" {
		return ParseStatusSuccess
	}
	return ParseStatusFailed
}

// ParseRecord is one row of the parse_history audit table. Records are
// append-only: created once per extraction attempt and never updated.
type ParseRecord struct {
	ID        string      `json:"id"`
	URL       string      `json:"url"`
	Platform  Platform    `json:"platform"`
	Phone     string      `json:"phone"` // empty when extraction failed
	Status    ParseStatus `json:"status"`
	Cost      int         `json:"cost"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
}

// HistoryEntry is the response shape of a single history row.
type HistoryEntry struct {
	ID        string      `json:"id" yaml:"id"`
	URL       string      `json:"url" yaml:"url"`
	Platform  Platform    `json:"platform" yaml:"platform"`
	Phone     string      `json:"phone" yaml:"phone"`
	Status    ParseStatus `json:"status" yaml:"status"`
	Timestamp *string     `json:"timestamp" yaml:"timestamp"`
	Cost      int         `json:"cost" yaml:"cost"`
}

// NewHistoryEntry maps a stored record to its response shape. The timestamp
// is RFC 3339 formatted, or nil when the store returned no created_at.
func NewHistoryEntry(r ParseRecord) HistoryEntry {
	e := HistoryEntry{
		ID:       r.ID,
		URL:      r.URL,
		Platform: r.Platform,
		Phone:    r.Phone,
		Status:   r.Status,
		Cost:     r.Cost,
	}
	if r.CreatedAt != nil {
		ts := r.CreatedAt.Format(time.RFC3339Nano)
		e.Timestamp = &ts
	}
	return e
}
