package history

import (
	"math"

	"github.com/sells-group/adphone/internal/model"
)

// Summary aggregates a history listing.
type Summary struct {
	Total       int `json:"total" yaml:"total"`
	Success     int `json:"success" yaml:"success"`
	Failed      int `json:"failed" yaml:"failed"`
	SuccessRate int `json:"success_rate" yaml:"success_rate"` // whole percent, 0 when empty
	TotalCost   int `json:"total_cost" yaml:"total_cost"`
}

// Summarize counts outcomes and spend over entries.
func Summarize(entries []model.HistoryEntry) Summary {
	var s Summary
	s.Total = len(entries)
	for _, e := range entries {
		switch e.Status {
		case model.ParseStatusSuccess:
			s.Success++
		case model.ParseStatusFailed:
			s.Failed++
		}
		s.TotalCost += e.Cost
	}
	if s.Total > 0 {
		s.SuccessRate = int(math.Round(float64(s.Success) / float64(s.Total) * 100))
	}
	return s
}
