// backend/internal/domain/outcome.go
package domain

import "time"

type SuburbStatus string

const (
	StatusPending   SuburbStatus = "pending"
	StatusProcessed SuburbStatus = "processed"
	StatusFailed    SuburbStatus = "failed"
)

// SuburbOutcome records how one slug went through the pipeline.
// Suburb holds the name returned by the API, not the slug.
type SuburbOutcome struct {
	Slug   string       `json:"slug"`
	Suburb string       `json:"suburb,omitempty"`
	Rows   int          `json:"rows"`
	Status SuburbStatus `json:"status"`
	Err    error        `json:"-"`
	Error  string       `json:"error,omitempty"`
}

type RunReport struct {
	Outcomes   []SuburbOutcome `json:"outcomes"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

func (r RunReport) TotalRows() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.Rows
	}
	return total
}

func (r RunReport) Failed() int {
	failed := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed++
		}
	}
	return failed
}
