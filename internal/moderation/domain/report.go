package domain

import (
	"errors"
	"strings"
	"time"
)

// ReportStatus is the handling state of a report.
type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportResolved ReportStatus = "resolved"
)

// ErrReportResolved is returned when resolving a report twice.
var ErrReportResolved = errors.New("report already resolved")

// Report flags a catalog question as wrong, duplicated, or inappropriate.
type Report struct {
	ID         string
	QuestionID string
	Reason     string
	ReportedBy string
	Status     ReportStatus
	ResolvedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate validates the report for persistence.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.QuestionID) == "" {
		return errors.New("question id is required")
	}
	if strings.TrimSpace(r.Reason) == "" {
		return errors.New("reason is required")
	}
	if r.Status == "" {
		r.Status = ReportOpen
	}
	switch r.Status {
	case ReportOpen, ReportResolved:
	default:
		return errors.New("status must be open or resolved")
	}
	return nil
}

// Resolve closes an open report. Resolving twice fails.
func (r *Report) Resolve(resolverID string) error {
	if r.Status == ReportResolved {
		return ErrReportResolved
	}
	r.Status = ReportResolved
	r.ResolvedBy = resolverID
	r.UpdatedAt = time.Now().UTC()
	return nil
}
