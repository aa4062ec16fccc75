package ports

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// ListReportsFilter carries all query parameters for listing reports.
// CitizenID is enforced by the service layer for non-admin actors.
type ListReportsFilter struct {
	CitizenID  string // empty = no filter (admin); non-empty = scoped to owner
	Status     string // optional: filter by lifecycle status
	Department string // optional: filter by assigned department
	Search     string // optional: partial match on title, description or address
}

// ReportRepository defines persistence operations for reports.
// List returns a full snapshot in insertion order; there is no pagination
// because the medium is a single local collection.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	// FindByID retrieves a report by id, failing with domain.ErrReportNotFound.
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, filter ListReportsFilter) ([]*domain.Report, error)
	// Update replaces the stored report with the same ID. Fails with
	// domain.ErrReportNotFound when no such report exists.
	Update(ctx context.Context, r *domain.Report) error
}
