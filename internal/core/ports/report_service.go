package ports

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// Actor identifies who is performing an operation, for ownership scoping.
type Actor struct {
	ID   string
	Role string
}

// CoordinatesInput holds geographic coordinates captured with a submission.
type CoordinatesInput struct {
	Lat float64
	Lng float64
}

// MediaInput is a captured attachment (photo or voice note) to be stored
// through the media collaborator before the report is persisted.
type MediaInput struct {
	Name string
	Data []byte
}

// SubmitReportInput carries all data needed to submit a new report.
type SubmitReportInput struct {
	Title       string `validate:"required,min=3,max=120"`
	Description string `validate:"required"`
	Category    string `validate:"required,oneof=pothole streetlight trash graffiti traffic_sign water_leak sidewalk noise other"`
	Priority    string `validate:"omitempty,oneof=low medium high urgent"`
	CitizenID   string `validate:"required"`
	// Location is nil when capture failed; Address may be empty, in which
	// case it is resolved by reverse geocoding.
	Location *CoordinatesInput
	Address  string
	Photo    *MediaInput
	Audio    *MediaInput
}

// UpdateReportInput is a partial update applied over an existing report.
// Empty fields are preserved untouched; explicit unset is not supported.
type UpdateReportInput struct {
	Status     string `validate:"omitempty,oneof=submitted acknowledged in_progress resolved closed"`
	Department string `validate:"omitempty,oneof=public_works sanitation traffic utilities parks planning"`
	AssignedTo string
	Priority   string `validate:"omitempty,oneof=low medium high urgent"`
	// Message is recorded on the status history entry when a transition is accepted.
	Message string
}

// ListReportsInput carries the list parameters passed by the presentation layer.
type ListReportsInput struct {
	Status     string
	Department string
	Search     string
}

// ReportService defines use-case operations for reports.
type ReportService interface {
	Submit(ctx context.Context, input SubmitReportInput) (*domain.Report, error)
	// Get returns a single report. Citizens only see their own; a report
	// owned by someone else surfaces as domain.ErrReportNotFound.
	Get(ctx context.Context, actor Actor, id string) (*domain.Report, error)
	List(ctx context.Context, actor Actor, input ListReportsInput) ([]*domain.Report, error)
	// Update applies a partial update, validating any status change against
	// the lifecycle transition table. Admin only.
	Update(ctx context.Context, actor Actor, id string, input UpdateReportInput) (*domain.Report, error)
}
