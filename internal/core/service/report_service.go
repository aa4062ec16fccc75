package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

// ReportService implements the report use cases: submission by citizens and
// lifecycle management by administrators.
type ReportService struct {
	repo     ports.ReportRepository
	users    ports.UserRepository
	media    ports.MediaStore
	geo      ports.Geocoder
	validate *validator.Validate
	log      zerolog.Logger
}

func NewReportService(
	repo ports.ReportRepository,
	users ports.UserRepository,
	media ports.MediaStore,
	geo ports.Geocoder,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		repo:     repo,
		users:    users,
		media:    media,
		geo:      geo,
		validate: validator.New(),
		log:      log,
	}
}

// Submit validates and persists a new report. Priority defaults to medium,
// status starts at submitted, and both timestamps are equal at creation.
// Attachments are stored through the media collaborator first; a missing
// address is resolved by reverse geocoding when coordinates are present.
func (s *ReportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*domain.Report, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("submit report: %w", err)
	}

	if _, err := s.users.FindByID(ctx, input.CitizenID); err != nil {
		return nil, fmt.Errorf("submit report: citizen %s: %w", input.CitizenID, err)
	}

	priority := domain.Priority(input.Priority)
	if priority == "" {
		priority = domain.DefaultPriority
	}

	var location *domain.Coordinates
	if input.Location != nil {
		location = &domain.Coordinates{Lat: input.Location.Lat, Lng: input.Location.Lng}
	}

	address := input.Address
	if address == "" && location != nil {
		address = s.resolveAddress(ctx, location.Lat, location.Lng)
	}

	photoURL, err := s.storeMedia(ctx, input.Photo)
	if err != nil {
		return nil, fmt.Errorf("submit report: photo: %w", err)
	}
	audioURL, err := s.storeMedia(ctx, input.Audio)
	if err != nil {
		return nil, fmt.Errorf("submit report: audio: %w", err)
	}

	now := time.Now().UTC()
	report := &domain.Report{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Category:    domain.Category(input.Category),
		Priority:    priority,
		Status:      domain.StatusSubmitted,
		Location:    location,
		Address:     address,
		PhotoURL:    photoURL,
		AudioURL:    audioURL,
		CitizenID:   input.CitizenID,
		CreatedAt:   now,
		UpdatedAt:   now,
		StatusHistory: []domain.StatusUpdate{
			{Status: domain.StatusSubmitted, CreatedBy: input.CitizenID, CreatedAt: now},
		},
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.log.Error().Err(err).Msg("failed to create report")
		return nil, err
	}

	s.log.Info().
		Str("report_id", report.ID).
		Str("category", string(report.Category)).
		Str("citizen_id", report.CitizenID).
		Msg("report submitted")

	return report, nil
}

// Get returns a single report. Citizens only see their own reports; one owned
// by another citizen surfaces as not found rather than forbidden.
func (s *ReportService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && report.CitizenID != actor.ID {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

// List returns a snapshot of reports in insertion order. Non-admin actors are
// always scoped to their own reports.
func (s *ReportService) List(ctx context.Context, actor ports.Actor, input ports.ListReportsInput) ([]*domain.Report, error) {
	filter := ports.ListReportsFilter{
		Status:     input.Status,
		Department: input.Department,
		Search:     input.Search,
	}
	if actor.Role != domain.RoleAdmin {
		filter.CitizenID = actor.ID
	}
	return s.repo.List(ctx, filter)
}

// Update merges a partial update over an existing report. Status changes are
// validated against the lifecycle transition table; every accepted transition
// appends a history entry. Moving into in_progress with no department set
// assigns the category's default department. updated_at is refreshed on every
// call, matching the merge semantics of the store contract.
func (s *ReportService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateReportInput) (*domain.Report, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if next := domain.ReportStatus(input.Status); input.Status != "" && next != report.Status {
		if !report.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("update report: %w (from %s to %s)", domain.ErrInvalidTransition, report.Status, next)
		}
		report.Status = next
		report.StatusHistory = append(report.StatusHistory, domain.StatusUpdate{
			Status:    next,
			Message:   input.Message,
			CreatedBy: actor.ID,
			CreatedAt: now,
		})
		if next == domain.StatusInProgress && input.Department == "" && report.AssignedDepartment == "" {
			report.AssignedDepartment = domain.DefaultDepartment(report.Category)
		}
	}

	if input.Department != "" {
		report.AssignedDepartment = domain.Department(input.Department)
	}
	if input.AssignedTo != "" {
		report.AssignedTo = input.AssignedTo
	}
	if input.Priority != "" {
		report.Priority = domain.Priority(input.Priority)
	}

	report.UpdatedAt = now

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("report_id", report.ID).
		Str("status", string(report.Status)).
		Str("department", string(report.AssignedDepartment)).
		Msg("report updated")

	return report, nil
}

func (s *ReportService) storeMedia(ctx context.Context, m *ports.MediaInput) (string, error) {
	if m == nil {
		return "", nil
	}
	ref, err := s.media.Store(ctx, m.Name, m.Data)
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (s *ReportService) resolveAddress(ctx context.Context, lat, lng float64) string {
	address, err := s.geo.ReverseGeocode(ctx, lat, lng)
	if err != nil || address == "" {
		s.log.Debug().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("reverse geocode failed, using coordinates")
		return FormatCoordinates(lat, lng)
	}
	return address
}

// FormatCoordinates renders a coordinate pair as the display-address fallback.
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
