package localstore

import (
	"context"
	"strings"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

// ReportRepository persists reports under the "reports" key. The JSON array
// preserves insertion order, which is the order List returns.
type ReportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

func (r *ReportRepository) Create(_ context.Context, report *domain.Report) error {
	var reports []*domain.Report
	return r.store.update(keyReports, &reports, func() error {
		reports = append(reports, cloneReport(report))
		return nil
	})
}

func (r *ReportRepository) FindByID(_ context.Context, id string) (*domain.Report, error) {
	var reports []*domain.Report
	if err := r.store.read(keyReports, &reports); err != nil {
		return nil, err
	}
	for _, rep := range reports {
		if rep.ID == id {
			return cloneReport(rep), nil
		}
	}
	return nil, domain.ErrReportNotFound
}

// List returns a snapshot of all reports matching filter, in insertion order.
func (r *ReportRepository) List(_ context.Context, filter ports.ListReportsFilter) ([]*domain.Report, error) {
	var reports []*domain.Report
	if err := r.store.read(keyReports, &reports); err != nil {
		return nil, err
	}

	matched := make([]*domain.Report, 0, len(reports))
	for _, rep := range reports {
		if filter.CitizenID != "" && rep.CitizenID != filter.CitizenID {
			continue
		}
		if filter.Status != "" && string(rep.Status) != filter.Status {
			continue
		}
		if filter.Department != "" && string(rep.AssignedDepartment) != filter.Department {
			continue
		}
		if filter.Search != "" && !matchesSearch(rep, filter.Search) {
			continue
		}
		matched = append(matched, cloneReport(rep))
	}
	return matched, nil
}

// Update replaces the stored report carrying the same ID.
func (r *ReportRepository) Update(_ context.Context, report *domain.Report) error {
	var reports []*domain.Report
	return r.store.update(keyReports, &reports, func() error {
		for i, rep := range reports {
			if rep.ID == report.ID {
				reports[i] = cloneReport(report)
				return nil
			}
		}
		return domain.ErrReportNotFound
	})
}

func matchesSearch(r *domain.Report, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Address), term)
}

// cloneReport copies a report deeply enough that callers cannot alias the
// slices or location held by another copy.
func cloneReport(r *domain.Report) *domain.Report {
	clone := *r
	if r.Location != nil {
		loc := *r.Location
		clone.Location = &loc
	}
	if len(r.StatusHistory) > 0 {
		clone.StatusHistory = append([]domain.StatusUpdate(nil), r.StatusHistory...)
	}
	return &clone
}
