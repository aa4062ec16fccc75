package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

// AnalyticsService recomputes dashboard aggregates on demand from the full
// report snapshot. It is a pure function of the report collection.
type AnalyticsService struct {
	repo ports.ReportRepository
	log  zerolog.Logger
}

func NewAnalyticsService(repo ports.ReportRepository, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, log: log}
}

// Compute aggregates the current report collection. An empty collection
// yields the fixed sample dataset so the dashboard never renders empty.
// Frequency tables are zero-filled across all enum values, giving chart
// consumers a stable key set.
func (s *AnalyticsService) Compute(ctx context.Context) (*domain.Analytics, error) {
	reports, err := s.repo.List(ctx, ports.ListReportsFilter{})
	if err != nil {
		return nil, err
	}

	if len(reports) == 0 {
		s.log.Debug().Msg("no reports stored, returning sample analytics")
		return domain.SampleAnalytics(), nil
	}

	a := &domain.Analytics{
		TotalReports:      len(reports),
		ReportsByCategory: make(map[domain.Category]int, len(domain.Categories())),
		ReportsByStatus:   make(map[domain.ReportStatus]int, len(domain.ReportStatuses())),
		ReportsByPriority: make(map[domain.Priority]int, len(domain.Priorities())),
	}
	for _, c := range domain.Categories() {
		a.ReportsByCategory[c] = 0
	}
	for _, st := range domain.ReportStatuses() {
		a.ReportsByStatus[st] = 0
	}
	for _, p := range domain.Priorities() {
		a.ReportsByPriority[p] = 0
	}

	var resolutionTotal time.Duration
	var resolutionCount int

	for _, r := range reports {
		a.ReportsByCategory[r.Category]++
		a.ReportsByStatus[r.Status]++
		a.ReportsByPriority[r.Priority]++

		if r.Status == domain.StatusResolved || r.Status == domain.StatusClosed {
			if r.Status == domain.StatusResolved {
				a.ResolvedReports++
			}
			if d, ok := resolutionTime(r); ok {
				resolutionTotal += d
				resolutionCount++
			}
		}
	}

	if resolutionCount > 0 {
		a.AverageResponseTime = resolutionTotal.Hours() / 24 / float64(resolutionCount)
	} else {
		a.AverageResponseTime = domain.PlaceholderResponseTime
	}

	return a, nil
}

// resolutionTime returns how long the report took from submission to its
// first resolved history entry.
func resolutionTime(r *domain.Report) (time.Duration, bool) {
	for _, h := range r.StatusHistory {
		if h.Status == domain.StatusResolved {
			return h.CreatedAt.Sub(r.CreatedAt), true
		}
	}
	return 0, false
}
