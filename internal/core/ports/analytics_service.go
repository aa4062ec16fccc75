package ports

import (
	"context"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

// AnalyticsService derives summary counts from the current report collection.
type AnalyticsService interface {
	// Compute aggregates the full report snapshot. An empty collection
	// yields the fixed sample dataset, never zeros.
	Compute(ctx context.Context) (*domain.Analytics, error)
}
