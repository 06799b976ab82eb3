package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetCounts returns today's totals; missing fields are zero
	GetCounts(ctx context.Context) (Counts, error)
}
