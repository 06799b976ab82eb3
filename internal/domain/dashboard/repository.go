package dashboard

import "context"

// DashboardRepository reads the aggregate counts from the HRMS REST API.
type DashboardRepository interface {
	Counts(ctx context.Context) (Counts, error)
}
