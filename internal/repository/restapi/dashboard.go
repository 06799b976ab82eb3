package restapi

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/dashboard"
)

type dashboardRepositoryImpl struct {
	client *Client
}

func NewDashboardRepository(client *Client) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{client: client}
}

// Counts implements dashboard.DashboardRepository. Fields the backend omits
// stay zero.
func (r *dashboardRepositoryImpl) Counts(ctx context.Context) (dashboard.Counts, error) {
	var counts dashboard.Counts
	if err := r.client.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &counts); err != nil {
		return dashboard.Counts{}, err
	}
	return counts, nil
}
