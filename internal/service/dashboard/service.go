package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetCounts implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetCounts(ctx context.Context) (dashboard.Counts, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load dashboard", "error", err)
		return dashboard.Counts{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return counts, nil
}
