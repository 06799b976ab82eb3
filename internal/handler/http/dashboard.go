package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-web/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-web/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/refresh"
)

type DashboardHandler interface {
	// Page renders the dashboard counts
	Page(w http.ResponseWriter, r *http.Request)
	// GetCounts returns the counts as JSON
	GetCounts(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	pages            *Pages
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, pages *Pages) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, pages: pages}
}

// Page handles GET /dashboard
func (h *dashboardHandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	data := view.DashboardPage{}
	counts, err := h.dashboardService.GetCounts(r.Context())
	if err != nil {
		data.Error = response.Message(err)
	} else {
		data.Counts = counts
	}

	h.pages.render(w, r, "dashboard", "Dashboard", []refresh.Topic{refresh.TopicDashboard}, data)
}

// GetCounts handles GET /ui/api/dashboard
func (h *dashboardHandlerImpl) GetCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboardService.GetCounts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, counts)
}
