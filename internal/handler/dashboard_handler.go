package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/service"
)

// DashboardHandler handles the landing page and result history endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/dashboard
// Returns statistics, the last five results and the question of the day.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	data, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// ListResults godoc
// GET /api/v1/results
// Returns every recorded result, oldest first.
func (h *DashboardHandler) ListResults(c *gin.Context) {
	results, err := h.dashboardService.Results(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}

	if results == nil {
		results = []model.ExamResult{}
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}
