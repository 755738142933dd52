package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/analytics"
)

// DashboardHandler maneja las peticiones HTTP del dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, stats)
}

// RecentActivities GET /api/dashboard/recent-activities?count=10
func (h *DashboardHandler) RecentActivities(c *fiber.Ctx) error {
	count, _ := strconv.Atoi(c.Query("count", "10"))
	activities, err := h.uc.GetRecentActivities(c.Context(), count)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, activities)
}

// MonthlyRevenue GET /api/dashboard/monthly-revenue
func (h *DashboardHandler) MonthlyRevenue(c *fiber.Ctx) error {
	series, err := h.uc.GetMonthlyRevenue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, series)
}

// ProjectStatusStats GET /api/dashboard/project-status-stats
func (h *DashboardHandler) ProjectStatusStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetProjectStatusStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, stats)
}
