package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gkh-dispatch/internal/api/dto"
	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/observability"
	"github.com/spec-kit/gkh-dispatch/internal/service"
)

// DashboardHandler serves read-only views for the display layer.
type DashboardHandler struct {
	dashboard *service.DashboardService
	profiles  *service.ProfileService
	metrics   *observability.Metrics
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, profiles *service.ProfileService, metrics *observability.Metrics) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, profiles: profiles, metrics: metrics}
}

// Dashboard GET /dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	snap, err := h.dashboard.Snapshot(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(snap)})
}

// Operator GET /operator.
func (h *DashboardHandler) Operator(c *fiber.Ctx) error {
	profile, err := h.profiles.Profile(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOperatorResponse(*profile)})
}

// Categories GET /categories.
func (h *DashboardHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewCategoryList(domain.Categories())})
}

// Metrics GET /metrics.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
