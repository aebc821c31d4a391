package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gkh-dispatch/internal/api/dto"
	"github.com/spec-kit/gkh-dispatch/internal/service"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// DepartmentsHandler exposes the department catalog and its workload.
type DepartmentsHandler struct {
	assignments *service.AssignmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(assignments *service.AssignmentService) *DepartmentsHandler {
	return &DepartmentsHandler{assignments: assignments}
}

// List GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	stats, err := h.assignments.DepartmentStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentList(stats)})
}

// Get GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.assignments.DepartmentStatsByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDepartmentResponse(*stats)})
}

// Requests GET /departments/:id/requests.
func (h *DepartmentsHandler) Requests(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.assignments.DepartmentByID(c.UserContext(), id); !ok {
		return apperrors.NewNotFound("department", map[string]any{"department_id": id})
	}
	reqs, err := h.assignments.RequestsForDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(reqs)})
}
