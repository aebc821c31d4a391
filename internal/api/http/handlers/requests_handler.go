package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gkh-dispatch/internal/api/dto"
	"github.com/spec-kit/gkh-dispatch/internal/domain"
	"github.com/spec-kit/gkh-dispatch/internal/service"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// RequestsHandler exposes the request board commands.
type RequestsHandler struct {
	board       *service.BoardService
	assignments *service.AssignmentService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(board *service.BoardService, assignments *service.AssignmentService) *RequestsHandler {
	return &RequestsHandler{board: board, assignments: assignments}
}

// ListRequests GET /requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	filter, err := parseRequestQuery(c)
	if err != nil {
		return err
	}
	reqs, err := h.board.ListRequests(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestList(reqs)})
}

// GetRequest GET /requests/:id.
func (h *RequestsHandler) GetRequest(c *fiber.Ctx) error {
	req, err := h.board.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(*req)})
}

// Accept POST /requests/:id/accept.
func (h *RequestsHandler) Accept(c *fiber.Ctx) error {
	req, err := h.board.Accept(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(*req)})
}

// Complete POST /requests/:id/complete.
func (h *RequestsHandler) Complete(c *fiber.Ctx) error {
	req, err := h.board.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(*req)})
}

// Assign POST /requests/:id/assign.
func (h *RequestsHandler) Assign(c *fiber.Ctx) error {
	var body dto.AssignRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	body.DepartmentID = strings.TrimSpace(body.DepartmentID)
	if body.DepartmentID == "" {
		return apperrors.NewValidationError("department_id required", nil)
	}
	req, err := h.assignments.AssignToDepartment(c.UserContext(), c.Params("id"), body.DepartmentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestResponse(*req)})
}

// Counters GET /requests/counters.
func (h *RequestsHandler) Counters(c *fiber.Ctx) error {
	counters, err := h.board.Counters(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCountersResponse(counters)})
}

func parseRequestQuery(c *fiber.Ctx) (service.RequestListFilter, error) {
	filter := service.RequestListFilter{}
	for _, part := range splitQuery(c.Query("status")) {
		status := domain.RequestStatus(strings.ToLower(part))
		if !status.Valid() {
			return filter, apperrors.NewValidationError("unknown status", map[string]any{"status": part})
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, part := range splitQuery(c.Query("category")) {
		category, ok := domain.ParseCategory(part)
		if !ok {
			return filter, apperrors.NewValidationError("unknown category", map[string]any{"category": part})
		}
		filter.Categories = append(filter.Categories, category)
	}
	if dept := strings.TrimSpace(c.Query("department")); dept != "" {
		filter.DepartmentID = &dept
	}
	return filter, nil
}

func splitQuery(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
