package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gkh-dispatch/internal/api/dto"
	"github.com/spec-kit/gkh-dispatch/internal/service"
	apperrors "github.com/spec-kit/gkh-dispatch/pkg/util/errorutil"
)

// FocusHandler manages the single focused request.
type FocusHandler struct {
	board *service.BoardService
}

// NewFocusHandler constructs handler.
func NewFocusHandler(board *service.BoardService) *FocusHandler {
	return &FocusHandler{board: board}
}

// Get GET /focus.
func (h *FocusHandler) Get(c *fiber.Ctx) error {
	req, err := h.board.Focused(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewFocusedResponse(req)})
}

// Set PUT /focus.
func (h *FocusHandler) Set(c *fiber.Ctx) error {
	var body dto.FocusRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if body.RequestID != nil && *body.RequestID == "" {
		return apperrors.NewValidationError("request_id must be non-empty or null", nil)
	}
	if err := h.board.SetFocus(c.UserContext(), body.RequestID); err != nil {
		return err
	}
	return h.Get(c)
}

// Clear DELETE /focus.
func (h *FocusHandler) Clear(c *fiber.Ctx) error {
	if err := h.board.SetFocus(c.UserContext(), nil); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
