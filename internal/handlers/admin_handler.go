package handlers

import (
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	moderationService *services.ModerationService
	auditService      *services.AuditService
}

func NewAdminHandler(moderationService *services.ModerationService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService, auditService: auditService}
}

func (h *AdminHandler) ListKudos(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	page := pageFromQuery(c)
	items, total, err := h.moderationService.ListAll(c.UserContext(), caller, recipientFromQuery(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listResponse(items, total, page))
}

func (h *AdminHandler) Hide(c *fiber.Ctx) error {
	caller, id, reason, err := h.moderationRequest(c)
	if err != nil {
		return err
	}

	entry, err := h.moderationService.Hide(c.UserContext(), caller, id, reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.HideResponse{Message: "Kudos hidden successfully", Log: entry})
}

func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	caller, id, reason, err := h.moderationRequest(c)
	if err != nil {
		return err
	}

	if err := h.moderationService.Delete(c.UserContext(), caller, id, reason); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ModerationLogs(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	page := pageFromQuery(c)
	items, total, err := h.auditService.ListModerationLogs(c.UserContext(), caller, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listResponse(items, total, page))
}

// moderationRequest parses the caller, :id and the optional {"reason"} body.
// Failures come back as *fiber.Error for ErrorHandler to render.
func (h *AdminHandler) moderationRequest(c *fiber.Ctx) (identity.Identity, uint, string, error) {
	caller, err := identity.FromContext(c)
	if err != nil {
		return identity.Identity{}, 0, "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	id, ok := idParam(c)
	if !ok {
		return identity.Identity{}, 0, "", fiber.NewError(fiber.StatusBadRequest, "Invalid kudos id")
	}

	var req dto.ModerationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return identity.Identity{}, 0, "", fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	return caller, id, req.Reason, nil
}
