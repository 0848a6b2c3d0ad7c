package handlers

import (
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type KudosHandler struct {
	kudosService *services.KudosService
}

func NewKudosHandler(kudosService *services.KudosService) *KudosHandler {
	return &KudosHandler{kudosService: kudosService}
}

func (h *KudosHandler) Submit(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	if !caller.Can(models.CapSubmitKudos) {
		return respondError(c, services.ErrNotAllowed)
	}

	var req dto.SubmitKudosRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	kudos, err := h.kudosService.Submit(c.UserContext(), caller.UserID, req.RecipientID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(kudos)
}

// Feed is the public list of visible kudos, optionally for one recipient.
func (h *KudosHandler) Feed(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, total, err := h.kudosService.ListVisible(c.UserContext(), recipientFromQuery(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listResponse(items, total, page))
}

func (h *KudosHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondError(c, services.ErrKudosNotFound)
	}

	kudos, err := h.kudosService.GetVisible(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(kudos)
}
