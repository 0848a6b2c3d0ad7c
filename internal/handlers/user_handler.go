package handlers

import (
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	directory *services.DirectoryService
}

func NewUserHandler(directory *services.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// Search backs the recipient picker: active users matching ?search=.
func (h *UserHandler) Search(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	users, total, err := h.directory.Search(c.UserContext(), c.Query("search"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listResponse(users, total, page))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return respondError(c, services.ErrUserNotFound)
	}

	user, err := h.directory.FindActiveByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
