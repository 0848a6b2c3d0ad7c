package handlers

import (
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/kudos-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// pageFromQuery reads skip (or its alias offset) and limit. Missing or
// non-numeric values fall back to the defaults before clamping.
func pageFromQuery(c *fiber.Ctx) services.Page {
	skip := c.QueryInt("skip", c.QueryInt("offset", 0))
	return services.NewPage(skip, c.QueryInt("limit", services.DefaultPageLimit))
}

func recipientFromQuery(c *fiber.Ctx) uint {
	id := c.QueryInt("recipient_id", 0)
	if id < 0 {
		return 0
	}
	return uint(id)
}

// idParam returns ok=false when :id is not a positive integer.
func idParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func listResponse[T any](items []T, total int64, page services.Page) dto.ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return dto.ListResponse[T]{Items: items, Total: total, Skip: page.Offset, Limit: page.Limit}
}
