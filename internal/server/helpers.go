package server

import (
	"strconv"

	"blackbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// parsePagination reads skip/limit query parameters, clamping limit to
// [1, 100] and skip to non-negative. Unparseable values fall back to the
// defaults rather than erroring.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset = c.QueryInt("skip", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// currentUser returns the authenticated user set by RequireAuth or
// OptionalActor, or nil for anonymous requests.
func currentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("user").(*models.User); ok {
		return user
	}
	return nil
}

// respondError maps an error's kind to its HTTP status and writes the
// standardized error body.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}
