package server

import (
	"github.com/gofiber/fiber/v2"

	"blackbook/internal/models"
	"blackbook/internal/service"
)

// Register creates a new account.
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.users.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers returns users, optionally filtered by a case-insensitive search
// over username, tag name, and crew.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	users, err := s.users.List(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a user profile by username.
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.users.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserPieces returns a user's gallery. The owner sees private pieces;
// everyone else gets the public subset.
func (s *Server) GetUserPieces(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var pieceType *models.PieceType
	if raw := c.Query("piece_type"); raw != "" {
		pt := models.PieceType(raw)
		if !pt.Valid() {
			return respondError(c, models.NewValidationError("Invalid piece_type"))
		}
		pieceType = &pt
	}

	pieces, err := s.users.ListPieces(c.UserContext(), c.Params("username"), currentUser(c), pieceType, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pieces)
}
