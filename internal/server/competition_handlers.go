package server

import (
	"github.com/gofiber/fiber/v2"

	"blackbook/internal/models"
)

// ListCompetitions returns competitions, most recently started first.
func (s *Server) ListCompetitions(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	competitions, err := s.competitions.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(competitions)
}

// GetCompetition returns a competition with its entries.
func (s *Server) GetCompetition(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	competition, err := s.competitions.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(competition)
}

type submitEntryRequest struct {
	PieceID uint `json:"piece_id"`
}

// SubmitCompetitionEntry enters one of the actor's pieces into an open
// competition.
func (s *Server) SubmitCompetitionEntry(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req submitEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.PieceID == 0 {
		return respondError(c, models.NewValidationError("piece_id is required"))
	}

	entry, err := s.competitions.SubmitEntry(c.UserContext(), currentUser(c), id, req.PieceID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
