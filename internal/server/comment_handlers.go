package server

import (
	"github.com/gofiber/fiber/v2"

	"blackbook/internal/models"
)

type createCommentRequest struct {
	PieceID uint   `json:"piece_id"`
	Content string `json:"content"`
}

// CreateComment attaches a comment to a piece the actor can view.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.PieceID == 0 {
		return respondError(c, models.NewValidationError("piece_id is required"))
	}

	comment, err := s.comments.CreateComment(c.UserContext(), currentUser(c), req.PieceID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ListPieceComments returns a piece's comments, newest first. Comments on a
// private piece are hidden from everyone, the owner included.
func (s *Server) ListPieceComments(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := parsePagination(c)

	comments, err := s.comments.ListByPiece(c.UserContext(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// DeleteComment removes a comment as its author or the piece's owner.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.comments.DeleteComment(c.UserContext(), currentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
