package server

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"blackbook/internal/models"
	"blackbook/internal/repository"
	"blackbook/internal/service"
)

// CreatePiece accepts a multipart form with the image under "file" plus the
// piece metadata fields.
func (s *Server) CreatePiece(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, models.NewValidationError("An image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	isPublic, err := strconv.ParseBool(c.FormValue("is_public", "true"))
	if err != nil {
		return respondError(c, models.NewValidationError("is_public must be a boolean"))
	}

	piece, err := s.pieces.CreatePiece(c.UserContext(), currentUser(c), service.CreatePieceInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		PieceType:   c.FormValue("piece_type"),
		Surface:     c.FormValue("surface"),
		Location:    c.FormValue("location"),
		IsPublic:    isPublic,
		FileName:    fileHeader.Filename,
		FileBytes:   content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(piece)
}

// ListPieces returns the public feed. piece_type, surface, and search narrow
// the result conjunctively.
func (s *Server) ListPieces(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.PieceFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.Query("piece_type"); raw != "" {
		pt := models.PieceType(raw)
		if !pt.Valid() {
			return respondError(c, models.NewValidationError("Invalid piece_type"))
		}
		filter.PieceType = &pt
	}
	if raw := c.Query("surface"); raw != "" {
		sf := models.Surface(raw)
		if !sf.Valid() {
			return respondError(c, models.NewValidationError("Invalid surface"))
		}
		filter.Surface = &sf
	}

	pieces, err := s.pieces.ListPublic(c.UserContext(), filter, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pieces)
}

// GetPiece returns a single piece with its stats.
func (s *Server) GetPiece(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	piece, err := s.pieces.GetPiece(c.UserContext(), id, currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(piece)
}

// DeletePiece removes a piece the actor owns.
func (s *Server) DeletePiece(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.pieces.DeletePiece(c.UserContext(), id, currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePiece records a like. Repeating it is a 409.
func (s *Server) LikePiece(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.pieces.Like(c.UserContext(), id, currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Piece liked"})
}

// UnlikePiece removes a like. Removing an absent like is a 409.
func (s *Server) UnlikePiece(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := s.pieces.Unlike(c.UserContext(), id, currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
