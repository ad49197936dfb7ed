package server

import (
	"github.com/gofiber/fiber/v2"

	"blackbook/internal/models"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Login exchanges credentials for a bearer token. Accepts JSON and form
// bodies.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Username and password are required"))
	}

	user, token, err := s.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
