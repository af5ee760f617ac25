package server

import (
	"threadnest/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetCode handles GET /api/code/get. The email arrives in the `email` header;
// a fresh 6-digit code is stored with a TTL and dispatched by mail.
func (s *Server) GetCode(c *fiber.Ctx) error {
	email := c.Get("email")
	if email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email header is required"))
	}

	if err := s.codeService.Issue(c.UserContext(), email); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Confirmation code sent"})
}

// CheckCode handles GET /api/code/check. Headers `email` and `code`; a match
// consumes the stored code and returns 200, anything else returns 401.
func (s *Server) CheckCode(c *fiber.Ctx) error {
	email := c.Get("email")
	code := c.Get("code")
	if email == "" || code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and code headers are required"))
	}

	ok, err := s.codeService.Check(c.UserContext(), email, code)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired code"))
	}
	return c.JSON(fiber.Map{"message": "Code confirmed"})
}
