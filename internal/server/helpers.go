package server

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"threadnest/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a helper already wrote the HTTP error
// response; handlers should return nil when they see it.
var errResponseWritten = errors.New("error response already written")

// parseID parses a numeric route parameter. On failure it writes a 400
// response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID reads the authenticated user ID placed in Locals by the
// identity middleware. Returns a 401 write + errResponseWritten if absent.
func currentUserID(c *fiber.Ctx) (uint, error) {
	if id, ok := c.Locals("userID").(uint); ok && id != 0 {
		return id, nil
	}
	_ = models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError("Authentication required"))
	return 0, errResponseWritten
}

// statusForError maps application error codes to HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeValidation:
			return fiber.StatusBadRequest
		case models.CodeUnauthorized:
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError writes the error response for a service-layer failure.
func respondServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errResponseWritten) {
		return nil
	}
	return models.RespondWithError(c, statusForError(err), err)
}

// humanizeParam turns a camelCase route param name into readable words,
// e.g. "threadId" -> "thread ID".
func humanizeParam(param string) string {
	words := splitCamel(param)
	for i, w := range words {
		if strings.EqualFold(w, "id") {
			words[i] = "ID"
		} else {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}
