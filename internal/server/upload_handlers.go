package server

import (
	"threadnest/internal/models"

	"github.com/gofiber/fiber/v2"
)

type uploadedImage struct {
	ImageID uint   `json:"imageId"`
	URL     string `json:"url"`
}

// UploadImages handles POST /api/upload/images. Accepts a multipart form with
// up to 10 files under the "files" field ("images" works too); each is
// re-encoded to WebP and stored, and the response lists the resulting ids and
// public URLs.
func (s *Server) UploadImages(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid multipart form"))
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["images"]
	}

	images, err := s.uploadService.SaveImages(c.UserContext(), files)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]uploadedImage, 0, len(images))
	for _, img := range images {
		out = append(out, uploadedImage{ImageID: img.ID, URL: img.URL})
	}
	return c.JSON(fiber.Map{"images": out})
}
