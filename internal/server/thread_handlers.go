package server

import (
	"threadnest/internal/models"
	"threadnest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetThread returns the merged view of a single thread as seen by the
// acting user.
func (s *Server) GetThread(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	threadID, err := parseID(c, "threadId")
	if err != nil {
		return nil
	}

	view, err := s.threadService.GetThreadView(c.UserContext(), viewerID, threadID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// GetRandomThreads returns up to 15 top-level posts the acting user has not
// saved yet, in random order.
func (s *Server) GetRandomThreads(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}

	views, err := s.threadService.RandomFeed(c.UserContext(), viewerID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

type createThreadRequest struct {
	Type      string   `json:"type"`
	Text      string   `json:"text"`
	ImageURLs []string `json:"imageUrls"`
	MainID    *uint    `json:"mainId"`
}

// CreateThread handles POST /api/thread/post
func (s *Server) CreateThread(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}

	var req createThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	thread, err := s.threadService.CreateThread(c.UserContext(), service.CreateThreadInput{
		UserID:    userID,
		Type:      models.ThreadType(req.Type),
		Text:      req.Text,
		ImageURLs: req.ImageURLs,
		MainID:    req.MainID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"threadId": thread.ID})
}

// FavoriteThread handles GET /api/thread/favorite/:threadId/:isFavorited —
// the desired state is explicit in the path, so repeats are idempotent.
func (s *Server) FavoriteThread(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	threadID, err := parseID(c, "threadId")
	if err != nil {
		return nil
	}

	var favorited bool
	switch c.Params("isFavorited") {
	case "true", "1":
		favorited = true
	case "false", "0":
		favorited = false
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid favorite state"))
	}

	if err := s.threadService.SetFavorite(c.UserContext(), userID, threadID, favorited); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"isFavorited": favorited})
}

// GetReplies lists the direct replies of a thread as merged views.
func (s *Server) GetReplies(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	mainID, err := parseID(c, "mainId")
	if err != nil {
		return nil
	}

	views, err := s.threadService.Replies(c.UserContext(), viewerID, mainID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

// DeleteThread removes a thread and all its dependent rows.
func (s *Server) DeleteThread(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return nil
	}
	threadID, err := parseID(c, "threadId")
	if err != nil {
		return nil
	}

	if err := s.threadService.DeleteThread(c.UserContext(), threadID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveThread toggles the acting user's saved mark on a thread. Saved threads
// are excluded from the random feed.
func (s *Server) SaveThread(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	threadID, err := parseID(c, "threadId")
	if err != nil {
		return nil
	}

	saved, err := s.threadService.ToggleWatch(c.UserContext(), userID, threadID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"isSaved": saved})
}

type updateThreadRequest struct {
	ThreadID uint   `json:"threadId"`
	Type     string `json:"type"`
	Text     string `json:"text"`
}

// UpdateThread handles PATCH /api/thread/update
func (s *Server) UpdateThread(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return nil
	}

	var req updateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ThreadID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Thread ID is required"))
	}

	err := s.threadService.UpdateThread(c.UserContext(), service.UpdateThreadInput{
		ThreadID: req.ThreadID,
		Type:     models.ThreadType(req.Type),
		Text:     req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Thread updated"})
}
