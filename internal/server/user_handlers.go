package server

import (
	"strconv"

	"threadnest/internal/middleware"
	"threadnest/internal/models"
	"threadnest/internal/service"
	"threadnest/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// targetID reads the targetUserId header; falls back to the acting user
// when the header is absent.
func targetID(c *fiber.Ctx, fallback uint) (uint, error) {
	raw := c.Get(middleware.HeaderTargetUserID)
	if raw == "" {
		return fallback, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid target user ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// GetUser returns the merged view of the user named by the targetUserId
// header, as seen by the acting user.
func (s *Server) GetUser(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	target, err := targetID(c, viewerID)
	if err != nil {
		return nil
	}

	view, err := s.userService.GetUserView(c.UserContext(), viewerID, target)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type authResponse struct {
	UserID uint   `json:"userId"`
	Token  string `json:"token"`
}

// Login handles POST /api/user/authentication/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	// Same response for unknown email and wrong password, so the endpoint
	// does not confirm which emails are registered.
	if user == nil || bcrypt.CompareHashAndPassword(
		[]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid email or password"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(authResponse{UserID: user.ID, Token: token})
}

// Register handles POST /api/user/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(authResponse{UserID: user.ID, Token: token})
}

// FollowUser toggles the follow edge from the acting user toward the user
// named by the targetUserId header.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	target, err := targetID(c, 0)
	if err != nil {
		return nil
	}
	if target == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Target user ID is required"))
	}

	if _, err := s.userService.ToggleFollow(c.UserContext(), viewerID, target); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers lists users following the target, newest follow first.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	target, err := targetID(c, viewerID)
	if err != nil {
		return nil
	}

	list, err := s.userService.Followers(c.UserContext(), viewerID, target)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

// GetFollowings lists users the target follows, newest follow first.
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return nil
	}
	target, err := targetID(c, viewerID)
	if err != nil {
		return nil
	}

	list, err := s.userService.Following(c.UserContext(), viewerID, target)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio"`
}

// UpdateProfile handles POST /api/user/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err = s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated"})
}

type updateProfileImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// UpdateProfileImage handles PATCH /api/user/profile/image
func (s *Server) UpdateProfileImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}

	var req updateProfileImageRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.SetAvatarFromURL(c.UserContext(), userID, req.ImageURL); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile image updated"})
}

// RemoveProfileImage handles DELETE /api/user/profile/image
func (s *Server) RemoveProfileImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveAvatar(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile image removed"})
}

// EmailExists handles GET /api/user/exist/:email — 200 when an account uses
// the email, 404 otherwise.
func (s *Server) EmailExists(c *fiber.Ctx) error {
	email := c.Params("email")

	exists, err := s.userService.EmailExists(c.UserContext(), email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !exists {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", email))
	}
	return c.JSON(fiber.Map{"exists": true})
}
