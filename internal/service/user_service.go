package service

import (
	"context"
	"errors"
	"time"

	"threadnest/internal/models"
	"threadnest/internal/observability"
	"threadnest/internal/repository"
	"threadnest/internal/validation"
)

// UserService assembles viewer-relative user views and applies profile
// mutations.
type UserService struct {
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	defaultAvatar string
}

type UpdateProfileInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Bio       string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, defaultAvatar string) *UserService {
	return &UserService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		defaultAvatar: defaultAvatar,
	}
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}

// GetUserView returns the target user as seen by the viewer: profile fields
// plus the follow overview. The follow flag and follower count are fetched
// concurrently once the profile row is known to exist.
func (s *UserService) GetUserView(ctx context.Context, viewerID, targetID uint) (*models.UserView, error) {
	start := time.Now()

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	var (
		isFollowing   bool
		followerCount int64
	)
	err = await(
		func() error {
			var err error
			isFollowing, err = s.followRepo.IsFollowing(ctx, viewerID, targetID)
			return err
		},
		func() error {
			var err error
			followerCount, err = s.followRepo.FollowerCount(ctx, targetID)
			return err
		},
	)
	if err != nil {
		observability.FanoutErrors.WithLabelValues("user").Inc()
		return nil, err
	}
	observability.FanoutDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())

	return &models.UserView{
		User: s.profileOf(user),
		Overview: models.UserOverview{
			Follow: models.FollowOverview{
				IsFollowing: isFollowing,
				Count:       followerCount,
			},
		},
	}, nil
}

func (s *UserService) profileOf(user *models.User) models.UserProfile {
	imageURL := s.defaultAvatar
	if user.Image != nil && user.Image.URL != "" {
		imageURL = user.Image.URL
	}
	return models.UserProfile{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		ImageURL:  imageURL,
	}
}

// ToggleFollow flips the viewer's follow edge on the target and returns the
// resulting state.
func (s *UserService) ToggleFollow(ctx context.Context, currentID, targetID uint) (bool, error) {
	if currentID == targetID {
		return false, models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Toggle(ctx, currentID, targetID)
}

// Followers lists the users following userID, newest edge first, each as a
// view relative to the viewer together with the follow time.
func (s *UserService) Followers(ctx context.Context, viewerID, userID uint) ([]models.FollowActivity, error) {
	edges, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(edges))
	for i, e := range edges {
		ids[i] = e.CurrentID
	}
	return s.assembleFollowActivity(ctx, viewerID, ids, edges)
}

// Following lists the users userID follows, newest edge first.
func (s *UserService) Following(ctx context.Context, viewerID, userID uint) ([]models.FollowActivity, error) {
	edges, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(edges))
	for i, e := range edges {
		ids[i] = e.TargetID
	}
	return s.assembleFollowActivity(ctx, viewerID, ids, edges)
}

// assembleFollowActivity fans out one user view per id, keeping input order.
// Ids that no longer resolve are dropped; backend failures abort the list.
func (s *UserService) assembleFollowActivity(ctx context.Context, viewerID uint, ids []uint, edges []models.Follow) ([]models.FollowActivity, error) {
	slots := make([]*models.FollowActivity, len(ids))
	err := awaitIndexed(len(ids), func(i int) error {
		view, err := s.GetUserView(ctx, viewerID, ids[i])
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		slots[i] = &models.FollowActivity{
			User:       *view,
			FollowedAt: edges[i].CreatedAt.UnixMilli(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.FollowActivity, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out, nil
}

// UpdateProfile applies name/bio changes.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) error {
	const maxNameLen = 50
	const maxBioLen = 500

	if len(in.FirstName) > maxNameLen || len(in.LastName) > maxNameLen {
		return models.NewValidationError("Name too long (max 50 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return models.NewValidationError("Bio too long (max 500 characters)")
	}
	return s.userRepo.UpdateProfile(ctx, in.UserID, in.FirstName, in.LastName, in.Bio)
}

// SetAvatarFromURL records a new image row and points the user's avatar at it.
func (s *UserService) SetAvatarFromURL(ctx context.Context, userID uint, imageURL string) error {
	if imageURL == "" {
		return models.NewValidationError("Image URL is required")
	}
	return s.userRepo.SetAvatar(ctx, userID, &models.Image{URL: imageURL})
}

// RemoveAvatar reverts the user to the default avatar.
func (s *UserService) RemoveAvatar(ctx context.Context, userID uint) error {
	return s.userRepo.RemoveAvatar(ctx, userID)
}

// EmailExists reports whether a registered account uses the email.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	return s.userRepo.ExistsByEmail(ctx, email)
}
