package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"threadnest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetUserView(t *testing.T) {
	t.Parallel()

	t.Run("merges profile, follow flag and follower count", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{
				ID:        id,
				Username:  "ada",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Bio:       "first programmer",
			}, nil
		}
		followRepo := noopFollowRepo()
		followRepo.isFollowingFn = func(_ context.Context, currentID, targetID uint) (bool, error) {
			assert.Equal(t, uint(1), currentID)
			assert.Equal(t, uint(2), targetID)
			return true, nil
		}
		followRepo.followerCountFn = func(_ context.Context, _ uint) (int64, error) {
			return 42, nil
		}
		svc := NewUserService(userRepo, followRepo, "/public/images/default-avatar.png")

		view, err := svc.GetUserView(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), view.User.UserID)
		assert.Equal(t, "ada", view.User.Username)
		assert.True(t, view.Overview.Follow.IsFollowing)
		assert.Equal(t, int64(42), view.Overview.Follow.Count)
	})

	t.Run("falls back to default avatar", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		svc := NewUserService(userRepo, noopFollowRepo(), "/public/images/default-avatar.png")

		view, err := svc.GetUserView(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "/public/images/default-avatar.png", view.User.ImageURL)
	})

	t.Run("uses avatar image when present", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Image: &models.Image{URL: "/public/images/me.webp"}}, nil
		}
		svc := NewUserService(userRepo, noopFollowRepo(), "/default.png")

		view, err := svc.GetUserView(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "/public/images/me.webp", view.User.ImageURL)
	})

	t.Run("absent user propagates NotFound", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(userRepo, noopFollowRepo(), "/default.png")

		_, err := svc.GetUserView(context.Background(), 1, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestUserService_ToggleFollow(t *testing.T) {
	t.Parallel()

	t.Run("self follow rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo(), "/default.png")
		_, err := svc.ToggleFollow(context.Background(), 1, 1)
		assertValidationError(t, err)
	})

	t.Run("unknown target rejected", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(userRepo, noopFollowRepo(), "/default.png")
		_, err := svc.ToggleFollow(context.Background(), 1, 99)
		assert.Error(t, err)
	})

	t.Run("returns new follow state", func(t *testing.T) {
		t.Parallel()
		followRepo := noopFollowRepo()
		followRepo.toggleFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewUserService(noopUserRepo(), followRepo, "/default.png")

		following, err := svc.ToggleFollow(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.True(t, following)
	})
}

func TestUserService_Followers(t *testing.T) {
	t.Parallel()

	followedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("keeps edge order and follow times", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		followRepo := noopFollowRepo()
		followRepo.followersFn = func(_ context.Context, _ uint) ([]models.Follow, error) {
			return []models.Follow{
				{CurrentID: 5, TargetID: 2, CreatedAt: followedAt},
				{CurrentID: 6, TargetID: 2, CreatedAt: followedAt.Add(-time.Hour)},
				{CurrentID: 7, TargetID: 2, CreatedAt: followedAt.Add(-2 * time.Hour)},
			}, nil
		}
		svc := NewUserService(userRepo, followRepo, "/default.png")

		list, err := svc.Followers(context.Background(), 1, 2)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, uint(5), list[0].User.User.UserID)
		assert.Equal(t, uint(6), list[1].User.User.UserID)
		assert.Equal(t, uint(7), list[2].User.User.UserID)
		assert.Equal(t, followedAt.UnixMilli(), list[0].FollowedAt)
	})

	t.Run("drops followers that no longer resolve", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			if id == 6 {
				return nil, models.NewNotFoundError("User", id)
			}
			return &models.User{ID: id}, nil
		}
		followRepo := noopFollowRepo()
		followRepo.followersFn = func(_ context.Context, _ uint) ([]models.Follow, error) {
			return []models.Follow{
				{CurrentID: 5, TargetID: 2},
				{CurrentID: 6, TargetID: 2},
				{CurrentID: 7, TargetID: 2},
			}, nil
		}
		svc := NewUserService(userRepo, followRepo, "/default.png")

		list, err := svc.Followers(context.Background(), 1, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, uint(5), list[0].User.User.UserID)
		assert.Equal(t, uint(7), list[1].User.User.UserID)
	})

	t.Run("backend failure aborts the list", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewInternalError(assert.AnError)
		}
		followRepo := noopFollowRepo()
		followRepo.followersFn = func(_ context.Context, _ uint) ([]models.Follow, error) {
			return []models.Follow{{CurrentID: 5, TargetID: 2}}, nil
		}
		svc := NewUserService(userRepo, followRepo, "/default.png")

		_, err := svc.Followers(context.Background(), 1, 2)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeInternal, appErr.Code)
	})
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()
	svc := NewUserService(noopUserRepo(), noopFollowRepo(), "/default.png")

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID:    1,
			FirstName: strings.Repeat("x", 51),
		})
		assertValidationError(t, err)
	})

	t.Run("bio too long", func(t *testing.T) {
		t.Parallel()
		err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			UserID: 1,
			Bio:    strings.Repeat("x", 501),
		})
		assertValidationError(t, err)
	})
}

func TestUserService_SetAvatarFromURL(t *testing.T) {
	t.Parallel()

	t.Run("empty URL rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo(), "/default.png")
		err := svc.SetAvatarFromURL(context.Background(), 1, "")
		assertValidationError(t, err)
	})

	t.Run("creates image row for the URL", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		var gotImage *models.Image
		userRepo.setAvatarFn = func(_ context.Context, userID uint, image *models.Image) error {
			gotImage = image
			return nil
		}
		svc := NewUserService(userRepo, noopFollowRepo(), "/default.png")

		err := svc.SetAvatarFromURL(context.Background(), 1, "/public/images/new.webp")
		require.NoError(t, err)
		require.NotNil(t, gotImage)
		assert.Equal(t, "/public/images/new.webp", gotImage.URL)
	})
}

func TestUserService_EmailExists(t *testing.T) {
	t.Parallel()

	t.Run("invalid email rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), noopFollowRepo(), "/default.png")
		_, err := svc.EmailExists(context.Background(), "not-an-email")
		assertValidationError(t, err)
	})

	t.Run("reports repository result", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.existsByEmailFn = func(_ context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		}
		svc := NewUserService(userRepo, noopFollowRepo(), "/default.png")

		exists, err := svc.EmailExists(context.Background(), "taken@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})
}
