package service

import (
	"context"
	"testing"

	"threadnest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// userRepoStub implements repository.UserRepository with overridable funcs.
type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateProfileFn func(ctx context.Context, id uint, firstName, lastName, bio string) error
	setAvatarFn     func(ctx context.Context, userID uint, image *models.Image) error
	removeAvatarFn  func(ctx context.Context, userID uint) error
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			return nil, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn:        func(ctx context.Context, user *models.User) error { return nil },
		updateProfileFn: func(ctx context.Context, id uint, firstName, lastName, bio string) error { return nil },
		setAvatarFn:     func(ctx context.Context, userID uint, image *models.Image) error { return nil },
		removeAvatarFn:  func(ctx context.Context, userID uint) error { return nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, firstName, lastName, bio string) error {
	return s.updateProfileFn(ctx, id, firstName, lastName, bio)
}
func (s *userRepoStub) SetAvatar(ctx context.Context, userID uint, image *models.Image) error {
	return s.setAvatarFn(ctx, userID, image)
}
func (s *userRepoStub) RemoveAvatar(ctx context.Context, userID uint) error {
	return s.removeAvatarFn(ctx, userID)
}

// followRepoStub implements repository.FollowRepository.
type followRepoStub struct {
	toggleFn        func(ctx context.Context, currentID, targetID uint) (bool, error)
	isFollowingFn   func(ctx context.Context, currentID, targetID uint) (bool, error)
	followerCountFn func(ctx context.Context, targetID uint) (int64, error)
	followersFn     func(ctx context.Context, userID uint) ([]models.Follow, error)
	followingFn     func(ctx context.Context, userID uint) ([]models.Follow, error)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:        func(ctx context.Context, currentID, targetID uint) (bool, error) { return false, nil },
		isFollowingFn:   func(ctx context.Context, currentID, targetID uint) (bool, error) { return false, nil },
		followerCountFn: func(ctx context.Context, targetID uint) (int64, error) { return 0, nil },
		followersFn:     func(ctx context.Context, userID uint) ([]models.Follow, error) { return nil, nil },
		followingFn:     func(ctx context.Context, userID uint) ([]models.Follow, error) { return nil, nil },
	}
}

func (s *followRepoStub) Toggle(ctx context.Context, currentID, targetID uint) (bool, error) {
	return s.toggleFn(ctx, currentID, targetID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, currentID, targetID uint) (bool, error) {
	return s.isFollowingFn(ctx, currentID, targetID)
}
func (s *followRepoStub) FollowerCount(ctx context.Context, targetID uint) (int64, error) {
	return s.followerCountFn(ctx, targetID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.followingFn(ctx, userID)
}

// threadRepoStub implements repository.ThreadRepository.
type threadRepoStub struct {
	createFn          func(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error
	getByIDFn         func(ctx context.Context, id uint) (*models.Thread, error)
	updateContentFn   func(ctx context.Context, id uint, text string, threadType models.ThreadType) error
	deleteFn          func(ctx context.Context, id uint) error
	imageURLsFn       func(ctx context.Context, threadID uint) ([]string, error)
	favoriteCountFn   func(ctx context.Context, threadID uint) (int64, error)
	isFavoritedFn     func(ctx context.Context, userID, threadID uint) (bool, error)
	replyCountFn      func(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error)
	replyIDsFn        func(ctx context.Context, mainID uint) ([]uint, error)
	randomUnseenIDsFn func(ctx context.Context, viewerID uint, limit int) ([]uint, error)
	setFavoriteFn     func(ctx context.Context, userID, threadID uint, favorited bool) error
	toggleWatchFn     func(ctx context.Context, userID, threadID uint) (bool, error)
}

func noopThreadRepo() *threadRepoStub {
	return &threadRepoStub{
		createFn: func(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error {
			return nil
		},
		getByIDFn: func(ctx context.Context, id uint) (*models.Thread, error) {
			return &models.Thread{ID: id, Type: models.ThreadTypePost}, nil
		},
		updateContentFn: func(ctx context.Context, id uint, text string, threadType models.ThreadType) error {
			return nil
		},
		deleteFn:        func(ctx context.Context, id uint) error { return nil },
		imageURLsFn:     func(ctx context.Context, threadID uint) ([]string, error) { return nil, nil },
		favoriteCountFn: func(ctx context.Context, threadID uint) (int64, error) { return 0, nil },
		isFavoritedFn:   func(ctx context.Context, userID, threadID uint) (bool, error) { return false, nil },
		replyCountFn: func(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error) {
			return 0, nil
		},
		replyIDsFn: func(ctx context.Context, mainID uint) ([]uint, error) { return nil, nil },
		randomUnseenIDsFn: func(ctx context.Context, viewerID uint, limit int) ([]uint, error) {
			return nil, nil
		},
		setFavoriteFn: func(ctx context.Context, userID, threadID uint, favorited bool) error { return nil },
		toggleWatchFn: func(ctx context.Context, userID, threadID uint) (bool, error) { return false, nil },
	}
}

func (s *threadRepoStub) Create(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error {
	return s.createFn(ctx, thread, imageURLs, mainID)
}
func (s *threadRepoStub) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	return s.getByIDFn(ctx, id)
}
func (s *threadRepoStub) UpdateContent(ctx context.Context, id uint, text string, threadType models.ThreadType) error {
	return s.updateContentFn(ctx, id, text, threadType)
}
func (s *threadRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *threadRepoStub) ImageURLs(ctx context.Context, threadID uint) ([]string, error) {
	return s.imageURLsFn(ctx, threadID)
}
func (s *threadRepoStub) FavoriteCount(ctx context.Context, threadID uint) (int64, error) {
	return s.favoriteCountFn(ctx, threadID)
}
func (s *threadRepoStub) IsFavorited(ctx context.Context, userID, threadID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, threadID)
}
func (s *threadRepoStub) ReplyCount(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error) {
	return s.replyCountFn(ctx, mainID, kind)
}
func (s *threadRepoStub) ReplyIDs(ctx context.Context, mainID uint) ([]uint, error) {
	return s.replyIDsFn(ctx, mainID)
}
func (s *threadRepoStub) RandomUnseenIDs(ctx context.Context, viewerID uint, limit int) ([]uint, error) {
	return s.randomUnseenIDsFn(ctx, viewerID, limit)
}
func (s *threadRepoStub) SetFavorite(ctx context.Context, userID, threadID uint, favorited bool) error {
	return s.setFavoriteFn(ctx, userID, threadID, favorited)
}
func (s *threadRepoStub) ToggleWatch(ctx context.Context, userID, threadID uint) (bool, error) {
	return s.toggleWatchFn(ctx, userID, threadID)
}

// userViewerStub implements userViewer for thread reader tests.
type userViewerStub struct {
	getUserViewFn func(ctx context.Context, viewerID, targetID uint) (*models.UserView, error)
}

func (s *userViewerStub) GetUserView(ctx context.Context, viewerID, targetID uint) (*models.UserView, error) {
	return s.getUserViewFn(ctx, viewerID, targetID)
}
