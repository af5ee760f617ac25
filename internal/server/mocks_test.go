package server

import (
	"context"

	"threadnest/internal/config"
	"threadnest/internal/models"
	"threadnest/internal/repository"
	"threadnest/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, firstName, lastName, bio string) error {
	args := m.Called(ctx, id, firstName, lastName, bio)
	return args.Error(0)
}

func (m *MockUserRepository) SetAvatar(ctx context.Context, userID uint, image *models.Image) error {
	args := m.Called(ctx, userID, image)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveAvatar(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Toggle(ctx context.Context, currentID, targetID uint) (bool, error) {
	args := m.Called(ctx, currentID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, currentID, targetID uint) (bool, error) {
	args := m.Called(ctx, currentID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FollowerCount(ctx context.Context, targetID uint) (int64, error) {
	args := m.Called(ctx, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID uint) ([]models.Follow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID uint) ([]models.Follow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

// MockThreadRepository is a mock of the ThreadRepository interface
type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) Create(ctx context.Context, thread *models.Thread, imageURLs []string, mainID *uint) error {
	args := m.Called(ctx, thread, imageURLs, mainID)
	return args.Error(0)
}

func (m *MockThreadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockThreadRepository) UpdateContent(ctx context.Context, id uint, text string, threadType models.ThreadType) error {
	args := m.Called(ctx, id, text, threadType)
	return args.Error(0)
}

func (m *MockThreadRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockThreadRepository) ImageURLs(ctx context.Context, threadID uint) ([]string, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockThreadRepository) FavoriteCount(ctx context.Context, threadID uint) (int64, error) {
	args := m.Called(ctx, threadID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThreadRepository) IsFavorited(ctx context.Context, userID, threadID uint) (bool, error) {
	args := m.Called(ctx, userID, threadID)
	return args.Bool(0), args.Error(1)
}

func (m *MockThreadRepository) ReplyCount(ctx context.Context, mainID uint, kind models.ThreadType) (int64, error) {
	args := m.Called(ctx, mainID, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThreadRepository) ReplyIDs(ctx context.Context, mainID uint) ([]uint, error) {
	args := m.Called(ctx, mainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockThreadRepository) RandomUnseenIDs(ctx context.Context, viewerID uint, limit int) ([]uint, error) {
	args := m.Called(ctx, viewerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockThreadRepository) SetFavorite(ctx context.Context, userID, threadID uint, favorited bool) error {
	args := m.Called(ctx, userID, threadID, favorited)
	return args.Error(0)
}

func (m *MockThreadRepository) ToggleWatch(ctx context.Context, userID, threadID uint) (bool, error) {
	args := m.Called(ctx, userID, threadID)
	return args.Bool(0), args.Error(1)
}

var (
	_ repository.UserRepository   = (*MockUserRepository)(nil)
	_ repository.FollowRepository = (*MockFollowRepository)(nil)
	_ repository.ThreadRepository = (*MockThreadRepository)(nil)
)

// testDeps bundles the mocks behind a Server wired with real services.
type testDeps struct {
	userRepo   *MockUserRepository
	followRepo *MockFollowRepository
	threadRepo *MockThreadRepository
}

// newTestServer builds a Server over mock repositories and a fiber app with
// the full route table registered, without the global middleware stack.
func newTestServer() (*Server, *fiber.App, *testDeps) {
	deps := &testDeps{
		userRepo:   new(MockUserRepository),
		followRepo: new(MockFollowRepository),
		threadRepo: new(MockThreadRepository),
	}

	s := &Server{
		config: &config.Config{
			JWTSecret:     "test_secret",
			Env:           "test",
			DefaultAvatar: "https://cdn.example.com/default-avatar.webp",
		},
		userRepo:   deps.userRepo,
		followRepo: deps.followRepo,
		threadRepo: deps.threadRepo,
	}
	s.userService = service.NewUserService(deps.userRepo, deps.followRepo, s.config.DefaultAvatar)
	s.threadService = service.NewThreadService(deps.threadRepo, s.userService)
	s.codeService = service.NewCodeService(nil, &recordingMailer{})

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, deps
}

// newCodeServiceForTest builds a code service on the in-process fallback
// store (no Redis) with the given mailer.
func newCodeServiceForTest(mailer *recordingMailer) *service.CodeService {
	return service.NewCodeService(nil, mailer)
}

// recordingMailer captures the last code handed to it instead of sending mail.
type recordingMailer struct {
	lastEmail string
	lastCode  string
}

func (m *recordingMailer) SendConfirmationCode(_ context.Context, email, code string) error {
	m.lastEmail = email
	m.lastCode = code
	return nil
}
