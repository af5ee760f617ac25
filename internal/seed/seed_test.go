package seed

import (
	"testing"

	"threadnest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dryRunFactory() *Factory {
	return NewFactory(nil, SeedOptions{DryRun: true, SkipBcrypt: true})
}

func TestFactoryCreateUser_DryRun(t *testing.T) {
	f := dryRunFactory()

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.Email)
	assert.Equal(t, "password123", user.Password)
}

func TestFactoryCreateUser_Overrides(t *testing.T) {
	f := dryRunFactory()

	user, err := f.CreateUser(func(u *models.User) {
		u.Username = "fixed_name"
		u.Bio = "fixed bio"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed_name", user.Username)
	assert.Equal(t, "fixed bio", user.Bio)
}

func TestFactoryCreateThread_DryRun(t *testing.T) {
	f := dryRunFactory()

	user, err := f.CreateUser()
	require.NoError(t, err)

	post, err := f.CreateThread(user, models.ThreadTypePost, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ThreadTypePost, post.Type)
	assert.Equal(t, user.ID, post.UserID)
	assert.NotEmpty(t, post.Text)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestFactoryCreateThread_UniqueIDs(t *testing.T) {
	f := dryRunFactory()

	user, err := f.CreateUser()
	require.NoError(t, err)

	a, err := f.CreateThread(user, models.ThreadTypePost, nil)
	require.NoError(t, err)
	b, err := f.CreateThread(user, models.ThreadTypePost, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFactoryEdges_DryRun(t *testing.T) {
	f := dryRunFactory()

	alice, err := f.CreateUser()
	require.NoError(t, err)
	bob, err := f.CreateUser()
	require.NoError(t, err)
	post, err := f.CreateThread(bob, models.ThreadTypePost, nil)
	require.NoError(t, err)

	assert.NoError(t, f.CreateFollow(alice, bob))
	assert.NoError(t, f.CreateFavorite(alice, post))
	assert.NoError(t, f.CreateWatch(alice, post))
}
