package auth

import (
	"testing"

	"mailsift/spam-api/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, d.AutoMigrate(&model.User{}, &model.ClassificationLog{}))
	return d
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.NoError(t, s.Register("alice", "correct horse battery"))

	user, err := s.Authenticate("alice", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, user.ID)
	require.Empty(t, user.PasswordHash, "authenticate must not expose the stored hash")
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.NoError(t, s.Register("alice", "right"))

	_, err := s.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s := NewService(setupTestDB(t))

	_, err := s.Authenticate("nobody", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.NoError(t, s.Register("alice", "pw1"))
	require.ErrorIs(t, s.Register("alice", "pw2"), ErrUsernameTaken)

	var count int64
	require.NoError(t, s.DB.Model(&model.User{}).Where("username = ?", "alice").Count(&count).Error)
	require.EqualValues(t, 1, count, "duplicate register must not add a second row")
}

func TestRegisterMissingFields(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.ErrorIs(t, s.Register("", "pw"), ErrMissingFields)
	require.ErrorIs(t, s.Register("   ", "pw"), ErrMissingFields)
	require.ErrorIs(t, s.Register("bob", ""), ErrMissingFields)
}

func TestRegisterTrimsUsername(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.NoError(t, s.Register("  carol  ", "pw"))

	user, err := s.Authenticate("carol", "pw")
	require.NoError(t, err)
	require.Equal(t, "carol", user.Username)
}

func TestLookup(t *testing.T) {
	s := NewService(setupTestDB(t))

	require.NoError(t, s.Register("dave", "pw"))

	user, err := s.Lookup("dave")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "dave", user.Username)
	require.Empty(t, user.PasswordHash)

	missing, err := s.Lookup("nobody")
	require.NoError(t, err)
	require.Nil(t, missing)
}
