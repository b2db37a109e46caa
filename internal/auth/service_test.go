package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/notehive/notehive/internal/config"
	"github.com/notehive/notehive/internal/entities"
)

func setupTestService(t *testing.T) (*Service, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.User{}))

	service := NewService(db, config.Auth{
		Mode:       config.AuthModeLocal,
		BcryptCost: bcrypt.MinCost,
	})

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestCreateUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("alice", "alice@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "a-long-enough-password", user.PasswordHash)
}

func TestCreateUserValidation(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"missing username", "", "a@b.co", "a-long-enough-password", ErrUsernameRequired},
		{"missing email", "bob", "", "a-long-enough-password", ErrEmailRequired},
		{"missing password", "bob", "a@b.co", "", ErrPasswordRequired},
		{"bad username", "x", "a@b.co", "a-long-enough-password", ErrUsernameInvalid},
		{"bad email", "bob", "not-an-email", "a-long-enough-password", ErrEmailInvalid},
		{"short password", "bob", "a@b.co", "short", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateUser(tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("alice", "alice@example.com", "a-long-enough-password")
	require.NoError(t, err)

	_, err = service.CreateUser("alice", "other@example.com", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = service.CreateUser("alice2", "alice@example.com", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestAuthenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.CreateUser("alice", "alice@example.com", "a-long-enough-password")
	require.NoError(t, err)

	user, err := service.Authenticate("alice", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Email works as the identifier too
	user, err = service.Authenticate("alice@example.com", "a-long-enough-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.Authenticate("alice", "wrong-password-entirely")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = service.Authenticate("nobody", "a-long-enough-password")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenLifecycle(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.CreateUser("alice", "alice@example.com", "a-long-enough-password")
	require.NoError(t, err)

	// No token yet
	_, err = service.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err := service.GenerateToken(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	validated, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, validated.ID)

	// Only the hash is stored
	stored, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, token, stored.Token)
	assert.Equal(t, HashToken(token), stored.Token)

	// Regenerating invalidates the old token
	newToken, err := service.GenerateToken(user.ID)
	require.NoError(t, err)
	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = service.ValidateToken(newToken)
	require.NoError(t, err)

	// Revoking invalidates everything
	require.NoError(t, service.RevokeToken(user.ID))
	_, err = service.ValidateToken(newToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateTokenUnknownUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.GenerateToken(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHasUsers(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	has, err := service.HasUsers()
	require.NoError(t, err)
	assert.False(t, has)

	_, err = service.CreateUser("alice", "alice@example.com", "a-long-enough-password")
	require.NoError(t, err)

	has, err = service.HasUsers()
	require.NoError(t, err)
	assert.True(t, has)
}
