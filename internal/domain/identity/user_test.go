package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with normalized fields", func(t *testing.T) {
		user, err := NewUser("  Ravi_K  ", "Ravi@Example.COM", "secret123", RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "ravi_k", user.Username)
		assert.Equal(t, "ravi@example.com", user.Email)
		assert.Equal(t, RoleUser, user.Role)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})

	t.Run("publishes registered event", func(t *testing.T) {
		user, err := NewUser("ravi", "ravi@example.com", "secret123", RoleStoreAdmin)
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "a@example.com", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects username with invalid characters", func(t *testing.T) {
		_, err := NewUser("ravi k", "a@example.com", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("ravi", "not-an-email", "secret123", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ravi", "ravi@example.com", "short", RoleUser)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("ravi", "ravi@example.com", "secret123", Role("superuser"))
		assert.Error(t, err)
	})
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("ravi", "ravi@example.com", "secret123", RoleUser)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("secret123"))
	assert.False(t, user.VerifyPassword("wrong-password"))
}

func TestUserSetPassword(t *testing.T) {
	user, err := NewUser("ravi", "ravi@example.com", "secret123", RoleUser)
	require.NoError(t, err)

	require.NoError(t, user.SetPassword("newsecret456"))
	assert.True(t, user.VerifyPassword("newsecret456"))
	assert.False(t, user.VerifyPassword("secret123"))

	assert.Error(t, user.SetPassword("short"))
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("ravi", "ravi@example.com", "secret123", RoleUser)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}

func TestUserRoleChecks(t *testing.T) {
	staff, _ := NewUser("ops", "ops@example.com", "secret123", RoleStaff)
	admin, _ := NewUser("shop", "shop@example.com", "secret123", RoleStoreAdmin)
	regular, _ := NewUser("ravi", "ravi@example.com", "secret123", RoleUser)

	assert.True(t, staff.IsStaff())
	assert.False(t, staff.IsStoreAdmin())
	assert.True(t, admin.IsStoreAdmin())
	assert.False(t, regular.IsStaff())
	assert.False(t, regular.IsStoreAdmin())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleStoreAdmin.IsValid())
	assert.True(t, RoleStaff.IsValid())
	assert.False(t, Role("admin").IsValid())
}
