package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name     string
		email    string
		password string
		role     UserRole
		wantErr  bool
	}{
		{
			name:     "valid user",
			email:    "alex@example.com",
			password: "secret123",
			role:     RoleEditor,
		},
		{
			name:     "email is normalized",
			email:    "  Alex@Example.COM ",
			password: "secret123",
			role:     RoleViewer,
		},
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "secret123",
			role:     RoleEditor,
			wantErr:  true,
		},
		{
			name:     "password too short",
			email:    "alex@example.com",
			password: "ab1",
			role:     RoleEditor,
			wantErr:  true,
		},
		{
			name:     "password without numbers",
			email:    "alex@example.com",
			password: "onlyletters",
			role:     RoleEditor,
			wantErr:  true,
		},
		{
			name:     "invalid role",
			email:    "alex@example.com",
			password: "secret123",
			role:     UserRole("superuser"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tenantID, tt.email, tt.password, tt.role)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tenantID, user.TenantID)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.email)), user.Email)
			assert.Equal(t, tt.role, user.Role)
			assert.Equal(t, UserStatusPending, user.Status)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.True(t, user.VerifyPassword(tt.password))

			events := user.GetDomainEvents()
			require.Len(t, events, 1)
			assert.Equal(t, EventTypeUserCreated, events[0].EventType())
		})
	}
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "alex@example.com", "secret123", RoleAdmin)
	require.NoError(t, err)

	err = user.ChangePassword("wrong", "newsecret1")
	require.Error(t, err)
	assert.True(t, user.VerifyPassword("secret123"))

	require.NoError(t, user.ChangePassword("secret123", "newsecret1"))
	assert.True(t, user.VerifyPassword("newsecret1"))
	assert.False(t, user.VerifyPassword("secret123"))
}

func TestUser_LockUnlock(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "alex@example.com", "secret123", RoleEditor)
	require.NoError(t, err)

	require.NoError(t, user.Lock(time.Hour))
	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())

	require.NoError(t, user.Unlock())
	assert.False(t, user.IsLocked())
	assert.True(t, user.CanLogin())
	assert.Zero(t, user.FailedAttempts)
}

func TestUser_RecordLoginFailure(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "alex@example.com", "secret123", RoleEditor)
	require.NoError(t, err)

	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.True(t, user.RecordLoginFailure(3, time.Hour))
	assert.True(t, user.IsLocked())
}

func TestUser_RecordLoginSuccess(t *testing.T) {
	user, err := NewActiveUser(uuid.New(), "alex@example.com", "secret123", RoleEditor)
	require.NoError(t, err)
	user.FailedAttempts = 2

	user.RecordLoginSuccess()

	assert.Zero(t, user.FailedAttempts)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)
}

func TestUser_CanLogin(t *testing.T) {
	pending, err := NewUser(uuid.New(), "alex@example.com", "secret123", RoleViewer)
	require.NoError(t, err)
	assert.False(t, pending.CanLogin())

	require.NoError(t, pending.Activate())
	assert.True(t, pending.CanLogin())

	require.NoError(t, pending.Deactivate())
	assert.False(t, pending.CanLogin())
}

func TestUser_CanEdit(t *testing.T) {
	tests := []struct {
		role    UserRole
		canEdit bool
	}{
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			user, err := NewActiveUser(uuid.New(), "alex@example.com", "secret123", tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.canEdit, user.CanEdit())
		})
	}
}
