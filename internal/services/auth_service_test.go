package services

import (
	"testing"

	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/bookshelfapp/bookshelf-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct-horse",
		Name:     "Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "reader@example.com", resp.User.Email)

	login, err := svc.Login(&dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(&dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	req := &dto.RegisterRequest{Email: "reader@example.com", Password: "correct-horse"}

	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_EnsureUserIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	sub := "google-sub-1"
	first, err := svc.EnsureUser("reader@example.com", "Reader", "https://example.com/a.png", models.ProviderGoogle, &sub)
	require.NoError(t, err)

	// Second ensure returns the same record unchanged, even with different
	// attributes (no attribute refresh).
	second, err := svc.EnsureUser("reader@example.com", "Renamed", "https://example.com/b.png", models.ProviderGoogle, &sub)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Reader", second.Name)
	assert.Equal(t, "https://example.com/a.png", second.AvatarURL)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "reader@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "reader@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The consumed token is revoked.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	resp, err := svc.Register(&dto.RegisterRequest{Email: "reader@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_DemoLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	svc := NewAuthService(db, cfg)

	// Demo user not provisioned yet.
	_, err := svc.DemoLogin()
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, NewProvisionService(db).ensureDemoUser())

	resp, err := svc.DemoLogin()
	require.NoError(t, err)
	assert.Equal(t, models.DemoUserID, resp.User.ID)
	assert.Equal(t, models.DemoUserEmail, resp.User.Email)

	cfg.DemoMode = false
	_, err = svc.DemoLogin()
	assert.ErrorIs(t, err, ErrDemoDisabled)
}

func TestAuthService_LoginPasswordlessAccountRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, newTestConfig())

	sub := "google-sub-1"
	_, err := svc.EnsureUser("reader@example.com", "Reader", "", models.ProviderGoogle, &sub)
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "reader@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
