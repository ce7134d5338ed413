package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akwareg/akwareg-backend/internal/app/models"
	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/pkg/apperrors"
	"github.com/akwareg/akwareg-backend/internal/pkg/auth"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	svc := NewAuthService(users, tokens, newTestJWTService(), zerolog.Nop())
	return svc, users, tokens
}

func registerOwner(t *testing.T, svc *AuthService, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    email,
		Password: "secret123",
		FullName: "Ime Bassey",
		Phone:    "+2348000000001",
		Role:     "property_owner",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp := registerOwner(t, svc, "ime@example.com")
	assert.Equal(t, "ime@example.com", resp.User.Email)
	assert.Equal(t, string(models.RolePropertyOwner), resp.User.Role)
	assert.False(t, resp.User.IsVerified)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ime@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestAuthServiceRegisterRejectsAdminRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "boss@example.com",
		Password: "secret123",
		FullName: "Boss",
		Phone:    "+2348000000002",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registerOwner(t, svc, "ime@example.com")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "ime@example.com",
		Password: "secret456",
		FullName: "Someone Else",
		Phone:    "+2348000000003",
		Role:     "property_owner",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthServiceRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	cases := []string{"short1", "onlyletters", "12345678"}
	for _, password := range cases {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Email:    "weak@example.com",
			Password: password,
			FullName: "Weak",
			Phone:    "+2348000000004",
			Role:     "property_owner",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword, "password %q should be rejected", password)
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registerOwner(t, svc, "ime@example.com")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ime@example.com", Password: "wrongpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newTestAuthService()
	ctx := context.Background()

	resp := registerOwner(t, svc, "ime@example.com")
	oldRefresh := resp.Token.RefreshToken

	rotated, err := svc.RefreshToken(ctx, oldRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, oldRefresh, rotated.RefreshToken)

	// The presented token is revoked and cannot be replayed
	assert.True(t, tokens.tokens[oldRefresh].revoked)
	_, err = svc.RefreshToken(ctx, oldRefresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthServiceLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	resp := registerOwner(t, svc, "ime@example.com")

	require.NoError(t, svc.Logout(ctx, resp.Token.RefreshToken))
	require.NoError(t, svc.Logout(ctx, "no-such-token"))

	_, err := svc.RefreshToken(ctx, resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthServiceGetProfile(t *testing.T) {
	svc, _, _ := newTestAuthService()

	resp := registerOwner(t, svc, "ime@example.com")

	profile, err := svc.GetProfile(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ime@example.com", profile.Email)

	_, err = svc.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
