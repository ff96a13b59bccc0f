package services

import (
	"context"
	"testing"
	"time"

	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/jwt"
	"github.com/mame12b/lyan-restaurant-sub000/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func register(t *testing.T, svc *AuthService) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Abebe Kebede",
		Email:    "abebe@example.com",
		Phone:    "+251911000000",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)

	resp := register(t, svc)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Password is stored hashed
	stored, err := userRepo.GetByEmail(context.Background(), "abebe@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", stored.Password)
	assert.True(t, password.Verify("supersecret1", stored.Password))

	// Duplicate email is rejected, case-insensitively
	_, err = svc.Register(context.Background(), &RegisterInput{
		Name:     "Someone Else",
		Email:    "ABEBE@Example.com",
		Password: "otherpassword",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	register(t, svc)

	resp, err := svc.Login(context.Background(), &LoginInput{
		Email:    "Abebe@Example.COM",
		Password: "supersecret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "abebe@example.com", resp.User.Email)

	// Access token carries the identity claims
	claims, err := jwt.ValidateAccessToken(resp.AccessToken, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "abebe@example.com", claims.Email)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "abebe@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Deactivated accounts cannot sign in
	user, _ := userRepo.GetByEmail(context.Background(), "abebe@example.com")
	user.IsActive = false
	_, err = svc.Login(context.Background(), &LoginInput{Email: "abebe@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_Refresh_Rotation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	resp := register(t, svc)

	pair, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, resp.RefreshToken, pair.RefreshToken)

	// The presented token was revoked by the rotation
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The fresh one still works
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	resp := register(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
	_, err := svc.Refresh(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Empty token is a no-op
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthService_LogoutAll(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	resp := register(t, svc)

	second, err := svc.Login(context.Background(), &LoginInput{
		Email:    "abebe@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(context.Background(), resp.User.ID))

	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	resp := register(t, svc)

	// Unknown email succeeds silently with no token
	token, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = svc.ForgotPassword(context.Background(), "abebe@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Wrong token is rejected
	err = svc.ResetPassword(context.Background(), "bogus-token", "newpassword1")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "newpassword1"))

	// Old sessions are revoked and the new password works
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "abebe@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), &LoginInput{Email: "abebe@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	// The token is single-use
	err = svc.ResetPassword(context.Background(), token, "anotherpassword")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	svc, userRepo, _ := newAuthFixture(t)
	register(t, svc)

	token, err := svc.ForgotPassword(context.Background(), "abebe@example.com")
	require.NoError(t, err)

	user, _ := userRepo.GetByEmail(context.Background(), "abebe@example.com")
	expired := time.Now().Add(-time.Minute)
	user.ResetTokenExp = &expired

	err = svc.ResetPassword(context.Background(), token, "newpassword1")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
