package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/logger"
)

func newAuthService(env *testEnv) AuthService {
	cfg := &config.Config{JWTSecretKey: "test-secret", AccessTokenTTLSec: 3600}
	return NewAuthService(cfg, logger.NewNop(), env.userRepo, env.tokenRepo)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Email: "Alice@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEqual(t, "correct-horse", user.Password) // stored hashed

	resp, err := svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	parsedID, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, parsedID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "bob@example.com", Password: "password-one"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "BOB@example.com", Password: "password-two"})
	require.Error(t, err)
	require.Equal(t, 400, apierr.From(err).Status)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "carol@example.com", Password: "right-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "carol@example.com", Password: "wrong-password"})
	require.Equal(t, 401, apierr.From(err).Status)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.Equal(t, 401, apierr.From(err).Status)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.ParseToken("not-a-jwt")
	require.Equal(t, 401, apierr.From(err).Status)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "dave@example.com", Password: "some-password"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, LoginRequest{Email: "dave@example.com", Password: "some-password"})
	require.NoError(t, err)

	other := NewAuthService(&config.Config{JWTSecretKey: "different-secret", AccessTokenTTLSec: 3600}, logger.NewNop(), env.userRepo, env.tokenRepo)
	_, err = other.ParseToken(resp.AccessToken)
	require.Equal(t, 401, apierr.From(err).Status)
}
