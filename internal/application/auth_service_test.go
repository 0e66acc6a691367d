package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
)

func register(t *testing.T, env *testEnv, username, password string) {
	t.Helper()
	_, err := env.auth.Register(context.Background(), application.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
}

func TestRegisterHashesPassword(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	u, err := env.auth.Register(ctx, application.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.Password)

	stored, err := env.store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	register(t, env, "alice", "supersecret")

	_, err := env.auth.Register(ctx, application.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, application.ErrUsernameTaken)

	_, err = env.auth.Register(ctx, application.RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	register(t, env, "alice", "supersecret")

	u, pair, err := env.auth.Login(ctx, "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.Password)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func TestLoginWrongCredentials(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	register(t, env, "alice", "supersecret")

	_, _, err := env.auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, _, err = env.auth.Login(ctx, "ghost@example.com", "supersecret")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	register(t, env, "alice", "supersecret")

	_, pair, err := env.auth.Login(ctx, "alice@example.com", "supersecret")
	require.NoError(t, err)

	u, next, err := env.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, next.AccessToken)
	assert.NotEqual(t, pair.SessionID, next.SessionID)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	env := newEnv(t)

	_, _, err := env.auth.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
}

func TestMeReturnsAccountWithoutPassword(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	u, err := env.auth.Me(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.Password)

	_, err = env.auth.Me(ctx, "nope")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}
