package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
)

func TestFollowCreatesSymmetricEdges(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	require.NoError(t, env.profiles.Follow(ctx, alice.ID, bob.ID))

	bobView, err := env.profiles.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobView.Followers, 1)
	assert.Equal(t, "alice", bobView.Followers[0].Username)
	assert.Empty(t, bobView.Following)

	aliceView, err := env.profiles.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceView.Following, 1)
	assert.Equal(t, "bob", aliceView.Following[0].Username)
	assert.Empty(t, aliceView.Followers)
}

func TestFollowSelfRejected(t *testing.T) {
	env := newEnv(t)
	alice := env.seedUser(t, "alice")

	err := env.profiles.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, application.ErrSelfFollow)
}

func TestFollowTwiceConflicts(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	require.NoError(t, env.profiles.Follow(ctx, alice.ID, bob.ID))
	err := env.profiles.Follow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, application.ErrAlreadyFollowing)
}

func TestFollowUnknownUser(t *testing.T) {
	env := newEnv(t)
	alice := env.seedUser(t, "alice")

	err := env.profiles.Follow(context.Background(), alice.ID, "nope")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	require.NoError(t, env.profiles.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, env.profiles.Unfollow(ctx, alice.ID, bob.ID))
	// Removing an absent edge succeeds as long as the target exists.
	require.NoError(t, env.profiles.Unfollow(ctx, alice.ID, bob.ID))

	err := env.profiles.Unfollow(ctx, alice.ID, "nope")
	assert.ErrorIs(t, err, application.ErrUserNotFound)

	bobView, err := env.profiles.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobView.Followers)
}

func TestFollowByUsernameResolvesTarget(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	require.NoError(t, env.profiles.FollowByUsername(ctx, alice.ID, "bob"))
	err := env.profiles.FollowByUsername(ctx, alice.ID, "ghost")
	assert.ErrorIs(t, err, application.ErrUserNotFound)

	require.NoError(t, env.profiles.UnfollowByUsername(ctx, alice.ID, "bob"))
}

func TestGetByUsernameIncludesVideosAndCounters(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	env.seedVideo(t, alice.ID, "a1")
	env.seedVideo(t, alice.ID, "a2")

	view, err := env.profiles.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, view.User.VideoCount)
	assert.Empty(t, view.User.Password)
	require.Len(t, view.Videos, 2)
	assert.Equal(t, "a2", view.Videos[0].Title)

	_, err = env.profiles.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	bio := "hoops and highlights"
	u, err := env.profiles.UpdateProfile(ctx, alice.ID, application.UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, bio, u.Bio)

	name := "alice2"
	u, err = env.profiles.UpdateProfile(ctx, alice.ID, application.UpdateProfileInput{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
	assert.Equal(t, bio, u.Bio)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	name := "bob"
	_, err := env.profiles.UpdateProfile(ctx, alice.ID, application.UpdateProfileInput{Username: &name})
	assert.ErrorIs(t, err, application.ErrUsernameTaken)
}
