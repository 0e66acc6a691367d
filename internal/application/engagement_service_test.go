package application_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
)

func TestToggleLikeFlipsState(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "dunk highlights")

	res, err := env.engagement.ToggleLike(ctx, video.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.Equal(t, 1, res.LikesCount)

	owner, err := env.store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, owner.TotalLikes)

	res, err = env.engagement.ToggleLike(ctx, video.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, res.IsLiked)
	assert.Equal(t, 0, res.LikesCount)

	owner, err = env.store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, owner.TotalLikes)
}

func TestToggleLikePairLeavesNoTrace(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "first clip")

	_, err := env.engagement.ToggleLike(ctx, video.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.engagement.ToggleLike(ctx, video.ID, bob.ID)
	require.NoError(t, err)

	fv, err := env.videos.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fv.LikeCount)
	assert.Empty(t, fv.LikedBy)
}

func TestToggleLikeConcurrentDistinctUsers(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner")
	video := env.seedVideo(t, owner.ID, "viral clip")

	const n = 25
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = env.seedUser(t, fmt.Sprintf("fan%d", i)).ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := env.engagement.ToggleLike(ctx, video.ID, userID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	fv, err := env.videos.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, n, fv.LikeCount)
	assert.Len(t, fv.LikedBy, n)

	ownerAfter, err := env.store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, n, ownerAfter.TotalLikes)
}

func TestToggleLikeMissingVideo(t *testing.T) {
	env := newEnv(t)
	bob := env.seedUser(t, "bob")

	_, err := env.engagement.ToggleLike(context.Background(), "nope", bob.ID)
	assert.ErrorIs(t, err, application.ErrVideoNotFound)
}

func TestReconcileUserTotalsFixesDrift(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	video := env.seedVideo(t, alice.ID, "clip")

	_, err := env.engagement.ToggleLike(ctx, video.ID, bob.ID)
	require.NoError(t, err)

	// Simulate a lost aggregate write.
	require.NoError(t, env.store.Users().ApplyTotalLikesDelta(ctx, alice.ID, 5))

	totals, err := env.engagement.ReconcileUserTotals(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, totals.TotalLikes)
	assert.Equal(t, 1, totals.VideoCount)

	owner, err := env.store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, owner.TotalLikes)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	env := newEnv(t)
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	_, err := env.engagement.AddComment(context.Background(), video.ID, alice.ID, "   ")
	assert.ErrorIs(t, err, application.ErrEmptyComment)
}

func TestAddCommentMissingVideo(t *testing.T) {
	env := newEnv(t)
	alice := env.seedUser(t, "alice")

	_, err := env.engagement.AddComment(context.Background(), "nope", alice.ID, "hi")
	assert.ErrorIs(t, err, application.ErrVideoNotFound)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner")
	author := env.seedUser(t, "author")
	stranger := env.seedUser(t, "stranger")
	admin := env.seedAdmin(t, "admin")
	video := env.seedVideo(t, owner.ID, "clip")

	newComment := func() string {
		cv, err := env.engagement.AddComment(ctx, video.ID, author.ID, "nice one")
		require.NoError(t, err)
		return cv.ID
	}

	// A stranger cannot delete.
	id := newComment()
	err := env.engagement.DeleteComment(ctx, ident(stranger), video.ID, id)
	assert.ErrorIs(t, err, application.ErrNotAllowed)

	// The author can.
	require.NoError(t, env.engagement.DeleteComment(ctx, ident(author), video.ID, id))

	// The video owner can.
	id = newComment()
	require.NoError(t, env.engagement.DeleteComment(ctx, ident(owner), video.ID, id))

	// An admin can.
	id = newComment()
	require.NoError(t, env.engagement.DeleteComment(ctx, ident(admin), video.ID, id))

	// Deleting twice reports the comment gone.
	err = env.engagement.DeleteComment(ctx, ident(author), video.ID, id)
	assert.ErrorIs(t, err, application.ErrCommentNotFound)
}

func TestListCommentsOrderedOldestFirst(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	for _, text := range []string{"first", "second", "third"} {
		_, err := env.engagement.AddComment(ctx, video.ID, alice.ID, text)
		require.NoError(t, err)
	}

	comments, err := env.engagement.ListComments(ctx, video.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "third", comments[2].Text)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestIncrementViewCountsEveryCall(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	video := env.seedVideo(t, alice.ID, "clip")

	for i := 1; i <= 3; i++ {
		count, err := env.engagement.IncrementView(ctx, video.ID)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	_, err := env.engagement.IncrementView(ctx, "nope")
	assert.ErrorIs(t, err, application.ErrVideoNotFound)
}
