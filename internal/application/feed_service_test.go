package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipstream/internal/application"
	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

func TestParseFeedSort(t *testing.T) {
	assert.Equal(t, repository.SortPopular, application.ParseFeedSort("popular"))
	assert.Equal(t, repository.SortLikes, application.ParseFeedSort(" LIKES "))
	assert.Equal(t, repository.SortNewest, application.ParseFeedSort("newest"))
	assert.Equal(t, repository.SortNewest, application.ParseFeedSort(""))
	assert.Equal(t, repository.SortNewest, application.ParseFeedSort("garbage"))
}

func TestGlobalFeedSearchMatchesTitleDescriptionAndTags(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	env.seedVideo(t, alice.ID, "Dunk of the year", "basketball")
	byDescription := &entity.Video{Title: "warmup", Description: "slam dunk practice", UploadedBy: alice.ID, Tags: []string{"gym"}}
	require.NoError(t, env.store.Videos().Create(ctx, byDescription))
	env.seedVideo(t, alice.ID, "skate trick", "dunks")
	env.seedVideo(t, alice.ID, "cooking pasta", "food")

	videos, err := env.feeds.GlobalFeed(ctx, "dunk", "", repository.SortNewest)
	require.NoError(t, err)
	titles := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, v.Title)
	}
	assert.Contains(t, titles, "Dunk of the year")
	assert.Contains(t, titles, "warmup")
	assert.Contains(t, titles, "skate trick")
	assert.NotContains(t, titles, "cooking pasta")
}

func TestGlobalFeedSortNewestIsDefaultOrder(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	env.seedVideo(t, alice.ID, "oldest")
	env.seedVideo(t, alice.ID, "middle")
	env.seedVideo(t, alice.ID, "newest")

	videos, err := env.feeds.GlobalFeed(ctx, "", "", repository.SortNewest)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "newest", videos[0].Title)
	assert.Equal(t, "oldest", videos[2].Title)
}

func TestGlobalFeedSortPopularByViews(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	quiet := env.seedVideo(t, alice.ID, "quiet")
	loud := env.seedVideo(t, alice.ID, "loud")
	for i := 0; i < 5; i++ {
		_, err := env.engagement.IncrementView(ctx, loud.ID)
		require.NoError(t, err)
	}
	_, err := env.engagement.IncrementView(ctx, quiet.ID)
	require.NoError(t, err)

	videos, err := env.feeds.GlobalFeed(ctx, "", "", repository.SortPopular)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "loud", videos[0].Title)
}

func TestGlobalFeedSortLikesUsesLikeCount(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	carol := env.seedUser(t, "carol")

	plain := env.seedVideo(t, alice.ID, "plain")
	liked := env.seedVideo(t, alice.ID, "liked")
	for _, fan := range []string{bob.ID, carol.ID} {
		_, err := env.engagement.ToggleLike(ctx, liked.ID, fan)
		require.NoError(t, err)
	}
	_ = plain

	videos, err := env.feeds.GlobalFeed(ctx, "", "", repository.SortLikes)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "liked", videos[0].Title)
	assert.Equal(t, 2, videos[0].LikeCount)
}

func TestGlobalFeedTagAndSearchCombine(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	env.seedVideo(t, alice.ID, "dunk contest", "basketball")
	env.seedVideo(t, alice.ID, "dunk fail", "funny")
	env.seedVideo(t, alice.ID, "three pointer", "basketball")

	videos, err := env.feeds.GlobalFeed(ctx, "dunk", "basketball", repository.SortNewest)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "dunk contest", videos[0].Title)
}

func TestFollowingFeedEmptyWithoutFollows(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	env.seedVideo(t, bob.ID, "bob clip")

	videos, err := env.feeds.FollowingFeed(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestFollowingFeedShowsOnlyFollowees(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")
	carol := env.seedUser(t, "carol")

	env.seedVideo(t, bob.ID, "bob clip")
	env.seedVideo(t, carol.ID, "carol clip")

	require.NoError(t, env.profiles.Follow(ctx, alice.ID, bob.ID))

	videos, err := env.feeds.FollowingFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "bob clip", videos[0].Title)
	assert.Equal(t, "bob", videos[0].Uploader.Username)
}

func TestProfileFeedNewestFirst(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	bob := env.seedUser(t, "bob")

	env.seedVideo(t, alice.ID, "a1")
	env.seedVideo(t, bob.ID, "b1")
	env.seedVideo(t, alice.ID, "a2")

	videos, err := env.feeds.ProfileFeed(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "a2", videos[0].Title)
	assert.Equal(t, "a1", videos[1].Title)
}

func TestTrendingTagsTopTen(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	env.seedVideo(t, alice.ID, "v1", "basketball", "dunk")
	env.seedVideo(t, alice.ID, "v2", "basketball")
	env.seedVideo(t, alice.ID, "v3", "food")

	tags, err := env.feeds.TrendingTags(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Equal(t, "basketball", tags[0].Tag)
	assert.Equal(t, 2, tags[0].Count)
}
