package application

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
	"clipstream/pkg/helpers"
)

const trendingTagsKey = "videos:trending-tags"

// FeedService composes the three feed variants from the video store and the
// social graph.
type FeedService struct {
	Videos      repository.VideoRepository
	Social      repository.SocialGraphRepository
	Redis       *redis.Client
	Logger      *logrus.Logger
	TrendingTTL time.Duration
}

func NewFeedService(videos repository.VideoRepository, social repository.SocialGraphRepository, rdb *redis.Client, logger *logrus.Logger, trendingTTL time.Duration) *FeedService {
	return &FeedService{Videos: videos, Social: social, Redis: rdb, Logger: logger, TrendingTTL: trendingTTL}
}

// ParseFeedSort resolves the wire sort value once at the boundary.
// Unrecognized values fall back to newest.
func ParseFeedSort(s string) repository.FeedSort {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "popular":
		return repository.SortPopular
	case "likes":
		return repository.SortLikes
	default:
		return repository.SortNewest
	}
}

// GlobalFeed returns all videos matching the optional search term and tag
// filter (AND-combined), ordered by the requested sort.
func (s *FeedService) GlobalFeed(ctx context.Context, search, tag string, sort repository.FeedSort) ([]entity.FeedVideo, error) {
	return s.Videos.Feed(ctx, repository.FeedQuery{
		Search: strings.TrimSpace(search),
		Tag:    strings.TrimSpace(tag),
		Sort:   sort,
	})
}

// FollowingFeed returns videos from the caller's followees, newest first.
// An empty following set yields an empty sequence, not an error.
func (s *FeedService) FollowingFeed(ctx context.Context, userID string) ([]entity.FeedVideo, error) {
	ids, err := s.Social.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []entity.FeedVideo{}, nil
	}
	return s.Videos.Feed(ctx, repository.FeedQuery{
		Sort:     repository.SortNewest,
		OwnerIDs: ids,
	})
}

// ProfileFeed returns every video owned by the given user, newest first.
func (s *FeedService) ProfileFeed(ctx context.Context, ownerID string) ([]entity.FeedVideo, error) {
	return s.Videos.Feed(ctx, repository.FeedQuery{
		Sort:     repository.SortNewest,
		OwnerIDs: []string{ownerID},
	})
}

// TrendingTags returns the top tags by video count, cached in Redis.
func (s *FeedService) TrendingTags(ctx context.Context) ([]repository.TagCount, error) {
	if s.Redis != nil {
		var cached []repository.TagCount
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, trendingTagsKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	tags, err := s.Videos.TrendingTags(ctx, 10)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := s.TrendingTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		if err := helpers.RedisSetJSON(ctx, s.Redis, trendingTagsKey, tags, ttl); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", trendingTagsKey).Warn("trending tags cache write failed")
		}
	}
	return tags, nil
}
