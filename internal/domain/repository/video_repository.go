package repository

import (
	"context"

	"clipstream/internal/domain/entity"
)

// FeedSort is the closed set of sort orders a feed query may request.
// Handlers resolve the wire value once via application.ParseFeedSort; no
// stringly-typed sort selector crosses this boundary.
type FeedSort int

const (
	SortNewest FeedSort = iota
	SortPopular
	SortLikes
)

// FeedQuery describes one feed execution. Search and Tag are both optional
// and combine as an AND; matching is case-insensitive substring. OwnerIDs
// restricts results to those uploaders (following feed, profile feed).
type FeedQuery struct {
	Search   string
	Tag      string
	Sort     FeedSort
	OwnerIDs []string
}

// TagCount is a trending-tag aggregation row.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// VideoRepository persists video records and executes feed queries.
// Ordering is deterministic: the requested sort key, then created_at and id
// descending as tie-breaks.
type VideoRepository interface {
	// Create stores the video and increments the owner's video_count in the
	// same transaction.
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id string) (*entity.FeedVideo, error)

	// Delete removes the video together with its likes and comments, and
	// settles the owner's video_count and total_likes in the same
	// transaction. It returns the stored media URL so the caller can release
	// the binary behind it.
	Delete(ctx context.Context, id string) (videoURL string, err error)

	Feed(ctx context.Context, q FeedQuery) ([]entity.FeedVideo, error)
	TrendingTags(ctx context.Context, limit int) ([]TagCount, error)
}
