package repository

import (
	"context"

	"clipstream/internal/domain/entity"
)

// LikeToggle reports the outcome of a like toggle: the new membership state,
// the new like count of the video, and the video owner whose total-likes
// aggregate still needs the matching delta.
type LikeToggle struct {
	Liked     bool
	LikeCount int
	OwnerID   string
	Delta     int
}

// EngagementRepository covers likes, comments, and the view counter.
//
// ToggleLike must be atomic with respect to concurrent toggles on the same
// video: each user's membership flips exactly once per call and like_count
// always equals the number of like rows.
type EngagementRepository interface {
	ToggleLike(ctx context.Context, videoID, userID string) (LikeToggle, error)

	// AddComment appends to the video's comment log, assigning id and
	// created_at, and returns the comment enriched with author fields.
	AddComment(ctx context.Context, videoID, userID, text string) (*entity.CommentView, error)
	GetComment(ctx context.Context, videoID, commentID string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, videoID, commentID string) error
	ListComments(ctx context.Context, videoID string) ([]entity.CommentView, error)

	// IncrementView adds one to the view counter and returns the new value.
	// At-least-once, anonymous; no viewer deduplication.
	IncrementView(ctx context.Context, videoID string) (int, error)
}
