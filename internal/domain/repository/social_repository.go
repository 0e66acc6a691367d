package repository

import (
	"context"

	"clipstream/internal/domain/entity"
)

// SocialGraphRepository maintains follow edges. An edge is a single row keyed
// by (follower, followee), so the follower/following views can never disagree.
type SocialGraphRepository interface {
	// Follow inserts the edge. ErrNotFound when the followee does not exist,
	// ErrDuplicate when the edge is already present.
	Follow(ctx context.Context, followerID, followeeID string) error

	// Unfollow removes the edge. ErrNotFound when the followee does not
	// exist; removing an absent edge is a successful no-op.
	Unfollow(ctx context.Context, followerID, followeeID string) error

	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	Followers(ctx context.Context, userID string) ([]entity.UserSummary, error)
	Following(ctx context.Context, userID string) ([]entity.UserSummary, error)
}
