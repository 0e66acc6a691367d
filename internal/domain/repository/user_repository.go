package repository

import (
	"context"

	"clipstream/internal/domain/entity"
)

// UserRepository defines user-record persistence. Uniqueness of username and
// email is enforced by the store; violations surface as ErrDuplicate.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	// ApplyTotalLikesDelta adjusts the denormalized total-likes aggregate.
	// It is deliberately a separate write from the like toggle; callers
	// tolerate its failure and rely on RecountAggregates to converge.
	ApplyTotalLikesDelta(ctx context.Context, userID string, delta int) error

	// RecountAggregates recomputes total_likes and video_count from the
	// source tables and returns the corrected values.
	RecountAggregates(ctx context.Context, userID string) (totalLikes, videoCount int, err error)
}
