package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

// SocialGraphRepository stores each follow relation as one row in the
// follows table, so "B follows A" can never be half-recorded.
type SocialGraphRepository struct {
	pool *pgxpool.Pool
}

func NewSocialGraphRepository(pool *pgxpool.Pool) *SocialGraphRepository {
	return &SocialGraphRepository{pool: pool}
}

func (r *SocialGraphRepository) userExists(ctx context.Context, id string) error {
	var one int
	if err := r.pool.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1`, id).Scan(&one); err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *SocialGraphRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := r.userExists(ctx, followeeID); err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`, followerID, followeeID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *SocialGraphRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := r.userExists(ctx, followeeID); err != nil {
		return err
	}
	// Removing an absent edge is a successful no-op.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2
	`, followerID, followeeID)
	return translateErr(err)
}

func (r *SocialGraphRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translateErr(err)
		}
		ids = append(ids, id)
	}
	return ids, translateErr(rows.Err())
}

func (r *SocialGraphRepository) Followers(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	return r.edgeSummaries(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM follows f JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at
	`, userID)
}

func (r *SocialGraphRepository) Following(ctx context.Context, userID string) ([]entity.UserSummary, error) {
	return r.edgeSummaries(ctx, `
		SELECT u.id, u.username, u.avatar
		FROM follows f JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at
	`, userID)
}

func (r *SocialGraphRepository) edgeSummaries(ctx context.Context, sql, userID string) ([]entity.UserSummary, error) {
	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]entity.UserSummary, 0)
	for rows.Next() {
		var s entity.UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.Avatar); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, s)
	}
	return out, translateErr(rows.Err())
}

var _ repository.SocialGraphRepository = (*SocialGraphRepository)(nil)
