package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type EngagementRepository struct {
	pool *pgxpool.Pool
}

func NewEngagementRepository(pool *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{pool: pool}
}

// ToggleLike flips the caller's membership in the video's like set and keeps
// like_count equal to the row count, all inside one transaction. The video
// row is locked first, so concurrent toggles on the same video serialize and
// each one computes from fresh state.
func (r *EngagementRepository) ToggleLike(ctx context.Context, videoID, userID string) (repository.LikeToggle, error) {
	var out repository.LikeToggle

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return out, translateErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		SELECT uploaded_by FROM videos WHERE id = $1 FOR UPDATE
	`, videoID).Scan(&out.OwnerID)
	if err != nil {
		return out, translateErr(err)
	}

	res, err := tx.Exec(ctx, `
		DELETE FROM video_likes WHERE video_id = $1 AND user_id = $2
	`, videoID, userID)
	if err != nil {
		return out, translateErr(err)
	}

	if res.RowsAffected() > 0 {
		out.Liked = false
		out.Delta = -1
	} else {
		if _, err := tx.Exec(ctx, `
			INSERT INTO video_likes (video_id, user_id) VALUES ($1, $2)
		`, videoID, userID); err != nil {
			return out, translateErr(err)
		}
		out.Liked = true
		out.Delta = 1
	}

	err = tx.QueryRow(ctx, `
		UPDATE videos SET like_count = like_count + $2 WHERE id = $1 RETURNING like_count
	`, videoID, out.Delta).Scan(&out.LikeCount)
	if err != nil {
		return out, translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return out, translateErr(err)
	}
	return out, nil
}

func (r *EngagementRepository) AddComment(ctx context.Context, videoID, userID, text string) (*entity.CommentView, error) {
	cv := &entity.CommentView{}
	cv.VideoID = videoID
	cv.UserID = userID
	cv.Text = text
	cv.Author.ID = userID

	// The join against videos makes a missing video surface as no rows
	// instead of a foreign-key violation.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (video_id, user_id, text)
		SELECT v.id, $2, $3 FROM videos v WHERE v.id = $1
		RETURNING id, created_at
	`, videoID, userID, text).Scan(&cv.ID, &cv.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT username, avatar FROM users WHERE id = $1
	`, userID).Scan(&cv.Author.Username, &cv.Author.Avatar)
	if err != nil {
		return nil, translateErr(err)
	}
	return cv, nil
}

func (r *EngagementRepository) GetComment(ctx context.Context, videoID, commentID string) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, video_id, user_id, text, created_at
		FROM comments WHERE id = $2 AND video_id = $1
	`, videoID, commentID).Scan(&c.ID, &c.VideoID, &c.UserID, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return c, nil
}

func (r *EngagementRepository) DeleteComment(ctx context.Context, videoID, commentID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM comments WHERE id = $2 AND video_id = $1
	`, videoID, commentID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EngagementRepository) ListComments(ctx context.Context, videoID string) ([]entity.CommentView, error) {
	var one int
	if err := r.pool.QueryRow(ctx, `SELECT 1 FROM videos WHERE id = $1`, videoID).Scan(&one); err != nil {
		return nil, translateErr(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.video_id, c.user_id, c.text, c.created_at, u.username, u.avatar
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.video_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`, videoID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := make([]entity.CommentView, 0)
	for rows.Next() {
		var cv entity.CommentView
		if err := rows.Scan(&cv.ID, &cv.VideoID, &cv.UserID, &cv.Text, &cv.CreatedAt,
			&cv.Author.Username, &cv.Author.Avatar); err != nil {
			return nil, translateErr(err)
		}
		cv.Author.ID = cv.UserID
		out = append(out, cv)
	}
	return out, translateErr(rows.Err())
}

func (r *EngagementRepository) IncrementView(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		UPDATE videos SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count
	`, videoID).Scan(&count)
	if err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

var _ repository.EngagementRepository = (*EngagementRepository)(nil)
