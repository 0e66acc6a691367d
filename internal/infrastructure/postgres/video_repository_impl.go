package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

// feedSelect joins each video with its uploader and aggregates the like
// authors in like order, so a single query yields fully enriched feed rows.
const feedSelect = `
	SELECT v.id, v.title, v.description, v.video_url, v.uploaded_by, v.tags,
	       v.like_count, v.view_count, v.created_at, v.updated_at,
	       u.username, u.avatar,
	       COALESCE(l.ids, '{}'), COALESCE(l.usernames, '{}'), COALESCE(l.avatars, '{}')
	FROM videos v
	JOIN users u ON u.id = v.uploaded_by
	LEFT JOIN LATERAL (
		SELECT array_agg(vl.user_id::text ORDER BY vl.created_at) AS ids,
		       array_agg(lu.username ORDER BY vl.created_at) AS usernames,
		       array_agg(lu.avatar ORDER BY vl.created_at) AS avatars
		FROM video_likes vl
		JOIN users lu ON lu.id = vl.user_id
		WHERE vl.video_id = v.id
	) l ON TRUE`

func scanFeedVideo(row pgx.Row) (*entity.FeedVideo, error) {
	fv := &entity.FeedVideo{}
	var likeIDs, likeNames, likeAvatars []string
	if err := row.Scan(&fv.ID, &fv.Title, &fv.Description, &fv.VideoURL, &fv.UploadedBy, &fv.Tags,
		&fv.LikeCount, &fv.ViewCount, &fv.CreatedAt, &fv.UpdatedAt,
		&fv.Uploader.Username, &fv.Uploader.Avatar,
		&likeIDs, &likeNames, &likeAvatars); err != nil {
		return nil, translateErr(err)
	}
	fv.Uploader.ID = fv.UploadedBy
	fv.LikedBy = make([]entity.UserSummary, 0, len(likeIDs))
	for i := range likeIDs {
		fv.LikedBy = append(fv.LikedBy, entity.UserSummary{
			ID:       likeIDs[i],
			Username: likeNames[i],
			Avatar:   likeAvatars[i],
		})
	}
	return fv, nil
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translateErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if v.Tags == nil {
		v.Tags = []string{}
	}
	row := tx.QueryRow(ctx, `
		INSERT INTO videos (title, description, video_url, uploaded_by, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, like_count, view_count, created_at, updated_at
	`, v.Title, v.Description, v.VideoURL, v.UploadedBy, v.Tags)
	if err := row.Scan(&v.ID, &v.LikeCount, &v.ViewCount, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return translateErr(err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET video_count = video_count + 1 WHERE id = $1
	`, v.UploadedBy); err != nil {
		return translateErr(err)
	}

	return translateErr(tx.Commit(ctx))
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.FeedVideo, error) {
	return scanFeedVideo(r.pool.QueryRow(ctx, feedSelect+` WHERE v.id = $1`, id))
}

func (r *VideoRepository) Delete(ctx context.Context, id string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", translateErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerID, videoURL string
	var likeCount int
	err = tx.QueryRow(ctx, `
		SELECT uploaded_by, video_url, like_count FROM videos WHERE id = $1 FOR UPDATE
	`, id).Scan(&ownerID, &videoURL, &likeCount)
	if err != nil {
		return "", translateErr(err)
	}

	// Likes and comments go with the video via ON DELETE CASCADE.
	if _, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id); err != nil {
		return "", translateErr(err)
	}

	// Settle the owner's aggregates: the deleted video's likes no longer
	// count toward total_likes.
	if _, err := tx.Exec(ctx, `
		UPDATE users SET video_count = video_count - 1, total_likes = total_likes - $2
		WHERE id = $1
	`, ownerID, likeCount); err != nil {
		return "", translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", translateErr(err)
	}
	return videoURL, nil
}

func (r *VideoRepository) Feed(ctx context.Context, q repository.FeedQuery) ([]entity.FeedVideo, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		where = append(where, fmt.Sprintf(
			`(v.title ILIKE %[1]s OR v.description ILIKE %[1]s OR EXISTS (SELECT 1 FROM unnest(v.tags) AS t WHERE t ILIKE %[1]s))`, p))
	}
	if q.Tag != "" {
		p := arg("%" + q.Tag + "%")
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM unnest(v.tags) AS t WHERE t ILIKE %s)`, p))
	}
	if q.OwnerIDs != nil {
		where = append(where, fmt.Sprintf(`v.uploaded_by = ANY(%s)`, arg(q.OwnerIDs)))
	}

	sql := feedSelect
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY " + orderClause(q.Sort)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	videos := make([]entity.FeedVideo, 0)
	for rows.Next() {
		fv, err := scanFeedVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *fv)
	}
	return videos, translateErr(rows.Err())
}

// orderClause always ends on (created_at, id) so equal primary keys sort
// deterministically within one execution.
func orderClause(sort repository.FeedSort) string {
	switch sort {
	case repository.SortPopular:
		return "v.view_count DESC, v.created_at DESC, v.id DESC"
	case repository.SortLikes:
		return "v.like_count DESC, v.created_at DESC, v.id DESC"
	default:
		return "v.created_at DESC, v.id DESC"
	}
}

func (r *VideoRepository) TrendingTags(ctx context.Context, limit int) ([]repository.TagCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.tag, COUNT(*) AS cnt
		FROM videos v, LATERAL unnest(v.tags) AS t(tag)
		GROUP BY t.tag
		ORDER BY cnt DESC, t.tag ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	tags := make([]repository.TagCount, 0, limit)
	for rows.Next() {
		var tc repository.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, translateErr(err)
		}
		tags = append(tags, tc)
	}
	return tags, translateErr(rows.Err())
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
