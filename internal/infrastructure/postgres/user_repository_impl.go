package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clipstream/internal/domain/entity"
	"clipstream/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, email, password, avatar, bio, video_count, total_likes, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Avatar, &u.Bio,
		&u.VideoCount, &u.TotalLikes, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password, avatar, bio, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, video_count, total_likes, created_at, updated_at
	`, u.Username, u.Email, u.Password, u.Avatar, u.Bio, u.IsAdmin)

	if err := row.Scan(&u.ID, &u.VideoCount, &u.TotalLikes, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, email = $2, password = $3, avatar = $4, bio = $5, updated_at = $6
		WHERE id = $7
	`, u.Username, u.Email, u.Password, u.Avatar, u.Bio, u.UpdatedAt, u.ID)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ApplyTotalLikesDelta(ctx context.Context, userID string, delta int) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET total_likes = total_likes + $2 WHERE id = $1
	`, userID, delta)
	if err != nil {
		return translateErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) RecountAggregates(ctx context.Context, userID string) (int, int, error) {
	var totalLikes, videoCount int
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET total_likes = (
			SELECT COUNT(*) FROM video_likes vl
			JOIN videos v ON v.id = vl.video_id
			WHERE v.uploaded_by = users.id
		),
		video_count = (
			SELECT COUNT(*) FROM videos WHERE uploaded_by = users.id
		)
		WHERE id = $1
		RETURNING total_likes, video_count
	`, userID).Scan(&totalLikes, &videoCount)
	if err != nil {
		return 0, 0, translateErr(err)
	}
	return totalLikes, videoCount, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
