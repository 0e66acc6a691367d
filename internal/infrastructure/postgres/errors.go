package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"clipstream/internal/domain/repository"
)

// translateErr maps pgx errors onto the store-level sentinels. Foreign-key
// violations and malformed uuid text both mean the referenced record does not
// exist from the caller's point of view.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return repository.ErrDuplicate
		case "23503": // foreign_key_violation
			return repository.ErrNotFound
		case "22P02": // invalid_text_representation (bad uuid in path param)
			return repository.ErrNotFound
		}
	}
	return err
}
