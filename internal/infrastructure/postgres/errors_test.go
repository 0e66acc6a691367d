package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"clipstream/internal/domain/repository"
)

func TestTranslateErr(t *testing.T) {
	assert.NoError(t, translateErr(nil))

	assert.ErrorIs(t, translateErr(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, translateErr(&pgconn.PgError{Code: "23505"}), repository.ErrDuplicate)
	assert.ErrorIs(t, translateErr(&pgconn.PgError{Code: "23503"}), repository.ErrNotFound)
	assert.ErrorIs(t, translateErr(&pgconn.PgError{Code: "22P02"}), repository.ErrNotFound)

	boom := errors.New("connection reset")
	assert.Equal(t, boom, translateErr(boom))
}
