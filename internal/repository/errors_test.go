package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("first: %w", gorm.ErrRecordNotFound)), ErrNotFound)

	dup := translate(&pgconn.PgError{Code: "23505", ConstraintName: "idx_assignments_one_active"})
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.Contains(t, dup.Error(), "idx_assignments_one_active")

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, fk, translate(fk))

	other := errors.New("conn closed")
	assert.Equal(t, other, translate(other))
}

func TestPage(t *testing.T) {
	cases := []struct{ page, limit, wantPage, wantLimit int }{
		{0, 0, 1, 20},
		{-3, 5, 1, 5},
		{4, 500, 4, 100},
		{2, 100, 2, 100},
	}
	for _, tc := range cases {
		p, l := Page(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, p)
		assert.Equal(t, tc.wantLimit, l)
	}
	assert.Equal(t, 40, offset(3, 20))
}
