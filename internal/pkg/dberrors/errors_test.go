package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "programs_slug_key"})

	assert.True(t, IsDuplicateConstraintError(err, "programs_slug_key"))
	assert.False(t, IsDuplicateConstraintError(err, "categories_slug_key"))
	assert.True(t, IsDuplicateKeyError(err))
	assert.False(t, IsForeignKeyError(err))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsDuplicateKeyError(errors.New("plain")))
}
