//go:build unit
// +build unit

package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var errThingNotFound = errors.New("thing not found")

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(t *testing.T, got error)
	}{
		{
			name:  "nil",
			err:   nil,
			check: func(t *testing.T, got error) { assert.NoError(t, got) },
		},
		{
			name:  "record not found",
			err:   fmt.Errorf("query: %w", gorm.ErrRecordNotFound),
			check: func(t *testing.T, got error) { assert.ErrorIs(t, got, errThingNotFound) },
		},
		{
			name:  "postgres unique violation",
			err:   &pgconn.PgError{Code: "23505"},
			check: func(t *testing.T, got error) { assert.ErrorIs(t, got, ErrDuplicate) },
		},
		{
			name:  "postgres other error",
			err:   &pgconn.PgError{Code: "23503"},
			check: func(t *testing.T, got error) { assert.NotErrorIs(t, got, ErrDuplicate) },
		},
		{
			name: "sqlite unique violation",
			err: sqlite3.Error{
				Code:         sqlite3.ErrConstraint,
				ExtendedCode: sqlite3.ErrConstraintUnique,
			},
			check: func(t *testing.T, got error) { assert.ErrorIs(t, got, ErrDuplicate) },
		},
		{
			name:  "gorm duplicated key",
			err:   gorm.ErrDuplicatedKey,
			check: func(t *testing.T, got error) { assert.ErrorIs(t, got, ErrDuplicate) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, translateError(tt.err, errThingNotFound))
		})
	}
}
