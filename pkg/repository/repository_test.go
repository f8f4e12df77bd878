package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/JinTanba/aitimes/pkg/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	driverErr := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), errDuplicate},
		{"other pg error", &pgconn.PgError{Code: "23503"}, nil},
		{"driver error", driverErr, driverErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if tt.want == nil {
				// Unmapped errors pass through unchanged.
				if !errors.Is(got, tt.err) {
					t.Errorf("MapError() = %v, want passthrough of %v", got, tt.err)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
