package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/CaseVault_Go/internal/domain"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: PgErrorCodeSerializationFailure}, true},
		{"deadlock detected", &pgconn.PgError{Code: PgErrorCodeDeadlockDetected}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: PgErrorCodeUniqueViolation}, false},
		{"check violation", &pgconn.PgError{Code: "23514"}, false},
		{"plain error", errors.New("schema mismatch"), false},
		{"wrapped serialization failure", fmt.Errorf("query: %w", &pgconn.PgError{Code: PgErrorCodeSerializationFailure}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestStoreErr(t *testing.T) {
	transient := storeErr("failed to debit balance", &pgconn.PgError{Code: PgErrorCodeDeadlockDetected})
	assert.ErrorIs(t, transient, domain.ErrTransientStore)
	assert.Contains(t, transient.Error(), "failed to debit balance")

	fatal := storeErr("failed to debit balance", errors.New("schema mismatch"))
	assert.NotErrorIs(t, fatal, domain.ErrTransientStore)
	assert.Contains(t, fatal.Error(), "schema mismatch")
}
