package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest, CodeValidation},
		{"wrapped unauthorized", fmt.Errorf("gate: %w", NewUnauthorized("Unauthorized")), http.StatusUnauthorized, CodeUnauthorized},
		{"no rows", pgx.ErrNoRows, http.StatusNotFound, CodeNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "companies_pkey"}, http.StatusConflict, CodeConflict},
		{"fk violation", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest, CodeValidation},
		{"not null violation", &pgconn.PgError{Code: "23502"}, http.StatusBadRequest, CodeValidation},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError, CodeInternal},
		{"plain", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
			assert.Equal(t, tt.wantCode, de.Code)
		})
	}
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestInternalErrorHidesCause(t *testing.T) {
	de := ToDomainError(errors.New("password=secret"))
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorContains(t, de.Unwrap(), "password=secret")
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x", nil)))
	assert.False(t, IsValidation(NewNotFound("company", nil)))
	assert.True(t, IsNotFound(NewNotFound("company", nil)))
	assert.True(t, IsNotFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("boom")))
}
