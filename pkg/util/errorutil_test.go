package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapToExpectedStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("product", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("admins only"), "FORBIDDEN", http.StatusForbidden},
		// Duplicates map to 400, matching the public API contract.
		{NewConflict("email already registered", nil), "CONFLICT", http.StatusBadRequest},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		var domainErr *DomainError
		require.ErrorAs(t, tc.err, &domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	err := NewNotFound("user", nil)
	assert.EqualError(t, err, "user not found")
}

func TestInternalErrorHidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "internal server error", domainErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestToDomainErrorPassthrough(t *testing.T) {
	t.Parallel()

	original := NewForbidden("admins only")
	converted := ToDomainError(original)
	assert.Equal(t, "FORBIDDEN", converted.Code)
}

func TestToDomainErrorWrapsNoRows(t *testing.T) {
	t.Parallel()

	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorUnknownBecomesInternal(t *testing.T) {
	t.Parallel()

	converted := ToDomainError(errors.New("something odd"))
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ToDomainError(nil))
}
