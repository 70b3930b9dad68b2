package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDBRecordNotFound(t *testing.T) {
	got := FromDB(gorm.ErrRecordNotFound, nil)
	assert.Equal(t, ErrNotFound, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestFromDBUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_tenants_subdomain"}

	got := FromDB(pgErr, ErrSubdomainUsed)
	require.NotNil(t, got)
	assert.Equal(t, "SUBDOMAIN_EXISTS", got.Code)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.ErrorIs(t, got, pgErr)
}

func TestFromDBUniqueViolationWrapped(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505"}
	wrapped := fmt.Errorf("create user: %w", pgErr)

	got := FromDB(wrapped, ErrEmailUsed)
	require.NotNil(t, got)
	assert.Equal(t, "EMAIL_EXISTS", got.Code)
}

func TestFromDBForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}

	got := FromDB(pgErr, nil)
	require.NotNil(t, got)
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.Status)
}

func TestFromDBUnexpected(t *testing.T) {
	cause := errors.New("connection refused")

	got := FromDB(cause, nil)
	require.NotNil(t, got)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, cause)
}

func TestFromDBNil(t *testing.T) {
	assert.Nil(t, FromDB(nil, nil))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email_tenant"}

	assert.True(t, IsUniqueViolation(pgErr, "idx_users_email_tenant"))
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.False(t, IsUniqueViolation(pgErr, "idx_tenants_subdomain"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}

func TestWithErrDoesNotMutateOriginal(t *testing.T) {
	cause := errors.New("cause")
	wrapped := ErrBadLogin.WithErr(cause)

	assert.Nil(t, ErrBadLogin.Err)
	assert.Equal(t, ErrBadLogin.Code, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestValidation(t *testing.T) {
	got := Validation("email is required")
	assert.Equal(t, "VALIDATION_ERROR", got.Code)
	assert.Equal(t, http.StatusBadRequest, got.Status)
	assert.Equal(t, "email is required", got.Message)
}
