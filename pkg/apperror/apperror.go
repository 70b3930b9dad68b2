package apperror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error is an application error carrying a stable machine-readable code and
// the HTTP status it maps to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithErr returns a copy of the error with an underlying cause attached.
// The cause is logged but never rendered to clients.
func (e *Error) WithErr(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New builds an application error with its code, HTTP status and message.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// The set of errors the service can surface. Codes are part of the API
// contract and must stay stable.
var (
	ErrTokenMissing  = New("TOKEN_MISSING", http.StatusUnauthorized, "missing authorization token")
	ErrTokenInvalid  = New("TOKEN_INVALID", http.StatusUnauthorized, "invalid authorization token")
	ErrTokenExpired  = New("TOKEN_EXPIRED", http.StatusUnauthorized, "authorization token has expired")
	ErrUserNotFound  = New("USER_NOT_FOUND", http.StatusUnauthorized, "user not found or inactive")
	ErrTenantMissing = New("TENANT_NOT_FOUND", http.StatusNotFound, "tenant not found")
	ErrTenantOff     = New("TENANT_INACTIVE", http.StatusForbidden, "tenant is deactivated")
	ErrBadLogin      = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrForbidden     = New("INSUFFICIENT_PERMISSIONS", http.StatusForbidden, "insufficient permissions for this operation")
	ErrNotFound      = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrSubdomainUsed = New("SUBDOMAIN_EXISTS", http.StatusConflict, "subdomain is already taken")
	ErrEmailUsed     = New("EMAIL_EXISTS", http.StatusConflict, "email is already registered in this tenant")
	ErrDomainUsed    = New("DOMAIN_EXISTS", http.StatusConflict, "domain is already taken")
	ErrDeleteSelf    = New("CANNOT_DELETE_SELF", http.StatusBadRequest, "users cannot delete their own account")
	ErrDisableSelf   = New("CANNOT_DEACTIVATE_SELF", http.StatusBadRequest, "users cannot deactivate their own account")
	ErrDeleteOwnTen  = New("CANNOT_DELETE_OWN_TENANT", http.StatusBadRequest, "admins cannot delete their own tenant")
	ErrInternal      = New("INTERNAL_ERROR", http.StatusInternalServerError, "an unexpected error occurred")
)

// Validation builds a VALIDATION_ERROR with a request-specific message.
func Validation(message string) *Error {
	return New("VALIDATION_ERROR", http.StatusBadRequest, message)
}

// FromDB translates a persistence failure at the data-access boundary into
// the matching taxonomy entry. Unique violations become the given conflict,
// missing rows become NOT_FOUND, anything else is an internal error wrapping
// the cause.
func FromDB(err error, onConflict *Error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if onConflict != nil {
				return onConflict.WithErr(err)
			}
			return New("CONFLICT", http.StatusConflict, "resource already exists").WithErr(err)
		case "23503": // foreign_key_violation
			return Validation("referenced resource does not exist").WithErr(err)
		}
	}
	return ErrInternal.WithErr(err)
}

// IsUniqueViolation reports whether err is a datastore unique-constraint
// failure on the named constraint. An empty name matches any constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
