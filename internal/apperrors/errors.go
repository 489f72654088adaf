package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response code. Uniqueness conflicts are reported as 400.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type services hand back to handlers.
// Detail is safe to show to clients; Err is for logs only.
type AppError struct {
	Kind   Kind
	Detail string
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Detail)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) HTTPStatus() int { return e.Kind.HTTPStatus() }

func New(kind Kind, detail string) *AppError {
	return &AppError{Kind: kind, Detail: detail}
}

func Wrap(err error, kind Kind, detail string) *AppError {
	return &AppError{Kind: kind, Detail: detail, Err: err}
}

func BadRequest(detail string) *AppError   { return New(KindBadRequest, detail) }
func Conflict(detail string) *AppError     { return New(KindConflict, detail) }
func Unauthorized(detail string) *AppError { return New(KindUnauthorized, detail) }
func Forbidden(detail string) *AppError    { return New(KindForbidden, detail) }
func NotFound(detail string) *AppError     { return New(KindNotFound, detail) }

// Internal hides err behind a generic detail.
func Internal(err error) *AppError {
	return Wrap(err, KindInternal, "Internal server error")
}

// Validation is a BadRequest carrying per-field failures.
func Validation(fields map[string]string) *AppError {
	return &AppError{Kind: KindBadRequest, Detail: "Validation failed", Fields: fields}
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Shared details.
var (
	ErrIncorrectCredentials = Unauthorized("Incorrect username or password")
	ErrInactiveUser         = BadRequest("Inactive user")
	ErrNotAuthenticated     = Unauthorized("Not authenticated")
	ErrInvalidCredentials   = Unauthorized("Could not validate credentials")
	ErrUserNotFound         = NotFound("User not found")
	ErrNotEnoughPrivileges  = Forbidden("Not enough privileges")
	ErrUsernameTaken        = Conflict("Username already registered")
	ErrEmailTaken           = Conflict("Email already registered")
)
