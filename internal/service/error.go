package service

import "errors"

var (
	ErrOrderMismatch         = errors.New("ORDER_ID_MISMATCH")
	ErrNoAuthorizations      = errors.New("NO_AUTHORIZATIONS")
	ErrAuthorizationNotFound = errors.New("AUTHORIZATION_NOT_FOUND")
	ErrNoCaptures            = errors.New("NO_CAPTURES")
	ErrCaptureNotFound       = errors.New("CAPTURE_NOT_FOUND")
	ErrDatabase              = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
