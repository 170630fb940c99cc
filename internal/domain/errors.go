package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSelfAction         = errors.New("action cannot target your own account")
	ErrInternalError      = errors.New("internal server error")
)
