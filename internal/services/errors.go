package services

import "errors"

var (
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPromptTooLong   = errors.New("prompt too long")
	ErrSessionNotFound = errors.New("intake session not found")
)
