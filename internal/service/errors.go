package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrValidation       = errors.New("validation error")
	ErrNotConfigured    = errors.New("telegram bot token or chat ID not configured")
	ErrRateLimited      = errors.New("rate limited")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// DefaultDownstreamDescription is reported when Telegram rejects a message without a description
const DefaultDownstreamDescription = "Telegram API error"

// DownstreamError is returned when the Telegram API answers with ok=false
type DownstreamError struct {
	StatusCode  int
	ErrorCode   int
	Description string
}

func (e *DownstreamError) Error() string {
	if e.Description == "" {
		return DefaultDownstreamDescription
	}
	return e.Description
}

// FieldError names the submission field that failed validation
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
