package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
)

// Booking errors
var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingCompleted = errors.New("completed booking cannot be cancelled")
)

// Package errors
var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrPackageUnavailable = errors.New("package is not available")
)

// Inquiry errors
var (
	ErrInquiryNotFound = errors.New("inquiry not found")
)
