// Package usecase implements the business logic for the account feature.
package usecase

import (
	"errors"
	"fmt"
)

// Validation errors. The request is missing something the operation needs.
var (
	// ErrMissingFields is returned when a required scalar field is empty.
	ErrMissingFields = errors.New("something is missing")

	// ErrPhotoRequired is returned when registration has no profile photo.
	ErrPhotoRequired = errors.New("profile photo is required")

	// ErrResumeRequired is returned when a profile update has no resume file.
	ErrResumeRequired = errors.New("resume file is required")

	// ErrInvalidRole is returned when the role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")
)

var (
	// ErrEmailAlreadyExists is returned when another account already uses the email.
	ErrEmailAlreadyExists = errors.New("user already exists with this email")

	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so callers cannot tell which accounts exist.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrRoleMismatch is returned when the password matched but the requested
	// role differs from the stored one.
	ErrRoleMismatch = errors.New("account doesn't exist with current role")

	// ErrStaleAccount is returned when the account changed between being
	// loaded and being saved.
	ErrStaleAccount = errors.New("account was modified concurrently")

	// ErrAccountNotFound is returned when an account cannot be found by email or ID.
	ErrAccountNotFound = errors.New("user not found")
)

// UpstreamError wraps a failure of an external collaborator such as the
// media store. Its message carries the cause.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err means the request itself was incomplete.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrPhotoRequired) ||
		errors.Is(err, ErrResumeRequired) ||
		errors.Is(err, ErrInvalidRole)
}

// IsClientError reports whether err should be answered with a 4xx status.
func IsClientError(err error) bool {
	return IsValidation(err) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrRoleMismatch) ||
		errors.Is(err, ErrStaleAccount) ||
		errors.Is(err, ErrAccountNotFound)
}
