package service

import (
	"errors" // Sentinel errors
	"fmt"    // Error wrapping
)

// Base error kinds. Handlers map these to HTTP statuses; nothing in this
// package is ever retried.
var (
	ErrValidation = errors.New("validation failed") // Bad cross-field input
	ErrConflict   = errors.New("conflict")          // Uniqueness violation
	ErrNotFound   = errors.New("not found")         // Lookup by id missed
)

// Specific errors, each wrapping its base kind so callers can match either.
var (
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", ErrConflict)
	ErrGroupNameTaken     = fmt.Errorf("%w: group name is already in use", ErrConflict)
	ErrUnknownRole        = fmt.Errorf("%w: unknown role name", ErrValidation)
	ErrGroupRequired      = fmt.Errorf("%w: group id is required", ErrValidation)
	ErrWrongPassword      = fmt.Errorf("%w: current password is incorrect", ErrValidation)
	ErrInvalidGroupType   = fmt.Errorf("%w: invalid group type", ErrValidation)
	ErrForeignGroup       = fmt.Errorf("%w: target group is outside the requester's scope", ErrValidation)
	ErrGroupHasMembers    = fmt.Errorf("%w: group still has members", ErrValidation)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("group %w", ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid credentials") // Login failure, deliberately unspecific
)
