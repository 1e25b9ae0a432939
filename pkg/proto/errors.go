package proto

import (
	"errors"
)

var (
	// ErrUnauthorized is returned when the user is not authorized to perform action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrOrgNotFound is returned when an organization is not found.
	ErrOrgNotFound = errors.New("organization not found")
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrContactNotFound is returned when a contact is not found.
	ErrContactNotFound = errors.New("contact not found")
	// ErrStageNotFound is returned when a stage is not found.
	ErrStageNotFound = errors.New("stage not found")
	// ErrShareNotFound is returned when a project share is not found.
	ErrShareNotFound = errors.New("share not found")
	// ErrTokenNotFound is returned when a token is not found.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenExpired is returned when a token is expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrLastOwner is returned when removing or demoting the sole remaining
	// owner of an organization.
	ErrLastOwner = errors.New("organization must have at least one owner")
)
