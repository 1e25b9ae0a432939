// Package access defines the permission hierarchy used across Craft Plan.
package access

import (
	"encoding"
	"errors"
)

// Level is the level of access granted on a project.
type Level int

const (
	// NoAccess does not allow access to the project.
	NoAccess Level = iota

	// Viewer allows read-only access to the project.
	Viewer

	// Editor allows editing project content such as costs, files, and notes.
	Editor

	// Admin allows managing stages, project settings, and sharing.
	Admin
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case NoAccess:
		return "no-access"
	case Viewer:
		return "viewer"
	case Editor:
		return "editor"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// AtLeast reports whether the level grants at least the required level.
func (l Level) AtLeast(required Level) bool {
	return l >= required
}

// ParseLevel parses a level string.
func ParseLevel(s string) Level {
	switch s {
	case "no-access":
		return NoAccess
	case "viewer":
		return Viewer
	case "editor":
		return Editor
	case "admin":
		return Admin
	default:
		return Level(-1)
	}
}

var (
	_ encoding.TextMarshaler   = Level(0)
	_ encoding.TextUnmarshaler = (*Level)(nil)
)

// ErrInvalidLevel is returned when an invalid access level is provided.
var ErrInvalidLevel = errors.New("invalid access level")

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	lvl := ParseLevel(string(text))
	if lvl < 0 {
		return ErrInvalidLevel
	}

	*l = lvl

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() (text []byte, err error) {
	return []byte(l.String()), nil
}
