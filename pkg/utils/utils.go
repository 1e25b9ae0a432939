// Package utils provides common validation helpers.
package utils

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail returns an error if the given email address is invalid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}

	return nil
}

// ValidateName returns an error if the given entity name is invalid.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}

	return nil
}
