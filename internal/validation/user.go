// Package validation contains input validation rules shared by handlers and
// services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// usernameRegex matches the word characters mention scanning recognises, so a
// valid username is always mentionable.
var usernameRegex = regexp.MustCompile(`^\w{3,80}$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var reservedUsernames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"login":         {},
	"signup":        {},
	"logout":        {},
	"timeline":      {},
	"bookmarks":     {},
	"notifications": {},
	"messages":      {},
	"search":        {},
	"profile":       {},
	"relationships": {},
	"static":        {},
	"metrics":       {},
}

// ValidateUsername validates username format and reserved names.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-80 characters and contain only letters, numbers, and underscores")
	}
	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}
	return nil
}

// ValidateEmail validates basic email shape; deliverability is not checked.
func ValidateEmail(email string) error {
	if len(email) > 120 || !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password strength accepted at signup.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return fmt.Errorf("password must be at most 72 characters")
	}
	return nil
}
