package accounts

import (
	"regexp"

	"github.com/lesvieux/portal/internal/shared"
)

var (
	hasCapital        = regexp.MustCompile(`[A-Z]`)
	hasLower          = regexp.MustCompile(`[a-z]`)
	hasNumberOrSymbol = regexp.MustCompile(`[0-9!@#$%^&*()_+\-=\[\]{};':"|,.<>?~]`)
)

// ValidatePassword enforces the platform's password policy before any
// credential leaves the client: at least 8 characters, one capital letter,
// one lowercase letter, and one number or symbol. Violations surface inline
// next to the password field.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("password must be at least 8 characters long")
	}
	if !hasCapital.MatchString(password) {
		return shared.NewValidationError("password must contain at least one capital letter")
	}
	if !hasLower.MatchString(password) {
		return shared.NewValidationError("password must contain at least one lowercase letter")
	}
	if !hasNumberOrSymbol.MatchString(password) {
		return shared.NewValidationError("password must contain at least one number or symbol")
	}
	return nil
}
