package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinUsernameLength is the shortest username accepted at signup.
const MinUsernameLength = 4

// Signup is a registration request after normalization.
type Signup struct {
	Username string
	Email    string
	Password string
}

// NormalizeUsername trims and lower-cases a username. Signup stores the
// normalized form; login looks the name up as typed.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewSignup normalizes username and email. The password is kept verbatim.
func NewSignup(username, email, password string) Signup {
	return Signup{
		Username: NormalizeUsername(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
}

// Validate enforces the signup rules. Passwords are capped at 72 bytes, the bcrypt input limit.
func (s Signup) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Username, validation.Required, validation.Length(MinUsernameLength, 50)),
		validation.Field(&s.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&s.Password, validation.Required, validation.Length(1, 72)),
	)
}
