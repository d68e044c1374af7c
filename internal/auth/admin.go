package auth

import (
	"strings"
)

// Admin is the single account allowed to change form field definitions.
// The password is only ever held as a bcrypt hash.
type Admin struct {
	Email        string
	PasswordHash string
}

// NewAdmin hashes password for email.
func NewAdmin(email, password string) (*Admin, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Admin{Email: strings.ToLower(strings.TrimSpace(email)), PasswordHash: hash}, nil
}

// Authenticate returns ErrInvalidCredentials unless email and password match.
func (a *Admin) Authenticate(email, password string) error {
	emailOK := strings.EqualFold(strings.TrimSpace(email), a.Email)
	// always run bcrypt so a wrong email costs as much as a wrong password
	passwordOK := CheckPasswordHash(password, a.PasswordHash)
	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}
