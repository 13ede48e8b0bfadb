// internal/domain/user/entity.go
package user

import (
	"strings"
)

// User is the account profile the backend returns after login or OTP
// verification.
type User struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Zipcode     string `json:"zipcode,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
}

// AuthResult is what a successful login or OTP verification yields
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetDisplayName returns display name (full name, username or email)
func (u *User) GetDisplayName() string {
	if fullName := u.GetFullName(); fullName != "" {
		return fullName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
