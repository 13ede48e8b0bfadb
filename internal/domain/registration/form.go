// internal/domain/registration/form.go
package registration

import (
	"context"
	"strings"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
)

// Form is the unsaved account draft. It only lives until it is submitted
// successfully or the shopper leaves the page.
type Form struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	Zipcode              string `json:"zipcode"`
	Address              string `json:"address"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// MissingFields lists required fields that are blank, by their JSON name
func (f Form) MissingFields() []string {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"username", f.Username},
		{"email", f.Email},
		{"phone_number", f.PhoneNumber},
		{"zipcode", f.Zipcode},
		{"address", f.Address},
		{"password", f.Password},
		{"password_confirmation", f.PasswordConfirmation},
	}

	var missing []string
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// PasswordsMatch reports whether the confirmation equals the password
func (f Form) PasswordsMatch() bool {
	return f.Password == f.PasswordConfirmation
}

// Redacted returns a copy safe to echo back to the browser
func (f Form) Redacted() Form {
	f.Password = ""
	f.PasswordConfirmation = ""
	return f
}

// OtpRequest verifies the code mailed to a newly registered address
type OtpRequest struct {
	Email   string `json:"email"`
	Otp     string `json:"otp"`
	Context string `json:"context"`
}

// Backend is the account side of the grocery REST API
type Backend interface {
	RegisterUser(ctx context.Context, form Form) error
	ResendOtp(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, req OtpRequest) (*user.AuthResult, error)
}
