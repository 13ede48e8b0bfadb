package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/registration"
	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
)

var errNoToken = errors.New("backend returned no token")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resendRequest struct {
	Email string `json:"email"`
}

// RegisterUser creates the account; the backend then mails an OTP
func (c *Client) RegisterUser(ctx context.Context, form registration.Form) error {
	return c.do(ctx, http.MethodPost, "/register", form, nil)
}

// ResendOtp asks for a fresh verification code
func (c *Client) ResendOtp(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/resend-otp", resendRequest{Email: email}, nil)
}

// VerifyOtp submits the code and returns the new account's credentials
func (c *Client) VerifyOtp(ctx context.Context, req registration.OtpRequest) (*user.AuthResult, error) {
	return c.authenticate(ctx, "/verify-otp", req)
}

// Login exchanges email and password for a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	return c.authenticate(ctx, "/login", loginRequest{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*user.AuthResult, error) {
	var result user.AuthResult
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, errNoToken
	}
	return &result, nil
}
