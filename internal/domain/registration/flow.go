// internal/domain/registration/flow.go
package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/user"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingField     = errors.New("required field is missing")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrSubmitting       = errors.New("registration is already being submitted")
	ErrWrongStep        = errors.New("action not available in the current step")
	ErrEmptyCode        = errors.New("verification code is required")
)

// OtpContext tags verification codes issued for new accounts
const OtpContext = "register"

// View is the single active step of the flow. Exactly one of Registering,
// OtpVerification or Completed is current.
type View interface {
	Step() string
}

// Registering is the editable account form
type Registering struct {
	Form       Form           `json:"form"`
	Submitting bool           `json:"submitting"`
	Notice     *notice.Notice `json:"notice,omitempty"`
}

// OtpVerification waits for the code mailed to Email
type OtpVerification struct {
	Email   string         `json:"email"`
	Context string         `json:"context"`
	Notice  *notice.Notice `json:"notice,omitempty"`
}

// Completed is reached once the code is accepted
type Completed struct {
	User user.User `json:"user"`
}

func (Registering) Step() string     { return "register" }
func (OtpVerification) Step() string { return "otp" }
func (Completed) Step() string       { return "completed" }

// Flow drives Register → OTP verification
type Flow struct {
	mu      sync.Mutex
	backend Backend
	logger  *logrus.Logger
	view    View
}

// NewFlow starts a flow on an empty form
func NewFlow(backend Backend, logger *logrus.Logger) *Flow {
	return &Flow{
		backend: backend,
		logger:  logger,
		view:    Registering{},
	}
}

// Current returns the active step. Passwords are never echoed back.
func (f *Flow) Current() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r, ok := f.view.(Registering); ok {
		r.Form = r.Form.Redacted()
		return r
	}
	return f.view
}

// Submit validates the draft locally and creates the account. A password
// mismatch is rejected before any network call.
func (f *Flow) Submit(ctx context.Context, form Form) error {
	f.mu.Lock()
	current, ok := f.view.(Registering)
	if !ok {
		f.mu.Unlock()
		return ErrWrongStep
	}
	if current.Submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}

	if missing := form.MissingFields(); len(missing) > 0 {
		n := notice.Warning("Please fill out all required fields.")
		f.view = Registering{Form: form, Notice: &n}
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	if !form.PasswordsMatch() {
		n := notice.Warning("Passwords do not match.")
		f.view = Registering{Form: form, Notice: &n}
		f.mu.Unlock()
		return ErrPasswordMismatch
	}

	f.view = Registering{Form: form, Submitting: true}
	f.mu.Unlock()

	err := f.backend.RegisterUser(ctx, form)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.WithError(err).WithField("email", form.Email).Warn("Registration failed")
		n := notice.Danger(notice.MessageOf(err, "Registration failed."))
		f.view = Registering{Form: form, Notice: &n}
		return fmt.Errorf("registration failed: %w", err)
	}

	f.logger.WithField("email", form.Email).Info("Account created, awaiting OTP")
	f.view = OtpVerification{Email: form.Email, Context: OtpContext}
	return nil
}

// Resend asks the backend to mail a fresh code
func (f *Flow) Resend(ctx context.Context) (notice.Notice, error) {
	email, err := f.otpEmail()
	if err != nil {
		return notice.Notice{}, err
	}

	if err := f.backend.ResendOtp(ctx, email); err != nil {
		f.logger.WithError(err).WithField("email", email).Warn("OTP resend failed")
		n := notice.Danger(notice.MessageOf(err, "Failed to resend code."))
		f.setOtpNotice(n)
		return n, fmt.Errorf("failed to resend otp: %w", err)
	}

	n := notice.Success(fmt.Sprintf("A new code has been sent to %s.", email))
	f.setOtpNotice(n)
	return n, nil
}

// Verify submits the code. On success the flow completes and the backend's
// token and user are returned for the caller to sign in with.
func (f *Flow) Verify(ctx context.Context, code string) (*user.AuthResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	email, err := f.otpEmail()
	if err != nil {
		return nil, err
	}

	result, err := f.backend.VerifyOtp(ctx, OtpRequest{Email: email, Otp: code, Context: OtpContext})
	if err != nil {
		f.logger.WithError(err).WithField("email", email).Warn("OTP verification failed")
		f.setOtpNotice(notice.Danger(notice.MessageOf(err, "Invalid or expired code.")))
		return nil, fmt.Errorf("otp verification failed: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("otp verification returned no session")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = Completed{User: result.User}
	return result, nil
}

// Back leaves OTP verification for the form, keeping only the email
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	otp, ok := f.view.(OtpVerification)
	if !ok {
		return ErrWrongStep
	}
	f.view = Registering{Form: Form{Email: otp.Email}}
	return nil
}

// Reset discards any draft, as when the shopper navigates away
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = Registering{}
}

func (f *Flow) otpEmail() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	otp, ok := f.view.(OtpVerification)
	if !ok {
		return "", ErrWrongStep
	}
	return otp.Email, nil
}

func (f *Flow) setOtpNotice(n notice.Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if otp, ok := f.view.(OtpVerification); ok {
		otp.Notice = &n
		f.view = otp
	}
}
