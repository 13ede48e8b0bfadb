// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/registration"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles registration, OTP and login endpoints
type AuthHandler struct {
	sessions *session.Manager
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

func stepView(flow *registration.Flow) gin.H {
	current := flow.Current()
	return gin.H{
		"step": current.Step(),
		"view": current,
	}
}

// GetRegistration handles GET /auth/register
func (h *AuthHandler) GetRegistration(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	respond(c, "Registration retrieved successfully", notice.Notice{}, stepView(ws.Registration()))
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var form registration.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	flow := ws.Registration()
	err := flow.Submit(c.Request.Context(), form)
	switch {
	case err == nil:
		respond(c, "Registration successful. Check your email for the verification code.", notice.Notice{}, stepView(flow))
	case errors.Is(err, registration.ErrMissingField), errors.Is(err, registration.ErrPasswordMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
	case errors.Is(err, registration.ErrSubmitting), errors.Is(err, registration.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
	default:
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Registration failed.")), stepView(flow))
	}
}

// BackToForm handles POST /auth/register/back
func (h *AuthHandler) BackToForm(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	flow := ws.Registration()
	if err := flow.Back(); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
		return
	}
	respond(c, "Returned to registration form", notice.Notice{}, stepView(flow))
}

type verifyRequest struct {
	Otp string `json:"otp" binding:"required"`
}

// VerifyOtp handles POST /auth/otp/verify. A verified account is signed in.
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	flow := ws.Registration()
	result, err := flow.Verify(c.Request.Context(), req.Otp)
	switch {
	case err == nil:
	case errors.Is(err, registration.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
		return
	case errors.Is(err, registration.ErrEmptyCode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
		return
	default:
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Invalid or expired code.")), stepView(flow))
		return
	}

	if err := h.sessions.Attach(c.Request.Context(), ws, result); err != nil {
		h.logger.WithError(err).WithField("session_id", ws.ID()).Error("Failed to sign in verified account")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Account verified but sign in failed. Please log in.",
		})
		return
	}

	respond(c, "Account verified successfully", notice.Success("Welcome, "+result.User.GetDisplayName()+"!"), gin.H{
		"user":     result.User,
		"nav":      ws.RenderNav(),
		"redirect": "/",
	})
}

// ResendOtp handles POST /auth/otp/resend
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	flow := ws.Registration()
	n, err := flow.Resend(c.Request.Context())
	switch {
	case err == nil:
		respond(c, "Verification code sent", n, stepView(flow))
	case errors.Is(err, registration.ErrWrongStep):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"data":  stepView(flow),
		})
	default:
		respondFailure(c, err, n, stepView(flow))
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	u, err := h.sessions.Login(c.Request.Context(), ws, req.Email, req.Password)
	if err != nil {
		respondFailure(c, err, notice.Danger(notice.MessageOf(err, "Login failed. Please check your credentials.")), nil)
		return
	}

	ws.Registration().Reset()
	redirect := "/"
	if u.IsAdmin {
		redirect = "/admin"
	}

	respond(c, "Login successful", notice.Notice{}, gin.H{
		"user":     u,
		"nav":      ws.RenderNav(),
		"redirect": redirect,
	})
}
