// internal/interfaces/http/handlers/session.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/dialog"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionHandler handles session and navbar endpoints
type SessionHandler struct {
	sessions *session.Manager
	config   *config.Config
	logger   *logrus.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, cfg *config.Config, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		config:   cfg,
		logger:   logger,
	}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ws, token, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to create session")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created successfully",
		"data": gin.H{
			"token":      token,
			"token_type": "Bearer",
			"expires_in": int(h.config.JWT.TokenExpiry.Seconds()),
			"nav":        ws.RenderNav(),
		},
	})
}

// GetNav handles GET /nav
func (h *SessionHandler) GetNav(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	respond(c, "Navigation retrieved successfully", notice.Notice{}, ws.RenderNav())
}

type searchRequest struct {
	SearchTerm string `json:"search_term"`
}

// SetSearch handles PUT /nav/search
func (h *SessionHandler) SetSearch(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ws.Navbar().SetSearchTerm(req.SearchTerm)
	respond(c, "Search updated", notice.Notice{}, ws.RenderNav())
}

// ResetFilters handles POST /nav/reset
func (h *SessionHandler) ResetFilters(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	ws.Navbar().ResetFilters()
	respond(c, "Filters cleared", notice.Notice{}, ws.RenderNav())
}

// RequestLogout handles POST /nav/logout
func (h *SessionHandler) RequestLogout(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	if !ws.LoggedIn() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "You are not logged in",
		})
		return
	}

	ws.Navbar().RequestLogout()
	respond(c, "Confirm logout", notice.Notice{}, ws.RenderNav())
}

// CancelLogout handles POST /nav/logout/cancel
func (h *SessionHandler) CancelLogout(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	ws.Navbar().CancelLogout()
	respond(c, "Logout cancelled", notice.Notice{}, ws.RenderNav())
}

// ConfirmLogout handles POST /nav/logout/confirm
func (h *SessionHandler) ConfirmLogout(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	if err := ws.Navbar().ConfirmLogout(); err != nil {
		if errors.Is(err, dialog.ErrNotPending) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "No logout is awaiting confirmation",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log out",
		})
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), ws); err != nil {
		h.logger.WithError(err).WithField("session_id", ws.ID()).Error("Failed to delete session record")
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out successfully",
		"redirect": "/",
	})
}
