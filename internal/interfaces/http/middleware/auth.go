// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/navigation"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/auth"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	SessionIDKey = "session_id"
	workspaceKey = "workspace"
)

// Resolver looks a session token up
type Resolver interface {
	Resolve(ctx context.Context, token string) (*session.Workspace, error)
}

// Session requires a valid session token and loads its workspace
func Session(resolver Resolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session token required",
			})
			return
		}

		token := auth.ExtractTokenFromHeader(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		ws, err := resolver.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, session.ErrSessionNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session",
			})
			return
		default:
			logger.WithError(err).Error("Failed to resolve session")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Session store unavailable",
			})
			return
		}

		c.Set(SessionIDKey, ws.ID())
		c.Set(workspaceKey, ws)
		c.Next()
	}
}

// RequireLogin turns guests away from pages that need an account
func RequireLogin(dest navigation.Destination) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := CurrentWorkspace(c)
		if ws == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Session token required",
			})
			return
		}

		if err := ws.Gate(dest); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    notice.MessageOf(err, "Please log in."),
				"notice":   notice.Warning(notice.MessageOf(err, "Please log in.")),
				"redirect": "/login",
			})
			return
		}

		c.Next()
	}
}

// CurrentWorkspace returns the workspace loaded by Session
func CurrentWorkspace(c *gin.Context) *session.Workspace {
	value, ok := c.Get(workspaceKey)
	if !ok {
		return nil
	}
	ws, _ := value.(*session.Workspace)
	return ws
}
