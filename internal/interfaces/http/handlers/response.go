// internal/interfaces/http/handlers/response.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Voidkillxx/FinalCaseStudy/internal/domain/cart"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/backend"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http/middleware"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/notice"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/gin-gonic/gin"
)

// workspace returns the session loaded by middleware.Session
func workspace(c *gin.Context) (*session.Workspace, bool) {
	ws := middleware.CurrentWorkspace(c)
	if ws == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Session token required",
		})
		return nil, false
	}
	return ws, true
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + label + " ID",
		})
		return 0, false
	}
	return uint(id), true
}

// failureStatus maps a backend failure to the gateway's status code
func failureStatus(err error) int {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, backend.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// respondFailure reports a failed backend call with the view it left behind
func respondFailure(c *gin.Context, err error, n notice.Notice, data interface{}) {
	body := gin.H{
		"error":  n.Message,
		"notice": n,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(failureStatus(err), body)
}

// respond writes a successful view, with the notice it raised if any
func respond(c *gin.Context, message string, n notice.Notice, data interface{}) {
	body := gin.H{
		"message": message,
		"data":    data,
	}
	if !n.IsZero() {
		body["notice"] = n
	}
	c.JSON(http.StatusOK, body)
}
