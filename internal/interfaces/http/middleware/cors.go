// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/gin-gonic/gin"
)

// CORS lets the storefront's browser origin call the gateway
func CORS(cfg *config.Config) gin.HandlerFunc {
	methods := strings.Join(cfg.Security.CORSAllowedMethods, ", ")
	headers := strings.Join(append([]string{RequestIDHeader}, cfg.Security.CORSAllowedHeaders...), ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && isOriginAllowed(origin, cfg.Security.CORSAllowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Expose-Headers", RequestIDHeader+", Content-Disposition")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isOriginAllowed matches exact origins, "*" and "*.example.com" subdomains
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if strings.HasPrefix(allowed, "*.") {
			if strings.HasSuffix(origin, strings.TrimPrefix(allowed, "*")) {
				return true
			}
		}
	}
	return false
}
