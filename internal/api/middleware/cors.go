package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSConfig lists the storefront origins allowed to call the relay
type CORSConfig struct {
	AllowedOrigins []string
	// Development accepts any origin
	Development bool
}

func (cfg CORSConfig) allowed(origin string) bool {
	if cfg.Development {
		return true
	}
	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// CORS answers preflight requests and tags responses for allowed origins.
// The cooldown cookie has to travel cross-origin, so credentials are allowed
// and the origin is echoed rather than "*".
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			c.Next()
			return
		}

		preflight := c.Request.Method == http.MethodOptions &&
			c.Request.Header.Get("Access-Control-Request-Method") != ""

		if !cfg.allowed(origin) {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", "Origin")

		if preflight {
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Request-ID, X-Requested-With")
			h.Set("Access-Control-Max-Age", "86400") // 24 hours
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		h.Set("Access-Control-Expose-Headers", "X-Request-ID, Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining")
		c.Next()
	}
}
