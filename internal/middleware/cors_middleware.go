package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

// localOrigin matches loopback and private-network origins at any port.
// This loosens strict-origin checks for local development; production
// deployments should rely on the explicit allow-list alone.
var localOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1|192\.168\.\d{1,3}\.\d{1,3})(:\d+)?$`)

// CORS decides per request whether the browser-supplied Origin is allowed
// and emits the matching headers exactly once. Preflight requests are
// answered immediately with 200 and an empty body.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Echo the origin back only if it matches a rule; credentials are
		// only granted alongside a concrete Allow-Origin.
		if origin != "" {
			if _, ok := allowed[origin]; ok || localOrigin.MatchString(origin) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Writer.Header().Add("Vary", "Origin")
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
