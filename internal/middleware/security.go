package middleware

import "github.com/gin-gonic/gin"

// VersionHeader carries the server version on every response.
const VersionHeader = "X-Rdf2graph-Version"

// ResponseHeaders sets the JSON API's fixed response headers.
func ResponseHeaders(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Cache-Control", "no-store")
		c.Header(VersionHeader, version)

		c.Next()
	}
}
