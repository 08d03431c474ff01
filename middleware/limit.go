package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize hard-caps the request body at limit bytes. Gin's
// MaxMultipartMemory only decides when parts spill to temp files; it never
// rejects anything, so without this cap an arbitrarily large upload would be
// accepted. Reads past the limit fail and surface as a bind or multipart
// parse error in the handler.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
