package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funeralworks/backend/internal/interfaces/http/dto"
)

// BodyLimit caps the request body size. Case and document payloads are
// metadata only (file bytes go straight to object storage via presigned
// URLs), so the limit can stay far below typical upload sizes.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		// Content-Length can lie or be absent; MaxBytesReader enforces
		// the cap while the body is actually read
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
