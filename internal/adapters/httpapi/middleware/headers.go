package middleware

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-contrib/secure"
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or generates a uuid.
func RequestID() gin.HandlerFunc {
	return requestid.New(
		requestid.WithCustomHeaderStrKey(RequestIDHeader),
		requestid.WithGenerator(func() string {
			return uuid.Must(uuid.NewV4()).String()
		}),
	)
}

// RequestIDFields feeds the request id into the ginzap access log.
func RequestIDFields(c *gin.Context) []zapcore.Field {
	return []zapcore.Field{zap.String("request_id", requestid.Get(c))}
}

// SecurityHeaders sets the usual hardening headers. STS is only sent over TLS.
func SecurityHeaders() gin.HandlerFunc {
	return secure.New(secure.Config{
		ContentTypeNosniff:      true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ReferrerPolicy:          "no-referrer",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
	})
}

// CrossOriginResourcePolicy lets the frontend embed assets from another origin.
func CrossOriginResourcePolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		c.Next()
	}
}

// BodyLimit caps the request body at limit bytes and answers 413 past it.
func BodyLimit(limit int64) gin.HandlerFunc {
	return limits.RequestSizeLimiter(limit)
}
