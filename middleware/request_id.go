package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderTraceID   = "X-Trace-Id"

	requestIDKey = "request_id"
	traceIDKey   = "trace_id"
)

// RequestContext assigns every request an id, reusing the caller's
// X-Request-Id when present, and exposes the active trace id.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(requestIDKey, reqID)
		c.Writer.Header().Set(HeaderRequestID, reqID)

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID := sc.TraceID().String()
			c.Set(traceIDKey, traceID)
			c.Writer.Header().Set(HeaderTraceID, traceID)
		}
		c.Next()
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func TraceID(c *gin.Context) string {
	return c.GetString(traceIDKey)
}
