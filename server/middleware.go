package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"geolookup/metrics"
)

const requestIDKey = "request_id"

// RequestID adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// StructuredLogger logs one line per request at a level that follows the status.
func StructuredLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       path,
			"status":     statusCode,
			"latency_ms": time.Since(startTime).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})

		switch {
		case len(c.Errors) > 0:
			entry.WithField("errors", c.Errors.String()).Error("Request completed with errors")
		case statusCode >= 500:
			entry.Error("Request failed with server error")
		case statusCode >= 400:
			entry.Warn("Request failed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// HTTPMetrics records request counts and latency per route template.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(startTime))
	}
}
