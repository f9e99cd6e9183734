package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pfrederiksen/events-board/internal/logger"
	"github.com/pfrederiksen/events-board/internal/metrics"
	"github.com/pfrederiksen/events-board/internal/tracing"
)

const (
	// RequestIDHeader carries the request ID in both directions
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// requestID reuses the caller's X-Request-ID or generates one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one structured entry per request and exposes a
// request-scoped logger to handlers.
func accessLog(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := base.With(logger.Fields{
			"request_id": c.GetString(requestIDKey),
		})
		c.Set(loggerKey, reqLog)

		c.Next()

		fields := logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			reqLog.Error("Request failed", fields, c.Errors.Last().Err)
			return
		}
		reqLog.Info("Request handled", fields)
	}
}

// observe records request counts and latencies
func observe(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// traced starts a server span around each request
func traced() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}

		ctx, span := tracing.Tracer().Start(c.Request.Context(), c.Request.Method+" "+name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", name),
				attribute.String("request.id", c.GetString(requestIDKey)),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
		for _, ginErr := range c.Errors {
			span.RecordError(ginErr.Err)
		}
	}
}
