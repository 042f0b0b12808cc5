// Package trace carries the per-request id through context so the service
// layer and the action log can correlate everything one request touched.
package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// GenerateID returns a random request id.
func GenerateID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// keep tracing alive even if the random source fails
		return time.Now().UTC().Format("20060102T150405.000000000")
	}
	return hex.EncodeToString(b[:])
}

// WithRequestID stores the request id in a new context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the stored request id, or "" outside the
// middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
