package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys.
type contextKey string

// runIDContextKey stores the id of one batch run in the context.
const runIDContextKey contextKey = "run_id"

// NewRunID generates a fresh run id.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a context carrying the given run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// RunIDFromContext extracts the run id, or "" when absent.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if runID, ok := ctx.Value(runIDContextKey).(string); ok {
		return runID
	}
	return ""
}
