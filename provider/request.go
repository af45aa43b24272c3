package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
)

// EnsureRequestID returns ctx carrying a request id, generating a UUID when
// the caller did not supply one. Logs and spans for the call share the id.
func EnsureRequestID(ctx context.Context) context.Context {
	if _, ok := logger.RequestIDFromContext(ctx); ok {
		return ctx
	}
	return logger.ContextWithRequestID(ctx, uuid.NewString())
}
