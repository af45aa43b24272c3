package provider

import (
	"context"

	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/observability"
)

// WithTracing returns a Middleware that creates an OpenTelemetry span
// around each Execute call. The span name is "{prefix}.{providerName}" and
// attrs are set on it before the call runs.
func WithTracing[I, O any](prefix string, attrs map[string]any) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, prefix: prefix, attrs: attrs}
	}
}

type tracingRR[I, O any] struct {
	inner  RequestResponse[I, O]
	prefix string
	attrs  map[string]any
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.prefix+"."+t.inner.Name())
	defer span.End()

	for k, v := range t.attrs {
		observability.SetSpanAttribute(ctx, k, v)
	}
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
	}

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(appErr.Code))
		}
		observability.SetSpanError(ctx, err)
	}

	return output, err
}
