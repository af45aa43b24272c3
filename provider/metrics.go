package provider

import (
	"context"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/observability"
)

// WithMetrics returns a Middleware that records operation count, duration
// and errors for each Execute call, attributed to providerID.
func WithMetrics[I, O any](metrics *observability.Metrics, providerID string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics, providerID: providerID}
	}
}

type metricsRR[I, O any] struct {
	inner      RequestResponse[I, O]
	metrics    *observability.Metrics
	providerID string
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		code := "UNKNOWN"
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		m.metrics.RecordError(ctx, code, m.providerID)
	}
	m.metrics.RecordOperation(ctx, m.providerID, m.inner.Name(), status, duration)

	return output, err
}
