package provider

import (
	"context"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
)

// WithLogging returns a Middleware that logs each Execute call.
// Failures are logged at error level as "<label> failed: <err>" before the
// error is returned; successes are logged at debug level with the duration.
func WithLogging[I, O any](log *logger.Logger, label string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log, label: label}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
	label string
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	log := l.log.WithContext(ctx)
	fields := logger.DurationFields(l.inner.Name(), time.Since(start))
	if err != nil {
		log.Error(l.label+" failed: "+err.Error(), logger.MergeWithError(fields, err))
	} else {
		log.Debug(l.label+" completed", fields)
	}

	return output, err
}
