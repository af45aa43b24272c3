package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the plugin's metric instruments.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
	audioBytes        metric.Int64Counter
	activeStreams     metric.Int64UpDownCounter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("speech.operation.total",
		metric.WithDescription("Total number of vendor speech operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speech.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("speech.operation.duration",
		metric.WithDescription("Duration of vendor speech operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speech.operation.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("speech.error.total",
		metric.WithDescription("Total errors by code and provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speech.error.total counter: %w", err)
	}

	audioBytes, err := meter.Int64Counter("speech.audio.bytes",
		metric.WithDescription("Audio bytes uploaded or streamed"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speech.audio.bytes counter: %w", err)
	}

	activeStreams, err := meter.Int64UpDownCounter("speech.stream.active",
		metric.WithDescription("Number of open synthesis streams"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speech.stream.active counter: %w", err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		errorTotal:        errorTotal,
		audioBytes:        audioBytes,
		activeStreams:     activeStreams,
	}, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns instruments bound to the global meter provider.
// They are created on first use, so call InitMeter before that if export is
// wanted.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(Meter(instrumentationName))
		if err != nil {
			logger.Warn("falling back to no-op metrics", logger.Fields(logger.FieldError, err.Error()))
			m, _ = NewMetrics(noop.NewMeterProvider().Meter(instrumentationName))
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordOperation records a completed vendor operation.
func (m *Metrics) RecordOperation(ctx context.Context, provider, operation, status string, duration time.Duration) {
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))
}

// RecordError records an error by code and provider.
func (m *Metrics) RecordError(ctx context.Context, code, provider string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("provider", provider),
	))
}

// RecordAudioBytes adds n to the audio byte counter.
func (m *Metrics) RecordAudioBytes(ctx context.Context, operation, provider string, n int) {
	if n <= 0 {
		return
	}
	m.audioBytes.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("provider", provider),
	))
}

// StreamOpened increments the open stream gauge.
func (m *Metrics) StreamOpened(ctx context.Context, provider string) {
	m.activeStreams.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

// StreamClosed decrements the open stream gauge.
func (m *Metrics) StreamClosed(ctx context.Context, provider string) {
	m.activeStreams.Add(ctx, -1, metric.WithAttributes(attribute.String("provider", provider)))
}
