package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/COVAS-Labs/plugin-elevenlabs/config"
)

func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("plugin-elevenlabs")

	if cfg.ServiceName != "plugin-elevenlabs" {
		t.Errorf("expected ServiceName 'plugin-elevenlabs', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("plugin-elevenlabs")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestStartSpan_Recorded(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanTranscribe)
	SetSpanAttribute(ctx, AttrModel, "scribe_v1")
	SetSpanAttribute(ctx, AttrAudioBytes, 3200)
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != SpanTranscribe {
		t.Errorf("expected span %q, got %q", SpanTranscribe, spans[0].Name())
	}
	found := false
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == AttrModel && kv.Value.AsString() == "scribe_v1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s attribute, got %v", AttrModel, spans[0].Attributes())
	}
}

func TestSetSpanError(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanSynthesize)
	SetSpanError(ctx, fmt.Errorf("vendor down"))
	span.End()

	got := rec.Ended()[0]
	if got.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status().Code)
	}
	if len(got.Events()) == 0 {
		t.Error("expected an exception event")
	}
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	// Must not panic without a recording span.
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{0.5, sdktrace.TraceIDRatioBased(0.5).Description()},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			if got := sampler(tc.rate).Description(); got != tc.want {
				t.Errorf("sampler(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("plugin-elevenlabs", "1.2.3", "test")
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.version" && kv.Value.AsString() == "1.2.3" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected service.version attribute, got %v", res.Attributes())
	}
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ctx := context.Background()
	m.RecordOperation(ctx, "elevenlabs-stt", "transcribe", "ok", 120*time.Millisecond)
	m.RecordError(ctx, "REMOTE_CALL_ERROR", "elevenlabs-tts")
	m.RecordAudioBytes(ctx, "synthesize", "elevenlabs-tts", 4800)
	m.RecordAudioBytes(ctx, "synthesize", "elevenlabs-tts", 0)
	m.StreamOpened(ctx, "elevenlabs-tts")
	m.StreamClosed(ctx, "elevenlabs-tts")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, ok := md.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[md.Name] += dp.Value
				}
			}
		}
	}

	if sums["speech.operation.total"] != 1 {
		t.Errorf("expected 1 operation, got %d", sums["speech.operation.total"])
	}
	if sums["speech.error.total"] != 1 {
		t.Errorf("expected 1 error, got %d", sums["speech.error.total"])
	}
	if sums["speech.audio.bytes"] != 4800 {
		t.Errorf("expected 4800 audio bytes, got %d", sums["speech.audio.bytes"])
	}
	if sums["speech.stream.active"] != 0 {
		t.Errorf("expected no active streams, got %d", sums["speech.stream.active"])
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	m.RecordError(context.Background(), "CONFIGURATION_ERROR", "elevenlabs-stt")
}

func TestDefaultMetrics_Singleton(t *testing.T) {
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("expected DefaultMetrics to return the same instance")
	}
}

func TestSetup_NothingEnabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Default(), "test")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestSetup_TracingEnabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	cfg := config.Default()
	cfg.Observability.Tracing.Enabled = true
	cfg.Observability.Tracing.Insecure = true

	shutdown, err := Setup(context.Background(), cfg, "test")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// Nothing was exported, so shutdown does not need a live collector.
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}
