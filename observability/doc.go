// Package observability provides OpenTelemetry tracing and metrics around
// vendor speech calls.
//
// Until the host initialises exporters the global OpenTelemetry providers
// are no-ops, so spans and instruments cost almost nothing.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("plugin-elevenlabs"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer span.End()
//
// Metrics:
//
//	metrics := observability.DefaultMetrics()
//	metrics.RecordAudioBytes(ctx, "synthesize", "elevenlabs-tts", n)
//
// Setup wires both from the plugin configuration.
package observability
