// Package provider is the small generic framework the speech adapters are
// built on.
//
// It defines the Provider contract and a factory Registry, a pull-based
// Iterator for streamed results, a Lazy handle for vendor clients that must
// be built at most once, and Middleware for wrapping a RequestResponse call
// with logging, tracing and metrics.
//
// # Usage
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("elevenlabs-stt", elevenlabs.Factory())
//	p, err := reg.Create("elevenlabs-stt", settings)
//
//	call := provider.Chain(
//	    provider.WithLogging[In, Out](log, "ElevenLabs STT transcription"),
//	    provider.WithTracing[In, Out]("elevenlabs", nil),
//	    provider.WithMetrics[In, Out](metrics, "elevenlabs-stt"),
//	)(provider.Func("transcribe", fn))
package provider
