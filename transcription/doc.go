// Package transcription defines the speech-to-text provider contract.
//
// Backends live in subpackages and register a provider.Factory under their
// provider id:
//
//	reg := transcription.NewRegistry()
//	reg.RegisterFactory(elevenlabs.ProviderName, elevenlabs.Factory())
//	stt, err := reg.Create(elevenlabs.ProviderName, settings)
//	text, err := stt.Transcribe(ctx, audioData)
package transcription
