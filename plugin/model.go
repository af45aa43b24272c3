package plugin

import (
	"context"

	"github.com/COVAS-Labs/plugin-elevenlabs/synthesis"
	"github.com/COVAS-Labs/plugin-elevenlabs/transcription"
)

// Model is the value returned by CreateModel. Exactly one of the two
// providers is set, matching Kind.
type Model struct {
	Kind Kind

	transcriber transcription.Provider
	synthesizer synthesis.Provider
}

// Transcriber returns the speech-to-text provider when Kind is KindSTT.
func (m Model) Transcriber() (transcription.Provider, bool) {
	return m.transcriber, m.transcriber != nil
}

// Synthesizer returns the text-to-speech provider when Kind is KindTTS.
func (m Model) Synthesizer() (synthesis.Provider, bool) {
	return m.synthesizer, m.synthesizer != nil
}

// Name returns the provider id of the wrapped provider.
func (m Model) Name() string {
	switch {
	case m.transcriber != nil:
		return m.transcriber.Name()
	case m.synthesizer != nil:
		return m.synthesizer.Name()
	}
	return ""
}

// IsAvailable reports whether the wrapped provider can serve requests.
func (m Model) IsAvailable(ctx context.Context) bool {
	switch {
	case m.transcriber != nil:
		return m.transcriber.IsAvailable(ctx)
	case m.synthesizer != nil:
		return m.synthesizer.IsAvailable(ctx)
	}
	return false
}
