package transcription

import (
	"context"

	"github.com/COVAS-Labs/plugin-elevenlabs/audio"
	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
)

// Provider is the interface that speech-to-text backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe converts captured audio to text. Audio with no recognisable
	// speech yields "" and a nil error.
	Transcribe(ctx context.Context, src audio.Source) (string, error)
}
