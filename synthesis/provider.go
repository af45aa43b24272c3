package synthesis

import (
	"context"

	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
)

// Provider is the interface that text-to-speech backends must implement.
type Provider interface {
	provider.Provider

	// Synthesize opens an audio stream for text spoken by voiceID. Chunks
	// are never empty and arrive in stream order.
	Synthesize(ctx context.Context, text, voiceID string) (provider.Iterator[[]byte], error)
	// DefaultVoice is the voice configured in the host settings.
	DefaultVoice() string
}

// NewRegistry creates a new provider registry for synthesis providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
