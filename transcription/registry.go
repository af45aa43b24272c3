package transcription

import "github.com/COVAS-Labs/plugin-elevenlabs/provider"

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
