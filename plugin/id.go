package plugin

import (
	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	stt "github.com/COVAS-Labs/plugin-elevenlabs/transcription/elevenlabs"
	tts "github.com/COVAS-Labs/plugin-elevenlabs/synthesis/elevenlabs"
)

// Vendor names the plugin in messages shown to the host.
const Vendor = "ElevenLabs"

// Kind is the host's model category.
type Kind string

const (
	KindSTT Kind = "stt"
	KindTTS Kind = "tts"
)

// ProviderID is one of the provider ids this plugin declares.
type ProviderID string

const (
	ProviderSTT ProviderID = stt.ProviderName
	ProviderTTS ProviderID = tts.ProviderName
)

// ParseProviderID maps a host-supplied id onto the closed set of providers.
func ParseProviderID(id string) (ProviderID, error) {
	switch ProviderID(id) {
	case ProviderSTT, ProviderTTS:
		return ProviderID(id), nil
	}
	return "", errors.UnknownProvider(Vendor, id)
}

// Kind returns the model category served by the provider.
func (id ProviderID) Kind() Kind {
	if id == ProviderSTT {
		return KindSTT
	}
	return KindTTS
}

func (id ProviderID) String() string { return string(id) }
