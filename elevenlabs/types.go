package elevenlabs

import (
	"context"
	"io"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://api.elevenlabs.io"
	// HeaderAPIKey carries the account API key.
	HeaderAPIKey = "xi-api-key"

	// OutputPCM24000 is 16-bit signed little-endian mono PCM at 24 kHz.
	OutputPCM24000 = "pcm_24000"

	speechToTextPath = "/v1/speech-to-text"
	streamPathFormat = "/v1/text-to-speech/%s/stream"
)

// Transcriber abstracts the speech-to-text endpoint so adapters can be
// tested with a mock implementation.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (*Transcription, error)
}

// Synthesizer abstracts the streaming text-to-speech endpoint.
type Synthesizer interface {
	SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error)
}

// TranscribeRequest is one speech-to-text upload.
type TranscribeRequest struct {
	Audio    []byte
	FileName string // defaults to "audio.wav"
	ModelID  string
	// LanguageCode is sent only when non-empty.
	LanguageCode string
}

// Transcription is the speech-to-text response. Text is nil when the
// service returned null or omitted it.
type Transcription struct {
	Text                *string `json:"text"`
	LanguageCode        string  `json:"language_code,omitempty"`
	LanguageProbability float64 `json:"language_probability,omitempty"`
}

// VoiceSettings tunes a voice for one request.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// SynthesizeRequest is the JSON body of a streaming text-to-speech call.
type SynthesizeRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`
	// OutputFormat travels as a query parameter. Defaults to OutputPCM24000.
	OutputFormat string `json:"-"`
}
