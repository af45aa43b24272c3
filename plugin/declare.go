package plugin

import (
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	stt "github.com/COVAS-Labs/plugin-elevenlabs/transcription/elevenlabs"
	tts "github.com/COVAS-Labs/plugin-elevenlabs/synthesis/elevenlabs"
)

// Descriptor declares one model provider and the settings it reads.
type Descriptor struct {
	ID    ProviderID      `json:"id" yaml:"id"`
	Kind  Kind            `json:"kind" yaml:"kind"`
	Label string          `json:"label" yaml:"label"`
	Grids []settings.Grid `json:"settings_config" yaml:"settings_config"`
}

// Defaults returns the default value of every setting the provider reads.
func (d Descriptor) Defaults() settings.Values {
	return settings.Defaults(d.Grids...)
}

const apiKeyPlaceholder = "Enter your ElevenLabs API key"

// Slider bounds shared by every voice setting.
const (
	sliderMin  = 0.0
	sliderMax  = 1.0
	sliderStep = 0.05
)

func credentialsGrid() settings.Grid {
	return settings.Grid{
		Key:    "credentials",
		Label:  "Credentials",
		Fields: []settings.Field{settings.Secret(stt.SettingAPIKey, "API Key", apiKeyPlaceholder)},
	}
}

// Declare returns the provider table, speech-to-text first. The table is
// rebuilt on every call so callers may modify the result.
func Declare() []Descriptor {
	return []Descriptor{
		{
			ID:    ProviderSTT,
			Kind:  KindSTT,
			Label: stt.Label,
			Grids: []settings.Grid{
				credentialsGrid(),
				{
					Key:   "settings",
					Label: "Settings",
					Fields: []settings.Field{
						settings.Text(stt.SettingModelID, "Model ID", stt.DefaultModelID, stt.DefaultModelID),
						settings.Text(stt.SettingLanguage, "Language Code (optional)", "en", ""),
					},
				},
			},
		},
		{
			ID:    ProviderTTS,
			Kind:  KindTTS,
			Label: tts.Label,
			Grids: []settings.Grid{
				credentialsGrid(),
				{
					Key:   "settings",
					Label: "Settings",
					Fields: []settings.Field{
						settings.Text(tts.SettingModelID, "Model ID", tts.DefaultModelID, tts.DefaultModelID),
						settings.Text(tts.SettingVoiceID, "Voice ID", tts.DefaultVoiceID, tts.DefaultVoiceID),
						settings.Number(tts.SettingStability, "Stability", tts.DefaultStability, sliderMin, sliderMax, sliderStep),
						settings.Number(tts.SettingSimilarityBoost, "Similarity Boost", tts.DefaultSimilarityBoost, sliderMin, sliderMax, sliderStep),
						settings.Number(tts.SettingStyle, "Style", tts.DefaultStyle, sliderMin, sliderMax, sliderStep),
					},
				},
			},
		},
	}
}

// Lookup returns the descriptor for id.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range Declare() {
		if string(d.ID) == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// SettingsPage returns the plugin-level page pointing users at the host's
// provider selection.
func SettingsPage() settings.Page {
	return settings.Page{
		Key:   Vendor,
		Label: Vendor,
		Icon:  "mic",
		Grids: []settings.Grid{{
			Key:   "setup",
			Label: "Setup",
			Fields: []settings.Field{
				settings.Paragraph("info_text",
					`To use ElevenLabs STT, select it as your "STT provider" in "Advanced" → "STT Settings".`),
				settings.Paragraph("info_text_tts",
					`To use ElevenLabs TTS, select it as your "TTS provider" in "Advanced" → "TTS Settings".`),
				settings.Paragraph("more_info",
					`Make sure to obtain an API key from <a href="https://elevenlabs.io" target="_blank">ElevenLabs</a> and configure the necessary settings for each model provider.`),
			},
		}},
	}
}
