// Package plugin registers the ElevenLabs speech-to-text and text-to-speech
// providers with a host voice assistant.
//
// The host reads the static provider table from Declare and the plugin-level
// settings page from SettingsPage, then asks for models by provider id:
//
//	p, err := plugin.New(config.Default())
//	if err != nil {
//	    return err
//	}
//	stt, err := p.CreateTranscriber("elevenlabs-stt", settings.Values{
//	    "elevenlabs_api_key": key,
//	})
//
// Open does the same after loading config.yml and .env, initializing the
// global logger and, when enabled, the OTLP exporters.
package plugin
