// Package elevenlabs implements transcription.Provider with ElevenLabs
// Scribe.
package elevenlabs

import (
	"context"
	"strings"

	"github.com/COVAS-Labs/plugin-elevenlabs/audio"
	"github.com/COVAS-Labs/plugin-elevenlabs/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/httpclient"
	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/observability"
	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	"github.com/COVAS-Labs/plugin-elevenlabs/transcription"
	"github.com/COVAS-Labs/plugin-elevenlabs/validation"
)

const (
	// ProviderName is the registered name for the ElevenLabs STT provider.
	ProviderName = "elevenlabs-stt"
	// Label is the provider's display name.
	Label = "ElevenLabs STT"

	SettingAPIKey   = "elevenlabs_api_key"
	SettingModelID  = "elevenlabs_stt_model_id"
	SettingLanguage = "elevenlabs_stt_language"

	DefaultModelID = "scribe_v1"

	// Audio is uploaded as 16 kHz, 16-bit mono WAV.
	SampleRate  = 16000
	SampleWidth = 2
)

// Config holds the host settings for one adapter instance.
type Config struct {
	APIKey   string `setting:"elevenlabs_api_key" validate:"required"`
	ModelID  string `setting:"elevenlabs_stt_model_id"`
	Language string `setting:"elevenlabs_stt_language"`
}

// ConfigFromSettings reads Config from the flat settings mapping.
func ConfigFromSettings(s settings.Values) Config {
	return Config{
		APIKey:   s.String(SettingAPIKey, ""),
		ModelID:  s.String(SettingModelID, DefaultModelID),
		Language: s.String(SettingLanguage, ""),
	}
}

// ClientFactory builds the vendor client on first use.
type ClientFactory func(cfg elevenlabs.Config) (elevenlabs.Transcriber, error)

func newClient(cfg elevenlabs.Config) (elevenlabs.Transcriber, error) {
	c, err := elevenlabs.New(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	client    elevenlabs.Config
	newClient ClientFactory
	log       *logger.Logger
	metrics   *observability.Metrics
}

// WithClientConfig sets the vendor base URL, timeout and transport. The API
// key always comes from Config.
func WithClientConfig(cfg elevenlabs.Config) Option {
	return func(o *options) { o.client = cfg }
}

// WithClientFactory replaces how the vendor client is built.
func WithClientFactory(f ClientFactory) Option {
	return func(o *options) { o.newClient = f }
}

// WithLogger sets the logger used for call logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Provider implements transcription.Provider using the ElevenLabs API.
type Provider struct {
	cfg     Config
	client  *provider.Lazy[elevenlabs.Transcriber]
	call    provider.RequestResponse[audio.Source, string]
	metrics *observability.Metrics
}

var (
	_ transcription.Provider = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
)

// New validates cfg and creates a Provider. No client is built and no
// network call is made until the first Transcribe.
func New(cfg Config, opts ...Option) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.MissingAPIKey(Label, SettingAPIKey)
	}
	if err := validation.Validate(cfg); err != nil {
		return nil, err
	}

	o := options{newClient: newClient}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("stt")
	}
	if o.metrics == nil {
		o.metrics = observability.DefaultMetrics()
	}

	clientCfg := o.client
	clientCfg.APIKey = cfg.APIKey
	p := &Provider{
		cfg:     cfg,
		metrics: o.metrics,
		client: provider.NewLazy(func(context.Context) (elevenlabs.Transcriber, error) {
			return o.newClient(clientCfg)
		}),
	}

	p.call = provider.Chain(
		provider.WithLogging[audio.Source, string](o.log.WithFields(logger.Fields(
			logger.FieldProvider, ProviderName,
			logger.FieldModel, cfg.ModelID,
		)), "ElevenLabs STT transcription"),
		provider.WithTracing[audio.Source, string]("elevenlabs", map[string]any{
			observability.AttrProvider: ProviderName,
			observability.AttrModel:    cfg.ModelID,
			observability.AttrLanguage: cfg.Language,
		}),
		provider.WithMetrics[audio.Source, string](o.metrics, ProviderName),
	)(provider.Func(errors.OpTranscribe, p.transcribe))

	return p, nil
}

// Factory returns a provider.Factory that creates Providers from the host
// settings mapping.
func Factory(opts ...Option) provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		p, err := New(ConfigFromSettings(cfg), opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ModelID returns the Scribe model this instance uses.
func (p *Provider) ModelID() string { return p.cfg.ModelID }

// IsAvailable reports whether the provider can serve requests. It makes no
// network calls.
func (p *Provider) IsAvailable(context.Context) bool {
	return p.client.LastError() == nil
}

// Health reports the state of the vendor client handle.
func (p *Provider) Health(context.Context) provider.HealthStatus {
	return provider.LazyHealth(p.client)
}

// Transcribe renders src as 16 kHz mono WAV, uploads it and returns the
// trimmed transcript. A missing or null transcript yields "".
func (p *Provider) Transcribe(ctx context.Context, src audio.Source) (string, error) {
	return p.call.Execute(provider.EnsureRequestID(ctx), src)
}

func (p *Provider) transcribe(ctx context.Context, src audio.Source) (string, error) {
	client, err := p.client.Get(ctx)
	if err != nil {
		return "", errors.IntegrationUnavailable("ElevenLabs", err)
	}
	if src == nil {
		return "", errors.TranscriptionFailed(audio.ErrInvalidFormat)
	}

	wav, err := src.WAV(SampleRate, SampleWidth)
	if err != nil {
		return "", errors.TranscriptionFailed(err)
	}
	p.metrics.RecordAudioBytes(ctx, errors.OpTranscribe, ProviderName, len(wav))

	res, err := client.Transcribe(ctx, elevenlabs.TranscribeRequest{
		Audio:        wav,
		FileName:     "audio.wav",
		ModelID:      p.cfg.ModelID,
		LanguageCode: p.cfg.Language,
	})
	if err != nil {
		return "", errors.TranscriptionFailed(err).WithRetryable(httpclient.IsRetryable(err))
	}
	if res == nil || res.Text == nil {
		return "", nil
	}
	return strings.TrimSpace(*res.Text), nil
}
