package plugin

import (
	"context"
	"fmt"

	"github.com/COVAS-Labs/plugin-elevenlabs/config"
	"github.com/COVAS-Labs/plugin-elevenlabs/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/observability"
	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	"github.com/COVAS-Labs/plugin-elevenlabs/synthesis"
	tts "github.com/COVAS-Labs/plugin-elevenlabs/synthesis/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/transcription"
	stt "github.com/COVAS-Labs/plugin-elevenlabs/transcription/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/version"
)

// Plugin creates ElevenLabs models on behalf of the host. It keeps no state
// besides its runtime config and the two factory registries; every
// CreateModel call returns an independent model.
type Plugin struct {
	cfg *config.Config
	log *logger.Logger

	transcribers *provider.Registry[transcription.Provider]
	synthesizers *provider.Registry[synthesis.Provider]

	shutdown func(context.Context) error
}

// Option configures a Plugin.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
	client  *elevenlabs.Config
}

// WithLogger sets the base logger. Providers log through named children of
// it. Without it the named loggers "plugin", "stt" and "tts" come from the
// logger registry.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metric instruments shared by all models.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClientConfig overrides the vendor connection derived from config.
// Any API key in cfg is ignored.
func WithClientConfig(cfg elevenlabs.Config) Option {
	return func(o *options) { o.client = &cfg }
}

// New validates cfg and registers the speech-to-text and text-to-speech
// factories. A nil cfg means config.Default().
func New(cfg *config.Config, opts ...Option) (*Plugin, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	component := func(name string) *logger.Logger {
		if o.log == nil {
			return logger.Get(name)
		}
		return o.log.WithComponent(name)
	}
	if o.metrics == nil {
		o.metrics = observability.DefaultMetrics()
	}

	client := elevenlabs.Config{
		BaseURL: cfg.ElevenLabs.BaseURL,
		Timeout: cfg.ElevenLabs.Timeout,
		TLS:     &cfg.ElevenLabs.TLS,
	}
	if o.client != nil {
		client = *o.client
		client.APIKey = ""
	}

	p := &Plugin{
		cfg:          cfg,
		log:          component("plugin"),
		transcribers: transcription.NewRegistry(),
		synthesizers: synthesis.NewRegistry(),
	}
	p.transcribers.RegisterFactory(string(ProviderSTT), stt.Factory(
		stt.WithClientConfig(client),
		stt.WithLogger(component("stt")),
		stt.WithMetrics(o.metrics),
	))
	p.synthesizers.RegisterFactory(string(ProviderTTS), tts.Factory(
		tts.WithClientConfig(client),
		tts.WithLogger(component("tts")),
		tts.WithMetrics(o.metrics),
	))
	return p, nil
}

// Open loads the runtime config, initializes the global logger and the
// configured OTLP exporters, and returns a ready Plugin. Call Shutdown to
// flush telemetry.
func Open(ctx context.Context, opts ...config.LoaderOption) (*Plugin, error) {
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging, cfg.Name)
	logger.RegisterDefaults("plugin", "stt", "tts")

	shutdown, err := observability.Setup(ctx, cfg, version.Version)
	if err != nil {
		return nil, errors.IntegrationUnavailable("telemetry", err)
	}

	p, err := New(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	p.shutdown = shutdown

	p.log.Info("plugin initialized", logger.Fields(
		"version", version.Get().Short(),
		"environment", cfg.Environment,
		"base_url", cfg.ElevenLabs.BaseURL,
		"providers", append(p.transcribers.List(), p.synthesizers.List()...),
	))
	return p, nil
}

// Shutdown flushes telemetry started by Open. It is a no-op for plugins
// built with New.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}
	if err := p.shutdown(ctx); err != nil {
		return fmt.Errorf("plugin shutdown: %w", err)
	}
	return nil
}

// Config returns the runtime config the plugin was built with.
func (p *Plugin) Config() *config.Config { return p.cfg }

// CreateModel builds the model for providerID from the host settings.
// Unknown ids and missing API keys are configuration errors; no network
// call is made.
func (p *Plugin) CreateModel(providerID string, s settings.Values) (Model, error) {
	id, err := ParseProviderID(providerID)
	if err != nil {
		p.log.Warn(err.Error(), logger.Fields(logger.FieldProvider, providerID))
		return Model{}, err
	}

	var m Model
	switch id {
	case ProviderSTT:
		m.Kind = KindSTT
		m.transcriber, err = p.transcribers.Create(string(id), s)
	case ProviderTTS:
		m.Kind = KindTTS
		m.synthesizer, err = p.synthesizers.Create(string(id), s)
	}
	if err != nil {
		p.log.Warn("model creation failed", logger.MergeWithError(logger.Fields(logger.FieldProvider, providerID), err))
		return Model{}, err
	}

	p.log.Debug("model created", logger.Fields(
		logger.FieldProvider, providerID,
		"api_key", logger.MaskSecret(s.String(stt.SettingAPIKey, "")),
	))
	return m, nil
}

// CreateTranscriber is CreateModel for callers that need speech-to-text.
func (p *Plugin) CreateTranscriber(providerID string, s settings.Values) (transcription.Provider, error) {
	m, err := p.CreateModel(providerID, s)
	if err != nil {
		return nil, err
	}
	t, ok := m.Transcriber()
	if !ok {
		return nil, errors.InvalidSetting("provider", fmt.Sprintf("%s is not a speech-to-text provider", providerID))
	}
	return t, nil
}

// CreateSynthesizer is CreateModel for callers that need text-to-speech.
func (p *Plugin) CreateSynthesizer(providerID string, s settings.Values) (synthesis.Provider, error) {
	m, err := p.CreateModel(providerID, s)
	if err != nil {
		return nil, err
	}
	t, ok := m.Synthesizer()
	if !ok {
		return nil, errors.InvalidSetting("provider", fmt.Sprintf("%s is not a text-to-speech provider", providerID))
	}
	return t, nil
}
