// Package elevenlabs implements synthesis.Provider with ElevenLabs
// streaming text-to-speech. Audio is 16-bit signed little-endian mono PCM at
// 24 kHz.
package elevenlabs

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/COVAS-Labs/plugin-elevenlabs/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/httpclient"
	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/observability"
	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	"github.com/COVAS-Labs/plugin-elevenlabs/synthesis"
	"github.com/COVAS-Labs/plugin-elevenlabs/validation"
)

const (
	// ProviderName is the registered name for the ElevenLabs TTS provider.
	ProviderName = "elevenlabs-tts"
	// Label is the provider's display name.
	Label = "ElevenLabs TTS"

	SettingAPIKey          = "elevenlabs_api_key"
	SettingModelID         = "elevenlabs_model_id"
	SettingVoiceID         = "elevenlabs_voice_id"
	SettingStability       = "elevenlabs_stability"
	SettingSimilarityBoost = "elevenlabs_similarity_boost"
	SettingStyle           = "elevenlabs_style"

	DefaultModelID         = "eleven_flash_v2_5"
	DefaultVoiceID         = "JBFqnCBsd6RMkjVDRZzb"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.75
	DefaultStyle           = 0.0

	// OutputFormat is the only format requested.
	OutputFormat = elevenlabs.OutputPCM24000

	readBufferSize = 4096
)

// Config holds the host settings for one adapter instance.
type Config struct {
	APIKey          string  `setting:"elevenlabs_api_key" validate:"required"`
	ModelID         string  `setting:"elevenlabs_model_id"`
	VoiceID         string  `setting:"elevenlabs_voice_id"`
	Stability       float64 `setting:"elevenlabs_stability" validate:"gte=0,lte=1"`
	SimilarityBoost float64 `setting:"elevenlabs_similarity_boost" validate:"gte=0,lte=1"`
	Style           float64 `setting:"elevenlabs_style" validate:"gte=0,lte=1"`
	UseSpeakerBoost bool
}

// DefaultConfig returns the settings defaults with the given API key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		ModelID:         DefaultModelID,
		VoiceID:         DefaultVoiceID,
		Stability:       DefaultStability,
		SimilarityBoost: DefaultSimilarityBoost,
		Style:           DefaultStyle,
		UseSpeakerBoost: true,
	}
}

// ConfigFromSettings reads Config from the flat settings mapping. Numeric
// values that cannot be read as numbers are configuration errors.
func ConfigFromSettings(s settings.Values) (Config, error) {
	cfg := DefaultConfig(s.String(SettingAPIKey, ""))
	cfg.ModelID = s.String(SettingModelID, DefaultModelID)
	cfg.VoiceID = s.String(SettingVoiceID, DefaultVoiceID)

	for _, f := range []struct {
		key string
		def float64
		dst *float64
	}{
		{SettingStability, DefaultStability, &cfg.Stability},
		{SettingSimilarityBoost, DefaultSimilarityBoost, &cfg.SimilarityBoost},
		{SettingStyle, DefaultStyle, &cfg.Style},
	} {
		v, err := s.Float(f.key, f.def)
		if err != nil {
			return Config{}, errors.InvalidSetting(f.key, "must be a number").WithCause(err)
		}
		*f.dst = v
	}
	return cfg, nil
}

// ClientFactory builds the vendor client on first use.
type ClientFactory func(cfg elevenlabs.Config) (elevenlabs.Synthesizer, error)

func newClient(cfg elevenlabs.Config) (elevenlabs.Synthesizer, error) {
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

// WithClientConfig sets the vendor base URL and transport. The API key
// always comes from Config.
func WithClientConfig(cfg elevenlabs.Config) Option {
	return func(o *options) { o.client = cfg }
}

// WithClientFactory replaces how the vendor client is built.
func WithClientFactory(f ClientFactory) Option {
	return func(o *options) { o.newClient = f }
}

// WithLogger sets the logger used for call and stream logging.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

type streamRequest struct {
	text    string
	voiceID string
}

// Provider implements synthesis.Provider using the ElevenLabs API.
type Provider struct {
	cfg     Config
	client  *provider.Lazy[elevenlabs.Synthesizer]
	open    provider.RequestResponse[streamRequest, io.ReadCloser]
	log     *logger.Logger
	metrics *observability.Metrics
}

var (
	_ synthesis.Provider     = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
)

// New validates cfg and creates a Provider. No client is built and no
// network call is made until the first Synthesize.
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
		o.log = logger.Get("tts")
	}
	if o.metrics == nil {
		o.metrics = observability.DefaultMetrics()
	}

	clientCfg := o.client
	clientCfg.APIKey = cfg.APIKey
	log := o.log.WithFields(logger.Fields(
		logger.FieldProvider, ProviderName,
		logger.FieldModel, cfg.ModelID,
	))

	p := &Provider{
		cfg:     cfg,
		log:     log,
		metrics: o.metrics,
		client: provider.NewLazy(func(context.Context) (elevenlabs.Synthesizer, error) {
			return o.newClient(clientCfg)
		}),
	}

	p.open = provider.Chain(
		provider.WithLogging[streamRequest, io.ReadCloser](log, "ElevenLabs TTS synthesis"),
		provider.WithTracing[streamRequest, io.ReadCloser]("elevenlabs", map[string]any{
			observability.AttrProvider: ProviderName,
			observability.AttrModel:    cfg.ModelID,
		}),
		provider.WithMetrics[streamRequest, io.ReadCloser](o.metrics, ProviderName),
	)(provider.Func(errors.OpSynthesize, p.openStream))

	return p, nil
}

// Factory returns a provider.Factory that creates Providers from the host
// settings mapping.
func Factory(opts ...Option) provider.Factory[synthesis.Provider] {
	return func(s map[string]any) (synthesis.Provider, error) {
		if settings.Values(s).String(SettingAPIKey, "") == "" {
			return nil, errors.MissingAPIKey(Label, SettingAPIKey)
		}
		cfg, err := ConfigFromSettings(s)
		if err != nil {
			return nil, err
		}
		p, err := New(cfg, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// ModelID returns the model this instance uses.
func (p *Provider) ModelID() string { return p.cfg.ModelID }

// DefaultVoice returns the voice id from the host settings.
func (p *Provider) DefaultVoice() string { return p.cfg.VoiceID }

// IsAvailable reports whether the provider can serve requests. It makes no
// network calls.
func (p *Provider) IsAvailable(context.Context) bool {
	return p.client.LastError() == nil
}

// Health reports the state of the vendor client handle.
func (p *Provider) Health(context.Context) provider.HealthStatus {
	return provider.LazyHealth(p.client)
}

// Synthesize opens a PCM stream for text. The returned iterator yields
// non-empty chunks in arrival order and releases the connection at end of
// stream, on error, or on Close. Empty text is sent as is; the vendor's
// rejection surfaces as a remote call error.
func (p *Provider) Synthesize(ctx context.Context, text, voiceID string) (provider.Iterator[[]byte], error) {
	ctx = provider.EnsureRequestID(ctx)
	body, err := p.open.Execute(ctx, streamRequest{text: text, voiceID: voiceID})
	if err != nil {
		return nil, err
	}

	p.metrics.StreamOpened(ctx, ProviderName)
	s := &stream{
		body:    body,
		buf:     make([]byte, readBufferSize),
		log:     p.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldVoice, voiceID)),
		metrics: p.metrics,
		ctx:     ctx,
	}
	return provider.Filter(provider.NewIterator(s.next, s.close), nonEmpty), nil
}

func (p *Provider) openStream(ctx context.Context, req streamRequest) (io.ReadCloser, error) {
	client, err := p.client.Get(ctx)
	if err != nil {
		return nil, errors.IntegrationUnavailable("ElevenLabs", err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrVoice, req.voiceID)

	body, err := client.SynthesizeStream(ctx, req.voiceID, elevenlabs.SynthesizeRequest{
		Text:    req.text,
		ModelID: p.cfg.ModelID,
		VoiceSettings: &elevenlabs.VoiceSettings{
			Stability:       p.cfg.Stability,
			SimilarityBoost: p.cfg.SimilarityBoost,
			Style:           p.cfg.Style,
			UseSpeakerBoost: p.cfg.UseSpeakerBoost,
		},
		OutputFormat: OutputFormat,
	})
	if err != nil {
		return nil, errors.SynthesisFailed(err).WithRetryable(httpclient.IsRetryable(err))
	}
	return body, nil
}

func nonEmpty(chunk []byte) bool { return len(chunk) > 0 }

// stream reads one vendor response body. next is driven by a single
// consumer; close may run concurrently from another goroutine.
type stream struct {
	body    io.ReadCloser
	buf     []byte
	pending error
	log     *logger.Logger
	metrics *observability.Metrics
	ctx     context.Context

	bytes  atomic.Int64
	chunks atomic.Int64
	closed atomic.Bool
}

func (s *stream) next(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, s.fail(err)
	}
	if s.pending != nil {
		return nil, false, s.fail(s.pending)
	}

	n, err := s.body.Read(s.buf)
	if n > 0 {
		chunk := make([]byte, n)
		copy(chunk, s.buf[:n])
		s.bytes.Add(int64(n))
		s.chunks.Add(1)
		s.metrics.RecordAudioBytes(s.ctx, errors.OpSynthesize, ProviderName, n)
		if err != nil && err != io.EOF {
			// Deliver what arrived before reporting the failure.
			s.pending = err
		}
		return chunk, true, nil
	}
	switch {
	case err == io.EOF:
		return nil, false, nil
	case err != nil && s.closed.Load():
		// Close raced a pending read; the consumer abandoned the stream.
		return nil, false, nil
	case err != nil:
		return nil, false, s.fail(err)
	}
	// Zero-byte read: an empty chunk, dropped by the filter.
	return nil, true, nil
}

func (s *stream) fail(cause error) error {
	err := errors.SynthesisFailed(cause).WithRetryable(httpclient.IsRetryable(cause))
	s.log.Error("ElevenLabs TTS synthesis failed: "+cause.Error(), logger.MergeWithError(
		s.fields(), cause))
	s.metrics.RecordError(s.ctx, string(errors.ErrCodeRemoteCall), ProviderName)
	return err
}

func (s *stream) close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.metrics.StreamClosed(s.ctx, ProviderName)
	s.log.Debug("audio stream closed", s.fields())
	return s.body.Close()
}

func (s *stream) fields() map[string]interface{} {
	return logger.Fields(logger.FieldBytes, s.bytes.Load(), logger.FieldChunks, s.chunks.Load())
}
