package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/security"
	"github.com/COVAS-Labs/plugin-elevenlabs/validation"
)

// ServiceName is the default name reported in logs and telemetry.
const ServiceName = "plugin-elevenlabs"

const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultTimeout = 60 * time.Second
)

// Config is the plugin runtime configuration. It does not carry vendor
// credentials; those arrive per model through the host's settings.
type Config struct {
	Name          string              `yaml:"name" mapstructure:"name"`
	Environment   string              `yaml:"environment" mapstructure:"environment"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	ElevenLabs    VendorConfig        `yaml:"elevenlabs" mapstructure:"elevenlabs"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// VendorConfig configures the HTTP connection to the speech vendor.
type VendorConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Timeout bounds non-streaming calls. Streaming synthesis is bounded only
	// by the caller's context.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// TLS is only needed behind a TLS-intercepting proxy.
	TLS security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ObservabilityConfig toggles OpenTelemetry export.
type ObservabilityConfig struct {
	Tracing ExporterConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics ExporterConfig `yaml:"metrics" mapstructure:"metrics"`
}

// ExporterConfig configures one OTLP/HTTP exporter.
type ExporterConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate applies to tracing only.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to the configuration.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.ElevenLabs.BaseURL == "" {
		c.ElevenLabs.BaseURL = DefaultBaseURL
	}
	if c.ElevenLabs.Timeout == 0 {
		c.ElevenLabs.Timeout = DefaultTimeout
	}
	if c.Observability.Tracing.Endpoint == "" {
		c.Observability.Tracing.Endpoint = "localhost:4318"
	}
	if c.Observability.Tracing.SampleRate == 0 {
		c.Observability.Tracing.SampleRate = 1.0
	}
	if c.Observability.Metrics.Endpoint == "" {
		c.Observability.Metrics.Endpoint = "localhost:4318"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	v := validation.New()
	v.Required("name", c.Name)
	v.OneOf("environment", c.Environment, []string{"development", "staging", "production"})
	v.Required("elevenlabs.base_url", c.ElevenLabs.BaseURL)
	if c.ElevenLabs.BaseURL != "" {
		u, err := url.Parse(c.ElevenLabs.BaseURL)
		v.Custom(err == nil && u.Scheme != "" && u.Host != "", "elevenlabs.base_url", "must be an absolute URL")
	}
	v.Custom(c.ElevenLabs.Timeout >= 0, "elevenlabs.timeout", "must not be negative")
	if err := c.ElevenLabs.TLS.Validate(); err != nil {
		v.AddError("elevenlabs.tls", err.Error())
	}
	v.FloatRange("observability.tracing.sample_rate", c.Observability.Tracing.SampleRate, 0, 1)
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
	return v.Err()
}

// String renders a short summary for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("%s[%s] base_url=%s timeout=%s", c.Name, c.Environment, c.ElevenLabs.BaseURL, c.ElevenLabs.Timeout)
}
