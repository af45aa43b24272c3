package httpclient

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/security"
)

const (
	defaultTimeout = 60 * time.Second
)

// MessageDecoder extracts a human readable message from a failed response
// body. It returns "" when the body carries nothing useful.
type MessageDecoder func(statusCode int, body []byte) string

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds non-streaming requests. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent is sent on every request when set.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// DecodeMessage turns vendor error bodies into Error.Message.
	DecodeMessage MessageDecoder `yaml:"-" mapstructure:"-"`

	// TLS adjusts certificate verification. Ignored when Transport is set.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Transport overrides the default transport.
	Transport http.RoundTripper `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("httpclient: base url %q must be absolute", c.BaseURL)
		}
	}
	if err := c.TLS.Validate(); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	return nil
}
