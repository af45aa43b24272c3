package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSConfig adjusts how the vendor's certificate is verified. The zero value
// uses the system roots.
type TLSConfig struct {
	// CAFile is a PEM bundle trusted in addition to the system roots, for
	// TLS-intercepting proxies.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// ServerName overrides the name checked against the certificate.
	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// SkipVerify disables certificate verification. Local testing only.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// MinVersion is the minimum TLS version. Defaults to TLS 1.2.
	MinVersion uint16 `yaml:"min_version" mapstructure:"min_version"`
}

// IsEnabled reports whether any setting differs from the defaults.
func (c *TLSConfig) IsEnabled() bool {
	return c != nil && (c.CAFile != "" || c.ServerName != "" || c.SkipVerify || c.MinVersion != 0)
}

// Validate checks the settings without touching the file system.
func (c *TLSConfig) Validate() error {
	if c == nil || c.MinVersion == 0 {
		return nil
	}
	if c.MinVersion < tls.VersionTLS12 || c.MinVersion > tls.VersionTLS13 {
		return fmt.Errorf("security/tls: unsupported min_version 0x%04x", c.MinVersion)
	}
	return nil
}

// Build returns the client TLS config, or nil when nothing is configured.
func (c *TLSConfig) Build() (*tls.Config, error) {
	if !c.IsEnabled() {
		return nil, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	minVersion := c.MinVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}
	cfg := &tls.Config{
		ServerName:         c.ServerName,
		InsecureSkipVerify: c.SkipVerify, //nolint:gosec // opt-in for local testing
		MinVersion:         minVersion,
	}
	if c.CAFile != "" {
		pool, err := c.rootCAs()
		if err != nil {
			return nil, err
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}

func (c *TLSConfig) rootCAs() (*x509.CertPool, error) {
	pem, err := os.ReadFile(c.CAFile)
	if err != nil {
		return nil, fmt.Errorf("security/tls: read CA file: %w", err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("security/tls: no certificates in %s", c.CAFile)
	}
	return pool, nil
}
