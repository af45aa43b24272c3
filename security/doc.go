// Package security builds the TLS settings for the vendor connection.
//
//	cfg := security.TLSConfig{CAFile: "/etc/ssl/proxy-ca.pem"}
//	tlsConfig, err := cfg.Build() // nil when nothing is configured
package security
