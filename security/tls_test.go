package security

import (
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCA stores the certificate of srv as a PEM file.
func writeCA(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ca.pem")
	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(path, block, 0o600); err != nil {
		t.Fatalf("write CA: %v", err)
	}
	return path
}

func get(cfg *tls.Config, url string) error {
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func TestTLSConfig_NothingConfigured(t *testing.T) {
	for _, cfg := range []*TLSConfig{nil, {}} {
		got, err := cfg.Build()
		if err != nil || got != nil {
			t.Errorf("Build(%+v) = %v, %v; want nil, nil", cfg, got, err)
		}
		if cfg.IsEnabled() {
			t.Errorf("IsEnabled(%+v) = true", cfg)
		}
	}
}

func TestTLSConfig_Defaults(t *testing.T) {
	got, err := (&TLSConfig{ServerName: "api.elevenlabs.io"}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got.MinVersion != tls.VersionTLS12 || got.ServerName != "api.elevenlabs.io" || got.InsecureSkipVerify {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		version uint16
		wantErr bool
	}{
		{"unset", 0, false},
		{"tls12", tls.VersionTLS12, false},
		{"tls13", tls.VersionTLS13, false},
		{"tls10", tls.VersionTLS10, true},
		{"garbage", 0x9999, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := (&TLSConfig{MinVersion: tc.version}).Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTLSConfig_CAFile(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	if err := get(&tls.Config{MinVersion: tls.VersionTLS12}, srv.URL); err == nil {
		t.Fatal("expected the test certificate to be rejected without the CA")
	}

	cfg, err := (&TLSConfig{CAFile: writeCA(t, srv)}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := get(cfg, srv.URL); err != nil {
		t.Errorf("expected the CA to be trusted, got %v", err)
	}
}

func TestTLSConfig_CAFileErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.pem")
	if err := os.WriteFile(empty, []byte("nothing here"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "missing.pem"), "read CA file"},
		{"no certificates", empty, "no certificates"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := (&TLSConfig{CAFile: tc.path}).Build()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
