package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/security"
)

func newTestClient(t *testing.T, h http.HandlerFunc, mutate func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := Config{BaseURL: srv.URL}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"absolute base", Config{BaseURL: "https://api.elevenlabs.io"}, false},
		{"relative base", Config{BaseURL: "/v1"}, true},
		{"bad tls version", Config{TLS: &security.TLSConfig{MinVersion: 0x0100}}, true},
		{"missing CA file", Config{TLS: &security.TLSConfig{CAFile: "/nonexistent/ca.pem"}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestClient_Do_JSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["text"] != "hi" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}, nil)

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/v1/echo",
		Body:   map[string]string{"text": "hi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || !resp.IsSuccess() {
		t.Errorf("unexpected status %d", resp.StatusCode)
	}
}

func TestClient_Do_HeadersAuthAndQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "sk_test" {
			t.Errorf("xi-api-key = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "plugin-elevenlabs/test" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "audio/pcm" {
			t.Errorf("request header should override default, got %q", got)
		}
		if got := r.URL.Query().Get("output_format"); got != "pcm_24000" {
			t.Errorf("output_format = %q", got)
		}
		if r.URL.Path != "/v1/tts" {
			t.Errorf("path = %q", r.URL.Path)
		}
	}, func(cfg *Config) {
		cfg.BaseURL += "/"
		cfg.Auth = APIKeyAuthHeader("sk_test", "xi-api-key")
		cfg.UserAgent = "plugin-elevenlabs/test"
		cfg.Headers = map[string]string{"Accept": "application/json"}
	})

	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/v1/tts",
		Headers: map[string]string{"Accept": "audio/pcm"},
		Query:   map[string]string{"output_format": "pcm_24000"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_PerRequestAuthOverride(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "override" {
			t.Errorf("xi-api-key = %q", got)
		}
	}, func(cfg *Config) {
		cfg.Auth = APIKeyAuthHeader("default", "xi-api-key")
	})

	_, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/",
		Auth:   APIKeyAuthHeader("override", "xi-api-key"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_ErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, IsAuth},
		{http.StatusNotFound, IsNotFound},
		{http.StatusTooManyRequests, IsRateLimit},
		{http.StatusBadGateway, IsRetryable},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`oops`))
			}, nil)
			resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			if !tc.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
			if resp == nil || string(resp.Body) != "oops" {
				t.Errorf("expected the response alongside the error, got %+v", resp)
			}
		})
	}
}

func TestClient_Do_DecodeMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`invalid key`))
	}, func(cfg *Config) {
		cfg.DecodeMessage = func(status int, body []byte) string {
			return strings.ToUpper(string(body))
		}
	})

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil || !strings.Contains(err.Error(), "INVALID KEY") {
		t.Errorf("expected decoded message, got %v", err)
	}
}

func TestClient_Do_DeadlineExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) || !IsRetryable(err) {
		t.Errorf("expected retryable timeout error, got %v", err)
	}
}

func TestClient_Do_ContextCanceled(t *testing.T) {
	started := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"})

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if e.Code != ErrCodeCanceled {
		t.Errorf("code = %s, want canceled", e.Code)
	}
	if IsTimeout(err) || IsRetryable(err) {
		t.Errorf("canceled request must not be a retryable timeout: %v", err)
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err == nil || IsTimeout(err) || !IsRetryable(err) {
		t.Errorf("expected retryable connection error, got %v", err)
	}
}

func TestClient_Do_FullURL_IgnoresBaseURL(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("other"))
	}))
	defer other.Close()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("base server should not be called")
	}, nil)

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: other.URL + "/x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "other" {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestClient_Do_RawBodies(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		wantCT string
	}{
		{"string", "hello", "text/plain"},
		{"bytes", []byte("raw"), ""},
		{"reader", strings.NewReader("streamed"), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Content-Type"); got != tc.wantCT {
					t.Errorf("Content-Type = %q, want %q", got, tc.wantCT)
				}
			}, nil)
			if _, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: tc.body}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestClient_DoStream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/pcm")
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"abc", "def"} {
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	}, func(cfg *Config) {
		// Streams are not bounded by the request timeout.
		cfg.Timeout = time.Nanosecond
	})

	stream, err := c.DoStream(context.Background(), Request{Method: http.MethodPost, Path: "/stream"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stream.Close()

	if stream.Headers["Content-Type"] != "audio/pcm" {
		t.Errorf("unexpected headers %v", stream.Headers)
	}
	data, err := io.ReadAll(stream.Body)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "abcdef" {
		t.Errorf("stream = %q, want abcdef", data)
	}
}

func TestClient_DoStream_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"voice_not_found"}`))
	}, nil)

	stream, err := c.DoStream(context.Background(), Request{Method: http.MethodPost, Path: "/stream"})
	if stream != nil {
		t.Error("expected no stream on error status")
	}
	var e *Error
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	e = err.(*Error)
	if !strings.Contains(string(e.Body), "voice_not_found") {
		t.Errorf("expected body kept on error, got %q", e.Body)
	}
}

func TestStreamResponse_CloseNilBody(t *testing.T) {
	if err := (&StreamResponse{}).Close(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestClient_TLSSkipVerify(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	strict, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := strict.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err == nil {
		t.Fatal("expected the self-signed certificate to be rejected")
	}

	relaxed, err := New(Config{BaseURL: srv.URL, TLS: &security.TLSConfig{SkipVerify: true}})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := relaxed.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if string(resp.Body) != "ok" {
		t.Errorf("body = %q", resp.Body)
	}
}
