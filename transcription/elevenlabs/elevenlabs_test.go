package elevenlabs

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/COVAS-Labs/plugin-elevenlabs/audio"
	"github.com/COVAS-Labs/plugin-elevenlabs/elevenlabs"
	"github.com/COVAS-Labs/plugin-elevenlabs/elevenlabs/elevenlabstest"
	"github.com/COVAS-Labs/plugin-elevenlabs/errors"
	"github.com/COVAS-Labs/plugin-elevenlabs/httpclient"
	"github.com/COVAS-Labs/plugin-elevenlabs/logger"
	"github.com/COVAS-Labs/plugin-elevenlabs/provider"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
)

type mockTranscriber struct {
	mu       sync.Mutex
	text     *string
	err      error
	requests []elevenlabs.TranscribeRequest
}

func (m *mockTranscriber) Transcribe(_ context.Context, req elevenlabs.TranscribeRequest) (*elevenlabs.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &elevenlabs.Transcription{Text: m.text}, nil
}

// countingFactory hands out mock on every build and counts builds.
type countingFactory struct {
	mock   *mockTranscriber
	err    error
	builds int
	keys   []string
}

func (f *countingFactory) build(cfg elevenlabs.Config) (elevenlabs.Transcriber, error) {
	f.builds++
	f.keys = append(f.keys, cfg.APIKey)
	if f.err != nil {
		return nil, f.err
	}
	return f.mock, nil
}

func text(s string) *string { return &s }

func speech() audio.Data {
	frames := make([]byte, 3200)
	binary.LittleEndian.PutUint16(frames, 1000)
	return audio.Data{Frames: frames, SampleRate: 16000, SampleWidth: 2}
}

func newProvider(t *testing.T, cfg Config, f *countingFactory, opts ...Option) *Provider {
	t.Helper()
	opts = append([]Option{WithClientFactory(f.build), WithLogger(logger.Nop())}, opts...)
	p, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNew_MissingAPIKey(t *testing.T) {
	f := &countingFactory{mock: &mockTranscriber{}}
	_, err := New(Config{ModelID: DefaultModelID}, WithClientFactory(f.build))
	if !errors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ElevenLabs STT: No API key provided") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if f.builds != 0 {
		t.Errorf("expected no client to be built, got %d builds", f.builds)
	}
}

func TestNew_DoesNotBuildClient(t *testing.T) {
	f := &countingFactory{mock: &mockTranscriber{}}
	p := newProvider(t, Config{APIKey: "k"}, f)
	if f.builds != 0 {
		t.Errorf("expected lazy construction, got %d builds", f.builds)
	}
	if !p.IsAvailable(context.Background()) {
		t.Error("expected provider to be available before first call")
	}
	if got := p.Health(context.Background()).Status; got != provider.StatusDegraded {
		t.Errorf("expected degraded before first call, got %v", got)
	}
}

func TestTranscribe_Text(t *testing.T) {
	tests := []struct {
		name string
		text *string
		want string
	}{
		{"trimmed", text("  hello world  "), "hello world"},
		{"null", nil, ""},
		{"empty", text(""), ""},
		{"whitespace", text(" \n "), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &countingFactory{mock: &mockTranscriber{text: tc.text}}
			p := newProvider(t, Config{APIKey: "k", ModelID: DefaultModelID}, f)

			got, err := p.Transcribe(context.Background(), speech())
			if err != nil {
				t.Fatalf("Transcribe failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Transcribe = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTranscribe_BuildsClientOnce(t *testing.T) {
	f := &countingFactory{mock: &mockTranscriber{text: text("hi")}}
	p := newProvider(t, Config{APIKey: "sk_abc", ModelID: DefaultModelID}, f)

	for i := 0; i < 3; i++ {
		if _, err := p.Transcribe(context.Background(), speech()); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if f.builds != 1 {
		t.Errorf("expected 1 client build, got %d", f.builds)
	}
	if f.keys[0] != "sk_abc" {
		t.Errorf("expected api key passed to client, got %q", f.keys[0])
	}
	if got := p.Health(context.Background()).Status; got != provider.StatusHealthy {
		t.Errorf("expected healthy after first call, got %v", got)
	}
}

func TestTranscribe_ConcurrentCallsBuildOnce(t *testing.T) {
	f := &countingFactory{mock: &mockTranscriber{text: text("hi")}}
	p := newProvider(t, Config{APIKey: "k"}, f)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Transcribe(context.Background(), speech())
		}()
	}
	wg.Wait()
	if f.builds != 1 {
		t.Errorf("expected 1 client build, got %d", f.builds)
	}
}

func TestTranscribe_ModelPerInstance(t *testing.T) {
	mock := &mockTranscriber{text: text("hi")}
	a := newProvider(t, Config{APIKey: "k", ModelID: "scribe_v1"}, &countingFactory{mock: mock})
	b := newProvider(t, Config{APIKey: "k", ModelID: "scribe_v2"}, &countingFactory{mock: mock})

	if _, err := a.Transcribe(context.Background(), speech()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Transcribe(context.Background(), speech()); err != nil {
		t.Fatal(err)
	}
	if mock.requests[0].ModelID != "scribe_v1" || mock.requests[1].ModelID != "scribe_v2" {
		t.Errorf("unexpected models %q, %q", mock.requests[0].ModelID, mock.requests[1].ModelID)
	}
	if a.ModelID() != "scribe_v1" || b.ModelID() != "scribe_v2" {
		t.Error("ModelID accessor mismatch")
	}
}

func TestTranscribe_LanguagePassedThrough(t *testing.T) {
	lang := strings.Repeat("x", 32)
	mock := &mockTranscriber{text: text("hi")}
	p := newProvider(t, Config{APIKey: "k", ModelID: DefaultModelID, Language: lang}, &countingFactory{mock: mock})

	if _, err := p.Transcribe(context.Background(), speech()); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got := mock.requests[0].LanguageCode; got != lang {
		t.Errorf("language code = %q, want it unchanged", got)
	}
}

func TestTranscribe_RequestShape(t *testing.T) {
	mock := &mockTranscriber{text: text("hi")}
	p := newProvider(t, Config{APIKey: "k", ModelID: DefaultModelID, Language: "de"}, &countingFactory{mock: mock})

	if _, err := p.Transcribe(context.Background(), speech()); err != nil {
		t.Fatal(err)
	}
	req := mock.requests[0]
	if req.FileName != "audio.wav" || req.LanguageCode != "de" {
		t.Errorf("unexpected request %+v", req)
	}
	parsed, err := audio.ParseWAV(req.Audio)
	if err != nil {
		t.Fatalf("upload is not a WAV file: %v", err)
	}
	if parsed.SampleRate != SampleRate || parsed.SampleWidth != SampleWidth || parsed.Channels != 1 {
		t.Errorf("unexpected upload format %+v", parsed)
	}
}

func TestTranscribe_ClientUnavailable(t *testing.T) {
	f := &countingFactory{err: fmt.Errorf("no transport")}
	p := newProvider(t, Config{APIKey: "k"}, f)

	_, err := p.Transcribe(context.Background(), speech())
	if !errors.IsIntegrationUnavailable(err) {
		t.Fatalf("expected integration unavailable, got %v", err)
	}
	if p.IsAvailable(context.Background()) {
		t.Error("expected provider to be unavailable after failed build")
	}
	if got := p.Health(context.Background()).Status; got != provider.StatusUnavailable {
		t.Errorf("expected unavailable health, got %v", got)
	}

	// A failed build is retried on the next call.
	f.err = nil
	f.mock = &mockTranscriber{text: text("ok")}
	got, err := p.Transcribe(context.Background(), speech())
	if err != nil || got != "ok" {
		t.Fatalf("expected recovery, got %q, %v", got, err)
	}
	if f.builds != 2 {
		t.Errorf("expected 2 builds, got %d", f.builds)
	}
}

func TestTranscribe_VendorErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)
	mock := &mockTranscriber{err: httpclient.ClassifyStatusCode(503, nil)}
	p := newProvider(t, Config{APIKey: "k", ModelID: DefaultModelID}, &countingFactory{mock: mock}, WithLogger(log))

	_, err := p.Transcribe(context.Background(), speech())
	if !errors.IsRemoteCall(err) {
		t.Fatalf("expected remote call error, got %v", err)
	}
	appErr, _ := errors.AsAppError(err)
	if !appErr.Retryable {
		t.Error("expected 503 to be marked retryable")
	}
	if appErr.Details["operation"] != errors.OpTranscribe {
		t.Errorf("unexpected details %v", appErr.Details)
	}

	out := buf.String()
	if !strings.Contains(out, "ElevenLabs STT transcription failed: ") {
		t.Errorf("expected failure log, got %q", out)
	}
	if !strings.Contains(out, `"request_id"`) {
		t.Errorf("expected request id in log, got %q", out)
	}
	if strings.Contains(out, `"k"`) {
		t.Errorf("api key must not be logged: %q", out)
	}
}

func TestTranscribe_RenderFailure(t *testing.T) {
	mock := &mockTranscriber{text: text("x")}
	p := newProvider(t, Config{APIKey: "k"}, &countingFactory{mock: mock})

	_, err := p.Transcribe(context.Background(), audio.Data{Frames: []byte{1}, SampleRate: 16000, SampleWidth: 2})
	if !errors.IsRemoteCall(err) {
		t.Fatalf("expected remote call error, got %v", err)
	}
	if len(mock.requests) != 0 {
		t.Error("vendor should not be called when rendering fails")
	}

	if _, err := p.Transcribe(context.Background(), nil); !errors.IsRemoteCall(err) {
		t.Errorf("expected remote call error for nil audio, got %v", err)
	}
}

func TestFactory_FromSettings(t *testing.T) {
	f := &countingFactory{mock: &mockTranscriber{text: text("hi")}}
	factory := Factory(WithClientFactory(f.build), WithLogger(logger.Nop()))

	got, err := factory(settings.Values{SettingAPIKey: "k"})
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	p := got.(*Provider)
	if p.ModelID() != DefaultModelID || p.cfg.Language != "" {
		t.Errorf("unexpected defaults %+v", p.cfg)
	}

	if _, err := factory(settings.Values{SettingAPIKey: ""}); !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestTranscribe_AgainstFakeAPI(t *testing.T) {
	srv := elevenlabstest.Start(t)
	srv.Configure(func(s *elevenlabstest.Server) { s.TranscriptJSON = `{"text":"  hello world  "}` })

	p, err := New(Config{APIKey: "sk_test", ModelID: DefaultModelID},
		WithClientConfig(elevenlabs.Config{BaseURL: srv.URL}),
		WithLogger(logger.Nop()),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.Transcribe(context.Background(), speech())
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Transcribe = %q", got)
	}

	req := srv.LastRequest()
	if req.APIKey != "sk_test" || req.ModelID != DefaultModelID || req.HasLanguage {
		t.Errorf("unexpected request %+v", req)
	}
	if !bytes.HasPrefix(req.Audio, []byte("RIFF")) {
		t.Error("expected a WAV upload")
	}
}
