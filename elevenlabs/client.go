package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/COVAS-Labs/plugin-elevenlabs/httpclient"
	"github.com/COVAS-Labs/plugin-elevenlabs/security"
	"github.com/COVAS-Labs/plugin-elevenlabs/version"
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("elevenlabs: api key is required")

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // bounds speech-to-text calls; streams are bounded by ctx
	TLS     *security.TLSConfig
	// Transport overrides the HTTP transport (tests, proxies).
	Transport http.RoundTripper
}

// Client talks to the ElevenLabs API.
type Client struct {
	http *httpclient.Client
}

var (
	_ Transcriber = (*Client)(nil)
	_ Synthesizer = (*Client)(nil)
)

// New creates a Client. It performs no network calls.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout,
		Auth:          httpclient.APIKeyAuthHeader(cfg.APIKey, HeaderAPIKey),
		UserAgent:     version.UserAgent(),
		DecodeMessage: decodeErrorMessage,
		TLS:           cfg.TLS,
		Transport:     cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	return &Client{http: hc}, nil
}

// Transcribe uploads audio to the speech-to-text endpoint.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (*Transcription, error) {
	fileName := req.FileName
	if fileName == "" {
		fileName = "audio.wav"
	}
	fields := map[string]string{"model_id": req.ModelID}
	if req.LanguageCode != "" {
		fields["language_code"] = req.LanguageCode
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   speechToTextPath,
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "file",
				FileName:    fileName,
				ContentType: "audio/wav",
				Data:        req.Audio,
			}},
		},
	})
	if err != nil {
		return nil, err
	}

	var out Transcription
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("elevenlabs: decode transcription: %w", err)
	}
	return &out, nil
}

// SynthesizeStream opens a streaming text-to-speech response. The caller
// owns the returned body and must close it.
func (c *Client) SynthesizeStream(ctx context.Context, voiceID string, req SynthesizeRequest) (io.ReadCloser, error) {
	format := req.OutputFormat
	if format == "" {
		format = OutputPCM24000
	}

	stream, err := c.http.DoStream(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    fmt.Sprintf(streamPathFormat, url.PathEscape(voiceID)),
		Query:   map[string]string{"output_format": format},
		Headers: map[string]string{"Accept": "audio/pcm"},
		Body:    req,
	})
	if err != nil {
		return nil, err
	}
	return stream.Body, nil
}
