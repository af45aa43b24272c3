// Package elevenlabstest provides a fake ElevenLabs API for tests.
package elevenlabstest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Request is a captured call to the fake server.
type Request struct {
	Path         string
	APIKey       string
	UserAgent    string
	VoiceID      string
	OutputFormat string

	// Speech-to-text form.
	ModelID      string
	LanguageCode string
	HasLanguage  bool
	FileName     string
	Audio        []byte

	// Text-to-speech JSON body.
	Body SynthesizeBody
}

// SynthesizeBody mirrors the text-to-speech request body.
type SynthesizeBody struct {
	Text          string `json:"text"`
	ModelID       string `json:"model_id"`
	VoiceSettings *struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
		Style           float64 `json:"style"`
		UseSpeakerBoost bool    `json:"use_speaker_boost"`
	} `json:"voice_settings"`
}

// Server is a fake ElevenLabs API. Configure the exported fields before
// issuing requests; they are read under the server's lock.
type Server struct {
	URL string

	mu sync.Mutex
	// TranscriptJSON is the raw speech-to-text response body.
	TranscriptJSON string
	// Chunks are written and flushed one by one by the stream endpoint.
	Chunks [][]byte
	// AbortAfter drops the connection after that many chunks when > 0.
	AbortAfter int
	// Status and ErrorBody, when Status is set, fail every request.
	Status    int
	ErrorBody string
	requests  []Request

	ts *httptest.Server
}

// Start starts a fake API that is closed when the test ends.
func Start(tb testing.TB) *Server {
	tb.Helper()
	s := NewServer()
	tb.Cleanup(s.Close)
	return s
}

// NewServer starts a fake API. The caller must Close it.
func NewServer() *Server {
	s := &Server{TranscriptJSON: `{"text":"hello world"}`}

	engine := gin.New()
	engine.Use(s.auth)
	engine.POST("/v1/speech-to-text", s.transcribe)
	engine.POST("/v1/text-to-speech/:voice_id/stream", s.stream)

	s.ts = httptest.NewServer(engine)
	s.URL = s.ts.URL
	return s
}

// Close shuts the server down.
func (s *Server) Close() { s.ts.Close() }

// Configure runs fn under the server lock.
func (s *Server) Configure(fn func(s *Server)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent call, or the zero Request.
func (s *Server) LastRequest() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

func (s *Server) record(r Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

func (s *Server) auth(c *gin.Context) {
	if c.GetHeader("xi-api-key") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"detail": gin.H{"status": "invalid_api_key", "message": "Invalid API key"},
		})
		return
	}
	s.mu.Lock()
	status, body := s.Status, s.ErrorBody
	s.mu.Unlock()
	if status != 0 {
		c.Data(status, "application/json", []byte(body))
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) transcribe(c *gin.Context) {
	req := Request{
		Path:      c.Request.URL.Path,
		APIKey:    c.GetHeader("xi-api-key"),
		UserAgent: c.GetHeader("User-Agent"),
		ModelID:   c.PostForm("model_id"),
	}
	req.LanguageCode, req.HasLanguage = c.GetPostForm("language_code")

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()
	req.FileName = fh.Filename
	req.Audio, _ = io.ReadAll(f)
	s.record(req)

	s.mu.Lock()
	body := s.TranscriptJSON
	s.mu.Unlock()
	c.Data(http.StatusOK, "application/json", []byte(body))
}

func (s *Server) stream(c *gin.Context) {
	req := Request{
		Path:         c.Request.URL.Path,
		APIKey:       c.GetHeader("xi-api-key"),
		UserAgent:    c.GetHeader("User-Agent"),
		VoiceID:      c.Param("voice_id"),
		OutputFormat: c.Query("output_format"),
	}
	if err := c.ShouldBindJSON(&req.Body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.record(req)

	if req.Body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": gin.H{"status": "empty_text", "message": "Text must not be empty"},
		})
		return
	}

	s.mu.Lock()
	chunks, abortAfter := s.Chunks, s.AbortAfter
	s.mu.Unlock()

	c.Header("Content-Type", "audio/pcm")
	c.Status(http.StatusOK)
	for i, chunk := range chunks {
		if abortAfter > 0 && i == abortAfter {
			// Drop the connection mid-stream.
			panic(http.ErrAbortHandler)
		}
		_, _ = c.Writer.Write(chunk)
		c.Writer.Flush()
	}
}
