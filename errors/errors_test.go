package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeConfiguration, "bad settings")
	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected code %s, got %s", ErrCodeConfiguration, err.Code)
	}
	if err.Message != "bad settings" {
		t.Errorf("expected message 'bad settings', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("new errors should not be retryable by default")
	}
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	err := Configuration("oops")
	if got := err.Error(); got != "CONFIGURATION_ERROR: oops" {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	err := TranscriptionFailed(fmt.Errorf("connection reset"))
	got := err.Error()
	if !strings.Contains(got, "REMOTE_CALL_ERROR") {
		t.Errorf("expected code in %q", got)
	}
	if !strings.Contains(got, "connection reset") {
		t.Errorf("expected cause in %q", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := SynthesisFailed(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestMissingAPIKey(t *testing.T) {
	err := MissingAPIKey("ElevenLabs STT", "elevenlabs_api_key")
	if err.Code != ErrCodeConfiguration {
		t.Errorf("expected CONFIGURATION_ERROR, got %s", err.Code)
	}
	if err.Message != "ElevenLabs STT: No API key provided" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["field"] != "elevenlabs_api_key" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}
}

func TestUnknownProvider(t *testing.T) {
	err := UnknownProvider("ElevenLabs", "openai-tts")
	if !strings.Contains(err.Message, "openai-tts") {
		t.Errorf("message should name the id, got %q", err.Message)
	}
	if !IsConfiguration(err) {
		t.Error("unknown provider should be a configuration error")
	}
}

func TestIntegrationUnavailable(t *testing.T) {
	cause := stderrors.New("bad base url")
	err := IntegrationUnavailable("ElevenLabs", cause)
	if !IsIntegrationUnavailable(err) {
		t.Error("expected INTEGRATION_UNAVAILABLE")
	}
	if err.Details["integration"] != "ElevenLabs" {
		t.Errorf("expected integration detail, got %v", err.Details["integration"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be preserved")
	}
}

func TestRemoteCall_Operation(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		op   string
	}{
		{"transcribe", TranscriptionFailed(nil), OpTranscribe},
		{"synthesize", SynthesisFailed(nil), OpSynthesize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !IsRemoteCall(tc.err) {
				t.Fatal("expected REMOTE_CALL_ERROR")
			}
			if tc.err.Details["operation"] != tc.op {
				t.Errorf("expected operation %q, got %v", tc.op, tc.err.Details["operation"])
			}
		})
	}
}

func TestAppError_WithRetryable(t *testing.T) {
	err := SynthesisFailed(nil).WithRetryable(true)
	if !err.Retryable {
		t.Error("expected retryable after WithRetryable(true)")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Configuration("x").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := Configuration("inner")
	wrapped := fmt.Errorf("create model: %w", inner)

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr != inner {
		t.Error("expected the original AppError")
	}
	if !IsAppError(wrapped) {
		t.Error("IsAppError should see through wrapping")
	}
}

func TestHasCode_PlainError(t *testing.T) {
	if HasCode(stderrors.New("plain"), ErrCodeConfiguration) {
		t.Error("plain errors carry no code")
	}
	if IsRemoteCall(nil) {
		t.Error("nil is not a remote call error")
	}
}
