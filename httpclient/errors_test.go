package httpclient

import (
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeQuota, "quota"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrCodeCanceled, "canceled"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "voice not found"}
	want := "httpclient: not_found (HTTP 404): voice not found"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	want2 := "httpclient: connection: connection refused"
	if got := e2.Error(); got != want2 {
		t.Errorf("got %q, want %q", got, want2)
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")
	outer := NewConnectionError(inner)
	if outer.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{402, false, ErrCodeQuota, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{422, false, ErrCodeValidation, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			e := ClassifyStatusCode(tt.code, []byte("body"))
			if tt.wantNil {
				if e != nil {
					t.Errorf("expected nil, got %v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("expected error, got nil")
			}
			if e.Code != tt.errCode {
				t.Errorf("code = %v, want %v", e.Code, tt.errCode)
			}
			if e.Retryable != tt.retry {
				t.Errorf("retryable = %v, want %v", e.Retryable, tt.retry)
			}
			if e.StatusCode != tt.code || string(e.Body) != "body" {
				t.Errorf("status/body not kept: %+v", e)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	timeout := NewTimeoutError(fmt.Errorf("timed out"))
	wrapped := fmt.Errorf("stream: %w", ClassifyStatusCode(401, nil))

	if !IsTimeout(timeout) {
		t.Error("IsTimeout should match timeout error")
	}
	if !IsAuth(wrapped) {
		t.Error("IsAuth should see through wrapping")
	}
	if !IsNotFound(ClassifyStatusCode(404, nil)) {
		t.Error("IsNotFound should match 404")
	}
	if !IsRateLimit(ClassifyStatusCode(429, nil)) {
		t.Error("IsRateLimit should match 429")
	}
	if !IsRetryable(timeout) {
		t.Error("timeout should be retryable")
	}
	if IsRetryable(NewValidationError("bad")) {
		t.Error("validation should not be retryable")
	}
	if IsTimeout(fmt.Errorf("plain")) {
		t.Error("plain error should not match")
	}
	if got := StatusCodeOf(wrapped); got != 401 {
		t.Errorf("StatusCodeOf = %d, want 401", got)
	}
	if got := StatusCodeOf(fmt.Errorf("plain")); got != 0 {
		t.Errorf("StatusCodeOf(plain) = %d, want 0", got)
	}
}
