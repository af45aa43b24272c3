package errors

import (
	"fmt"
)

// AppError is the unified plugin error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable message suitable for the host UI.
	Message string `json:"message"`
	// Retryable reports whether the host may reasonably try again.
	// The plugin itself never retries.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithRetryable overrides the retryable flag and returns the receiver.
func (e *AppError) WithRetryable(retryable bool) *AppError {
	e.Retryable = retryable
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// IntegrationUnavailable reports that the named vendor integration could not
// be initialised.
func IntegrationUnavailable(integration string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeIntegrationUnavailable,
		Message: fmt.Sprintf("%s client is unavailable", integration),
		Details: map[string]any{"integration": integration},
		Cause:   cause,
	}
}

// Configuration creates a configuration error with a free-form message.
func Configuration(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// MissingAPIKey reports that provider was requested without a credential.
func MissingAPIKey(provider, field string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("%s: No API key provided", provider),
		Details: map[string]any{"provider": provider, "field": field},
	}
}

// UnknownProvider reports a provider id that is not part of the vendor's
// declared set.
func UnknownProvider(vendor, id string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("Unknown %s provider: %s", vendor, id),
		Details: map[string]any{"provider": id},
	}
}

// InvalidSetting reports a setting whose value cannot be used.
func InvalidSetting(field, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("Invalid setting %s: %s", field, reason),
		Details: map[string]any{"field": field},
	}
}

// Validation creates a configuration error from aggregated validation messages.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeConfiguration, Message: message}
}

// RemoteCall wraps a failed vendor call for the given operation.
func RemoteCall(operation string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRemoteCall,
		Message: fmt.Sprintf("%s failed", operation),
		Details: map[string]any{"operation": operation},
		Cause:   cause,
	}
}

// TranscriptionFailed wraps a failed speech-to-text call.
func TranscriptionFailed(cause error) *AppError {
	return RemoteCall(OpTranscribe, cause)
}

// SynthesisFailed wraps a failed text-to-speech call.
func SynthesisFailed(cause error) *AppError {
	return RemoteCall(OpSynthesize, cause)
}
