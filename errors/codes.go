package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeIntegrationUnavailable indicates the vendor client could not be built.
	ErrCodeIntegrationUnavailable ErrorCode = "INTEGRATION_UNAVAILABLE"
	// ErrCodeConfiguration indicates missing or invalid host-supplied settings,
	// including an unknown provider id.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRemoteCall indicates a transcription or synthesis call failed.
	ErrCodeRemoteCall ErrorCode = "REMOTE_CALL_ERROR"
)

// Operation names recorded in RemoteCall error details.
const (
	OpTranscribe = "transcribe"
	OpSynthesize = "synthesize"
)
