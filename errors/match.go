package errors

import (
	stderrors "errors"
)

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsIntegrationUnavailable reports whether err is an INTEGRATION_UNAVAILABLE error.
func IsIntegrationUnavailable(err error) bool {
	return HasCode(err, ErrCodeIntegrationUnavailable)
}

// IsConfiguration reports whether err is a CONFIGURATION_ERROR.
func IsConfiguration(err error) bool {
	return HasCode(err, ErrCodeConfiguration)
}

// IsRemoteCall reports whether err is a REMOTE_CALL_ERROR.
func IsRemoteCall(err error) bool {
	return HasCode(err, ErrCodeRemoteCall)
}
