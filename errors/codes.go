package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors
const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Dependency errors
const (
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
