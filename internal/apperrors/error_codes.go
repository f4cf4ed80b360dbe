package apperrors

// ErrorCode identifies the kind of failure reported to the UI in a feedback response
type ErrorCode string

const (
	ErrCodeAPIError              ErrorCode = "api_error"
	ErrCodeAuthenticationFailure ErrorCode = "authentication_error"
	ErrCodeAuthorizationFailure  ErrorCode = "authorization_error"
	ErrCodeConnectionError       ErrorCode = "connection_error"
	ErrCodeCrossOriginRequest    ErrorCode = "cross_origin_request"
	ErrCodeInternalError         ErrorCode = "internal_error"
	ErrCodeInvalidResponse       ErrorCode = "invalid_response"
	ErrCodeInvalidURLParam       ErrorCode = "invalid_url_param"
	ErrCodeMalformedBody         ErrorCode = "malformed_body"
	ErrCodeRateLimitExceeded     ErrorCode = "rate_limit_exceeded"
	ErrCodeRequestSuperseded     ErrorCode = "request_superseded"
	ErrCodeRequestTooLarge       ErrorCode = "request_too_large"
	ErrCodeSessionStorage        ErrorCode = "session_storage_error"
	ErrCodeValidationError       ErrorCode = "validation_error"
)
