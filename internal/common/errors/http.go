package errors

import "net/http"

// HTTPStatusFromCode returns the HTTP status for an error code
func HTTPStatusFromCode(code ErrorCode) int {
	switch code {
	case ErrCodeMessageRequired, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeTranslationFailed, ErrCodeGenerationFailed:
		return http.StatusBadGateway
	case ErrCodeGenerationTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeKnowledgeBaseUnavailable, ErrCodeSessionStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError is the JSON body returned for failed requests.
type HTTPError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
}

// ToHTTPError converts err into a response body. Server-side failures never
// leak upstream details to the visitor.
func ToHTTPError(err error) HTTPError {
	stdErr := AsStandardError(err)
	status := HTTPStatusFromCode(stdErr.Code)

	message := stdErr.Message
	if status >= http.StatusInternalServerError {
		message = "Service temporarily unavailable, please try again later"
	}

	return HTTPError{
		Status:  status,
		Code:    stdErr.Code,
		Message: message,
	}
}

// IsClientError returns true if err maps to a 4xx status.
func IsClientError(err error) bool {
	status := HTTPStatusFromCode(AsStandardError(err).Code)
	return status >= 400 && status < 500
}
