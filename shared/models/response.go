package models

// BaseResponse is the envelope every /users endpoint answers with.
// StatusCode always mirrors the HTTP status of the enclosing response and Data
// is null exactly when the operation produced no usable payload.
type BaseResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func NewBaseResponse(statusCode int, message string, data any) BaseResponse {
	return BaseResponse{StatusCode: statusCode, Message: message, Data: data}
}

// SecurityError is the closed set of generic failure descriptions used as
// literal message text.
type SecurityError int

const (
	OperationFailed SecurityError = iota
	InvalidRequest
	AccessDenied
)

var securityErrors = [...]struct {
	name        string
	description string
}{
	OperationFailed: {"OPERATION_FAILED", "Operation failed"},
	InvalidRequest:  {"INVALID_REQUEST", "Invalid request"},
	AccessDenied:    {"ACCESS_DENIED", "Access denied"},
}

func (e SecurityError) String() string {
	if int(e) < 0 || int(e) >= len(securityErrors) {
		return "UNKNOWN"
	}
	return securityErrors[e].name
}

// Description returns the text placed in BaseResponse.Message.
func (e SecurityError) Description() string {
	if int(e) < 0 || int(e) >= len(securityErrors) {
		return securityErrors[OperationFailed].description
	}
	return securityErrors[e].description
}
