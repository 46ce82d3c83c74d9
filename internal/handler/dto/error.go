// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorDetail carries a machine-readable code and human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorResponse builds an ErrorResponse.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
