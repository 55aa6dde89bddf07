// Package response holds the JSON envelopes shared by every API endpoint.
package response

// Common error codes not tied to a single feature.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Success(data any) SuccessEnvelope {
	return SuccessEnvelope{Success: true, Data: data}
}

// Error builds a failure envelope; details is omitted when nil.
func Error(message, code string, details any) ErrorEnvelope {
	return ErrorEnvelope{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message, Details: details},
	}
}
