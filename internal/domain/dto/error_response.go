package dto

import "time"

// ErrorResponse is the standardized JSON error envelope returned by every
// failing endpoint.
//
// The top-level "error" key carries the human-readable message; "details"
// carries the wrapped cause when one exists. Clients are expected to key off
// the HTTP status code, not the message text.
type ErrorResponse struct {
	Message      string    `json:"error" example:"Forbidden"`
	ErrorDetails string    `json:"details,omitempty" example:"missing X-API-Key header"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through error-returning call sites.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an envelope from a message and an optional cause.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
