package models

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
//
// Error is a stable machine-checkable category (e.g. "unauthorized",
// "not_found"); Message is human readable. Neither carries internal
// identifiers or stack traces.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
