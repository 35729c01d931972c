// Package api holds response types shared by every HTTP handler.
package api

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
