package types

// Response is the uniform envelope of every mutation and of every error.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
