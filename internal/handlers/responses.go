package handlers

// ErrorResponse is the uniform error payload for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
