package model

// APIResponse is the envelope the gateway writes to its own clients.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// LoginResponse is the backend's optional login body; some deployments return
// the issued token here instead of (or in addition to) the response header.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// BackendError is the `{ message }` body the backend attaches to error
// statuses when it has something human-readable to say.
type BackendError struct {
	Message string `json:"message"`
}
