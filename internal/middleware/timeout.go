package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// Timeout caps a request's total handling time. The event stream is mounted
// outside this wrapper; http.TimeoutHandler buffers the response, which would
// stall a long-lived stream.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, limit, string(body))
	}
}
