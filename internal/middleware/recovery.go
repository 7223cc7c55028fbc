package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// Recovery turns a handler panic into a 500 so one bad request cannot take
// the whole gateway down.
func Recovery(next http.Handler) http.Handler {
	fallback := model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected gateway error"},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			cause := recover()
			if cause == nil {
				return
			}

			slog.Error("panic recovered",
				"cause", cause,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(fallback)
		}()

		next.ServeHTTP(w, r)
	})
}
