package middleware

import (
	"net/http"
	"strings"

	"github.com/JeffMenca/pitstop-manager/internal/model"
)

// SessionSource yields the current derived session snapshot, or nil when
// nobody is (fully) logged in.
type SessionSource interface {
	Snapshot() *model.SessionSnapshot
}

// Guard decides route admission. No snapshot means a redirect to the login
// entry point; a snapshot whose role matches none of a route's allowed
// fragments means a redirect to the landing page instead: the user is
// authenticated, just not for this area. The decision is recomputed on every
// request and the guard holds no state of its own.
type Guard struct {
	sessions  SessionSource
	loginPath string
	homePath  string
}

func NewGuard(sessions SessionSource) *Guard {
	return &Guard{sessions: sessions, loginPath: "/login", homePath: "/home"}
}

// RequireAuth admits any fully authenticated session, regardless of role.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.sessions.Snapshot() == nil {
			http.Redirect(w, r, g.loginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits sessions whose role name contains any of the given
// fragments, case-insensitively ("admin" matches "Administrador"). Substring
// matching is the backend's contract; its role names are display strings.
func (g *Guard) RequireRole(fragments ...string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment != "" {
			allowed = append(allowed, fragment)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot := g.sessions.Snapshot()
			if snapshot == nil {
				// The attempted navigation is discarded on purpose; after a
				// fresh login the user starts from the landing page.
				http.Redirect(w, r, g.loginPath, http.StatusFound)
				return
			}

			role := strings.ToLower(snapshot.RoleName)
			for _, fragment := range allowed {
				if strings.Contains(role, fragment) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Redirect(w, r, g.homePath, http.StatusFound)
		})
	}
}
