package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JeffMenca/pitstop-manager/internal/model"
)

type staticSession struct {
	snapshot *model.SessionSnapshot
}

func (s staticSession) Snapshot() *model.SessionSnapshot { return s.snapshot }

func serveGuarded(t *testing.T, wrap func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	protected := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("protected content"))
	}))

	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))
	return recorder
}

func TestGuardRequireRole(t *testing.T) {
	t.Parallel()

	t.Run("no session redirects to login", func(t *testing.T) {
		guard := NewGuard(staticSession{})
		rec := serveGuarded(t, guard.RequireRole("admin"))

		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("role fragment matches case-insensitively", func(t *testing.T) {
		guard := NewGuard(staticSession{&model.SessionSnapshot{RoleName: "Administrador"}})
		rec := serveGuarded(t, guard.RequireRole("admin"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "protected content")
	})

	t.Run("partial fragment matches", func(t *testing.T) {
		guard := NewGuard(staticSession{&model.SessionSnapshot{RoleName: "Empleado"}})
		rec := serveGuarded(t, guard.RequireRole("emple"))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role redirects to the landing page, not login", func(t *testing.T) {
		guard := NewGuard(staticSession{&model.SessionSnapshot{RoleName: "Cliente"}})
		rec := serveGuarded(t, guard.RequireRole("admin"))

		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/home", rec.Header().Get("Location"))
	})

	t.Run("any fragment in the allow-list admits", func(t *testing.T) {
		guard := NewGuard(staticSession{&model.SessionSnapshot{RoleName: "Cliente"}})
		rec := serveGuarded(t, guard.RequireRole("client", "cliente"))

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGuardRequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("no session redirects to login", func(t *testing.T) {
		guard := NewGuard(staticSession{})
		rec := serveGuarded(t, guard.RequireAuth)

		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("any authenticated session is admitted", func(t *testing.T) {
		guard := NewGuard(staticSession{&model.SessionSnapshot{RoleName: "Proveedor"}})
		rec := serveGuarded(t, guard.RequireAuth)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
