package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/model"
	"github.com/JeffMenca/pitstop-manager/internal/session"
	"github.com/JeffMenca/pitstop-manager/pkg/apierror"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryStorage(), event.NewBus())
	return New(server.URL, 5*time.Second, store), store
}

func TestClientDo(t *testing.T) {
	t.Parallel()

	t.Run("attaches the bearer token", func(t *testing.T) {
		var seen string
		client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		})
		store.SetToken("t1")

		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil))
		require.Equal(t, "Bearer t1", seen)
	})

	t.Run("no token means no authorization header", func(t *testing.T) {
		var seen string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		})

		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil))
		require.Empty(t, seen)
	})

	t.Run("decodes a JSON success body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"token":"abc"}`))
		})

		var out model.LoginResponse
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, &out))
		require.Equal(t, "abc", out.Token)
	})

	t.Run("non-JSON success leaves out untouched", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("ok"))
		})

		var out model.LoginResponse
		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, &out))
		require.Empty(t, out.Token)
	})

	t.Run("rotated token is stored even on a failed call", func(t *testing.T) {
		client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Authorization", "Bearer t2")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
		})
		store.SetToken("t1")

		err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
		require.Error(t, err)
		require.EqualError(t, err, "BACKEND_ERROR: boom")

		tok, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "t2", tok)
	})

	t.Run("rotation accepts the vendor header without a prefix", func(t *testing.T) {
		client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Auth-Token", "t3")
			w.WriteHeader(http.StatusOK)
		})

		require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil))
		tok, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "t3", tok)
	})

	t.Run("401 invalidates the whole session", func(t *testing.T) {
		client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		store.Transition(model.StageFull, "t1")

		err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
		require.Error(t, err)
		require.True(t, apierror.IsUnauthorized(err))

		_, ok := store.Token()
		require.False(t, ok)
		require.Equal(t, model.StageAnonymous, store.Stage())
	})

	t.Run("error statuses surface the server message", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no such vehicle"}`))
		})

		err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
		require.EqualError(t, err, "NOT_FOUND: no such vehicle")
	})

	t.Run("error without a body falls back to the status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
		require.EqualError(t, err, "RATE_LIMITED: HTTP 429")
	})

	t.Run("unreachable backend is a transport failure", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), event.NewBus())
		client := New("http://127.0.0.1:1", time.Second, store)

		err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
		require.Error(t, err)

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "TRANSPORT", apiErr.Code)
	})
}

func TestClientSend(t *testing.T) {
	t.Parallel()

	t.Run("does not follow protocol redirects", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/login" {
				w.Header().Set("Location", "/elsewhere")
				w.WriteHeader(http.StatusMovedPermanently)
				return
			}
			t.Errorf("redirect was followed to %s", r.URL.Path)
		})

		resp, err := client.Send(context.Background(), http.MethodPost, "/login", model.LoginRequest{Username: "u", Password: "p"})
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	})

	t.Run("does not normalize statuses", func(t *testing.T) {
		client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		store.Transition(model.StageFull, "t1")

		resp, err := client.Send(context.Background(), http.MethodGet, "/x", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		// Send leaves invalidation to the caller-facing Do path.
		require.Equal(t, model.StageFull, store.Stage())
	})
}

func TestRotatedToken(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		header   string
		value    string
		expected string
	}{
		"authorization with prefix":    {"Authorization", "Bearer abc", "abc"},
		"authorization without prefix": {"Authorization", "abc", "abc"},
		"case-insensitive prefix":      {"Authorization", "bearer abc", "abc"},
		"vendor header":                {"X-Auth-Token", "xyz", "xyz"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			resp.Header.Set(tc.header, tc.value)
			require.Equal(t, tc.expected, RotatedToken(resp))
		})
	}
}
