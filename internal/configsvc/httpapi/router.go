// Package httpapi exposes the config-watch daemon's TOML documents over
// HTTP, grounded on the route-registration shape of
// internal/web/router.Router in this corpus's Conduit compiler, used
// here directly through go-chi/chi/v5 rather than through that
// wrapper — the wrapper's CRUD-operation inference has no TOML analog,
// so this package talks to chi.Router plainly.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomlcore/tomlcore/internal/configsvc/diagnostics"
)

// Store is the subset of the daemon's document registry the HTTP layer
// needs: the current JSON rendering of each watched file, and a way to
// force a reload.
type Store interface {
	CurrentJSON(name string) ([]byte, bool)
	Reload(name string) error
	Names() []string
}

// Authenticator validates a bearer token from the Authorization header.
type Authenticator interface {
	ValidateToken(token string) (subject string, err error)
}

// New builds the chi router for the daemon's HTTP surface:
// GET /healthz, GET /configs, GET /configs/{name}, POST
// /configs/{name}/reload (bearer-JWT protected), and GET /ws for the
// diagnostics broadcast.
func New(store Store, auth Authenticator, hub *diagnostics.Hub, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(logRequests(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/configs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Names())
	})

	r.Get("/configs/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		body, ok := store.CurrentJSON(name)
		if !ok {
			http.Error(w, "config not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})

	r.Post("/configs/{name}/reload", func(w http.ResponseWriter, r *http.Request) {
		if _, err := authorize(r, auth); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		name := chi.URLParam(r, "name")
		if err := store.Reload(name); err != nil {
			hub.NotifyInvalid(name, []string{err.Error()})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hub.NotifyReloaded(name)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(w, r); err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
		}
	})

	return r
}

func authorize(r *http.Request, auth Authenticator) (string, error) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return "", errUnauthorized
	}
	return auth.ValidateToken(token)
}

var errUnauthorized = &authError{"missing or malformed bearer token"}

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func logRequests(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
