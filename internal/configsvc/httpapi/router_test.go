package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tomlcore/tomlcore/internal/configsvc/diagnostics"
)

type fakeStore struct {
	docs      map[string][]byte
	reloadErr error
}

func (f *fakeStore) CurrentJSON(name string) ([]byte, bool) {
	body, ok := f.docs[name]
	return body, ok
}
func (f *fakeStore) Reload(name string) error { return f.reloadErr }
func (f *fakeStore) Names() []string {
	names := make([]string, 0, len(f.docs))
	for n := range f.docs {
		names = append(names, n)
	}
	return names
}

type fakeAuth struct {
	valid bool
}

func (f *fakeAuth) ValidateToken(token string) (string, error) {
	if !f.valid {
		return "", errors.New("invalid token")
	}
	return "admin", nil
}

func TestHealthzReturnsOK(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{}}
	router := New(store, &fakeAuth{}, diagnostics.NewHub(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetConfigReturnsStoredJSON(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{"app.toml": []byte(`{"title":"demo"}`)}}
	router := New(store, &fakeAuth{}, diagnostics.NewHub(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/configs/app.toml", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"demo"}`, rec.Body.String())
}

func TestGetConfigMissingReturns404(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{}}
	router := New(store, &fakeAuth{}, diagnostics.NewHub(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/configs/missing.toml", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReloadWithoutTokenIsUnauthorized(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{"app.toml": []byte(`{}`)}}
	router := New(store, &fakeAuth{valid: false}, diagnostics.NewHub(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/configs/app.toml/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReloadWithValidTokenSucceeds(t *testing.T) {
	store := &fakeStore{docs: map[string][]byte{"app.toml": []byte(`{}`)}}
	router := New(store, &fakeAuth{valid: true}, diagnostics.NewHub(zap.NewNop()), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/configs/app.toml/reload", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
