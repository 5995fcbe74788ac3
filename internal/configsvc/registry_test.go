package configsvc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tomlcore/tomlcore/internal/configsvc/storage"
	"github.com/tomlcore/tomlcore/schema"
	"github.com/tomlcore/tomlcore/value"
)

func writeTOML(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newMockAudit(t *testing.T) *storage.Store {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(2, 1))
	return storage.OpenDB(db, "sqlmock")
}

func TestRegistryLoadParsesAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := writeTOML(t, dir, "app.toml", "title = \"demo\"\nport = 8080\n")

	reg := NewRegistry(nil, nil, nil, zap.NewNop())
	require.NoError(t, reg.Load(context.Background(), "app.toml", path))

	body, ok := reg.CurrentJSON("app.toml")
	require.True(t, ok)
	require.Contains(t, string(body), "demo")
	require.Equal(t, []string{"app.toml"}, reg.Names())
}

func TestRegistryLoadFailsSchemaValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeTOML(t, dir, "app.toml", "title = 42\n")

	schemas := map[string]*schema.Schema{
		"app.toml": schema.NewSchema([]schema.FieldSchema{
			{Name: "title", Kind: value.KindString, Required: true},
		}, false),
	}
	reg := NewRegistry(nil, nil, schemas, zap.NewNop())
	err := reg.Load(context.Background(), "app.toml", path)
	require.Error(t, err)
}

func TestRegistryReloadRecordsAudit(t *testing.T) {
	dir := t.TempDir()
	path := writeTOML(t, dir, "app.toml", "title = \"demo\"\n")
	audit := newMockAudit(t)

	reg := NewRegistry(nil, audit, nil, zap.NewNop())
	require.NoError(t, reg.Load(context.Background(), "app.toml", path))

	writeTOML(t, dir, "app.toml", "title = \"updated\"\n")
	require.NoError(t, reg.Reload("app.toml"))

	body, _ := reg.CurrentJSON("app.toml")
	require.Contains(t, string(body), "updated")
}

func TestRegistryReloadUnknownNameErrors(t *testing.T) {
	reg := NewRegistry(nil, nil, nil, zap.NewNop())
	require.Error(t, reg.Reload("missing.toml"))
}
