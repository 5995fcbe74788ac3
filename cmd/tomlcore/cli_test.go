package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempTOML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestValidateCommandAcceptsWellFormedDocument(t *testing.T) {
	path := writeTempTOML(t, "name = \"tom\"\n")
	if err := validateCmd.RunE(validateCmd, []string{path}); err != nil {
		t.Errorf("RunE returned an error for a valid document: %v", err)
	}
}

func TestValidateCommandReportsParseErrors(t *testing.T) {
	path := writeTempTOML(t, "name = \"tom\"\nname = \"tom again\"\n")
	if err := validateCmd.RunE(validateCmd, []string{path}); err == nil {
		t.Error("expected an error for a document with a duplicate key")
	}
}

func TestParseCommandPrintsJSON(t *testing.T) {
	path := writeTempTOML(t, "name = \"tom\"\n")
	if err := parseCmd.RunE(parseCmd, []string{path}); err != nil {
		t.Errorf("RunE returned an error: %v", err)
	}
}

func TestFmtCommandInPlaceRewritesFileWithIndent(t *testing.T) {
	path := writeTempTOML(t, "[server]\nhost = \"localhost\"\n")

	fmtInPlace = true
	fmtForce = true
	fmtSort = false
	if err := fmtCmd.Flags().Set("indent", "4"); err != nil {
		t.Fatalf("Set(indent): %v", err)
	}
	defer func() {
		fmtInPlace, fmtForce, fmtSort, fmtIndent = false, false, false, 2
	}()

	if err := fmtCmd.RunE(fmtCmd, []string{path}); err != nil {
		t.Fatalf("RunE returned an error: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := string(out); !contains(got, "\n    host = \"localhost\"\n") {
		t.Errorf("expected 4-space indented host line, got %q", got)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
