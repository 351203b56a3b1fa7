package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeSecret(t, "  token-value \n")

	secret, err := Load(Source{Name: "api key", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "token-value" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFileTakesPrecedenceOverValue(t *testing.T) {
	path := writeSecret(t, "from-file")

	secret, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("expected file to win, got %q", secret)
	}
}

func TestLoadFromEnvFallback(t *testing.T) {
	path := writeSecret(t, "from-env-file")
	t.Setenv("TEST_SECRET_FILE", path)

	secret, err := Load(Source{Name: "api key", Env: "TEST_SECRET_FILE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-env-file" {
		t.Fatalf("unexpected secret: %q", secret)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeSecret(t, "   ")

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatalf("expected an error for empty secret file")
	}
}

func TestLoadNotConfigured(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatalf("expected an error when nothing is configured")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Source{Name: "api key", File: "/does/not/exist"}); err == nil {
		t.Fatalf("expected an error for missing file")
	}
}
