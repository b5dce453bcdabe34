package processing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/bootstrap/pkg/api"
)

const validManifest = `
context:
  vulkanVersion: "1.2.170"
steps:
  - name: syncSubmodules
    type: submodules
`

// setupDiscoverTree creates root/.bootstrap.yaml and root/a/b/c.
func setupDiscoverTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, api.ManifestFilename), []byte(validManifest), 0o600); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestFindManifest(t *testing.T) {
	root := setupDiscoverTree(t)
	want := filepath.Join(root, api.ManifestFilename)

	tests := []struct {
		name      string
		start     string
		maxLevels int
		wantErr   bool
	}{
		{"in start directory", root, 0, false},
		{"three levels up", filepath.Join(root, "a", "b", "c"), 3, false},
		{"unlimited", filepath.Join(root, "a", "b", "c"), -1, false},
		{"beyond max levels", filepath.Join(root, "a", "b", "c"), 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindManifest(tt.start, tt.maxLevels)
			if tt.wantErr {
				if !errors.Is(err, ErrManifestNotFound) {
					t.Fatalf("expected ErrManifestNotFound, got %v (%s)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestFindManifest_IgnoresDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, api.ManifestFilename), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindManifest(root, 0); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestResolveManifest(t *testing.T) {
	root := setupDiscoverTree(t)

	t.Run("discovered", func(t *testing.T) {
		m, err := ResolveManifest("", filepath.Join(root, "a"), -1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Dir != root {
			t.Errorf("Dir = %s, want %s", m.Dir, root)
		}
		if len(m.Steps) != 1 || m.Steps[0].Name != "syncSubmodules" {
			t.Errorf("unexpected steps %+v", m.Steps)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		m, err := ResolveManifest(filepath.Join(root, api.ManifestFilename), t.TempDir(), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.FilePath == "" {
			t.Error("expected FilePath to be set")
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if _, err := ResolveManifest(filepath.Join(root, "nope.yaml"), root, 0); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("falls back to built-in", func(t *testing.T) {
		empty := t.TempDir()
		m, err := ResolveManifest("", empty, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.FilePath != "" {
			t.Errorf("expected no FilePath, got %s", m.FilePath)
		}
		if m.Dir != empty {
			t.Errorf("Dir = %s, want %s", m.Dir, empty)
		}
		if len(m.Steps) == 0 {
			t.Error("expected built-in steps")
		}
	})

	t.Run("invalid manifest", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, api.ManifestFilename), []byte("steps: []\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := ResolveManifest("", dir, 0); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
