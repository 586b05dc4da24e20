package datadir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "nested", "custom.json")
	t.Setenv("STUDYSQUAD_TEST_PATH", want)

	got, err := Resolve("STUDYSQUAD_TEST_PATH", "ignored.json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestResolve_XDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("STUDYSQUAD_TEST_PATH", "")
	t.Setenv("XDG_DATA_HOME", tmp)

	got, err := Resolve("STUDYSQUAD_TEST_PATH", "progress.json")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := filepath.Join(tmp, "studysquad", "progress.json")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
