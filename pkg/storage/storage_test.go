package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	if err := WriteAtomic(path, []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content = %q", data)
	}

	// overwrite
	if err := WriteAtomic(path, []byte("v2")); err != nil {
		t.Fatalf("WriteAtomic() overwrite error = %v", err)
	}
	data, _ = ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("content after overwrite = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "report.json")
	if err := WriteAtomic(path, []byte("x")); err == nil {
		t.Error("WriteAtomic() into a missing directory did not error")
	}
}

func TestHasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !HasFile(path) {
		t.Error("HasFile() = false for an existing file")
	}
	if HasFile(filepath.Join(dir, "absent")) {
		t.Error("HasFile() = true for a missing file")
	}
	if HasFile("") {
		t.Error("HasFile(\"\") = true")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("nested directory not created: %v", err)
	}
	// idempotent
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing directory error = %v", err)
	}
}
