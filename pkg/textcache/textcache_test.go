package textcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookdepth/models"
)

func testChapters() []models.Chapter {
	return []models.Chapter{
		{Index: 0, Title: "Chapter 1", Text: "Opening text about drawdowns."},
		{Index: 1, Title: "Chapter 2", Text: "Closing text about patience."},
	}
}

func TestCache_RoundTrip(t *testing.T) {
	cache, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := cache.Set("identity-1", testChapters()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get("identity-1")
	if !ok {
		t.Fatal("Get() missed a fresh entry")
	}
	want := testChapters()
	if len(got) != len(want) {
		t.Fatalf("got %d chapters, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chapter[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCache_MissOnUnknownIdentity(t *testing.T) {
	cache, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get("never-stored"); ok {
		t.Error("Get() hit for an identity that was never stored")
	}
}

func TestCache_ExpiredEntryIsMiss(t *testing.T) {
	cache, err := New(t.TempDir(), time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("identity-1", testChapters()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok := cache.Get("identity-1"); ok {
		t.Error("Get() hit an expired entry")
	}
}

func TestCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := New(dir, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("identity-1", testChapters()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("cache dir listing: %v, %d entries", err, len(entries))
	}
	path := filepath.Join(dir, entries[0].Name())
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get("identity-1"); ok {
		t.Error("Get() hit a corrupt entry")
	}
}

func TestCache_IdentitiesAreIsolated(t *testing.T) {
	cache, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("identity-1", testChapters()); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("identity-2", testChapters()[:1]); err != nil {
		t.Fatal(err)
	}

	one, ok := cache.Get("identity-1")
	if !ok || len(one) != 2 {
		t.Errorf("identity-1 = %d chapters, want 2", len(one))
	}
	two, ok := cache.Get("identity-2")
	if !ok || len(two) != 1 {
		t.Errorf("identity-2 = %d chapters, want 1", len(two))
	}
}
