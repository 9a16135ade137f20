package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := NewStore(dir, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("mykey", "1432 (pacman)"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, fresh, err := s.Get("mykey", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !fresh {
		t.Error("expected fresh=true for recently written entry")
	}
	if value != "1432 (pacman)" {
		t.Errorf("round-trip mismatch: got %q, want %q", value, "1432 (pacman)")
	}
}

func TestMultiLineValueSurvives(t *testing.T) {
	s := newTestStore(t)

	original := "NVIDIA GeForce RTX 3060\nIntel UHD Graphics 770"
	if err := s.Set("gpu", original); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, _, err := s.Get("gpu", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != original {
		t.Errorf("inner newlines lost: got %q, want %q", value, original)
	}
}

func TestTTLExpiry(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("expiring", "data"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Backdate the file modification time to simulate age.
	path := filepath.Join(s.dir, "expiring.txt")
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	value, fresh, err := s.Get("expiring", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh {
		t.Error("expected fresh=false for stale entry")
	}
	if value != "data" {
		t.Errorf("expected stale data to still be returned, got %q", value)
	}
}

func TestMissingKeyReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	value, fresh, err := s.Get("nonexistent", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh {
		t.Error("expected fresh=false for missing key")
	}
	if value != "" {
		t.Errorf("expected empty value for missing key, got %q", value)
	}
}

func TestCorruptedFileHandling(t *testing.T) {
	s := newTestStore(t)

	// Write bytes that are not valid UTF-8 directly to the cache file.
	path := filepath.Join(s.dir, "broken.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 'x'}, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	value, fresh, err := s.Get("broken", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fresh {
		t.Error("expected fresh=false for corrupted entry")
	}
	if value != "" {
		t.Errorf("expected empty value for corrupted entry, got %q", value)
	}

	// Verify the corrupted file was removed.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected corrupted file to be removed")
	}
}

func TestAtomicWriteConcurrency(t *testing.T) {
	s := newTestStore(t)

	const goroutines = 20
	const iterations = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if err := s.Set("concurrent", "writer"); err != nil {
					t.Errorf("goroutine %d iteration %d: Set: %v", id, i, err)
					return
				}
			}
		}(g)
	}

	wg.Wait()

	// After all writes complete, the file must hold a complete value.
	value, fresh, err := s.Get("concurrent", 1*time.Hour)
	if err != nil {
		t.Fatalf("Get after concurrent writes: %v", err)
	}
	if !fresh {
		t.Error("expected fresh=true")
	}
	if value != "writer" {
		t.Errorf("torn write: got %q, want %q", value, "writer")
	}
}

func TestAge(t *testing.T) {
	s := newTestStore(t)

	// Missing key returns 0.
	if age := s.Age("missing"); age != 0 {
		t.Errorf("expected age=0 for missing key, got %v", age)
	}

	if err := s.Set("aged", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	age := s.Age("aged")
	if age < 0 || age > 2*time.Second {
		t.Errorf("unexpected age for freshly written entry: %v", age)
	}

	// Backdate and recheck.
	path := filepath.Join(s.dir, "aged.txt")
	past := time.Now().Add(-30 * time.Minute)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	age = s.Age("aged")
	if age < 29*time.Minute || age > 31*time.Minute {
		t.Errorf("expected age ~30m, got %v", age)
	}
}

func TestKeys(t *testing.T) {
	s := newTestStore(t)

	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected empty keys, got %v", keys)
	}

	for _, k := range []string{"alpha", "beta", "gamma"} {
		if err := s.Set(k, k); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	keys := s.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d: %v", len(keys), keys)
	}

	want := map[string]bool{"alpha": true, "beta": true, "gamma": true}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("unexpected key: %s", k)
		}
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := s.Set(k, k); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if keys := s.Keys(); len(keys) != 0 {
		t.Errorf("expected no keys after clear, got %v", keys)
	}
}

func TestDefaultDir(t *testing.T) {
	dir, err := DefaultDir()
	if err != nil {
		t.Skipf("no user cache dir in this environment: %v", err)
	}
	if !strings.HasSuffix(dir, "slowfetch") {
		t.Errorf("DefaultDir() = %q, want slowfetch suffix", dir)
	}
}

func TestFilePermissions(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("perms", "secret"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	path := filepath.Join(s.dir, "perms.txt")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}

func TestDirectoryPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	_, err := NewStore(dir, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0700 {
		t.Errorf("expected directory permissions 0700, got %04o", perm)
	}
}
