package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	for _, key := range []string{"paths:x", "artifact:y"} {
		if err := c.Set(ctx, key, []byte("cycle"), time.Hour); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
		data, hit, err := c.Get(ctx, key)
		if err != nil || hit || data != nil {
			t.Errorf("Get(%q) = %q, %v, %v; want a plain miss", key, data, hit, err)
		}
		if err := c.Delete(ctx, key); err != nil {
			t.Errorf("Delete(%q): %v", key, err)
		}
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "paths:7", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "paths:7")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "paths:7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "paths:7"); hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting twice is fine
	if err := c.Delete(ctx, "paths:7"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("short")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	path := c.path("broken")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, hit, err := c.Get(ctx, "broken")
	if err != nil || hit {
		t.Errorf("corrupt entry should be a silent miss, hit=%v err=%v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty, has %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, _ := c.Get(ctx, "k")
	if !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v", data, hit)
	}

	// Returned slices are copies
	data[0] = 'x'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "v" {
		t.Error("mutating a returned value must not change the cache")
	}

	now := time.Now()
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "ttl", []byte("v"), time.Minute)
	c.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, hit, _ := c.Get(ctx, "ttl"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	_ = c.Close()
	if c.Len() != 0 {
		t.Error("Close should drop entries")
	}
}

func TestMemoryCacheLimit(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)

	for _, k := range []string{"a", "b", "c", "d"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry should have been evicted")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("entry %q should still be cached", k)
		}
	}

	// Overwriting an existing key never evicts.
	_ = c.Set(ctx, "b", []byte("b2"), 0)
	if c.Len() != 3 {
		t.Errorf("Len after overwrite = %d, want 3", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("overwrite evicted an unrelated entry")
	}
}

func TestMemoryCacheSweepsExpiredFirst(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)
	now := time.Now()
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "keep", []byte("v"), 0)
	_ = c.Set(ctx, "short1", []byte("v"), time.Minute)
	_ = c.Set(ctx, "short2", []byte("v"), time.Minute)

	c.now = func() time.Time { return now.Add(time.Hour) }
	_ = c.Set(ctx, "new", []byte("v"), 0)

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2 after sweeping expired entries", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "keep"); !hit {
		t.Error("live entry evicted although expired ones could be swept")
	}
}

func TestMemoryCacheBoundedUnderManyKeys(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(16)
	keyer := NewDefaultKeyer()

	for scale := 1; scale <= 500; scale++ {
		key := keyer.ArtifactKey("hash", ArtifactKeyOpts{Format: "svg", Style: "simple", Scale: scale, Labels: true})
		_ = c.Set(ctx, key, []byte("<svg/>"), TTLArtifact)
		if c.Len() > 16 {
			t.Fatalf("Len = %d after %d keys, want at most 16", c.Len(), scale)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashKey(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"deterministic", hashKey("paths", 7), hashKey("paths", 7), true},
		{"size", hashKey("paths", 7), hashKey("paths", 8), false},
		{"kind", hashKey("paths", 7), hashKey("artifact", 7), false},
		{"part boundaries", hashKey("artifact", "ab", "c"), hashKey("artifact", "a", "bc"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.a == tt.b) != tt.same {
				t.Errorf("%s vs %s: same = %v, want %v", tt.a, tt.b, tt.a == tt.b, tt.same)
			}
		})
	}

	k := hashKey("artifact", "abc")
	if !strings.HasPrefix(k, "artifact:") || len(k) != len("artifact:")+64 {
		t.Errorf("hashKey = %q, want artifact:<64 hex>", k)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	p7 := k.PathsKey(7)
	if !strings.HasPrefix(p7, "paths:") {
		t.Errorf("PathsKey should start with paths: %s", p7)
	}
	if p7 == k.PathsKey(8) {
		t.Error("Different sizes should produce different keys")
	}
	if p7 != k.PathsKey(7) {
		t.Error("PathsKey should be deterministic")
	}

	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Scale: 50})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 50})
	ak3 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Scale: 80})
	if ak1 == ak2 || ak1 == ak3 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should start with artifact: %s", ak1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v2:")

	if got, want := scoped.PathsKey(5), "v2:"+inner.PathsKey(5); got != want {
		t.Errorf("ScopedKeyer PathsKey = %s, want %s", got, want)
	}
	opts := ArtifactKeyOpts{Format: "svg"}
	if got, want := scoped.ArtifactKey("h", opts), "v2:"+inner.ArtifactKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PathsKey(3)
	if !strings.HasPrefix(key, "prefix:paths:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
