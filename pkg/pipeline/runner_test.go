package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polypath/pkg/cache"
	"github.com/matzehuels/polypath/pkg/observability"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func TestRunnerExecute(t *testing.T) {
	mem := cache.NewMemoryCache(0)
	runner := NewRunner(mem, nil, quietLogger())
	ctx := context.Background()

	opts := Options{Size: 6, Formats: []string{FormatSVG, FormatJSON, FormatDOT}}
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.PathCount != 12 {
		t.Errorf("PathCount = %d, want 12", result.Stats.PathCount)
	}
	if len(result.Paths) != 12 {
		t.Errorf("len(Paths) = %d, want 12", len(result.Paths))
	}
	if result.PathsHash == "" {
		t.Error("PathsHash should be set")
	}
	if result.CacheInfo.EnumerateHit || result.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"count": 12`) {
		t.Error("json artifact missing")
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatDOT]), "graph") {
		t.Error("dot artifact missing")
	}

	// Second run comes entirely from cache.
	again, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheInfo.EnumerateHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], result.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if again.PathsHash != result.PathsHash {
		t.Error("PathsHash should be stable")
	}
}

func TestRunnerRefresh(t *testing.T) {
	mem := cache.NewMemoryCache(0)
	runner := NewRunner(mem, nil, quietLogger())
	ctx := context.Background()

	if _, err := runner.Enumerate(ctx, Options{Size: 5}); err != nil {
		t.Fatal(err)
	}
	_, hit, err := runner.EnumerateWithCacheInfo(ctx, Options{Size: 5, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerCorruptCacheEntry(t *testing.T) {
	mem := cache.NewMemoryCache(0)
	keyer := cache.NewDefaultKeyer()
	runner := NewRunner(mem, keyer, quietLogger())
	ctx := context.Background()

	if err := mem.Set(ctx, keyer.PathsKey(4), []byte("not json"), 0); err != nil {
		t.Fatal(err)
	}
	paths, hit, err := runner.EnumerateWithCacheInfo(ctx, Options{Size: 4})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("corrupt entry should count as a miss")
	}
	if len(paths) != 2 {
		t.Errorf("got %d paths, want 2", len(paths))
	}
}

func TestRunnerInvalidSize(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	if _, err := runner.Execute(context.Background(), Options{Size: 2}); err == nil {
		t.Error("size 2 should fail")
	}
}

func TestRunnerCancelled(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Enumerate(ctx, Options{Size: 9}); err == nil {
		t.Error("cancelled context should fail")
	}
}

func TestRunnerProgress(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	var mu sync.Mutex
	var last, total int
	opts := Options{Size: 8, Workers: 2, Progress: func(done, n int) {
		mu.Lock()
		defer mu.Unlock()
		last = max(last, done)
		total = n
	}}
	if _, err := runner.Enumerate(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if total != 5040 || last != 5040 {
		t.Errorf("progress = %d/%d, want 5040/5040", last, total)
	}
}

func TestRunnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)

	runner := NewRunner(cache.NewMemoryCache(0), nil, quietLogger())
	ctx := context.Background()
	for range 2 {
		if _, err := runner.Execute(ctx, Options{Size: 5}); err != nil {
			t.Fatal(err)
		}
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.enumerations != 1 {
		t.Errorf("enumerations = %d, want 1", hooks.enumerations)
	}
	if hooks.renders != 1 {
		t.Errorf("renders = %d, want 1", hooks.renders)
	}
	if hooks.hits["paths"] != 1 || hooks.misses["paths"] != 1 {
		t.Errorf("paths hits/misses = %d/%d, want 1/1", hooks.hits["paths"], hooks.misses["paths"])
	}
	if hooks.sets["artifact"] != 1 {
		t.Errorf("artifact sets = %d, want 1", hooks.sets["artifact"])
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu           sync.Mutex
	enumerations int
	renders      int
	hits         map[string]int
	misses       map[string]int
	sets         map[string]int
}

func (h *countingHooks) OnEnumerateComplete(context.Context, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enumerations++
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.bump(&h.hits, keyType)
}

func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.bump(&h.misses, keyType)
}

func (h *countingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.bump(&h.sets, keyType)
}

func (h *countingHooks) bump(m *map[string]int, key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if *m == nil {
		*m = make(map[string]int)
	}
	(*m)[key]++
}
