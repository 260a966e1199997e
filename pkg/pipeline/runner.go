package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polypath/pkg/cache"
	pathio "github.com/matzehuels/polypath/pkg/io"
	"github.com/matzehuels/polypath/pkg/observability"
	"github.com/matzehuels/polypath/pkg/polypath"
)

// Cache key types reported to observability hooks.
const (
	keyTypePaths    = "paths"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete enumerate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Enumerate
	enumStart := time.Now()
	paths, hit, err := r.EnumerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("enumerate: %w", err)
	}
	result.Paths = paths
	result.Stats.Size = opts.Size
	result.Stats.PathCount = len(paths)
	result.Stats.EnumerateTime = time.Since(enumStart)
	result.CacheInfo.EnumerateHit = hit

	if data, err := pathio.Marshal(paths); err == nil {
		result.PathsHash = cache.Hash(data)
	}

	r.Logger.Info("found paths",
		"size", opts.Size,
		"paths", len(paths),
		"cached", hit,
		"duration", result.Stats.EnumerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, paths, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EnumerateWithCacheInfo finds the paths for opts.Size with caching and
// returns cache hit info. Refresh bypasses the cached result but still
// stores the new one.
func (r *Runner) EnumerateWithCacheInfo(ctx context.Context, opts Options) ([]polypath.PolyPath, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForEnumerate(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PathsKey(opts.Size)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			paths, err := pathio.Unmarshal(data)
			if err == nil && len(paths) > 0 && paths[0].Size == opts.Size {
				observability.Cache().OnCacheHit(ctx, keyTypePaths)
				return paths, true, nil
			}
			r.Logger.Warn("discarding unreadable cache entry", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypePaths)
	}

	opts.Logger.Debug("enumerating", "size", opts.Size, "workers", opts.Workers)
	hooks := observability.Pipeline()
	hooks.OnEnumerateStart(ctx, opts.Size)
	start := time.Now()

	findOpts := []polypath.Option{polypath.WithWorkers(opts.Workers)}
	if opts.Progress != nil {
		findOpts = append(findOpts, polypath.WithProgress(opts.Progress))
	}
	paths, err := polypath.FindPathsContext(ctx, opts.Size, findOpts...)
	hooks.OnEnumerateComplete(ctx, opts.Size, len(paths), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := pathio.Marshal(paths); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPaths); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypePaths, len(data))
		}
	}

	return paths, false, nil
}

// Enumerate is a convenience wrapper that calls EnumerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Enumerate(ctx context.Context, opts Options) ([]polypath.PolyPath, error) {
	paths, _, err := r.EnumerateWithCacheInfo(ctx, opts)
	return paths, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, paths []polypath.PolyPath, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	data, err := pathio.Marshal(paths)
	if err != nil {
		return nil, false, fmt.Errorf("serialize paths for cache key: %w", err)
	}
	pathsHash := cache.Hash(data)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(pathsHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
			break
		}
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}

	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	opts.Logger.Debug("rendering", "formats", opts.Formats, "viz", opts.VizType, "style", opts.Style)
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, paths, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(pathsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, paths []polypath.PolyPath, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, paths, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
