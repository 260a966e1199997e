package polypath

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/matzehuels/polypath/pkg/polypath/perm"
)

const (
	// MinSize is the smallest polygon that has a closed path.
	MinSize = 3

	// MaxSize bounds the enumeration: (MaxSize-1)! ranks are visited.
	MaxSize = 12

	// checkEvery is how many ranks are processed between context checks and
	// progress callbacks.
	checkEvery = 4096
)

// ErrInvalidSize is returned when the polygon size is outside
// [MinSize, MaxSize].
var ErrInvalidSize = errors.New("invalid polygon size")

// Option configures [FindPathsContext].
type Option func(*options)

type options struct {
	workers  int
	progress func(done, total int)
}

// WithWorkers splits the rank space across w goroutines. Values below 1 are
// treated as 1. The result does not depend on w.
func WithWorkers(w int) Option {
	return func(o *options) { o.workers = max(w, 1) }
}

// WithProgress registers fn to be called periodically with the number of
// ranks processed so far. With several workers fn may be called concurrently.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

// CheckSize returns an error wrapping [ErrInvalidSize] if n is not a
// supported polygon size.
func CheckSize(n int) error {
	if n < MinSize {
		return fmt.Errorf("%w: %d (a closed path needs at least %d vertices)", ErrInvalidSize, n, MinSize)
	}
	if n > MaxSize {
		return fmt.Errorf("%w: %d (at most %d vertices are supported)", ErrInvalidSize, n, MaxSize)
	}
	return nil
}

// FindPaths returns every distinct closed path through the vertices of a
// regular n-gon, sorted by [Compare].
//
// It returns an error wrapping [ErrInvalidSize] for n < MinSize or
// n > MaxSize.
func FindPaths(n int) ([]PolyPath, error) {
	return FindPathsContext(context.Background(), n)
}

// FindPathsContext is [FindPaths] with cancellation and options.
//
// The context is checked periodically; on cancellation the partial result is
// discarded and ctx.Err() is returned.
func FindPathsContext(ctx context.Context, n int, opts ...Option) ([]PolyPath, error) {
	if err := CheckSize(n); err != nil {
		return nil, err
	}
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	total := perm.Factorial(n - 1)
	workers := min(o.workers, total)
	counter := newCounter(total, o.progress)

	if workers == 1 {
		set := make(pathSet)
		if err := enumerateRange(ctx, n, 0, total, set, counter); err != nil {
			return nil, err
		}
		return set.sorted(), nil
	}

	// Each worker owns a private set over a contiguous rank range.
	sets := make([]pathSet, workers)
	errs := make([]error, workers)
	chunk := (total + workers - 1) / workers

	var wg sync.WaitGroup
	for w := range workers {
		lo, hi := w*chunk, min((w+1)*chunk, total)
		sets[w] = make(pathSet)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[w] = enumerateRange(ctx, n, lo, hi, sets[w], counter)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	merged := sets[0]
	for _, s := range sets[1:] {
		merged.merge(s)
	}
	return merged.sorted(), nil
}

// Count returns the number of distinct closed paths on a regular n-gon.
func Count(n int) (int, error) {
	paths, err := FindPaths(n)
	if err != nil {
		return 0, err
	}
	return len(paths), nil
}

func enumerateRange(ctx context.Context, n, lo, hi int, set pathSet, c *counter) error {
	for rank := lo; rank < hi; rank++ {
		if (rank-lo)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		set.add(PolyPath{Size: n, Path: Canonicalize(Encode(perm.Decode(rank, n)))})
		if (rank-lo+1)%checkEvery == 0 {
			c.add(checkEvery)
		}
	}
	c.add((hi - lo) % checkEvery)
	return nil
}

// pathSet deduplicates paths by value.
type pathSet map[string]PolyPath

func (s pathSet) add(p PolyPath) {
	k := p.Key()
	if _, ok := s[k]; !ok {
		s[k] = p
	}
}

func (s pathSet) merge(o pathSet) {
	for k, p := range o {
		if _, ok := s[k]; !ok {
			s[k] = p
		}
	}
}

// sorted returns the set's contents in [Compare] order. Map iteration order
// is never observable in the result.
func (s pathSet) sorted() []PolyPath {
	out := make([]PolyPath, 0, len(s))
	for _, p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, Compare)
	return out
}

// counter accumulates processed ranks for the progress callback.
type counter struct {
	mu    sync.Mutex
	done  int
	total int
	fn    func(done, total int)
}

func newCounter(total int, fn func(done, total int)) *counter {
	return &counter{total: total, fn: fn}
}

func (c *counter) add(k int) {
	if c.fn == nil || k == 0 {
		return
	}
	c.mu.Lock()
	c.done += k
	done := c.done
	c.mu.Unlock()
	c.fn(done, c.total)
}
