package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aouyang1/errorparty/util"
)

// MaxHistory is how many recent picks per category are avoided.
const MaxHistory = 3

var (
	ErrNotFound         = errors.New("asset not found")
	ErrMissingDirectory = fmt.Errorf("%w: missing directory", ErrNotFound)
	ErrEmptyPool        = fmt.Errorf("%w: empty pool", ErrNotFound)
)

// Rotator picks assets from <root>/images and <root>/sounds. Directories are
// listed on every pick so assets can be added while the daemon runs.
type Rotator struct {
	rootPath string

	mu      sync.Mutex
	rng     *rand.Rand
	history map[Category][]int
}

type Option func(*Rotator)

// WithRand replaces the default auto-seeded random source.
func WithRand(rng *rand.Rand) Option {
	return func(r *Rotator) {
		r.rng = rng
	}
}

func NewRotator(rootPath string, opts ...Option) *Rotator {
	r := &Rotator{
		rootPath: rootPath,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		history:  make(map[Category][]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the directory searched for the category.
func (r *Rotator) Dir(c Category) string {
	return filepath.Join(r.rootPath, c.Dir())
}

// Pool lists the candidate file names for the category in directory order.
func (r *Rotator) Pool(c Category) ([]string, error) {
	dir := r.Dir(c)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
		}
		return nil, fmt.Errorf("failed to read %s directory: %w", c, err)
	}

	exts := c.Extensions()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if util.HasExt(exts, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPool, dir)
	}
	return names, nil
}

// Pick returns the absolute path of a random asset in the category. Any
// error wraps ErrNotFound when the pool is missing or empty.
func (r *Rotator) Pick(c Category) (string, error) {
	names, err := r.Pool(c)
	if err != nil {
		slog.Debug("no asset to pick", "category", c, "error", err)
		if !errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", err
	}

	idx := r.next(c, len(names))

	path, err := filepath.Abs(filepath.Join(r.Dir(c), names[idx]))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return path, nil
}

// next draws an index in [0, n) and records it in the category history.
func (r *Rotator) next(c Category, n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.history[c]
	idx := r.rng.IntN(n)
	if n > c.minPoolSize() {
		// only the newest n-1 picks are avoided so one index always remains
		avoid := history[max(0, len(history)-(n-1)):]
		for slices.Contains(avoid, idx) {
			idx = r.rng.IntN(n)
		}
	}

	history = append(history, idx)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	r.history[c] = history
	return idx
}

// History returns a copy of the recent picks for the category, oldest first.
func (r *Rotator) History(c Category) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history[c])
}
