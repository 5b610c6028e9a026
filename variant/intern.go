package variant

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// DefaultInternerSize bounds an Interner created with a non-positive size.
const DefaultInternerSize = 1024

// Interner returns one shared instance for structurally identical specs, so
// that many variables built from equal configuration reference the same
// immutable DataSpec. It holds at most a bounded number of specs; evicted
// specs remain valid, they are just no longer shared with later callers.
//
// An Interner is safe for concurrent use.
type Interner struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewInterner returns an interner holding up to size specs.
func NewInterner(size int) *Interner {
	if size <= 0 {
		size = DefaultInternerSize
	}
	return &Interner{cache: lru.New(size)}
}

// Intern returns the shared instance equal to spec, registering spec when
// none is held.
func (in *Interner) Intern(spec *DataSpec) *DataSpec {
	if spec == nil {
		return nil
	}
	key := internKey(spec)
	in.mu.Lock()
	defer in.mu.Unlock()
	if v, ok := in.cache.Get(key); ok {
		return v.(*DataSpec)
	}
	in.cache.Add(key, spec)
	return spec
}

// Len returns the number of specs currently held.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cache.Len()
}

// internKey identifies a spec by level and rendering, which together cover
// every bound field.
func internKey(spec *DataSpec) string {
	return spec.Level().String() + "|" + spec.String()
}
