package testutil

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

var blanks = []string{"", "", "", " ", "\t", "  "}

// RangeExpr returns a random valid range expression with up to terms terms
// (singletons and inclusive ranges in random order, with random blanks around
// tokens) whose values lie in [0, maxValue]. want holds the indices the
// expression selects, sorted and deduplicated.
func (r *RNG) RangeExpr(terms, maxValue int) (expr string, want []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blank := func() string { return blanks[r.rand.Intn(len(blanks))] }

	n := r.rand.Intn(terms + 1)
	parts := make([]string, 0, n)

	for range n {
		lo := r.rand.Intn(maxValue + 1)
		if r.rand.Intn(2) == 0 {
			parts = append(parts, blank()+strconv.Itoa(lo)+blank())
			want = append(want, lo)
			continue
		}

		hi := lo + r.rand.Intn(min(64, maxValue-lo)+1)
		parts = append(parts, blank()+strconv.Itoa(lo)+blank()+"-"+blank()+strconv.Itoa(hi)+blank())
		for v := lo; v <= hi; v++ {
			want = append(want, v)
		}
	}

	slices.Sort(want)
	return strings.Join(parts, ","), slices.Compact(want)
}

// SparseIndices returns n distinct random indices in [0, maxValue], sorted.
func (r *RNG) SparseIndices(n, maxValue int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n = min(n, maxValue+1)
	seen := make(map[int]struct{}, n)
	for len(seen) < n {
		seen[r.rand.Intn(maxValue+1)] = struct{}{}
	}

	out := make([]int, 0, n)
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
