// Package boolvec provides a dense, auto-extending boolean sequence.
//
// It is the "membership mask" representation used by rangeset: position i is
// true when index i is selected. Setting a position past the current size
// grows the vector; new positions take the vector's default value.
//
// Storage is a github.com/bits-and-blooms/bitset. Bits at positions >= Size()
// are always zero, so growing with a true default only has to flip the new
// range.
package boolvec

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// Vector is a dense boolean sequence indexed from 0.
type Vector struct {
	bits         *bitset.BitSet
	size         uint
	defaultValue bool
}

// New creates a vector of the given size with every position set to defaultValue.
func New(size int, defaultValue bool) *Vector {
	v := &Vector{
		bits:         bitset.New(uint(max(size, 0))),
		defaultValue: defaultValue,
	}
	v.grow(uint(max(size, 0)))
	return v
}

// Size returns the number of positions.
func (v *Vector) Size() int {
	return int(v.size)
}

// Default returns the value new positions are filled with.
func (v *Vector) Default() bool {
	return v.defaultValue
}

// Set assigns value to position i, growing the vector to i+1 if needed.
// It panics if i is negative.
func (v *Vector) Set(i int, value bool) {
	idx := index(i)
	if idx >= v.size {
		v.grow(idx + 1)
	}
	v.bits.SetTo(idx, value)
}

// SetRange sets every position in the inclusive range [low, high] to true,
// growing the vector to high+1 if needed. It is a no-op when low > high and
// panics if either bound is negative.
func (v *Vector) SetRange(low, high int) {
	lo, hi := index(low), index(high)
	if lo > hi {
		return
	}
	if hi >= v.size {
		v.grow(hi + 1)
	}
	v.bits.Set(hi)

	words := v.bits.Words()
	first, last := lo/64, hi/64
	loMask := ^uint64(0) << (lo % 64)
	hiMask := ^uint64(0) >> (63 - hi%64)
	if first == last {
		words[first] |= loMask & hiMask
		return
	}
	words[first] |= loMask
	for w := first + 1; w < last; w++ {
		words[w] = ^uint64(0)
	}
	words[last] |= hiMask
}

// Get returns the value at position i. Positions past the end read as the
// default value. It panics if i is negative.
func (v *Vector) Get(i int) bool {
	idx := index(i)
	if idx >= v.size {
		return v.defaultValue
	}
	return v.bits.Test(idx)
}

// Reset empties the vector (size 0).
func (v *Vector) Reset() {
	v.bits.ClearAll()
	v.size = 0
}

// Count returns the number of true positions.
func (v *Vector) Count() int {
	return int(v.bits.Count())
}

// NextSet returns the first true position >= i, or false if there is none.
func (v *Vector) NextSet(i int) (int, bool) {
	next, ok := v.bits.NextSet(index(i))
	if !ok || next >= v.size {
		return 0, false
	}
	return int(next), true
}

// Indices iterates the true positions in ascending order.
func (v *Vector) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, ok := v.NextSet(0); ok; i, ok = v.NextSet(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}

// Equal reports whether both vectors have the same size and contents.
func (v *Vector) Equal(other *Vector) bool {
	if v.size != other.size {
		return false
	}
	i, ok := v.NextSet(0)
	j, otherOK := other.NextSet(0)
	for ok && otherOK {
		if i != j {
			return false
		}
		i, ok = v.NextSet(i + 1)
		j, otherOK = other.NextSet(j + 1)
	}
	return ok == otherOK
}

func (v *Vector) grow(size uint) {
	if size <= v.size {
		return
	}
	if v.defaultValue {
		v.bits.FlipRange(v.size, size)
	}
	v.size = size
}

func index(i int) uint {
	if i < 0 {
		panic(fmt.Sprintf("boolvec: negative index %d", i))
	}
	return uint(i)
}
