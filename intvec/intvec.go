// Package intvec provides a growable sequence of ints with sorted-insert support.
//
// It is the sparse "index list" representation used by rangeset: after any
// rangeset update the vector is sorted ascending and free of duplicates.
package intvec

import (
	"iter"
	"slices"
)

// Vector is a growable, ordered sequence of ints.
// The zero value is an empty vector ready to use.
type Vector struct {
	data []int
}

// New creates an empty vector with room for capacity elements.
func New(capacity int) *Vector {
	return &Vector{data: make([]int, 0, max(capacity, 0))}
}

// Of creates a vector holding a copy of values, in order.
func Of(values ...int) *Vector {
	return &Vector{data: slices.Clone(values)}
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return len(v.data)
}

// Get returns the element at position i. It panics if i is out of range.
func (v *Vector) Get(i int) int {
	return v.data[i]
}

// Append adds value at the end.
func (v *Vector) Append(value int) {
	v.data = append(v.data, value)
}

// InsertSorted inserts value at its ascending position.
// The vector must already be sorted.
func (v *Vector) InsertSorted(value int) {
	i, _ := slices.BinarySearch(v.data, value)
	v.data = slices.Insert(v.data, i, value)
}

// Sort sorts the elements in ascending order.
func (v *Vector) Sort() {
	slices.Sort(v.data)
}

// Contains reports whether value is present. The vector must be sorted.
func (v *Vector) Contains(value int) bool {
	_, found := slices.BinarySearch(v.data, value)
	return found
}

// Max returns the largest element, or false when the vector is empty.
func (v *Vector) Max() (int, bool) {
	if len(v.data) == 0 {
		return 0, false
	}
	return slices.Max(v.data), true
}

// Reset empties the vector, keeping its capacity.
func (v *Vector) Reset() {
	v.data = v.data[:0]
}

// Values returns a copy of the elements.
func (v *Vector) Values() []int {
	return slices.Clone(v.data)
}

// All iterates the elements in order.
func (v *Vector) All() iter.Seq[int] {
	return slices.Values(v.data)
}
