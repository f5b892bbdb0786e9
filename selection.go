package rangeset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/rangeset/boolvec"
	"github.com/hupe1980/rangeset/intvec"
)

// Selection is a compressed set of non-negative indices.
// It wraps a 32-bit Roaring bitmap; ranges are stored as runs, so large
// contiguous selections stay small.
//
// A Selection is not safe for concurrent mutation.
type Selection struct {
	rb *roaring.Bitmap
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{rb: roaring.New()}
}

// SelectionOf creates a selection holding values.
// Values outside [0, DefaultMaxValue] are ignored.
func SelectionOf(values ...int) *Selection {
	s := NewSelection()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// SelectionFromBitmap wraps rb without copying it.
func SelectionFromBitmap(rb *roaring.Bitmap) *Selection {
	if rb == nil {
		rb = roaring.New()
	}
	return &Selection{rb: rb}
}

// Add selects index i. Values outside [0, DefaultMaxValue] are ignored.
func (s *Selection) Add(i int) {
	if !inRange(i) {
		return
	}
	s.rb.Add(uint32(i))
}

// AddRange selects every index in the inclusive range [low, high].
// The range is clipped to [0, DefaultMaxValue].
func (s *Selection) AddRange(low, high int) {
	low = max(low, 0)
	high = min(high, DefaultMaxValue)
	if low > high {
		return
	}
	s.rb.AddRange(uint64(low), uint64(high)+1)
}

// Contains reports whether index i is selected.
func (s *Selection) Contains(i int) bool {
	return inRange(i) && s.rb.Contains(uint32(i))
}

// Cardinality returns the number of selected indices.
func (s *Selection) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Max returns the largest selected index, or false when empty.
func (s *Selection) Max() (int, bool) {
	if s.rb.IsEmpty() {
		return 0, false
	}
	return int(s.rb.Maximum()), true
}

// Clear removes every index.
func (s *Selection) Clear() {
	s.rb.Clear()
}

// Clone returns a deep copy.
func (s *Selection) Clone() *Selection {
	return &Selection{rb: s.rb.Clone()}
}

// Or adds every index of other to s.
func (s *Selection) Or(other *Selection) {
	s.rb.Or(other.rb)
}

// Equals reports whether both selections hold the same indices.
func (s *Selection) Equals(other *Selection) bool {
	return s.rb.Equals(other.rb)
}

// Iterator iterates the selected indices in ascending order.
func (s *Selection) Iterator() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// ToList returns the selection as a sorted index list.
func (s *Selection) ToList() *intvec.Vector {
	list := intvec.New(s.Cardinality())
	for i := range s.Iterator() {
		list.Append(i)
	}
	return list
}

// ToMask returns the selection as a membership mask sized to Max()+1.
func (s *Selection) ToMask() *boolvec.Vector {
	size := 0
	if m, ok := s.Max(); ok {
		size = m + 1
	}
	mask := boolvec.New(size, false)
	for i := range s.Iterator() {
		mask.Set(i, true)
	}
	return mask
}

// Bitmap returns the underlying Roaring bitmap. Mutating it mutates s.
func (s *Selection) Bitmap() *roaring.Bitmap {
	return s.rb
}

// String returns the canonical range expression for s, e.g. "1,3-5".
func (s *Selection) String() string {
	return formatSorted(s.Iterator())
}

func inRange(i int) bool {
	return i >= 0 && i <= DefaultMaxValue
}
