// Package sparse provides a sparse set over uint32 values with O(1) insert,
// membership test, and clear. The PikeVM uses one to bound each epsilon
// closure expansion: quantifier loops revisit states, and the set stops the
// descent without paying for a map or a full reset between closures.
package sparse

// SparseSet holds uint32 values below a fixed capacity. The sparse array
// maps a value to its slot in the dense array; a value is present when its
// slot is in range and the dense entry points back at it, which is what
// makes Clear O(1).
type SparseSet struct {
	sparse []uint32
	dense  []uint32
	size   uint32
}

// NewSparseSet creates a set accepting values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set. Inserting a present value is a no-op.
// Values at or above capacity are ignored.
func (s *SparseSet) Insert(value uint32) {
	if s.Contains(value) || value >= uint32(len(s.sparse)) {
		return
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
}

// Contains reports whether the value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear empties the set in O(1).
func (s *SparseSet) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Size returns the number of values in the set.
func (s *SparseSet) Size() int {
	return int(s.size)
}

// Values returns the set contents. The slice is valid until the next
// mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense[:s.size]
}
