package frame

import "math/bits"

// Mask is a row-selection bit vector.
// Bit = 1 means the row is selected.
type Mask struct {
	bits   []uint64
	length int
}

// NewMask creates a mask over length rows with no rows selected.
func NewMask(length int) *Mask {
	return &Mask{
		bits:   make([]uint64, (length+63)/64),
		length: length,
	}
}

// Len returns the number of rows the mask covers.
func (m *Mask) Len() int {
	return m.length
}

// Set selects row i.
func (m *Mask) Set(i int) {
	if i < 0 || i >= m.length {
		return
	}
	m.bits[i/64] |= uint64(1) << (i % 64)
}

// IsSet reports whether row i is selected.
func (m *Mask) IsSet(i int) bool {
	if i < 0 || i >= m.length {
		return false
	}
	return m.bits[i/64]&(uint64(1)<<(i%64)) != 0
}

// Count returns the number of selected rows.
func (m *Mask) Count() int {
	count := 0
	for _, word := range m.bits {
		count += bits.OnesCount64(word)
	}
	return count
}

// Indices returns the selected row positions in ascending order.
func (m *Mask) Indices() []int {
	out := make([]int, 0, m.Count())
	for w, word := range m.bits {
		for word != 0 {
			tz := bits.TrailingZeros64(word)
			out = append(out, w*64+tz)
			word &= word - 1
		}
	}
	return out
}

// And returns the intersection of two masks of equal length.
func (m *Mask) And(other *Mask) *Mask {
	out := NewMask(m.length)
	for i := range out.bits {
		if i < len(other.bits) {
			out.bits[i] = m.bits[i] & other.bits[i]
		}
	}
	return out
}
