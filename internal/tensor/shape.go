package tensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid: all dimensions > 0 and an element
// count that fits in an int.
func (s Shape) Validate() error {
	n := 1
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("%w: negative dimension at index %d: %d", ErrShapeMismatch, i, dim)
		}
		if dim == 0 {
			return fmt.Errorf("%w: zero dimension at index %d", ErrEmptyShape, i)
		}
		if n > math.MaxInt/dim {
			return fmt.Errorf("%w: element count of %v overflows int", ErrShapeMismatch, s)
		}
		n *= dim
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as (d0, d1, ...).
func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, d := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(d))
	}
	sb.WriteByte(')')
	return sb.String()
}

// key returns a compact map key for the stride cache.
func (s Shape) key() string {
	var sb strings.Builder
	for i, d := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(d))
	}
	return sb.String()
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Offset maps a multi-index to a linear offset: Σ index[i]*strides[i].
func Offset(shape Shape, strides, index []int) (int, error) {
	if len(index) != len(shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrIndexOutOfRange, len(shape), len(index))
	}
	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= shape[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for axis %d (size %d)", ErrIndexOutOfRange, idx, i, shape[i])
		}
		offset += idx * strides[i]
	}
	return offset, nil
}

// Index is the inverse of Offset, recovered by successive division from the
// first axis onward.
func Index(shape Shape, strides []int, offset int) ([]int, error) {
	if offset < 0 || offset >= shape.NumElements() {
		return nil, fmt.Errorf("%w: offset %d outside [0, %d)", ErrIndexOutOfRange, offset, shape.NumElements())
	}
	index := make([]int, len(shape))
	unravel(index, strides, offset)
	return index, nil
}

// unravel writes the multi-index of offset into dst. No bounds checking.
func unravel(dst, strides []int, offset int) {
	for i, st := range strides {
		dst[i] = offset / st
		offset %= st
	}
}

// StrideCache interns row-major strides per distinct shape.
// Returned slices are shared and must not be modified.
type StrideCache struct {
	mu      sync.RWMutex
	strides map[string][]int
}

// NewStrideCache creates an empty cache.
func NewStrideCache() *StrideCache {
	return &StrideCache{strides: make(map[string][]int)}
}

// Strides returns the cached strides for shape, computing them on first use.
func (c *StrideCache) Strides(shape Shape) []int {
	k := shape.key()

	c.mu.RLock()
	st, ok := c.strides[k]
	c.mu.RUnlock()
	if ok {
		return st
	}

	st = shape.ComputeStrides()
	c.mu.Lock()
	if prev, ok := c.strides[k]; ok {
		st = prev
	} else {
		c.strides[k] = st
	}
	c.mu.Unlock()
	return st
}

// Len returns the number of cached shapes.
func (c *StrideCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strides)
}

// Reset drops every cached entry.
func (c *StrideCache) Reset() {
	c.mu.Lock()
	c.strides = make(map[string][]int)
	c.mu.Unlock()
}
