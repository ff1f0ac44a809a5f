package tensor

import (
	"fmt"
	"sync"
)

// Buffer is an owning, fixed-length, flat store of elements.
//
// Any number of Views may share a Buffer. Writers that run concurrently must
// each hold a lease obtained from Acquire; leases over overlapping ranges are
// refused, so two live mutable views can never alias.
type Buffer[T DType] struct {
	data []T

	mu        sync.Mutex // guards leases
	leases    map[uint64]span
	nextLease uint64
}

// span is a half-open range [lo, hi) of a buffer.
type span struct {
	lo, hi int
}

func (s span) overlaps(o span) bool {
	return s.lo < o.hi && o.lo < s.hi
}

// NewBuffer allocates a zero-initialized buffer of n elements.
func NewBuffer[T DType](n int) *Buffer[T] {
	return &Buffer[T]{data: make([]T, n)}
}

// BufferOf copies data into a new buffer.
func BufferOf[T DType](data []T) *Buffer[T] {
	buf := NewBuffer[T](len(data))
	copy(buf.data, data)
	return buf
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// View returns a view of n elements starting at offset.
func (b *Buffer[T]) View(offset, n int) (View[T], error) {
	if offset < 0 || n < 0 || offset+n > len(b.data) {
		return View[T]{}, tensorErrorf(opSlice,
			fmt.Errorf("%w: range [%d, %d) outside buffer of %d", ErrIndexOutOfRange, offset, offset+n, len(b.data)))
	}
	return View[T]{buf: b, offset: offset, length: n}, nil
}

// Whole returns a view over the entire buffer.
func (b *Buffer[T]) Whole() View[T] {
	return View[T]{buf: b, offset: 0, length: len(b.data)}
}

// Acquire leases [offset, offset+n) for exclusive mutation.
// It fails with ErrOverlappingView while another live lease overlaps the range.
func (b *Buffer[T]) Acquire(offset, n int) (*MutView[T], error) {
	v, err := b.View(offset, n)
	if err != nil {
		return nil, tensorErrorf(opAcquire, err)
	}
	want := span{lo: offset, hi: offset + n}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, held := range b.leases {
		if want.overlaps(held) {
			return nil, tensorErrorf(opAcquire,
				fmt.Errorf("%w: [%d, %d) overlaps [%d, %d)", ErrOverlappingView, want.lo, want.hi, held.lo, held.hi))
		}
	}
	if b.leases == nil {
		b.leases = make(map[uint64]span)
	}
	b.nextLease++
	b.leases[b.nextLease] = want
	return &MutView[T]{View: v, id: b.nextLease}, nil
}

// Leases returns the number of live leases.
func (b *Buffer[T]) Leases() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.leases)
}

func (b *Buffer[T]) release(id uint64) {
	b.mu.Lock()
	delete(b.leases, id)
	b.mu.Unlock()
}

// View is a non-owning, bounds-checked, read-only window into a Buffer.
// Constructing a View never copies. Element writes go through a MutView;
// Data exposes the raw slice for kernels that write into storage they
// allocated themselves.
type View[T DType] struct {
	buf    *Buffer[T]
	offset int
	length int
}

// Len returns the number of elements visible through the view.
func (v View[T]) Len() int { return v.length }

// Offset returns the view's start position inside its buffer.
func (v View[T]) Offset() int { return v.offset }

// Buffer returns the underlying buffer.
func (v View[T]) Buffer() *Buffer[T] { return v.buf }

// Get returns element i of the view.
func (v View[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, fmt.Errorf("%w: %d outside view of length %d", ErrIndexOutOfRange, i, v.length)
	}
	return v.buf.data[v.offset+i], nil
}

// Slice returns the sub-view [start, start+n) over the same buffer.
func (v View[T]) Slice(start, n int) (View[T], error) {
	if start < 0 || n < 0 || start+n > v.length {
		return View[T]{}, tensorErrorf(opSlice,
			fmt.Errorf("%w: [%d, %d) outside view of length %d", ErrIndexOutOfRange, start, start+n, v.length))
	}
	return View[T]{buf: v.buf, offset: v.offset + start, length: n}, nil
}

// Data returns the view's elements as a slice aliasing the buffer.
// The slice capacity is clipped so appends never spill past the view.
func (v View[T]) Data() []T {
	end := v.offset + v.length
	return v.buf.data[v.offset:end:end]
}

// Copy materializes the view's content into a new owned buffer.
func (v View[T]) Copy() *Buffer[T] {
	return BufferOf(v.Data())
}

// Map returns a new owned buffer with f applied to every element.
func (v View[T]) Map(f func(T) T) *Buffer[T] {
	out := NewBuffer[T](v.length)
	for i, x := range v.Data() {
		out.data[i] = f(x)
	}
	return out
}

// Overlaps reports whether both views reference a common buffer element.
func (v View[T]) Overlaps(o View[T]) bool {
	if v.buf != o.buf {
		return false
	}
	return span{v.offset, v.offset + v.length}.overlaps(span{o.offset, o.offset + o.length})
}

// MutView is a leased View. Release it once the writer is done.
type MutView[T DType] struct {
	View[T]
	id       uint64
	released bool
}

// Set assigns element i of the leased range.
func (m *MutView[T]) Set(i int, x T) error {
	if m.released {
		return fmt.Errorf("%w: lease already released", ErrOverlappingView)
	}
	if i < 0 || i >= m.length {
		return fmt.Errorf("%w: %d outside view of length %d", ErrIndexOutOfRange, i, m.length)
	}
	m.buf.data[m.offset+i] = x
	return nil
}

// Release ends the lease. Calling it more than once is a no-op.
func (m *MutView[T]) Release() {
	if m.released {
		return
	}
	m.released = true
	m.buf.release(m.id)
}
