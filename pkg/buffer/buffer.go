// Package buffer provides the growable byte container used for every register
// value and for the CSVF output stream.
//
// A Buffer keeps its capacity across Reset calls so a converter can reuse the
// same storage for every statement of a file without reallocating.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCapacity is the default ceiling on the capacity of a Buffer. Growth past
// the ceiling fails with ErrAllocation instead of panicking inside make.
const MaxCapacity = 64 << 20

// ErrAllocation reports that a buffer could not grow to the requested size.
var ErrAllocation = errors.New("buffer: allocation failed")

// Buffer is an owned, growable block of bytes. The zero value is an empty
// buffer with the default capacity ceiling.
type Buffer struct {
	data  []byte
	limit int
}

// New creates an empty buffer with room for capacity bytes.
func New(capacity int) (*Buffer, error) {
	return NewWithLimit(capacity, MaxCapacity)
}

// NewWithLimit creates an empty buffer whose capacity may never exceed limit.
func NewWithLimit(capacity, limit int) (*Buffer, error) {
	if limit <= 0 {
		limit = MaxCapacity
	}
	if capacity < 0 || capacity > limit {
		return nil, fmt.Errorf("%w: capacity %d outside [0, %d]", ErrAllocation, capacity, limit)
	}
	return &Buffer{data: make([]byte, 0, capacity), limit: limit}, nil
}

// Len returns the logical length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the number of bytes the buffer can hold without reallocating.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Limit returns the capacity ceiling.
func (b *Buffer) Limit() int {
	if b.limit <= 0 {
		return MaxCapacity
	}
	return b.limit
}

// Bytes returns the buffer contents. The slice aliases the buffer storage and
// is only valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset sets the length to zero and keeps the capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Grow ensures room for n bytes in total without changing the contents.
func (b *Buffer) Grow(n int) error {
	if n <= cap(b.data) {
		return nil
	}
	if n > b.Limit() {
		return fmt.Errorf("%w: need %d bytes, limit is %d", ErrAllocation, n, b.Limit())
	}

	newCap := cap(b.data) * 2
	if newCap < n {
		newCap = n
	}
	if newCap > b.Limit() {
		newCap = b.Limit()
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
	return nil
}

// Append copies p onto the end of the buffer.
func (b *Buffer) Append(p ...byte) error {
	if err := b.Grow(len(b.data) + len(p)); err != nil {
		return err
	}
	b.data = append(b.data, p...)
	return nil
}

// ZeroResize sets the length to n and fills every byte with zero.
func (b *Buffer) ZeroResize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrAllocation, n)
	}
	if err := b.Grow(n); err != nil {
		return err
	}
	b.data = b.data[:n]
	clear(b.data)
	return nil
}

// Set replaces the buffer contents with a copy of p. It is safe for p to alias
// the buffer's own storage.
func (b *Buffer) Set(p []byte) error {
	if err := b.Grow(len(p)); err != nil {
		return err
	}
	b.data = b.data[:len(p)]
	copy(b.data, p)
	return nil
}

// Clone returns an independent copy with the same contents and ceiling.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		data:  append(make([]byte, 0, cap(b.data)), b.data...),
		limit: b.limit,
	}
}

// String renders the contents as two uppercase hex digits per byte.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(2 * len(b.data))
	for _, v := range b.data {
		fmt.Fprintf(&sb, "%02X", v)
	}
	return sb.String()
}
