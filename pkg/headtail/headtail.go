// Package headtail packs bit-width-tagged values into one contiguous scan
// vector.
//
// A scan through a chain of devices is the target device's value surrounded
// by the bits belonging to the other devices: the header is shifted first and
// lands in the least significant bits, the trailer is shifted last and lands
// in the most significant bits.
package headtail

import (
	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
)

// Value is a big-endian byte string of which only the low Bits bits are
// meaningful. Bytes beyond the data (when Bits exceeds 8*len(Data)) read as
// zero.
type Value struct {
	Data []byte
	Bits int
}

// ByteLen returns the number of bytes needed to hold bits bits.
func ByteLen(bits int) int {
	return (bits + 7) / 8
}

// Merge writes tail, line and head into dst as one bit string, most
// significant first, and returns the total number of bits. The result is
// right-aligned: when the total is not a multiple of eight the padding zeros
// occupy the top of the first byte. Inputs may alias dst.
func Merge(dst *buffer.Buffer, tail, line, head Value) (int, error) {
	if tail.Bits < 0 {
		tail.Bits = 0
	}
	if line.Bits < 0 {
		line.Bits = 0
	}
	if head.Bits < 0 {
		head.Bits = 0
	}
	total := tail.Bits + line.Bits + head.Bits
	n := ByteLen(total)
	if n > dst.Limit() {
		return 0, buffer.ErrAllocation
	}

	out := make([]byte, n)
	offset := 0
	for _, v := range []Value{head, line, tail} {
		shiftIn(out, v, offset)
		offset += v.Bits
	}

	if err := dst.Set(out); err != nil {
		return 0, err
	}
	return total, nil
}

// shiftIn ORs the low v.Bits bits of v into out, starting offset bits above
// the least significant bit of out. Source bytes are consumed from the least
// significant end, each one landing across at most two output bytes.
func shiftIn(out []byte, v Value, offset int) {
	nbytes := ByteLen(v.Bits)
	shift := uint(offset % 8)
	pos := len(out) - 1 - offset/8

	for i := 0; i < nbytes; i++ {
		src := len(v.Data) - 1 - i
		if src < 0 {
			// Remaining high bits are zero.
			return
		}
		b := v.Data[src]
		if rem := v.Bits - 8*i; rem < 8 {
			b &= byte(1)<<uint(rem) - 1
		}

		at := pos - i
		out[at] |= b << shift
		if shift != 0 && at > 0 {
			out[at-1] |= b >> (8 - shift)
		}
	}
}
