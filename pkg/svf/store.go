package svf

import (
	"fmt"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/headtail"
	"github.com/OpenTraceLab/svf2csvf/pkg/hexcodec"
)

// BitStore is the state of one register: its width and the values to shift
// in, expect out and compare. Every value buffer holds ByteLen(NumBits) bytes
// once the register has been written.
type BitStore struct {
	NumBits int
	TDI     *buffer.Buffer
	TDO     *buffer.Buffer
	Mask    *buffer.Buffer
}

func newBitStore(capacity, limit int) (BitStore, error) {
	var s BitStore
	for _, dst := range []**buffer.Buffer{&s.TDI, &s.TDO, &s.Mask} {
		buf, err := buffer.NewWithLimit(capacity, limit)
		if err != nil {
			return BitStore{}, err
		}
		*dst = buf
	}
	return s, nil
}

// Buffer returns the buffer backing field f.
func (s *BitStore) Buffer(f Field) *buffer.Buffer {
	switch f {
	case FieldTDI:
		return s.TDI
	case FieldTDO:
		return s.TDO
	case FieldMask:
		return s.Mask
	}
	panic(fmt.Sprintf("svf: invalid field %d", f))
}

// Value returns field f as a bit value of width NumBits, ready for
// headtail.Merge.
func (s *BitStore) Value(f Field) headtail.Value {
	return headtail.Value{Data: s.Buffer(f).Bytes(), Bits: s.NumBits}
}

// String renders the store as "numBits, {TDI}, {TDO}, {MASK}".
func (s *BitStore) String() string {
	return fmt.Sprintf("%d, {%s}, {%s}, {%s}", s.NumBits,
		hexcodec.Render(s.TDI.Bytes()),
		hexcodec.Render(s.TDO.Bytes()),
		hexcodec.Render(s.Mask.Bytes()))
}

// reserve makes room for n bytes in every value buffer.
func (s *BitStore) reserve(n int) error {
	for f := Field(0); f < numFields; f++ {
		if err := s.Buffer(f).Grow(n); err != nil {
			return err
		}
	}
	return nil
}
