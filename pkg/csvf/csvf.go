// Package csvf encodes scans for the embedded JTAG player.
//
// The stream is a sequence of records, each an opcode byte followed by its
// operands. Opcode values follow XSVF. Multi-byte lengths are big-endian and
// scan data is packed by headtail.Merge, most significant byte first.
package csvf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/headtail"
	"github.com/OpenTraceLab/svf2csvf/pkg/svf"
)

// Record opcodes
const (
	OpComplete = 0x00 // end of stream
	OpTDOMask  = 0x01 // [mask bytes] mask for subsequent data scans
	OpSIR      = 0x02 // [bits:1][tdi bytes] instruction scan
	OpSDR      = 0x03 // [tdi bytes] data scan, TDO ignored
	OpSDRSize  = 0x08 // [bits:4] width of subsequent data scans
	OpSDRTDO   = 0x09 // [tdi bytes][tdo bytes] data scan, TDO compared under mask
	OpSIR2     = 0x10 // [bits:2][tdi bytes] instruction scan wider than 255 bits
)

// MaxSIRBits is the widest instruction scan the stream can describe.
const MaxSIRBits = 0xFFFF

// ErrScanTooLong reports an instruction scan wider than MaxSIRBits.
var ErrScanTooLong = errors.New("csvf: scan too long")

// Stats counts what a Writer has emitted.
type Stats struct {
	InsnScans int
	DataScans int
	Records   int
}

// Writer appends records to an output buffer. It implements svf.Emitter:
// header and trailer updates only change state, while every SIR or SDR
// statement emits the full scan with header and trailer merged around the
// body.
type Writer struct {
	out *buffer.Buffer

	tdi  *buffer.Buffer
	tdo  *buffer.Buffer
	mask *buffer.Buffer

	sdrBits  int
	lastMask *buffer.Buffer
	maskSet  bool

	stats Stats
}

// NewWriter returns a Writer appending to out.
func NewWriter(out *buffer.Buffer) *Writer {
	limit := out.Limit()
	newScratch := func() *buffer.Buffer {
		b, _ := buffer.NewWithLimit(0, limit)
		return b
	}
	return &Writer{
		out:      out,
		tdi:      newScratch(),
		tdo:      newScratch(),
		mask:     newScratch(),
		lastMask: newScratch(),
		sdrBits:  -1,
	}
}

// Stats returns counters for the records written so far.
func (w *Writer) Stats() Stats {
	return w.stats
}

// Emit implements svf.Emitter.
func (w *Writer) Emit(ctx *svf.Context, reg svf.Register) error {
	if reg.Segment() != svf.SegmentBody {
		return nil
	}

	region := reg.Region()
	head := ctx.Store(svf.RegisterFor(region, svf.SegmentHeader))
	body := ctx.Store(reg)
	tail := ctx.Store(svf.RegisterFor(region, svf.SegmentTrailer))

	var bits int
	for _, m := range []struct {
		field svf.Field
		dst   *buffer.Buffer
	}{
		{svf.FieldTDI, w.tdi},
		{svf.FieldTDO, w.tdo},
		{svf.FieldMask, w.mask},
	} {
		n, err := headtail.Merge(m.dst, tail.Value(m.field), body.Value(m.field), head.Value(m.field))
		if err != nil {
			return fmt.Errorf("csvf: merge %s %s: %w", reg, m.field, err)
		}
		bits = n
	}
	if bits == 0 {
		return nil
	}

	if region == svf.RegionIR {
		return w.writeSIR(bits)
	}
	return w.writeSDR(bits)
}

// Close terminates the stream.
func (w *Writer) Close() error {
	return w.record(OpComplete)
}

func (w *Writer) writeSIR(bits int) error {
	if bits > MaxSIRBits {
		return fmt.Errorf("%w: %d bits", ErrScanTooLong, bits)
	}
	var err error
	if bits <= 0xFF {
		err = w.record(OpSIR, byte(bits))
	} else {
		err = w.record(OpSIR2, byte(bits>>8), byte(bits))
	}
	if err == nil {
		err = w.out.Append(w.tdi.Bytes()...)
	}
	if err != nil {
		return err
	}
	w.stats.InsnScans++
	return nil
}

func (w *Writer) writeSDR(bits int) error {
	if bits != w.sdrBits {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(bits))
		if err := w.record(OpSDRSize, size[:]...); err != nil {
			return err
		}
		w.sdrBits = bits
		w.maskSet = false
	}

	if isZero(w.mask.Bytes()) {
		if err := w.record(OpSDR, w.tdi.Bytes()...); err != nil {
			return err
		}
		w.stats.DataScans++
		return nil
	}

	if !w.maskSet || !bytes.Equal(w.lastMask.Bytes(), w.mask.Bytes()) {
		if err := w.record(OpTDOMask, w.mask.Bytes()...); err != nil {
			return err
		}
		if err := w.lastMask.Set(w.mask.Bytes()); err != nil {
			return err
		}
		w.maskSet = true
	}

	if err := w.record(OpSDRTDO, w.tdi.Bytes()...); err != nil {
		return err
	}
	if err := w.out.Append(w.tdo.Bytes()...); err != nil {
		return err
	}
	w.stats.DataScans++
	return nil
}

func (w *Writer) record(op byte, operands ...byte) error {
	if err := w.out.Append(op); err != nil {
		return err
	}
	if err := w.out.Append(operands...); err != nil {
		return err
	}
	w.stats.Records++
	return nil
}

func isZero(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}
