package svf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/headtail"
	"github.com/OpenTraceLab/svf2csvf/pkg/hexcodec"
)

// DefaultInitialCapacity is the byte capacity each register buffer starts
// with when Options leaves it unset.
const DefaultInitialCapacity = 64

// Options tunes the buffers owned by a Context.
type Options struct {
	// InitialCapacity is the starting capacity of every value buffer.
	InitialCapacity int
	// MaxBufferBytes caps every value buffer; zero means buffer.MaxCapacity.
	MaxBufferBytes int
}

// Emitter receives the context after every successful register update. It is
// the hand-off point to whatever encodes scans for the player.
type Emitter interface {
	Emit(ctx *Context, reg Register) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx *Context, reg Register) error

func (f EmitterFunc) Emit(ctx *Context, reg Register) error {
	return f(ctx, reg)
}

// Context holds the six register stores of one conversion run. A Context is
// not safe for concurrent use; concurrent conversions use separate contexts.
type Context struct {
	stores  [numRegisters]BitStore
	scratch [numFields]*buffer.Buffer
	limit   int
}

// NewContext creates a context with all six registers zeroed.
func NewContext(opts Options) (*Context, error) {
	capacity := opts.InitialCapacity
	if capacity <= 0 {
		capacity = DefaultInitialCapacity
	}
	limit := opts.MaxBufferBytes
	if limit <= 0 {
		limit = buffer.MaxCapacity
	}
	if capacity > limit {
		capacity = limit
	}

	c := &Context{limit: limit}
	for i := range c.stores {
		s, err := newBitStore(capacity, limit)
		if err != nil {
			return nil, err
		}
		c.stores[i] = s
	}
	for i := range c.scratch {
		buf, err := buffer.NewWithLimit(capacity, limit)
		if err != nil {
			return nil, err
		}
		c.scratch[i] = buf
	}
	return c, nil
}

// Store returns the state of reg. The returned store is owned by the context
// and must not be modified by the caller.
func (c *Context) Store(reg Register) *BitStore {
	return &c.stores[reg]
}

// Reset returns every register to width zero with empty values, keeping the
// buffer capacity.
func (c *Context) Reset() {
	for i := range c.stores {
		s := &c.stores[i]
		s.NumBits = 0
		s.TDI.Reset()
		s.TDO.Reset()
		s.Mask.Reset()
	}
}

// ParseLine applies one register statement to the context and, when emit is
// non-nil, hands the updated context to it. It returns the register the
// statement named.
//
// The statement is fully decoded and validated before anything is committed:
// on error the named register is left exactly as it was.
func (c *Context) ParseLine(line string, emit Emitter) (Register, error) {
	reg, err := c.apply(line)
	if err != nil {
		return reg, err
	}
	if emit != nil {
		if err := emit.Emit(c, reg); err != nil {
			return reg, fmt.Errorf("%s: emit: %w", reg, err)
		}
	}
	return reg, nil
}

func (c *Context) apply(line string) (Register, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return 0, fmt.Errorf("%w: empty statement", ErrSyntax)
	}
	command := strings.TrimSuffix(words[0], ";")
	reg, ok := LookupRegister(command)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	stmt, err := statementParser.ParseString("", line)
	if err != nil {
		return reg, fmt.Errorf("%s: %w: %v", reg, ErrSyntax, err)
	}
	if stmt.Bits == "" {
		return reg, fmt.Errorf("%s: %w: missing bit count", reg, ErrSyntax)
	}
	numBits, err := strconv.Atoi(stmt.Bits)
	if err != nil {
		return reg, fmt.Errorf("%s: %w: bit count %q: %v", reg, ErrSyntax, stmt.Bits, err)
	}
	if numBits > 8*c.limit {
		return reg, fmt.Errorf("%s: %w: %d bits exceeds %d byte limit", reg, buffer.ErrAllocation, numBits, c.limit)
	}
	numBytes := headtail.ByteLen(numBits)

	var present [numFields]bool
	for _, fld := range stmt.Fields {
		f, ok := lookupField(fld.Name)
		if !ok {
			return reg, fmt.Errorf("%s: %w: %q at column %d", reg, ErrUnknownField, fld.Name, fld.Pos.Column)
		}
		if present[f] {
			return reg, fmt.Errorf("%s: %w: %s", reg, ErrDuplicateField, f)
		}
		present[f] = true

		if err := hexcodec.Decode(c.scratch[f], fld.Value); err != nil {
			return reg, fmt.Errorf("%s %s: %w", reg, f, err)
		}
		if got := c.scratch[f].Len(); got != numBytes {
			return reg, fmt.Errorf("%s %s: %w: %d bytes for %d bits, want %d",
				reg, f, ErrMalformedValue, got, numBits, numBytes)
		}
	}

	store := &c.stores[reg]
	if err := store.reserve(numBytes); err != nil {
		return reg, fmt.Errorf("%s: %w", reg, err)
	}

	// Nothing below can fail: capacity is reserved.
	if numBits != store.NumBits {
		for f := Field(0); f < numFields; f++ {
			_ = store.Buffer(f).ZeroResize(numBytes)
		}
		store.NumBits = numBits
	}
	for f := Field(0); f < numFields; f++ {
		if present[f] {
			_ = store.Buffer(f).Set(c.scratch[f].Bytes())
		}
	}
	return reg, nil
}

// String renders all six registers in the order HDR, HIR, SDR, SIR, TDR, TIR.
func (c *Context) String() string {
	parts := make([]string, 0, numRegisters)
	for _, reg := range Registers {
		parts = append(parts, c.stores[reg].String())
	}
	return strings.Join(parts, ", ")
}
