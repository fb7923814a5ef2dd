package svf

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// passthroughCommands are SVF statements that do not touch register state.
// The converter recognises and skips them.
var passthroughCommands = map[string]struct{}{
	"TRST":      {},
	"STATE":     {},
	"RUNTEST":   {},
	"FREQUENCY": {},
	"ENDIR":     {},
	"ENDDR":     {},
}

// Stats summarises a conversion run.
type Stats struct {
	Statements int // statements read
	Registers  int // register statements applied
	Skipped    int // statements recognised or tolerated but not applied
}

// Converter feeds every statement of an SVF file through a Context.
type Converter struct {
	Context *Context
	Emitter Emitter
	Logger  zerolog.Logger

	// Lenient skips unknown commands with a warning instead of failing.
	Lenient bool

	// OnRegister, when set, is called after each applied register statement.
	OnRegister func(st Statement, reg Register)
}

// NewConverter returns a converter that applies statements to ctx and hands
// each update to emit, which may be nil.
func NewConverter(ctx *Context, emit Emitter) *Converter {
	return &Converter{
		Context: ctx,
		Emitter: emit,
		Logger:  zerolog.Nop(),
	}
}

// Run converts every statement read from r. The first failing statement
// stops the run with an *ErrLine error.
func (c *Converter) Run(r io.Reader) (Stats, error) {
	var stats Stats
	reader := NewReader(r)

	for {
		st, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("svf: read: %w", err)
		}
		stats.Statements++

		applied, err := c.Apply(st)
		if err != nil {
			return stats, err
		}
		if applied {
			stats.Registers++
		} else {
			stats.Skipped++
		}
	}

	c.Logger.Debug().
		Int("statements", stats.Statements).
		Int("registers", stats.Registers).
		Int("skipped", stats.Skipped).
		Msg("conversion complete")
	return stats, nil
}

// Apply processes a single statement and reports whether it updated a
// register.
func (c *Converter) Apply(st Statement) (bool, error) {
	command := st.Command()

	if _, ok := LookupRegister(command); ok {
		reg, err := c.Context.ParseLine(st.Text, c.Emitter)
		if err != nil {
			return false, &ErrLine{LineNo: st.LineNo, Err: err}
		}
		c.Logger.Trace().
			Int("line", st.LineNo).
			Stringer("register", reg).
			Int("bits", c.Context.Store(reg).NumBits).
			Msg("register updated")
		if c.OnRegister != nil {
			c.OnRegister(st, reg)
		}
		return true, nil
	}

	if _, ok := passthroughCommands[strings.ToUpper(command)]; ok {
		c.Logger.Debug().Int("line", st.LineNo).Str("command", command).Msg("skipping statement")
		return false, nil
	}

	if c.Lenient {
		c.Logger.Warn().Int("line", st.LineNo).Str("command", command).Msg("skipping unknown command")
		return false, nil
	}
	return false, &ErrLine{LineNo: st.LineNo, Err: fmt.Errorf("%w: %q", ErrUnknownCommand, command)}
}
