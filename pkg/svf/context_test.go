package svf

import (
	"testing"

	"github.com/OpenTraceLab/svf2csvf/pkg/buffer"
	"github.com/OpenTraceLab/svf2csvf/pkg/hexcodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	ctx, err := NewContext(Options{})
	require.NoError(t, err)
	return ctx
}

func mustParse(t *testing.T, ctx *Context, line string) Register {
	t.Helper()
	reg, err := ctx.ParseLine(line, nil)
	require.NoError(t, err, line)
	return reg
}

func TestParseRetainsAndResets(t *testing.T) {
	ctx := newTestContext(t)

	assert.Equal(t,
		"0, {}, {}, {}, 0, {}, {}, {}, 0, {}, {}, {}, 0, {}, {}, {}, 0, {}, {}, {}, 0, {}, {}, {}",
		ctx.String())

	mustParse(t, ctx, "HDR 8 TDI (aa)")
	assert.Equal(t,
		"8, {AA}, {00}, {00}, "+ // HDR
			"0, {}, {}, {}, "+ // HIR
			"0, {}, {}, {}, "+ // SDR
			"0, {}, {}, {}, "+ // SIR
			"0, {}, {}, {}, "+ // TDR
			"0, {}, {}, {}", // TIR
		ctx.String())

	// Same width: TDI is retained.
	mustParse(t, ctx, "HDR 8 MASK (55)")
	assert.Equal(t,
		"8, {AA}, {00}, {55}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}",
		ctx.String())

	// New width: TDO and MASK fall back to zero.
	mustParse(t, ctx, "HDR 6 TDI (3A)")
	assert.Equal(t,
		"6, {3A}, {00}, {00}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}, "+
			"0, {}, {}, {}",
		ctx.String())
}

func TestParseSelectsRegister(t *testing.T) {
	cases := []struct {
		line string
		reg  Register
	}{
		{"HDR 8 TDI (01)", DataHeader},
		{"HIR 8 TDI (02)", InsnHeader},
		{"SDR 8 TDI (03)", DataBody},
		{"SIR 8 TDI (04)", InsnBody},
		{"TDR 8 TDI (05)", DataTrailer},
		{"TIR 8 TDI (06)", InsnTrailer},
	}

	ctx := newTestContext(t)
	for i, tc := range cases {
		reg := mustParse(t, ctx, tc.line)
		assert.Equal(t, tc.reg, reg, tc.line)
		assert.Equal(t, []byte{byte(i + 1)}, ctx.Store(tc.reg).TDI.Bytes(), tc.line)
	}

	// Registers are independent of each other.
	for i, reg := range Registers {
		s := ctx.Store(reg)
		assert.Equal(t, 8, s.NumBits)
		assert.Equal(t, hexcodec.Render([]byte{byte(i + 1)}), hexcodec.Render(s.TDI.Bytes()))
	}
}

func TestParseAllFields(t *testing.T) {
	ctx := newTestContext(t)
	mustParse(t, ctx, "SDR 32 TDI (F1C2E093) TDO (00000000) MASK (FFFFFFFF);")

	s := ctx.Store(DataBody)
	assert.Equal(t, 32, s.NumBits)
	assert.Equal(t, "F1C2E093", s.TDI.String())
	assert.Equal(t, "00000000", s.TDO.String())
	assert.Equal(t, "FFFFFFFF", s.Mask.String())

	// Field order is free.
	mustParse(t, ctx, "SDR 32 MASK (0000FFFF) TDI (12345678)")
	assert.Equal(t, "32, {12345678}, {00000000}, {0000FFFF}", s.String())
}

func TestParseOddWidths(t *testing.T) {
	ctx := newTestContext(t)
	mustParse(t, ctx, "SIR 10 TDI (03FF) TDO (0001)")
	assert.Equal(t, "10, {03FF}, {0001}, {0000}", ctx.Store(InsnBody).String())

	mustParse(t, ctx, "SIR 0")
	assert.Equal(t, "0, {}, {}, {}", ctx.Store(InsnBody).String())
}

func TestParseValueWhitespace(t *testing.T) {
	ctx := newTestContext(t)
	mustParse(t, ctx, "SDR 32 TDI ( DEAD\n BEEF ) ! trailing comment")
	assert.Equal(t, "DEADBEEF", ctx.Store(DataBody).TDI.String())
}

func TestParseIdempotent(t *testing.T) {
	once := newTestContext(t)
	twice := newTestContext(t)

	line := "TIR 12 TDI (0ABC) MASK (0FFF)"
	mustParse(t, once, line)
	mustParse(t, twice, line)
	mustParse(t, twice, line)

	assert.Equal(t, once.String(), twice.String())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"unknown command", "RUNTEST 100 TCK", ErrUnknownCommand},
		{"lower case command", "hdr 8 TDI (aa)", ErrUnknownCommand},
		{"empty", "   ", ErrSyntax},
		{"missing bits", "SDR TDI (aa)", ErrSyntax},
		{"bits only keyword", "SDR;", ErrSyntax},
		{"missing parens", "SDR 8 TDI aa", ErrSyntax},
		{"unclosed paren", "SDR 8 TDI (aa", ErrSyntax},
		{"trailing garbage", "SDR 8 TDI (aa); SIR", ErrSyntax},
		{"unknown field", "SDR 8 SMASK (ff)", ErrUnknownField},
		{"duplicate field", "SDR 8 TDI (aa) TDI (bb)", ErrDuplicateField},
		{"odd hex", "SDR 8 TDI (a)", hexcodec.ErrMalformedHex},
		{"bad hex", "SDR 8 TDI (zz)", hexcodec.ErrMalformedHex},
		{"value too long", "SDR 8 TDI (aabb)", ErrMalformedValue},
		{"value too short", "SDR 16 TDI (aa)", ErrMalformedValue},
		{"too wide", "SDR 99999999999 TDI (aa)", buffer.ErrAllocation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newTestContext(t)
			_, err := ctx.ParseLine(tc.line, nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseFailureLeavesStoreUntouched(t *testing.T) {
	ctx := newTestContext(t)
	mustParse(t, ctx, "HDR 8 TDI (aa) TDO (bb) MASK (cc)")
	before := ctx.String()

	// Width change with a bad trailing field must not reset the store.
	_, err := ctx.ParseLine("HDR 16 TDI (1234) MASK (12)", nil)
	require.ErrorIs(t, err, ErrMalformedValue)
	assert.Equal(t, before, ctx.String())

	_, err = ctx.ParseLine("HDR 8 TDI (11) TDO (xx)", nil)
	require.ErrorIs(t, err, hexcodec.ErrMalformedHex)
	assert.Equal(t, before, ctx.String())
}

func TestParseBufferLimit(t *testing.T) {
	ctx, err := NewContext(Options{InitialCapacity: 1, MaxBufferBytes: 2})
	require.NoError(t, err)

	mustParse(t, ctx, "SDR 16 TDI (ABCD)")
	_, err = ctx.ParseLine("SDR 17 TDI (01ABCD)", nil)
	require.ErrorIs(t, err, buffer.ErrAllocation)
	assert.Equal(t, "16, {ABCD}, {0000}, {0000}", ctx.Store(DataBody).String())
}

func TestParseEmitter(t *testing.T) {
	ctx := newTestContext(t)

	var seen []Register
	emit := EmitterFunc(func(c *Context, reg Register) error {
		assert.Same(t, ctx, c)
		seen = append(seen, reg)
		return nil
	})

	_, err := ctx.ParseLine("HIR 4 TDI (0F)", emit)
	require.NoError(t, err)
	_, err = ctx.ParseLine("SIR 4 TDI (001F)", emit)
	require.Error(t, err)
	_, err = ctx.ParseLine("SIR 4 TDI (01)", emit)
	require.NoError(t, err)

	assert.Equal(t, []Register{InsnHeader, InsnBody}, seen)
}

func TestContextReset(t *testing.T) {
	ctx := newTestContext(t)
	mustParse(t, ctx, "SDR 8 TDI (aa)")
	mustParse(t, ctx, "TIR 4 TDO (01)")
	ctx.Reset()
	assert.Equal(t, newTestContext(t).String(), ctx.String())
}
