package svf

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) []Statement {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var out []Statement
	for {
		st, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, st)
	}
}

func TestReaderSplitsStatements(t *testing.T) {
	input := `! Header comment
// another comment
TRST OFF;
ENDIR IDLE; ENDDR IDLE;
HIR 0 ;
SDR 64 TDI (00000000
            00000000) ! inline
       TDO (FFFFFFFF
            FFFFFFFF);

SIR 8 TDI (aa)`

	got := readAll(t, input)
	want := []Statement{
		{LineNo: 3, Text: "TRST OFF;"},
		{LineNo: 4, Text: "ENDIR IDLE;"},
		{LineNo: 4, Text: "ENDDR IDLE;"},
		{LineNo: 5, Text: "HIR 0 ;"},
		{LineNo: 6, Text: "SDR 64 TDI (00000000 00000000) TDO (FFFFFFFF FFFFFFFF);"},
		{LineNo: 11, Text: "SIR 8 TDI (aa)"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "SDR", got[4].Command())
}

func TestReaderEmptyInput(t *testing.T) {
	assert.Empty(t, readAll(t, ""))
	assert.Empty(t, readAll(t, "! only a comment\n;\n\n"))
}

func TestReaderStatementsParse(t *testing.T) {
	ctx := newTestContext(t)
	for _, st := range readAll(t, "SDR 64 TDI (00000000\n00000001)\nTDO (FFFFFFFF\nFFFFFFFF);") {
		_, err := ctx.ParseLine(st.Text, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, "0000000000000001", ctx.Store(DataBody).TDI.String())
}
