package svf

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// statementLexer tokenizes a single SVF statement. Values inside parentheses
// are lexed in their own state so that digits and letters are not split into
// Integer and Ident tokens.
var statementLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `(!|//)[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Integer", Pattern: `[0-9]+`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "LParen", Pattern: `\(`, Action: lexer.Push("Value")},
	},
	"Value": {
		{Name: "ValueSpace", Pattern: `[ \t\r\n]+`},
		{Name: "RParen", Pattern: `\)`, Action: lexer.Pop()},
		{Name: "Hex", Pattern: `[^()\s]+`},
	},
})

// statement is one register statement:
//
//	REGTOKEN NUMBITS [ KEYWORD ( HEX ) ]... [;]
type statement struct {
	Command string   `@Ident`
	Bits    string   `( @Integer`
	Fields  []*field `  @@* )?`
	End     bool     `@Semicolon?`
}

// field is a KEYWORD (HEX) pair. Whitespace inside the parentheses is
// dropped, so a value may be split across physical lines.
type field struct {
	Pos   lexer.Position
	Name  string `@Ident`
	Value string `LParen @Hex* RParen`
}

var statementParser = participle.MustBuild[statement](
	participle.Lexer(statementLexer),
	participle.Elide("Comment", "Whitespace", "ValueSpace"),
	participle.UseLookahead(2),
)
