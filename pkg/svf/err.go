package svf

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand reports a statement keyword that is not handled.
	ErrUnknownCommand = errors.New("svf: unknown command")
	// ErrUnknownField reports a keyword other than TDI, TDO or MASK.
	ErrUnknownField = errors.New("svf: unknown field")
	// ErrDuplicateField reports a field keyword given twice in one statement.
	ErrDuplicateField = errors.New("svf: duplicate field")
	// ErrMalformedValue reports a value whose byte length does not match the
	// register width.
	ErrMalformedValue = errors.New("svf: malformed value")
	// ErrSyntax reports a statement that does not follow the register grammar.
	ErrSyntax = errors.New("svf: syntax error")
)

// ErrLine indicates the input line on which a statement failed.
type ErrLine struct {
	LineNo int
	Err    error
}

func (err *ErrLine) Error() string {
	return fmt.Sprintf("line %d: %v", err.LineNo, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
