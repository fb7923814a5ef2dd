package svf

import (
	"bufio"
	"io"
	"strings"
)

// MaxLineBytes bounds a single physical input line.
const MaxLineBytes = 16 << 20

// Statement is one ';'-terminated SVF statement with comments removed and
// physical lines joined by a single space.
type Statement struct {
	LineNo int // line on which the statement starts
	Text   string
}

// Command returns the statement keyword.
func (s Statement) Command() string {
	words := strings.Fields(s.Text)
	if len(words) == 0 {
		return ""
	}
	return strings.TrimSuffix(words[0], ";")
}

// Reader splits an SVF file into statements.
type Reader struct {
	sc      *bufio.Scanner
	lineNo  int
	pending strings.Builder
	start   int
	queue   []Statement
	err     error
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return &Reader{sc: sc}
}

// Next returns the next statement, or io.EOF once the input is exhausted. A
// final statement missing its ';' is still returned.
func (r *Reader) Next() (Statement, error) {
	for len(r.queue) == 0 {
		if r.err != nil {
			return Statement{}, r.err
		}
		if !r.sc.Scan() {
			r.err = r.sc.Err()
			if r.err == nil {
				r.err = io.EOF
			}
			r.flush()
			continue
		}
		r.lineNo++
		r.consume(stripComment(r.sc.Text()))
	}

	st := r.queue[0]
	r.queue = r.queue[1:]
	return st, nil
}

func (r *Reader) consume(line string) {
	for {
		idx := strings.IndexByte(line, ';')
		if idx < 0 {
			r.add(line)
			return
		}
		r.add(line[:idx+1])
		r.flush()
		line = line[idx+1:]
	}
}

func (r *Reader) add(part string) {
	part = strings.TrimSpace(part)
	if part == "" {
		return
	}
	if r.pending.Len() == 0 {
		r.start = r.lineNo
	} else {
		r.pending.WriteByte(' ')
	}
	r.pending.WriteString(part)
}

func (r *Reader) flush() {
	text := strings.TrimSpace(r.pending.String())
	r.pending.Reset()
	if text == "" || text == ";" {
		return
	}
	r.queue = append(r.queue, Statement{LineNo: r.start, Text: text})
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '!'); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return line
}
