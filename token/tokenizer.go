package token

import (
	"bytes"
	"fmt"
	"os"
)

// NMR-STAR token separators: space, newline, tab, vertical tab.
func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\n', '\t', '\v':
		return true
	}
	return false
}

type state int

const (
	stateUnloaded state = iota
	stateScanning
	stateDone
	stateErr
)

// Tokenizer scans a loaded buffer one token per Next call. It owns its
// buffer for the lifetime of the load and is not safe for concurrent use;
// each consumer gets its own Tokenizer.
type Tokenizer struct {
	buf  []byte
	cur  int
	line int
	last Delineator
	st   state
	err  error
	src  string
}

func New() *Tokenizer {
	return &Tokenizer{line: 1}
}

// Load reads path entirely into an owned buffer, discarding any prior state.
func (t *Tokenizer) Load(path string) error {
	d, err := os.ReadFile(path)
	if err != nil {
		t.Reset()
		return fmt.Errorf("could not read %q: %w", path, err)
	}
	t.LoadBytes(d)
	t.src = path
	return nil
}

// LoadBytes copies d into an owned buffer with reset semantics. Mutating d
// afterward does not affect the tokenizer.
func (t *Tokenizer) LoadBytes(d []byte) {
	t.Reset()
	t.buf = make([]byte, len(d))
	copy(t.buf, d)
	t.st = stateScanning
}

func (t *Tokenizer) LoadString(s string) {
	t.LoadBytes([]byte(s))
}

// Reset returns the tokenizer to a pristine unloaded state.
func (t *Tokenizer) Reset() {
	*t = Tokenizer{line: 1}
}

// Line reports the 1-based line number of the cursor.
func (t *Tokenizer) Line() int {
	return t.line
}

// LastDelineator reports how the most recently produced token was bounded.
func (t *Tokenizer) LastDelineator() Delineator {
	return t.last
}

// Source returns the file the buffer was loaded from, if any.
func (t *Tokenizer) Source() string {
	return t.src
}

// Next returns the next token, or (nil, nil) once the buffer is exhausted.
// Repeated calls after exhaustion keep returning the sentinel. After a
// scanning error the tokenizer keeps returning the same error until it is
// Reset or reloaded; it never resumes past a malformed construct.
func (t *Tokenizer) Next() (*Token, error) {
	switch t.st {
	case stateUnloaded, stateDone:
		return nil, nil
	case stateErr:
		return nil, t.err
	}

	for t.cur < len(t.buf) && isWhitespace(t.buf[t.cur]) {
		if t.buf[t.cur] == '\n' {
			t.line++
		}
		t.cur++
	}
	if t.cur >= len(t.buf) {
		t.st = stateDone
		return nil, nil
	}

	switch c := t.buf[t.cur]; {
	case c == '#':
		return t.comment(), nil
	case c == ';' && t.cur+1 < len(t.buf) && t.buf[t.cur+1] == '\n':
		return t.multiline()
	case c == '\'' || c == '"':
		return t.quoted(c)
	default:
		return t.bare(), nil
	}
}

// Tokens drains the remaining token stream.
func (t *Tokenizer) Tokens() ([]Token, error) {
	var res []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return res, nil
		}
		res = append(res, *tok)
	}
}

func (t *Tokenizer) fail(err *TokenizeErr) (*Token, error) {
	t.st = stateErr
	t.err = err
	return nil, err
}

// comment scans from '#' to the end of the line. The trailing newline is
// left for the whitespace skip on the next call. Comments are surfaced, not
// dropped; consumers that want them invisible filter on the delineator.
func (t *Tokenizer) comment() *Token {
	end := bytes.IndexByte(t.buf[t.cur:], '\n')
	if end == -1 {
		end = len(t.buf)
	} else {
		end += t.cur
	}
	tok := &Token{
		Text:       string(t.buf[t.cur+1 : end]),
		Delineator: Comment,
		Line:       t.line,
	}
	t.cur = end
	t.last = Comment
	return tok
}

// multiline scans a semicolon-delineated value. The cursor is on the
// opening ';' which is immediately followed by a newline; the value runs to
// the next "\n;" sequence, exclusive on both newlines.
func (t *Tokenizer) multiline() (*Token, error) {
	tokLine := t.line
	off := bytes.Index(t.buf[t.cur:], []byte("\n;"))
	if off == -1 {
		return t.fail(unterminatedErr("semicolon-delineated value", tokLine))
	}
	nl := t.cur + off
	var text []byte
	if nl > t.cur+2 {
		text = t.buf[t.cur+2 : nl]
	}
	// count the opening and closing newlines and everything between; for an
	// empty value the two delimiters share one newline
	t.line += bytes.Count(t.buf[t.cur:nl+1], []byte{'\n'})
	t.cur = nl + 2
	t.last = Multiline
	return &Token{
		Text:       string(text),
		Delineator: Multiline,
		Line:       tokLine,
	}, nil
}

// quoted scans a value delimited by q. A candidate closing quote only
// counts if it is followed by whitespace or end of buffer; a quote glued to
// non-whitespace is literal content.
func (t *Tokenizer) quoted(q byte) (*Token, error) {
	tokLine := t.line
	what := "single quoted value"
	d := SingleQuote
	if q == '"' {
		what = "double quoted value"
		d = DoubleQuote
	}
	i := t.cur + 1
	for {
		off := bytes.IndexByte(t.buf[i:], q)
		if off == -1 {
			return t.fail(unterminatedErr(what, tokLine))
		}
		end := i + off
		if end+1 < len(t.buf) && !isWhitespace(t.buf[end+1]) {
			i = end + 1
			continue
		}
		span := t.buf[t.cur+1 : end]
		if bytes.IndexByte(span, '\n') != -1 {
			return t.fail(unterminatedErr(what+" on the line it began", tokLine))
		}
		t.cur = end + 1
		t.last = d
		return &Token{
			Text:       string(span),
			Delineator: d,
			Line:       tokLine,
		}, nil
	}
}

func (t *Tokenizer) bare() *Token {
	start := t.cur
	end := start
	for end < len(t.buf) && !isWhitespace(t.buf[end]) {
		end++
	}
	text := string(t.buf[start:end])
	d := Bare
	if len(text) > 1 && text[0] == '$' {
		d = Reference
	}
	t.cur = end
	t.last = d
	return &Token{
		Text:       text,
		Delineator: d,
		Line:       t.line,
	}
}
