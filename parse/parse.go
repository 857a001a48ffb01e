package parse

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bmrb-io/go-nmrstar/debug"
	"github.com/bmrb-io/go-nmrstar/ir"
	"github.com/bmrb-io/go-nmrstar/token"
)

var bentOpener = regexp.MustCompile(`\n;([^\n]+?)\n`)

// Normalize rewrites DOS and classic Mac line endings and straightens bent
// multiline openers ("\n; text\n" becomes "\n;\ntext\n") so the scanner
// sees canonical framing.
func Normalize(data []byte) []byte {
	s := string(data)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = bentOpener.ReplaceAllString(s, "\n;\n$1\n")
	return []byte(s)
}

// Parse structures data into an entry. Comment tokens are skipped unless
// collected with ParseComments.
func Parse(data []byte, opts ...ParseOption) (*ir.Entry, error) {
	pOpts := &parseOpts{source: "string"}
	for _, f := range opts {
		f(pOpts)
	}
	p := &parser{tk: token.New(), opts: pOpts}
	p.tk.LoadBytes(Normalize(data))
	return p.entry()
}

func ParseString(s string, opts ...ParseOption) (*ir.Entry, error) {
	return Parse([]byte(s), opts...)
}

func ParseFile(path string, opts ...ParseOption) (*ir.Entry, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Parse(d, append([]ParseOption{ParseSource(path)}, opts...)...)
}

type parser struct {
	tk   *token.Tokenizer
	opts *parseOpts
	tok  *token.Token
}

// next advances to the next non-comment token; p.tok is nil at end of
// stream.
func (p *parser) next() error {
	for {
		tok, err := p.tk.Next()
		if err != nil {
			return err
		}
		if debug.Tokens() && tok != nil {
			debug.Logf("token: %d\t%s\t%q\n", tok.Line, tok.Delineator, tok.Text)
		}
		if tok != nil && tok.Delineator == token.Comment {
			if p.opts.comments != nil {
				*p.opts.comments = append(*p.opts.comments, *tok)
			}
			continue
		}
		p.tok = tok
		return nil
	}
}

func (p *parser) line() int {
	return p.tk.Line()
}

func (p *parser) entry() (*ir.Entry, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok == nil {
		return nil, parseErrf(p.line(), "no data in %s", p.opts.source)
	}
	t := p.tok
	if t.Delineator != token.Bare || !strings.HasPrefix(strings.ToLower(t.Text), "data_") {
		return nil, parseErrf(t.Line, "entries must start with 'data_' followed by the data name, found %q", t.Text)
	}
	if len(t.Text) < 6 {
		return nil, parseErrf(t.Line, "'data_' must be followed by a data name")
	}
	ent := &ir.Entry{ID: t.Text[5:]}
	if debug.Parse() {
		debug.Logf("parse: entry %q from %s\n", ent.ID, p.opts.source)
	}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok == nil {
			return ent, nil
		}
		sf, err := p.saveframe()
		if err != nil {
			return nil, err
		}
		ent.AddSaveframe(sf)
	}
}

func (p *parser) saveframe() (*ir.Saveframe, error) {
	t := p.tok
	if t.Delineator != token.Bare || !strings.HasPrefix(strings.ToLower(t.Text), "save_") {
		return nil, parseErrf(t.Line, "only 'save_NAME' is valid in the body of an entry, found %q", t.Text)
	}
	if len(t.Text) < 6 {
		return nil, parseErrf(t.Line, "'save_' must be followed by a saveframe name")
	}
	sf := &ir.Saveframe{Name: t.Text[5:]}
	if debug.Parse() {
		debug.Logf("parse: saveframe %q at line %d\n", sf.Name, t.Line)
	}
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		t := p.tok
		switch {
		case t == nil:
			return nil, parseErrf(p.line(), "saveframe %q was never terminated with 'save_'", sf.Name)
		case t.Delineator == token.Bare && strings.EqualFold(t.Text, "save_"):
			return sf, nil
		case t.Delineator == token.Bare && strings.EqualFold(t.Text, "loop_"):
			l, err := p.loop()
			if err != nil {
				return nil, err
			}
			sf.AddLoop(l)
		case t.Delineator == token.Bare && strings.HasPrefix(t.Text, "_"):
			if err := p.tag(sf, t); err != nil {
				return nil, err
			}
		default:
			return nil, parseErrf(t.Line, "only tags and loops are valid in a saveframe, found %q", t.Text)
		}
	}
}

func (p *parser) tag(sf *ir.Saveframe, name *token.Token) error {
	if err := p.next(); err != nil {
		return err
	}
	v := p.tok
	if v == nil {
		return parseErrf(p.line(), "input ended looking for the value of tag %q", name.Text)
	}
	if v.Delineator == token.Bare {
		switch {
		case strings.HasPrefix(v.Text, "_"):
			return parseErrf(v.Line, "expected a value for tag %q, found tag %q", name.Text, v.Text)
		case isKeyword(v.Text):
			return parseErrf(v.Line, "expected a value for tag %q, found keyword %q", name.Text, v.Text)
		}
	}
	if sf.TagPrefix == "" && strings.Contains(name.Text, ".") {
		sf.TagPrefix = ir.TagCategory(name.Text)
	}
	sf.AddTag(ir.TagName(name.Text), v.Text, v.Delineator)
	return nil
}

// Reserved keyword prefixes may only appear bare when they carry grammar
// meaning; a bare value of this shape in value position is an error.
func isKeyword(v string) bool {
	lower := strings.ToLower(v)
	for _, kw := range []string{"data_", "save_", "loop_", "stop_", "global_"} {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	return false
}

func (p *parser) loop() (*ir.Loop, error) {
	l := &ir.Loop{}
	startLine := p.tok.Line
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		t := p.tok
		if t == nil {
			return nil, parseErrf(p.line(), "loop was not terminated with 'stop_'")
		}
		if t.Delineator == token.Bare && strings.HasPrefix(t.Text, "_") {
			if err := l.AddColumn(t.Text); err != nil {
				return nil, parseErrf(t.Line, "%v", err)
			}
			continue
		}
		break
	}
	if len(l.Tags) == 0 {
		return nil, parseErrf(startLine, "loop with no tags")
	}

	// p.tok already holds the first value
	var vals []string
	for {
		t := p.tok
		if t == nil {
			return nil, parseErrf(p.line(), "loop was not terminated with 'stop_'")
		}
		if t.Delineator == token.Bare && strings.EqualFold(t.Text, "stop_") {
			break
		}
		if t.Delineator == token.Bare && strings.HasPrefix(t.Text, "_") {
			return nil, parseErrf(t.Line, "tag %q found in the data section of a loop", t.Text)
		}
		if t.Delineator == token.Bare && isKeyword(t.Text) {
			return nil, parseErrf(t.Line, "keyword %q found in the data section of a loop", t.Text)
		}
		vals = append(vals, t.Text)
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if len(vals)%len(l.Tags) != 0 {
		return nil, parseErrf(p.tok.Line, "loop %q has %d values, which does not divide into its %d tags",
			l.Category, len(vals), len(l.Tags))
	}
	for i := 0; i < len(vals); i += len(l.Tags) {
		row := make([]string, len(l.Tags))
		copy(row, vals[i:i+len(l.Tags)])
		if err := l.AddRow(row); err != nil {
			return nil, parseErrf(startLine, "%v", err)
		}
	}
	if debug.Parse() {
		debug.Logf("parse: loop %q with %d tags, %d rows\n", l.Category, len(l.Tags), len(l.Data))
	}
	return l, nil
}
