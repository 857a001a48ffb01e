package token

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeLines(t *testing.T) {
	tk := New()
	tk.LoadString("a\nb\nc")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Text: "a", Delineator: Bare, Line: 1},
		{Text: "b", Delineator: Bare, Line: 2},
		{Text: "c", Delineator: Bare, Line: 3},
	}
	if d := cmp.Diff(want, toks); d != "" {
		t.Errorf("token mismatch (-want +got):\n%s", d)
	}
}

func TestTokenizeDelineators(t *testing.T) {
	tk := New()
	tk.LoadString("bare 'sq' \"dq\" $ref $ _tag\n;\nml body\n;\n# note\n")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Text: "bare", Delineator: Bare, Line: 1},
		{Text: "sq", Delineator: SingleQuote, Line: 1},
		{Text: "dq", Delineator: DoubleQuote, Line: 1},
		{Text: "$ref", Delineator: Reference, Line: 1},
		{Text: "$", Delineator: Bare, Line: 1},
		{Text: "_tag", Delineator: Bare, Line: 1},
		{Text: "ml body", Delineator: Multiline, Line: 2},
		{Text: " note", Delineator: Comment, Line: 5},
	}
	if d := cmp.Diff(want, toks); d != "" {
		t.Errorf("token mismatch (-want +got):\n%s", d)
	}
}

func TestTokenizeEmbeddedQuote(t *testing.T) {
	tk := New()
	tk.LoadString(`'a'b'`)
	tok, err := tk.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "a'b" || tok.Delineator != SingleQuote {
		t.Errorf("got %q (%s), want %q", tok.Text, tok.Delineator, "a'b")
	}
	if tok, err = tk.Next(); err != nil || tok != nil {
		t.Errorf("expected end of stream, got %v, %v", tok, err)
	}
}

func TestTokenizeQuoteClosedByWhitespace(t *testing.T) {
	tk := New()
	tk.LoadString(`'ab' cd'`)
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Text: "ab", Delineator: SingleQuote, Line: 1},
		{Text: "cd'", Delineator: Bare, Line: 1},
	}
	if d := cmp.Diff(want, toks); d != "" {
		t.Errorf("token mismatch (-want +got):\n%s", d)
	}
}

func TestTokenizeMultiline(t *testing.T) {
	tk := New()
	tk.LoadString(";\nhello\nworld\n;\n")
	tok, err := tk.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Text != "hello\nworld" {
		t.Errorf("text = %q, want %q", tok.Text, "hello\nworld")
	}
	if tok.Delineator != Multiline || tok.Line != 1 {
		t.Errorf("delineator = %s, line = %d", tok.Delineator, tok.Line)
	}
	if tok, err = tk.Next(); err != nil || tok != nil {
		t.Errorf("expected end of stream, got %v, %v", tok, err)
	}
	if tk.Line() != 5 {
		t.Errorf("line after stream = %d, want 5", tk.Line())
	}
}

func TestTokenizeEmptyMultiline(t *testing.T) {
	tk := New()
	tk.LoadString(";\n; after")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Text: "", Delineator: Multiline, Line: 1},
		{Text: "after", Delineator: Bare, Line: 2},
	}
	if d := cmp.Diff(want, toks); d != "" {
		t.Errorf("token mismatch (-want +got):\n%s", d)
	}
}

func TestTokenizeUnterminated(t *testing.T) {
	for _, tc := range []struct {
		in   string
		line int
	}{
		{`'abc`, 1},
		{"\n\"abc", 2},
		{";\nnever closed", 1},
		{"x\n;\nnever closed", 2},
		{"'ab\ncd'", 1},
	} {
		tk := New()
		tk.LoadString(tc.in)
		var err error
		var tok *Token
		for {
			tok, err = tk.Next()
			if err != nil || tok == nil {
				break
			}
		}
		if !errors.Is(err, ErrUnterminated) {
			t.Errorf("%q: err = %v, want ErrUnterminated", tc.in, err)
			continue
		}
		var te *TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: error does not carry a line", tc.in)
			continue
		}
		if te.Line != tc.line {
			t.Errorf("%q: line = %d, want %d", tc.in, te.Line, tc.line)
		}
		// the error state is sticky until reset
		if _, err2 := tk.Next(); !errors.Is(err2, ErrUnterminated) {
			t.Errorf("%q: tokenizer resumed after error: %v", tc.in, err2)
		}
	}
}

func TestTokenizeDoneIdempotent(t *testing.T) {
	tk := New()
	tk.LoadString("only")
	if _, err := tk.Tokens(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		tok, err := tk.Next()
		if tok != nil || err != nil {
			t.Fatalf("call %d after done: %v, %v", i, tok, err)
		}
	}
}

func TestTokenizerReset(t *testing.T) {
	tk := New()
	tk.LoadString("'bad")
	if _, err := tk.Tokens(); err == nil {
		t.Fatal("expected error")
	}
	tk.Reset()
	tok, err := tk.Next()
	if tok != nil || err != nil {
		t.Fatalf("reset tokenizer not pristine: %v, %v", tok, err)
	}
	tk.LoadString("good")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Text != "good" {
		t.Errorf("got %v", toks)
	}
}

func TestLoadBytesOwnsCopy(t *testing.T) {
	src := []byte("abc def")
	tk := New()
	tk.LoadBytes(src)
	src[0] = 'x'
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Text != "abc" {
		t.Errorf("buffer aliased caller memory: %q", toks[0].Text)
	}
}

func TestLastDelineator(t *testing.T) {
	tk := New()
	tk.LoadString("a 'b' $c")
	for _, want := range []Delineator{Bare, SingleQuote, Reference} {
		if _, err := tk.Next(); err != nil {
			t.Fatal(err)
		}
		if tk.LastDelineator() != want {
			t.Errorf("last delineator = %s, want %s", tk.LastDelineator(), want)
		}
	}
}

func TestTokenizeCommentNotDropped(t *testing.T) {
	tk := New()
	tk.LoadString("# one\n# two\n# three\nvalue")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	nComments := 0
	for _, tok := range toks {
		if tok.Delineator == Comment {
			nComments++
		}
	}
	if nComments != 3 {
		t.Errorf("comments surfaced = %d, want 3", nComments)
	}
	last := toks[len(toks)-1]
	if last.Text != "value" || last.Line != 4 {
		t.Errorf("got %+v", last)
	}
}

func TestTokenizeCommentAtEOF(t *testing.T) {
	tk := New()
	tk.LoadString("x # trailing")
	toks, err := tk.Tokens()
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{
		{Text: "x", Delineator: Bare, Line: 1},
		{Text: " trailing", Delineator: Comment, Line: 1},
	}
	if d := cmp.Diff(want, toks); d != "" {
		t.Errorf("token mismatch (-want +got):\n%s", d)
	}
}
