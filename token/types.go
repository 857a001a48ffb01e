package token

// Delineator records how a token was bounded in the source text. It is
// needed to reproduce the original formatting on re-serialization and to
// distinguish keywords (which must be bare) from data that merely looks
// like them.
type Delineator int

const (
	Bare Delineator = iota
	SingleQuote
	DoubleQuote
	Multiline
	Comment
	// Reference is a refinement of Bare: the token text starts with '$'
	// and names a saveframe defined elsewhere in the entry.
	Reference
)

func (d Delineator) String() string {
	return map[Delineator]string{
		Bare:        "bare",
		SingleQuote: "single-quote",
		DoubleQuote: "double-quote",
		Multiline:   "multiline",
		Comment:     "comment",
		Reference:   "reference",
	}[d]
}

// Token is one lexical unit of an NMR-STAR document. Text holds the decoded
// scalar content with the delimiting characters stripped. Tokens are
// returned by value and never alias the tokenizer's buffer.
type Token struct {
	Text       string
	Delineator Delineator
	Line       int
}

func (t *Token) IsKeyword(kw string) bool {
	return t.Delineator == Bare && t.Text == kw
}
