package parse

import "github.com/bmrb-io/go-nmrstar/token"

type parseOpts struct {
	source   string
	comments *[]token.Token
}

type ParseOption func(*parseOpts)

// ParseSource names the input in error messages.
func ParseSource(name string) ParseOption {
	return func(o *parseOpts) { o.source = name }
}

// ParseComments collects the comment tokens the grammar skips, in document
// order, into dst.
func ParseComments(dst *[]token.Token) ParseOption {
	return func(o *parseOpts) { o.comments = dst }
}
