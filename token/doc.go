// Package token provides lexical scanning support for NMR-STAR.
//
// [Tokenizer] turns a loaded buffer into a stream of classified tokens
// with line and delineator metadata.
//
// [Quote] is the inverse operation: it renders a raw value so that
// tokenizing the result yields the value back.
package token
