package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated = errors.New("unterminated")
	ErrEmptyValue   = errors.New("empty strings are not allowed as values, use a '.' or a '?' instead")
)

// TokenizeErr ties a scanning error to the line on which it was detected.
type TokenizeErr struct {
	Err  error
	Line int
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%v on line %d", e.Err, e.Line)
}

func unterminatedErr(what string, line int) *TokenizeErr {
	return &TokenizeErr{Err: fmt.Errorf("%w: %s", ErrUnterminated, what), Line: line}
}
