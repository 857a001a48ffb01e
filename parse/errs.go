package parse

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// ParseErr ties a grammar error to the line it was detected on.
type ParseErr struct {
	Msg  string
	Line int
}

func (e *ParseErr) Unwrap() error {
	return ErrParse
}

func (e *ParseErr) Error() string {
	return fmt.Sprintf("%s on line %d", e.Msg, e.Line)
}

func parseErrf(line int, format string, args ...any) *ParseErr {
	return &ParseErr{Msg: fmt.Sprintf(format, args...), Line: line}
}
