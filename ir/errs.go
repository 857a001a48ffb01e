package ir

import "errors"

var (
	ErrNoSuchTag       = errors.New("no such tag")
	ErrNoSuchSaveframe = errors.New("no such saveframe")
	ErrRowArity        = errors.New("row length does not match loop tags")
)
