package parse

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrParse = errors.New("parse error")

// Error is a fatal parse diagnostic. Line and Col are 1-based and point
// at the offending character; Snippet holds up to 20 characters of
// source starting just before it.
type Error struct {
	Msg     string
	Line    int
	Col     int
	Snippet string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d column %d. Next part: %s",
		e.Msg, e.Line, e.Col, strconv.Quote(e.Snippet))
}

func (e *Error) Unwrap() error {
	return ErrParse
}
