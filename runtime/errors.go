package bruntime

import (
	"errors"
	"fmt"
)

var (
	ErrUndefinedLine      = errors.New("undefined line")
	ErrReturnWithoutGosub = errors.New("RETURN without GOSUB")
	ErrStackOverflow      = errors.New("GOSUB stack overflow")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrBadInput           = errors.New("bad input")
	ErrInputExhausted     = errors.New("no input available")
	ErrStepLimit          = errors.New("step limit exceeded")
	ErrUnsupported        = errors.New("unsupported construct")
)

// RuntimeError is a fault of the running program, attributed to the BASIC
// line that raised it.
type RuntimeError struct {
	Line uint32
	Err  error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
