package interpreter

import (
	"errors"
	"fmt"

	"github.com/seuros/gopher-tape/src/lexer"
)

var (
	// ErrPointerOutOfBounds is returned when a shift would leave the tape.
	ErrPointerOutOfBounds = errors.New("pointer out of bounds")
	// ErrInputExhausted is returned by an input instruction at end of
	// stream when the EOF policy is EOFError.
	ErrInputExhausted = errors.New("input exhausted")
)

// RuntimeError wraps a failure with where in the program it happened.
type RuntimeError struct {
	// Err is the cause: one of the sentinels above, an I/O error, or a
	// context error.
	Err error
	// Pos is the instruction being executed.
	Pos lexer.Position
	// Pointer is the tape position when the failure occurred.
	Pointer int
	// Instruction is the name of the failing instruction.
	Instruction string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s at cell %d: %v", e.Pos, e.Instruction, e.Pointer, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}
