package parser

import (
	"errors"
	"fmt"

	"github.com/seuros/gopher-tape/src/lexer"
)

var (
	// ErrUnmatchedLoopClose is returned for a "]" with no open loop.
	ErrUnmatchedLoopClose = errors.New("unmatched ']'")
	// ErrUnterminatedLoop is returned for a "[" that reaches end of input
	// without its closing "]".
	ErrUnterminatedLoop = errors.New("unterminated '['")
	// ErrUnknownToken is returned by ParseTokens for a token kind that is
	// neither an instruction, a loop delimiter nor a comment.
	ErrUnknownToken = errors.New("unknown token")
)

// ParseError reports a token the tree cannot be built from.
type ParseError struct {
	// Kind is ErrUnmatchedLoopClose, ErrUnterminatedLoop or ErrUnknownToken.
	Kind error
	// Pos is the offending token: the stray "]", the unclosed "[" or the
	// unknown token.
	Pos lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
