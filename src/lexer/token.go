package lexer

import "github.com/alecthomas/participle/v2/lexer"

// Position is the location of a character in the program source.
type Position = lexer.Position

// TokenKind classifies a single source character.
type TokenKind int

const (
	// Comment is any character outside the instruction set, whitespace included.
	Comment TokenKind = iota
	// ShiftRight moves the pointer one cell to the right (">").
	ShiftRight
	// ShiftLeft moves the pointer one cell to the left ("<").
	ShiftLeft
	// Increment adds one to the current cell ("+").
	Increment
	// Decrement subtracts one from the current cell ("-").
	Decrement
	// Output writes the current cell (".").
	Output
	// Input reads one byte into the current cell (",").
	Input
	// LoopOpen starts a loop ("[").
	LoopOpen
	// LoopClose ends a loop ("]").
	LoopClose
)

var kindNames = map[TokenKind]string{
	Comment:    "Comment",
	ShiftRight: "ShiftRight",
	ShiftLeft:  "ShiftLeft",
	Increment:  "Increment",
	Decrement:  "Decrement",
	Output:     "Output",
	Input:      "Input",
	LoopOpen:   "LoopOpen",
	LoopClose:  "LoopClose",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsInstruction reports whether the kind is one of the six plain instructions.
func (k TokenKind) IsInstruction() bool {
	return k >= ShiftRight && k <= Input
}

// Token is one classified source character.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   Position
}

// Classify maps a character to its token kind. It is total: anything that is
// not one of the eight symbols is a Comment.
func Classify(r rune) TokenKind {
	switch r {
	case '>':
		return ShiftRight
	case '<':
		return ShiftLeft
	case '+':
		return Increment
	case '-':
		return Decrement
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopOpen
	case ']':
		return LoopClose
	default:
		return Comment
	}
}
