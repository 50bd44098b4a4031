package parser

import (
	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/lexer"
)

// Parse tokenizes and parses source into an instruction tree.
func Parse(source string) (*ast.Program, error) {
	return ParseNamed("", source)
}

// ParseNamed is Parse with filename recorded in node and error positions.
func ParseNamed(filename, source string) (*ast.Program, error) {
	tokens, err := lexer.TokenizeNamed(filename, source)
	if err != nil {
		return nil, err
	}
	program, err := ParseTokens(tokens)
	if err != nil {
		return nil, err
	}
	program.Name = filename
	return program, nil
}

// ParseTokens builds an instruction tree from an already lexed sequence.
func ParseTokens(tokens []lexer.Token) (*ast.Program, error) {
	c := &cursor{tokens: tokens}
	body, err := c.block(nil)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram("", body), nil
}

// cursor is the single read position shared by every level of the descent.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func (c *cursor) next() (lexer.Token, bool) {
	if c.pos >= len(c.tokens) {
		return lexer.Token{}, false
	}
	tok := c.tokens[c.pos]
	c.pos++
	return tok, true
}

// block parses tokens until the "]" closing open, or until end of input for
// the top level (open == nil). The closing "]" is consumed.
func (c *cursor) block(open *lexer.Token) ([]ast.Node, error) {
	nodes := []ast.Node{}
	for {
		tok, ok := c.next()
		if !ok {
			if open != nil {
				return nil, &ParseError{Kind: ErrUnterminatedLoop, Pos: open.Pos}
			}
			return nodes, nil
		}

		switch tok.Kind {
		case lexer.LoopOpen:
			body, err := c.block(&tok)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &ast.LoopNode{Pos: tok.Pos, Body: body})
		case lexer.LoopClose:
			if open == nil {
				return nil, &ParseError{Kind: ErrUnmatchedLoopClose, Pos: tok.Pos}
			}
			return nodes, nil
		case lexer.Comment:
		default:
			if !tok.Kind.IsInstruction() {
				return nil, &ParseError{Kind: ErrUnknownToken, Pos: tok.Pos}
			}
			nodes = append(nodes, leaf(tok))
		}
	}
}

// leaf builds the node for an instruction token.
func leaf(tok lexer.Token) ast.Node {
	switch tok.Kind {
	case lexer.ShiftRight:
		return &ast.ShiftRightNode{Pos: tok.Pos}
	case lexer.ShiftLeft:
		return &ast.ShiftLeftNode{Pos: tok.Pos}
	case lexer.Increment:
		return &ast.IncrNode{Pos: tok.Pos}
	case lexer.Decrement:
		return &ast.DecrNode{Pos: tok.Pos}
	case lexer.Output:
		return &ast.OutputNode{Pos: tok.Pos}
	default: // lexer.Input
		return &ast.InputNode{Pos: tok.Pos}
	}
}
