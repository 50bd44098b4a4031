package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Every rule matches exactly one character, so the lexer emits one token per
// character of input. The final rule is a catch-all and lexing cannot fail.
var tapeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "ShiftRight", Pattern: `>`},
	{Name: "ShiftLeft", Pattern: `<`},
	{Name: "Increment", Pattern: `\+`},
	{Name: "Decrement", Pattern: `-`},
	{Name: "Output", Pattern: `\.`},
	{Name: "Input", Pattern: `,`},
	{Name: "LoopOpen", Pattern: `\[`},
	{Name: "LoopClose", Pattern: `\]`},
	{Name: "Comment", Pattern: `[^<>+\-.,\[\]]`},
})

var kindsByType = func() map[lexer.TokenType]TokenKind {
	kinds := make(map[lexer.TokenType]TokenKind, len(kindNames))
	symbols := tapeLexer.Symbols()
	for kind, name := range kindNames {
		if typ, ok := symbols[name]; ok {
			kinds[typ] = kind
		}
	}
	return kinds
}()

// Tokenize classifies every character of source, in order.
func Tokenize(source string) ([]Token, error) {
	return TokenizeNamed("", source)
}

// TokenizeNamed is Tokenize with filename recorded in token positions.
func TokenizeNamed(filename, source string) ([]Token, error) {
	lex, err := tapeLexer.LexString(filename, source)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		if tok.EOF() {
			break
		}
		kind, ok := kindsByType[tok.Type]
		if !ok {
			kind = Comment
		}
		tokens = append(tokens, Token{Kind: kind, Value: tok.Value, Pos: tok.Pos})
	}
	return tokens, nil
}
