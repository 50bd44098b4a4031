package parser

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/gopher-tape/src/ast"
	"github.com/seuros/gopher-tape/src/lexer"
)

type fixture struct {
	Description string `json:"description"`
	Source      string `json:"source"`
	Valid       bool   `json:"valid"`
	Canonical   string `json:"canonical"`
	Error       string `json:"error"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs.json"))
	require.NoError(t, err)

	var fixtures []fixture
	require.NoError(t, json.Unmarshal(data, &fixtures))
	require.NotEmpty(t, fixtures)
	return fixtures
}

func TestParserWithFixtures(t *testing.T) {
	for _, tc := range loadFixtures(t) {
		t.Run(tc.Description, func(t *testing.T) {
			program, err := Parse(tc.Source)
			if !tc.Valid {
				require.Error(t, err)
				assert.Nil(t, program)
				assert.Contains(t, err.Error(), tc.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Canonical, ast.Format(program.Body))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	program, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, program.Body)
	assert.NotNil(t, program.Body)
}

func TestParseTreeShape(t *testing.T) {
	program, err := Parse("+[->[.]<]")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	assert.IsType(t, &ast.IncrNode{}, program.Body[0])
	outer, ok := program.Body[1].(*ast.LoopNode)
	require.True(t, ok)
	require.Len(t, outer.Body, 4)
	assert.IsType(t, &ast.DecrNode{}, outer.Body[0])
	assert.IsType(t, &ast.ShiftRightNode{}, outer.Body[1])
	assert.IsType(t, &ast.ShiftLeftNode{}, outer.Body[3])

	inner, ok := outer.Body[2].(*ast.LoopNode)
	require.True(t, ok)
	require.Len(t, inner.Body, 1)
	assert.IsType(t, &ast.OutputNode{}, inner.Body[0])
}

func TestParseSharesCursorAcrossNesting(t *testing.T) {
	// Everything after an inner loop must land in the outer body, which only
	// holds when the inner call's consumption is visible to its caller.
	program, err := Parse("[[+]-]>")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	outer := program.Body[0].(*ast.LoopNode)
	require.Len(t, outer.Body, 2)
	assert.IsType(t, &ast.LoopNode{}, outer.Body[0])
	assert.IsType(t, &ast.DecrNode{}, outer.Body[1])
	assert.IsType(t, &ast.ShiftRightNode{}, program.Body[1])
}

func TestParseUnmatchedLoopClose(t *testing.T) {
	_, err := Parse("+\n ]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmatchedLoopClose))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Pos.Line)
	assert.Equal(t, 3, parseErr.Pos.Offset)
}

func TestParseUnterminatedLoopReportsOpener(t *testing.T) {
	_, err := Parse("+[[-]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnterminatedLoop))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Pos.Offset)
}

func TestParseNamedRecordsFilename(t *testing.T) {
	program, err := ParseNamed("hello.b", "+")
	require.NoError(t, err)
	assert.Equal(t, "hello.b", program.Name)
	assert.Equal(t, "hello.b", program.Body[0].Position().Filename)

	_, err = ParseNamed("broken.b", "]")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "broken.b:1:1"), err.Error())
}

func TestParseIsIdempotent(t *testing.T) {
	source := "++[>+++[<.>-]<-] with a comment\n,[.,]"

	first, err := Parse(source)
	require.NoError(t, err)
	second, err := Parse(source)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseCommentTransparency(t *testing.T) {
	plain, err := Parse("++[>+++[<.>-]<-]")
	require.NoError(t, err)
	commented, err := Parse("two ++ then\n[ move>+++ inner [<print.>-] back<- ] 42")
	require.NoError(t, err)

	assert.Equal(t, ast.Format(plain.Body), ast.Format(commented.Body))
	assert.Equal(t, plain.Len(), commented.Len())
}

func TestFormatRoundTrip(t *testing.T) {
	program, err := Parse("a+b[c-d[e.f]g>h]i")
	require.NoError(t, err)

	reparsed, err := Parse(program.String())
	require.NoError(t, err)
	assert.Equal(t, program.String(), reparsed.String())

	indented, err := Parse(ast.FormatIndented(program.Body, "  "))
	require.NoError(t, err)
	assert.Equal(t, program.String(), indented.String())
}

func TestParseTokens(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: lexer.LoopOpen, Value: "["},
		{Kind: lexer.Input, Value: ","},
		{Kind: lexer.LoopClose, Value: "]"},
	}
	program, err := ParseTokens(tokens)
	require.NoError(t, err)
	assert.Equal(t, "[,]", program.String())
}

func TestParseTokensRejectsUnknownKinds(t *testing.T) {
	tests := []struct {
		name   string
		tokens []lexer.Token
		offset int
	}{
		{"top level", []lexer.Token{{Kind: lexer.TokenKind(99), Pos: lexer.Position{Offset: 0}}}, 0},
		{"negative kind", []lexer.Token{
			{Kind: lexer.Increment, Pos: lexer.Position{Offset: 0}},
			{Kind: lexer.TokenKind(-1), Pos: lexer.Position{Offset: 1}},
		}, 1},
		{"inside loop", []lexer.Token{
			{Kind: lexer.LoopOpen, Pos: lexer.Position{Offset: 0}},
			{Kind: lexer.TokenKind(42), Pos: lexer.Position{Offset: 1}},
			{Kind: lexer.LoopClose, Pos: lexer.Position{Offset: 2}},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := ParseTokens(tt.tokens)
			require.Error(t, err)
			assert.Nil(t, program)
			assert.True(t, errors.Is(err, ErrUnknownToken))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.offset, perr.Pos.Offset)
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	depth := 500
	source := strings.Repeat("[", depth) + strings.Repeat("]", depth)

	program, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, depth, program.Depth())
}
