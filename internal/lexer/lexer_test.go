package lexer_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/lexer"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/token"
	"github.com/stretchr/testify/require"
)

func tokenTypes(t *testing.T, code string) []token.Type {
	t.Helper()
	f := source.New([]string{"main"}, code)
	toks := lexer.All(f)
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestKeywordsAndPunctuation(t *testing.T) {
	got := tokenTypes(t, "class A { func m(this): A {} }")
	want := []token.Type{
		token.KW_CLASS, token.IDENT, token.LBRACE,
		token.KW_FUNC, token.IDENT, token.LPAREN, token.KW_THIS, token.RPAREN,
		token.COLON, token.IDENT, token.LBRACE, token.RBRACE, token.RBRACE,
		token.EOF,
	}
	require.Equal(t, want, got)
}

func TestTwoCharOperators(t *testing.T) {
	got := tokenTypes(t, "a == b != c <= d >= e := f")
	want := []token.Type{
		token.IDENT, token.EQ, token.IDENT, token.NEQ, token.IDENT, token.LE,
		token.IDENT, token.GE, token.IDENT, token.WALRUS, token.IDENT, token.EOF,
	}
	require.Equal(t, want, got)
}

func TestStringLiteralWithEscapes(t *testing.T) {
	f := source.New([]string{"main"}, `"hello\nworld"`)
	toks := lexer.All(f)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, "hello\nworld", toks[0].Lexeme)
}

func TestIntegerLiteral(t *testing.T) {
	f := source.New([]string{"main"}, "12345")
	toks := lexer.All(f)
	require.Equal(t, token.INT, toks[0].Type)
	require.Equal(t, "12345", toks[0].Lexeme)
}

func TestLineCommentIsSkipped(t *testing.T) {
	got := tokenTypes(t, "a // this is a comment\nb")
	require.Equal(t, []token.Type{token.IDENT, token.IDENT, token.EOF}, got)
}

func TestIllegalCharacter(t *testing.T) {
	got := tokenTypes(t, "@")
	require.Equal(t, []token.Type{token.ILLEGAL, token.EOF}, got)
}

func TestSpansAreByteOffsets(t *testing.T) {
	f := source.New([]string{"main"}, "  foo")
	toks := lexer.All(f)
	require.Equal(t, 2, toks[0].Span.Start)
	require.Equal(t, 5, toks[0].Span.End)
}

func TestEmptyInputYieldsOnlyEOF(t *testing.T) {
	got := tokenTypes(t, "")
	require.Equal(t, []token.Type{token.EOF}, got)
}
