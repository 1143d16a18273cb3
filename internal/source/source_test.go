package source_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	f := source.New([]string{"app", "models", "user"}, "class User {}")
	require.Equal(t, "app.models.user", f.PathString())
}

func TestSpanText(t *testing.T) {
	f := source.New([]string{"main"}, "class Foo {}")
	sp := source.NewSpan(f, 0, 5)
	require.Equal(t, "class", sp.Text())
}

func TestSpanTextOutOfRangeIsEmpty(t *testing.T) {
	f := source.New([]string{"main"}, "abc")
	sp := source.NewSpan(f, 10, 20)
	require.Equal(t, "", sp.Text())
}

func TestMergePicksOuterBounds(t *testing.T) {
	f := source.New([]string{"main"}, "0123456789")
	a := source.NewSpan(f, 2, 4)
	b := source.NewSpan(f, 6, 9)
	m := source.Merge(a, b)
	require.Equal(t, 2, m.Start)
	require.Equal(t, 9, m.End)
}

func TestMergeWithZeroSpanReturnsOther(t *testing.T) {
	f := source.New([]string{"main"}, "0123456789")
	a := source.NewSpan(f, 2, 4)
	var zero source.Span
	require.Equal(t, a, source.Merge(zero, a))
	require.Equal(t, a, source.Merge(a, zero))
}

func TestLineCol(t *testing.T) {
	f := source.New([]string{"main"}, "line one\nline two\nline three")
	// "line two" starts at offset 9.
	sp := source.NewSpan(f, 9, 13)
	line, col := sp.LineCol()
	require.Equal(t, 2, line)
	require.Equal(t, 1, col)
}

func TestLineColFirstLine(t *testing.T) {
	f := source.New([]string{"main"}, "abc\ndef")
	sp := source.NewSpan(f, 1, 2)
	line, col := sp.LineCol()
	require.Equal(t, 1, line)
	require.Equal(t, 2, col)
}
