package diagnostics_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/stretchr/testify/require"
)

func TestAlreadyDefinedCarriesBothSpans(t *testing.T) {
	f := source.New([]string{"main"}, "class a {} class a {}")
	existing := source.NewSpan(f, 0, 7)
	redefinition := source.NewSpan(f, 11, 18)

	d := diagnostics.AlreadyDefined("a", existing, redefinition)

	require.Equal(t, diagnostics.ErrAlreadyDefined, d.Code)
	require.Equal(t, redefinition, d.Span)
	require.Len(t, d.Labels, 2)
	require.Equal(t, existing, d.Labels[0].Span)
	require.Equal(t, redefinition, d.Labels[1].Span)
}

func TestWithLabelAndWithHelpAreFluent(t *testing.T) {
	f := source.New([]string{"main"}, "x")
	d := diagnostics.New(diagnostics.ErrTypeNotFound, source.NewSpan(f, 0, 1), "boom").
		WithLabel(source.NewSpan(f, 0, 1), "here").
		WithHelp("try again")

	require.Len(t, d.Labels, 1)
	require.Equal(t, "here", d.Labels[0].Message)
	require.Equal(t, "try again", d.Help)
}

func TestErrorStringFormat(t *testing.T) {
	d := diagnostics.New(diagnostics.ErrSyntax, source.Span{}, "unexpected token")
	require.Equal(t, "E0001: unexpected token", d.Error())
}

func TestListDedupesByPositionCodeAndMessage(t *testing.T) {
	f := source.New([]string{"main"}, "xxxx")
	var l diagnostics.List
	l.Add(diagnostics.TypeNotFound("a", source.NewSpan(f, 0, 1)))
	l.Add(diagnostics.TypeNotFound("a", source.NewSpan(f, 0, 1)))
	require.Equal(t, 1, l.Len())

	// same position, different message: not deduped.
	l.Add(diagnostics.TypeNotFound("b", source.NewSpan(f, 0, 1)))
	require.Equal(t, 2, l.Len())
}

func TestListAddNilIsNoop(t *testing.T) {
	var l diagnostics.List
	l.Add(nil)
	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Items())
}

func TestListAddAllPreservesOrder(t *testing.T) {
	f := source.New([]string{"main"}, "xxxx")
	var l diagnostics.List
	l.AddAll([]*diagnostics.Diagnostic{
		diagnostics.TypeNotFound("a", source.NewSpan(f, 0, 1)),
		diagnostics.TypeNotFound("b", source.NewSpan(f, 1, 2)),
	})
	require.Len(t, l.Items(), 2)
	require.Contains(t, l.Items()[0].Message, "a")
	require.Contains(t, l.Items()[1].Message, "b")
}
