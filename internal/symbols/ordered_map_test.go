package symbols_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/diagnostics"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/symbols"
	"github.com/stretchr/testify/require"
)

func span(start, end int) source.Span {
	return source.Span{Start: start, End: end}
}

func TestInsertOverwritesAndReturnsOld(t *testing.T) {
	var m symbols.Map[int]
	old, had := m.Insert("a", 1, span(0, 1))
	require.False(t, had)
	require.Zero(t, old)

	old, had = m.Insert("a", 2, span(5, 6))
	require.True(t, had)
	require.Equal(t, 1, old)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestValidateInsertRejectsDuplicate(t *testing.T) {
	var m symbols.Map[int]
	require.Nil(t, m.ValidateInsert("a", 1, span(0, 1)))

	diag := m.ValidateInsert("a", 2, span(5, 6))
	require.NotNil(t, diag)
	require.Equal(t, diagnostics.ErrAlreadyDefined, diag.Code)
	require.Len(t, diag.Labels, 2)

	// the rejected value must not have been stored.
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestKeysValuesPreserveInsertionOrder(t *testing.T) {
	var m symbols.Map[string]
	m.Insert("c", "3", span(0, 1))
	m.Insert("a", "1", span(1, 2))
	m.Insert("b", "2", span(2, 3))

	require.Equal(t, []string{"c", "a", "b"}, m.Keys())
	require.Equal(t, []string{"3", "1", "2"}, m.Values())
}

func TestIterVisitsInInsertionOrder(t *testing.T) {
	var m symbols.Map[int]
	m.Insert("x", 10, span(0, 1))
	m.Insert("y", 20, span(1, 2))

	var seen []string
	m.Iter(func(name string, value int) {
		seen = append(seen, name)
	})
	require.Equal(t, []string{"x", "y"}, seen)
}

func TestRemoveDropsEntryWithoutDisturbingOthers(t *testing.T) {
	var m symbols.Map[int]
	m.Insert("a", 1, span(0, 1))
	m.Insert("b", 2, span(1, 2))
	m.Insert("c", 3, span(2, 3))

	m.Remove("b")

	_, ok := m.Get("b")
	require.False(t, ok)
	require.Equal(t, []string{"a", "c"}, m.Keys())
	require.Equal(t, 2, m.Len())
}

func TestGetAndSpanOnEmptyMap(t *testing.T) {
	var m symbols.Map[int]
	_, ok := m.Get("missing")
	require.False(t, ok)
	_, ok = m.Span("missing")
	require.False(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestSpanReturnsDefiningSpan(t *testing.T) {
	var m symbols.Map[int]
	want := span(3, 9)
	m.Insert("a", 1, want)
	got, ok := m.Span("a")
	require.True(t, ok)
	require.Equal(t, want, got)
}
