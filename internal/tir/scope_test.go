package tir_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/tir"
	"github.com/stretchr/testify/require"
)

func TestDefineLocalAndLookupLocal(t *testing.T) {
	ctx := tir.NewContext()
	root := ctx.CreateRootScope(tir.ModuleRef{Path: "app"})
	scope := ctx.GetScope(root)

	diag := scope.DefineLocal("x", tir.FieldType{Location: 3}, source.Span{})
	require.Nil(t, diag)

	ft, ok := scope.LookupLocal("x")
	require.True(t, ok)
	require.Equal(t, tir.TypeLocation(3), ft.Location)
}

func TestDefineLocalRejectsRedefinitionInSameScope(t *testing.T) {
	ctx := tir.NewContext()
	root := ctx.CreateRootScope(tir.ModuleRef{Path: "app"})
	scope := ctx.GetScope(root)

	require.Nil(t, scope.DefineLocal("x", tir.FieldType{Location: 1}, source.Span{}))
	diag := scope.DefineLocal("x", tir.FieldType{Location: 2}, source.Span{})
	require.NotNil(t, diag)
}

func TestLookupLocalDoesNotWalkToParent(t *testing.T) {
	ctx := tir.NewContext()
	root := ctx.CreateRootScope(tir.ModuleRef{Path: "app"})
	ctx.GetScope(root).DefineLocal("x", tir.FieldType{Location: 1}, source.Span{})

	child := ctx.CreateChildScope(root, tir.Undefined)
	_, ok := ctx.GetScope(child).LookupLocal("x")
	require.False(t, ok, "LookupLocal must not walk to the parent scope")
}
