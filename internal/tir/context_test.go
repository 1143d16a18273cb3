package tir_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/erhanbaris/timu-sub002/internal/tir"
	"github.com/stretchr/testify/require"
)

func TestRegisterModuleRejectsDuplicatePath(t *testing.T) {
	ctx := tir.NewContext()
	m1 := tir.NewModule("app", "app", nil, nil)
	m2 := tir.NewModule("app", "app", nil, nil)

	require.Nil(t, ctx.RegisterModule(m1, source.Span{}))
	diag := ctx.RegisterModule(m2, source.Span{})
	require.NotNil(t, diag)

	got, ok := ctx.Module("app")
	require.True(t, ok)
	require.Same(t, m1, got)
}

func TestModulesPreservesRegistrationOrder(t *testing.T) {
	ctx := tir.NewContext()
	a := tir.NewModule("a", "a", nil, nil)
	b := tir.NewModule("b", "b", nil, nil)
	ctx.RegisterModule(a, source.Span{})
	ctx.RegisterModule(b, source.Span{})

	mods := ctx.Modules()
	require.Len(t, mods, 2)
	require.Equal(t, "a", mods[0].Path)
	require.Equal(t, "b", mods[1].Path)
}

func TestReserveLocationHandlesAreMonotonic(t *testing.T) {
	ctx := tir.NewContext()
	loc1, diag := ctx.ReserveLocation("p.A", source.Span{})
	require.Nil(t, diag)
	loc2, diag := ctx.ReserveLocation("p.B", source.Span{})
	require.Nil(t, diag)
	require.Less(t, int(loc1), int(loc2))
}

func TestReserveLocationRejectsDuplicatePublishedPath(t *testing.T) {
	ctx := tir.NewContext()
	loc, _ := ctx.ReserveLocation("p.A", source.Span{})
	ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive})

	_, diag := ctx.ReserveLocation("p.A", source.Span{})
	require.NotNil(t, diag)
}

func TestPublishObjectLocationTwicePanics(t *testing.T) {
	ctx := tir.NewContext()
	loc, _ := ctx.ReserveLocation("p.A", source.Span{})
	ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive})

	require.Panics(t, func() {
		ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive})
	})
}

func TestTypeSignatureOnUndefinedIsNil(t *testing.T) {
	ctx := tir.NewContext()
	require.Nil(t, ctx.TypeSignature(tir.Undefined))
}

func TestIsPublishedReflectsReserveThenPublish(t *testing.T) {
	ctx := tir.NewContext()
	loc, _ := ctx.ReserveLocation("p.A", source.Span{})
	require.False(t, ctx.IsPublished(loc))
	ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive})
	require.True(t, ctx.IsPublished(loc))
}

func TestLookupTypeByPathFindsLongestModulePrefix(t *testing.T) {
	ctx := tir.NewContext()
	m := tir.NewModule("app.models", "app.models", nil, nil)
	ctx.RegisterModule(m, source.Span{})
	loc, _ := ctx.ReserveObjectLocation(m, "User", "app.models.User", source.Span{})
	ctx.PublishObjectLocation(loc, &tir.TypeValue{Kind: tir.KindPrimitive})

	got, ok := ctx.LookupTypeByPath("app.models.User")
	require.True(t, ok)
	require.Equal(t, loc, got)
}

func TestCreateRootAndChildScopeInheritsModule(t *testing.T) {
	ctx := tir.NewContext()
	ref := tir.ModuleRef{Path: "app"}
	root := ctx.CreateRootScope(ref)
	child := ctx.CreateChildScope(root, tir.Undefined)

	rootScope := ctx.GetScope(root)
	childScope := ctx.GetScope(child)
	require.Equal(t, tir.NoScope, rootScope.Parent)
	require.Equal(t, root, childScope.Parent)
	require.Equal(t, ref, childScope.Module)
}

func TestBuildFullName(t *testing.T) {
	require.Equal(t, "app.User", tir.BuildFullName("app", "User"))
	require.Equal(t, "User", tir.BuildFullName("", "User"))
}
