package ast_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/stretchr/testify/require"
)

func TestDottedPathStringAndLast(t *testing.T) {
	p := ast.DottedPath{Segments: []string{"app", "models", "User"}}
	require.Equal(t, "app.models.User", p.String())
	require.Equal(t, "User", p.Last())
}

func TestDottedPathLastOnEmptyPath(t *testing.T) {
	var p ast.DottedPath
	require.Equal(t, "", p.Last())
}

func TestClassFieldNameDispatchesToVariant(t *testing.T) {
	data := &ast.ClassFieldAst{Data: &ast.DataFieldAst{Name: "x"}}
	require.Equal(t, "x", data.Name())

	fn := &ast.ClassFieldAst{Function: &ast.FunctionDefinitionAst{Name: "run"}}
	require.Equal(t, "run", fn.Name())
}

func TestInterfaceFieldNameDispatchesToVariant(t *testing.T) {
	data := &ast.InterfaceFieldAst{Data: &ast.DataFieldAst{Name: "x"}}
	require.Equal(t, "x", data.Name())

	fn := &ast.InterfaceFieldAst{Function: &ast.FunctionDefinitionAst{Name: "run"}}
	require.Equal(t, "run", fn.Name())
}

func TestFileSpanCoversFirstAndLastStatement(t *testing.T) {
	f := source.New([]string{"main"}, "class A {} class B {}")
	a := &ast.ClassDefinitionAst{Name: "A", SpanVal: source.NewSpan(f, 0, 10)}
	b := &ast.ClassDefinitionAst{Name: "B", SpanVal: source.NewSpan(f, 11, 21)}
	file := &ast.File{SourceFile: f, Statements: []ast.Statement{a, b}}

	sp := file.Span()
	require.Equal(t, 0, sp.Start)
	require.Equal(t, 21, sp.End)
}

func TestEmptyFileSpanIsZeroWidth(t *testing.T) {
	f := source.New([]string{"main"}, "")
	file := &ast.File{SourceFile: f}
	sp := file.Span()
	require.Equal(t, 0, sp.Start)
	require.Equal(t, 0, sp.End)
}
