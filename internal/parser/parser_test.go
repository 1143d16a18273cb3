package parser_test

import (
	"testing"

	"github.com/erhanbaris/timu-sub002/internal/ast"
	"github.com/erhanbaris/timu-sub002/internal/parser"
	"github.com/erhanbaris/timu-sub002/internal/source"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, code string) (*ast.File, []string) {
	t.Helper()
	f := source.New([]string{"main"}, code)
	file, diags := parser.ParseFile(f)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return file, msgs
}

func TestParseEmptyFile(t *testing.T) {
	file, diags := parse(t, "")
	require.Empty(t, diags)
	require.Empty(t, file.Statements)
}

func TestParseUseWithAlias(t *testing.T) {
	file, diags := parse(t, "use app.models.User as Model;\n")
	require.Empty(t, diags)
	require.Len(t, file.Statements, 1)
	use := file.Statements[0].(*ast.UseAst)
	require.Equal(t, "app.models.User", use.Path.String())
	require.Equal(t, "Model", *use.Alias)
}

func TestParseUseWithoutAlias(t *testing.T) {
	file, diags := parse(t, "use app.models.User;\n")
	require.Empty(t, diags)
	use := file.Statements[0].(*ast.UseAst)
	require.Nil(t, use.Alias)
}

func TestParseClassWithDataAndFunctionFields(t *testing.T) {
	code := `class Point {
		pub x: i32;
		y: i32;
		func length(this): i32 {}
	}`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	class := file.Statements[0].(*ast.ClassDefinitionAst)
	require.Equal(t, "Point", class.Name)
	require.Len(t, class.Fields, 3)
	require.Equal(t, "x", class.Fields[0].Name())
	require.True(t, class.Fields[0].Data.Public)
	require.Equal(t, "y", class.Fields[1].Name())
	require.False(t, class.Fields[1].Data.Public)
	require.Equal(t, "length", class.Fields[2].Name())
}

func TestParseNullableAndRefTypeModifiers(t *testing.T) {
	code := "class C { a: i32?; b: i32 ref; }"
	file, diags := parse(t, code)
	require.Empty(t, diags)
	class := file.Statements[0].(*ast.ClassDefinitionAst)
	require.True(t, class.Fields[0].Data.Type.Nullable)
	require.True(t, class.Fields[1].Data.Type.Ref)
}

func TestParseInterfaceWithBases(t *testing.T) {
	code := "interface Sized : Comparable, Printable { func size(): i32; }"
	file, diags := parse(t, code)
	require.Empty(t, diags)
	iface := file.Statements[0].(*ast.InterfaceDefinitionAst)
	require.Equal(t, "Sized", iface.Name)
	require.Len(t, iface.Bases, 2)
	require.Equal(t, "Comparable", iface.Bases[0].String())
	require.Nil(t, iface.Fields[0].Function.Body)
}

func TestParseExtendBlock(t *testing.T) {
	code := "extend Foo : ITest { func test(): string {} }"
	file, diags := parse(t, code)
	require.Empty(t, diags)
	ext := file.Statements[0].(*ast.ExtendDefinitionAst)
	require.Equal(t, "Foo", ext.Target.String())
	require.Len(t, ext.Interfaces, 1)
}

func TestParseIfElseBody(t *testing.T) {
	code := `func test(): void {
		if (a == b) {
			c(1);
		} else {
			c(2);
		}
	}`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	fn := file.Statements[0].(*ast.FunctionDefinitionAst)
	ifStmt := fn.Body.Statements[0].(*ast.IfConditionAst)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
}

func TestParseVariableDefinitionWithInitializer(t *testing.T) {
	code := `func test(): void { var a: i32 := 1 + 2 * 3; }`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	fn := file.Statements[0].(*ast.FunctionDefinitionAst)
	v := fn.Body.Statements[0].(*ast.VariableDefinitionAst)
	require.Equal(t, "a", v.Name)
	bin := v.Value.(*ast.BinaryExpr)
	// "+" binds loosest among the two, so the tree's root is the addition.
	_, isInt := bin.Left.(*ast.IntegerLiteral)
	require.True(t, isInt)
	_, isMul := bin.Right.(*ast.BinaryExpr)
	require.True(t, isMul)
}

func TestParseMemberAccessAndCallChain(t *testing.T) {
	code := `func test(this): void { this.a.test(); }`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	fn := file.Statements[0].(*ast.FunctionDefinitionAst)
	call := fn.Body.Statements[0].(*ast.FunctionCallAst)
	member := call.Callee.(*ast.MemberAccessAst)
	require.Equal(t, "test", member.Field)
	innerMember := member.Target.(*ast.MemberAccessAst)
	require.Equal(t, "a", innerMember.Field)
}

func TestParseAssignment(t *testing.T) {
	code := `func test(this): void { this.a = 5; }`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	fn := file.Statements[0].(*ast.FunctionDefinitionAst)
	assign := fn.Body.Statements[0].(*ast.VariableAssignAst)
	require.IsType(t, &ast.MemberAccessAst{}, assign.Target)
}

func TestParseReferenceExpression(t *testing.T) {
	code := `func test(): void { var a := &b; }`
	file, diags := parse(t, code)
	require.Empty(t, diags)
	fn := file.Statements[0].(*ast.FunctionDefinitionAst)
	v := fn.Body.Statements[0].(*ast.VariableDefinitionAst)
	require.IsType(t, &ast.ReferenceExpr{}, v.Value)
}

func TestSyntaxErrorOnUnexpectedTopLevelToken(t *testing.T) {
	_, diags := parse(t, "123")
	require.NotEmpty(t, diags)
}

func TestSyntaxErrorRecoversToParseFollowingStatements(t *testing.T) {
	file, diags := parse(t, "@@@\nclass A {}\n")
	require.NotEmpty(t, diags)
	require.Len(t, file.Statements, 1)
	require.IsType(t, &ast.ClassDefinitionAst{}, file.Statements[0])
}

// TestParseIsDeterministic is the round-trip/idempotence property from
// spec.md §8: parsing identical source twice must yield structurally
// equivalent ASTs. go-cmp (rather than require.Equal's reflect.DeepEqual)
// gives a readable diff on failure and follows the Span.File pointer by
// value, so two independently-allocated but textually identical
// source.Files still compare equal.
func TestParseIsDeterministic(t *testing.T) {
	code := `
use app.models.User as Model;
interface Sized : Comparable { func size(): i32; }
class Point {
	pub x: i32;
	func length(this): i32 { var total := x + x; if (total == 0) { print(total); } }
}
`
	file1, diags1 := parse(t, code)
	require.Empty(t, diags1)
	file2, diags2 := parse(t, code)
	require.Empty(t, diags2)

	if diff := cmp.Diff(file1, file2); diff != "" {
		t.Fatalf("repeated parse of identical source produced a different AST (-first +second):\n%s", diff)
	}
}
