package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kithare/internal/ast"
	"kithare/internal/diag"
)

func parse(t *testing.T, src string) ([]ast.Statement, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	stmts := Parse(src, sink)
	return stmts, sink
}

func parseClean(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, sink := parse(t, src)
	require.True(t, sink.Empty(), "unexpected diagnostics: %+v", sink.Diagnostics())
	return stmts
}

func TestParseImport(t *testing.T) {
	stmts := parseClean(t, "import std.io as io\n")
	require.Len(t, stmts, 1)
	imp := stmts[0].(*ast.Import)
	assert.Equal(t, []string{"std", "io"}, imp.Path)
	assert.Equal(t, "io", imp.Alias)
	assert.False(t, imp.Relative)
}

func TestParseRelativeInclude(t *testing.T) {
	stmts := parseClean(t, "include .util\n")
	require.Len(t, stmts, 1)
	inc := stmts[0].(*ast.Include)
	assert.True(t, inc.Relative)
	assert.Equal(t, []string{"util"}, inc.Path)
}

func TestIncludeCannotBeAliased(t *testing.T) {
	_, sink := parse(t, "include std.io as io\n")
	assert.False(t, sink.Empty())
}

func TestParseVariableDeclarationTypeAndInit(t *testing.T) {
	stmts := parseClean(t, "x: int = 3\n")
	require.Len(t, stmts, 1)
	es := stmts[0].(*ast.ExpressionStatement)
	vd := es.Expr.(*ast.VariableDeclaration)
	assert.Equal(t, "x", vd.Name)
	assert.Equal(t, "int", vd.Type.(*ast.Identifier).Name)
	assert.Equal(t, int32(3), vd.Initializer.(*ast.Integer).Value)
}

func TestParseVariableDeclarationMissingBoth(t *testing.T) {
	_, sink := parse(t, "x:\n")
	assert.False(t, sink.Empty())
}

func TestIdentifierVsDeclarationDisambiguation(t *testing.T) {
	stmts := parseClean(t, "x\n")
	es := stmts[0].(*ast.ExpressionStatement)
	_, ok := es.Expr.(*ast.Identifier)
	assert.True(t, ok)
}

func TestParseBinaryPrecedence(t *testing.T) {
	stmts := parseClean(t, "a + b * c\n")
	es := stmts[0].(*ast.ExpressionStatement)
	bin := es.Expr.(*ast.Binary)
	assert.Equal(t, ast.Add, bin.Op)
	assert.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, ast.Mul, rhs.Op)
}

func TestParsePowRightAssociative(t *testing.T) {
	stmts := parseClean(t, "a ^ b ^ c\n")
	es := stmts[0].(*ast.ExpressionStatement)
	bin := es.Expr.(*ast.Binary)
	assert.Equal(t, ast.Pow, bin.Op)
	assert.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, ast.Pow, rhs.Op)
}

func TestParsePowDoubleStarSpelling(t *testing.T) {
	stmts := parseClean(t, "a ** b\n")
	es := stmts[0].(*ast.ExpressionStatement)
	bin := es.Expr.(*ast.Binary)
	assert.Equal(t, ast.Pow, bin.Op)
}

func TestParseComparisonChain(t *testing.T) {
	stmts := parseClean(t, "a < b <= c\n")
	es := stmts[0].(*ast.ExpressionStatement)
	cmp := es.Expr.(*ast.Comparison)
	require.Len(t, cmp.Operands, 3)
	require.Len(t, cmp.Operations, 2)
}

func TestParseTernary(t *testing.T) {
	stmts := parseClean(t, "a if cond else b\n")
	es := stmts[0].(*ast.ExpressionStatement)
	tern := es.Expr.(*ast.Ternary)
	assert.Equal(t, "a", tern.Value.(*ast.Identifier).Name)
	assert.Equal(t, "b", tern.Otherwise.(*ast.Identifier).Name)
}

func TestParseNotBindsLooseOfComparison(t *testing.T) {
	stmts := parseClean(t, "not a == b\n")
	es := stmts[0].(*ast.ExpressionStatement)
	un := es.Expr.(*ast.Unary)
	assert.Equal(t, ast.UnaryNot, un.Op)
	_, ok := un.Operand.(*ast.Comparison)
	assert.True(t, ok, "expected `not` to wrap the whole comparison")
}

func TestParseNotNestedUnderUnaryMinus(t *testing.T) {
	stmts := parseClean(t, "-not a\n")
	es := stmts[0].(*ast.ExpressionStatement)
	outer := es.Expr.(*ast.Unary)
	assert.Equal(t, ast.UnaryMinus, outer.Op)
	inner := outer.Operand.(*ast.Unary)
	assert.Equal(t, ast.UnaryNot, inner.Op)
}

func TestParsePostIncrementDistinctFromPreIncrement(t *testing.T) {
	stmts := parseClean(t, "++a\n")
	es := stmts[0].(*ast.ExpressionStatement)
	un := es.Expr.(*ast.Unary)
	assert.Equal(t, ast.PreIncrement, un.Op)

	stmts2 := parseClean(t, "a++\n")
	es2 := stmts2[0].(*ast.ExpressionStatement)
	un2 := es2.Expr.(*ast.Unary)
	assert.Equal(t, ast.PostIncrement, un2.Op)
}

func TestParseCallAndIndex(t *testing.T) {
	stmts := parseClean(t, "f(1, 2)[0]\n")
	es := stmts[0].(*ast.ExpressionStatement)
	idx := es.Expr.(*ast.Index)
	call := idx.Indexee.(*ast.Call)
	assert.Equal(t, "f", call.Callee.(*ast.Identifier).Name)
	require.Len(t, call.Arguments, 2)
}

func TestParseScopeChain(t *testing.T) {
	stmts := parseClean(t, "std.io.read\n")
	es := stmts[0].(*ast.ExpressionStatement)
	scope := es.Expr.(*ast.Scope)
	assert.Equal(t, []string{"io", "read"}, scope.Names)
	assert.Equal(t, "std", scope.Value.(*ast.Identifier).Name)
}

func TestParseTemplatizeSingleArg(t *testing.T) {
	stmts := parseClean(t, "Array!int\n")
	es := stmts[0].(*ast.ExpressionStatement)
	tpl := es.Expr.(*ast.Templatize)
	require.Len(t, tpl.Arguments, 1)
	assert.Equal(t, "int", tpl.Arguments[0].(*ast.Identifier).Name)
}

func TestParseTemplatizeArgList(t *testing.T) {
	stmts := parseClean(t, "Map!(int, string)\n")
	es := stmts[0].(*ast.ExpressionStatement)
	tpl := es.Expr.(*ast.Templatize)
	require.Len(t, tpl.Arguments, 2)
}

func TestParseParenGroupingUnwraps(t *testing.T) {
	stmts := parseClean(t, "(a)\n")
	es := stmts[0].(*ast.ExpressionStatement)
	_, ok := es.Expr.(*ast.Identifier)
	assert.True(t, ok)
}

func TestParseEmptyTuple(t *testing.T) {
	stmts := parseClean(t, "()\n")
	es := stmts[0].(*ast.ExpressionStatement)
	tup := es.Expr.(*ast.Tuple)
	assert.Len(t, tup.Values, 0)
}

func TestParseTwoElementTuple(t *testing.T) {
	stmts := parseClean(t, "(a, b)\n")
	es := stmts[0].(*ast.ExpressionStatement)
	tup := es.Expr.(*ast.Tuple)
	require.Len(t, tup.Values, 2)
}

func TestParseArrayAndDict(t *testing.T) {
	stmts := parseClean(t, "[1, 2, 3]\n")
	arr := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.Array)
	require.Len(t, arr.Values, 3)

	stmts2 := parseClean(t, "{a: 1, b: 2}\n")
	dict := stmts2[0].(*ast.ExpressionStatement).Expr.(*ast.Dict)
	require.Len(t, dict.Keys, 2)
	require.Len(t, dict.Values, 2)
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts := parseClean(t, "def add(a: int, b: int) -> int {\n    return a + b\n}\n")
	require.Len(t, stmts, 1)
	fn := stmts[0].(*ast.Function)
	assert.Equal(t, "add", fn.NamePoint.(*ast.Identifier).Name)
	require.Len(t, fn.Arguments, 2)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ast.Return)
	assert.True(t, ok)
}

func TestParseFunctionVariadicArgument(t *testing.T) {
	stmts := parseClean(t, "def f(a: int, ...rest: int) { }\n")
	fn := stmts[0].(*ast.Function)
	require.Len(t, fn.Arguments, 1)
	require.NotNil(t, fn.VariadicArgument)
	assert.Equal(t, "rest", fn.VariadicArgument.Name)
}

func TestParseLambdaVsFunctionType(t *testing.T) {
	stmts := parseClean(t, "f: def!(int) -> int = def(x: int) -> int { return x }\n")
	es := stmts[0].(*ast.ExpressionStatement)
	vd := es.Expr.(*ast.VariableDeclaration)
	_, isFT := vd.Type.(*ast.FunctionType)
	assert.True(t, isFT, "expected def! to parse as a FunctionType")
	_, isLambda := vd.Initializer.(*ast.Lambda)
	assert.True(t, isLambda, "expected bare def(...) to parse as a Lambda")
}

func TestParseClassWithBaseAndTemplate(t *testing.T) {
	stmts := parseClean(t, "class Box!T(Container) {\n}\n")
	cls := stmts[0].(*ast.Class)
	assert.Equal(t, "Box", cls.Name)
	assert.Equal(t, []string{"T"}, cls.TemplateArguments)
	require.NotNil(t, cls.BaseType)
}

func TestParseStructBody(t *testing.T) {
	stmts := parseClean(t, "struct Point {\n    x: int\n    y: int\n}\n")
	st := stmts[0].(*ast.Struct)
	require.Len(t, st.Body, 2)
}

func TestParseEnum(t *testing.T) {
	stmts := parseClean(t, "enum Color { Red, Green, Blue }\n")
	en := stmts[0].(*ast.Enum)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, en.Members)
}

func TestParseAliasHasNoEqualsToken(t *testing.T) {
	stmts := parseClean(t, "alias Number int\n")
	al := stmts[0].(*ast.Alias)
	assert.Equal(t, "Number", al.Name)
	assert.Equal(t, "int", al.Expr.(*ast.Identifier).Name)
}

func TestParseIncaseStaticSpecifiers(t *testing.T) {
	stmts := parseClean(t, "incase def f() { }\n")
	fn := stmts[0].(*ast.Function)
	assert.True(t, fn.IsIncase)

	stmts2 := parseClean(t, "static x: int = 1\n")
	vd := stmts2[0].(*ast.ExpressionStatement).Expr.(*ast.VariableDeclaration)
	assert.True(t, vd.IsStatic)
}

func TestParseIfElifElse(t *testing.T) {
	stmts := parseClean(t, "if a { return 1 } elif b { return 2 } else { return 3 }\n")
	ifb := stmts[0].(*ast.IfBranch)
	require.Len(t, ifb.Conditions, 2)
	require.Len(t, ifb.Bodies, 2)
	require.NotNil(t, ifb.ElseBody)
}

func TestParseWhileAndDoWhile(t *testing.T) {
	stmts := parseClean(t, "while a { break }\n")
	wl := stmts[0].(*ast.WhileLoop)
	require.Len(t, wl.Body, 1)

	stmts2 := parseClean(t, "do { continue } while a\n")
	dw := stmts2[0].(*ast.DoWhileLoop)
	require.Len(t, dw.Body, 1)
}

func TestParseForCStyle(t *testing.T) {
	stmts := parseClean(t, "for i: int = 0, i < 10, i++ { }\n")
	fl := stmts[0].(*ast.ForLoop)
	require.NotNil(t, fl.Init)
	require.NotNil(t, fl.Cond)
	require.NotNil(t, fl.Update)
}

func TestParseForEachSingleIterator(t *testing.T) {
	stmts := parseClean(t, "for x in items { }\n")
	fe := stmts[0].(*ast.ForEachLoop)
	require.Len(t, fe.Iterators, 1)
}

func TestParseForEachMultiIterator(t *testing.T) {
	stmts := parseClean(t, "for k, v in pairs { }\n")
	fe := stmts[0].(*ast.ForEachLoop)
	require.Len(t, fe.Iterators, 2)
}

func TestParseForWrongClauseCountDiagnoses(t *testing.T) {
	_, sink := parse(t, "for i: int = 0, i < 10 { }\n")
	assert.False(t, sink.Empty())
}

func TestParseReturnMultipleValues(t *testing.T) {
	stmts := parseClean(t, "def f() { return 1, 2 }\n")
	fn := stmts[0].(*ast.Function)
	ret := fn.Body[0].(*ast.Return)
	require.Len(t, ret.Values, 2)
}

func TestParseReturnBare(t *testing.T) {
	stmts := parseClean(t, "def f() { return }\n")
	fn := stmts[0].(*ast.Function)
	ret := fn.Body[0].(*ast.Return)
	assert.Len(t, ret.Values, 0)
}

func TestFilterTypeRejectsValueOnlyAtoms(t *testing.T) {
	_, sink := parse(t, "x: [1, 2]\n")
	assert.False(t, sink.Empty())
}

func TestFilterTypeAllowsIndexingForArraySizing(t *testing.T) {
	stmts := parseClean(t, "x: int[5]\n")
	es := stmts[0].(*ast.ExpressionStatement)
	vd := es.Expr.(*ast.VariableDeclaration)
	_, ok := vd.Type.(*ast.Index)
	assert.True(t, ok)
}

func TestErrorRecoveryContinuesAfterBadStatement(t *testing.T) {
	// `try` has no statement production of its own; it falls through to the
	// expression-statement path, which reports and recovers via its own
	// unexpected-token handling rather than a dedicated InvalidStatement.
	stmts, sink := parse(t, "try\nx: int = 1\n")
	assert.False(t, sink.Empty())
	require.Len(t, stmts, 2)
	_, ok := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.InvalidExpression)
	assert.True(t, ok)
	vd := stmts[1].(*ast.ExpressionStatement).Expr.(*ast.VariableDeclaration)
	assert.Equal(t, "x", vd.Name)
}

func TestUnambiguousStatementIllegalKeywordsStillInvalidate(t *testing.T) {
	// Unlike try/public/private/in, as/elif/else can never start a
	// statement (they belong to import's alias clause and if's chain), so
	// they keep the dedicated diagnostic + InvalidStatement path.
	stmts, sink := parse(t, "elif\nx: int = 1\n")
	assert.False(t, sink.Empty())
	require.Len(t, stmts, 2)
	_, ok := stmts[0].(*ast.InvalidStatement)
	assert.True(t, ok)
}

func TestPrintRoundTripsSimpleProgram(t *testing.T) {
	stmts := parseClean(t, "def add(a: int, b: int) -> int {\n    return a + b\n}\n")
	printed := ast.Print(stmts)
	assert.Contains(t, printed, "def add(a: int, b: int) -> int")
	assert.Contains(t, printed, "return (a + b)")
}
