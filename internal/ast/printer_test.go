package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kithare/internal/token"
)

func TestPrintIdentifier(t *testing.T) {
	id := &Identifier{Name: "balance"}
	assert.Equal(t, "balance", id.String())
	assert.Equal(t, IdentifierKind, id.ExpressionKind())
}

func TestPrintBinary(t *testing.T) {
	b := &Binary{
		Op:    Add,
		Left:  &Identifier{Name: "a"},
		Right: &Identifier{Name: "b"},
	}
	assert.Equal(t, "(a + b)", b.String())
	assert.Equal(t, BinaryExprKind, b.ExpressionKind())
}

func TestPrintComparisonChain(t *testing.T) {
	c := &Comparison{
		Operations: []token.Operator{token.Lt, token.LtEq},
		Operands: []Expression{
			&Identifier{Name: "a"},
			&Identifier{Name: "b"},
			&Identifier{Name: "c"},
		},
	}
	assert.Equal(t, "a < b <= c", c.String())
	assert.Len(t, c.Operands, len(c.Operations)+1)
}

func TestPrintVariableDeclaration(t *testing.T) {
	vd := &VariableDeclaration{
		Name:        "x",
		Type:        &Identifier{Name: "int"},
		Initializer: &Integer{Value: 3},
	}
	assert.Equal(t, "x: int = 3", vd.String())
	assert.Equal(t, VariableDeclarationKind, vd.ExpressionKind())
}

func TestPrintIfStatement(t *testing.T) {
	stmt := &IfBranch{
		Conditions: []Expression{&Identifier{Name: "cond"}},
		Bodies: [][]Statement{
			{&Return{Values: []Expression{&Integer{Value: 1}}}},
		},
		ElseBody: []Statement{
			&Return{Values: []Expression{&Integer{Value: 2}}},
		},
	}
	assert.Contains(t, stmt.String(), "if cond {")
	assert.Contains(t, stmt.String(), "return 1")
	assert.Contains(t, stmt.String(), "} else {")
	assert.Contains(t, stmt.String(), "return 2")
}

func TestPrintImportWithAlias(t *testing.T) {
	imp := &Import{Path: []string{"a", "b", "c"}, Alias: "z"}
	assert.Equal(t, "import a.b.c as z", imp.String())
}

func TestPrintFunctionType(t *testing.T) {
	ft := &FunctionType{
		ArgumentTypes:   []Expression{&Identifier{Name: "int"}, &Identifier{Name: "float"}},
		ArgumentRefs:    []bool{false, true},
		IsReturnTypeRef: true,
		ReturnType:      &Identifier{Name: "double"},
	}
	assert.Equal(t, "def!(int, ref float) -> ref double", ft.String())
}

func TestPositionMonotonicity(t *testing.T) {
	inner := &Identifier{Span: NewSpan(5, 6), Name: "a"}
	outer := &Unary{Span: NewSpan(4, 6), Op: UnaryMinus, Operand: inner}
	assert.LessOrEqual(t, outer.NodePos(), inner.NodePos())
	assert.LessOrEqual(t, inner.NodeEndPos(), outer.NodeEndPos())
}

func TestStatementKindClosedSet(t *testing.T) {
	var stmts []Statement = []Statement{
		&Import{}, &Include{}, &Function{}, &Class{}, &Struct{}, &Enum{}, &Alias{},
		&IfBranch{}, &WhileLoop{}, &DoWhileLoop{}, &ForLoop{}, &ForEachLoop{},
		&Break{}, &Continue{}, &Return{}, &ExpressionStatement{}, &InvalidStatement{},
	}
	seen := map[StatementKind]bool{}
	for _, s := range stmts {
		seen[s.StatementKind()] = true
	}
	assert.Len(t, seen, len(stmts))
}
