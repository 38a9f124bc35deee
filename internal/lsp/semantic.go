package lsp

import (
	"kithare/internal/ast"
)

// SemanticToken is one LSP semantic token entry, position already resolved
// to 0-based line/character.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const modDeclaration = 1 << 0

func collectSemanticTokens(stmts []ast.Statement, idx *lineIndex) []SemanticToken {
	w := &tokenWalker{idx: idx}
	for _, s := range stmts {
		w.statement(s)
	}
	return w.tokens
}

type tokenWalker struct {
	idx    *lineIndex
	tokens []SemanticToken
}

func (w *tokenWalker) emit(pos, endPos ast.Node, tokenType string, modifiers int) {
	length := int(endPos.NodeEndPos()) - int(pos.NodePos())
	if length <= 0 {
		length = 1
	}
	line, char := w.idx.Resolve(pos.NodePos())
	w.tokens = append(w.tokens, SemanticToken{
		Line: line, StartChar: char, Length: uint32(length),
		TokenType: indexOf(tokenType, SemanticTokenTypes), TokenModifiers: modifiers,
	})
}

func (w *tokenWalker) emitName(node ast.Node, name, tokenType string, modifiers int) {
	if name == "" {
		return
	}
	line, char := w.idx.Resolve(node.NodePos())
	w.tokens = append(w.tokens, SemanticToken{
		Line: line, StartChar: char, Length: uint32(len(name)),
		TokenType: indexOf(tokenType, SemanticTokenTypes), TokenModifiers: modifiers,
	})
}

func (w *tokenWalker) statement(s ast.Statement) {
	switch v := s.(type) {
	case *ast.Import:
		for _, seg := range v.Path {
			w.emitName(v, seg, "namespace", 0)
		}
	case *ast.Include:
		for _, seg := range v.Path {
			w.emitName(v, seg, "namespace", 0)
		}
	case *ast.Function:
		w.expression(v.NamePoint)
		for _, arg := range v.Arguments {
			w.variableDeclaration(arg)
		}
		if v.VariadicArgument != nil {
			w.variableDeclaration(v.VariadicArgument)
		}
		if v.ReturnType != nil {
			w.expression(v.ReturnType)
		}
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.Class:
		w.emitName(v, v.Name, "type", modDeclaration)
		if v.BaseType != nil {
			w.expression(v.BaseType)
		}
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.Struct:
		w.emitName(v, v.Name, "type", modDeclaration)
		if v.BaseType != nil {
			w.expression(v.BaseType)
		}
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.Enum:
		w.emitName(v, v.Name, "type", modDeclaration)
	case *ast.Alias:
		w.emitName(v, v.Name, "type", modDeclaration)
		w.expression(v.Expr)
	case *ast.IfBranch:
		for _, c := range v.Conditions {
			w.expression(c)
		}
		for _, body := range v.Bodies {
			for _, stmt := range body {
				w.statement(stmt)
			}
		}
		for _, stmt := range v.ElseBody {
			w.statement(stmt)
		}
	case *ast.WhileLoop:
		w.expression(v.Condition)
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.DoWhileLoop:
		w.expression(v.Condition)
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.ForLoop:
		w.expression(v.Init)
		w.expression(v.Cond)
		w.expression(v.Update)
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.ForEachLoop:
		for _, it := range v.Iterators {
			w.expression(it)
		}
		w.expression(v.Iteratee)
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.Return:
		for _, val := range v.Values {
			w.expression(val)
		}
	case *ast.ExpressionStatement:
		w.expression(v.Expr)
	}
}

func (w *tokenWalker) variableDeclaration(vd *ast.VariableDeclaration) {
	if vd == nil {
		return
	}
	w.emitName(vd, vd.Name, "parameter", 0)
	if vd.Type != nil {
		w.expression(vd.Type)
	}
	if vd.Initializer != nil {
		w.expression(vd.Initializer)
	}
}

func (w *tokenWalker) expression(e ast.Expression) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *ast.Identifier:
		w.emit(v, v, "variable", 0)
	case *ast.Tuple:
		for _, val := range v.Values {
			w.expression(val)
		}
	case *ast.Array:
		for _, val := range v.Values {
			w.expression(val)
		}
	case *ast.Dict:
		for i := range v.Keys {
			w.expression(v.Keys[i])
			w.expression(v.Values[i])
		}
	case *ast.Scope:
		w.expression(v.Value)
		for _, name := range v.Names {
			w.emitName(v, name, "property", 0)
		}
	case *ast.Templatize:
		w.expression(v.Value)
		for _, arg := range v.Arguments {
			w.expression(arg)
		}
	case *ast.Index:
		w.expression(v.Indexee)
		for _, arg := range v.Arguments {
			w.expression(arg)
		}
	case *ast.Call:
		w.expression(v.Callee)
		for _, arg := range v.Arguments {
			w.expression(arg)
		}
	case *ast.Unary:
		w.expression(v.Operand)
	case *ast.Binary:
		w.expression(v.Left)
		w.expression(v.Right)
	case *ast.Ternary:
		w.expression(v.Value)
		w.expression(v.Condition)
		w.expression(v.Otherwise)
	case *ast.Comparison:
		for _, op := range v.Operands {
			w.expression(op)
		}
	case *ast.VariableDeclaration:
		w.variableDeclaration(v)
	case *ast.Lambda:
		for _, arg := range v.Arguments {
			w.variableDeclaration(arg)
		}
		if v.VariadicArgument != nil {
			w.variableDeclaration(v.VariadicArgument)
		}
		if v.ReturnType != nil {
			w.expression(v.ReturnType)
		}
		for _, stmt := range v.Body {
			w.statement(stmt)
		}
	case *ast.FunctionType:
		for _, t := range v.ArgumentTypes {
			w.expression(t)
		}
		if v.ReturnType != nil {
			w.expression(v.ReturnType)
		}
	case *ast.Integer:
		w.emit(v, v, "number", 0)
	case *ast.UInteger:
		w.emit(v, v, "number", 0)
	case *ast.Float, *ast.Double, *ast.IFloat, *ast.IDouble, *ast.ByteLiteral:
		w.emit(e, e, "number", 0)
	}
}

// indexOf returns the index of target within list, or 0 if absent.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
