package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a parsed source (a statement sequence) back into Kithare
// surface syntax. It is the inverse of parsing up to insignificant
// whitespace, used for diagnostics and round-trip tests.
func Print(stmts []Statement) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func printBlock(body []Statement) string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, s := range body {
		b.WriteString("    " + strings.ReplaceAll(s.String(), "\n", "\n    "))
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

func printPath(path []string, relative bool) string {
	prefix := ""
	if relative {
		prefix = "."
	}
	return prefix + strings.Join(path, ".")
}

func (s *InvalidStatement) String() string { return fmt.Sprintf("<invalid: %s>", s.Message) }

func (s *Import) String() string {
	out := "import " + printPath(s.Path, s.Relative)
	if s.Alias != "" {
		out += " as " + s.Alias
	}
	return out
}

func (s *Include) String() string {
	return "include " + printPath(s.Path, s.Relative)
}

func printSignature(sig FunctionSignature) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, arg := range sig.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	if sig.VariadicArgument != nil {
		if len(sig.Arguments) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("..." + sig.VariadicArgument.String())
	}
	b.WriteByte(')')
	if sig.ReturnType != nil {
		b.WriteString(" -> ")
		if sig.IsReturnTypeRef {
			b.WriteString("ref ")
		}
		b.WriteString(sig.ReturnType.String())
	}
	return b.String()
}

func (s *Function) String() string {
	var b strings.Builder
	if s.IsIncase {
		b.WriteString("incase ")
	}
	if s.IsStatic {
		b.WriteString("static ")
	}
	b.WriteString("def ")
	b.WriteString(s.NamePoint.String())
	b.WriteString(printSignature(s.FunctionSignature))
	b.WriteByte(' ')
	b.WriteString(printBlock(s.Body))
	return b.String()
}

func printTemplateArguments(names []string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return "!" + names[0]
	}
	return "!(" + strings.Join(names, ", ") + ")"
}

func (s *Class) String() string {
	var b strings.Builder
	if s.IsIncase {
		b.WriteString("incase ")
	}
	b.WriteString("class ")
	b.WriteString(s.Name)
	b.WriteString(printTemplateArguments(s.TemplateArguments))
	if s.BaseType != nil {
		b.WriteString("(" + s.BaseType.String() + ")")
	}
	b.WriteByte(' ')
	b.WriteString(printBlock(s.Body))
	return b.String()
}

func (s *Struct) String() string {
	var b strings.Builder
	if s.IsIncase {
		b.WriteString("incase ")
	}
	b.WriteString("struct ")
	b.WriteString(s.Name)
	b.WriteString(printTemplateArguments(s.TemplateArguments))
	if s.BaseType != nil {
		b.WriteString("(" + s.BaseType.String() + ")")
	}
	b.WriteByte(' ')
	b.WriteString(printBlock(s.Body))
	return b.String()
}

func (s *Enum) String() string {
	return fmt.Sprintf("enum %s { %s }", s.Name, strings.Join(s.Members, ", "))
}

func (s *Alias) String() string {
	prefix := ""
	if s.IsIncase {
		prefix = "incase "
	}
	return fmt.Sprintf("%salias %s %s", prefix, s.Name, s.Expr.String())
}

func (s *IfBranch) String() string {
	var b strings.Builder
	for i, cond := range s.Conditions {
		if i == 0 {
			b.WriteString("if ")
		} else {
			b.WriteString(" elif ")
		}
		b.WriteString(cond.String())
		b.WriteByte(' ')
		b.WriteString(printBlock(s.Bodies[i]))
	}
	if s.ElseBody != nil {
		b.WriteString(" else ")
		b.WriteString(printBlock(s.ElseBody))
	}
	return b.String()
}

func (s *WhileLoop) String() string {
	return fmt.Sprintf("while %s %s", s.Condition.String(), printBlock(s.Body))
}

func (s *DoWhileLoop) String() string {
	return fmt.Sprintf("do %s while %s", printBlock(s.Body), s.Condition.String())
}

func (s *ForLoop) String() string {
	return fmt.Sprintf("for %s, %s, %s %s", s.Init.String(), s.Cond.String(), s.Update.String(), printBlock(s.Body))
}

func (s *ForEachLoop) String() string {
	names := make([]string, len(s.Iterators))
	for i, it := range s.Iterators {
		names[i] = it.String()
	}
	return fmt.Sprintf("for %s in %s %s", strings.Join(names, ", "), s.Iteratee.String(), printBlock(s.Body))
}

func (s *Break) String() string    { return "break" }
func (s *Continue) String() string { return "continue" }

func (s *Return) String() string {
	if len(s.Values) == 0 {
		return "return"
	}
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = v.String()
	}
	return "return " + strings.Join(parts, ", ")
}

func (s *ExpressionStatement) String() string {
	if s.Semicolon {
		return s.Expr.String() + ";"
	}
	return s.Expr.String()
}

func (e *InvalidExpression) String() string { return fmt.Sprintf("<invalid: %s>", e.Message) }

func (e *Identifier) String() string { return e.Name }

func (e *Tuple) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (e *Array) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e *Dict) String() string {
	parts := make([]string, len(e.Keys))
	for i := range e.Keys {
		parts[i] = e.Keys[i].String() + ": " + e.Values[i].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (e *Scope) String() string {
	return e.Value.String() + "." + strings.Join(e.Names, ".")
}

func (e *Templatize) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	if _, ok := e.Arguments[0].(*Identifier); ok && len(parts) == 1 {
		return e.Value.String() + "!" + parts[0]
	}
	return e.Value.String() + "!(" + strings.Join(parts, ", ") + ")"
}

func (e *Index) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return e.Indexee.String() + "[" + strings.Join(parts, ", ") + "]"
}

func (e *Call) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

func (e *Unary) String() string {
	if e.Op.IsPostfix() {
		return fmt.Sprintf("(%s%s)", e.Operand.String(), e.Op.String())
	}
	if e.Op == UnaryNot {
		return fmt.Sprintf("(not %s)", e.Operand.String())
	}
	return fmt.Sprintf("(%s%s)", e.Op.String(), e.Operand.String())
}

func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op.String(), e.Right.String())
}

func (e *Ternary) String() string {
	return fmt.Sprintf("(%s if %s else %s)", e.Value.String(), e.Condition.String(), e.Otherwise.String())
}

func (e *Comparison) String() string {
	var b strings.Builder
	b.WriteString(e.Operands[0].String())
	for i, op := range e.Operations {
		b.WriteString(" " + string(op) + " ")
		b.WriteString(e.Operands[i+1].String())
	}
	return b.String()
}

func (e *VariableDeclaration) String() string {
	var b strings.Builder
	if e.IsStatic {
		b.WriteString("static ")
	}
	if e.IsWild {
		b.WriteString("wild ")
	}
	if e.IsRef {
		b.WriteString("ref ")
	}
	b.WriteString(e.Name)
	b.WriteByte(':')
	if e.Type != nil {
		b.WriteByte(' ')
		b.WriteString(e.Type.String())
	}
	if e.Initializer != nil {
		b.WriteString(" = ")
		b.WriteString(e.Initializer.String())
	}
	return b.String()
}

func (e *Lambda) String() string {
	return "def" + printSignature(e.FunctionSignature) + " " + printBlock(e.Body)
}

func (e *FunctionType) String() string {
	var b strings.Builder
	b.WriteString("def!(")
	for i, t := range e.ArgumentTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		if i < len(e.ArgumentRefs) && e.ArgumentRefs[i] {
			b.WriteString("ref ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	if e.ReturnType != nil {
		b.WriteString(" -> ")
		if e.IsReturnTypeRef {
			b.WriteString("ref ")
		}
		b.WriteString(e.ReturnType.String())
	}
	return b.String()
}

func (e *CharLiteral) String() string { return "'" + escapeRune(e.Value) + "'" }

func (e *StringLiteral) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range e.Value {
		b.WriteString(escapeRune(r))
	}
	b.WriteByte('"')
	return b.String()
}

func (e *BufferLiteral) String() string {
	var b strings.Builder
	b.WriteString(`b"`)
	for _, c := range e.Value {
		b.WriteString(escapeRune(rune(c)))
	}
	b.WriteByte('"')
	return b.String()
}

func (e *ByteLiteral) String() string { return strconv.Itoa(int(e.Value)) + "ub" }

func (e *Integer) String() string  { return strconv.FormatInt(int64(e.Value), 10) }
func (e *UInteger) String() string { return strconv.FormatUint(uint64(e.Value), 10) + "u" }
func (e *Float) String() string    { return strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "f" }
func (e *Double) String() string   { return formatDouble(e.Value) }
func (e *IFloat) String() string   { return strconv.FormatFloat(float64(e.Value), 'g', -1, 32) + "if" }
func (e *IDouble) String() string  { return strconv.FormatFloat(e.Value, 'g', -1, 64) + "i" }

// formatDouble prints v so that it lexes back as a DOUBLE: an integral value
// gets a ".0", since a bare "3" would lex as an INT.
func formatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

func escapeRune(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\\':
		return `\\`
	case '"':
		return `\"`
	case '\'':
		return `\'`
	default:
		return string(r)
	}
}
