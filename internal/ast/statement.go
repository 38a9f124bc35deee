package ast

import "kithare/internal/token"

// Statement is implemented by every top-level/block-level AST variant.
type Statement interface {
	Node
	StatementKind() StatementKind
	isStatement()
}

// InvalidStatement is the fallback produced by the statement dispatcher on
// malformed input; it carries a diagnostic message for tooling, though the
// diagnostic itself is recorded in the sink, not here.
type InvalidStatement struct {
	Span
	Message string
}

// Import introduces a module binding: `import a.b.c as z`.
type Import struct {
	Span
	Path     []string
	Relative bool
	Alias    string // "" if absent
}

// Include inlines another source file's statements at this point. Same
// shape as Import, distinct semantics: Include is never aliased.
type Include struct {
	Span
	Path     []string
	Relative bool
}

// FunctionSignature is the argument/return-type shape shared by a named
// Function and a Lambda. FunctionType does not embed it; it carries its own
// argument-type and return-type fields.
type FunctionSignature struct {
	Arguments        []*VariableDeclaration
	VariadicArgument *VariableDeclaration // nil if the call has no variadic tail
	IsReturnTypeRef  bool
	ReturnType       Expression // nil if unspecified
}

// Function is a named function declaration: `def name(args) -> T { ... }`.
type Function struct {
	Span
	FunctionSignature
	IsIncase bool
	IsStatic bool
	NamePoint Expression // identifier, possibly scoped/templated
	Body      []Statement
}

// Class is a class declaration.
type Class struct {
	Span
	IsIncase          bool
	Name              string
	TemplateArguments []string
	BaseType          Expression // nil if no base
	Body              []Statement
}

// Struct is a struct declaration. Same shape as Class.
type Struct struct {
	Span
	IsIncase          bool
	Name              string
	TemplateArguments []string
	BaseType          Expression
	Body              []Statement
}

// Enum declares a closed set of named members with no explicit values.
type Enum struct {
	Span
	Name    string
	Members []string
}

// Alias binds a name to an expression: `alias Name expr` (no '=' token).
type Alias struct {
	Span
	IsIncase bool
	Name     string
	Expr     Expression
}

// IfBranch is an if/elif*/else chain. Conditions and Bodies run in lockstep
// (len(Conditions) == len(Bodies)); ElseBody may be empty.
type IfBranch struct {
	Span
	Conditions []Expression
	Bodies     [][]Statement
	ElseBody   []Statement
}

// WhileLoop is a pre-tested loop: `while cond { ... }`.
type WhileLoop struct {
	Span
	Condition Expression
	Body      []Statement
}

// DoWhileLoop is a post-tested loop: `do { ... } while cond`.
type DoWhileLoop struct {
	Span
	Condition Expression
	Body      []Statement
}

// ForLoop is the C-style three-clause form: `for init, cond, update { ... }`.
type ForLoop struct {
	Span
	Init   Expression
	Cond   Expression
	Update Expression
	Body   []Statement
}

// ForEachLoop iterates Iteratee, binding each of Iterators per step:
// `for x, y in pairs { ... }`.
type ForEachLoop struct {
	Span
	Iterators []Expression
	Iteratee  Expression
	Body      []Statement
}

// Break is a bare `break` statement.
type Break struct {
	Span
}

// Continue is a bare `continue` statement.
type Continue struct {
	Span
}

// Return carries zero or more comma-separated result expressions.
type Return struct {
	Span
	Values []Expression
}

// ExpressionStatement wraps an expression used in statement position,
// recording whether a terminating `;` was present (vs. NEWLINE/EOF/`}`).
type ExpressionStatement struct {
	Span
	Expr      Expression
	Semicolon bool
}

func (*InvalidStatement) isStatement()   {}
func (*Import) isStatement()             {}
func (*Include) isStatement()            {}
func (*Function) isStatement()           {}
func (*Class) isStatement()              {}
func (*Struct) isStatement()             {}
func (*Enum) isStatement()               {}
func (*Alias) isStatement()              {}
func (*IfBranch) isStatement()           {}
func (*WhileLoop) isStatement()          {}
func (*DoWhileLoop) isStatement()        {}
func (*ForLoop) isStatement()            {}
func (*ForEachLoop) isStatement()        {}
func (*Break) isStatement()              {}
func (*Continue) isStatement()           {}
func (*Return) isStatement()             {}
func (*ExpressionStatement) isStatement() {}

func (*InvalidStatement) StatementKind() StatementKind       { return InvalidStatementKind }
func (*Import) StatementKind() StatementKind                { return ImportKind }
func (*Include) StatementKind() StatementKind                { return IncludeKind }
func (*Function) StatementKind() StatementKind               { return FunctionKind }
func (*Class) StatementKind() StatementKind                  { return ClassKind }
func (*Struct) StatementKind() StatementKind                 { return StructKind }
func (*Enum) StatementKind() StatementKind                   { return EnumKind }
func (*Alias) StatementKind() StatementKind                  { return AliasKind }
func (*IfBranch) StatementKind() StatementKind               { return IfKind }
func (*WhileLoop) StatementKind() StatementKind              { return WhileKind }
func (*DoWhileLoop) StatementKind() StatementKind            { return DoWhileKind }
func (*ForLoop) StatementKind() StatementKind                { return ForKind }
func (*ForEachLoop) StatementKind() StatementKind            { return ForEachKind }
func (*Break) StatementKind() StatementKind                  { return BreakKind }
func (*Continue) StatementKind() StatementKind               { return ContinueKind }
func (*Return) StatementKind() StatementKind                 { return ReturnKind }
func (*ExpressionStatement) StatementKind() StatementKind    { return ExpressionStatementKind }

// NewInvalidStatement builds the fallback node the parser returns when a
// statement cannot be recognized; it still carries a span so position
// monotonicity holds for its (absent) children.
func NewInvalidStatement(begin, end token.Position, message string) *InvalidStatement {
	return &InvalidStatement{Span: NewSpan(begin, end), Message: message}
}
