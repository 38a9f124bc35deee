package parser

import (
	"kithare/internal/ast"
	"kithare/internal/token"
)

// exprCtx threads the two flags that change shape at every precedence level:
// filterType restricts the grammar to the type-expression subset (disabling
// assignment, ternary, logical/comparison operators, and every value-only
// atom), and ignoreNewline controls whether a NEWLINE may appear inside the
// expression without terminating it (true inside parens/brackets/argument
// lists and after most leading keywords, false at statement level).
type exprCtx struct {
	filterType    bool
	ignoreNewline bool
}

var compoundAssignToBinaryOp = map[token.Operator]ast.BinaryOp{
	token.Assign:       ast.Assign,
	token.AddAssign:    ast.AddAssign,
	token.SubAssign:    ast.SubAssign,
	token.MulAssign:    ast.MulAssign,
	token.DivAssign:    ast.DivAssign,
	token.ModAssign:    ast.ModAssign,
	token.PowAssign:    ast.PowAssign,
	token.DotAssign:    ast.DotAssign,
	token.BitAndAssign: ast.BitAndAssign,
	token.BitOrAssign:  ast.BitOrAssign,
	token.BitXorAssign: ast.BitXorAssign,
	token.ShlAssign:    ast.ShlAssign,
	token.ShrAssign:    ast.ShrAssign,
}

// Level 1: assignment, right-associative. Disabled under filter_type.
func (p *Parser) parseAssignment(ctx exprCtx) ast.Expression {
	left := p.parseTernary(ctx)
	if ctx.filterType {
		return left
	}
	tok := p.peek(ctx.ignoreNewline)
	if tok.Kind != token.OPERATOR || !token.IsCompoundAssign(tok.Operator) {
		return left
	}
	p.advance(ctx.ignoreNewline)
	right := p.parseAssignment(ctx)
	return &ast.Binary{
		Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()),
		Op:   compoundAssignToBinaryOp[tok.Operator], Left: left, Right: right,
	}
}

// Level 2: `value if condition else otherwise`, right-associative via the
// recursive call for its own otherwise branch. Disabled under filter_type.
func (p *Parser) parseTernary(ctx exprCtx) ast.Expression {
	value := p.parseOr(ctx)
	if ctx.filterType {
		return value
	}
	if !p.checkKeyword(token.If, ctx.ignoreNewline) {
		return value
	}
	p.advance(ctx.ignoreNewline)
	cond := p.parseOr(ctx)
	p.expectKeyword(token.Else, ctx.ignoreNewline)
	otherwise := p.parseTernary(ctx)
	return &ast.Ternary{
		Span: ast.NewSpan(value.NodePos(), otherwise.NodeEndPos()),
		Value: value, Condition: cond, Otherwise: otherwise,
	}
}

// Level 3: logical or. Disabled under filter_type.
func (p *Parser) parseOr(ctx exprCtx) ast.Expression {
	left := p.parseXor(ctx)
	if ctx.filterType {
		return left
	}
	for p.checkOperator(token.Or, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseXor(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.LogicalOr, Left: left, Right: right}
	}
	return left
}

// Level 4: logical xor. Disabled under filter_type.
func (p *Parser) parseXor(ctx exprCtx) ast.Expression {
	left := p.parseAnd(ctx)
	if ctx.filterType {
		return left
	}
	for p.checkOperator(token.Xor, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseAnd(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.LogicalXor, Left: left, Right: right}
	}
	return left
}

// Level 5: logical and. Disabled under filter_type.
func (p *Parser) parseAnd(ctx exprCtx) ast.Expression {
	left := p.parseNot(ctx)
	if ctx.filterType {
		return left
	}
	for p.checkOperator(token.And, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseNot(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.LogicalAnd, Left: left, Right: right}
	}
	return left
}

// Level 6: prefix `not`, right-associative. Disabled under filter_type. A
// leading `not` is recognized here, above the comparison level, so
// `not a == b` parses as `not (a == b)`; parseUnary at level 15 also accepts
// `not`, for a `not` nested under another prefix operator (`-not x`).
func (p *Parser) parseNot(ctx exprCtx) ast.Expression {
	if !ctx.filterType && p.checkOperator(token.Not, ctx.ignoreNewline) {
		tok := p.advance(ctx.ignoreNewline)
		operand := p.parseNot(ctx)
		return &ast.Unary{Span: ast.NewSpan(tok.Begin, operand.NodeEndPos()), Op: ast.UnaryNot, Operand: operand}
	}
	return p.parseComparison(ctx)
}

var comparisonOps = map[token.Operator]bool{
	token.Eq: true, token.NotEq: true, token.Lt: true, token.Gt: true, token.LtEq: true, token.GtEq: true,
}

// Level 7: chained comparison (`a < b <= c` collapses to one node).
// Disabled under filter_type.
func (p *Parser) parseComparison(ctx exprCtx) ast.Expression {
	first := p.parseBitOr(ctx)
	if ctx.filterType {
		return first
	}
	var ops []token.Operator
	operands := []ast.Expression{first}
	for {
		tok := p.peek(ctx.ignoreNewline)
		if tok.Kind != token.OPERATOR || !comparisonOps[tok.Operator] {
			break
		}
		p.advance(ctx.ignoreNewline)
		ops = append(ops, tok.Operator)
		operands = append(operands, p.parseBitOr(ctx))
	}
	if len(ops) == 0 {
		return first
	}
	return &ast.Comparison{
		Span:       ast.NewSpan(operands[0].NodePos(), operands[len(operands)-1].NodeEndPos()),
		Operations: ops, Operands: operands,
	}
}

// Level 8: bitwise or. Always enabled (type expressions may combine flags).
func (p *Parser) parseBitOr(ctx exprCtx) ast.Expression {
	left := p.parseBitXor(ctx)
	for p.checkOperator(token.BitOr, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseBitXor(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.BitOr, Left: left, Right: right}
	}
	return left
}

// Level 9: bitwise xor (infix `~`). Always enabled.
func (p *Parser) parseBitXor(ctx exprCtx) ast.Expression {
	left := p.parseBitAnd(ctx)
	for p.checkOperator(token.BitXor, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseBitAnd(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.BitXor, Left: left, Right: right}
	}
	return left
}

// Level 10: bitwise and. Always enabled.
func (p *Parser) parseBitAnd(ctx exprCtx) ast.Expression {
	left := p.parseShift(ctx)
	for p.checkOperator(token.BitAnd, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		right := p.parseShift(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.BitAnd, Left: left, Right: right}
	}
	return left
}

// Level 11: shift. Always enabled.
func (p *Parser) parseShift(ctx exprCtx) ast.Expression {
	left := p.parseAdd(ctx)
	for {
		tok := p.peek(ctx.ignoreNewline)
		var op ast.BinaryOp
		switch {
		case tok.Kind == token.OPERATOR && tok.Operator == token.Shl:
			op = ast.Shl
		case tok.Kind == token.OPERATOR && tok.Operator == token.Shr:
			op = ast.Shr
		default:
			return left
		}
		p.advance(ctx.ignoreNewline)
		right := p.parseAdd(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: op, Left: left, Right: right}
	}
}

// Level 12: additive. Always enabled.
func (p *Parser) parseAdd(ctx exprCtx) ast.Expression {
	left := p.parseMul(ctx)
	for {
		tok := p.peek(ctx.ignoreNewline)
		var op ast.BinaryOp
		switch {
		case tok.Kind == token.OPERATOR && tok.Operator == token.Add:
			op = ast.Add
		case tok.Kind == token.OPERATOR && tok.Operator == token.Sub:
			op = ast.Sub
		default:
			return left
		}
		p.advance(ctx.ignoreNewline)
		right := p.parseMul(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: op, Left: left, Right: right}
	}
}

// Level 13: multiplicative. Always enabled.
func (p *Parser) parseMul(ctx exprCtx) ast.Expression {
	left := p.parsePow(ctx)
	for {
		tok := p.peek(ctx.ignoreNewline)
		var op ast.BinaryOp
		switch {
		case tok.Kind == token.OPERATOR && tok.Operator == token.Mul:
			op = ast.Mul
		case tok.Kind == token.OPERATOR && tok.Operator == token.Div:
			op = ast.Div
		case tok.Kind == token.OPERATOR && tok.Operator == token.Mod:
			op = ast.Mod
		default:
			return left
		}
		p.advance(ctx.ignoreNewline)
		right := p.parsePow(ctx)
		left = &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: op, Left: left, Right: right}
	}
}

// Level 14: power, right-associative. Both `^` and `**` spell it. Always
// enabled.
func (p *Parser) parsePow(ctx exprCtx) ast.Expression {
	left := p.parseUnary(ctx)
	tok := p.peek(ctx.ignoreNewline)
	if tok.Kind == token.OPERATOR && (tok.Operator == token.Pow || tok.Operator == token.Pow2) {
		p.advance(ctx.ignoreNewline)
		right := p.parsePow(ctx)
		return &ast.Binary{Span: ast.NewSpan(left.NodePos(), right.NodeEndPos()), Op: ast.Pow, Left: left, Right: right}
	}
	return left
}

// Level 15: prefix unary `+ - ++ -- ~`, right-associative. `++`/`--` are
// disabled under filter_type (value-only); `+ - ~` are kept (a type
// expression may need a signed array-size constant or a bitmask).
func (p *Parser) parseUnary(ctx exprCtx) ast.Expression {
	tok := p.peek(ctx.ignoreNewline)
	if tok.Kind != token.OPERATOR {
		return p.parsePostfix(ctx)
	}
	var op ast.UnaryOp
	switch tok.Operator {
	case token.Add:
		op = ast.UnaryPlus
	case token.Sub:
		op = ast.UnaryMinus
	case token.BitXor:
		op = ast.UnaryBitNot
	case token.Not:
		// Listed again at this level so a 'not' nested under a tighter
		// unary chain (e.g. `-not x`) still parses; a bare leading 'not'
		// is caught earlier, at level 6, by parseNot.
		op = ast.UnaryNot
	case token.Inc:
		if ctx.filterType {
			return p.parsePostfix(ctx)
		}
		op = ast.PreIncrement
	case token.Dec:
		if ctx.filterType {
			return p.parsePostfix(ctx)
		}
		op = ast.PreDecrement
	default:
		return p.parsePostfix(ctx)
	}
	p.advance(ctx.ignoreNewline)
	operand := p.parseUnary(ctx)
	return &ast.Unary{Span: ast.NewSpan(tok.Begin, operand.NodeEndPos()), Op: op, Operand: operand}
}

// Level 16: postfix call/index/increment-decrement. Calls and postfix
// increment/decrement are disabled under filter_type; indexing is kept (for
// static array sizing, e.g. `int[5]`).
func (p *Parser) parsePostfix(ctx exprCtx) ast.Expression {
	expr := p.parseMember(ctx)
	for {
		tok := p.peek(ctx.ignoreNewline)
		switch {
		case tok.Kind == token.DELIMITER && tok.Delimiter == token.LParen && !ctx.filterType:
			p.advance(ctx.ignoreNewline)
			args := p.parseCommaSeparated(token.RParen)
			end := p.expectDelimiter(token.RParen, true).End
			expr = &ast.Call{Span: ast.NewSpan(expr.NodePos(), end), Callee: expr, Arguments: args}
		case tok.Kind == token.DELIMITER && tok.Delimiter == token.LBracket:
			p.advance(ctx.ignoreNewline)
			args := p.parseCommaSeparated(token.RBracket)
			end := p.expectDelimiter(token.RBracket, true).End
			expr = &ast.Index{Span: ast.NewSpan(expr.NodePos(), end), Indexee: expr, Arguments: args}
		case tok.Kind == token.OPERATOR && tok.Operator == token.Inc && !ctx.filterType:
			p.advance(ctx.ignoreNewline)
			expr = &ast.Unary{Span: ast.NewSpan(expr.NodePos(), tok.End), Op: ast.PostIncrement, Operand: expr}
		case tok.Kind == token.OPERATOR && tok.Operator == token.Dec && !ctx.filterType:
			p.advance(ctx.ignoreNewline)
			expr = &ast.Unary{Span: ast.NewSpan(expr.NodePos(), tok.End), Op: ast.PostDecrement, Operand: expr}
		default:
			return expr
		}
	}
}

// parseCommaSeparated parses a comma-separated expression list up to (but
// not consuming) the closing delimiter `end`.
func (p *Parser) parseCommaSeparated(end token.Delimiter) []ast.Expression {
	var values []ast.Expression
	if p.checkDelimiter(end, true) {
		return values
	}
	for {
		values = append(values, p.parseAssignment(exprCtx{ignoreNewline: true}))
		if p.checkDelimiter(token.Comma, true) {
			p.advance(true)
			if p.checkDelimiter(end, true) {
				break
			}
			continue
		}
		break
	}
	return values
}

// Level 17: member/templatize. Both always enabled — a type expression still
// needs scope traversal (`std.io.File`) and template application (`Array!T`).
func (p *Parser) parseMember(ctx exprCtx) ast.Expression {
	expr := p.parseAtom(ctx)
	for {
		tok := p.peek(ctx.ignoreNewline)
		switch {
		case tok.Kind == token.DELIMITER && tok.Delimiter == token.Dot:
			p.advance(ctx.ignoreNewline)
			names := []string{p.expectIdentifier(ctx.ignoreNewline)}
			for p.checkDelimiter(token.Dot, ctx.ignoreNewline) {
				p.advance(ctx.ignoreNewline)
				names = append(names, p.expectIdentifier(ctx.ignoreNewline))
			}
			expr = &ast.Scope{Span: ast.NewSpan(expr.NodePos(), p.lastEnd), Value: expr, Names: names}
		case tok.Kind == token.DELIMITER && tok.Delimiter == token.Bang:
			p.advance(ctx.ignoreNewline)
			var args []ast.Expression
			if p.checkDelimiter(token.LParen, ctx.ignoreNewline) {
				p.advance(ctx.ignoreNewline)
				args = p.parseCommaSeparated(token.RParen)
				p.expectDelimiter(token.RParen, true)
			} else {
				tok2 := p.peek(ctx.ignoreNewline)
				name := p.expectIdentifier(ctx.ignoreNewline)
				args = []ast.Expression{&ast.Identifier{Span: ast.NewSpan(tok2.Begin, tok2.End), Name: name}}
			}
			expr = &ast.Templatize{Span: ast.NewSpan(expr.NodePos(), p.lastEnd), Value: expr, Arguments: args}
		default:
			return expr
		}
	}
}

// Level 18: atom dispatch — the leaves of the expression grammar.
func (p *Parser) parseAtom(ctx exprCtx) ast.Expression {
	tok := p.peek(ctx.ignoreNewline)

	switch tok.Kind {
	case token.IDENTIFIER:
		if !ctx.filterType && p.identifierStartsDeclaration(ctx.ignoreNewline) {
			return p.parseVariableDeclaration(ctx)
		}
		p.advance(ctx.ignoreNewline)
		return &ast.Identifier{Span: ast.NewSpan(tok.Begin, tok.End), Name: tok.Name}

	case token.KEYWORD:
		switch tok.Keyword {
		case token.Def:
			if p.defStartsFunctionType(ctx.ignoreNewline) {
				return p.parseFunctionType(ctx)
			}
			if ctx.filterType {
				p.sink.Parser(tok.Begin, tok.End, "a lambda is not permitted in a type expression")
			}
			return p.parseLambda(ctx)
		case token.Static, token.Wild, token.Ref:
			if ctx.filterType {
				p.sink.Parser(tok.Begin, tok.End, "a variable declaration is not permitted in a type expression")
			}
			return p.parseVariableDeclaration(ctx)
		}

	case token.DELIMITER:
		switch tok.Delimiter {
		case token.LParen:
			return p.parseParenOrTuple(ctx)
		case token.LBracket:
			if ctx.filterType {
				p.sink.Parser(tok.Begin, tok.End, "an array literal is not permitted in a type expression")
			}
			return p.parseArray(ctx)
		case token.LBrace:
			if ctx.filterType {
				p.sink.Parser(tok.Begin, tok.End, "a dict literal is not permitted in a type expression")
			}
			return p.parseDict(ctx)
		}

	case token.CHAR:
		p.rejectUnderFilterType(ctx, tok, "a char literal")
		p.advance(ctx.ignoreNewline)
		return &ast.CharLiteral{Span: ast.NewSpan(tok.Begin, tok.End), Value: tok.Rune}

	case token.STRING:
		p.rejectUnderFilterType(ctx, tok, "a string literal")
		p.advance(ctx.ignoreNewline)
		return &ast.StringLiteral{Span: ast.NewSpan(tok.Begin, tok.End), Value: string(tok.Str)}

	case token.BUFFER:
		p.rejectUnderFilterType(ctx, tok, "a buffer literal")
		p.advance(ctx.ignoreNewline)
		return &ast.BufferLiteral{Span: ast.NewSpan(tok.Begin, tok.End), Value: tok.Buf}

	// Typed numeric literals. BYTE/INTEGER/UINTEGER/FLOAT/DOUBLE/IFLOAT/
	// IDOUBLE are the only literal shapes the AST carries; the lexer's
	// narrower signed/unsigned widths (SBYTE, SHORT, USHORT, LONG, ULONG)
	// fold into INTEGER or UINTEGER by sign, losing their original width —
	// acceptable for a front-end whose numeric typing is settled later.
	case token.BYTE:
		p.advance(ctx.ignoreNewline)
		return &ast.ByteLiteral{Span: ast.NewSpan(tok.Begin, tok.End), Value: uint8(tok.Uint)}
	case token.INT, token.SBYTE, token.SHORT, token.LONG:
		p.advance(ctx.ignoreNewline)
		return &ast.Integer{Span: ast.NewSpan(tok.Begin, tok.End), Value: int32(tok.Uint)}
	case token.UINT, token.USHORT, token.ULONG:
		p.advance(ctx.ignoreNewline)
		return &ast.UInteger{Span: ast.NewSpan(tok.Begin, tok.End), Value: uint32(tok.Uint)}
	case token.FLOAT:
		p.rejectUnderFilterType(ctx, tok, "a float literal")
		p.advance(ctx.ignoreNewline)
		return &ast.Float{Span: ast.NewSpan(tok.Begin, tok.End), Value: float32(tok.Float)}
	case token.DOUBLE:
		p.rejectUnderFilterType(ctx, tok, "a double literal")
		p.advance(ctx.ignoreNewline)
		return &ast.Double{Span: ast.NewSpan(tok.Begin, tok.End), Value: tok.Float}
	case token.IFLOAT:
		p.rejectUnderFilterType(ctx, tok, "an imaginary float literal")
		p.advance(ctx.ignoreNewline)
		return &ast.IFloat{Span: ast.NewSpan(tok.Begin, tok.End), Value: float32(tok.Float)}
	case token.IDOUBLE:
		p.rejectUnderFilterType(ctx, tok, "an imaginary double literal")
		p.advance(ctx.ignoreNewline)
		return &ast.IDouble{Span: ast.NewSpan(tok.Begin, tok.End), Value: tok.Float}
	}

	p.sink.Parser(tok.Begin, tok.End, "unexpected %s in expression", describeToken(tok))
	p.advance(ctx.ignoreNewline)
	return ast.NewInvalidExpression(tok.Begin, tok.End, "unexpected token in expression")
}

func (p *Parser) rejectUnderFilterType(ctx exprCtx, tok token.Token, what string) {
	if ctx.filterType {
		p.sink.Parser(tok.Begin, tok.End, "%s is not permitted in a type expression", what)
	}
}

// identifierStartsDeclaration resolves the one ambiguity a single token of
// lookahead cannot: whether a bare IDENTIFIER begins a variable declaration
// (`name: type`) or stands alone as a value. It peeks the token after the
// identifier without consuming either.
func (p *Parser) identifierStartsDeclaration(ignoreNewline bool) bool {
	next := p.peekAhead(1, ignoreNewline)
	return next.Kind == token.DELIMITER && next.Delimiter == token.Colon
}

// defStartsFunctionType resolves the other two-token ambiguity: `def` beginning
// either a lambda (`def(...) { }`) or a type-position function type
// (`def!(...) -> T`).
func (p *Parser) defStartsFunctionType(ignoreNewline bool) bool {
	next := p.peekAhead(1, ignoreNewline)
	return next.Kind == token.DELIMITER && next.Delimiter == token.Bang
}

// parseParenOrTuple parses `(expr)` (a plain grouping, returned unwrapped)
// or `(a, b, ...)` (a Tuple of 2+ elements). An empty `()` is a zero-element
// Tuple.
func (p *Parser) parseParenOrTuple(ctx exprCtx) ast.Expression {
	begin := p.peek(ctx.ignoreNewline).Begin
	p.advance(ctx.ignoreNewline) // '('
	if p.checkDelimiter(token.RParen, true) {
		end := p.advance(true).End
		return &ast.Tuple{Span: ast.NewSpan(begin, end)}
	}
	first := p.parseAssignment(exprCtx{filterType: ctx.filterType, ignoreNewline: true})
	if !p.checkDelimiter(token.Comma, true) {
		end := p.expectDelimiter(token.RParen, true).End
		_ = end
		return first
	}
	values := []ast.Expression{first}
	for p.checkDelimiter(token.Comma, true) {
		p.advance(true)
		if p.checkDelimiter(token.RParen, true) {
			break
		}
		values = append(values, p.parseAssignment(exprCtx{filterType: ctx.filterType, ignoreNewline: true}))
	}
	end := p.expectDelimiter(token.RParen, true).End
	return &ast.Tuple{Span: ast.NewSpan(begin, end), Values: values}
}

func (p *Parser) parseArray(ctx exprCtx) ast.Expression {
	begin := p.peek(ctx.ignoreNewline).Begin
	p.advance(ctx.ignoreNewline) // '['
	values := p.parseCommaSeparated(token.RBracket)
	end := p.expectDelimiter(token.RBracket, true).End
	return &ast.Array{Span: ast.NewSpan(begin, end), Values: values}
}

func (p *Parser) parseDict(ctx exprCtx) ast.Expression {
	begin := p.peek(ctx.ignoreNewline).Begin
	p.advance(ctx.ignoreNewline) // '{'
	var keys, values []ast.Expression
	for !p.checkDelimiter(token.RBrace, true) {
		var key ast.Expression
		if tok := p.peek(true); tok.Kind == token.IDENTIFIER && p.identifierStartsDeclaration(true) {
			// A bare identifier key: `name: value` inside a dict is an
			// entry, not a variable declaration.
			p.advance(true)
			key = &ast.Identifier{Span: ast.NewSpan(tok.Begin, tok.End), Name: tok.Name}
		} else {
			key = p.parseAssignment(exprCtx{ignoreNewline: true})
		}
		p.expectDelimiter(token.Colon, true)
		value := p.parseAssignment(exprCtx{ignoreNewline: true})
		keys = append(keys, key)
		values = append(values, value)
		if p.checkDelimiter(token.Comma, true) {
			p.advance(true)
			continue
		}
		break
	}
	end := p.expectDelimiter(token.RBrace, true).End
	return &ast.Dict{Span: ast.NewSpan(begin, end), Keys: keys, Values: values}
}
