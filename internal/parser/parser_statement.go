package parser

import (
	"kithare/internal/ast"
	"kithare/internal/token"
)

// parseStatement dispatches on the lookahead token to one production per
// statement kind, falling back to an expression statement (which also
// covers bare variable declarations).
func (p *Parser) parseStatement() ast.Statement {
	tok := p.peek(true)
	if tok.Kind != token.KEYWORD {
		return p.parseExpressionStatement()
	}

	switch tok.Keyword {
	case token.Import:
		return p.parseImport()
	case token.Include:
		return p.parseInclude()
	case token.Incase, token.Static:
		return p.parseSpecifiedStatement()
	case token.Def:
		begin := tok.Begin
		return p.parseFunction(begin, false, false)
	case token.Class:
		begin := tok.Begin
		return p.parseClass(begin, false)
	case token.Struct:
		begin := tok.Begin
		return p.parseStruct(begin, false)
	case token.Enum:
		begin := tok.Begin
		return p.parseEnum(begin)
	case token.Alias:
		begin := tok.Begin
		return p.parseAlias(begin, false)
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDoWhile()
	case token.For:
		return p.parseFor()
	case token.Break:
		p.advance(true)
		return &ast.Break{Span: ast.NewSpan(tok.Begin, p.requireTerminatorEnd())}
	case token.Continue:
		p.advance(true)
		return &ast.Continue{Span: ast.NewSpan(tok.Begin, p.requireTerminatorEnd())}
	case token.Return:
		return p.parseReturn()
	case token.Wild, token.Ref:
		// A variable declaration with no leading specifier falls through to
		// the general expression-statement path below.
		return p.parseExpressionStatement()
	case token.As, token.Elif, token.Else:
		// Only these three are statement-illegal outright: each belongs to
		// another production's grammar (import's alias clause, if's chain)
		// and can never start a statement on its own.
		p.sink.Parser(tok.Begin, tok.End, "unexpected %q in statement position", string(tok.Keyword))
		p.advance(true)
		end, _ := p.requireTerminator()
		return ast.NewInvalidStatement(tok.Begin, end, "unexpected keyword")
	default:
		// Every other keyword not dispatched above (try, public, private,
		// in, ...) falls through to the expression-statement path, which
		// itself reports and recovers from an unexpected leading keyword.
		return p.parseExpressionStatement()
	}
}

// requireTerminatorEnd is requireTerminator without the semicolon flag, used
// by statements (break/continue) that don't record it.
func (p *Parser) requireTerminatorEnd() token.Position {
	end, _ := p.requireTerminator()
	return end
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	// Blank lines before the statement are consumed here: the expression
	// below is parsed with ignoreNewline unset and would otherwise stop at
	// a leading NEWLINE.
	for p.peek(false).Kind == token.NEWLINE {
		p.advance(false)
	}
	begin := p.peek(true).Begin
	expr := p.parseAssignment(exprCtx{ignoreNewline: false})
	end, semi := p.requireTerminator()
	return &ast.ExpressionStatement{Span: ast.NewSpan(begin, end), Expr: expr, Semicolon: semi}
}

// parseSpecifiedStatement handles a leading run of incase/static keywords,
// which may prefix a function, class, struct, alias, or a plain variable
// declaration (the last by falling through to parseExpressionStatement,
// having already stamped the declaration's IsStatic bit below).
func (p *Parser) parseSpecifiedStatement() ast.Statement {
	begin, incase, static := p.parseSpecifiers()
	tok := p.peek(true)
	if tok.Kind == token.KEYWORD {
		switch tok.Keyword {
		case token.Def:
			return p.parseFunction(begin, incase, static)
		case token.Class:
			if static {
				p.sink.Parser(tok.Begin, tok.End, "'static' is not permitted before 'class'")
			}
			return p.parseClass(begin, incase)
		case token.Struct:
			if static {
				p.sink.Parser(tok.Begin, tok.End, "'static' is not permitted before 'struct'")
			}
			return p.parseStruct(begin, incase)
		case token.Alias:
			if static {
				p.sink.Parser(tok.Begin, tok.End, "'static' is not permitted before 'alias'")
			}
			return p.parseAlias(begin, incase)
		}
	}

	if incase {
		p.sink.Parser(begin, tok.Begin, "'incase' is only permitted before a declaration")
	}
	expr := p.parseAssignment(exprCtx{ignoreNewline: false})
	if static {
		if vd, ok := expr.(*ast.VariableDeclaration); ok {
			vd.IsStatic = true
		}
	}
	end, semi := p.requireTerminator()
	return &ast.ExpressionStatement{Span: ast.NewSpan(begin, end), Expr: expr, Semicolon: semi}
}

func (p *Parser) parseImport() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'import'
	relative := p.checkDelimiter(token.Dot, true)
	if relative {
		p.advance(true)
	}
	path := p.parseDottedPath(true)
	alias := ""
	if p.checkKeyword(token.As, true) {
		p.advance(true)
		alias = p.expectIdentifier(true)
	}
	end, semi := p.requireTerminator()
	_ = semi
	return &ast.Import{Span: ast.NewSpan(begin, end), Path: path, Relative: relative, Alias: alias}
}

func (p *Parser) parseInclude() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'include'
	relative := p.checkDelimiter(token.Dot, true)
	if relative {
		p.advance(true)
	}
	path := p.parseDottedPath(true)
	if p.checkKeyword(token.As, true) {
		tok := p.peek(true)
		p.sink.Parser(tok.Begin, tok.End, "'include' cannot be aliased")
		p.advance(true)
		p.expectIdentifier(true)
	}
	end, _ := p.requireTerminator()
	return &ast.Include{Span: ast.NewSpan(begin, end), Path: path, Relative: relative}
}

func (p *Parser) parseOptionalTemplateParameters() []string {
	if !p.checkDelimiter(token.Bang, true) {
		return nil
	}
	p.advance(true)
	if !p.checkDelimiter(token.LParen, true) {
		return []string{p.expectIdentifier(true)}
	}
	p.advance(true)
	var names []string
	for {
		if p.checkDelimiter(token.RParen, true) {
			p.advance(true)
			break
		}
		names = append(names, p.expectIdentifier(true))
		if p.checkDelimiter(token.Comma, true) {
			p.advance(true)
			continue
		}
		p.expectDelimiter(token.RParen, true)
		break
	}
	return names
}

func (p *Parser) parseBaseType() ast.Expression {
	if !p.checkDelimiter(token.LParen, true) {
		return nil
	}
	p.advance(true)
	base := p.parseAssignment(exprCtx{filterType: true, ignoreNewline: true})
	p.expectDelimiter(token.RParen, true)
	return base
}

func (p *Parser) parseClass(begin token.Position, incase bool) ast.Statement {
	p.advance(true) // 'class'
	name := p.expectIdentifier(true)
	templateArgs := p.parseOptionalTemplateParameters()
	base := p.parseBaseType()
	body := p.parseBlock()
	return &ast.Class{
		Span: ast.NewSpan(begin, p.lastEnd), IsIncase: incase, Name: name,
		TemplateArguments: templateArgs, BaseType: base, Body: body,
	}
}

func (p *Parser) parseStruct(begin token.Position, incase bool) ast.Statement {
	p.advance(true) // 'struct'
	name := p.expectIdentifier(true)
	templateArgs := p.parseOptionalTemplateParameters()
	base := p.parseBaseType()
	body := p.parseBlock()
	return &ast.Struct{
		Span: ast.NewSpan(begin, p.lastEnd), IsIncase: incase, Name: name,
		TemplateArguments: templateArgs, BaseType: base, Body: body,
	}
}

func (p *Parser) parseEnum(begin token.Position) ast.Statement {
	p.advance(true) // 'enum'
	name := p.expectIdentifier(true)
	p.expectDelimiter(token.LBrace, true)
	var members []string
	for {
		tok := p.peek(true)
		if tok.Kind == token.DELIMITER && tok.Delimiter == token.RBrace {
			p.advance(true)
			break
		}
		if tok.Kind == token.EOF {
			p.sink.Parser(tok.Begin, tok.End, "unexpected end of file in enum body")
			break
		}
		members = append(members, p.expectIdentifier(true))
		tok = p.peek(true)
		if tok.Kind == token.DELIMITER && tok.Delimiter == token.Comma {
			p.advance(true)
			continue
		}
		if tok.Kind == token.DELIMITER && tok.Delimiter == token.RBrace {
			p.advance(true)
			break
		}
		p.sink.Parser(tok.Begin, tok.End, "expected ',' or '}' in enum body")
		p.advance(true)
		break
	}
	return &ast.Enum{Span: ast.NewSpan(begin, p.lastEnd), Name: name, Members: members}
}

// parseAlias mirrors the original grammar exactly: no '=' token separates
// the name from its bound expression.
func (p *Parser) parseAlias(begin token.Position, incase bool) ast.Statement {
	p.advance(true) // 'alias'
	name := p.expectIdentifier(true)
	expr := p.parseAssignment(exprCtx{ignoreNewline: false})
	end, _ := p.requireTerminator()
	return &ast.Alias{Span: ast.NewSpan(begin, end), IsIncase: incase, Name: name, Expr: expr}
}

func (p *Parser) parseIf() ast.Statement {
	begin := p.peek(true).Begin
	var conditions []ast.Expression
	var bodies [][]ast.Statement
	var elseBody []ast.Statement

	p.advance(true) // 'if'
	conditions = append(conditions, p.parseAssignment(exprCtx{ignoreNewline: true}))
	bodies = append(bodies, p.parseBlock())

	for p.checkKeyword(token.Elif, true) {
		p.advance(true)
		conditions = append(conditions, p.parseAssignment(exprCtx{ignoreNewline: true}))
		bodies = append(bodies, p.parseBlock())
	}
	if p.checkKeyword(token.Else, true) {
		p.advance(true)
		elseBody = p.parseBlock()
	}
	return &ast.IfBranch{Span: ast.NewSpan(begin, p.lastEnd), Conditions: conditions, Bodies: bodies, ElseBody: elseBody}
}

func (p *Parser) parseWhile() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'while'
	cond := p.parseAssignment(exprCtx{ignoreNewline: true})
	body := p.parseBlock()
	return &ast.WhileLoop{Span: ast.NewSpan(begin, p.lastEnd), Condition: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'do'
	body := p.parseBlock()
	p.expectKeyword(token.While, true)
	cond := p.parseAssignment(exprCtx{ignoreNewline: false})
	end, _ := p.requireTerminator()
	return &ast.DoWhileLoop{Span: ast.NewSpan(begin, end), Condition: cond, Body: body}
}

func (p *Parser) expectKeyword(k token.Keyword, ignoreNewline bool) {
	tok := p.peek(ignoreNewline)
	if tok.Kind == token.KEYWORD && tok.Keyword == k {
		p.advance(ignoreNewline)
		return
	}
	p.sink.Parser(tok.Begin, tok.End, "expected %q, found %s", string(k), describeToken(tok))
	p.advance(ignoreNewline)
}

// parseFor handles both loop shapes sharing the `for` keyword: the
// three-clause C-style form (`for init, cond, update { }`) and the
// destructuring form (`for a, b in iterable { }`). Both start with a
// comma-separated expression list, so the clauses are collected first and
// the shape decided only once a following `in` has or hasn't appeared.
func (p *Parser) parseFor() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'for'

	clauses := []ast.Expression{p.parseAssignment(exprCtx{ignoreNewline: true})}
	for p.checkDelimiter(token.Comma, true) {
		p.advance(true)
		clauses = append(clauses, p.parseAssignment(exprCtx{ignoreNewline: true}))
	}

	if p.checkKeyword(token.In, true) {
		p.advance(true) // 'in'
		iteratee := p.parseAssignment(exprCtx{ignoreNewline: true})
		body := p.parseBlock()
		return &ast.ForEachLoop{Span: ast.NewSpan(begin, p.lastEnd), Iterators: clauses, Iteratee: iteratee, Body: body}
	}

	if len(clauses) != 3 {
		tok := p.peek(true)
		p.sink.Parser(begin, tok.End, "a C-style for loop requires exactly an init, a condition, and an update clause")
	}
	var initExpr, condExpr, updateExpr ast.Expression
	if len(clauses) > 0 {
		initExpr = clauses[0]
	}
	if len(clauses) > 1 {
		condExpr = clauses[1]
	}
	if len(clauses) > 2 {
		updateExpr = clauses[len(clauses)-1]
	}
	body := p.parseBlock()
	return &ast.ForLoop{Span: ast.NewSpan(begin, p.lastEnd), Init: initExpr, Cond: condExpr, Update: updateExpr, Body: body}
}

func (p *Parser) parseReturn() ast.Statement {
	begin := p.peek(true).Begin
	p.advance(true) // 'return'
	var values []ast.Expression
	tok := p.peek(false)
	if !(tok.Kind == token.NEWLINE || tok.Kind == token.EOF ||
		(tok.Kind == token.DELIMITER && (tok.Delimiter == token.Semicolon || tok.Delimiter == token.RBrace))) {
		values = append(values, p.parseAssignment(exprCtx{ignoreNewline: false}))
		for p.checkDelimiter(token.Comma, false) {
			p.advance(false)
			values = append(values, p.parseAssignment(exprCtx{ignoreNewline: false}))
		}
	}
	end, _ := p.requireTerminator()
	return &ast.Return{Span: ast.NewSpan(begin, end), Values: values}
}
