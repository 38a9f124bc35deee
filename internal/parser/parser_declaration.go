package parser

import (
	"kithare/internal/ast"
	"kithare/internal/token"
)

func (p *Parser) parseFunction(begin token.Position, incase, static bool) ast.Statement {
	p.advance(true) // 'def'
	// name_point parses under filter_type so it accepts identifier/scope/
	// templatize but not a call or literal; ignore_newline is false, per the
	// grammar, so the name cannot itself spill across a line break.
	namePoint := p.parseAssignment(exprCtx{filterType: true, ignoreNewline: false})
	sig := p.parseFunctionSignature()
	body := p.parseBlock()
	return &ast.Function{
		Span: ast.NewSpan(begin, p.lastEnd), FunctionSignature: sig,
		IsIncase: incase, IsStatic: static, NamePoint: namePoint, Body: body,
	}
}

// parseFunctionSignature parses the `(args...) -> T` shape shared by a named
// function and a lambda; parseFunctionType parses its own argument list.
func (p *Parser) parseFunctionSignature() ast.FunctionSignature {
	var sig ast.FunctionSignature
	p.expectDelimiter(token.LParen, true)
	for {
		if p.checkDelimiter(token.RParen, true) {
			p.advance(true)
			break
		}
		tok := p.peek(true)
		if tok.Kind == token.EOF {
			p.sink.Parser(tok.Begin, tok.End, "unexpected end of file in argument list")
			break
		}
		variadic := false
		if tok.Kind == token.DELIMITER && tok.Delimiter == token.Ellipsis {
			p.advance(true)
			variadic = true
		}
		vd := p.parseVariableDeclaration(exprCtx{ignoreNewline: true})
		if variadic {
			if sig.VariadicArgument != nil {
				p.sink.Parser(vd.Pos, vd.EndPos, "only one variadic argument is permitted")
			}
			sig.VariadicArgument = vd
		} else {
			sig.Arguments = append(sig.Arguments, vd)
		}
		if p.checkDelimiter(token.Comma, true) {
			p.advance(true)
			continue
		}
		if p.checkDelimiter(token.RParen, true) {
			p.advance(true)
			break
		}
		tok = p.peek(true)
		p.sink.Parser(tok.Begin, tok.End, "expected ',' or ')' in argument list")
		p.advance(true)
		break
	}
	if p.checkDelimiter(token.Arrow, true) {
		p.advance(true)
		if p.checkKeyword(token.Ref, true) {
			p.advance(true)
			sig.IsReturnTypeRef = true
		}
		sig.ReturnType = p.parseAssignment(exprCtx{filterType: true, ignoreNewline: true})
	}
	return sig
}

// parseVariableDeclaration parses `(static)? (wild)? (ref)? name : (type)?
// (= initializer)?`. It is shared by statement-position declarations,
// function/lambda argument entries, and for-loop iterator bindings.
func (p *Parser) parseVariableDeclaration(ctx exprCtx) *ast.VariableDeclaration {
	begin := p.peek(ctx.ignoreNewline).Begin
	var isStatic, isWild, isRef bool

specifiers:
	for {
		tok := p.peek(ctx.ignoreNewline)
		if tok.Kind != token.KEYWORD {
			break
		}
		switch tok.Keyword {
		case token.Static:
			p.advance(ctx.ignoreNewline)
			isStatic = true
		case token.Wild:
			p.advance(ctx.ignoreNewline)
			isWild = true
		case token.Ref:
			p.advance(ctx.ignoreNewline)
			isRef = true
		default:
			break specifiers
		}
	}

	name := p.expectIdentifier(ctx.ignoreNewline)

	var typ, init ast.Expression
	if p.checkDelimiter(token.Colon, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		if !p.checkOperator(token.Assign, ctx.ignoreNewline) {
			typ = p.parseAssignment(exprCtx{filterType: true, ignoreNewline: ctx.ignoreNewline})
		}
	}
	if p.checkOperator(token.Assign, ctx.ignoreNewline) {
		p.advance(ctx.ignoreNewline)
		init = p.parseAssignment(exprCtx{filterType: ctx.filterType, ignoreNewline: ctx.ignoreNewline})
	}
	if typ == nil && init == nil {
		p.sink.Parser(begin, p.lastEnd, "variable declaration requires a type, an initializer, or both")
	}
	return &ast.VariableDeclaration{
		Span: ast.NewSpan(begin, p.lastEnd), IsStatic: isStatic, IsWild: isWild, IsRef: isRef,
		Name: name, Type: typ, Initializer: init,
	}
}

func (p *Parser) parseLambda(ctx exprCtx) ast.Expression {
	begin := p.peek(ctx.ignoreNewline).Begin
	p.advance(ctx.ignoreNewline) // 'def'
	sig := p.parseFunctionSignature()
	body := p.parseBlock()
	return &ast.Lambda{Span: ast.NewSpan(begin, p.lastEnd), FunctionSignature: sig, Body: body}
}

// parseFunctionType parses the type-position function shape `def!(T, ref U)
// -> ref V`; it is reached only once the atom dispatcher has confirmed the
// '!' following 'def' via two-token lookahead.
func (p *Parser) parseFunctionType(ctx exprCtx) ast.Expression {
	begin := p.peek(ctx.ignoreNewline).Begin
	p.advance(ctx.ignoreNewline) // 'def'
	p.advance(true)              // '!'
	p.expectDelimiter(token.LParen, true)

	var argTypes []ast.Expression
	var argRefs []bool
	for {
		if p.checkDelimiter(token.RParen, true) {
			p.advance(true)
			break
		}
		ref := false
		if p.checkKeyword(token.Ref, true) {
			p.advance(true)
			ref = true
		}
		argTypes = append(argTypes, p.parseAssignment(exprCtx{filterType: true, ignoreNewline: true}))
		argRefs = append(argRefs, ref)
		if p.checkDelimiter(token.Comma, true) {
			p.advance(true)
			continue
		}
		p.expectDelimiter(token.RParen, true)
		break
	}

	var isReturnRef bool
	var retType ast.Expression
	if p.checkDelimiter(token.Arrow, true) {
		p.advance(true)
		if p.checkKeyword(token.Ref, true) {
			p.advance(true)
			isReturnRef = true
		}
		retType = p.parseAssignment(exprCtx{filterType: true, ignoreNewline: true})
	}
	return &ast.FunctionType{
		Span: ast.NewSpan(begin, p.lastEnd), ArgumentTypes: argTypes, ArgumentRefs: argRefs,
		IsReturnTypeRef: isReturnRef, ReturnType: retType,
	}
}
