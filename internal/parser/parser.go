// Package parser implements the Kithare front-end's recursive-descent,
// precedence-climbing parser: it consumes a code-point buffer and produces a
// best-effort ast.Statement sequence, pushing a diagnostic to the sink for
// every malformed construct instead of aborting.
package parser

import (
	"kithare/internal/ast"
	"kithare/internal/diag"
	"kithare/internal/lexer"
	"kithare/internal/token"
)

// Parser holds the scanning cursor and the sink every production reports
// into. Beyond the end position of the last consumed token (lastEnd), it
// carries no other mutable parsing state: lookahead is implemented
// by snapshotting and restoring the cursor around speculative scans, per
// lexer.Cursor.Peek's documented contract.
type Parser struct {
	cursor  *lexer.Cursor
	sink    *diag.Sink
	lastEnd token.Position
}

// New wraps buf (as produced by lexer.Source) in a Parser reporting into sink.
func New(buf []rune, sink *diag.Sink) *Parser {
	return &Parser{cursor: lexer.NewCursor(buf), sink: sink}
}

// Parse decodes src and parses it to a statement sequence, recording every
// diagnostic into sink.
func Parse(src string, sink *diag.Sink) []ast.Statement {
	return New(lexer.Source(src), sink).ParseStatements()
}

// Lex exposes the raw scanner for lower-level test harnesses: it returns the
// single next token (comments included), advancing the cursor past it.
func (p *Parser) Lex() token.Token {
	return p.cursor.Lex(p.sink)
}

// ParseExpression exposes the expression grammar's entry point, for test
// harnesses and for embedding a standalone expression outside statement
// context.
func (p *Parser) ParseExpression(ignoreNewline, filterType bool) ast.Expression {
	return p.parseAssignment(exprCtx{filterType: filterType, ignoreNewline: ignoreNewline})
}

// peek returns the next significant token (comments always skipped, newlines
// skipped too when ignoreNewline is set) without consuming it. The probe
// itself never reports a diagnostic; the same token is re-lexed and its
// diagnostic (if any) raised exactly once, when advance actually consumes it.
func (p *Parser) peek(ignoreNewline bool) token.Token {
	return p.peekAhead(0, ignoreNewline)
}

// peekAhead looks n significant tokens beyond the current position (n == 0
// behaves like peek) without consuming any of them or reporting diagnostics.
// It exists for the handful of productions the grammar cannot disambiguate
// with one token of lookahead: a leading identifier that starts either a
// declaration or a bare expression, and `def` starting either a lambda or a
// type-position function type.
func (p *Parser) peekAhead(n int, ignoreNewline bool) token.Token {
	saved := *p.cursor
	trash := diag.NewSink()
	var tok token.Token
	for i := 0; i <= n; i++ {
		tok = p.cursor.Peek(trash, ignoreNewline)
	}
	*p.cursor = saved
	return tok
}

// advance consumes and returns the next significant token, reporting any
// diagnostic it carries into the real sink.
func (p *Parser) advance(ignoreNewline bool) token.Token {
	tok := p.cursor.Peek(p.sink, ignoreNewline)
	p.lastEnd = tok.End
	return tok
}

func (p *Parser) checkDelimiter(d token.Delimiter, ignoreNewline bool) bool {
	tok := p.peek(ignoreNewline)
	return tok.Kind == token.DELIMITER && tok.Delimiter == d
}

func (p *Parser) checkKeyword(k token.Keyword, ignoreNewline bool) bool {
	tok := p.peek(ignoreNewline)
	return tok.Kind == token.KEYWORD && tok.Keyword == k
}

func (p *Parser) checkOperator(o token.Operator, ignoreNewline bool) bool {
	tok := p.peek(ignoreNewline)
	return tok.Kind == token.OPERATOR && tok.Operator == o
}

// expectDelimiter consumes d if present, else reports a diagnostic and still
// advances once, guaranteeing forward progress.
func (p *Parser) expectDelimiter(d token.Delimiter, ignoreNewline bool) token.Token {
	tok := p.peek(ignoreNewline)
	if tok.Kind == token.DELIMITER && tok.Delimiter == d {
		return p.advance(ignoreNewline)
	}
	p.sink.Parser(tok.Begin, tok.End, "expected %q, found %s", string(d), describeToken(tok))
	return p.advance(ignoreNewline)
}

func (p *Parser) expectIdentifier(ignoreNewline bool) string {
	tok := p.peek(ignoreNewline)
	if tok.Kind == token.IDENTIFIER {
		p.advance(ignoreNewline)
		return tok.Name
	}
	p.sink.Parser(tok.Begin, tok.End, "expected an identifier, found %s", describeToken(tok))
	p.advance(ignoreNewline)
	return ""
}

// describeToken renders a token for diagnostic messages.
func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.NEWLINE:
		return "a newline"
	default:
		return "'" + tok.Lexeme() + "'"
	}
}

// requireTerminator consumes the statement terminator (';', NEWLINE, or
// EOF). A following '}' is left for the enclosing parseBlock to consume.
// Anything else is reported and one token is forced to advance so the
// parser always makes progress.
func (p *Parser) requireTerminator() (end token.Position, semicolon bool) {
	tok := p.peek(false)
	switch {
	case tok.Kind == token.DELIMITER && tok.Delimiter == token.Semicolon:
		p.advance(false)
		return tok.End, true
	case tok.Kind == token.NEWLINE:
		p.advance(false)
		return tok.End, false
	case tok.Kind == token.EOF:
		return tok.Begin, false
	case tok.Kind == token.DELIMITER && tok.Delimiter == token.RBrace:
		return tok.Begin, false
	default:
		p.sink.Parser(tok.Begin, tok.End, "expected a statement terminator, found %s", describeToken(tok))
		p.advance(true)
		return p.lastEnd, false
	}
}

// ParseStatements parses a whole source buffer to its top-level statement
// sequence.
func (p *Parser) ParseStatements() []ast.Statement {
	var stmts []ast.Statement
	for {
		tok := p.peek(true)
		if tok.Kind == token.EOF {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
	}
}

// parseBlock parses a `{ statement* }` block. The opening brace must already
// be the next token; a missing one is reported and an empty block returned.
func (p *Parser) parseBlock() []ast.Statement {
	if !p.checkDelimiter(token.LBrace, true) {
		tok := p.peek(true)
		p.sink.Parser(tok.Begin, tok.End, "expected '{' to begin a block, found %s", describeToken(tok))
		return nil
	}
	p.advance(true)
	var body []ast.Statement
	for {
		tok := p.peek(true)
		if tok.Kind == token.DELIMITER && tok.Delimiter == token.RBrace {
			p.advance(true)
			return body
		}
		if tok.Kind == token.EOF {
			p.sink.Parser(tok.Begin, tok.End, "unexpected end of file inside a block")
			return body
		}
		body = append(body, p.parseStatement())
	}
}

func (p *Parser) parseDottedPath(ignoreNewline bool) []string {
	path := []string{p.expectIdentifier(ignoreNewline)}
	for p.checkDelimiter(token.Dot, ignoreNewline) {
		p.advance(ignoreNewline)
		path = append(path, p.expectIdentifier(ignoreNewline))
	}
	return path
}

// parseSpecifiers consumes a run of leading `incase`/`static` keywords, which
// prefix a declaration and are otherwise statement-initial tokens.
func (p *Parser) parseSpecifiers() (begin token.Position, incase, static bool) {
	begin = p.peek(true).Begin
	for {
		tok := p.peek(true)
		if tok.Kind != token.KEYWORD {
			return
		}
		switch tok.Keyword {
		case token.Incase:
			p.advance(true)
			incase = true
		case token.Static:
			p.advance(true)
			static = true
		default:
			return
		}
	}
}
