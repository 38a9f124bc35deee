package lexer

import (
	"unicode"

	"kithare/internal/diag"
	"kithare/internal/token"
)

// Lex consumes whitespace and produces exactly one token from the cursor,
// advancing it past the consumed code points. It guarantees forward
// progress: on unrecognizable input it still advances at least one code
// point and records a lexer diagnostic.
func (c *Cursor) Lex(sink *diag.Sink) token.Token {
	c.skipInsignificantWhitespace()

	begin := c.pos()
	if c.AtEnd() {
		return token.Token{Kind: token.EOF, Begin: begin, End: begin}
	}

	r := c.cur()
	switch {
	case r == '\n':
		c.advance()
		return token.Token{Kind: token.NEWLINE, Begin: begin, End: c.pos()}

	case r == '#':
		return c.scanComment(begin)

	case r == '\'':
		return c.scanChar(begin, false, sink)
	case r == '"':
		return c.scanString(begin, false, sink)

	case (r == 'b' || r == 'B') && (c.peekAt(1) == '\'' || c.peekAt(1) == '"'):
		c.advance()
		if c.cur() == '\'' {
			return c.scanChar(begin, true, sink)
		}
		return c.scanString(begin, true, sink)

	case isLetter(r):
		return c.scanWord(begin)

	case isDigit(r):
		return c.scanNumber(begin, sink)

	default:
		if tok, ok := c.scanSymbol(begin); ok {
			return tok
		}
		// Unrecognized code point: record a diagnostic and force progress
		// by consuming exactly one code point.
		c.advance()
		sink.Lexer(begin, c.pos(), "unexpected character %q", r)
		return token.Token{Kind: token.ILLEGAL, Begin: begin, End: c.pos()}
	}
}

// skipInsignificantWhitespace skips spaces, tabs, carriage returns, and any
// other non-newline whitespace code point between tokens. '\n' is
// significant (it becomes a NEWLINE token) and is left for Lex to consume.
func (c *Cursor) skipInsignificantWhitespace() {
	for {
		r := c.cur()
		if r == '\n' || r == 0 {
			return
		}
		if unicode.IsSpace(r) {
			c.advance()
			continue
		}
		return
	}
}

func (c *Cursor) scanComment(begin token.Position) token.Token {
	for c.cur() != '\n' && !c.AtEnd() {
		c.advance()
	}
	if c.cur() == '\n' {
		c.advance()
	}
	return token.Token{Kind: token.COMMENT, Begin: begin, End: c.pos()}
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlnum(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func (c *Cursor) scanWord(begin token.Position) token.Token {
	for isAlnum(c.cur()) {
		c.advance()
	}
	word := string(c.Buf[int(begin):c.Pos])

	kind, kw, op := token.LookupWord(word)
	switch kind {
	case token.OPERATOR:
		return token.Token{Kind: token.OPERATOR, Operator: op, Begin: begin, End: c.pos()}
	case token.KEYWORD:
		return token.Token{Kind: token.KEYWORD, Keyword: kw, Begin: begin, End: c.pos()}
	default:
		return token.Token{Kind: token.IDENTIFIER, Name: word, Begin: begin, End: c.pos()}
	}
}
