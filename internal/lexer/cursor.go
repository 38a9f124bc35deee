// Package lexer implements the Kithare front-end scanner: a cursor-driven,
// Unicode-aware tokenizer over a pre-decoded buffer of code points.
package lexer

import (
	"kithare/internal/diag"
	"kithare/internal/token"
)

// Cursor is the scanner's sole mutable state: a position into a caller-owned
// buffer of code points. The buffer must end with a null sentinel rune
// (rune(0)); Source builds one from a string.
type Cursor struct {
	Buf []rune
	Pos int
}

// Source decodes a UTF-8 source string into a code-point buffer terminated
// by a null sentinel, ready to hand to NewCursor.
func Source(src string) []rune {
	buf := []rune(src)
	return append(buf, 0)
}

// NewCursor wraps buf (which must end in a null sentinel) at position 0.
func NewCursor(buf []rune) *Cursor {
	return &Cursor{Buf: buf}
}

func (c *Cursor) cur() rune {
	if c.Pos >= len(c.Buf) {
		return 0
	}
	return c.Buf[c.Pos]
}

func (c *Cursor) peekAt(offset int) rune {
	i := c.Pos + offset
	if i < 0 || i >= len(c.Buf) {
		return 0
	}
	return c.Buf[i]
}

// AtEnd reports whether the cursor sits on the null sentinel.
func (c *Cursor) AtEnd() bool {
	return c.Pos >= len(c.Buf)-1
}

func (c *Cursor) advance() rune {
	r := c.cur()
	if !c.AtEnd() {
		c.Pos++
	}
	return r
}

func (c *Cursor) match(r rune) bool {
	if c.cur() != r {
		return false
	}
	c.advance()
	return true
}

func (c *Cursor) pos() token.Position {
	return token.Position(c.Pos)
}

// Peek scans the next non-COMMENT token (and, if ignoreNewline is set, the
// next non-NEWLINE token too) and leaves the cursor positioned immediately
// past it — it does not rewind. Callers that want a true non-consuming
// lookahead snapshot *c before calling Peek and restore it afterward; the
// parser does exactly this (see parser.Parser.peek).
func (c *Cursor) Peek(sink *diag.Sink, ignoreNewline bool) token.Token {
	for {
		tok := c.Lex(sink)
		if tok.Kind == token.COMMENT {
			continue
		}
		if ignoreNewline && tok.Kind == token.NEWLINE {
			continue
		}
		return tok
	}
}

// Skip advances the cursor past the next significant token, discarding it.
func (c *Cursor) Skip(sink *diag.Sink, ignoreNewline bool) {
	c.Peek(sink, ignoreNewline)
}
