package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kithare/internal/diag"
	"kithare/internal/token"
)

func lexAll(src string) ([]token.Token, *diag.Sink) {
	sink := diag.NewSink()
	c := NewCursor(Source(src))
	var toks []token.Token
	for {
		tok := c.Lex(sink)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, sink
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks, sink := lexAll("def class struct if elif else customIdent")
	assert.True(t, sink.Empty())

	expectKw := []token.Keyword{token.Def, token.Class, token.Struct, token.If, token.Elif, token.Else}
	for i, kw := range expectKw {
		assert.Equal(t, token.KEYWORD, toks[i].Kind)
		assert.Equal(t, kw, toks[i].Keyword)
	}
	assert.Equal(t, token.IDENTIFIER, toks[len(expectKw)].Kind)
	assert.Equal(t, "customIdent", toks[len(expectKw)].Name)
}

func TestLogicalWordOperators(t *testing.T) {
	toks, sink := lexAll("a and b or c xor d not e")
	assert.True(t, sink.Empty())

	var ops []token.Operator
	for _, tok := range toks {
		if tok.Kind == token.OPERATOR {
			ops = append(ops, tok.Operator)
		}
	}
	assert.Equal(t, []token.Operator{token.And, token.Or, token.Xor, token.Not}, ops)
}

func TestIntegerLiterals(t *testing.T) {
	toks, sink := lexAll("42 0x1F 0b101 0o17 7ub 9sb")
	assert.True(t, sink.Empty())

	assert.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, uint64(42), toks[0].Uint)

	assert.Equal(t, token.INT, toks[1].Kind)
	assert.Equal(t, uint64(0x1F), toks[1].Uint)

	assert.Equal(t, token.INT, toks[2].Kind)
	assert.Equal(t, uint64(0b101), toks[2].Uint)

	assert.Equal(t, token.INT, toks[3].Kind)
	assert.Equal(t, uint64(0o17), toks[3].Uint)

	assert.Equal(t, token.BYTE, toks[4].Kind)
	assert.Equal(t, uint64(7), toks[4].Uint)

	assert.Equal(t, token.SBYTE, toks[5].Kind)
	assert.Equal(t, uint64(9), toks[5].Uint)
}

func TestFloatLiterals(t *testing.T) {
	toks, sink := lexAll("3.14 2e10 1.5f 6d 2i")
	assert.True(t, sink.Empty())

	assert.Equal(t, token.DOUBLE, toks[0].Kind)
	assert.InDelta(t, 3.14, toks[0].Float, 1e-9)

	assert.Equal(t, token.DOUBLE, toks[1].Kind)
	assert.InDelta(t, 2e10, toks[1].Float, 1)

	assert.Equal(t, token.FLOAT, toks[2].Kind)
	assert.InDelta(t, 1.5, toks[2].Float, 1e-9)

	assert.Equal(t, token.DOUBLE, toks[3].Kind)
	assert.InDelta(t, 6, toks[3].Float, 1e-9)

	assert.Equal(t, token.IDOUBLE, toks[4].Kind)
	assert.InDelta(t, 2, toks[4].Float, 1e-9)
}

func TestIntegerOverflowFallsBackToFloat(t *testing.T) {
	toks, sink := lexAll("99999999999999999999")
	assert.False(t, sink.Empty())
	assert.Equal(t, token.DOUBLE, toks[0].Kind)
}

func TestCharAndByteChar(t *testing.T) {
	toks, sink := lexAll(`'a' b'x' '\n' '\x41'`)
	assert.True(t, sink.Empty())

	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.Equal(t, 'a', toks[0].Rune)

	assert.Equal(t, token.BYTE, toks[1].Kind)
	assert.Equal(t, uint64('x'), toks[1].Uint)

	assert.Equal(t, token.CHAR, toks[2].Kind)
	assert.Equal(t, '\n', toks[2].Rune)

	assert.Equal(t, token.CHAR, toks[3].Kind)
	assert.Equal(t, rune(0x41), toks[3].Rune)
}

func TestStringAndTripleString(t *testing.T) {
	toks, sink := lexAll(`"hello" """multi
line"""`)
	assert.True(t, sink.Empty())

	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello", string(toks[0].Str))

	assert.Equal(t, token.STRING, toks[1].Kind)
	assert.Equal(t, "multi\nline", string(toks[1].Str))
}

func TestByteBuffer(t *testing.T) {
	toks, sink := lexAll(`b"abc"`)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.BUFFER, toks[0].Kind)
	assert.Equal(t, []byte("abc"), toks[0].Buf)
}

func TestUnterminatedStringProducesDiagnostic(t *testing.T) {
	toks, sink := lexAll(`"unterminated`)
	assert.False(t, sink.Empty())
	assert.Equal(t, token.STRING, toks[0].Kind)
}

func TestUnterminatedCharProducesDiagnostic(t *testing.T) {
	_, sink := lexAll(`'ab`)
	assert.False(t, sink.Empty())
}

func TestEmptyCharProducesDiagnostic(t *testing.T) {
	_, sink := lexAll(`''`)
	assert.False(t, sink.Empty())
}

func TestByteContextRejectsUnicodeEscapes(t *testing.T) {
	_, sink := lexAll(`b"\U00000041"`)
	assert.False(t, sink.Empty())
}

func TestOperatorsAndDelimiters(t *testing.T) {
	toks, sink := lexAll(`( ) { } [ ] , : ; . ! @ -> ...`)
	assert.True(t, sink.Empty())

	expected := []token.Delimiter{
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Colon,
		token.Semicolon, token.Dot, token.Bang, token.At,
		token.Arrow, token.Ellipsis,
	}
	for i, d := range expected {
		assert.Equal(t, token.DELIMITER, toks[i].Kind, "token %d", i)
		assert.Equal(t, d, toks[i].Delimiter, "token %d", i)
	}
}

func TestBracketCloseIsDistinctFromBraceClose(t *testing.T) {
	toks, sink := lexAll(`]}`)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.RBracket, toks[0].Delimiter)
	assert.Equal(t, token.RBrace, toks[1].Delimiter)
}

func TestMaximalMunchOperators(t *testing.T) {
	toks, sink := lexAll(`== != <= >= << >> <<= >>= ** += -= ^= ~= ++ --`)
	assert.True(t, sink.Empty())

	expected := []token.Operator{
		token.Eq, token.NotEq, token.LtEq, token.GtEq, token.Shl, token.Shr,
		token.ShlAssign, token.ShrAssign, token.Pow2, token.AddAssign,
		token.SubAssign, token.PowAssign, token.BitXorAssign, token.Inc, token.Dec,
	}
	for i, op := range expected {
		assert.Equal(t, token.OPERATOR, toks[i].Kind, "token %d", i)
		assert.Equal(t, op, toks[i].Operator, "token %d", i)
	}
}

func TestPowerOperatorBothSpellings(t *testing.T) {
	toks, sink := lexAll(`^ **`)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.Pow, toks[0].Operator)
	assert.Equal(t, token.Pow2, toks[1].Operator)
}

func TestTildeIsBitXor(t *testing.T) {
	toks, sink := lexAll(`~`)
	assert.True(t, sink.Empty())
	assert.Equal(t, token.BitXor, toks[0].Operator)
}

func TestCommentsAreSkippedByPeek(t *testing.T) {
	sink := diag.NewSink()
	c := NewCursor(Source("# a comment\nidentifier"))
	tok := c.Peek(sink, false)
	assert.Equal(t, token.IDENTIFIER, tok.Kind)
	assert.Equal(t, "identifier", tok.Name)
}

func TestPeekIgnoreNewline(t *testing.T) {
	sink := diag.NewSink()
	c := NewCursor(Source("\n\nidentifier"))
	tok := c.Peek(sink, true)
	assert.Equal(t, token.IDENTIFIER, tok.Kind)
}

func TestUnexpectedCharacterStillMakesProgress(t *testing.T) {
	toks, sink := lexAll("$$")
	assert.False(t, sink.Empty())
	assert.Equal(t, token.ILLEGAL, toks[0].Kind)
	assert.Equal(t, token.ILLEGAL, toks[1].Kind)
	assert.Equal(t, token.EOF, toks[2].Kind)
}
