package lexer

import (
	"math"
	"strings"

	"kithare/internal/diag"
	"kithare/internal/token"
)

// scanNumber implements spec.md §4.A "Numeric recognition": base detection,
// accumulation with overflow detection, the integer/float fork, and suffix
// disambiguation.
func (c *Cursor) scanNumber(begin token.Position, sink *diag.Sink) token.Token {
	base := 10
	if c.cur() == '0' {
		switch lowerRune(c.peekAt(1)) {
		case 'b':
			base = 2
			c.advance()
			c.advance()
		case 'o':
			base = 8
			c.advance()
			c.advance()
		case 'x':
			base = 16
			c.advance()
			c.advance()
		}
	}

	var uintAcc uint64
	var floatAcc float64
	overflowed := false
	sawDigit := false

	for digitValue(c.cur(), base) >= 0 {
		d := uint64(digitValue(c.cur(), base))
		next := uintAcc*uint64(base) + d
		if next < uintAcc {
			overflowed = true
		}
		uintAcc = next
		floatAcc = floatAcc*float64(base) + float64(d)
		sawDigit = true
		c.advance()
	}
	if base != 10 && !sawDigit {
		sink.Lexer(begin, c.pos(), "expected digit after base prefix")
	}

	isFloat := overflowed
	if overflowed {
		sink.Lexer(begin, c.pos(), "integer literal overflows 64 bits, treated as a floating-point literal")
	}
	if c.cur() == '.' && digitValue(c.peekAt(1), base) >= 0 {
		isFloat = true
	}
	if (lowerRune(c.cur()) == 'e' || lowerRune(c.cur()) == 'p') && exponentLooksValid(c) {
		isFloat = true
	}

	if !isFloat {
		kind, _ := c.readIntSuffix()
		if kind.IsFloating() {
			return token.Token{Kind: kind, Float: floatAcc, Begin: begin, End: c.pos()}
		}
		return token.Token{Kind: kind, Uint: uintAcc, Begin: begin, End: c.pos()}
	}

	// Floating-point path: fractional part, then exponent.
	if c.match('.') {
		scale := 1.0 / float64(base)
		for digitValue(c.cur(), base) >= 0 {
			floatAcc += float64(digitValue(c.cur(), base)) * scale
			scale /= float64(base)
			c.advance()
		}
	}

	if lowerRune(c.cur()) == 'e' || lowerRune(c.cur()) == 'p' {
		useBase2 := lowerRune(c.cur()) == 'p'
		c.advance()
		neg := false
		if c.cur() == '+' || c.cur() == '-' {
			neg = c.cur() == '-'
			c.advance()
		}
		var exp int
		for isDigit(c.cur()) {
			exp = exp*10 + int(c.cur()-'0')
			c.advance()
		}
		if neg {
			exp = -exp
		}
		if useBase2 {
			floatAcc *= math.Pow(2, float64(exp))
		} else {
			floatAcc *= math.Pow(10, float64(exp))
		}
		// math.Pow saturates to +/-Inf or 0 on extreme exponents, matching
		// the spec's required saturation behavior without special-casing.
	}

	kind := c.readFloatSuffix()
	return token.Token{Kind: kind, Float: floatAcc, Begin: begin, End: c.pos()}
}

// exponentLooksValid peeks past an 'e'/'p' marker to make sure it is
// actually introducing an exponent (optional sign, then a digit) before
// committing the float branch; otherwise a bare trailing 'e'/'p' is left
// for word/suffix scanning to handle instead of eating a stray letter.
func exponentLooksValid(c *Cursor) bool {
	i := 1
	if c.peekAt(i) == '+' || c.peekAt(i) == '-' {
		i++
	}
	return isDigit(c.peekAt(i))
}

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// digitValue returns the value of r as a digit in the given base, or -1 if
// r is not a valid digit in that base.
func digitValue(r rune, base int) int {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return -1
	}
	if v >= base {
		return -1
	}
	return v
}

// intSuffixes and floatSuffixes are the closed suffix tables from
// spec.md §4.A step 4, longest spellings first for maximal munch.
var intSuffixes = []struct {
	suffix string
	kind   token.Kind
}{
	{"sb", token.SBYTE},
	{"ub", token.BYTE},
	{"us", token.USHORT},
	{"ul", token.ULONG},
	{"sl", token.LONG},
	{"if", token.IFLOAT},
	{"id", token.IDOUBLE},
	{"b", token.BYTE},
	{"s", token.SHORT},
	{"l", token.LONG},
	{"u", token.UINT},
	{"f", token.FLOAT},
	{"d", token.DOUBLE},
	{"i", token.IDOUBLE},
}

var floatSuffixes = []struct {
	suffix string
	kind   token.Kind
}{
	{"if", token.IFLOAT},
	{"id", token.IDOUBLE},
	{"f", token.FLOAT},
	{"d", token.DOUBLE},
	{"i", token.IDOUBLE},
}

func (c *Cursor) readIntSuffix() (token.Kind, bool) {
	if k, n := matchSuffix(c, intSuffixes); n > 0 {
		for i := 0; i < n; i++ {
			c.advance()
		}
		return k, true
	}
	return token.INT, false
}

func (c *Cursor) readFloatSuffix() token.Kind {
	if k, n := matchSuffix(c, floatSuffixes); n > 0 {
		for i := 0; i < n; i++ {
			c.advance()
		}
		return k
	}
	return token.DOUBLE
}

func matchSuffix(c *Cursor, table []struct {
	suffix string
	kind   token.Kind
}) (token.Kind, int) {
	two := strings.ToLower(string([]rune{lowerRune(c.peekAt(0)), lowerRune(c.peekAt(1))}))
	one := strings.ToLower(string(lowerRune(c.peekAt(0))))
	for _, e := range table {
		if len(e.suffix) == 2 && two == e.suffix {
			return e.kind, 2
		}
	}
	for _, e := range table {
		if len(e.suffix) == 1 && one == e.suffix {
			return e.kind, 1
		}
	}
	return token.INT, 0
}
