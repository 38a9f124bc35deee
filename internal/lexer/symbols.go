package lexer

import "kithare/internal/token"

// symbolTable is a maximal-munch table over multi-character operators and
// delimiters, longest spelling first within each starting character.
// Single-character fallbacks are listed last for each starter.
var symbolTable = []struct {
	text      string
	kind      token.Kind
	operator  token.Operator
	delimiter token.Delimiter
}{
	// Three-character.
	{text: "...", kind: token.DELIMITER, delimiter: token.Ellipsis},
	{text: "<<=", kind: token.OPERATOR, operator: token.ShlAssign},
	{text: ">>=", kind: token.OPERATOR, operator: token.ShrAssign},

	// Two-character.
	{text: "==", kind: token.OPERATOR, operator: token.Eq},
	{text: "!=", kind: token.OPERATOR, operator: token.NotEq},
	{text: "<=", kind: token.OPERATOR, operator: token.LtEq},
	{text: ">=", kind: token.OPERATOR, operator: token.GtEq},
	{text: "<<", kind: token.OPERATOR, operator: token.Shl},
	{text: ">>", kind: token.OPERATOR, operator: token.Shr},
	{text: "**", kind: token.OPERATOR, operator: token.Pow2},
	{text: "+=", kind: token.OPERATOR, operator: token.AddAssign},
	{text: "-=", kind: token.OPERATOR, operator: token.SubAssign},
	{text: "*=", kind: token.OPERATOR, operator: token.MulAssign},
	{text: "/=", kind: token.OPERATOR, operator: token.DivAssign},
	{text: "%=", kind: token.OPERATOR, operator: token.ModAssign},
	{text: "^=", kind: token.OPERATOR, operator: token.PowAssign},
	{text: "&=", kind: token.OPERATOR, operator: token.BitAndAssign},
	{text: "|=", kind: token.OPERATOR, operator: token.BitOrAssign},
	{text: "~=", kind: token.OPERATOR, operator: token.BitXorAssign},
	{text: ".=", kind: token.OPERATOR, operator: token.DotAssign},
	{text: "++", kind: token.OPERATOR, operator: token.Inc},
	{text: "--", kind: token.OPERATOR, operator: token.Dec},
	{text: "->", kind: token.DELIMITER, delimiter: token.Arrow},

	// Single-character delimiters.
	{text: ",", kind: token.DELIMITER, delimiter: token.Comma},
	{text: ":", kind: token.DELIMITER, delimiter: token.Colon},
	{text: ";", kind: token.DELIMITER, delimiter: token.Semicolon},
	{text: ".", kind: token.DELIMITER, delimiter: token.Dot},
	{text: "(", kind: token.DELIMITER, delimiter: token.LParen},
	{text: ")", kind: token.DELIMITER, delimiter: token.RParen},
	{text: "{", kind: token.DELIMITER, delimiter: token.LBrace},
	{text: "}", kind: token.DELIMITER, delimiter: token.RBrace},
	{text: "[", kind: token.DELIMITER, delimiter: token.LBracket},
	{text: "]", kind: token.DELIMITER, delimiter: token.RBracket},
	{text: "!", kind: token.DELIMITER, delimiter: token.Bang},
	{text: "@", kind: token.DELIMITER, delimiter: token.At},

	// Single-character operators.
	{text: "+", kind: token.OPERATOR, operator: token.Add},
	{text: "-", kind: token.OPERATOR, operator: token.Sub},
	{text: "*", kind: token.OPERATOR, operator: token.Mul},
	{text: "/", kind: token.OPERATOR, operator: token.Div},
	{text: "%", kind: token.OPERATOR, operator: token.Mod},
	{text: "^", kind: token.OPERATOR, operator: token.Pow},
	{text: "=", kind: token.OPERATOR, operator: token.Assign},
	{text: "<", kind: token.OPERATOR, operator: token.Lt},
	{text: ">", kind: token.OPERATOR, operator: token.Gt},
	{text: "&", kind: token.OPERATOR, operator: token.BitAnd},
	{text: "|", kind: token.OPERATOR, operator: token.BitOr},
	{text: "~", kind: token.OPERATOR, operator: token.BitXor},
}

// scanSymbol tries every entry of symbolTable in order (the table is
// arranged longest-spelling-first) and returns the first that matches at
// the cursor.
func (c *Cursor) scanSymbol(begin token.Position) (token.Token, bool) {
	for _, e := range symbolTable {
		if c.lookingAt(e.text) {
			for range e.text {
				c.advance()
			}
			tok := token.Token{Kind: e.kind, Begin: begin, End: c.pos()}
			if e.kind == token.OPERATOR {
				tok.Operator = e.operator
			} else {
				tok.Delimiter = e.delimiter
			}
			return tok, true
		}
	}
	return token.Token{}, false
}

func (c *Cursor) lookingAt(s string) bool {
	runes := []rune(s)
	for i, r := range runes {
		if c.peekAt(i) != r {
			return false
		}
	}
	return true
}
