package token

// Keyword is the closed set of reserved words. Any other run of letters
// lexes as IDENTIFIER.
type Keyword string

const (
	Import   Keyword = "import"
	Include  Keyword = "include"
	As       Keyword = "as"
	Try      Keyword = "try"
	Def      Keyword = "def"
	Class    Keyword = "class"
	Struct   Keyword = "struct"
	Enum     Keyword = "enum"
	Alias    Keyword = "alias"
	Ref      Keyword = "ref"
	Public   Keyword = "public"
	Private  Keyword = "private"
	Static   Keyword = "static"
	Incase   Keyword = "incase"
	Wild     Keyword = "wild"
	If       Keyword = "if"
	Elif     Keyword = "elif"
	Else     Keyword = "else"
	For      Keyword = "for"
	While    Keyword = "while"
	Do       Keyword = "do"
	Break    Keyword = "break"
	Continue Keyword = "continue"
	Return   Keyword = "return"
	In       Keyword = "in"
)

// Keywords maps the exact spellings above to their Keyword tag. Logical
// operator spellings (and/or/xor/not) are deliberately absent: the scanner
// classifies those as OPERATOR, not KEYWORD, per the word-recognition rules.
var Keywords = map[string]Keyword{
	string(Import):   Import,
	string(Include):  Include,
	string(As):       As,
	string(Try):      Try,
	string(Def):      Def,
	string(Class):    Class,
	string(Struct):   Struct,
	string(Enum):     Enum,
	string(Alias):    Alias,
	string(Ref):      Ref,
	string(Public):   Public,
	string(Private):  Private,
	string(Static):   Static,
	string(Incase):   Incase,
	string(Wild):     Wild,
	string(If):       If,
	string(Elif):     Elif,
	string(Else):     Else,
	string(For):      For,
	string(While):    While,
	string(Do):       Do,
	string(Break):    Break,
	string(Continue): Continue,
	string(Return):   Return,
	string(In):       In,
}

// LogicalOperators holds the word-spelled operators, which must win over
// keyword/identifier classification.
var LogicalOperators = map[string]Operator{
	"and": And,
	"or":  Or,
	"xor": Xor,
	"not": Not,
}

// LookupWord classifies a completed identifier-shaped run of characters.
// It returns the token it should become: KEYWORD, OPERATOR (logical words),
// or IDENTIFIER.
func LookupWord(word string) (kind Kind, kw Keyword, op Operator) {
	if o, ok := LogicalOperators[word]; ok {
		return OPERATOR, "", o
	}
	if k, ok := Keywords[word]; ok {
		return KEYWORD, k, ""
	}
	return IDENTIFIER, "", ""
}
