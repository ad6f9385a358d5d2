package lexer

import "fmt"

type Kind int

const (
	EOL Kind = iota
	Comma
	LParen
	RParen

	Plus
	Minus
	Star
	Slash

	Equal
	NotEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	Print
	If
	Then
	Goto
	Input
	Let
	Gosub
	Return
	Clear
	List
	Run
	End

	Var
	Number
	String
)

var kindNames = [...]string{
	EOL:          "end of line",
	Comma:        ",",
	LParen:       "(",
	RParen:       ")",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Equal:        "=",
	NotEqual:     "<>",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Print:        "PRINT",
	If:           "IF",
	Then:         "THEN",
	Goto:         "GOTO",
	Input:        "INPUT",
	Let:          "LET",
	Gosub:        "GOSUB",
	Return:       "RETURN",
	Clear:        "CLEAR",
	List:         "LIST",
	Run:          "RUN",
	End:          "END",
	Var:          "variable",
	Number:       "number",
	String:       "string",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsRelop reports whether k is one of the six comparison operators.
func (k Kind) IsRelop() bool {
	return k >= Equal && k <= LessEqual
}

type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	switch t.Kind {
	case Var, Number:
		return t.Text
	case String:
		return fmt.Sprintf("%q", t.Text)
	default:
		return t.Kind.String()
	}
}

var keywords = map[string]Kind{
	"PRINT":  Print,
	"IF":     If,
	"THEN":   Then,
	"GOTO":   Goto,
	"INPUT":  Input,
	"LET":    Let,
	"GOSUB":  Gosub,
	"RETURN": Return,
	"CLEAR":  Clear,
	"LIST":   List,
	"RUN":    Run,
	"END":    End,
}
