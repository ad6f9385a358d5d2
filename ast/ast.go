package ast

import "strconv"

// Line pairs a BASIC line number with the single statement it holds.
type Line struct {
	Number uint32
	Stmt   Statement
}

func (l Line) String() string {
	return strconv.FormatUint(uint64(l.Number), 10) + " " + l.Stmt.String()
}

type Statement interface {
	isStatement()
	String() string
}

type PrintStmt struct {
	Items []PrintItem
}

func (PrintStmt) isStatement() {}

// PrintItem is either an Expr or a StringLit.
type PrintItem interface {
	isPrintItem()
	String() string
}

type StringLit struct {
	Value string
}

func (StringLit) isPrintItem() {}

type IfStmt struct {
	Left  Expr
	Op    Relop
	Right Expr
	Then  Statement
}

func (IfStmt) isStatement() {}

type GotoStmt struct {
	Target Expr
}

func (GotoStmt) isStatement() {}

type InputStmt struct {
	Vars []Var
}

func (InputStmt) isStatement() {}

type LetStmt struct {
	Var   Var
	Value Expr
}

func (LetStmt) isStatement() {}

type GosubStmt struct {
	Target Expr
}

func (GosubStmt) isStatement() {}

type ReturnStmt struct{}

func (ReturnStmt) isStatement() {}

type ClearStmt struct{}

func (ClearStmt) isStatement() {}

type ListStmt struct{}

func (ListStmt) isStatement() {}

type RunStmt struct{}

func (RunStmt) isStatement() {}

type EndStmt struct{}

func (EndStmt) isStatement() {}

type Sign int

const (
	NoSign Sign = iota
	PlusSign
	MinusSign
)

type AddOp int

const (
	Add AddOp = iota
	Subtract
)

type MulOp int

const (
	Multiply MulOp = iota
	Divide
)

// Expr is a left-associative sum. Only the first term may carry a sign.
type Expr struct {
	Sign  Sign
	First Term
	Rest  []SumTerm
}

func (Expr) isPrintItem() {}

type SumTerm struct {
	Op   AddOp
	Term Term
}

// Term is a left-associative product of factors.
type Term struct {
	First Factor
	Rest  []ProductFactor
}

type ProductFactor struct {
	Op     MulOp
	Factor Factor
}

type Factor interface {
	isFactor()
	String() string
}

// Var names one of the 26 variables, 'A' through 'Z'.
type Var byte

func (Var) isFactor() {}

// Index is the variable's offset in the A..Z storage.
func (v Var) Index() int {
	return int(v - 'A')
}

func (v Var) Valid() bool {
	return v >= 'A' && v <= 'Z'
}

type Number uint32

func (Number) isFactor() {}

type Paren struct {
	Expr Expr
}

func (Paren) isFactor() {}

type Relop int

const (
	Equal Relop = iota
	NotEqual
	Greater
	GreaterEqual
	Less
	LessEqual
)

// Compare applies the relational operator to two values.
func (r Relop) Compare(a, b uint32) bool {
	switch r {
	case Equal:
		return a == b
	case NotEqual:
		return a != b
	case Greater:
		return a > b
	case GreaterEqual:
		return a >= b
	case Less:
		return a < b
	case LessEqual:
		return a <= b
	default:
		return false
	}
}

// Listing renders a program the way LIST prints it, one line per entry.
func Listing(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.String())
	}
	return out
}
