package ast

import (
	"strconv"
	"strings"
)

func (s PrintStmt) String() string {
	if len(s.Items) == 0 {
		return "PRINT"
	}
	parts := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		parts = append(parts, it.String())
	}
	return "PRINT " + strings.Join(parts, ", ")
}

func (s StringLit) String() string {
	return `"` + s.Value + `"`
}

func (s IfStmt) String() string {
	return "IF " + s.Left.String() + s.Op.String() + s.Right.String() + " THEN " + s.Then.String()
}

func (s GotoStmt) String() string {
	return "GOTO " + s.Target.String()
}

func (s InputStmt) String() string {
	if len(s.Vars) == 0 {
		return "INPUT"
	}
	parts := make([]string, 0, len(s.Vars))
	for _, v := range s.Vars {
		parts = append(parts, v.String())
	}
	return "INPUT " + strings.Join(parts, ", ")
}

func (s LetStmt) String() string {
	return "LET " + s.Var.String() + "=" + s.Value.String()
}

func (s GosubStmt) String() string {
	return "GOSUB " + s.Target.String()
}

func (ReturnStmt) String() string { return "RETURN" }
func (ClearStmt) String() string  { return "CLEAR" }
func (ListStmt) String() string   { return "LIST" }
func (RunStmt) String() string    { return "RUN" }
func (EndStmt) String() string    { return "END" }

func (e Expr) String() string {
	var b strings.Builder
	switch e.Sign {
	case PlusSign:
		b.WriteByte('+')
	case MinusSign:
		b.WriteByte('-')
	}
	b.WriteString(e.First.String())
	for _, st := range e.Rest {
		b.WriteString(st.Op.String())
		b.WriteString(st.Term.String())
	}
	return b.String()
}

func (t Term) String() string {
	var b strings.Builder
	b.WriteString(t.First.String())
	for _, pf := range t.Rest {
		b.WriteString(pf.Op.String())
		b.WriteString(pf.Factor.String())
	}
	return b.String()
}

func (v Var) String() string {
	return string(rune(v))
}

func (n Number) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

func (p Paren) String() string {
	return "(" + p.Expr.String() + ")"
}

func (op AddOp) String() string {
	if op == Subtract {
		return "-"
	}
	return "+"
}

func (op MulOp) String() string {
	if op == Divide {
		return "/"
	}
	return "*"
}

func (r Relop) String() string {
	switch r {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Less:
		return "<"
	case LessEqual:
		return "<="
	default:
		return "?"
	}
}
