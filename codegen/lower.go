package codegen

import (
	"fmt"
	"strings"

	"github.com/tjcardinal/tiny-basic/ast"
)

const bodyIndent = "            "

// lowerLine renders the case body for one line. It only reads the
// generator, so lines can be lowered in any order.
func (g *generator) lowerLine(key int, l ast.Line) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%spc = %d;\n", bodyIndent, g.table.Next(key))
	if err := g.lowerStatement(&b, bodyIndent, key, l.Number, l.Stmt); err != nil {
		return "", fmt.Errorf("line %d: %w", l.Number, err)
	}
	return b.String(), nil
}

func (g *generator) lowerStatement(b *strings.Builder, indent string, key int, number uint32, stmt ast.Statement) error {
	emit := func(format string, args ...any) {
		b.WriteString(indent)
		fmt.Fprintf(b, format, args...)
		b.WriteByte('\n')
	}

	switch s := stmt.(type) {
	case ast.PrintStmt:
		for _, it := range s.Items {
			switch item := it.(type) {
			case ast.StringLit:
				emit("fputs(%s, stdout);", cString(item.Value))
			case ast.Expr:
				v, err := g.lowerExpr(item, number)
				if err != nil {
					return err
				}
				emit(`printf("%%" PRIu32, %s);`, v)
			default:
				return fmt.Errorf("print item %T: %w", it, ErrUnsupported)
			}
		}
		emit("putchar('\\n');")
	case ast.IfStmt:
		left, err := g.lowerExpr(s.Left, number)
		if err != nil {
			return err
		}
		right, err := g.lowerExpr(s.Right, number)
		if err != nil {
			return err
		}
		op, err := cRelop(s.Op)
		if err != nil {
			return err
		}
		emit("if (%s %s %s) {", left, op, right)
		if err := g.lowerStatement(b, indent+"    ", key, number, s.Then); err != nil {
			return err
		}
		emit("}")
	case ast.GotoStmt:
		target, err := g.lowerExpr(s.Target, number)
		if err != nil {
			return err
		}
		emit("pc = lookup(%s, %du);", target, number)
	case ast.GosubStmt:
		target, err := g.lowerExpr(s.Target, number)
		if err != nil {
			return err
		}
		emit("if (sp == STACK_SIZE)")
		emit(`    fault(%du, "GOSUB stack overflow");`, number)
		emit("stack[sp++] = %d;", g.table.Next(key))
		emit("pc = lookup(%s, %du);", target, number)
	case ast.ReturnStmt:
		emit("if (sp == 0)")
		emit(`    fault(%du, "RETURN without GOSUB");`, number)
		emit("pc = stack[--sp];")
	case ast.InputStmt:
		for _, v := range s.Vars {
			ref, err := cVar(v)
			if err != nil {
				return err
			}
			emit("%s = input(%du);", ref, number)
		}
	case ast.LetStmt:
		ref, err := cVar(s.Var)
		if err != nil {
			return err
		}
		v, err := g.lowerExpr(s.Value, number)
		if err != nil {
			return err
		}
		emit("%s = %s;", ref, v)
	case ast.ClearStmt:
		emit("reset();")
	case ast.RunStmt:
		emit("reset();")
		emit("pc = 0;")
	case ast.ListStmt:
		emit("list();")
	case ast.EndStmt:
		emit("return 0;")
	default:
		return fmt.Errorf("statement %T: %w", stmt, ErrUnsupported)
	}
	return nil
}

func (g *generator) lowerExpr(e ast.Expr, number uint32) (string, error) {
	acc, err := g.lowerTerm(e.First, number)
	if err != nil {
		return "", err
	}
	switch e.Sign {
	case ast.NoSign, ast.PlusSign:
	case ast.MinusSign:
		acc = "(0u - " + acc + ")"
	default:
		return "", fmt.Errorf("sign %d: %w", e.Sign, ErrUnsupported)
	}
	for _, st := range e.Rest {
		t, err := g.lowerTerm(st.Term, number)
		if err != nil {
			return "", err
		}
		switch st.Op {
		case ast.Add:
			acc = "(" + acc + " + " + t + ")"
		case ast.Subtract:
			acc = "(" + acc + " - " + t + ")"
		default:
			return "", fmt.Errorf("additive operator %d: %w", st.Op, ErrUnsupported)
		}
	}
	return acc, nil
}

func (g *generator) lowerTerm(t ast.Term, number uint32) (string, error) {
	acc, err := g.lowerFactor(t.First, number)
	if err != nil {
		return "", err
	}
	for _, pf := range t.Rest {
		f, err := g.lowerFactor(pf.Factor, number)
		if err != nil {
			return "", err
		}
		switch pf.Op {
		case ast.Multiply:
			acc = "(" + acc + " * " + f + ")"
		case ast.Divide:
			if g.opts.CheckDivision {
				acc = fmt.Sprintf("divide(%s, %s, %du)", acc, f, number)
			} else {
				acc = "(" + acc + " / " + f + ")"
			}
		default:
			return "", fmt.Errorf("multiplicative operator %d: %w", pf.Op, ErrUnsupported)
		}
	}
	return acc, nil
}

func (g *generator) lowerFactor(f ast.Factor, number uint32) (string, error) {
	switch f := f.(type) {
	case ast.Var:
		return cVar(f)
	case ast.Number:
		return fmt.Sprintf("%du", uint32(f)), nil
	case ast.Paren:
		return g.lowerExpr(f.Expr, number)
	default:
		return "", fmt.Errorf("factor %T: %w", f, ErrUnsupported)
	}
}
