package bruntime

import (
	"fmt"

	"github.com/tjcardinal/tiny-basic/ast"
)

// EvalExpr evaluates e left to right in uint32 arithmetic. Overflow wraps;
// a zero divisor is ErrDivisionByZero.
func EvalExpr(e ast.Expr, vars Vars) (uint32, error) {
	acc, err := evalTerm(e.First, vars)
	if err != nil {
		return 0, err
	}
	if e.Sign == ast.MinusSign {
		acc = 0 - acc
	}
	for _, st := range e.Rest {
		t, err := evalTerm(st.Term, vars)
		if err != nil {
			return 0, err
		}
		switch st.Op {
		case ast.Add:
			acc += t
		case ast.Subtract:
			acc -= t
		default:
			return 0, fmt.Errorf("additive operator %d: %w", st.Op, ErrUnsupported)
		}
	}
	return acc, nil
}

func evalTerm(t ast.Term, vars Vars) (uint32, error) {
	acc, err := evalFactor(t.First, vars)
	if err != nil {
		return 0, err
	}
	for _, pf := range t.Rest {
		f, err := evalFactor(pf.Factor, vars)
		if err != nil {
			return 0, err
		}
		switch pf.Op {
		case ast.Multiply:
			acc *= f
		case ast.Divide:
			if f == 0 {
				return 0, ErrDivisionByZero
			}
			acc /= f
		default:
			return 0, fmt.Errorf("multiplicative operator %d: %w", pf.Op, ErrUnsupported)
		}
	}
	return acc, nil
}

func evalFactor(f ast.Factor, vars Vars) (uint32, error) {
	switch f := f.(type) {
	case ast.Var:
		if !f.Valid() {
			return 0, fmt.Errorf("variable %q: %w", byte(f), ErrUnsupported)
		}
		return vars.Get(f), nil
	case ast.Number:
		return uint32(f), nil
	case ast.Paren:
		return EvalExpr(f.Expr, vars)
	default:
		return 0, fmt.Errorf("factor %T: %w", f, ErrUnsupported)
	}
}
