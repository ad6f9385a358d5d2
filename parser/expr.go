package parser

import (
	"strconv"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
)

// parseExpr reads [+|-] Term {(+|-) Term}. The sign is only allowed
// before the first term.
func (p *parser) parseExpr(toks []lexer.Token) (ast.Expr, []lexer.Token, error) {
	if atEnd(toks) {
		return ast.Expr{}, nil, fail(ErrEmptyExpr, toks)
	}
	if err := p.enter(toks); err != nil {
		return ast.Expr{}, nil, err
	}
	defer p.leave()

	expr := ast.Expr{Sign: ast.NoSign}
	rest := toks
	switch rest[0].Kind {
	case lexer.Plus:
		expr.Sign = ast.PlusSign
		rest = rest[1:]
	case lexer.Minus:
		expr.Sign = ast.MinusSign
		rest = rest[1:]
	}
	first, rest, err := p.parseTerm(rest)
	if err != nil {
		return ast.Expr{}, nil, err
	}
	expr.First = first
	for len(rest) > 0 {
		var op ast.AddOp
		switch rest[0].Kind {
		case lexer.Plus:
			op = ast.Add
		case lexer.Minus:
			op = ast.Subtract
		default:
			return expr, rest, nil
		}
		term, next, err := p.parseTerm(rest[1:])
		if err != nil {
			return ast.Expr{}, nil, err
		}
		expr.Rest = append(expr.Rest, ast.SumTerm{Op: op, Term: term})
		rest = next
	}
	return expr, rest, nil
}

func (p *parser) parseTerm(toks []lexer.Token) (ast.Term, []lexer.Token, error) {
	if atEnd(toks) {
		return ast.Term{}, nil, fail(ErrEmptyTerm, toks)
	}
	first, rest, err := p.parseFactor(toks)
	if err != nil {
		return ast.Term{}, nil, err
	}
	term := ast.Term{First: first}
	for len(rest) > 0 {
		var op ast.MulOp
		switch rest[0].Kind {
		case lexer.Star:
			op = ast.Multiply
		case lexer.Slash:
			op = ast.Divide
		default:
			return term, rest, nil
		}
		factor, next, err := p.parseFactor(rest[1:])
		if err != nil {
			return ast.Term{}, nil, err
		}
		term.Rest = append(term.Rest, ast.ProductFactor{Op: op, Factor: factor})
		rest = next
	}
	return term, rest, nil
}

func (p *parser) parseFactor(toks []lexer.Token) (ast.Factor, []lexer.Token, error) {
	if len(toks) == 0 {
		return nil, nil, fail(ErrInvalidFactor, toks)
	}
	t := toks[0]
	switch t.Kind {
	case lexer.Var:
		v, ok := variable(t)
		if !ok {
			return nil, nil, fail(ErrInvalidFactor, toks)
		}
		return v, toks[1:], nil
	case lexer.Number:
		n, err := strconv.ParseUint(t.Text, 10, 32)
		if err != nil {
			return nil, nil, fail(ErrInvalidNumber, toks)
		}
		return ast.Number(n), toks[1:], nil
	case lexer.LParen:
		inner, rest, err := p.parseExpr(toks[1:])
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 || rest[0].Kind != lexer.RParen {
			return nil, nil, fail(ErrMissingRightParen, rest)
		}
		return ast.Paren{Expr: inner}, rest[1:], nil
	case lexer.RParen:
		return nil, nil, fail(ErrMissingLeftParen, toks)
	default:
		return nil, nil, fail(ErrInvalidFactor, toks)
	}
}

// variable reads the letter of a Var token. Lower case is folded; anything
// else outside A-Z is rejected.
func variable(t lexer.Token) (ast.Var, bool) {
	if t.Kind != lexer.Var || len(t.Text) != 1 {
		return 0, false
	}
	c := t.Text[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	v := ast.Var(c)
	return v, v.Valid()
}
