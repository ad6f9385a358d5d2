package parser

import (
	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
)

func (p *parser) parseStatement(toks []lexer.Token) (ast.Statement, []lexer.Token, error) {
	if atEnd(toks) {
		return nil, nil, fail(ErrEmptyStatement, toks)
	}
	if err := p.enter(toks); err != nil {
		return nil, nil, err
	}
	defer p.leave()

	head, rest := toks[0], toks[1:]
	switch head.Kind {
	case lexer.Print:
		return p.parsePrint(rest)
	case lexer.If:
		return p.parseIf(rest)
	case lexer.Goto:
		target, rest, err := p.parseExpr(rest)
		if err != nil {
			return nil, nil, err
		}
		return ast.GotoStmt{Target: target}, rest, nil
	case lexer.Input:
		return p.parseInput(rest)
	case lexer.Let:
		return p.parseLet(rest)
	case lexer.Gosub:
		target, rest, err := p.parseExpr(rest)
		if err != nil {
			return nil, nil, err
		}
		return ast.GosubStmt{Target: target}, rest, nil
	case lexer.Return:
		return ast.ReturnStmt{}, rest, nil
	case lexer.Clear:
		return ast.ClearStmt{}, rest, nil
	case lexer.List:
		return ast.ListStmt{}, rest, nil
	case lexer.Run:
		return ast.RunStmt{}, rest, nil
	case lexer.End:
		return ast.EndStmt{}, rest, nil
	default:
		return nil, nil, fail(ErrInvalidStatement, toks)
	}
}

// parsePrint takes strings and expressions in order of appearance until
// the end of the line. A comma between two items is accepted and dropped.
func (p *parser) parsePrint(toks []lexer.Token) (ast.Statement, []lexer.Token, error) {
	items := []ast.PrintItem{}
	rest := toks
	for !atEnd(rest) {
		if len(items) > 0 && rest[0].Kind == lexer.Comma {
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0].Kind == lexer.String {
			items = append(items, ast.StringLit{Value: rest[0].Text})
			rest = rest[1:]
			continue
		}
		expr, next, err := p.parseExpr(rest)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, expr)
		rest = next
	}
	return ast.PrintStmt{Items: items}, rest, nil
}

func (p *parser) parseIf(toks []lexer.Token) (ast.Statement, []lexer.Token, error) {
	left, rest, err := p.parseExpr(toks)
	if err != nil {
		return nil, nil, err
	}
	op, rest, err := parseRelop(rest)
	if err != nil {
		return nil, nil, err
	}
	right, rest, err := p.parseExpr(rest)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) == 0 || rest[0].Kind != lexer.Then {
		return nil, nil, unexpected(ErrInvalidIf, rest)
	}
	then, rest, err := p.parseStatement(rest[1:])
	if err != nil {
		return nil, nil, err
	}
	return ast.IfStmt{Left: left, Op: op, Right: right, Then: then}, rest, nil
}

var relops = map[lexer.Kind]ast.Relop{
	lexer.Equal:        ast.Equal,
	lexer.NotEqual:     ast.NotEqual,
	lexer.Greater:      ast.Greater,
	lexer.GreaterEqual: ast.GreaterEqual,
	lexer.Less:         ast.Less,
	lexer.LessEqual:    ast.LessEqual,
}

func parseRelop(toks []lexer.Token) (ast.Relop, []lexer.Token, error) {
	if len(toks) > 0 {
		if op, ok := relops[toks[0].Kind]; ok {
			return op, toks[1:], nil
		}
	}
	return 0, nil, unexpected(ErrInvalidRelop, toks)
}

func (p *parser) parseInput(toks []lexer.Token) (ast.Statement, []lexer.Token, error) {
	vars := []ast.Var{}
	rest := toks
	for !atEnd(rest) {
		if len(vars) > 0 && rest[0].Kind == lexer.Comma {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			return nil, nil, fail(ErrInvalidInput, rest)
		}
		v, ok := variable(rest[0])
		if !ok {
			return nil, nil, unexpected(ErrInvalidInput, rest)
		}
		vars = append(vars, v)
		rest = rest[1:]
	}
	return ast.InputStmt{Vars: vars}, rest, nil
}

func (p *parser) parseLet(toks []lexer.Token) (ast.Statement, []lexer.Token, error) {
	if len(toks) < 2 || toks[1].Kind != lexer.Equal {
		return nil, nil, fail(ErrInvalidLet, toks)
	}
	v, ok := variable(toks[0])
	if !ok {
		return nil, nil, fail(ErrInvalidLet, toks)
	}
	value, rest, err := p.parseExpr(toks[2:])
	if err != nil {
		return nil, nil, err
	}
	return ast.LetStmt{Var: v, Value: value}, rest, nil
}
