package parser

import (
	"strconv"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
)

const maxDepth = 256

type parser struct {
	depth int
}

// Parse turns a token stream into program lines. Every token must be
// consumed and line numbers must strictly increase.
func Parse(toks []lexer.Token) ([]ast.Line, error) {
	p := &parser{}
	lines := []ast.Line{}
	rest := toks
	for len(rest) > 0 {
		if rest[0].Kind == lexer.EOL {
			rest = rest[1:]
			continue
		}
		line, next, err := p.parseLine(rest)
		if err != nil {
			return nil, err
		}
		if n := len(lines); n > 0 && line.Number <= lines[n-1].Number {
			return nil, withLine(fail(ErrLineNumbersNotIncreasing, rest), line.Number)
		}
		lines = append(lines, line)
		rest = next
	}
	return lines, nil
}

// ParseLine parses exactly one numbered line.
func ParseLine(toks []lexer.Token) (ast.Line, error) {
	p := &parser{}
	line, rest, err := p.parseLine(toks)
	if err != nil {
		return ast.Line{}, err
	}
	rest = skipEOL(rest)
	if len(rest) > 0 {
		return ast.Line{}, withLine(unexpected(ErrTrailingTokens, rest), line.Number)
	}
	return line, nil
}

// ParseStatement parses one statement with no line number, as typed in
// immediate mode.
func ParseStatement(toks []lexer.Token) (ast.Statement, error) {
	p := &parser{}
	stmt, rest, err := p.parseStatement(toks)
	if err != nil {
		return nil, err
	}
	rest = skipEOL(rest)
	if len(rest) > 0 {
		return nil, unexpected(ErrTrailingTokens, rest)
	}
	return stmt, nil
}

func (p *parser) parseLine(toks []lexer.Token) (ast.Line, []lexer.Token, error) {
	if len(toks) == 0 || toks[0].Kind != lexer.Number {
		return ast.Line{}, nil, fail(ErrInvalidLine, toks)
	}
	n, err := strconv.ParseUint(toks[0].Text, 10, 32)
	if err != nil {
		return ast.Line{}, nil, fail(ErrInvalidLineNumber, toks)
	}
	number := uint32(n)
	stmt, rest, err := p.parseStatement(toks[1:])
	if err != nil {
		return ast.Line{}, nil, withLine(err, number)
	}
	if !atEnd(rest) {
		return ast.Line{}, nil, withLine(unexpected(ErrTrailingTokens, rest), number)
	}
	if len(rest) > 0 {
		rest = rest[1:]
	}
	return ast.Line{Number: number, Stmt: stmt}, rest, nil
}

// atEnd reports whether a statement may stop here.
func atEnd(toks []lexer.Token) bool {
	return len(toks) == 0 || toks[0].Kind == lexer.EOL
}

func skipEOL(toks []lexer.Token) []lexer.Token {
	for len(toks) > 0 && toks[0].Kind == lexer.EOL {
		toks = toks[1:]
	}
	return toks
}

func (p *parser) enter(toks []lexer.Token) error {
	p.depth++
	if p.depth > maxDepth {
		return fail(ErrNestingTooDeep, toks)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}
