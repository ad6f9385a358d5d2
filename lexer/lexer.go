package lexer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownToken       = errors.New("unknown token")
	ErrUnterminatedString = errors.New("unterminated string")
)

// Error reports a lexeme the dialect cannot classify.
type Error struct {
	Err  error
	Text string
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v %q", e.Line, e.Col, e.Err, e.Text)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Lex splits BASIC source into tokens. Newlines become EOL tokens;
// other whitespace is dropped.
func Lex(src string) ([]Token, error) {
	toks := make([]Token, 0, len(src)/2)
	line, col := 1, 1
	for i := 0; i < len(src); {
		ch := src[i]
		start := col
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
			col++
			continue
		case ch == '\n':
			toks = append(toks, Token{Kind: EOL, Text: "\n", Line: line, Col: start})
			i++
			line++
			col = 1
			continue
		case isLetter(ch):
			j := i + 1
			for j < len(src) && isLetter(src[j]) {
				j++
			}
			word := strings.ToUpper(src[i:j])
			col += j - i
			i = j
			if kind, ok := keywords[word]; ok {
				toks = append(toks, Token{Kind: kind, Text: word, Line: line, Col: start})
				continue
			}
			if len(word) == 1 {
				toks = append(toks, Token{Kind: Var, Text: word, Line: line, Col: start})
				continue
			}
			return nil, &Error{Err: ErrUnknownToken, Text: word, Line: line, Col: start}
		case isDigit(ch):
			j := i + 1
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			toks = append(toks, Token{Kind: Number, Text: src[i:j], Line: line, Col: start})
			col += j - i
			i = j
			continue
		case ch == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				return nil, &Error{Err: ErrUnterminatedString, Text: src[i:], Line: line, Col: start}
			}
			text := src[i+1 : i+1+end]
			toks = append(toks, Token{Kind: String, Text: text, Line: line, Col: start})
			if n := strings.Count(text, "\n"); n > 0 {
				line += n
				col = len(text) - strings.LastIndexByte(text, '\n') + 1
			} else {
				col += end + 2
			}
			i += end + 2
			continue
		}

		if i+1 < len(src) {
			if kind, ok := twoCharOps[src[i:i+2]]; ok {
				toks = append(toks, Token{Kind: kind, Text: src[i : i+2], Line: line, Col: start})
				i += 2
				col += 2
				continue
			}
		}
		kind, ok := oneCharOps[ch]
		if !ok {
			return nil, &Error{Err: ErrUnknownToken, Text: string(ch), Line: line, Col: start}
		}
		toks = append(toks, Token{Kind: kind, Text: string(ch), Line: line, Col: start})
		i++
		col++
	}
	return toks, nil
}

var twoCharOps = map[string]Kind{
	"<>": NotEqual,
	"<=": LessEqual,
	">=": GreaterEqual,
}

var oneCharOps = map[byte]Kind{
	',': Comma,
	'(': LParen,
	')': RParen,
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'=': Equal,
	'>': Greater,
	'<': Less,
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
