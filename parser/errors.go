package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tjcardinal/tiny-basic/lexer"
)

var (
	ErrLineNumbersNotIncreasing = errors.New("line numbers not increasing")
	ErrInvalidLineNumber        = errors.New("invalid line number")
	ErrInvalidLine              = errors.New("line must start with a number")
	ErrEmptyStatement           = errors.New("empty statement")
	ErrInvalidStatement         = errors.New("unknown statement")
	ErrEmptyExpr                = errors.New("empty expression")
	ErrEmptyTerm                = errors.New("empty term")
	ErrInvalidFactor            = errors.New("expected variable, number or (")
	ErrInvalidNumber            = errors.New("invalid number")
	ErrMissingRightParen        = errors.New("missing )")
	ErrMissingLeftParen         = errors.New("missing (")
	ErrInvalidIf                = errors.New("IF without THEN")
	ErrInvalidRelop             = errors.New("expected relational operator")
	ErrInvalidInput             = errors.New("INPUT expects variables")
	ErrInvalidLet               = errors.New("LET expects VAR=EXPR")
	ErrTrailingTokens           = errors.New("unexpected tokens after statement")
	ErrNestingTooDeep           = errors.New("nesting too deep")
)

// SyntaxError locates a parse failure. Tok is the offending token unless
// AtEOF is set; LineNumber is the BASIC line being parsed when HasLine is set.
type SyntaxError struct {
	Err        error
	Tok        lexer.Token
	AtEOF      bool
	LineNumber uint32
	HasLine    bool
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if !e.AtEOF {
		fmt.Fprintf(&b, "%d:%d: ", e.Tok.Line, e.Tok.Col)
	}
	if e.HasLine {
		fmt.Fprintf(&b, "line %d: ", e.LineNumber)
	}
	b.WriteString(e.Err.Error())
	if e.AtEOF {
		b.WriteString(" at end of input")
	} else {
		fmt.Fprintf(&b, " near %s", e.Tok)
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func fail(err error, toks []lexer.Token) error {
	if len(toks) == 0 {
		return &SyntaxError{Err: err, AtEOF: true}
	}
	return &SyntaxError{Err: err, Tok: toks[0]}
}

func withLine(err error, n uint32) error {
	var se *SyntaxError
	if errors.As(err, &se) && !se.HasLine {
		se.LineNumber = n
		se.HasLine = true
	}
	return err
}

// unexpected is fail for a token the grammar cannot take here. A stray )
// is always reported as a paren mismatch.
func unexpected(err error, toks []lexer.Token) error {
	if len(toks) > 0 && toks[0].Kind == lexer.RParen {
		return fail(ErrMissingLeftParen, toks)
	}
	return fail(err, toks)
}
