package parser_test

import (
	"errors"
	"testing"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
	"github.com/tjcardinal/tiny-basic/parser"
)

func parse(t *testing.T, src string) ([]ast.Line, error) {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	return parser.Parse(toks)
}

func TestParseProgram(t *testing.T) {
	lines, err := parse(t, `
10 LET A = 5
20 PRINT "A=" A
30 IF A > 3 THEN GOTO 50
40 END
50 GOSUB 100
60 END
100 RETURN
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []string{
		"10 LET A=5",
		`20 PRINT "A=", A`,
		"30 IF A>3 THEN GOTO 50",
		"40 END",
		"50 GOSUB 100",
		"60 END",
		"100 RETURN",
	}
	got := ast.Listing(lines)
	if len(got) != len(want) {
		t.Fatalf("unexpected line count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `10 LET A=-B+(C*2)/D-7
20 IF A<>B THEN IF B<=C THEN PRINT "deep", A
30 INPUT X, Y, Z
40 GOTO A*10+30
50 CLEAR
60 LIST
70 RUN
80 PRINT
`
	first, err := parse(t, src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var listing string
	for _, l := range ast.Listing(first) {
		listing += l + "\n"
	}
	if listing != src {
		t.Fatalf("listing differs from source:\n%s", listing)
	}
	second, err := parse(t, listing)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("reparse changed line count")
	}
}

func TestParsePrecedence(t *testing.T) {
	lines, err := parse(t, "10 LET A=2+3*4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	let := lines[0].Stmt.(ast.LetStmt)
	if len(let.Value.Rest) != 1 {
		t.Fatalf("expected one additive term, got %d", len(let.Value.Rest))
	}
	product := let.Value.Rest[0].Term
	if len(product.Rest) != 1 || product.Rest[0].Op != ast.Multiply {
		t.Fatalf("3*4 must group into one term: %+v", product)
	}
}

func TestParsePrintWithoutSeparators(t *testing.T) {
	lines, err := parse(t, `10 PRINT "X" A "Y" (B)`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	items := lines[0].Stmt.(ast.PrintStmt).Items
	if len(items) != 4 {
		t.Fatalf("unexpected item count: %d", len(items))
	}
	if _, ok := items[0].(ast.StringLit); !ok {
		t.Fatalf("first item must be a string: %T", items[0])
	}
	if _, ok := items[1].(ast.Expr); !ok {
		t.Fatalf("second item must be an expression: %T", items[1])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"not increasing", "20 END\n10 END", parser.ErrLineNumbersNotIncreasing},
		{"duplicate", "10 END\n10 END", parser.ErrLineNumbersNotIncreasing},
		{"missing number", "PRINT 1", parser.ErrInvalidLine},
		{"line number overflow", "99999999999 END", parser.ErrInvalidLineNumber},
		{"empty statement", "10\n20 END", parser.ErrEmptyStatement},
		{"unknown statement", "10 THEN", parser.ErrInvalidStatement},
		{"empty expr", "10 GOTO", parser.ErrEmptyExpr},
		{"empty term", "10 LET A=-", parser.ErrEmptyTerm},
		{"sign on later term", "10 LET A=A+-B", parser.ErrInvalidFactor},
		{"number overflow", "10 LET A=4294967296", parser.ErrInvalidNumber},
		{"missing right paren", "10 LET A=(1+2", parser.ErrMissingRightParen},
		{"missing left paren", "10 LET A=)", parser.ErrMissingLeftParen},
		{"if without then", "10 IF A=1 GOTO 10", parser.ErrInvalidIf},
		{"bad relop", "10 IF A THEN END", parser.ErrInvalidRelop},
		{"bad input", "10 INPUT A, 1", parser.ErrInvalidInput},
		{"let without equal", "10 LET A 1", parser.ErrInvalidLet},
		{"trailing tokens", "10 END 20", parser.ErrTrailingTokens},
		{"unbalanced close", "10 LET A=(1))", parser.ErrMissingLeftParen},
		{"stray close after let", "10 LET A=1)", parser.ErrMissingLeftParen},
		{"stray close after goto", "10 GOTO 10)", parser.ErrMissingLeftParen},
		{"stray close after gosub", "10 GOSUB 10)", parser.ErrMissingLeftParen},
		{"stray close before then", "10 IF A=1) THEN END", parser.ErrMissingLeftParen},
		{"stray close before relop", "10 IF A)=1 THEN END", parser.ErrMissingLeftParen},
		{"stray close in print", "10 PRINT 1)", parser.ErrMissingLeftParen},
		{"stray close in input", "10 INPUT A)", parser.ErrMissingLeftParen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.src)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var se *parser.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
		})
	}
}

func TestSyntaxErrorCarriesLine(t *testing.T) {
	_, err := parse(t, "10 END\n20 LET A 1")
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if !se.HasLine || se.LineNumber != 20 {
		t.Fatalf("unexpected line attribution: %+v", se)
	}
	if se.Tok.Line != 2 {
		t.Fatalf("unexpected source row: %d", se.Tok.Line)
	}
}

func TestParseNestingLimit(t *testing.T) {
	src := "10 LET A="
	for i := 0; i < 400; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 400; i++ {
		src += ")"
	}
	if _, err := parse(t, src); !errors.Is(err, parser.ErrNestingTooDeep) {
		t.Fatalf("expected nesting error, got %v", err)
	}
}

func TestParseStatementAndLine(t *testing.T) {
	toks, err := lexer.Lex("print 1+1")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	stmt, err := parser.ParseStatement(toks)
	if err != nil {
		t.Fatalf("parse statement failed: %v", err)
	}
	if got := stmt.String(); got != "PRINT 1+1" {
		t.Fatalf("unexpected statement: %q", got)
	}

	toks, err = lexer.Lex("30 goto 10\n")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	line, err := parser.ParseLine(toks)
	if err != nil {
		t.Fatalf("parse line failed: %v", err)
	}
	if line.Number != 30 {
		t.Fatalf("unexpected line number: %d", line.Number)
	}
}

func tok(k lexer.Kind, text string) lexer.Token {
	return lexer.Token{Kind: k, Text: text, Line: 1, Col: 1}
}

func TestParseFoldsLowerCaseVars(t *testing.T) {
	lines, err := parser.Parse([]lexer.Token{
		tok(lexer.Number, "10"), tok(lexer.Let, "LET"), tok(lexer.Var, "a"), tok(lexer.Equal, "="), tok(lexer.Var, "b"), tok(lexer.EOL, ""),
		tok(lexer.Number, "20"), tok(lexer.Input, "INPUT"), tok(lexer.Var, "z"), tok(lexer.EOL, ""),
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := lines[0].Stmt.String(); got != "LET A=B" {
		t.Fatalf("unexpected statement: %q", got)
	}
	if got := lines[1].Stmt.String(); got != "INPUT Z" {
		t.Fatalf("unexpected statement: %q", got)
	}
}

func TestParseRejectsMalformedVars(t *testing.T) {
	cases := []struct {
		name string
		toks []lexer.Token
		want error
	}{
		{"empty let target", []lexer.Token{tok(lexer.Number, "10"), tok(lexer.Let, "LET"), tok(lexer.Var, ""), tok(lexer.Equal, "="), tok(lexer.Number, "1")}, parser.ErrInvalidLet},
		{"digit let target", []lexer.Token{tok(lexer.Number, "10"), tok(lexer.Let, "LET"), tok(lexer.Var, "1"), tok(lexer.Equal, "="), tok(lexer.Number, "1")}, parser.ErrInvalidLet},
		{"long factor", []lexer.Token{tok(lexer.Number, "10"), tok(lexer.Print, "PRINT"), tok(lexer.Var, "AB")}, parser.ErrInvalidFactor},
		{"empty input var", []lexer.Token{tok(lexer.Number, "10"), tok(lexer.Input, "INPUT"), tok(lexer.Var, "")}, parser.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parser.Parse(tc.toks); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
