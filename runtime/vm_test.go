package bruntime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
	"github.com/tjcardinal/tiny-basic/parser"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

func load(t *testing.T, src string, opts ...bruntime.Option) *bruntime.VM {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	lines, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	vm, err := bruntime.New(lines, opts...)
	if err != nil {
		t.Fatalf("new vm failed: %v", err)
	}
	return vm
}

func statement(t *testing.T, src string) ast.Statement {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	stmt, err := parser.ParseStatement(toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return stmt
}

func texts(out []bruntime.Output) []string {
	s := make([]string, 0, len(out))
	for _, o := range out {
		s = append(s, o.Text)
	}
	return s
}

func expectOutput(t *testing.T, out []bruntime.Output, want ...string) {
	t.Helper()
	got := texts(out)
	if len(got) != len(want) {
		t.Fatalf("unexpected output: got %q want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] || !out[i].NewLine {
			t.Fatalf("output %d: got %+v want %q", i, out[i], want[i])
		}
	}
}

func TestRunStraightLine(t *testing.T) {
	vm := load(t, "10 LET A=5\n20 LET B=A+6\n30 PRINT B\n40 END")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "11")
}

func TestRunConditionalJump(t *testing.T) {
	vm := load(t, "10 LET A=1\n20 IF A=1 THEN GOTO 40\n30 PRINT 2\n40 PRINT 1")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "1")
}

func TestRunGosubReturn(t *testing.T) {
	vm := load(t, `
10 GOSUB 100
20 PRINT "back"
30 GOSUB 100
40 END
100 PRINT "sub"
110 RETURN
`)
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "sub", "back", "sub")
}

func TestRunNestedGosub(t *testing.T) {
	vm := load(t, `
10 GOSUB 100
20 PRINT "done"
30 END
100 GOSUB 200
110 PRINT "outer"
120 RETURN
200 PRINT "inner"
210 RETURN
`)
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "inner", "outer", "done")
}

func TestRunPrecedence(t *testing.T) {
	vm := load(t, "10 PRINT 2+3*4\n20 PRINT (2+3)*4\n30 PRINT 20-6/3-1\n40 PRINT -2+5")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "14", "20", "17", "3")
}

func TestRunUnsignedWrap(t *testing.T) {
	vm := load(t, "10 LET A=0-1\n20 PRINT A\n30 PRINT A+2\n40 PRINT -1")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "4294967295", "1", "4294967295")
}

func TestRunComputedGoto(t *testing.T) {
	vm := load(t, "10 LET A=3\n20 GOTO A*10\n25 PRINT 25\n30 PRINT 30")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "30")
}

func TestRunPrintConcatenates(t *testing.T) {
	vm := load(t, `10 LET A=4
20 PRINT "A=" A ", twice " A*2
30 PRINT`)
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "A=4, twice 8", "")
}

func TestRunFaults(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []bruntime.Option
		line uint32
		want error
	}{
		{"undefined line", "10 GOTO 99", nil, 10, bruntime.ErrUndefinedLine},
		{"return without gosub", "10 PRINT 1\n20 RETURN", nil, 20, bruntime.ErrReturnWithoutGosub},
		{"stack overflow", "10 GOSUB 10", []bruntime.Option{bruntime.WithStackSize(4)}, 10, bruntime.ErrStackOverflow},
		{"division by zero", "10 LET A=1/B", nil, 10, bruntime.ErrDivisionByZero},
		{"input exhausted", "10 INPUT A", nil, 10, bruntime.ErrInputExhausted},
		{"step limit", "10 GOTO 10", []bruntime.Option{bruntime.WithMaxSteps(100)}, 10, bruntime.ErrStepLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm := load(t, tc.src, tc.opts...)
			out, err := vm.Run(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if out != nil {
				t.Fatalf("failed run must not return output: %+v", out)
			}
			var re *bruntime.RuntimeError
			if !errors.As(err, &re) || re.Line != tc.line {
				t.Fatalf("unexpected fault attribution: %v", err)
			}
		})
	}
}

func TestRunInputQueue(t *testing.T) {
	vm := load(t, "10 INPUT A, B\n20 INPUT C\n30 PRINT A+B+C")
	vm.EnqueueInput("3 4", "+5")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "12")
}

func TestRunInputProvider(t *testing.T) {
	var asked []ast.Var
	vm := load(t, "10 INPUT X, Y\n20 PRINT X*Y", bruntime.WithInputProvider(func(req bruntime.InputRequest) (string, error) {
		asked = append(asked, req.Var)
		return "6 7", nil
	}))
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "42")
	if len(asked) != 1 || asked[0] != 'X' {
		t.Fatalf("provider must be asked once for X, got %q", asked)
	}
}

func TestRunBadInput(t *testing.T) {
	vm := load(t, "10 INPUT A")
	vm.EnqueueInput("ten")
	if _, err := vm.Run(context.Background()); !errors.Is(err, bruntime.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}

	vm = load(t, "10 INPUT A", bruntime.WithInputProvider(func(bruntime.InputRequest) (string, error) {
		return "   ", nil
	}))
	if _, err := vm.Run(context.Background()); !errors.Is(err, bruntime.ErrBadInput) {
		t.Fatalf("expected ErrBadInput for blank line, got %v", err)
	}
}

func TestRunHousekeeping(t *testing.T) {
	vm := load(t, "10 LET A=5\n20 CLEAR\n30 PRINT A\n40 LIST")
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "0", "10 LET A=5", "20 CLEAR", "30 PRINT A", "40 LIST")
}

func TestRunRestartsProgram(t *testing.T) {
	vm := load(t, "10 PRINT A\n20 IF B=0 THEN LET B=1\n30 LET A=A+1\n40 IF A<3 THEN GOTO 30\n50 END", bruntime.WithMaxSteps(1000))
	out, err := vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "0")
	if got := vm.Vars(); got[0] != 3 || got[1] != 1 {
		t.Fatalf("unexpected variables: A=%d B=%d", got[0], got[1])
	}

	vm = load(t, "10 INPUT A\n20 PRINT A\n30 IF A<>0 THEN RUN")
	vm.EnqueueInput("5", "0")
	out, err = vm.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, out, "5", "0")
}

func TestExecImmediate(t *testing.T) {
	vm := load(t, "100 PRINT A*2\n110 END")
	ctx := context.Background()
	if _, err := vm.Exec(ctx, statement(t, "LET A=21")); err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	out, err := vm.Exec(ctx, statement(t, "PRINT A"))
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	expectOutput(t, out, "21")

	out, err = vm.Exec(ctx, statement(t, "GOTO 100"))
	if err != nil {
		t.Fatalf("exec failed: %v", err)
	}
	expectOutput(t, out, "42")

	if _, err := vm.Exec(ctx, statement(t, "RETURN")); !errors.Is(err, bruntime.ErrReturnWithoutGosub) {
		t.Fatalf("expected ErrReturnWithoutGosub, got %v", err)
	}
}

func TestRunHonoursContext(t *testing.T) {
	vm := load(t, "10 GOTO 10")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := vm.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOutputHook(t *testing.T) {
	var seen []string
	vm := load(t, "10 PRINT 1\n20 PRINT 2", bruntime.WithOutputHook(func(o bruntime.Output) {
		seen = append(seen, o.Text)
	}))
	if _, err := vm.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(seen) != 2 || seen[0] != "1" || seen[1] != "2" {
		t.Fatalf("unexpected hook calls: %q", seen)
	}
}

func TestEvalExpr(t *testing.T) {
	var vars bruntime.Vars
	vars.Set('A', 7)
	toks, err := lexer.Lex("10 LET Z=(A+1)*A/2")
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	lines, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	n, err := bruntime.EvalExpr(lines[0].Stmt.(ast.LetStmt).Value, vars)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if n != 28 {
		t.Fatalf("unexpected value: %d", n)
	}
}

func TestRunRejectsInvalidVars(t *testing.T) {
	one := ast.Expr{First: ast.Term{First: ast.Number(1)}}
	cases := []struct {
		name string
		stmt ast.Statement
	}{
		{"let", ast.LetStmt{Var: 'a', Value: one}},
		{"input", ast.InputStmt{Vars: []ast.Var{'#'}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vm, err := bruntime.New([]ast.Line{{Number: 10, Stmt: tc.stmt}})
			if err != nil {
				t.Fatalf("new vm failed: %v", err)
			}
			vm.EnqueueInput("1")
			_, err = vm.Run(context.Background())
			if !errors.Is(err, bruntime.ErrUnsupported) {
				t.Fatalf("expected ErrUnsupported, got %v", err)
			}
			var re *bruntime.RuntimeError
			if !errors.As(err, &re) || re.Line != 10 {
				t.Fatalf("unexpected fault attribution: %v", err)
			}
		})
	}

	var vars bruntime.Vars
	vars.Set('a', 9)
	if vars.Get('a') != 0 || vars != (bruntime.Vars{}) {
		t.Fatalf("out of range names must not touch variables: %v", vars)
	}
}
