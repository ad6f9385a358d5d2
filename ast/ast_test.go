package ast

import "testing"

func num(n uint32) Expr {
	return Expr{First: Term{First: Number(n)}}
}

func TestLineString(t *testing.T) {
	// 20 IF -A+(B*2)>=10 THEN GOSUB 100
	cond := Expr{
		Sign:  MinusSign,
		First: Term{First: Var('A')},
		Rest: []SumTerm{{
			Op: Add,
			Term: Term{First: Paren{Expr: Expr{First: Term{
				First: Var('B'),
				Rest:  []ProductFactor{{Op: Multiply, Factor: Number(2)}},
			}}}},
		}},
	}
	line := Line{Number: 20, Stmt: IfStmt{
		Left:  cond,
		Op:    GreaterEqual,
		Right: num(10),
		Then:  GosubStmt{Target: num(100)},
	}}
	if got, want := line.String(), "20 IF -A+(B*2)>=10 THEN GOSUB 100"; got != want {
		t.Fatalf("unexpected listing: got %q want %q", got, want)
	}
}

func TestPrintAndInputString(t *testing.T) {
	p := PrintStmt{Items: []PrintItem{StringLit{Value: "A="}, Expr{First: Term{First: Var('A')}}}}
	if got := p.String(); got != `PRINT "A=", A` {
		t.Fatalf("unexpected print listing: %q", got)
	}
	if got := (PrintStmt{}).String(); got != "PRINT" {
		t.Fatalf("unexpected empty print listing: %q", got)
	}
	in := InputStmt{Vars: []Var{'X', 'Y'}}
	if got := in.String(); got != "INPUT X, Y" {
		t.Fatalf("unexpected input listing: %q", got)
	}
}

func TestRelopCompare(t *testing.T) {
	cases := []struct {
		op   Relop
		a, b uint32
		want bool
	}{
		{Equal, 1, 1, true},
		{NotEqual, 1, 1, false},
		{Greater, 2, 1, true},
		{GreaterEqual, 1, 1, true},
		{Less, 1, 2, true},
		{LessEqual, 3, 2, false},
	}
	for _, tc := range cases {
		if got := tc.op.Compare(tc.a, tc.b); got != tc.want {
			t.Fatalf("%d %s %d: got %v want %v", tc.a, tc.op, tc.b, got, tc.want)
		}
	}
}

func TestVarIndex(t *testing.T) {
	if Var('A').Index() != 0 || Var('Z').Index() != 25 {
		t.Fatalf("unexpected variable offsets")
	}
	if Var('a').Valid() {
		t.Fatalf("lower-case variable must not be valid")
	}
}
