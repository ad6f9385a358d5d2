package codegen

import "github.com/tjcardinal/tiny-basic/ast"

// needs records which runtime helpers the program references, so that
// only those are emitted.
type needs struct {
	vars    bool
	fault   bool
	stack   bool
	lookup  bool
	input   bool
	divide  bool
	reset   bool
	listing bool
}

func analyzeProgram(lines []ast.Line, opts Options) needs {
	var n needs
	for _, l := range lines {
		n.analyzeStatement(l.Stmt, opts)
	}
	n.fault = n.lookup || n.stack || n.input || n.divide
	return n
}

func (n *needs) analyzeStatement(stmt ast.Statement, opts Options) {
	switch s := stmt.(type) {
	case ast.PrintStmt:
		for _, it := range s.Items {
			if e, ok := it.(ast.Expr); ok {
				n.analyzeExpr(e, opts)
			}
		}
	case ast.IfStmt:
		n.analyzeExpr(s.Left, opts)
		n.analyzeExpr(s.Right, opts)
		n.analyzeStatement(s.Then, opts)
	case ast.GotoStmt:
		n.lookup = true
		n.analyzeExpr(s.Target, opts)
	case ast.GosubStmt:
		n.lookup = true
		n.stack = true
		n.analyzeExpr(s.Target, opts)
	case ast.ReturnStmt:
		n.stack = true
	case ast.InputStmt:
		if len(s.Vars) > 0 {
			n.input = true
			n.vars = true
		}
	case ast.LetStmt:
		n.vars = true
		n.analyzeExpr(s.Value, opts)
	case ast.ClearStmt, ast.RunStmt:
		n.reset = true
		n.vars = true
	case ast.ListStmt:
		n.listing = true
	}
}

func (n *needs) analyzeExpr(e ast.Expr, opts Options) {
	n.analyzeTerm(e.First, opts)
	for _, st := range e.Rest {
		n.analyzeTerm(st.Term, opts)
	}
}

func (n *needs) analyzeTerm(t ast.Term, opts Options) {
	n.analyzeFactor(t.First, opts)
	for _, pf := range t.Rest {
		if pf.Op == ast.Divide && opts.CheckDivision {
			n.divide = true
		}
		n.analyzeFactor(pf.Factor, opts)
	}
}

func (n *needs) analyzeFactor(f ast.Factor, opts Options) {
	switch f := f.(type) {
	case ast.Var:
		n.vars = true
	case ast.Paren:
		n.analyzeExpr(f.Expr, opts)
	}
}
