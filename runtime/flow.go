package bruntime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tjcardinal/tiny-basic/ast"
)

// immediateLine attributes faults raised by statements typed without a
// line number.
const immediateLine = 0

type resultKind int

const (
	resultNone resultKind = iota
	resultJump
	resultRestart
	resultEnd
)

type execResult struct {
	kind resultKind
	key  int
}

// execStatement runs stmt as line number. next is the key control falls
// through to, which GOSUB saves as its return point.
func (vm *VM) execStatement(stmt ast.Statement, number uint32, next int) (execResult, error) {
	switch s := stmt.(type) {
	case ast.PrintStmt:
		return execResult{}, vm.execPrint(s, number)
	case ast.IfStmt:
		left, err := vm.eval(s.Left, number)
		if err != nil {
			return execResult{}, err
		}
		right, err := vm.eval(s.Right, number)
		if err != nil {
			return execResult{}, err
		}
		if !s.Op.Compare(left, right) {
			return execResult{}, nil
		}
		return vm.execStatement(s.Then, number, next)
	case ast.GotoStmt:
		key, err := vm.resolveTarget(s.Target, number)
		if err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultJump, key: key}, nil
	case ast.GosubStmt:
		if len(vm.stack) >= vm.stackSize {
			return execResult{}, &RuntimeError{Line: number, Err: ErrStackOverflow}
		}
		vm.stack = append(vm.stack, next)
		key, err := vm.resolveTarget(s.Target, number)
		if err != nil {
			return execResult{}, err
		}
		return execResult{kind: resultJump, key: key}, nil
	case ast.ReturnStmt:
		if len(vm.stack) == 0 {
			return execResult{}, &RuntimeError{Line: number, Err: ErrReturnWithoutGosub}
		}
		key := vm.stack[len(vm.stack)-1]
		vm.stack = vm.stack[:len(vm.stack)-1]
		return execResult{kind: resultJump, key: key}, nil
	case ast.InputStmt:
		for _, v := range s.Vars {
			if err := checkVar(v, number); err != nil {
				return execResult{}, err
			}
			n, err := vm.readInput(InputRequest{Line: number, Var: v})
			if err != nil {
				return execResult{}, err
			}
			vm.vars.Set(v, n)
		}
		return execResult{}, nil
	case ast.LetStmt:
		if err := checkVar(s.Var, number); err != nil {
			return execResult{}, err
		}
		n, err := vm.eval(s.Value, number)
		if err != nil {
			return execResult{}, err
		}
		vm.vars.Set(s.Var, n)
		return execResult{}, nil
	case ast.ClearStmt:
		vm.reset()
		return execResult{}, nil
	case ast.RunStmt:
		vm.reset()
		return execResult{kind: resultRestart}, nil
	case ast.ListStmt:
		for _, text := range ast.Listing(vm.lines) {
			vm.emitOutput(Output{Text: text, NewLine: true})
		}
		return execResult{}, nil
	case ast.EndStmt:
		return execResult{kind: resultEnd}, nil
	default:
		return execResult{}, &RuntimeError{Line: number, Err: fmt.Errorf("statement %T: %w", stmt, ErrUnsupported)}
	}
}

func (vm *VM) execPrint(s ast.PrintStmt, number uint32) error {
	var b strings.Builder
	for _, it := range s.Items {
		switch item := it.(type) {
		case ast.StringLit:
			b.WriteString(item.Value)
		case ast.Expr:
			n, err := vm.eval(item, number)
			if err != nil {
				return err
			}
			b.WriteString(strconv.FormatUint(uint64(n), 10))
		default:
			return &RuntimeError{Line: number, Err: fmt.Errorf("print item %T: %w", it, ErrUnsupported)}
		}
	}
	vm.emitOutput(Output{Text: b.String(), NewLine: true})
	return nil
}

func (vm *VM) resolveTarget(target ast.Expr, number uint32) (int, error) {
	n, err := vm.eval(target, number)
	if err != nil {
		return 0, err
	}
	key, ok := vm.table.Key(n)
	if !ok {
		return 0, &RuntimeError{Line: number, Err: fmt.Errorf("%w %d", ErrUndefinedLine, n)}
	}
	return key, nil
}

func checkVar(v ast.Var, number uint32) error {
	if !v.Valid() {
		return &RuntimeError{Line: number, Err: fmt.Errorf("variable %q: %w", byte(v), ErrUnsupported)}
	}
	return nil
}

func (vm *VM) eval(e ast.Expr, number uint32) (uint32, error) {
	n, err := EvalExpr(e, vm.vars)
	if err != nil {
		return 0, &RuntimeError{Line: number, Err: err}
	}
	return n, nil
}
