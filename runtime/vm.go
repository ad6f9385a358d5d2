// Package bruntime executes parsed BASIC programs directly. It follows the
// same dispatch model as the generated C: dense line keys, a program
// counter, and a bounded GOSUB stack.
package bruntime

import (
	"context"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/dispatch"
)

const DefaultStackSize = 64

type Output struct {
	Text    string
	NewLine bool
}

type VM struct {
	lines         []ast.Line
	table         *dispatch.Table
	vars          Vars
	stack         []int
	stackSize     int
	maxSteps      int
	execSteps     int
	outputs       []Output
	outputHook    func(Output)
	inputProvider func(InputRequest) (string, error)
	input         []string
}

type Option func(*VM)

func WithStackSize(n int) Option {
	return func(vm *VM) {
		if n > 0 {
			vm.stackSize = n
		}
	}
}

// WithMaxSteps stops a run after n statements without an INPUT in
// between. Zero disables the limit.
func WithMaxSteps(n int) Option {
	return func(vm *VM) {
		vm.maxSteps = n
	}
}

func WithOutputHook(hook func(Output)) Option {
	return func(vm *VM) {
		vm.outputHook = hook
	}
}

func WithInputProvider(provider func(InputRequest) (string, error)) Option {
	return func(vm *VM) {
		vm.inputProvider = provider
	}
}

func New(lines []ast.Line, opts ...Option) (*VM, error) {
	vm := &VM{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(vm)
	}
	if err := vm.Load(lines); err != nil {
		return nil, err
	}
	return vm, nil
}

// Load replaces the program. Variables and queued input are kept.
func (vm *VM) Load(lines []ast.Line) error {
	table, err := dispatch.Build(lines)
	if err != nil {
		return err
	}
	vm.lines = lines
	vm.table = table
	vm.stack = vm.stack[:0]
	return nil
}

func (vm *VM) SetOutputHook(hook func(Output)) {
	vm.outputHook = hook
}

func (vm *VM) SetInputProvider(provider func(InputRequest) (string, error)) {
	vm.inputProvider = provider
}

func (vm *VM) Lines() []ast.Line {
	return vm.lines
}

func (vm *VM) Vars() Vars {
	return vm.vars
}

// Run starts the program at its first line with all variables zero and
// returns everything it printed.
func (vm *VM) Run(ctx context.Context) ([]Output, error) {
	vm.outputs = vm.outputs[:0]
	vm.reset()
	if err := vm.runFrom(ctx, 0); err != nil {
		return nil, err
	}
	return append([]Output(nil), vm.outputs...), nil
}

// Exec runs one immediate statement against the current variables. A
// jump continues into the loaded program from the target line.
func (vm *VM) Exec(ctx context.Context, stmt ast.Statement) ([]Output, error) {
	vm.outputs = vm.outputs[:0]
	vm.execSteps = 0
	res, err := vm.execStatement(stmt, immediateLine, vm.table.Len())
	if err != nil {
		return nil, err
	}
	switch res.kind {
	case resultJump:
		if err := vm.runFrom(ctx, res.key); err != nil {
			return nil, err
		}
	case resultRestart:
		if err := vm.runFrom(ctx, 0); err != nil {
			return nil, err
		}
	}
	return append([]Output(nil), vm.outputs...), nil
}

func (vm *VM) runFrom(ctx context.Context, pc int) error {
	vm.execSteps = 0
	for pc < vm.table.Len() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := vm.lines[pc]
		vm.execSteps++
		if vm.maxSteps > 0 && vm.execSteps > vm.maxSteps {
			return &RuntimeError{Line: line.Number, Err: ErrStepLimit}
		}
		next := vm.table.Next(pc)
		res, err := vm.execStatement(line.Stmt, line.Number, next)
		if err != nil {
			return err
		}
		switch res.kind {
		case resultNone:
			pc = next
		case resultJump:
			pc = res.key
		case resultRestart:
			pc = 0
		case resultEnd:
			return nil
		}
	}
	return nil
}

func (vm *VM) emitOutput(out Output) {
	vm.outputs = append(vm.outputs, out)
	if vm.outputHook != nil {
		vm.outputHook(out)
	}
}

// reset is CLEAR: zero variables and drop pending GOSUB returns.
func (vm *VM) reset() {
	vm.vars = Vars{}
	vm.stack = vm.stack[:0]
}
