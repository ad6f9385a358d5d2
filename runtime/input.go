package bruntime

import (
	"strconv"
	"strings"

	"github.com/tjcardinal/tiny-basic/ast"
)

// Prompt is printed before each value INPUT reads.
const Prompt = "? "

// InputRequest describes the value an INPUT statement is waiting for.
type InputRequest struct {
	Line uint32
	Var  ast.Var
}

// EnqueueInput queues answers for upcoming INPUT statements. Each entry
// may hold several whitespace separated numbers.
func (vm *VM) EnqueueInput(values ...string) {
	for _, v := range values {
		vm.input = append(vm.input, strings.Fields(v)...)
	}
}

// readInput takes the next queued value, asking the input provider when
// the queue is empty. Extra numbers on a provided line stay queued.
func (vm *VM) readInput(req InputRequest) (uint32, error) {
	// New input boundary: the step watchdog only tracks runs that stop
	// asking for input.
	vm.execSteps = 0
	if len(vm.input) == 0 {
		if vm.inputProvider == nil {
			return 0, &RuntimeError{Line: req.Line, Err: ErrInputExhausted}
		}
		raw, err := vm.inputProvider(req)
		if err != nil {
			return 0, &RuntimeError{Line: req.Line, Err: err}
		}
		vm.input = append(vm.input, strings.Fields(raw)...)
		if len(vm.input) == 0 {
			return 0, &RuntimeError{Line: req.Line, Err: ErrBadInput}
		}
	}
	raw := vm.input[0]
	vm.input = vm.input[1:]
	n, ok := parseInput(raw)
	if !ok {
		return 0, &RuntimeError{Line: req.Line, Err: ErrBadInput}
	}
	return n, nil
}

func parseInput(raw string) (uint32, bool) {
	raw = strings.TrimPrefix(raw, "+")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
