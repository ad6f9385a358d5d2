// Package dispatch maps declared BASIC line numbers to dense keys.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/tjcardinal/tiny-basic/ast"
)

var ErrNotIncreasing = errors.New("line numbers not increasing")

// Table is built once per program and only read afterwards, so it may be
// shared between goroutines.
type Table struct {
	numbers []uint32
	keys    map[uint32]int
}

// Build assigns each line its index in the program as dispatch key.
func Build(lines []ast.Line) (*Table, error) {
	t := &Table{
		numbers: make([]uint32, 0, len(lines)),
		keys:    make(map[uint32]int, len(lines)),
	}
	for i, l := range lines {
		if i > 0 && l.Number <= t.numbers[i-1] {
			return nil, fmt.Errorf("line %d after %d: %w", l.Number, t.numbers[i-1], ErrNotIncreasing)
		}
		t.numbers = append(t.numbers, l.Number)
		t.keys[l.Number] = i
	}
	return t, nil
}

// Key resolves a line number. The second result is false for lines the
// program does not declare.
func (t *Table) Key(number uint32) (int, bool) {
	k, ok := t.keys[number]
	return k, ok
}

func (t *Table) Number(key int) uint32 {
	return t.numbers[key]
}

// Next is the fall-through key after key. Len() means the program ends.
func (t *Table) Next(key int) int {
	return key + 1
}

func (t *Table) Len() int {
	return len(t.numbers)
}

// Numbers returns the declared line numbers in increasing order.
func (t *Table) Numbers() []uint32 {
	out := make([]uint32, len(t.numbers))
	copy(out, t.numbers)
	return out
}
