// Package session implements classic immediate-mode BASIC: numbered lines
// edit the stored program, anything else runs at once.
package session

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/btree"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/lexer"
	"github.com/tjcardinal/tiny-basic/parser"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

type Options struct {
	StackSize int
	MaxSteps  int
	// Input answers INPUT statements. Without it INPUT fails once the
	// queued values run out.
	Input func(bruntime.InputRequest) (string, error)
}

type Session struct {
	out  io.Writer
	opts Options
	code *btree.BTreeG[ast.Line]
	vm   *bruntime.VM
}

func lineLess(a, b ast.Line) bool {
	return a.Number < b.Number
}

func New(out io.Writer, opts Options) *Session {
	s := &Session{
		out:  out,
		opts: opts,
		code: btree.NewG(4, lineLess),
	}
	s.vm = s.newVM()
	return s
}

func (s *Session) newVM() *bruntime.VM {
	opts := []bruntime.Option{
		bruntime.WithStackSize(s.opts.StackSize),
		bruntime.WithMaxSteps(s.opts.MaxSteps),
		bruntime.WithOutputHook(func(o bruntime.Output) {
			if o.NewLine {
				fmt.Fprintln(s.out, o.Text)
			} else {
				fmt.Fprint(s.out, o.Text)
			}
		}),
	}
	if s.opts.Input != nil {
		opts = append(opts, bruntime.WithInputProvider(s.opts.Input))
	}
	// An empty program always builds.
	vm, _ := bruntime.New(nil, opts...)
	return vm
}

// Exec handles one line of user input.
func (s *Session) Exec(ctx context.Context, text string) error {
	toks, err := lexer.Lex(text)
	if err != nil {
		return err
	}
	for len(toks) > 0 && toks[len(toks)-1].Kind == lexer.EOL {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return nil
	}

	if toks[0].Kind == lexer.Number {
		if len(toks) == 1 {
			n, err := strconv.ParseUint(toks[0].Text, 10, 32)
			if err != nil {
				return fmt.Errorf("line %s: %w", toks[0].Text, parser.ErrInvalidLineNumber)
			}
			s.code.Delete(ast.Line{Number: uint32(n)})
			return nil
		}
		line, err := parser.ParseLine(toks)
		if err != nil {
			return err
		}
		s.code.ReplaceOrInsert(line)
		return nil
	}

	stmt, err := parser.ParseStatement(toks)
	if err != nil {
		return err
	}
	switch stmt.(type) {
	case ast.ListStmt:
		_, err := io.WriteString(s.out, s.Source())
		return err
	case ast.ClearStmt:
		s.code.Clear(false)
		s.vm = s.newVM()
		return nil
	case ast.RunStmt:
		if err := s.vm.Load(s.Program()); err != nil {
			return err
		}
		_, err := s.vm.Run(ctx)
		return err
	default:
		if err := s.vm.Load(s.Program()); err != nil {
			return err
		}
		_, err := s.vm.Exec(ctx, stmt)
		return err
	}
}

// Program returns the stored lines in increasing order.
func (s *Session) Program() []ast.Line {
	lines := make([]ast.Line, 0, s.code.Len())
	s.code.Ascend(func(l ast.Line) bool {
		lines = append(lines, l)
		return true
	})
	return lines
}

// Source renders the stored program as it would be typed back in.
func (s *Session) Source() string {
	var b strings.Builder
	for _, text := range ast.Listing(s.Program()) {
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Load replaces the stored program with src. On error the old program is
// kept.
func (s *Session) Load(src string) error {
	toks, err := lexer.Lex(src)
	if err != nil {
		return err
	}
	lines, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	s.code.Clear(false)
	for _, l := range lines {
		s.code.ReplaceOrInsert(l)
	}
	return nil
}
