// Package codegen lowers a parsed BASIC program to portable C.
//
// Every line becomes one case of a switch over an explicit program
// counter, so computed GOTO and GOSUB targets resolve at run time through
// a lookup table and GOSUB/RETURN use an explicit bounded stack.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/dispatch"
)

const DefaultStackSize = 64

var ErrUnsupported = errors.New("unsupported construct")

type Options struct {
	// StackSize bounds GOSUB nesting in the generated program.
	StackSize int
	// CheckDivision routes every division through a helper that faults on
	// a zero divisor instead of leaving it to the C compiler.
	CheckDivision bool
	// Workers > 1 lowers line bodies concurrently.
	Workers int
	// Source names the input file in the header comment.
	Source string
}

type generator struct {
	opts  Options
	table *dispatch.Table
	lines []ast.Line
	out   strings.Builder
	needs needs
}

// Generate returns the C translation of lines. No text is returned when an
// error occurs.
func Generate(lines []ast.Line, opts Options) (string, error) {
	if opts.StackSize <= 0 {
		opts.StackSize = DefaultStackSize
	}
	table, err := dispatch.Build(lines)
	if err != nil {
		return "", err
	}
	g := &generator{opts: opts, table: table, lines: lines}
	g.needs = analyzeProgram(lines, opts)

	bodies, err := g.lowerAll()
	if err != nil {
		return "", err
	}

	g.emitHeader()
	g.emitGlobals()
	g.emitHelpers()
	g.emitMain(bodies)
	return g.out.String(), nil
}

func (g *generator) lowerAll() ([]string, error) {
	bodies := make([]string, len(g.lines))
	if g.opts.Workers <= 1 {
		for key, l := range g.lines {
			body, err := g.lowerLine(key, l)
			if err != nil {
				return nil, err
			}
			bodies[key] = body
		}
		return bodies, nil
	}

	var eg errgroup.Group
	eg.SetLimit(g.opts.Workers)
	for key, l := range g.lines {
		key, l := key, l
		eg.Go(func() error {
			body, err := g.lowerLine(key, l)
			if err != nil {
				return err
			}
			bodies[key] = body
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func (g *generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *generator) emitHeader() {
	if g.opts.Source != "" {
		g.line("/* Generated by tinybasic from %s. Do not edit. */", cComment(g.opts.Source))
	} else {
		g.line("/* Generated by tinybasic. Do not edit. */")
	}
	g.line("#include <inttypes.h>")
	g.line("#include <stdint.h>")
	g.line("#include <stdio.h>")
	g.line("#include <stdlib.h>")
	g.line("")
}

func (g *generator) emitGlobals() {
	if g.needs.stack {
		g.line("#define STACK_SIZE %d", g.opts.StackSize)
		g.line("")
	}
	wrote := false
	if g.needs.vars {
		g.line("static uint32_t vars[26];")
		wrote = true
	}
	if g.needs.stack {
		g.line("static int stack[STACK_SIZE];")
		g.line("static int sp;")
		wrote = true
	}
	if g.needs.listing {
		g.line("static const char *const listing[] = {")
		for _, text := range ast.Listing(g.lines) {
			g.line("    %s,", cString(text))
		}
		g.line("};")
		wrote = true
	}
	if wrote {
		g.line("")
	}
}

func (g *generator) emitHelpers() {
	if g.needs.fault {
		g.line("static void fault(uint32_t line, const char *msg)")
		g.line("{")
		g.line(`    fprintf(stderr, "line %%" PRIu32 ": %%s\n", line, msg);`)
		g.line("    exit(1);")
		g.line("}")
		g.line("")
	}

	if g.needs.lookup {
		g.line("static int lookup(uint32_t target, uint32_t line)")
		g.line("{")
		g.line("    switch (target) {")
		for key, n := range g.table.Numbers() {
			g.line("    case %du: return %d;", n, key)
		}
		g.line("    default:")
		g.line(`        fault(line, "undefined line");`)
		g.line("        return -1;")
		g.line("    }")
		g.line("}")
		g.line("")
	}

	if g.needs.divide {
		g.line("static uint32_t divide(uint32_t a, uint32_t b, uint32_t line)")
		g.line("{")
		g.line("    if (b == 0u)")
		g.line(`        fault(line, "division by zero");`)
		g.line("    return a / b;")
		g.line("}")
		g.line("")
	}

	if g.needs.input {
		g.line("static uint32_t input(uint32_t line)")
		g.line("{")
		g.line("    uint32_t v;")
		g.line(`    fputs("? ", stdout);`)
		g.line("    fflush(stdout);")
		g.line(`    if (scanf("%%" SCNu32, &v) != 1)`)
		g.line(`        fault(line, "bad input");`)
		g.line("    return v;")
		g.line("}")
		g.line("")
	}

	if g.needs.reset {
		g.line("static void reset(void)")
		g.line("{")
		g.line("    int i;")
		g.line("    for (i = 0; i < 26; i++)")
		g.line("        vars[i] = 0u;")
		if g.needs.stack {
			g.line("    sp = 0;")
		}
		g.line("}")
		g.line("")
	}

	if g.needs.listing {
		g.line("static void list(void)")
		g.line("{")
		g.line("    size_t i;")
		g.line("    for (i = 0; i < sizeof listing / sizeof listing[0]; i++)")
		g.line("        puts(listing[i]);")
		g.line("}")
		g.line("")
	}
}

func (g *generator) emitMain(bodies []string) {
	g.line("int main(void)")
	g.line("{")
	g.line("    int pc = 0;")
	g.line("    for (;;) {")
	g.line("        switch (pc) {")
	for key, body := range bodies {
		g.line("        case %d: /* %d */", key, g.table.Number(key))
		g.out.WriteString(body)
		g.line("            break;")
	}
	g.line("        default:")
	g.line("            return 0;")
	g.line("        }")
	g.line("    }")
	g.line("}")
}
