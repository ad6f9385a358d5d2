package main

import (
	"fmt"
	"os"

	"github.com/goforj/godump"

	tinybasic "github.com/tjcardinal/tiny-basic"
	"github.com/tjcardinal/tiny-basic/ast"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debug_ast FILE [LINE]")
		os.Exit(2)
	}
	b, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	lines, err := tinybasic.Parse(string(b))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("lines=%d\n", len(lines))
	for key, l := range lines {
		if len(os.Args) > 2 && fmt.Sprint(l.Number) != os.Args[2] {
			continue
		}
		fmt.Printf("key %d line %d %T\n", key, l.Number, l.Stmt)
		if s, ok := l.Stmt.(ast.IfStmt); ok {
			fmt.Printf("  then %T\n", s.Then)
		}
		godump.Dump(l)
	}
}
