package tinybasic

import (
	"fmt"

	"github.com/tjcardinal/tiny-basic/ast"
	"github.com/tjcardinal/tiny-basic/codegen"
	"github.com/tjcardinal/tiny-basic/lexer"
	"github.com/tjcardinal/tiny-basic/parser"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

// Parse lexes and parses a whole BASIC source file.
func Parse(src string) ([]ast.Line, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	lines, err := parser.Parse(toks)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return lines, nil
}

// Compile translates BASIC source to C. Nothing is returned on error.
func Compile(src string, opts codegen.Options) (string, error) {
	lines, err := Parse(src)
	if err != nil {
		return "", err
	}
	code, err := codegen.Generate(lines, opts)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return code, nil
}

// Load parses src and builds a VM ready to run it.
func Load(src string, opts ...bruntime.Option) (*bruntime.VM, error) {
	lines, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return bruntime.New(lines, opts...)
}
