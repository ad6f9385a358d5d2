package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/tjcardinal/tiny-basic/codegen"
	"github.com/tjcardinal/tiny-basic/lexer"
	"github.com/tjcardinal/tiny-basic/parser"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
)

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
)

// errorKind names the stage an error came from.
func errorKind(err error) string {
	var (
		lexErr *lexer.Error
		synErr *parser.SyntaxError
		rtErr  *bruntime.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &synErr):
		return "syntax"
	case errors.As(err, &rtErr):
		return "runtime"
	case errors.Is(err, codegen.ErrUnsupported):
		return "codegen"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	default:
		return "io"
	}
}

func reportError(err error) {
	logger.Error(err.Error(), "kind", errorKind(err))
}
