package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Execute a BASIC program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		if cfg.tui && term.IsTerminal(int(os.Stdout.Fd())) {
			return runTUI(cfg, src)
		}
		if cfg.tui {
			logger.Warn("stdout is not a terminal, falling back to plain output")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return runPlain(ctx, cfg, src, os.Stdin, os.Stdout)
	},
}

func runTUI(cfg appConfig, src string) error {
	p := tea.NewProgram(newModel(cfg, src), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
