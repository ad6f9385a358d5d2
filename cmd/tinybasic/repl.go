package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tjcardinal/tiny-basic/codegen"
	bruntime "github.com/tjcardinal/tiny-basic/runtime"
	"github.com/tjcardinal/tiny-basic/session"
)

const (
	historyFile = ".tinybasic_history"
	promptMain  = "> "
)

const helpText = `Numbered lines edit the program, anything else runs at once.
  LIST, RUN, CLEAR  list, run or erase the program
  :c                print the program translated to C
  :load FILE        replace the program with FILE
  :save FILE        write the program to FILE
  :quit             exit`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive BASIC session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cfg, os.Stdout)
	},
}

func runREPL(cfg appConfig, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(out, "tinybasic REPL. Type :help for commands, :quit to exit.")
	}

	s := session.New(out, session.Options{
		StackSize: cfg.stackSize,
		MaxSteps:  cfg.maxSteps,
		Input: func(req bruntime.InputRequest) (string, error) {
			return ln.Prompt(bruntime.Prompt)
		},
	})

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		ln.AppendHistory(text)

		if strings.HasPrefix(text, ":") {
			done, err := replCommand(cfg, s, out, text)
			if err != nil {
				fmt.Fprintln(out, errStyle.Render(err.Error()))
			}
			if done {
				return nil
			}
			continue
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = s.Exec(ctx, text)
		stop()
		if err != nil {
			fmt.Fprintln(out, errStyle.Render(fmt.Sprintf("%s error: %v", errorKind(err), err)))
		}
	}
}

// replCommand handles a colon command and reports whether the REPL should
// exit.
func replCommand(cfg appConfig, s *session.Session, out io.Writer, text string) (bool, error) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true, nil
	case ":help":
		fmt.Fprintln(out, helpText)
	case ":c":
		code, err := codegen.Generate(s.Program(), codegen.Options{
			StackSize:     cfg.stackSize,
			CheckDivision: cfg.checkedDiv,
		})
		if err != nil {
			return false, err
		}
		fmt.Fprint(out, code)
		fmt.Fprintln(out)
	case ":load":
		if arg == "" {
			return false, errors.New(":load needs a file name")
		}
		src, err := readSource(arg)
		if err != nil {
			return false, err
		}
		if err := s.Load(src); err != nil {
			return false, err
		}
		fmt.Fprintln(out, promptStyle.Render(fmt.Sprintf("loaded %d lines", len(s.Program()))))
	case ":save":
		if arg == "" {
			return false, errors.New(":save needs a file name")
		}
		if err := os.WriteFile(arg, []byte(s.Source()), 0o644); err != nil {
			return false, err
		}
		fmt.Fprintln(out, promptStyle.Render("saved "+arg))
	default:
		return false, fmt.Errorf("unknown command %s, type :help", name)
	}
	return false, nil
}
