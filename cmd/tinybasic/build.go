package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	tinybasic "github.com/tjcardinal/tiny-basic"
	"github.com/tjcardinal/tiny-basic/codegen"
)

var buildCmd = &cobra.Command{
	Use:   "build FILE",
	Short: "Translate a BASIC program into C",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cfg, args[0])
	},
}

func runBuild(cfg appConfig, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	code, err := tinybasic.Compile(src, codegen.Options{
		StackSize:     cfg.stackSize,
		CheckDivision: cfg.checkedDiv,
		Workers:       cfg.workers,
		Source:        filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
		return err
	}
	out := outputPath(cfg.outDir, path)
	if err := os.WriteFile(out, []byte(code), 0o644); err != nil {
		return err
	}
	logger.Info("wrote C source", "path", out, "bytes", len(code))
	return nil
}
