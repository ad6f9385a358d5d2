package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	cfg    = defaultConfig()
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "tinybasic"})
)

var rootCmd = &cobra.Command{
	Use:   "tinybasic",
	Short: "Tiny BASIC to C translator, runner and REPL",
	Long: `tinybasic translates line-numbered Tiny BASIC programs into C.

Commands:
  build  Translate a (.bas) program into (.c) C source
  run    Execute a program directly
  repl   Interactive immediate-mode session
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfg.verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&cfg.stackSize, "stack", cfg.stackSize, "GOSUB stack depth")

	buildCmd.Flags().StringVarP(&cfg.outDir, "out", "o", cfg.outDir, "output directory for generated C")
	buildCmd.Flags().BoolVar(&cfg.checkedDiv, "checked-div", false, "fault on division by zero in generated C")
	buildCmd.Flags().IntVar(&cfg.workers, "workers", 1, "lower lines with this many goroutines")

	runCmd.Flags().BoolVar(&cfg.tui, "tui", false, "use the full-screen terminal UI when stdout is a terminal")
	runCmd.Flags().IntVar(&cfg.maxSteps, "max-steps", 0, "stop after this many statements without INPUT (0 = no limit)")

	rootCmd.AddCommand(buildCmd, runCmd, replCmd)
}
