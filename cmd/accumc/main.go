package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"accumc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "accumc",
	Short: "Compiler for the accumulator machine",
	Long: `accumc compiles programs made of assignments and println statements
into assembly code for a single-accumulator machine`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// errDiagnostics сигнализирует, что диагностики уже напечатаны и нужен только код 1.
var errDiagnostics = errors.New("compilation failed")

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	rootCmd.PersistentFlags().String("path-mode", "auto", "how diagnostics show paths (auto|absolute|relative|basename)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 16, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().String("config", "", "path to accumc.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, .ndjson for JSON lines)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command. Any error exits with status 1; compile
// diagnostics are already printed by then.
func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "accumc: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
