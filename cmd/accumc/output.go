package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"accumc/internal/diagfmt"
	"accumc/internal/driver"
	"accumc/internal/observ"
)

// useColor resolves --color against whether f is a terminal.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// printDiagnostics renders the file's diagnostics to stderr in the
// --diag-format chosen on the root command.
func printDiagnostics(cmd *cobra.Command, fr *driver.FileResult) {
	if fr == nil || fr.Bag.Len() == 0 {
		return
	}
	flags := cmd.Root().PersistentFlags()
	format, _ := flags.GetString("diag-format") //nolint:errcheck
	pathFlag, _ := flags.GetString("path-mode") //nolint:errcheck
	mode := diagfmt.ParsePathMode(pathFlag)

	w := cmd.ErrOrStderr()
	var err error
	switch format {
	case "short":
		err = diagfmt.Short(w, fr.Bag, fr.FileSet)
	case "json":
		err = diagfmt.JSON(w, fr.Bag, fr.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			PathMode:         mode,
		})
	default:
		err = diagfmt.Pretty(w, fr.Bag, fr.FileSet, diagfmt.PrettyOpts{
			Color:      useColor(cmd, os.Stderr),
			PathMode:   mode,
			ShowSource: true,
			ShowNotes:  true,
		})
	}
	if err != nil {
		fmt.Fprintf(w, "failed to print diagnostics: %v\n", err)
	}
}

func timingsEnabled(cmd *cobra.Command) bool {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && on
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil || len(timer.Phases()) == 0 {
		return
	}
	fmt.Fprint(out, timer.Summary())
}
