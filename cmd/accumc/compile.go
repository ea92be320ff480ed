package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"accumc/internal/driver"
	"accumc/internal/project"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <file|basename>",
	Short: "Compile one source file",
	Long: `Compile translates a source file into accumulator-machine assembly.
A basename without extension reads <base>.s and writes <base>.a.
On a compile error the partial output is still written and the
diagnostic is printed to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output file (default: input with the output extension)")
	compileCmd.Flags().String("dialect", "", "target dialect (lcc|verbose)")
	compileCmd.Flags().Bool("stdout", false, "write assembly to stdout instead of a file")
	compileCmd.Flags().Bool("no-banner", false, "omit the listing header")
}

func runCompile(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	outFlag, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	dialect, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	noBanner, err := cmd.Flags().GetBool("no-banner")
	if err != nil {
		return fmt.Errorf("failed to get no-banner flag: %w", err)
	}

	opts, _, err := compileOptions(cmd, dialect, noBanner)
	if err != nil {
		return err
	}

	in, err := driver.ResolveInput(args[0], opts.SourceExt)
	if err != nil {
		return err
	}
	out := outFlag
	if out == "" {
		out = driver.OutputPath(in, opts.SourceExt, opts.OutputExt)
	}

	var fr *driver.FileResult
	if toStdout {
		fr, err = driver.CompileTo(cmd.Context(), in, cmd.OutOrStdout(), out, opts)
	} else {
		fr, err = driver.CompileFile(cmd.Context(), in, out, opts)
	}

	printDiagnostics(cmd, fr)
	if fr != nil && timingsEnabled(cmd) {
		printTimings(cmd.ErrOrStderr(), fr.Timer)
	}
	if err != nil {
		dumpTraceOnFailure(cmd)
		if fr != nil && fr.Bag.Len() > 0 {
			return errDiagnostics
		}
		return err
	}
	if fr.Failed() {
		dumpTraceOnFailure(cmd)
		return errDiagnostics
	}
	return nil
}

// compileOptions merges accumc.toml with command-line overrides.
func compileOptions(cmd *cobra.Command, dialect string, noBanner bool) (driver.Options, project.Config, error) {
	cfg, err := loadProjectConfig(cmd)
	if err != nil {
		return driver.Options{}, cfg, err
	}
	if dialect != "" {
		cfg.Compile.Dialect = dialect
	}
	if noBanner {
		cfg.Compile.Banner = false
	}
	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return driver.Options{}, cfg, err
	}
	if opts.MaxDiagnostics, err = maxDiagnosticsFlag(cmd); err != nil {
		return driver.Options{}, cfg, err
	}
	return opts, cfg, nil
}
