package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"accumc/internal/asm"
	"accumc/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create accumc.toml and a sample program",
	Long: `Init writes a project config (accumc.toml) and a sample program (main.s)
into dir. If dir is omitted, the current directory is used; a missing
directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing accumc.toml")
	initCmd.Flags().String("author", "", "author name printed in listing headers")
	initCmd.Flags().String("dialect", "", "target dialect (lcc|verbose)")
}

// runInit resolves the target directory, derives the project name from its
// basename and writes accumc.toml plus main.s (the latter only if missing).
func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	author, err := cmd.Flags().GetString("author")
	if err != nil {
		return fmt.Errorf("failed to get author flag: %w", err)
	}
	dialect, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return fmt.Errorf("failed to get dialect flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "accumc-project"
	}

	cfg := project.Default()
	cfg.Package.Name = name
	cfg.Package.Author = author
	if dialect != "" {
		d, ok := asm.LookupDialect(dialect)
		if !ok {
			return fmt.Errorf("unknown dialect %q (known: %v)", dialect, asm.DialectNames())
		}
		cfg.Compile.Dialect = d.Name
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	configPath, err := project.WriteConfig(target, cfg, force)
	if err != nil {
		return err
	}

	mainPath := filepath.Join(target, "main"+cfg.Compile.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(sampleProgram), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		createdMain = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized accumc project in %s\n", target)
	fmt.Fprintf(out, "  - %s\n", filepath.Base(configPath))
	if createdMain {
		fmt.Fprintf(out, "  - %s\n", filepath.Base(mainPath))
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", filepath.Base(mainPath))
	}
	return nil
}

const sampleProgram = `x = 3 + 4 * 2;
y = (x + -1) * 2;
println(x);
println(y);
`
