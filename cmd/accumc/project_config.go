package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"accumc/internal/project"
)

// loadProjectConfig returns the config named by --config, the nearest
// accumc.toml above the working directory, or the defaults.
func loadProjectConfig(cmd *cobra.Command) (project.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		return project.LoadConfig(configPath)
	}

	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, err
	}
	manifest, ok, err := project.LoadManifest(wd)
	if err != nil {
		return project.Config{}, err
	}
	if !ok {
		return project.Default(), nil
	}
	return manifest.Config, nil
}

func maxDiagnosticsFlag(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// projectRootOr returns the directory holding accumc.toml above dir, or dir.
func projectRootOr(dir string) string {
	if root, ok, err := project.FindProjectRoot(dir); err == nil && ok {
		return root
	}
	return dir
}
