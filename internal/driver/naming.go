package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveInput maps a command-line argument to a source path. An argument
// without an extension is a basename: "prog" means "prog" + sourceExt.
func ResolveInput(arg, sourceExt string) (string, error) {
	if arg == "" {
		return "", errors.New("empty input path")
	}
	basename := filepath.Ext(arg) == ""
	if basename {
		candidate := arg + sourceExt
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}
	}
	st, err := os.Stat(arg)
	if err != nil {
		if basename {
			return "", fmt.Errorf("cannot read input file %s", arg+sourceExt)
		}
		return "", fmt.Errorf("cannot read input file %s: %w", arg, err)
	}
	if st.IsDir() {
		return "", fmt.Errorf("%s is a directory", arg)
	}
	return arg, nil
}

// OutputPath replaces sourceExt (or any extension) of in by outputExt.
func OutputPath(in, sourceExt, outputExt string) string {
	base := in
	if sourceExt != "" && strings.HasSuffix(in, sourceExt) {
		base = strings.TrimSuffix(in, sourceExt)
	} else if ext := filepath.Ext(in); ext != "" {
		base = strings.TrimSuffix(in, ext)
	}
	return base + outputExt
}
