package driver

import (
	"fmt"
	"time"

	"accumc/internal/asm"
	"accumc/internal/project"
	"accumc/internal/version"
)

// Options configure file compilation. The zero value is not usable; start
// from OptionsFromConfig.
type Options struct {
	Dialect   asm.Dialect
	Banner    bool
	Author    string // правая часть первой строки баннера
	Compiler  string // имя компилятора для баннера
	SourceExt string
	OutputExt string
	Jobs      int
	// MaxDiagnostics ограничивает Bag каждого файла.
	MaxDiagnostics int
	Cache          *DiskCache
	Progress       ProgressSink
	// Now is the banner clock; nil means time.Now.
	Now func() time.Time
}

// OptionsFromConfig converts a project config into driver options.
func OptionsFromConfig(cfg project.Config) (Options, error) {
	d, ok := asm.LookupDialect(cfg.Compile.Dialect)
	if !ok {
		return Options{}, fmt.Errorf("unknown dialect %q (known: %v)", cfg.Compile.Dialect, asm.DialectNames())
	}
	return Options{
		Dialect:        d,
		Banner:         cfg.Compile.Banner,
		Author:         cfg.Package.Author,
		Compiler:       version.Compiler(),
		SourceExt:      cfg.Compile.SourceExt,
		OutputExt:      cfg.Compile.OutputExt,
		Jobs:           cfg.Build.Jobs,
		MaxDiagnostics: 16,
	}, nil
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
