package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the decoded accumc.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Compile CompileConfig `toml:"compile"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig описывает проект; Author попадает в баннер.
type PackageConfig struct {
	Name   string `toml:"name"`
	Author string `toml:"author"`
}

type CompileConfig struct {
	Dialect   string `toml:"dialect"`
	Banner    bool   `toml:"banner"`
	SourceExt string `toml:"source_ext"`
	OutputExt string `toml:"output_ext"`
}

type BuildConfig struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
}

// Manifest is a Config together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no accumc.toml exists.
func Default() Config {
	return Config{
		Compile: CompileConfig{
			Dialect:   "lcc",
			Banner:    true,
			SourceExt: ".s",
			OutputExt: ".a",
		},
		Build: BuildConfig{
			Jobs:  runtime.GOMAXPROCS(0),
			Cache: false,
		},
	}
}

// LoadConfig decodes path on top of Default. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("build", "jobs") && cfg.Build.Jobs < 1 {
		return Config{}, fmt.Errorf("%s: [build].jobs must be at least 1", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML typing alone cannot.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Compile.SourceExt, ".") {
		return fmt.Errorf("[compile].source_ext must start with '.', got %q", c.Compile.SourceExt)
	}
	if !strings.HasPrefix(c.Compile.OutputExt, ".") {
		return fmt.Errorf("[compile].output_ext must start with '.', got %q", c.Compile.OutputExt)
	}
	if c.Compile.SourceExt == c.Compile.OutputExt {
		return fmt.Errorf("[compile].source_ext and output_ext are both %q", c.Compile.SourceExt)
	}
	if strings.TrimSpace(c.Compile.Dialect) == "" {
		return fmt.Errorf("[compile].dialect is empty")
	}
	if c.Build.Jobs < 1 {
		c.Build.Jobs = 1
	}
	return nil
}

// LoadManifest finds accumc.toml starting from startDir and decodes it.
// ok is false when no config exists; that is not an error.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, true, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteConfig creates dir/accumc.toml. An existing file is only replaced when force is set.
func WriteConfig(dir string, cfg Config, force bool) (string, error) {
	path := filepath.Join(dir, ConfigName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists", path)
		}
	}
	data, err := Encode(cfg)
	if err != nil {
		return path, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
