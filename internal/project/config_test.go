package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName)
	writeFile(t, path, "[compile]\ndialect = \"verbose\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Compile.Dialect != "verbose" {
		t.Errorf("dialect = %q", cfg.Compile.Dialect)
	}
	if cfg.Compile.SourceExt != def.Compile.SourceExt || cfg.Compile.OutputExt != def.Compile.OutputExt {
		t.Errorf("extensions not defaulted: %+v", cfg.Compile)
	}
	if !cfg.Compile.Banner || cfg.Build.Jobs != def.Build.Jobs {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[compile\n", "failed to parse TOML"},
		{"unknown key", "[compile]\ncolour = 1\n", "unknown keys: compile.colour"},
		{"bad jobs", "[build]\njobs = 0\n", "jobs must be at least 1"},
		{"bad ext", "[compile]\nsource_ext = \"s\"\n", "source_ext must start with '.'"},
		{"same ext", "[compile]\nsource_ext = \".a\"\n", "are both"},
		{"empty dialect", "[compile]\ndialect = \" \"\n", "dialect is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigName), "[package]\nname = \"demo\"\nauthor = \"A. Student\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Package.Author != "A. Student" {
		t.Fatalf("config = %+v", m.Config)
	}
	wantRoot, _ := filepath.Abs(root)
	if m.Root != wantRoot {
		t.Fatalf("root = %q, want %q", m.Root, wantRoot)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Package.Name = "demo"
	cfg.Build.Jobs = 3

	path, err := WriteConfig(dir, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := WriteConfig(dir, cfg, false); err == nil {
		t.Fatal("second write without force must fail")
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("round trip:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := DigestString("lcc"), DigestString("verbose")
	var content Digest
	if Combine(content, a, b) == Combine(content, b, a) {
		t.Fatal("Combine must depend on part order")
	}
	if Combine(content, a) != Combine(content, a) {
		t.Fatal("Combine must be deterministic")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest = %q", a.String())
	}
}
