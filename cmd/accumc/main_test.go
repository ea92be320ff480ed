package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"accumc/internal/compiler"
	"accumc/internal/source"
)

// resetFlags возвращает флаги всех команд к значениям по умолчанию.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCompileBasename(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "prog.s", "x = 2;\nprintln(x);\n")

	if _, stderr, err := execute(t, "compile", "--no-banner", "prog"); err != nil {
		t.Fatalf("compile: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "prog.a"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "\n; x = 2;\n") || !strings.Contains(text, "          halt\n") {
		t.Fatalf("unexpected output:\n%s", text)
	}
}

func TestCompileStdoutWithBanner(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "p.s", "println(1);")

	stdout, _, err := execute(t, "compile", "--stdout", "--dialect", "verbose", "p.s")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, want := range []string{"; Input file  = p.s\n", "; Output file = p.a\n", "decimal-output"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout lacks %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat("p.a"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("--stdout must not create p.a")
	}
}

func TestCompileErrorWritesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "bad.s", "x = 3 % 4;\n")

	_, stderr, err := execute(t, "compile", "-o", "out.a", "bad.s")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v, want errDiagnostics", err)
	}
	if !strings.Contains(stderr, "bad.s:1:7: error LEX1001: Invalid token (found '%')") {
		t.Fatalf("stderr = %q", stderr)
	}
	data, err := os.ReadFile("out.a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Error on '%' line 1 column 7\nInvalid token\n") {
		t.Fatalf("output lacks error listing:\n%s", data)
	}
}

func TestCompileDiagnosticFormats(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "bad.s", "x = 3 % 4;\n")

	_, stderr, err := execute(t, "compile", "--diag-format", "short", "bad.s")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("short: err = %v", err)
	}
	if stderr != "error LEX1001 bad.s:1:7 Invalid token\n" {
		t.Fatalf("short stderr = %q", stderr)
	}

	_, stderr, err = execute(t, "compile", "--diag-format", "json", "--path-mode", "basename", "bad.s")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("json: err = %v", err)
	}
	var doc struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Location struct {
				File string `json:"file"`
				Line uint32 `json:"line"`
				Col  uint32 `json:"col"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stderr), &doc); err != nil {
		t.Fatalf("json stderr %q: %v", stderr, err)
	}
	if doc.Count != 1 || doc.Diagnostics[0].Code != "LEX1001" || doc.Diagnostics[0].Location.File != "bad.s" || doc.Diagnostics[0].Location.Col != 7 {
		t.Fatalf("json doc = %+v", doc)
	}
}

func TestCompileUnknownDialect(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "p.s", "println(1);")
	if _, _, err := execute(t, "compile", "--dialect", "z80", "p.s"); err == nil || !strings.Contains(err.Error(), "unknown dialect") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "a.s", "println(1);")
	writeFile(t, "b.s", "x = (;")

	stdout, stderr, err := execute(t, "build", "--ui", "off", "--jobs", "2", ".")
	if !errors.Is(err, errDiagnostics) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stdout, "built 1 file(s), 0 cached, 1 failed") {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "b.s:1:6: error SYN2003: Expecting factor") {
		t.Errorf("stderr = %q", stderr)
	}
	for _, name := range []string{"a.a", "b.a"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestBuildEmptyDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := execute(t, "build", "--ui", "off"); err == nil || !strings.Contains(err.Error(), "no source files") {
		t.Fatalf("err = %v", err)
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "t.s", "x = 1;")

	stdout, _, err := execute(t, "tokenize", "--format", "json", "t.s")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(stdout), &toks); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(toks) != 5 || toks[0].Kind != "ID" || toks[4].Kind != "EOF" {
		t.Fatalf("tokens = %+v", toks)
	}
}

func TestInitThenCompileUsesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	stdout, _, err := execute(t, "init", "--author", "Ada", "--dialect", "verbose", "proj")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, "accumc.toml") || !strings.Contains(stdout, "main.s") {
		t.Fatalf("stdout = %q", stdout)
	}
	if _, _, err := execute(t, "init", "proj"); err == nil {
		t.Fatalf("second init must fail without --force")
	}

	t.Chdir(filepath.Join(dir, "proj"))
	if _, stderr, err := execute(t, "compile", "main"); err != nil {
		t.Fatalf("compile: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile("main.a")
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, "Error on") {
		t.Fatalf("sample program must compile cleanly:\n%s", text)
	}
	if !strings.Contains(text, "Ada\n") || !strings.Contains(text, "          multiply ") {
		t.Fatalf("config not applied:\n%s", text)
	}
}

func TestSampleProgramCompiles(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.s", []byte(sampleProgram)))
	var buf bytes.Buffer
	res, err := compiler.Compile(context.Background(), file, &buf, compiler.Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Diagnostic != nil {
		t.Fatalf("sample program: %v\n%s", res.Diagnostic, buf.String())
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "accumc" || len(payload.Dialects) != 2 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Errorf("expected error for invalid mode")
	}
}

func TestCompileWithProfiling(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "p.s", "println(7);")

	if _, _, err := execute(t, "compile", "--cpu-profile", "cpu.pprof", "--mem-profile", "mem.pprof", "p.s"); err != nil {
		t.Fatalf("compile: %v", err)
	}
	for _, name := range []string{"cpu.pprof", "mem.pprof", "p.a"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestCompileTraceToFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "p.s", "println(7);")

	if _, _, err := execute(t, "compile", "--trace", "trace.ndjson", "--trace-level", "detail", "p.s"); err != nil {
		t.Fatalf("compile: %v", err)
	}
	data, err := os.ReadFile("trace.ndjson")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"lex"`) || !strings.Contains(string(data), `"parse"`) {
		t.Fatalf("trace lacks pass spans:\n%s", data)
	}
}
