package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"accumc/internal/diag"
	"accumc/internal/project"
	"accumc/internal/token"
	"accumc/internal/version"
)

var fixedNow = func() time.Time { return time.Date(2026, time.March, 5, 9, 7, 3, 0, time.UTC) }

func testOptions(t *testing.T) Options {
	t.Helper()
	opts, err := OptionsFromConfig(project.Default())
	if err != nil {
		t.Fatal(err)
	}
	opts.Now = fixedNow
	opts.Jobs = 4
	return opts
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutputPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"prog.s", "prog.a"},
		{"dir/prog.s", "dir/prog.a"},
		{"prog.txt", "prog.a"},
		{"prog", "prog.a"},
		{"a.b.s", "a.b.a"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in, ".s", ".a"); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.s", "x = 1;")

	got, err := ResolveInput(strings.TrimSuffix(src, ".s"), ".s")
	if err != nil || got != src {
		t.Fatalf("basename: %q, %v", got, err)
	}
	if got, err = ResolveInput(src, ".s"); err != nil || got != src {
		t.Fatalf("full path: %q, %v", got, err)
	}
	if _, err = ResolveInput(filepath.Join(dir, "missing"), ".s"); err == nil || !strings.Contains(err.Error(), "missing.s") {
		t.Fatalf("missing: %v", err)
	}
	if _, err = ResolveInput(dir+"/", ".s"); err == nil {
		t.Fatal("directory accepted as input")
	}
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	b := Banner{Time: fixedNow(), Author: "A. Student", Compiler: "accumc", Input: "p.s", Output: "p.a"}
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "; Thu Mar  5 09:07:03 2026") || !strings.HasSuffix(lines[0], " A. Student") {
		t.Errorf("first line = %q", lines[0])
	}
	if len(lines[0]) != len("; Thu Mar  5 09:07:03 2026")+33 {
		t.Errorf("author not right-aligned: %q", lines[0])
	}
	for i, want := range []string{"; Compiler    = accumc", "; Input file  = p.s", "; Output file = p.a"} {
		if lines[i+1] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i+1], want)
		}
	}
}

func TestCompileFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "prog.s", "x = 3 + 4 * 2;\nprintln(x);\n")
	out := OutputPath(in, ".s", ".a")

	fr, err := CompileFile(context.Background(), in, out, testOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if fr.Failed() || fr.Result.Instructions != 13 {
		t.Fatalf("result = %+v, bag = %+v", fr.Result, fr.Bag.Items())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"; Compiler    = " + version.Compiler() + "\n", ";------------------------------------------- Assembler code\n", "          halt\n", "@t2:      dw 0\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q:\n%s", want, text)
		}
	}
	if len(fr.Timer.Phases()) < 3 {
		t.Errorf("timer phases = %+v", fr.Timer.Phases())
	}
}

func TestCompileFileDiagnostic(t *testing.T) {
	dir := t.TempDir()
	in := writeSource(t, dir, "bad.s", "x = 3 % 4;\n")
	opts := testOptions(t)
	opts.Banner = false

	var buf bytes.Buffer
	fr, err := CompileTo(context.Background(), in, &buf, "-", opts)
	if err != nil {
		t.Fatal(err)
	}
	if !fr.Failed() || fr.Bag.Items()[0].Code != diag.LexInvalidToken {
		t.Fatalf("bag = %+v", fr.Bag.Items())
	}
	d := fr.Bag.Items()[0]
	if d.Image != "%" || d.Pos.Line != 1 || d.Pos.Col != 7 {
		t.Fatalf("diagnostic = %+v", d)
	}
	if buf.String() != "\nError on '%' line 1 column 7\nInvalid token\n" {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestCompileFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	fr, err := CompileFile(context.Background(), filepath.Join(dir, "nope.s"), filepath.Join(dir, "nope.a"), testOptions(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if fr == nil || fr.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("result = %+v", fr)
	}
}

func TestBuildDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.s", "println(1);\n")
	writeSource(t, dir, "a.s", "x = 2;\n")
	writeSource(t, dir, "sub/c.s", "y = ;\n")
	writeSource(t, dir, "notes.txt", "ignored")

	var mu sync.Mutex
	var events []Event
	opts := testOptions(t)
	opts.Progress = SinkFunc(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	results, err := BuildDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	wantOrder := []string{"a.s", "b.s", filepath.Join("sub", "c.s")}
	for i, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		if rel != wantOrder[i] {
			t.Errorf("result %d = %s, want %s", i, rel, wantOrder[i])
		}
		if _, err := os.Stat(r.Output); err != nil {
			t.Errorf("output %s missing: %v", r.Output, err)
		}
	}
	if results[0].Failed() || results[1].Failed() || !results[2].Failed() {
		t.Fatalf("failure flags wrong")
	}
	if !BuildFailed(results) {
		t.Fatal("BuildFailed = false")
	}

	final := map[string]Status{}
	for _, ev := range events {
		if ev.Stage == StageWrite {
			final[ev.File] = ev.Status
		}
	}
	if final[results[0].Path] != StatusDone || final[results[2].Path] != StatusError {
		t.Fatalf("final statuses = %v", final)
	}
}

func TestBuildDirEmpty(t *testing.T) {
	results, err := BuildDir(context.Background(), t.TempDir(), testOptions(t))
	if err != nil || results != nil {
		t.Fatalf("got %v, %v", results, err)
	}
}

func TestBuildDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.s", "x = 1 + 2;\n")
	writeSource(t, dir, "b.s", "x = ;\n")

	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(t)
	opts.Cache = cache

	first, err := BuildDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	firstOut, _ := os.ReadFile(first[0].Output)

	second, err := BuildDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || !second[1].Cached {
		t.Fatalf("second build did not hit the cache")
	}
	secondOut, _ := os.ReadFile(second[0].Output)
	if !bytes.Equal(firstOut, secondOut) {
		t.Fatalf("cached output differs:\n%s\n---\n%s", firstOut, secondOut)
	}
	d := second[1].Result.Diagnostic
	if d == nil || d.Code != diag.SynExpectedConstruct || d.Tok.Kind != token.Semicolon || d.Tok.Col != 5 {
		t.Fatalf("cached diagnostic = %+v", d)
	}
	if !second[1].Failed() {
		t.Fatal("cached failure must still fail the file")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(project.DigestString("src"), "lcc", true)

	var miss DiskPayload
	if ok, err := cache.Get(key, &miss); ok || err != nil {
		t.Fatalf("empty cache: %v, %v", ok, err)
	}

	in := &DiskPayload{Schema: diskCacheSchemaVersion, Dialect: "lcc", Body: []byte("halt\n"), Instructions: 1}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if string(out.Body) != "halt\n" || out.Instructions != 1 || out.Dialect != "lcc" {
		t.Fatalf("payload = %+v", out)
	}

	in.Schema = diskCacheSchemaVersion + 1
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("foreign schema must be a miss")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("DropAll left entries behind")
	}
}

func TestCacheKeyDependsOnDialectAndHeader(t *testing.T) {
	h := project.DigestString("x = 1;")
	if CacheKey(h, "lcc", true) == CacheKey(h, "verbose", true) {
		t.Fatal("dialect ignored")
	}
	if CacheKey(h, "lcc", true) == CacheKey(h, "lcc", false) {
		t.Fatal("header flag ignored")
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "t.s", "x = 1 # 2;")
	res, err := Tokenize(path, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 3 || !res.Bag.HasErrors() {
		t.Fatalf("tokens = %d, bag = %+v", len(res.Tokens), res.Bag.Items())
	}
}
