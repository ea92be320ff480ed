package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"accumc/internal/diag"
	"accumc/internal/lexer"
	"accumc/internal/source"
	"accumc/internal/token"
)

// invalidTokenBag лексирует src и возвращает Bag с одной ошибкой лексера.
func invalidTokenBag(t *testing.T, src string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual("prog.s", []byte(src)))
	_, err := lexer.Tokenize(file, lexer.Options{})
	var derr *diag.Error
	if !errors.As(err, &derr) {
		t.Fatalf("expected *diag.Error, got %v", err)
	}
	bag := diag.NewBag(8)
	bag.ReportError(derr)
	return bag, fs
}

func TestPrettyInvalidToken(t *testing.T) {
	bag, fs := invalidTokenBag(t, "x = 3 % 4;\n")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowSource: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	got := buf.String()
	want := "prog.s:1:7: error LEX1001: Invalid token (found '%')\n" +
		"   1 | x = 3 % 4;\n" +
		"     |       ^\n"
	if got != want {
		t.Fatalf("Pretty mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestPrettyKeepsTabsInCaretLine(t *testing.T) {
	bag, fs := invalidTokenBag(t, "\tx = $;\n")

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowSource: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[2], "| \t    ^") {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "open missing.s: no such file"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{ShowSource: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "error IO4001: open missing.s: no such file\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.PrjConfigError, source.Span{}, "bad config").WithNote(source.Span{}, "see accumc.toml"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, nil, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "  note: see accumc.toml\n") {
		t.Fatalf("note missing: %q", buf.String())
	}
}

func TestJSONDiagnostics(t *testing.T) {
	bag, fs := invalidTokenBag(t, "x = 3 % 4;\n")
	bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: 42}, "disk full"))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, items = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" || d.Image != "%" {
		t.Fatalf("unexpected first diagnostic: %+v", d)
	}
	if d.Location.File != "prog.s" || d.Location.Line != 1 || d.Location.Col != 7 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
	if out.Diagnostics[1].Location.File != "" {
		t.Fatalf("unknown file id should have no path: %+v", out.Diagnostics[1].Location)
	}
}

func TestJSONMaxKeepsCount(t *testing.T) {
	bag := diag.NewBag(8)
	for range 3 {
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "x"))
	}
	out := BuildDiagnosticsOutput(bag, nil, JSONOpts{Max: 1})
	if out.Count != 3 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, items = %d", out.Count, len(out.Diagnostics))
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.s", []byte("x = 12;\n")))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 token lines, got %q", buf.String())
	}
	if want := `  3: UNSIGNED    "12" at 1:5 [4,6)`; lines[2] != want {
		t.Fatalf("line 3 = %q, want %q", lines[2], want)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != token.EOF.String() {
		t.Fatalf("unexpected tokens: %+v", out)
	}
}

func TestShort(t *testing.T) {
	bag, fs := invalidTokenBag(t, "x = 3 % 4;\n")
	var buf bytes.Buffer
	if err := Short(&buf, bag, fs); err != nil {
		t.Fatalf("Short: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "error LEX1001 prog.s:1:7") {
		t.Fatalf("got %q", buf.String())
	}
}
