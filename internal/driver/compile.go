package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"accumc/internal/compiler"
	"accumc/internal/diag"
	"accumc/internal/observ"
	"accumc/internal/source"
	"accumc/internal/trace"
)

// FileResult is the outcome of compiling one source file.
type FileResult struct {
	Path    string // входной файл
	Output  string // выходной файл; пусто, если писали в поток
	FileSet *source.FileSet
	File    *source.File
	Result  *compiler.Result
	Bag     *diag.Bag
	Cached  bool
	Timer   *observ.Timer
}

// Failed reports whether the file produced an error diagnostic.
func (r *FileResult) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// CompileFile compiles inPath and writes banner plus instructions to outPath.
// Diagnostics of the source program end up in the result's Bag; the error
// return covers unreadable input, unwritable output and cancellation.
func CompileFile(ctx context.Context, inPath, outPath string, opts Options) (*FileResult, error) {
	fr, body, err := compileOne(ctx, inPath, opts)
	if err != nil {
		return fr, err
	}
	fr.Output = outPath

	idx := fr.Timer.Begin("write")
	defer fr.Timer.End(idx, outPath)

	var out bytes.Buffer
	if err := writeUnit(&out, body, inPath, outPath, opts); err != nil {
		return fr, err
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		fr.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{}, "cannot write output file "+outPath+": "+err.Error()))
		return fr, fmt.Errorf("cannot write output file %s: %w", outPath, err)
	}
	return fr, nil
}

// CompileTo compiles inPath and streams banner plus instructions into w.
// outName is only used for the banner.
func CompileTo(ctx context.Context, inPath string, w io.Writer, outName string, opts Options) (*FileResult, error) {
	fr, body, err := compileOne(ctx, inPath, opts)
	if err != nil {
		return fr, err
	}
	if err := writeUnit(w, body, inPath, outName, opts); err != nil {
		return fr, err
	}
	return fr, nil
}

func writeUnit(w io.Writer, body []byte, inPath, outPath string, opts Options) error {
	if opts.Banner {
		b := Banner{
			Time:     opts.now(),
			Author:   opts.Author,
			Compiler: opts.Compiler,
			Input:    inPath,
			Output:   outPath,
		}
		if _, err := b.WriteTo(w); err != nil {
			return fmt.Errorf("write banner: %w", err)
		}
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// compileOne loads and compiles a single file into memory.
func compileOne(ctx context.Context, inPath string, opts Options) (*FileResult, []byte, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file")
	defer span.End(inPath)

	fr := &FileResult{
		Path:    inPath,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}

	emit(opts.Progress, Event{File: inPath, Stage: StageLoad, Status: StatusWorking})
	loadIdx := fr.Timer.Begin("load")
	id, err := fr.FileSet.Load(inPath)
	fr.Timer.End(loadIdx, "")
	if err != nil {
		fr.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read input file "+inPath+": "+err.Error()))
		return fr, nil, fmt.Errorf("cannot read input file %s: %w", inPath, err)
	}
	fr.File = fr.FileSet.Get(id)

	body, res, cached, err := compileSource(ctx, fr.File, fr.Timer, opts)
	if err != nil {
		return fr, nil, err
	}
	fr.Result = res
	fr.Cached = cached
	fr.Bag.ReportError(res.Diagnostic)
	span.WithExtraInt("instructions", res.Instructions).WithExtra("cached", fmt.Sprint(cached))
	return fr, body, nil
}

// compileSource returns the emitted text for file, consulting the cache first.
func compileSource(ctx context.Context, file *source.File, timer *observ.Timer, opts Options) (body []byte, res *compiler.Result, cached bool, err error) {
	key := CacheKey(file.Hash, opts.Dialect.Name, opts.Banner)
	if opts.Cache != nil {
		var p DiskPayload
		ok, getErr := opts.Cache.Get(key, &p)
		if getErr == nil && ok && p.ContentHash == file.Hash {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache hit", file.Path)
			return p.Body, payloadToResult(&p, file.ID), true, nil
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageCompile, Status: StatusWorking})
	var buf bytes.Buffer
	start := time.Now()
	res, err = compiler.Compile(ctx, file, &buf, compiler.Options{
		Dialect: opts.Dialect,
		Header:  opts.Banner,
		Timer:   timer,
	})
	if err != nil {
		return nil, nil, false, err
	}
	trace.Point(trace.FromContext(ctx), trace.ScopeFile, "compiled", fmt.Sprintf("%s in %s", file.Path, time.Since(start).Round(time.Microsecond)))

	if opts.Cache != nil {
		// кеш — оптимизация, его ошибки компиляцию не валят
		_ = opts.Cache.Put(key, resultToPayload(file.Hash, opts.Dialect.Name, buf.Bytes(), res)) //nolint:errcheck
	}
	return buf.Bytes(), res, false, nil
}
