package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"accumc/internal/trace"
)

// ListSources возвращает отсортированный список всех файлов с расширением ext в директории
func ListSources(dir, ext string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// BuildDir compiles every source file under dir in parallel, writing each
// output next to its source. Results come back in sorted path order, one per
// file. A file that fails to load or compile does not stop the others; its
// diagnostics are in its Bag. The error return is reserved for walking the
// directory, writing failures and cancellation.
func BuildDir(ctx context.Context, dir string, opts Options) ([]*FileResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "build")
	defer span.End(dir)

	files, err := ListSources(dir, opts.SourceExt)
	if err != nil {
		return nil, err
	}
	span.WithExtraInt("files", len(files))
	if len(files) == 0 {
		return nil, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			out := OutputPath(path, opts.SourceExt, opts.OutputExt)
			fr, err := CompileFile(gctx, path, out, opts)
			results[i] = fr

			status := StatusDone
			switch {
			case err != nil || fr.Failed():
				status = StatusError
			case fr.Cached:
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: status, Err: err, Elapsed: time.Since(start)})

			// ошибки чтения входа остаются в Bag файла, остальные прерывают сборку
			if err != nil && !isLoadFailure(fr) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func isLoadFailure(fr *FileResult) bool {
	return fr != nil && fr.File == nil
}

// BuildFailed reports whether any file of a build has errors.
func BuildFailed(results []*FileResult) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// ErrNoSources is returned by callers that require at least one file.
var ErrNoSources = errors.New("no source files found")
