package driver

import (
	"errors"
	"fmt"

	"accumc/internal/diag"
	"accumc/internal/lexer"
	"accumc/internal/source"
	"accumc/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it. A lexing failure is reported in Bag; the
// tokens read before it are kept.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		var de *diag.Error
		if !errors.As(err, &de) {
			return nil, err
		}
		bag.ReportError(de)
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
