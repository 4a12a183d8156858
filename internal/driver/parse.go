package driver

import (
	"fmt"

	"fortio.org/safecast"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/lexer"
	"epslint/internal/parser"
	"epslint/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse loads and parses one file without running any lint.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	builder, astFile, err := parseInto(fs, fileID, diag.BagReporter{Bag: bag}, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag.Sort()
	return &ParseResult{
		FileSet: fs,
		File:    fs.Get(fileID),
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseInto lexes and parses file id into a fresh builder. Each builder owns
// its interner, so calls on different files may run concurrently.
func parseInto(fs *source.FileSet, id source.FileID, rep diag.Reporter, maxDiagnostics int) (*ast.Builder, ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, ast.NoFileID, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	return builder, res.File, nil
}
