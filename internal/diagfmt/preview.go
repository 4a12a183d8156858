package diagfmt

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"epslint/internal/diag"
	"epslint/internal/source"
)

type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview renders the whole lines touched by f before and after its
// edits are applied. All edits must target the same file.
func buildFixPreview(fs *source.FileSet, f *diag.Fix) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, errors.New("nil FileSet")
	}
	if f == nil || len(f.Edits) == 0 {
		return fixPreview{}, errors.New("fix has no edits")
	}
	edits := slices.Clone(f.Edits)
	slices.SortFunc(edits, func(a, b diag.TextEdit) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	fileID := edits[0].Span.File
	file := fs.Get(fileID)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", fileID)
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}

	first, _ := fs.Resolve(edits[0].Span)
	_, last := fs.Resolve(edits[len(edits)-1].Span)
	blockStart := lineStartOffset(file, first.Line, lenContent)
	blockEnd := min(max(lineEndOffsetInclusive(file, last.Line, lenContent), blockStart), lenContent)

	original := file.Content[blockStart:blockEnd]
	var after strings.Builder
	cursor := blockStart
	for _, e := range edits {
		if e.Span.File != fileID {
			return fixPreview{}, errors.New("fix edits span several files")
		}
		if e.Span.Start < cursor || e.Span.End < e.Span.Start || e.Span.End > blockEnd {
			return fixPreview{}, fmt.Errorf("edit span %s out of range for preview block", e.Span)
		}
		after.Write(file.Content[cursor:e.Span.Start])
		after.WriteString(e.NewText)
		cursor = e.Span.End
	}
	after.Write(file.Content[cursor:blockEnd])

	return fixPreview{
		before: splitPreviewLines(string(original)),
		after:  splitPreviewLines(after.String()),
	}, nil
}

// splitPreviewLines drops the final newline so it does not show up as an empty line.
func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// LineIdx holds newline offsets, so line n starts right after LineIdx[n-2].
func lineStartOffset(f *source.File, line, lenContent uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line - 2); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return lenContent
}

func lineEndOffsetInclusive(f *source.File, line, lenContent uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return lenContent
}
