package diagfmt

import (
	"fmt"
	"io"

	"epslint/internal/diag"
	"epslint/internal/source"
)

// Short writes one line per diagnostic, sorted by position:
//
//	warning LNT3001 src/lib.rs:7:13 float equality check without `.abs()`
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Pointers(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
