package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"epslint/internal/diag"
	"epslint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Cache stores the diagnostics of previously linted file contents on disk,
// keyed by a Digest of the content and everything that affects the result.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack record of one cache entry. Spans are stored as
// offsets and rebound to the current FileID on load.
type DiskPayload struct {
	Schema      uint16
	Diagnostics []cachedDiagnostic
}

type cachedSpan struct {
	Start, End uint32
}

type cachedNote struct {
	Span cachedSpan
	Msg  string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
	OldText string
}

type cachedFix struct {
	Title         string
	Kind          uint8
	Applicability uint8
	IsPreferred   bool
	Edits         []cachedEdit
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Lint     string
	Message  string
	Primary  cachedSpan
	Notes    []cachedNote
	Fixes    []cachedFix
}

// DefaultCacheDir is $XDG_CACHE_HOME/epslint, falling back to ~/.cache/epslint.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "epslint"), nil
}

// OpenCache opens (creating if needed) a cache rooted at dir; an empty dir
// means DefaultCacheDir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *Cache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads a payload. A missing entry or one written by another schema
// version reports false with no error.
func (c *Cache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func toCachedSpan(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start, End: sp.End} }

func (s cachedSpan) bind(file source.FileID) source.Span {
	return source.Span{File: file, Start: s.Start, End: s.End}
}

// bagToDiskPayload converts the diagnostics of a single file for caching.
// Fix IDs are not stored; the fix engine assigns them per run.
func bagToDiskPayload(bag *diag.Bag) *DiskPayload {
	items := bag.Items()
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Diagnostics: make([]cachedDiagnostic, 0, len(items)),
	}
	for _, d := range items {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Lint:     d.Lint,
			Message:  d.Message,
			Primary:  toCachedSpan(d.Primary),
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Span: toCachedSpan(n.Span), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			if f == nil {
				continue
			}
			cf := cachedFix{
				Title:         f.Title,
				Kind:          uint8(f.Kind),
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
			}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Span: toCachedSpan(e.Span), NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// diskPayloadToBag restores cached diagnostics against file.
func diskPayloadToBag(payload *DiskPayload, file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Primary.bind(file), cd.Message)
		d.Lint = cd.Lint
		for _, n := range cd.Notes {
			d = d.WithNote(n.Span.bind(file), n.Msg)
		}
		for _, cf := range cd.Fixes {
			f := &diag.Fix{
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.Applicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
			}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{Span: e.Span.bind(file), NewText: e.NewText, OldText: e.OldText})
			}
			d = d.WithFixSuggestion(f)
		}
		bag.Add(d)
	}
	return bag
}
