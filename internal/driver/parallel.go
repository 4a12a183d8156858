package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"epslint/internal/diag"
	"epslint/internal/lint"
	"epslint/internal/lints"
	"epslint/internal/observ"
	"epslint/internal/source"
)

// FileResult is the outcome for one file. Err is set when the file could not
// be read; Bag is then empty.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
	Err    error
}

// Result holds every file of a run in path order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timer   *observ.Timer
}

// Bag merges the per-file bags into one sorted bag.
func (r *Result) Bag() *diag.Bag {
	out := diag.NewBag(0)
	for _, f := range r.Files {
		if f.Bag != nil {
			out.Merge(f.Bag)
		}
	}
	out.Sort()
	return out
}

// Errs lists the files that failed to load.
func (r *Result) Errs() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return errs
}

type session struct {
	opts   *Options
	reg    *lint.Registry
	runner *lint.Runner
}

func newSession(opts *Options) (*session, error) {
	reg := opts.Registry
	if reg == nil {
		reg = lints.Registry()
	}
	overrides, err := reg.Overrides(opts.Levels)
	if err != nil {
		return nil, fmt.Errorf("lint levels: %w", err)
	}
	return &session{opts: opts, reg: reg, runner: lint.NewRunner(reg, overrides)}, nil
}

// lint runs the lexer, the parser and every enabled pass over one loaded file.
func (s *session) lint(fs *source.FileSet, id source.FileID) (*diag.Bag, error) {
	bag := diag.NewBag(s.opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	builder, astFile, err := parseInto(fs, id, rep, s.opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	s.runner.RunFile(lint.Unit{Files: fs, AST: builder, File: astFile}, rep)
	bag.Sort()
	return bag, nil
}

// lintCached consults the cache first. Virtual files are never cached.
func (s *session) lintCached(fs *source.FileSet, id source.FileID) (bag *diag.Bag, cached bool, err error) {
	file := fs.Get(id)
	cache := s.opts.Cache
	if cache == nil || file.Flags&source.FileVirtual != 0 {
		bag, err = s.lint(fs, id)
		return bag, false, err
	}
	log := s.opts.logger()
	key := cacheKey(file.Hash, s.reg, s.opts.Levels, s.opts.MaxDiagnostics)

	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	if err != nil {
		log.Warn("cache read failed", "file", file.Path, "err", err)
	}
	if hit {
		bag = diskPayloadToBag(&payload, id, s.opts.MaxDiagnostics)
		bag.Sort()
		return bag, true, nil
	}
	log.Debug("cache miss", "file", file.Path)

	bag, err = s.lint(fs, id)
	if err != nil {
		return nil, false, err
	}
	if err := cache.Put(key, bagToDiskPayload(bag)); err != nil {
		log.Warn("cache write failed", "file", file.Path, "err", err)
	}
	return bag, false, nil
}

// LintSource lints in-memory content registered under name.
func LintSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := newSession(&opts)
	if err != nil {
		return nil, err
	}
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)

	done := timer.Track("lint")
	bag, err := s.lint(fs, id)
	if err != nil {
		return nil, err
	}
	done("1 file")
	timer.Add("findings", bag.Len())
	return &Result{
		FileSet: fs,
		Files:   []FileResult{{Path: name, FileID: id, Bag: bag}},
		Timer:   timer,
	}, nil
}

// LintFile lints a single file on disk.
func LintFile(ctx context.Context, path string, opts Options) (*Result, error) {
	return LintPaths(ctx, []string{path}, opts)
}

// LintDir lints every *.rs file under dir.
func LintDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	return LintPaths(ctx, []string{dir}, opts)
}

// LintPaths lints files and directories in parallel, at most opts.Jobs at a
// time. Results are in sorted path order whatever the scheduling. A cancelled
// ctx stops the run and is returned as the error together with the partial
// result.
func LintPaths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	s, err := newSession(&opts)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	timer := observ.NewTimer()

	done := timer.Track("discover")
	files, err := Discover(paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	done(fmt.Sprintf("%d files", len(files)))

	fileSet := source.NewFileSetWithBase(baseDirFor(paths))
	result := &Result{FileSet: fileSet, Files: make([]FileResult, len(files)), Timer: timer}
	if len(files) == 0 {
		return result, nil
	}

	// FileSet is not safe for concurrent Add, so every file is loaded up front.
	done = timer.Track("load")
	for i, path := range files {
		result.Files[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			result.Files[i].Err = err
			log.Warn("cannot read file", "file", path, "err", err)
			continue
		}
		result.Files[i].FileID = id
		opts.emit(Event{File: path, Status: StatusQueued})
	}
	done("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	done = timer.Track("lint")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range result.Files {
		fr := &result.Files[i]
		if fr.Err != nil {
			opts.emit(Event{File: fr.Path, Status: StatusError, Err: fr.Err})
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			opts.emit(Event{File: fr.Path, Status: StatusWorking})

			// each goroutine writes only its own slot
			bag, cached, err := s.lintCached(fileSet, fr.FileID)
			if err != nil {
				fr.Err = err
				opts.emit(Event{File: fr.Path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return nil
			}
			fr.Bag, fr.Cached = bag, cached
			timer.Add("findings", bag.Len())

			status := StatusDone
			if cached {
				status = StatusCached
				timer.Add("cache_hits", 1)
			}
			opts.emit(Event{File: fr.Path, Status: status, Findings: bag.Len(), Elapsed: time.Since(start)})
			log.Debug("linted file", "file", fr.Path, "findings", bag.Len(), "cached", cached)
			return nil
		})
	}
	err = g.Wait()
	done(fmt.Sprintf("jobs=%d", jobs))
	return result, err
}

// baseDirFor picks the directory relative paths are rendered against: the
// single directory argument, or the working directory.
func baseDirFor(paths []string) string {
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(paths[0]); err == nil {
				return abs
			}
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
