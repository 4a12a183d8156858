package driver

import (
	"log/slog"
	"time"

	"epslint/internal/lint"
)

// Options configures a lint run. The zero value lints with the built-in
// registry, default levels, no cache and one worker per CPU.
type Options struct {
	// Registry supplies the passes; nil means lints.Registry().
	Registry *lint.Registry
	// Levels are the config/CLI level overrides, applied below source attributes.
	Levels lint.LevelConfig
	// MaxDiagnostics caps each file's bag; <= 0 means unlimited.
	MaxDiagnostics int
	Jobs           int
	// Exclude holds path.Match patterns checked against the slash-separated
	// path relative to the walked directory and against the base name.
	Exclude []string
	Cache   *Cache
	Logger  *slog.Logger
	// Progress receives per-file events from worker goroutines.
	Progress ProgressSink
}

// Status is the state of one file in a run.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "linting"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File     string
	Status   Status
	Findings int
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func (o *Options) emit(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
