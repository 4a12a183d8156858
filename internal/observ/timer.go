// Package observ records wall-clock timings and counters of a lint run.
package observ

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer tracks sequential phases and named counters. It is safe for
// concurrent use; workers bump counters while the driver times phases.
type Timer struct {
	mu       sync.Mutex
	phases   []phase
	counters map[string]int
}

func NewTimer() *Timer {
	return &Timer{phases: make([]phase, 0, 4), counters: make(map[string]int)}
}

// Track starts a phase. Calling the returned function ends it with note;
// later calls are ignored.
func (t *Timer) Track(name string) func(note string) {
	t.mu.Lock()
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	idx := len(t.phases) - 1
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			p := &t.phases[idx]
			p.dur = time.Since(p.start)
			p.note = note
		})
	}
}

// Add increases counter name by n.
func (t *Timer) Add(name string, n int) {
	t.mu.Lock()
	t.counters[name] += n
	t.mu.Unlock()
}

// PhaseReport is the serialisable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS  float64        `json:"total_ms"`
	Phases   []PhaseReport  `json:"phases"`
	Counters map[string]int `json:"counters,omitempty"`
}

// Report snapshots phases and counters. Phases are sequential, so the total
// is their sum.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var report Report
	if len(t.counters) > 0 {
		report.Counters = maps.Clone(t.counters)
	}
	if len(t.phases) == 0 {
		return report
	}
	report.Phases = make([]PhaseReport, len(t.phases))
	var total time.Duration
	for i, p := range t.phases {
		total += p.dur
		report.Phases[i] = PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as a table for --timings.
func (t *Timer) Summary() string {
	report := t.Report()
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetTitle("timings")
	tw.AppendHeader(table.Row{"Phase", "ms", "%", "Note"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	for _, p := range report.Phases {
		share := 0.0
		if report.TotalMS > 0 {
			share = 100 * p.DurationMS / report.TotalMS
		}
		tw.AppendRow(table.Row{p.Name, fmt.Sprintf("%.2f", p.DurationMS), fmt.Sprintf("%.0f", share), p.Note})
	}
	tw.AppendFooter(table.Row{"total", fmt.Sprintf("%.2f", report.TotalMS), "", counterLine(report.Counters)})
	return tw.Render() + "\n"
}

func counterLine(counters map[string]int) string {
	parts := make([]string, 0, len(counters))
	for _, name := range slices.Sorted(maps.Keys(counters)) {
		parts = append(parts, fmt.Sprintf("%s=%d", name, counters[name]))
	}
	return strings.Join(parts, " ")
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
