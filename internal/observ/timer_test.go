package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("discover")
	time.Sleep(time.Millisecond)
	done("3 files")
	done("ignored")
	tm.Track("lint")("")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].Name != "discover" || rep.Phases[0].Note != "3 files" {
		t.Errorf("unexpected first phase %+v", rep.Phases[0])
	}
	if rep.Phases[0].DurationMS <= 0 || rep.TotalMS < rep.Phases[0].DurationMS {
		t.Errorf("durations not accumulated: %+v", rep)
	}
}

func TestTimerCountersConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("cache_hits", 1)
		}()
	}
	wg.Wait()
	tm.Add("findings", 3)

	rep := tm.Report()
	if rep.Counters["cache_hits"] != 8 || rep.Counters["findings"] != 3 {
		t.Errorf("unexpected counters %v", rep.Counters)
	}
}

func TestSummaryTable(t *testing.T) {
	tm := NewTimer()
	tm.Track("discover")("3 files")
	tm.Add("cache_hits", 2)

	sum := tm.Summary()
	for _, want := range []string{"timings", "discover", "3 files", "total", "cache_hits=2"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil || rep.Counters != nil {
		t.Errorf("expected zero report, got %+v", rep)
	}
}
