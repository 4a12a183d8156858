package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"epslint/internal/driver"
	"epslint/internal/ui"
)

type lintOutcome struct {
	result *driver.Result
	err    error
}

// lintWithUI runs the driver in the background and renders its progress
// events on out until the run finishes.
func lintWithUI(ctx context.Context, out io.Writer, title string, paths []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.LintPaths(ctx, paths, runOpts)
		outcomeCh <- lintOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the driver never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil && ctx.Err() == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
