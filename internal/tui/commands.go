package tui

import (
	"context"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/selection"
	"github.com/csheth/textcraft/internal/source"
)

func transformJob(client llm.Client, snap selection.Snapshot) jobRunner {
	req := llm.Request{
		Text:       snap.Text,
		Processing: append([]string(nil), snap.ProcessingModes...),
		Style:      snap.StyleMode,
	}
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, processTimeout)
		defer cancel()
		output, err := client.Transform(ctx, req)
		return transformResultMsg{request: req, snapshot: snap, output: output, err: err}, err
	}
}

func copyJob(write func(string) error, text string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := write(text)
		return copyResultMsg{err: err}, err
	}
}

func importJob(path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		text, err := source.Load(path)
		return importResultMsg{path: path, text: text, err: err}, err
	}
}

// waitForTimer blocks until the clock publishes a fired handle. The update
// loop re-arms it after every delivery.
func waitForTimer(timers timerSource) tea.Cmd {
	return func() tea.Msg {
		select {
		case h := <-timers.Fired():
			return timerFiredMsg{handle: h}
		case <-timers.Done():
			return nil
		}
	}
}

func trimmedName(path string) string {
	name := filepath.Base(strings.TrimSpace(path))
	return truncate.StringWithTail(name, 40, "…")
}
