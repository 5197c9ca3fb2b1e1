package tui

import (
	"time"

	"github.com/csheth/textcraft/internal/clock"
	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/selection"
)

type focusArea int

const (
	focusTabs focusArea = iota
	focusEditor
	focusOutput
)

func (f focusArea) String() string {
	switch f {
	case focusEditor:
		return "EDITOR"
	case focusOutput:
		return "RESULT"
	default:
		return "MODES"
	}
}

const (
	minContentWidth          = 40
	contentHorizontalPadding = 4
	defaultEditorHeight      = 6
	compactEditorHeight      = 4
	minOutputHeight          = 3
	// Rows used by everything except the editor and the result viewport.
	chromeHeight = 17
)

const (
	cursorBlinkInterval = 530 * time.Millisecond
	defaultCopyFeedback = 2 * time.Second
	processTimeout      = 3 * time.Minute
	subtitleCursor      = "▌"
	copiedLabel         = "Copied!"
)

const (
	editorPlaceholder = "Paste or type the text you want to improve…"
	outputPlaceholder = "Your transformed text will appear here."
)

// timerSource is a Clock whose callbacks are delivered through the program
// loop instead of running on timer goroutines.
type timerSource interface {
	clock.Clock
	Fired() <-chan clock.Handle
	Done() <-chan struct{}
	Fire(h clock.Handle) bool
}

type timerFiredMsg struct {
	handle clock.Handle
}

type transformResultMsg struct {
	request  llm.Request
	snapshot selection.Snapshot
	output   string
	err      error
}

type copyResultMsg struct {
	err error
}

type importResultMsg struct {
	path string
	text string
	err  error
}
