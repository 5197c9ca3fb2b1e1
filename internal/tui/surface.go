package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/textcraft/internal/clock"
)

// subtitleLine renders the animated subtitle. It implements subtitle.Surface.
type subtitleLine struct {
	clock clock.Clock

	text   string
	hidden bool
	offset int

	cursorOn bool
	blinking bool
	blink    clock.Handle
}

func newSubtitleLine(c clock.Clock) *subtitleLine {
	return &subtitleLine{clock: c}
}

func (s *subtitleLine) SetRevealedText(text string) {
	s.stopBlink()
	s.text = text
	s.cursorOn = true
}

func (s *subtitleLine) ClearRevealedText() {
	s.stopBlink()
	s.text = ""
	s.cursorOn = false
}

func (s *subtitleLine) SetElementHidden(hidden bool) {
	s.hidden = hidden
}

func (s *subtitleLine) ApplyTransientTransform(offset int) {
	s.offset = offset
}

func (s *subtitleLine) ClearTransientTransform() {
	s.offset = 0
}

func (s *subtitleLine) ElementHeight() int {
	return lipgloss.Height(subtitleStyle.Render(" "))
}

// startBlink toggles the trailing cursor once the reveal has finished.
func (s *subtitleLine) startBlink() {
	s.stopBlink()
	s.blinking = true
	s.cursorOn = true
	s.scheduleBlink()
}

func (s *subtitleLine) scheduleBlink() {
	s.blink = s.clock.Schedule(cursorBlinkInterval, func() {
		s.blink = 0
		if !s.blinking {
			return
		}
		s.cursorOn = !s.cursorOn
		s.scheduleBlink()
	})
}

func (s *subtitleLine) stopBlink() {
	if s.blink != 0 {
		s.clock.Cancel(s.blink)
		s.blink = 0
	}
	s.blinking = false
}

func (s *subtitleLine) sliding() bool {
	return s.offset != 0
}

// View renders the line centered in width. A hidden line takes no rows
// unless it is sliding.
func (s *subtitleLine) View(width int) string {
	if s.hidden && !s.sliding() {
		return ""
	}
	line := s.text
	if s.cursorOn {
		line += subtitleCursor
	}
	if line == "" {
		line = " "
	}
	style := subtitleStyle
	if s.sliding() {
		style = subtitleSlidingStyle
	}
	return style.Copy().Width(width).Align(lipgloss.Center).Render(line)
}

// pageProbe answers the subtitle controller's questions about the page.
type pageProbe struct {
	m *model
}

func (p pageProbe) AtTop() bool {
	return p.m.output.AtTop()
}

func (p pageProbe) InputFocused() bool {
	return p.m.focus == focusEditor
}

func (p pageProbe) Scrollable() bool {
	return p.m.outputLines > p.m.output.Height
}
