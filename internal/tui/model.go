package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/textcraft/internal/clock"
	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/selection"
	"github.com/csheth/textcraft/internal/subtitle"
	"github.com/csheth/textcraft/internal/textmode"
)

// Config wires runtime options into the TUI program.
type Config struct {
	// LLM performs the transformations. Nil uses the instant simulation.
	LLM llm.Client
	// Clock drives the subtitle animations and timed feedback and stays owned
	// by the caller. Nil starts a clock.Loop that the model closes on quit.
	Clock        clock.Clock
	Subtitle     subtitle.Config
	CopyFeedback time.Duration
	// File is imported into the editor on start when set.
	File      string
	Clipboard func(string) error
	Context   context.Context
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.LLM == nil {
		config.LLM, _ = llm.New(llm.Config{Provider: llm.ProviderSimulate})
	}
	var ownedLoop *clock.Loop
	if config.Clock == nil {
		ownedLoop = clock.NewLoop()
		config.Clock = ownedLoop
	}
	if config.Clipboard == nil {
		config.Clipboard = clipboard.WriteAll
	}
	if config.CopyFeedback <= 0 {
		config.CopyFeedback = defaultCopyFeedback
	}

	layout := newPageLayout()

	editor := textarea.New()
	editor.Placeholder = editorPlaceholder
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(layout.contentWidth - 2)
	editor.SetHeight(layout.editorHeight)
	editor.Blur()

	output := viewport.New(layout.contentWidth, layout.outputHeight)
	output.MouseWheelEnabled = true

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	state := selection.New()
	state.SetProcessingMode(textmode.DefaultProcessingMode, true)
	state.SetStyleMode(textmode.DefaultStyleMode)

	modes := append(textmode.OfKind(textmode.KindProcessing), textmode.OfKind(textmode.KindStyle)...)

	m := &model{
		config:      config,
		clock:       config.Clock,
		ownedLoop:   ownedLoop,
		jobs:        newJobBus(config.Context),
		keys:        newKeyMap(),
		layout:      layout,
		state:       state,
		modes:       modes,
		editor:      editor,
		output:      output,
		spinner:     spin,
		help:        help.New(),
		focus:       focusTabs,
		zones:       map[string]hitZone{},
		infoMessage: "Press i to write, tab to move between areas, ctrl+r to process.",
	}
	if timers, ok := config.Clock.(timerSource); ok {
		m.timers = timers
	}
	m.surface = newSubtitleLine(config.Clock)
	m.reveal = subtitle.NewReveal(config.Clock, m.surface)
	m.reveal.OnComplete = m.surface.startBlink
	m.subtitle = subtitle.NewController(config.Clock, m.surface, pageProbe{m: m}, m.reveal, config.Subtitle)
	return m
}

type model struct {
	config    Config
	clock     clock.Clock
	ownedLoop *clock.Loop
	timers    timerSource
	jobs      *jobBus
	keys      keyMap
	layout    pageLayout

	state     *selection.State
	modes     []textmode.Mode
	tabCursor int

	editor      textarea.Model
	output      viewport.Model
	outputLines int
	spinner     spinner.Model
	help        help.Model

	surface  *subtitleLine
	reveal   *subtitle.Reveal
	subtitle *subtitle.Controller

	focus      focusArea
	processing bool
	copied     bool
	copyTimer  clock.Handle
	lastJob    jobSnapshot

	zones      map[string]hitZone
	tabZones   []tabZone
	buttonZone tabZone

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	m.subtitle.Init()
	var cmds []tea.Cmd
	if m.timers != nil {
		cmds = append(cmds, waitForTimer(m.timers))
	}
	if m.config.File != "" {
		m.infoMessage = fmt.Sprintf("Loading %s…", trimmedName(m.config.File))
		cmds = append(cmds, m.jobs.Start(jobKindImport, importJob(m.config.File)))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		if m.timers == nil {
			return m, nil
		}
		m.timers.Fire(msg.handle)
		return m, waitForTimer(m.timers)
	case spinner.TickMsg:
		if m.processing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.lastJob = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJob = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case transformResultMsg:
		m.processing = false
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("processing failed: %v", msg.err)
			m.infoMessage = "Adjust the text or modes and press ctrl+r to retry."
			return m, nil
		}
		m.errorMessage = ""
		m.state.SetOutputText(msg.output)
		m.state.CommitSnapshot(msg.snapshot)
		m.refreshOutput()
		m.output.GotoTop()
		m.infoMessage = "Done. Press ctrl+y to copy the result."
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Copy failed. Select the text manually. (%v)", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.showCopied()
		return m, nil
	case importResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("import %s: %v", trimmedName(msg.path), msg.err)
			m.infoMessage = ""
			return m, nil
		}
		m.editor.SetValue(msg.text)
		m.state.SetInputText(m.editor.Value())
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Loaded %s (%d characters).", trimmedName(msg.path), utf8.RuneCountInString(m.editor.Value()))
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	if m.focus == focusEditor {
		return m.handleEditorKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Process):
		return m, m.actionProcess()
	case key.Matches(msg, m.keys.Copy):
		return m, m.actionCopy()
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.setFocus(focusEditor)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Blur):
		m.activatePage()
		return m, nil
	}
	if m.focus == focusOutput {
		return m.scrollOutput(msg)
	}
	return m.handleTabKey(msg)
}

func (m *model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.activatePage()
		return m, nil
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "ctrl+r":
		return m, m.actionProcess()
	case "ctrl+y":
		return m, m.actionCopy()
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.state.SetInputText(m.editor.Value())
	return m, cmd
}

func (m *model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveTabCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveTabCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.activateTab(m.tabCursor)
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		return m.scrollOutput(msg)
	}
	return m, nil
}

// scrollOutput feeds msg to the result viewport and reports an actual scroll
// to the subtitle.
func (m *model) scrollOutput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.output.YOffset
	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	if m.output.YOffset != before {
		m.subtitle.HandleScroll()
	}
	return m, cmd
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		return m.scrollOutput(msg)
	case tea.MouseLeft:
		return m, m.handleClick(msg.X, msg.Y)
	}
	return m, nil
}

func (m *model) handleClick(x, y int) tea.Cmd {
	col := x - pagePadding
	if zone, ok := m.zones["editor"]; ok && zone.contains(y) {
		m.setFocus(focusEditor)
		return nil
	}
	if zone, ok := m.zones["tabs"]; ok && zone.contains(y) {
		if idx, hit := tabAt(m.tabZones, y-zone.top, col); hit {
			m.setFocus(focusTabs)
			m.activateTab(idx)
			return nil
		}
	}
	if zone, ok := m.zones["meta"]; ok && zone.contains(y) {
		if col >= m.buttonZone.start && col < m.buttonZone.end {
			m.setFocus(focusTabs)
			return m.actionProcess()
		}
	}
	if zone, ok := m.zones["output"]; ok && zone.contains(y) {
		m.setFocus(focusOutput)
		m.subtitle.HandleExternalActivation()
		return nil
	}
	m.activatePage()
	return nil
}

// activatePage is a click outside the editor: the editor loses focus and the
// subtitle gets a chance to come back.
func (m *model) activatePage() {
	if m.focus == focusEditor {
		m.setFocus(focusTabs)
	}
	m.subtitle.HandleExternalActivation()
}

func (m *model) setFocus(area focusArea) {
	if m.focus == area {
		return
	}
	previous := m.focus
	m.focus = area
	if area == focusEditor {
		m.editor.Focus()
		m.subtitle.Hide()
		return
	}
	if previous == focusEditor {
		m.editor.Blur()
	}
}

func (m *model) cycleFocus(delta int) {
	order := []focusArea{focusTabs, focusEditor, focusOutput}
	idx := 0
	for i, area := range order {
		if area == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *model) moveTabCursor(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.tabCursor = (m.tabCursor + delta + len(m.modes)) % len(m.modes)
}

func (m *model) activateTab(index int) {
	if index < 0 || index >= len(m.modes) {
		return
	}
	m.tabCursor = index
	mode := m.modes[index]
	switch mode.Kind {
	case textmode.KindProcessing:
		if m.state.ToggleProcessingMode(mode.ID) {
			m.infoMessage = fmt.Sprintf("%s enabled.", mode.Name)
		} else {
			m.infoMessage = fmt.Sprintf("%s disabled.", mode.Name)
		}
	case textmode.KindStyle:
		m.state.SetStyleMode(mode.ID)
		m.infoMessage = fmt.Sprintf("Style set to %s.", mode.Name)
	}
}

func (m *model) actionProcess() tea.Cmd {
	if m.processing {
		m.infoMessage = "Already processing…"
		return nil
	}
	if !m.state.CanProcess() {
		m.infoMessage = m.processBlockedReason()
		return nil
	}
	snap := m.state.Selection()
	m.processing = true
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Processing with %s…", m.config.LLM.Name())
	return tea.Batch(m.jobs.Start(jobKindTransform, transformJob(m.config.LLM, snap)), m.spinner.Tick)
}

func (m *model) processBlockedReason() string {
	switch {
	case strings.TrimSpace(m.state.InputText()) == "":
		return "Enter some text first."
	case len(m.state.ProcessingModes()) == 0:
		return "Select at least one processing mode."
	case m.state.StyleMode() == "":
		return "Select a style."
	default:
		return "Nothing changed since the last run."
	}
}

func (m *model) actionCopy() tea.Cmd {
	text := m.state.OutputText()
	if strings.TrimSpace(text) == "" {
		m.infoMessage = "Nothing to copy yet."
		return nil
	}
	return m.jobs.Start(jobKindCopy, copyJob(m.config.Clipboard, text))
}

func (m *model) showCopied() {
	if m.copyTimer != 0 {
		m.clock.Cancel(m.copyTimer)
	}
	m.copied = true
	m.infoMessage = copiedLabel
	m.copyTimer = m.clock.Schedule(m.config.CopyFeedback, func() {
		m.copyTimer = 0
		m.copied = false
		if m.infoMessage == copiedLabel {
			m.infoMessage = ""
		}
	})
}

// quit releases the clock the model started for itself.
func (m *model) quit() tea.Cmd {
	if m.ownedLoop != nil {
		m.ownedLoop.Close()
	}
	return tea.Quit
}

func (m *model) resize(width, height int) {
	m.layout.Update(width, height)
	m.editor.SetWidth(m.layout.contentWidth - 2)
	m.editor.SetHeight(m.layout.editorHeight)
	m.output.Width = m.layout.contentWidth
	m.output.Height = m.layout.outputHeight
	m.help.Width = m.layout.contentWidth
	m.refreshOutput()
}

func (m *model) refreshOutput() {
	text := m.state.OutputText()
	if text == "" {
		m.output.SetContent("")
		m.outputLines = 0
		return
	}
	wrapped := wrapOutput(text, m.output.Width)
	m.output.SetContent(wrapped)
	m.outputLines = lipgloss.Height(wrapped)
}
