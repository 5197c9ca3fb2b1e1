package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/textcraft/internal/textmode"
)

const pagePadding = 2

func (m *model) View() string {
	width := m.layout.contentWidth
	body, zones := stackSections([]section{
		{name: "hero", body: m.heroView()},
		{name: "subtitle", body: indent(m.surface.View(width))},
		{name: "tabs", body: indent(m.tabsView())},
		{name: "editor", body: indent(m.editorView())},
		{name: "meta", body: indent(m.metaView())},
		{name: "output", body: indent(m.outputView())},
		{name: "status", body: indent(m.statusView())},
		{name: "help", body: indent(m.help.View(m.keys))},
	})
	m.zones = zones
	return body
}

func indent(body string) string {
	if body == "" {
		return ""
	}
	return pageStyle.Render(body)
}

func (m *model) heroView() string {
	return renderLogo()
}

func (m *model) tabsView() string {
	m.tabZones = m.tabZones[:0]
	rows := []string{
		m.tabRow(0, "Process", textmode.KindProcessing),
		m.tabRow(1, "Style", textmode.KindStyle),
	}
	return tabsBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) tabRow(row int, label string, kind textmode.Kind) string {
	var b strings.Builder
	head := tabLabelStyle.Render(label)
	b.WriteString(head)
	col := lipgloss.Width(head)
	for idx, mode := range m.modes {
		if mode.Kind != kind {
			continue
		}
		cell := m.tabCell(idx, mode)
		width := lipgloss.Width(cell)
		m.tabZones = append(m.tabZones, tabZone{row: row, start: col, end: col + width, index: idx})
		b.WriteString(cell)
		col += width
	}
	return b.String()
}

func (m *model) tabCell(idx int, mode textmode.Mode) string {
	selected := false
	marker := "( )"
	switch mode.Kind {
	case textmode.KindProcessing:
		selected = m.state.HasProcessingMode(mode.ID)
		marker = "[ ]"
		if selected {
			marker = "[x]"
		}
	case textmode.KindStyle:
		selected = m.state.StyleMode() == mode.ID
		if selected {
			marker = "(•)"
		}
	}
	label := marker + " " + mode.Name
	current := m.focus == focusTabs && idx == m.tabCursor
	switch {
	case current && selected:
		return tabCursorSelectedStyle.Render(label)
	case current:
		return tabCursorStyle.Render(label)
	case selected:
		return tabSelectedStyle.Render(label)
	default:
		return tabStyle.Render(label)
	}
}

func (m *model) editorView() string {
	if m.focus == focusEditor {
		return editorFocusedBoxStyle.Render(m.editor.View())
	}
	return editorBoxStyle.Render(m.editor.View())
}

func (m *model) metaView() string {
	count := helperStyle.Render(fmt.Sprintf("%d characters", utf8.RuneCountInString(m.editor.Value())))
	button := m.processButton()
	gap := m.layout.contentWidth - lipgloss.Width(count) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	start := lipgloss.Width(count) + gap
	m.buttonZone = tabZone{start: start, end: start + lipgloss.Width(button)}
	return count + strings.Repeat(" ", gap) + button
}

func (m *model) processButton() string {
	switch {
	case m.processing:
		return buttonBusyStyle.Render(m.spinner.View() + " Processing…")
	case m.state.CanProcess():
		return buttonStyle.Render("Process ⌃R")
	default:
		return buttonDisabledStyle.Render("Process ⌃R")
	}
}

func (m *model) outputView() string {
	header := sectionHeaderStyle.Render("Result")
	if m.copied {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", copiedStyle.Render(copiedLabel))
	}
	body := helperStyle.Render(outputPlaceholder)
	if m.state.OutputText() != "" {
		body = m.output.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *model) statusView() string {
	var lines []string
	if m.errorMessage != "" {
		lines = append(lines, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		lines = append(lines, helperStyle.Render(m.infoMessage))
	}
	stats := []string{
		fmt.Sprintf("Focus %s", m.focus),
		fmt.Sprintf("Provider %s", m.config.LLM.Name()),
		fmt.Sprintf("Modes %s", m.modesSummary()),
	}
	if badge := m.lastJob.badge(); badge != "" {
		stats = append(stats, badge)
	}
	lines = append(lines, statusBarStyle.Render(strings.Join(stats, "  •  ")))
	return strings.Join(lines, "\n")
}

func (m *model) modesSummary() string {
	processing := m.state.ProcessingModes()
	if len(processing) == 0 {
		processing = []string{"none"}
	}
	style := m.state.StyleMode()
	if style == "" {
		style = "none"
	}
	return strings.Join(processing, "+") + " / " + style
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			if y+1 < height && x+1 < width {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}

	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: logoFaceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pageStyle          = lipgloss.NewStyle().PaddingLeft(pagePadding)

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	subtitleStyle          = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true).MarginBottom(1)
	subtitleSlidingStyle   = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Faint(true).MarginBottom(1)
	tabsBoxStyle           = lipgloss.NewStyle().MarginBottom(1)
	tabLabelStyle          = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor).Width(10)
	tabStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Padding(0, 1)
	tabSelectedStyle       = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor).Padding(0, 1)
	tabCursorStyle         = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#ffd166")).Padding(0, 1)
	tabCursorSelectedStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#ffd166")).Background(heroEmberColor).Padding(0, 1)
	editorBoxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e"))
	editorFocusedBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor)
	buttonStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	buttonDisabledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 1)
	buttonBusyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	copiedStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))
	statusBarStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	logoFaceStyle          = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle     = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines           = []string{
		"▀█▀ █▀▀ ▀▄▀ ▀█▀ █▀▀ █▀█ ▄▀█ █▀▀ ▀█▀",
		" █  ██▄ █ █  █  █▄▄ █▀▄ █▀█ █▀   █ ",
	}
)
