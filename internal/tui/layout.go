package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	editorHeight int
	outputHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		editorHeight: defaultEditorHeight,
		outputHeight: 8,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - contentHorizontalPadding
	if innerWidth < minContentWidth {
		innerWidth = minContentWidth
	}
	l.contentWidth = innerWidth
	l.editorHeight = defaultEditorHeight
	if height < 30 {
		l.editorHeight = compactEditorHeight
	}
	usable := height - chromeHeight - l.editorHeight
	if usable < minOutputHeight {
		usable = minOutputHeight
	}
	l.outputHeight = usable
}

// hitZone is a half-open row range [top, bottom) of the rendered view.
type hitZone struct {
	top    int
	bottom int
}

func (z hitZone) contains(row int) bool {
	return row >= z.top && row < z.bottom
}

type section struct {
	name string
	body string
}

// stackSections joins non-empty sections vertically and records the rows
// each one occupies.
func stackSections(sections []section) (string, map[string]hitZone) {
	zones := make(map[string]hitZone, len(sections))
	rendered := make([]string, 0, len(sections))
	row := 0
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		height := lipgloss.Height(s.body)
		zones[s.name] = hitZone{top: row, bottom: row + height}
		rendered = append(rendered, s.body)
		row += height
	}
	return strings.Join(rendered, "\n"), zones
}

// tabZone is the clickable span of one mode tab inside the tab rows.
type tabZone struct {
	row   int
	start int
	end   int
	index int
}

func tabAt(zones []tabZone, row, col int) (int, bool) {
	for _, z := range zones {
		if z.row == row && col >= z.start && col < z.end {
			return z.index, true
		}
	}
	return 0, false
}

func wrapOutput(text string, width int) string {
	if width < 20 {
		width = 20
	}
	return wordwrap.String(text, width)
}
