package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align selects how a column pads its cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Title string
	Align Align
}

// Cols builds left-aligned columns from titles.
func Cols(titles ...string) []Column {
	cols := make([]Column, len(titles))
	for i, t := range titles {
		cols[i] = Column{Title: t}
	}
	return cols
}

// RenderTable renders an aligned table with a header separator line.
// Widths are measured on visible cells, so styled cells line up.
// An optional footer row is drawn under a second separator.
func RenderTable(cols []Column, rows [][]string, footer ...string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	measure := func(row []string) {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		measure(row)
	}
	measure(footer)

	const colGap = 2
	var b strings.Builder

	writeRow := func(cells []string, style func(string) string) {
		for i, c := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if style != nil {
				cell = style(cell)
			}
			last := i == len(cols)-1
			switch c.Align {
			case AlignRight:
				b.WriteString(strings.Repeat(" ", pad) + cell)
			default:
				b.WriteString(cell)
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	separator := func() {
		for i, w := range widths {
			b.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
			if i < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	writeRow(titles, func(s string) string { return StyleAccent.Render(s) })
	separator()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if len(footer) > 0 {
		separator()
		writeRow(footer, func(s string) string { return StyleStrong.Render(s) })
	}
	return b.String()
}
