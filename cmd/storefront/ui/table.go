package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders tabular data with an optional highlighted row. It is used
// for the product grid and the headless catalog listing.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Selected int // highlighted row index; -1 for none
}

// NewTable creates a Table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:    title,
		Headers:  headers,
		Selected: -1,
	}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table with the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // cell padding
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selectedStyle := styles.Selected.Padding(0, 1)

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.Divider.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for r, row := range t.Rows {
		style := rowStyle
		if r == t.Selected {
			style = selectedStyle
		}
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(style.Width(widths[i]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
