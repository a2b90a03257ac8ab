package display

import (
	"strings"
)

// Table renders an aligned text table with optional color support.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight (typically "today"). -1 = none.
	highlightRow int
	// muted cells are rendered dim, e.g. the placeholder of an undefined time.
	muted string
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// SetMuted dims every cell whose value is exactly s.
func (t *Table) SetMuted(s string) {
	t.muted = s
}

// Render produces the formatted table string with leading indent.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && Width(cell) > widths[i] {
				widths[i] = Width(cell)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("  " + Bold(strings.Join(padRow(t.headers, widths), "  ")) + "\n")

	sepParts := make([]string, len(widths))
	for i, w := range widths {
		sepParts[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sepParts, "  ")) + "\n")

	for i, row := range t.rows {
		cells := padRow(row, widths)
		if i == t.highlightRow {
			sb.WriteString("  " + Accent(strings.Join(cells, "  ")) + "\n")
			continue
		}
		for j := range cells {
			if t.muted != "" && j < len(row) && row[j] == t.muted {
				cells[j] = Dim(cells[j])
			}
		}
		sb.WriteString("  " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRow left-aligns each cell to its column width.
func padRow(cells []string, widths []int) []string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if pad := w - Width(cell); pad > 0 {
			cell += strings.Repeat(" ", pad)
		}
		parts[i] = cell
	}
	return parts
}
