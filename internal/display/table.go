package display

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Align is a column alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders an aligned text table. Widths count runes, so cells such
// as "17.5°" line up.
type Table struct {
	headers []string
	align   []Align
	rows    [][]string
	styles  map[int][]Style
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		align:   make([]Align, len(headers)),
		styles:  make(map[int][]Style),
	}
}

// SetAlign sets the alignment of column col. Out of range columns are ignored.
func (t *Table) SetAlign(col int, a Align) *Table {
	if col >= 0 && col < len(t.align) {
		t.align[col] = a
	}
	return t
}

// AddRow appends a row. Missing cells render empty, extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// StyleRow paints data row idx (0-based) with styles.
func (t *Table) StyleRow(idx int, styles ...Style) {
	t.styles[idx] = styles
}

// Highlight marks data row idx as the current one.
func (t *Table) Highlight(idx int) {
	t.StyleRow(idx, StyleBold, StyleCyan)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

// Render returns the table with a two-space indent, a header row and a
// box-drawing separator.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()

	var sb strings.Builder
	sb.WriteString("  " + Bold(t.formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for i, row := range t.rows {
		sb.WriteString("  " + Paint(t.formatRow(row, widths), t.styles[i]...) + "\n")
	}
	return sb.String()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Render())
	return int64(n), err
}

func (t *Table) formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		if t.align[i] == AlignRight {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, "  ")
}
