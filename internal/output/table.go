package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnSeparator = "  "
	tableIndent     = "    "
	errorMarker     = "  error: "
)

// TableRenderer lays out a TableOutputHandler as a borderless table.
type TableRenderer struct {
	out Terminal
}

// NewTableRenderer returns a TableRenderer writing to out.
func NewTableRenderer(out Terminal) *TableRenderer {
	return &TableRenderer{out: out}
}

// Render writes the header, then each content row. A non-empty error for a
// row is printed on the line right below it.
func (r *TableRenderer) Render(list TableOutputHandler, indent bool) {
	header := list.Header()
	content := list.Content()
	errs := list.Errors()

	prefix := ""
	if indent {
		prefix = tableIndent
	}

	widths := columnWidths(append([]Row{header}, content...))

	headerLine := formatRow(header, widths)
	if s, ok := r.out.(headerStyler); ok {
		headerLine = s.styleHeader(headerLine)
	}
	r.out.Println(prefix + headerLine)

	for i, row := range content {
		r.out.Println(prefix + formatRow(row, widths))
		if i < len(errs) && errs[i] != "" {
			r.out.Println(prefix + errorMarker + errs[i])
		}
	}
}

// columnWidths returns the display width of each column. Rows may have
// different lengths.
func columnWidths(rows []Row) []int {
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			w := runewidth.StringWidth(c.Text)
			if i >= len(widths) {
				widths = append(widths, w)
				continue
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func formatRow(row Row, widths []int) string {
	parts := make([]string, len(row))
	for i, c := range row {
		parts[i] = padCell(c, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}

func padCell(c Cell, width int) string {
	switch c.Align {
	case AlignRight:
		return runewidth.FillLeft(c.Text, width)
	case AlignCenter:
		gap := width - runewidth.StringWidth(c.Text)
		if gap <= 0 {
			return c.Text
		}
		left := gap / 2
		return strings.Repeat(" ", left) + c.Text + strings.Repeat(" ", gap-left)
	default:
		return runewidth.FillRight(c.Text, width)
	}
}
