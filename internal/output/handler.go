package output

// Alignment is a column justification hint for a cell.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Cell is one table cell.
type Cell struct {
	Text  string
	Align Alignment
}

// Row is an ordered list of cells.
type Row []Cell

// NewCell returns a left aligned cell.
func NewCell(text string) Cell {
	return Cell{Text: text}
}

// NewCellAlign returns a cell with the given alignment.
func NewCellAlign(text string, align Alignment) Cell {
	return Cell{Text: text, Align: align}
}

// NewRow builds a row of left aligned cells.
func NewRow(texts ...string) Row {
	row := make(Row, len(texts))
	for i, t := range texts {
		row[i] = NewCell(t)
	}
	return row
}

// TableOutputHandler is implemented by values that can be shown as a table.
// Content and Errors are parallel: Errors()[i] annotates Content()[i] and is
// empty when the record has no error.
type TableOutputHandler interface {
	Header() Row
	Errors() []string
	Content() []Row
}

// KeyValue is one label of a key/value listing. A nil Value prints the label alone.
type KeyValue struct {
	Key   string
	Value *string
}

// KV returns a KeyValue with a value.
func KV(key, value string) KeyValue {
	return KeyValue{Key: key, Value: &value}
}

// KeyOnly returns a label-only KeyValue.
func KeyOnly(key string) KeyValue {
	return KeyValue{Key: key}
}

// KeyValOutputHandler is implemented by values that can be listed as label/value pairs.
type KeyValOutputHandler interface {
	KeyValues() []KeyValue
}

// DescribeObjectHandler marks a value that has a detail view.
type DescribeObjectHandler interface {
	// Label is the singular resource kind, e.g. "spu group".
	Label() string
	// LabelPlural is used for the empty placeholder.
	LabelPlural() string
	ResourceName() string
	// IsOk reports whether the object can be rendered; otherwise ValidateError is shown.
	IsOk() bool
	ValidateError() string
}

// DescribeObject is the full set of capabilities the describe renderer needs.
type DescribeObject interface {
	DescribeObjectHandler
	TableOutputHandler
	KeyValOutputHandler
}
