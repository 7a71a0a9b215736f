// Package output renders domain objects as tables, key/value listings or
// structured documents (JSON, YAML).
//
// Domain types opt into capabilities (TableOutputHandler, KeyValOutputHandler,
// DescribeObjectHandler) and the functions in this file pick the renderer that
// matches the requested OutputType. All of them write through a Terminal.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal is the sink every renderer writes to.
type Terminal interface {
	Print(msg string)
	Println(msg string)
}

// RenderContext is implemented by values that must gather data before they
// can render themselves.
type RenderContext interface {
	RenderOn(ctx context.Context, out Terminal) error
}

// headerStyler is an optional Terminal capability used to emphasize table headers.
type headerStyler interface {
	styleHeader(line string) string
}

// Stream is a Terminal writing to an io.Writer. One Stream is meant to be
// shared by all render calls of a command; it does no locking, so callers
// must not render to it concurrently.
type Stream struct {
	Writer   io.Writer
	renderer *lipgloss.Renderer
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithColor forces color off when enabled is false. When enabled is true the
// writer's own capabilities decide.
func WithColor(enabled bool) StreamOption {
	return func(s *Stream) {
		if !enabled {
			s.renderer.SetColorProfile(termenv.Ascii)
		}
	}
}

// NewStream creates a Stream writing to w.
func NewStream(w io.Writer, opts ...StreamOption) *Stream {
	s := &Stream{
		Writer:   w,
		renderer: lipgloss.NewRenderer(w),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Print writes msg as is.
func (s *Stream) Print(msg string) {
	fmt.Fprint(s.Writer, msg)
}

// Println writes msg followed by a newline.
func (s *Stream) Println(msg string) {
	fmt.Fprintln(s.Writer, msg)
}

func (s *Stream) styleHeader(line string) string {
	if s.renderer.ColorProfile() == termenv.Ascii {
		return line
	}
	return s.renderer.NewStyle().Bold(true).Render(line)
}

// RenderList renders list as a table in table mode and as a structured
// document otherwise. Only the structured path can fail.
func RenderList[T TableOutputHandler](out Terminal, list T, mode OutputType) error {
	if mode.IsTable() {
		NewTableRenderer(out).Render(list, false)
		return nil
	}
	st, ok := mode.SerializeType()
	if !ok {
		return fmt.Errorf("unsupported output type %q", mode)
	}
	return NewSerdeRenderer(out).Render(list, st)
}

// RenderTable always renders val as a table. indent nests the table under a
// preceding label, as describe views do.
func RenderTable[T TableOutputHandler](out Terminal, val T, indent bool) {
	NewTableRenderer(out).Render(val, indent)
}

// RenderSerde serializes val as JSON or YAML.
func RenderSerde(out Terminal, val any, mode SerializeType) error {
	return NewSerdeRenderer(out).Render(val, mode)
}

// DescribeObjects renders the detail view of objects.
func DescribeObjects[D DescribeObject](out Terminal, objects []D, mode OutputType) error {
	return NewDescribeObjectRender[D](out).Render(objects, mode)
}

// RenderKeyValues prints the label/value pairs of val as an aligned listing:
// "label : value", or the bare label when the pair has no value.
func RenderKeyValues[K KeyValOutputHandler](out Terminal, val K) {
	pairs := val.KeyValues()
	rows := make([]Row, 0, len(pairs))
	for _, kv := range pairs {
		if kv.Value != nil {
			rows = append(rows, Row{NewCell(kv.Key), NewCell(":"), NewCell(*kv.Value)})
		} else {
			rows = append(rows, Row{NewCell(kv.Key)})
		}
	}
	widths := columnWidths(rows)
	for _, row := range rows {
		out.Println(formatRow(row, widths))
	}
}
