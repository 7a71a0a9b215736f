package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

type twoRows struct{}

func (twoRows) Header() Row      { return NewRow("NAME", "STATUS") }
func (twoRows) Errors() []string { return []string{"", ""} }
func (twoRows) Content() []Row {
	return []Row{NewRow("g1", "Ready"), NewRow("g2", "Error")}
}

func TestStream_BoldHeaderWithColorProfile(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	s.renderer.SetColorProfile(termenv.ANSI)

	RenderTable(s, twoRows{}, false)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "\x1b[1m") || !strings.Contains(lines[0], "NAME  STATUS") {
		t.Errorf("expected a bold header, got %q", lines[0])
	}
	for _, l := range lines[1:] {
		if strings.Contains(l, "\x1b[") {
			t.Errorf("content rows must stay plain, got %q", l)
		}
	}
}

func TestStream_NoColorIsPlain(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf, WithColor(false))

	RenderTable(s, twoRows{}, false)

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no escape sequences, got %q", buf.String())
	}
	if !strings.HasPrefix(buf.String(), "NAME  STATUS\n") {
		t.Errorf("unexpected header %q", buf.String())
	}
}
