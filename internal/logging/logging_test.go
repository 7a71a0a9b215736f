package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/luckyjian/clusterctl/internal/logging"
)

func TestLevelFor(t *testing.T) {
	cases := map[int]zerolog.Level{
		-1: zerolog.WarnLevel,
		0:  zerolog.WarnLevel,
		1:  zerolog.InfoLevel,
		2:  zerolog.DebugLevel,
		5:  zerolog.TraceLevel,
	}
	for v, want := range cases {
		if got := logging.LevelFor(v); got != want {
			t.Errorf("LevelFor(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestSetup_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(&buf, 0, "")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Msg("hidden info")
	log.Warn().Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden info") {
		t.Errorf("info must be filtered at verbosity 0: %q", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Errorf("expected warning in output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color for a non-terminal writer: %q", out)
	}
}

func TestSetup_LogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "clusterctl.log")
	logging.Setup(&buf, 1, path)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger := logging.GetLogger("spg")
	logger.Info().Msg("listed groups")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"spg"`) {
		t.Errorf("expected component field in log file, got %q", data)
	}
}

func TestSetup_CloseReleasesLogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "clusterctl.log")
	closeLog := logging.Setup(&buf, 1, path)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Msg("before close")
	closeLog()
	log.Info().Msg("after close")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "before close") {
		t.Errorf("expected record written before close, got %q", data)
	}
	if strings.Contains(string(data), "after close") {
		t.Errorf("records after close must not reach the file, got %q", data)
	}
	if !strings.Contains(buf.String(), "after close") {
		t.Errorf("expected console to keep logging, got %q", buf.String())
	}
}

func TestSetup_CloseWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	closeLog := logging.Setup(&buf, 0, "")
	closeLog()
	log.Warn().Msg("still logging")
	if !strings.Contains(buf.String(), "still logging") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}
