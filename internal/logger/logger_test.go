package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	enabled := false
	log := NewWithWriter("catalog", func() bool { return enabled }, &buf)

	log.Debug("hidden")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("slow load")
	if !strings.Contains(buf.String(), "WARN [catalog] slow load") {
		t.Errorf("Expected warn line, got %q", buf.String())
	}

	buf.Reset()
	enabled = true
	log.Info("loaded %d products", 3)
	if !strings.Contains(buf.String(), "INFO [catalog] loaded 3 products") {
		t.Errorf("Expected info line, got %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("", nil, &buf)

	log.WarnWithFields("catalog load failed", []Field{Seq(4), F("filter", "Books"), Error(errors.New("boom"))})

	line := buf.String()
	if !strings.Contains(line, "[main] catalog load failed") {
		t.Errorf("Expected default component, got %q", line)
	}
	if !strings.Contains(line, "[seq=4 filter=Books error=boom]") {
		t.Errorf("Expected fields, got %q", line)
	}
}

func TestLogger_WithComponentSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter("storefront", func() bool { return true }, &buf)
	child := parent.WithComponent("session")

	child.Debug("transition")
	if !strings.Contains(buf.String(), "DEBUG [session] transition") {
		t.Errorf("Expected child output in shared writer, got %q", buf.String())
	}
	if !child.IsVerbose() {
		t.Error("Expected child to inherit verbosity")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	if log.IsVerbose() {
		t.Error("Nop logger should not be verbose")
	}
	log.Error("discarded")
}

type failingWriter struct {
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestLogger_FailingWriter(t *testing.T) {
	w := &failingWriter{}
	log := NewWithWriter("catalog", func() bool { return true }, w)

	log.Info("first")
	log.Error("second")

	if w.calls != 2 {
		t.Errorf("Expected 2 write attempts, got %d", w.calls)
	}
}
