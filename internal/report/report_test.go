package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/wmcore/internal/logging"
)

func TestListMoveTo(t *testing.T) {
	src := NewList()
	dst := NewList()
	dst.Add(Info, "existing")

	src.Add(Warning, "first")
	src.Addf(Error, "second %d", 2)
	src.MoveTo(dst)

	if !src.Empty() {
		t.Errorf("source has %d reports after move, want 0", src.Len())
	}
	items := dst.Items()
	if len(items) != 3 {
		t.Fatalf("destination has %d reports, want 3", len(items))
	}
	if items[2].Message != "second 2" || items[2].Severity != Error {
		t.Errorf("last report = %v, want Error: second 2", items[2])
	}
	if !dst.HasError() {
		t.Error("HasError() = false, want true")
	}
}

func TestNilListLen(t *testing.T) {
	var l *List
	if l.Len() != 0 || !l.Empty() {
		t.Error("nil list should be empty")
	}
}

func TestPrintFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	l := NewList()
	l.Add(Debug, "noise")
	l.Add(Operator, "obj.move()")
	l.Add(Error, "broken")
	l.Print(log, Operator)

	out := buf.String()
	if strings.Contains(out, "noise") {
		t.Errorf("debug report printed above threshold: %q", out)
	}
	if !strings.Contains(out, "Operator: obj.move()") || !strings.Contains(out, "[ERROR] Error: broken") {
		t.Errorf("missing reports in output: %q", out)
	}
}
