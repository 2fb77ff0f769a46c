package tracer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLineSinkRendersMnemonicAndFields(t *testing.T) {
	var buf bytes.Buffer
	sink := &LineSink{Writer: &buf, Mnemonic: func(uint8) string { return "LDI" }}
	sink.Trace(Step{PCBefore: 0x0010, Opcode: 0xF8, D: 0x41, DF: 1, P: 0, X: 0, Q: 1})
	out := buf.String()
	if !strings.Contains(out, "0010:") || !strings.Contains(out, "LDI") || !strings.Contains(out, "D=41") {
		t.Errorf("unexpected line: %q", out)
	}
}

func TestLineSinkAnnotatesEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := &LineSink{Writer: &buf}
	sink.Trace(Step{Event: UnsupportedIO})
	if !strings.Contains(buf.String(), "unsupported-io") {
		t.Errorf("expected unsupported-io annotation, got %q", buf.String())
	}
}

func TestDiscardSinkDoesNothing(t *testing.T) {
	Discard.Trace(Step{})
}

func TestJSONSinkWritesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink := &JSONSink{Writer: &buf}
	sink.Trace(Step{PCBefore: 1, Opcode: 2, D: 3})
	sink.Trace(Step{PCBefore: 4, Opcode: 5, D: 6})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var decoded jsonStep
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.PCBefore != 1 || decoded.Opcode != 2 || decoded.D != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestJSONSinkOmitsEmptyEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := &JSONSink{Writer: &buf}
	sink.Trace(Step{})
	if strings.Contains(buf.String(), `"event"`) {
		t.Errorf("expected no event field for NoEvent, got %q", buf.String())
	}
}
