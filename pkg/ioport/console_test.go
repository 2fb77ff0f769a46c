package ioport

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutWritesToPort4Only(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Writer: &buf, Reader: strings.NewReader("")}
	c.Out(4, 0x41)
	if buf.String() != "A" {
		t.Errorf("Out(4, 0x41) wrote %q, want %q", buf.String(), "A")
	}
}

func TestOutIgnoresOtherPorts(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Writer: &buf, Reader: strings.NewReader("")}
	c.Out(3, 0x41)
	if buf.Len() != 0 {
		t.Errorf("Out(3, ...) wrote %q, want nothing", buf.String())
	}
}

func TestInParsesTwoHexDigitsFromPort4(t *testing.T) {
	c := &Console{Writer: &bytes.Buffer{}, Reader: strings.NewReader("4F")}
	if got, ok := c.In(4); got != 0x4F || !ok {
		t.Errorf("In(4) = (%02X, %v), want (4F, true)", got, ok)
	}
}

func TestInReturnsZeroForOtherPorts(t *testing.T) {
	c := &Console{Writer: &bytes.Buffer{}, Reader: strings.NewReader("4F")}
	if got, ok := c.In(2); got != 0 || !ok {
		t.Errorf("In(2) = (%02X, %v), want (0, true)", got, ok)
	}
}

func TestInReportsInvalidHexDigits(t *testing.T) {
	c := &Console{Writer: &bytes.Buffer{}, Reader: strings.NewReader("zz")}
	if _, ok := c.In(4); ok {
		t.Error("In(4) with non-hex input, want ok=false")
	}
}

func TestSupportedReportsOnlyPort4(t *testing.T) {
	for port := uint8(1); port <= 7; port++ {
		want := port == 4
		if got := Supported(port); got != want {
			t.Errorf("Supported(%d) = %v, want %v", port, got, want)
		}
	}
}
