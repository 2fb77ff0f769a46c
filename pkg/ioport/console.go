package ioport

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console is the default Port: OUT 4 writes one byte to an output stream,
// INP C reads two hex digits from an input stream and parses them into one
// byte. Every other port is a no-op / returns 0, consistent with the
// "unsupported ports are forgiving" policy.
//
// When reading from a real terminal, In uses golang.org/x/term to grab
// exactly two raw keystrokes without waiting on a newline, matching the
// CPU's one-byte-per-blocking-call model more closely than line buffering
// would. When stdin isn't a terminal (piped input, tests, batch runs) it
// falls back to a buffered reader.
type Console struct {
	Writer io.Writer
	Reader io.Reader

	buffered *bufio.Reader
}

// NewConsole builds a Console bound to the process's stdout and stdin.
func NewConsole() *Console {
	return &Console{Writer: os.Stdout, Reader: os.Stdin}
}

// Out implements Port.
func (c *Console) Out(port uint8, value uint8) {
	if port != 4 {
		return
	}
	c.Writer.Write([]byte{value})
}

// In implements Port. ok is false when the two bytes read didn't parse as
// hex digits, leaving the caller to decide how to treat invalid input.
func (c *Console) In(port uint8) (uint8, bool) {
	if port != 4 {
		return 0, true
	}
	digits := c.readHexDigits()
	var b uint8
	_, err := fmt.Sscanf(digits, "%02x", &b)
	return b, err == nil
}

func (c *Console) readHexDigits() string {
	if f, ok := c.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return c.readRawKeystrokes(f, 2)
	}
	return c.readBuffered(2)
}

func (c *Console) readBuffered(count int) string {
	if c.buffered == nil {
		c.buffered = bufio.NewReader(c.Reader)
	}
	buf := make([]byte, count)
	n, _ := io.ReadFull(c.buffered, buf)
	return string(buf[:n])
}

func (c *Console) readRawKeystrokes(f *os.File, count int) string {
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return c.readBuffered(count)
	}
	defer term.Restore(fd, old)

	buf := make([]byte, count)
	n, _ := io.ReadFull(f, buf)
	return string(buf[:n])
}
