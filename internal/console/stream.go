package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// StreamConn is a LineConn over a plain reader and writer, such as a
// terminal's stdin and stdout.
type StreamConn struct {
	scanner *bufio.Scanner

	mu sync.Mutex
	w  io.Writer
}

// NewStreamConn returns a StreamConn reading lines from r and writing to w.
func NewStreamConn(r io.Reader, w io.Writer) *StreamConn {
	return &StreamConn{scanner: bufio.NewScanner(r), w: w}
}

// ReadLine returns the next input line without its terminator. It returns
// io.EOF when the input is exhausted.
func (c *StreamConn) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return strings.TrimSpace(c.scanner.Text()), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// WriteLine writes text and a newline.
func (c *StreamConn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, text)
	return err
}

// WritePrompt writes prompt without a newline.
func (c *StreamConn) WritePrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, prompt)
	return err
}
