package telnet

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// Telnet command and option bytes (RFC 854, RFC 858).
const (
	IAC  byte = 255
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250
	SE   byte = 240

	OptSuppressGoAhead byte = 3
)

// maxLineLength bounds a single console line. Longer input is truncated.
const maxLineLength = 512

// Conn is a line-oriented Telnet connection used by the remote console.
// Reads and writes may happen from different goroutines; writes are serialised.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader

	// afterCR is set when the previous line ended in CR, so a following LF
	// or NUL belongs to that line.
	afterCR bool

	wmu          sync.Mutex
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps raw. A zero timeout disables the corresponding deadline.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReader(raw),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate announces that the server will not send go-ahead.
func (c *Conn) Negotiate() error {
	return c.write([]byte{IAC, WILL, OptSuppressGoAhead})
}

// ReadLine returns the next line of input with Telnet commands and control
// characters removed and surrounding whitespace trimmed. CR, LF and CRLF all
// end a line. At end of input a partial line is returned with io.EOF.
func (c *Conn) ReadLine() (string, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	var sb strings.Builder
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return strings.TrimSpace(sb.String()), io.EOF
			}
			return "", err
		}
		if c.afterCR {
			c.afterCR = false
			if b == '\n' || b == 0 {
				continue
			}
		}
		switch {
		case b == IAC:
			if err := c.skipCommand(); err != nil {
				return "", err
			}
		case b == '\r':
			c.afterCR = true
			return strings.TrimSpace(sb.String()), nil
		case b == '\n':
			return strings.TrimSpace(sb.String()), nil
		case b < 0x20 || b == 0x7f:
			// drop control characters
		default:
			if sb.Len() < maxLineLength {
				sb.WriteByte(b)
			}
		}
	}
}

// skipCommand consumes the remainder of a Telnet command after IAC.
func (c *Conn) skipCommand() error {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return err
	}
	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err = c.reader.ReadByte()
		return err
	case SB:
		var prev byte
		for {
			b, err := c.reader.ReadByte()
			if err != nil {
				return err
			}
			if prev == IAC && b == SE {
				return nil
			}
			prev = b
		}
	}
	return nil
}

// WriteLine writes text followed by CRLF.
func (c *Conn) WriteLine(text string) error {
	return c.write([]byte(text + "\r\n"))
}

// WritePrompt writes prompt without a line terminator.
func (c *Conn) WritePrompt(prompt string) error {
	return c.write([]byte(prompt))
}

func (c *Conn) write(p []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(p)
	return err
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the client's address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}
