package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Console is the I/O port used by print and read.
type Console interface {
	WriteLine(text string) error
	// ReadLine returns one line without its terminator, or io.EOF when the
	// input is exhausted.
	ReadLine() (string, error)
}

// StdConsole reads lines from an io.Reader and writes lines to an io.Writer.
type StdConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamConsole wraps arbitrary streams.
func NewStreamConsole(in io.Reader, out io.Writer) *StdConsole {
	return &StdConsole{in: bufio.NewReader(in), out: out}
}

// NewStdConsole returns a console bound to standard input and output.
func NewStdConsole() *StdConsole {
	return NewStreamConsole(os.Stdin, os.Stdout)
}

func (c *StdConsole) WriteLine(text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

func (c *StdConsole) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// BufferedConsole serves scripted input and captures output.
type BufferedConsole struct {
	mu    sync.Mutex
	input []string
	lines []string
}

// NewBufferedConsole creates a console that will return input line by line.
func NewBufferedConsole(input ...string) *BufferedConsole {
	in := make([]string, len(input))
	copy(in, input)
	return &BufferedConsole{input: in}
}

func (c *BufferedConsole) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, text)
	return nil
}

func (c *BufferedConsole) ReadLine() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.input) == 0 {
		return "", io.EOF
	}
	line := c.input[0]
	c.input = c.input[1:]
	return line, nil
}

// Lines returns a copy of the captured output lines.
func (c *BufferedConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// String returns all captured output, one line per print.
func (c *BufferedConsole) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return ""
	}
	return strings.Join(c.lines, "\n") + "\n"
}

// Remaining reports how many scripted input lines were not consumed.
func (c *BufferedConsole) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.input)
}
