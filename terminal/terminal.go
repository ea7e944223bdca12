package terminal

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by GetWindowSize when output is not a terminal.
var ErrNotTerminal = errors.New("output is not a terminal")

type Terminal interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer

	// IsInteractive reports whether stdout is attached to a terminal.
	IsInteractive() bool

	GetWindowSize() (width, height int, err error)
	Close() error
}

type stdTerminal struct {
	interactive bool
}

// New returns a Terminal over the process's standard streams. On Windows
// consoles it also turns on ANSI escape processing so colored output renders.
func New() Terminal {
	t := &stdTerminal{
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
	}
	if t.interactive {
		_ = enableVirtualTerminal()
	}
	return t
}

func (t *stdTerminal) Stdin() io.Reader  { return os.Stdin }
func (t *stdTerminal) Stdout() io.Writer { return os.Stdout }
func (t *stdTerminal) Stderr() io.Writer { return os.Stderr }

func (t *stdTerminal) IsInteractive() bool { return t.interactive }

func (t *stdTerminal) GetWindowSize() (width, height int, err error) {
	if !t.interactive {
		return 0, 0, ErrNotTerminal
	}
	return getWindowSize()
}

func (t *stdTerminal) Close() error { return nil }

type streamTerminal struct {
	in          io.Reader
	out, errOut io.Writer
}

// NewStream returns a non-interactive Terminal over arbitrary streams.
func NewStream(in io.Reader, out, errOut io.Writer) Terminal {
	return &streamTerminal{in: in, out: out, errOut: errOut}
}

func (t *streamTerminal) Stdin() io.Reader  { return t.in }
func (t *streamTerminal) Stdout() io.Writer { return t.out }
func (t *streamTerminal) Stderr() io.Writer { return t.errOut }

func (t *streamTerminal) IsInteractive() bool { return false }

func (t *streamTerminal) GetWindowSize() (int, int, error) {
	return 0, 0, ErrNotTerminal
}

func (t *streamTerminal) Close() error {
	if c, ok := t.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
