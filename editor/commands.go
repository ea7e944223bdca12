package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bulga138/cog/buffer"
	"github.com/bulga138/cog/logger"
)

var (
	// ErrInvalidCommand is returned for an unrecognized command token.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrUsage is returned when a command argument is missing or malformed.
	ErrUsage = errors.New("usage")
)

const (
	cmdQuit    = "q"
	cmdNumber  = "n"
	cmdAppend  = "a"
	cmdDelete  = "d"
	appendStop = "."
)

// lineError reports a one-based line number the buffer does not hold.
type lineError struct {
	Line  int
	Count int
	err   error
}

func (e *lineError) Error() string {
	return fmt.Sprintf("line %d does not exist (buffer has %d lines)", e.Line, e.Count)
}

func (e *lineError) Unwrap() error { return e.err }

// parseCommand splits input into the command token and its argument.
func parseCommand(input string) (name, arg string) {
	name, arg, _ = strings.Cut(strings.TrimSpace(input), " ")
	return name, strings.TrimSpace(arg)
}

func (e *Editor) execute(input string) {
	name, arg := parseCommand(input)

	var err error
	switch name {
	case cmdQuit:
		e.quit = true
	case cmdNumber:
		e.render()
	case cmdAppend:
		err = e.appendLines()
	case cmdDelete:
		err = e.deleteLine(arg)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidCommand, name)
	}

	if err != nil {
		e.handleCommandError(err)
	}
}

// appendLines collects input until a line consisting of "." and appends
// the block as a single buffer entry. End of input ends the session; any
// lines collected before it are kept.
func (e *Editor) appendLines() error {
	var block []string
	for {
		line, err := e.readLine()
		if err != nil {
			e.quit = true
			if len(block) == 0 {
				return nil
			}
			break
		}
		if line == appendStop {
			break
		}
		block = append(block, line)
	}

	if err := e.buffer.InsertLine(e.buffer.LineCount(), strings.Join(block, "\n")); err != nil {
		return err
	}
	logger.Debug("appended block",
		"lines", len(block),
		"count", e.buffer.LineCount(),
		"capacity", e.buffer.Capacity())
	return nil
}

// deleteLine removes the line with the given one-based number.
func (e *Editor) deleteLine(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Errorf("%w: d <line number>", ErrUsage)
	}

	if err := e.buffer.DeleteLine(toIndex(n)); err != nil {
		return &lineError{Line: n, Count: e.buffer.LineCount(), err: err}
	}
	logger.Debug("deleted line",
		"line", n,
		"count", e.buffer.LineCount(),
		"capacity", e.buffer.Capacity())
	return nil
}

// toIndex and displayNumber are the only conversions between the
// one-based numbers users see and the buffer's zero-based indices.
func toIndex(lineNumber int) int { return lineNumber - 1 }

func displayNumber(index int) int { return index + 1 }

// handleCommandError prints a recoverable command error; the loop goes on.
func (e *Editor) handleCommandError(err error) {
	logger.Debug("command failed", "error", err)

	var le *lineError
	switch {
	case errors.Is(err, ErrUsage):
		e.printError("Invalid command. Usage: d <line number>")
	case errors.As(err, &le) && errors.Is(err, buffer.ErrOutOfRange):
		e.printError("Error: " + le.Error())
	case errors.Is(err, ErrInvalidCommand):
		e.printError("Invalid command")
	default:
		e.printError(fmt.Sprintf("Error: %v", err))
	}
}
