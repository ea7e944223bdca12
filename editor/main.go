package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/bulga138/cog/buffer"
	"github.com/bulga138/cog/config"
	"github.com/bulga138/cog/logger"
	"github.com/bulga138/cog/terminal"
)

type Editor struct {
	term        terminal.Terminal
	buffer      buffer.Buffer
	config      config.Config
	filename    string
	termWidth   int
	inputReader *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	styles      styles
	initialHash string
	quit        bool
}

func NewEditor(term terminal.Terminal, cfg config.Config, file string) (*Editor, error) {
	if file == "" {
		return nil, errors.New("no file name given")
	}

	buf, err := buffer.New(cfg.Buffer.InitialCapacity, cfg.Buffer.ExpansionFactor, cfg.Buffer.ShrinkFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer: %w", err)
	}

	e := &Editor{
		term:        term,
		buffer:      buf,
		config:      cfg,
		filename:    file,
		inputReader: bufio.NewReader(term.Stdin()),
		out:         term.Stdout(),
		errOut:      term.Stderr(),
		styles:      newStyles(cfg.UI.Color && term.IsInteractive()),
	}

	content, err := e.loadFileContent(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load file %s: %w", file, err)
		}
		logger.Info("file does not exist, starting with an empty buffer", "file", file)
	}
	e.buffer.Load(content)
	e.initialHash = e.calculateBufferHash()

	logger.Debug("buffer loaded",
		"file", file,
		"lines", e.buffer.LineCount(),
		"capacity", e.buffer.Capacity())
	return e, nil
}

// Run reads and executes commands until q or end of input, then writes
// the buffer back to the file. A failed save is reported but not returned.
func (e *Editor) Run() error {
	for !e.quit {
		e.printPrompt()
		line, err := e.readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Warn("reading command failed", "error", err)
			}
			fmt.Fprintln(e.out)
			break
		}
		e.execute(line)
	}

	if err := e.save(); err != nil {
		logger.Error("save failed", "file", e.filename, "error", err)
	}
	return nil
}

// readLine returns the next input line without its terminator. A final
// unterminated line is returned before io.EOF.
func (e *Editor) readLine() (string, error) {
	line, err := e.inputReader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (e *Editor) refreshSize() {
	w, _, err := e.term.GetWindowSize()
	if err != nil {
		e.termWidth = 0
		return
	}
	e.termWidth = w
}

func (e *Editor) loadFileContent(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", filename)
	}

	var result strings.Builder
	result.Grow(int(info.Size()))
	if _, err := io.Copy(&result, file); err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return result.String(), nil
}
