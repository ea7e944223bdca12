package editor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulga138/cog/buffer"
	"github.com/bulga138/cog/config"
	"github.com/bulga138/cog/terminal"
)

// mockTerminal is a test implementation of the Terminal interface
type mockTerminal struct {
	width       int
	interactive bool
	stdin       io.Reader
	stdout      bytes.Buffer
	stderr      bytes.Buffer
}

func (m *mockTerminal) Stdin() io.Reader    { return m.stdin }
func (m *mockTerminal) Stdout() io.Writer   { return &m.stdout }
func (m *mockTerminal) Stderr() io.Writer   { return &m.stderr }
func (m *mockTerminal) IsInteractive() bool { return m.interactive }
func (m *mockTerminal) GetWindowSize() (int, int, error) {
	if !m.interactive {
		return 0, 0, terminal.ErrNotTerminal
	}
	return m.width, 24, nil
}
func (m *mockTerminal) Close() error { return nil }

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{stdin: strings.NewReader(input)}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// runSession runs an editor over path with the given keyboard input.
func runSession(t *testing.T, path, input string) *mockTerminal {
	t.Helper()
	term := newMockTerminal(input)
	e, err := NewEditor(term, config.DefaultConfig(), path)
	require.NoError(t, err)
	require.NoError(t, e.Run())
	return term
}

func TestEditor_NewEditor(t *testing.T) {
	cfg := config.DefaultConfig()

	t.Run("existing file", func(t *testing.T) {
		e, err := NewEditor(newMockTerminal(""), cfg, writeFile(t, "hello\nworld"))
		require.NoError(t, err)
		assert.Equal(t, 2, e.buffer.LineCount())
		assert.True(t, e.isContentUnchanged())
	})

	t.Run("nonexistent file", func(t *testing.T) {
		e, err := NewEditor(newMockTerminal(""), cfg, filepath.Join(t.TempDir(), "new.txt"))
		require.NoError(t, err)
		assert.Equal(t, 0, e.buffer.LineCount())
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewEditor(newMockTerminal(""), cfg, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("no file name", func(t *testing.T) {
		_, err := NewEditor(newMockTerminal(""), cfg, "")
		assert.Error(t, err)
	})

	t.Run("invalid buffer policy", func(t *testing.T) {
		bad := config.DefaultConfig()
		bad.Buffer.ExpansionFactor = 0.9
		_, err := NewEditor(newMockTerminal(""), bad, writeFile(t, "x"))
		assert.ErrorIs(t, err, buffer.ErrInvalidPolicy)
	})
}

func TestEditor_Scenario(t *testing.T) {
	path := writeFile(t, "alpha\nbeta\ngamma")

	term := runSession(t, path, "d 2\na\ndelta\n.\nn\nq\n")

	out := term.stdout.String()
	assert.Contains(t, out, "1  alpha\n2  gamma\n3  delta\n")
	assert.True(t, strings.HasPrefix(out, "cog> "))
	assert.Empty(t, term.stderr.String())
	assert.Equal(t, "alpha\ngamma\ndelta", readFile(t, path))
}

func TestEditor_MissingFileIsCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	runSession(t, path, "a\nfirst\nsecond\n.\nq\n")

	assert.Equal(t, "first\nsecond", readFile(t, path))
}

func TestEditor_InvalidCommand(t *testing.T) {
	tests := []string{"x", "", "delete 1", "N", "qq"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			path := writeFile(t, "a\nb")
			term := runSession(t, path, input+"\nq\n")

			assert.Contains(t, term.stdout.String(), "Invalid command\n")
			assert.Equal(t, "a\nb", readFile(t, path))
		})
	}
}

func TestEditor_DeleteUsage(t *testing.T) {
	tests := []string{"d", "d x", "d 0", "d -1", "d 1.5"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			path := writeFile(t, "a\nb")
			term := runSession(t, path, input+"\nq\n")

			assert.Contains(t, term.stdout.String(), "Invalid command. Usage: d <line number>\n")
			assert.Equal(t, "a\nb", readFile(t, path))
		})
	}
}

func TestEditor_DeleteOutOfRange(t *testing.T) {
	path := writeFile(t, "alpha\nbeta\ngamma")

	term := runSession(t, path, "d 4\nq\n")

	assert.Contains(t, term.stdout.String(), "Error: line 4 does not exist (buffer has 3 lines)\n")
	assert.Equal(t, "alpha\nbeta\ngamma", readFile(t, path))
}

func TestEditor_DeleteKeepsOrder(t *testing.T) {
	path := writeFile(t, "1\n2\n3\n4\n5")

	runSession(t, path, "d 1\nd 4\nd 2\nq\n")

	assert.Equal(t, "2\n4", readFile(t, path))
}

func TestEditor_EndOfInputSaves(t *testing.T) {
	path := writeFile(t, "a")

	runSession(t, path, "a\nb\n.\n")

	assert.Equal(t, "a\nb", readFile(t, path))
}

func TestEditor_EndOfInputWhileAppending(t *testing.T) {
	t.Run("keeps collected lines", func(t *testing.T) {
		path := writeFile(t, "a")
		runSession(t, path, "a\nb\nc")
		assert.Equal(t, "a\nb\nc", readFile(t, path))
	})

	t.Run("nothing collected", func(t *testing.T) {
		path := writeFile(t, "a")
		runSession(t, path, "a\n")
		assert.Equal(t, "a", readFile(t, path))
	})
}

func TestEditor_EmptyAppendBlock(t *testing.T) {
	path := writeFile(t, "a")

	runSession(t, path, "a\n.\nq\n")

	assert.Equal(t, "a\n", readFile(t, path))
}

func TestEditor_AppendIsOneEntry(t *testing.T) {
	path := writeFile(t, "a")

	term := runSession(t, path, "a\nx\n  y\n.\nn\nd 2\nn\nq\n")

	out := term.stdout.String()
	assert.Contains(t, out, "1  a\n2  x\n     y\n")
	assert.Equal(t, "a", readFile(t, path), "deleting entry 2 removes the whole block")
}

func TestEditor_WindowsLineEndingsInInput(t *testing.T) {
	path := writeFile(t, "a\nb")

	runSession(t, path, "d 1\r\nq\r\n")

	assert.Equal(t, "b", readFile(t, path))
}

func TestEditor_GutterWidth(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "x"
	}
	path := writeFile(t, strings.Join(lines, "\n"))

	term := runSession(t, path, "n\nq\n")

	out := term.stdout.String()
	assert.Contains(t, out, " 1  x\n")
	assert.Contains(t, out, "12  x\n")
}

func TestEditor_TruncatesToTerminalWidth(t *testing.T) {
	path := writeFile(t, "abcdefghijklmnopqrstuvwxyz")

	cfg := config.DefaultConfig()
	cfg.UI.Color = false
	term := newMockTerminal("n\nq\n")
	term.interactive = true
	term.width = 12

	e, err := NewEditor(term, cfg, path)
	require.NoError(t, err)
	require.NoError(t, e.Run())

	out := term.stdout.String()
	assert.Contains(t, out, "1  abcdefg")
	assert.NotContains(t, out, "abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", readFile(t, path), "truncation is display only")

	cfg.UI.TruncateLines = false
	term = newMockTerminal("n\nq\n")
	term.interactive = true
	term.width = 12
	e, err = NewEditor(term, cfg, path)
	require.NoError(t, err)
	require.NoError(t, e.Run())
	assert.Contains(t, term.stdout.String(), "1  abcdefghijklmnopqrstuvwxyz\n")
}

func TestEditor_SaveFailureIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "file.txt")

	term := runSession(t, path, "a\nx\n.\nq\n")

	assert.Contains(t, term.stderr.String(), "Failed to save changes:")
	assert.NoFileExists(t, path)
}

func TestEditor_CustomPrompt(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.Prompt = "edit: "
	term := newMockTerminal("q\n")

	e, err := NewEditor(term, cfg, writeFile(t, ""))
	require.NoError(t, err)
	require.NoError(t, e.Run())

	assert.True(t, strings.HasPrefix(term.stdout.String(), "edit: "))
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		name  string
		arg   string
	}{
		{"q", "q", ""},
		{"  n  ", "n", ""},
		{"d 3", "d", "3"},
		{"d   3 ", "d", "3"},
		{"d 3 4", "d", "3 4"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, arg := parseCommand(tt.input)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.arg, arg)
		})
	}
}

// failingBuffer stands in for a buffer whose serialization fails.
type failingBuffer struct {
	buffer.Buffer
}

func (failingBuffer) WriteTo(io.Writer) (int64, error) {
	return 0, errors.New("disk full")
}

func TestEditor_UsesBufferInterface(t *testing.T) {
	path := writeFile(t, "alpha")
	term := newMockTerminal("a\nbeta\n.\nq\n")

	e, err := NewEditor(term, config.DefaultConfig(), path)
	require.NoError(t, err)
	e.buffer = failingBuffer{Buffer: e.buffer}
	require.NoError(t, e.Run())

	assert.Contains(t, term.stderr.String(), "Failed to save changes:")
	assert.Contains(t, term.stderr.String(), "disk full")
	assert.Equal(t, 2, e.buffer.LineCount())
	assert.Equal(t, 10, e.buffer.Capacity())
}

func TestNewStyles_RespectsNoColor(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	color.NoColor = true
	s := newStyles(true)
	assert.Equal(t, "1", s.gutter.Sprint("1"))
	assert.Equal(t, "cog> ", s.prompt.Sprint("cog> "))

	color.NoColor = false
	s = newStyles(true)
	assert.Contains(t, s.gutter.Sprint("1"), "\x1b[")

	s = newStyles(false)
	assert.Equal(t, "1", s.gutter.Sprint("1"))
}
