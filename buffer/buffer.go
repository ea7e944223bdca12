package buffer

import (
	"errors"
	"io"
	"iter"
)

var (
	// ErrOutOfRange is returned when a line index falls outside the buffer.
	ErrOutOfRange = errors.New("line index out of range")

	// ErrInvalidPolicy is returned when capacity parameters cannot drive growth or shrinking.
	ErrInvalidPolicy = errors.New("invalid capacity policy")
)

type Buffer interface {
	// InsertLine inserts content at a zero-based index, shifting later lines down.
	// index may equal LineCount() to append.
	InsertLine(index int, content string) error

	// DeleteLine removes the line at a zero-based index.
	DeleteLine(index int) error

	// Line returns the content of a single line.
	Line(index int) (string, error)

	// LineCount returns the total number of lines in the buffer.
	LineCount() int

	// Lines enumerates (index, content) pairs in document order.
	Lines() iter.Seq2[int, string]

	// Load replaces the buffer contents with text split on newlines.
	Load(text string)

	// Serialize joins all lines with "\n", without a trailing newline.
	Serialize() string

	// Capacity returns the reserved line capacity.
	Capacity() int

	// WriteTo writes the serialized contents of the buffer to an io.Writer.
	WriteTo(w io.Writer) (int64, error)
}
