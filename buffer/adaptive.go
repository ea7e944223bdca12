package buffer

import (
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strings"
)

// maxReserveAhead bounds how many unused slots are preallocated beyond the
// current line count. The logical capacity can be far larger.
const maxReserveAhead = 1 << 16

// AdaptiveBuffer is an ordered list of lines with a capacity hint that
// grows on insert and shrinks after deletes once occupancy drops below
// the shrink factor.
type AdaptiveBuffer struct {
	lines           []string
	capacity        int
	expansionFactor float64
	shrinkFactor    float64
}

// Statically check that *AdaptiveBuffer implements the Buffer interface.
var _ Buffer = (*AdaptiveBuffer)(nil)

// New creates an empty AdaptiveBuffer.
func New(initialCapacity int, expansionFactor, shrinkFactor float64) (*AdaptiveBuffer, error) {
	if initialCapacity < 0 {
		return nil, fmt.Errorf("%w: initial capacity %d is negative", ErrInvalidPolicy, initialCapacity)
	}
	if !(expansionFactor > 1.0) || math.IsInf(expansionFactor, 0) {
		return nil, fmt.Errorf("%w: expansion factor %g must be greater than 1", ErrInvalidPolicy, expansionFactor)
	}
	if !(shrinkFactor > 0 && shrinkFactor < 1) {
		return nil, fmt.Errorf("%w: shrink factor %g must be between 0 and 1", ErrInvalidPolicy, shrinkFactor)
	}
	return &AdaptiveBuffer{
		lines:           make([]string, 0, min(initialCapacity, maxReserveAhead)),
		capacity:        initialCapacity,
		expansionFactor: expansionFactor,
		shrinkFactor:    shrinkFactor,
	}, nil
}

// --- Buffer Interface Implementation ---

// InsertLine inserts content at index, expanding capacity first when full.
func (b *AdaptiveBuffer) InsertLine(index int, content string) error {
	if index < 0 || index > len(b.lines) {
		return fmt.Errorf("%w: insert at %d (length %d)", ErrOutOfRange, index, len(b.lines))
	}
	if len(b.lines)+1 > b.capacity {
		b.expand()
	}
	b.lines = slices.Insert(b.lines, index, content)
	return nil
}

// DeleteLine removes the line at index and shrinks capacity if the buffer
// has become sparse.
func (b *AdaptiveBuffer) DeleteLine(index int) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("%w: delete at %d (length %d)", ErrOutOfRange, index, len(b.lines))
	}
	b.lines = slices.Delete(b.lines, index, index+1)
	if float64(len(b.lines)) < float64(b.capacity)*b.shrinkFactor {
		b.shrink()
	}
	return nil
}

// Line returns the line at index.
func (b *AdaptiveBuffer) Line(index int) (string, error) {
	if index < 0 || index >= len(b.lines) {
		return "", fmt.Errorf("%w: line %d (length %d)", ErrOutOfRange, index, len(b.lines))
	}
	return b.lines[index], nil
}

// LineCount returns the number of lines.
func (b *AdaptiveBuffer) LineCount() int {
	return len(b.lines)
}

// Lines yields zero-based (index, content) pairs. The sequence can be
// ranged over any number of times.
func (b *AdaptiveBuffer) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range b.lines {
			if !yield(i, line) {
				return
			}
		}
	}
}

// Load replaces the contents with text split into lines. A final newline
// does not produce an empty trailing line, and "\r\n" endings are accepted.
// The capacity policy is kept; capacity is expanded until the text fits.
func (b *AdaptiveBuffer) Load(text string) {
	lines := splitLines(text)
	for b.capacity < len(lines) {
		b.expand()
	}
	b.lines = lines[:len(lines):len(lines)]
	b.reserve()
}

// Serialize joins the lines with "\n".
func (b *AdaptiveBuffer) Serialize() string {
	return strings.Join(b.lines, "\n")
}

// WriteTo writes the serialized buffer to w.
func (b *AdaptiveBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.Serialize())
	return int64(n), err
}

// --- Capacity policy ---

// Capacity returns the current capacity hint.
func (b *AdaptiveBuffer) Capacity() int {
	return b.capacity
}

// expand multiplies capacity by the expansion factor. Small capacities can
// round down to no growth (1 * 1.2 = 1), so at least one slot is added.
func (b *AdaptiveBuffer) expand() {
	newCapacity := scale(b.capacity, b.expansionFactor)
	if newCapacity <= b.capacity && b.capacity < math.MaxInt {
		newCapacity = b.capacity + 1
	}
	b.capacity = newCapacity
	b.reserve()
}

// reserve grows the backing slice toward capacity, at most maxReserveAhead
// slots past the current line count.
func (b *AdaptiveBuffer) reserve() {
	want := min(b.capacity-len(b.lines), maxReserveAhead)
	if want > 0 {
		b.lines = slices.Grow(b.lines, want)
	}
}

// scale returns floor(n * factor), saturating at math.MaxInt.
func scale(n int, factor float64) int {
	f := math.Floor(float64(n) * factor)
	if f >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(f)
}

// shrink multiplies capacity by the shrink factor and releases unused
// backing storage. Capacity never drops below the line count.
func (b *AdaptiveBuffer) shrink() {
	newCapacity := scale(b.capacity, b.shrinkFactor)
	b.capacity = max(newCapacity, len(b.lines))
	b.lines = slices.Clip(slices.Clone(b.lines))
}

func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
