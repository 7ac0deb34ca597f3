package buffer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer holds the document text.
type Buffer struct {
	text string
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
// CRLF and CR line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{text: normalizeLineEndings(s)}
}

func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.text[offset:])
}

// RuneBefore returns the rune ending at the given byte offset.
// Returns utf8.RuneError and size 0 at the start of the buffer.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	if offset <= 0 || offset > b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.text[:offset])
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	return uint32(strings.Count(b.text, "\n")) + 1
}

// LineStart returns the offset of the start of the line containing offset.
func (b *Buffer) LineStart(offset ByteOffset) ByteOffset {
	offset = b.clamp(offset)
	return ByteOffset(strings.LastIndexByte(b.text[:offset], '\n') + 1)
}

// LineEnd returns the offset of the end of the line containing offset,
// before the newline.
func (b *Buffer) LineEnd(offset ByteOffset) ByteOffset {
	offset = b.clamp(offset)
	if i := strings.IndexByte(b.text[offset:], '\n'); i >= 0 {
		return offset + ByteOffset(i)
	}
	return b.Len()
}

// LineText returns the text of a line without its newline. Lines past the
// last one are empty.
func (b *Buffer) LineText(line uint32) string {
	if line >= b.LineCount() {
		return ""
	}
	start := b.PointToOffset(Point{Line: line})
	return b.text[start:b.LineEnd(start)]
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	offset = b.clamp(offset)
	before := b.text[:offset]
	line := strings.Count(before, "\n")
	col := len(before) - (strings.LastIndexByte(before, '\n') + 1)
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to a byte offset.
// Columns past the end of the line are clamped to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	var offset ByteOffset
	for line := uint32(0); line < p.Line; line++ {
		i := strings.IndexByte(b.text[offset:], '\n')
		if i < 0 {
			return b.Len()
		}
		offset += ByteOffset(i) + 1
	}
	end := b.LineEnd(offset)
	if offset+ByteOffset(p.Column) > end {
		return end
	}
	return offset + ByteOffset(p.Column)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > b.Len() {
		return 0, ErrOffsetOutOfRange
	}
	text = normalizeLineEndings(text)
	b.text = b.text[:offset] + text + b.text[offset:]
	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	if start < 0 || start > end || end > b.Len() {
		return ErrRangeInvalid
	}
	b.text = b.text[:start] + b.text[end:]
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	r, err := b.ApplyEdit(Edit{Range: Range{Start: start, End: end}, NewText: text})
	if err != nil {
		return 0, err
	}
	return r.End, nil
}

// ApplyEdit applies edit and returns the span the new text occupies.
func (b *Buffer) ApplyEdit(edit Edit) (Range, error) {
	r := edit.Range
	if r.Start < 0 || r.Start > r.End || r.End > b.Len() {
		return Range{}, ErrRangeInvalid
	}
	text := normalizeLineEndings(edit.NewText)
	b.text = b.text[:r.Start] + text + b.text[r.End:]
	return Range{Start: r.Start, End: r.Start + ByteOffset(len(text))}, nil
}

// SetText replaces the whole content.
func (b *Buffer) SetText(s string) {
	b.text = normalizeLineEndings(s)
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > b.Len() {
		return b.Len()
	}
	return offset
}
