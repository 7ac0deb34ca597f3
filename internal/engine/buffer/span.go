package buffer

import "fmt"

// ByteOffset is a byte position in the buffer.
type ByteOffset = int64

// Range is the half-open span [Start, End). Inserted templates and wrap
// extents are both reported as a Range.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the span in bytes.
func (r Range) Len() ByteOffset { return r.End - r.Start }

// IsEmpty reports whether the span covers nothing.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Edit replaces Range with NewText. An empty range is an insertion and an
// empty NewText a deletion.
type Edit struct {
	Range   Range
	NewText string
}

// Insertion returns the edit inserting text at offset.
func Insertion(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// Deletion returns the edit removing [start, end).
func Deletion(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// Delta is the change in buffer length the edit causes.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// Point is a zero-based line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}
