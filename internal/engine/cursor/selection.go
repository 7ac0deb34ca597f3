package cursor

import (
	"fmt"

	"github.com/dshills/texpand/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// Selection is the mark and the point. Typing happens at the point; the
// region runs between the two.
type Selection struct {
	Mark  ByteOffset
	Point ByteOffset
}

// At returns a collapsed selection at offset.
func At(offset ByteOffset) Selection {
	return Selection{Mark: offset, Point: offset}
}

// Between returns a selection from mark to point.
func Between(mark, point ByteOffset) Selection {
	return Selection{Mark: mark, Point: point}
}

// IsEmpty reports whether mark and point coincide.
func (s Selection) IsEmpty() bool { return s.Mark == s.Point }

// Region returns the span between mark and point, ordered.
func (s Selection) Region() buffer.Range {
	if s.Mark <= s.Point {
		return buffer.Range{Start: s.Mark, End: s.Point}
	}
	return buffer.Range{Start: s.Point, End: s.Mark}
}

// MoveTo moves the point, leaving the mark.
func (s Selection) MoveTo(offset ByteOffset) Selection {
	return Selection{Mark: s.Mark, Point: offset}
}

// Collapse brings the mark to the point.
func (s Selection) Collapse() Selection { return At(s.Point) }

// Clamp limits both ends to [0, length].
func (s Selection) Clamp(length ByteOffset) Selection {
	return Selection{Mark: clamp(s.Mark, length), Point: clamp(s.Point, length)}
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("point %d", s.Point)
	}
	return fmt.Sprintf("mark %d point %d", s.Mark, s.Point)
}

// Apply moves the selection through edit. Text inserted exactly at the
// point pushes the point past it; the mark stays in front.
func (s Selection) Apply(edit buffer.Edit) Selection {
	return Selection{
		Mark:  Shift(s.Mark, edit, false),
		Point: Shift(s.Point, edit, true),
	}
}

// Shift returns where offset ends up after edit. An offset inside a
// replaced span lands at the end of the new text. An insertion at offset
// moves it only when sticky is set.
func Shift(offset ByteOffset, edit buffer.Edit, sticky bool) ByteOffset {
	r := edit.Range
	switch {
	case r.IsEmpty() && r.Start == offset:
		if sticky {
			return offset + ByteOffset(len(edit.NewText))
		}
		return offset
	case r.End <= offset:
		return offset + edit.Delta()
	case r.Start >= offset:
		return offset
	}
	return r.Start + ByteOffset(len(edit.NewText))
}

func clamp(offset, length ByteOffset) ByteOffset {
	return max(0, min(offset, length))
}
