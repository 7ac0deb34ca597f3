package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/texpand/internal/engine/buffer"
	"github.com/dshills/texpand/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents point and mark.
	Selection = cursor.Selection
)

// CursorMarker marks where the point lands after a template is inserted.
const CursorMarker = "?"

// Document is the buffer being edited together with point and mark.
// All positions passed to Document methods are clamped to the buffer.
type Document struct {
	buf        *buffer.Buffer
	sel        cursor.Selection
	markActive bool
}

// NewDocument creates a document holding text with the point at the end.
func NewDocument(text string) *Document {
	buf := buffer.NewBufferFromString(text)
	return &Document{buf: buf, sel: cursor.At(buf.Len())}
}

// NewDocumentAt creates a document with the point at the given offset.
// A "|" in text marks the point when offset is negative; the marker is
// removed. Intended for tests and scripted sessions.
func NewDocumentAt(text string, offset ByteOffset) *Document {
	if offset < 0 {
		if i := strings.IndexByte(text, '|'); i >= 0 {
			text = text[:i] + text[i+1:]
			offset = ByteOffset(i)
		}
	}
	d := NewDocument(text)
	if offset >= 0 {
		d.SetPoint(offset)
	}
	return d
}

// Text returns the full content.
func (d *Document) Text() string { return d.buf.Text() }

// Len returns the content length in bytes.
func (d *Document) Len() ByteOffset { return d.buf.Len() }

// Buffer exposes the underlying buffer for read access.
func (d *Document) Buffer() *buffer.Buffer { return d.buf }

// Point returns the cursor position.
func (d *Document) Point() ByteOffset { return d.sel.Point }

// SetPoint moves the cursor, keeping the mark.
func (d *Document) SetPoint(offset ByteOffset) {
	d.sel = d.sel.MoveTo(d.clamp(offset))
	if !d.markActive {
		d.sel = d.sel.Collapse()
	}
}

// SetMark sets the mark at the point and activates the region.
func (d *Document) SetMark() {
	d.sel = d.sel.Collapse()
	d.markActive = true
}

// Select sets an active region from mark to point.
func (d *Document) Select(mark, point ByteOffset) {
	d.sel = cursor.Between(d.clamp(mark), d.clamp(point))
	d.markActive = true
}

// Deactivate drops the active region.
func (d *Document) Deactivate() {
	d.markActive = false
	d.sel = d.sel.Collapse()
}

// Region returns the active region, if any.
func (d *Document) Region() (Range, bool) {
	if !d.markActive || d.sel.IsEmpty() {
		return Range{}, false
	}
	return d.sel.Region(), true
}

// Selection returns point and mark.
func (d *Document) Selection() Selection { return d.sel }

// TextRange returns text in [start, end).
func (d *Document) TextRange(start, end ByteOffset) string {
	return d.buf.TextRange(start, end)
}

// TextBefore returns up to n bytes before the point.
func (d *Document) TextBefore(n int) string {
	p := d.Point()
	return d.buf.TextRange(p-ByteOffset(n), p)
}

// TextAfter returns up to n bytes after the point.
func (d *Document) TextAfter(n int) string {
	p := d.Point()
	return d.buf.TextRange(p, p+ByteOffset(n))
}

// CharBefore returns the rune before the point.
func (d *Document) CharBefore() (rune, bool) {
	return d.CharBeforeAt(d.Point())
}

// CharBeforeAt returns the rune ending at offset.
func (d *Document) CharBeforeAt(offset ByteOffset) (rune, bool) {
	r, size := d.buf.RuneBefore(offset)
	return r, size > 0
}

// CharAfter returns the rune at the point.
func (d *Document) CharAfter() (rune, bool) {
	return d.CharAt(d.Point())
}

// CharAt returns the rune starting at offset.
func (d *Document) CharAt(offset ByteOffset) (rune, bool) {
	r, size := d.buf.RuneAt(offset)
	return r, size > 0
}

// LineStart returns the start of the line containing offset.
func (d *Document) LineStart(offset ByteOffset) ByteOffset { return d.buf.LineStart(offset) }

// LineEnd returns the end of the line containing offset.
func (d *Document) LineEnd(offset ByteOffset) ByteOffset { return d.buf.LineEnd(offset) }

// Insert inserts text at the point and moves the point past it.
// It returns the range the text occupies.
func (d *Document) Insert(text string) Range {
	return d.InsertAt(d.Point(), text)
}

// InsertAt inserts text at offset and returns the range it occupies.
func (d *Document) InsertAt(offset ByteOffset, text string) Range {
	return d.Replace(offset, offset, text)
}

// Delete removes [start, end).
func (d *Document) Delete(start, end ByteOffset) {
	d.Replace(start, end, "")
}

// Replace replaces [start, end) with text and returns the new text's range.
func (d *Document) Replace(start, end ByteOffset, text string) Range {
	start, end = d.clamp(start), d.clamp(end)
	if end < start {
		start, end = end, start
	}
	edit := buffer.Edit{Range: Range{Start: start, End: end}, NewText: text}
	r, err := d.buf.ApplyEdit(edit)
	if err != nil {
		// unreachable: the range was clamped above
		return Range{Start: start, End: start}
	}
	d.sel = d.sel.Apply(edit).Clamp(d.buf.Len())
	return r
}

// EscapesBefore counts the consecutive backslashes ending at offset.
func (d *Document) EscapesBefore(offset ByteOffset) int {
	text := d.buf.TextRange(0, offset)
	n := 0
	for i := len(text) - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n
}

// ResolveCursor deletes the first CursorMarker inside r and leaves the point
// where it was. Without a marker the point goes to the end of r.
// It returns the range r occupies afterwards.
func (d *Document) ResolveCursor(r Range) Range {
	span := d.TextRange(r.Start, r.End)
	i := strings.Index(span, CursorMarker)
	if i < 0 {
		d.SetPoint(r.End)
		return r
	}
	at := r.Start + ByteOffset(i)
	d.Delete(at, at+ByteOffset(len(CursorMarker)))
	d.SetPoint(at)
	return Range{Start: r.Start, End: r.End - ByteOffset(len(CursorMarker))}
}

// Snapshot captures text, point and mark.
type Snapshot struct {
	text       string
	sel        cursor.Selection
	markActive bool
}

// Snapshot returns the current state for a later Restore.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{text: d.buf.Text(), sel: d.sel, markActive: d.markActive}
}

// Restore returns the document to a snapshot.
func (d *Document) Restore(s Snapshot) {
	d.buf.SetText(s.text)
	d.sel = s.sel.Clamp(d.buf.Len())
	d.markActive = s.markActive
}

// Changed reports whether the document differs from the snapshot.
func (d *Document) Changed(s Snapshot) bool {
	return d.buf.Text() != s.text
}

func (d *Document) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > d.buf.Len() {
		return d.buf.Len()
	}
	return offset
}

// RuneLen is the byte length of r in UTF-8.
func RuneLen(r rune) ByteOffset {
	return ByteOffset(utf8.RuneLen(r))
}
