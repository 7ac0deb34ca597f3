package cursor

import (
	"testing"

	"github.com/dshills/texpand/internal/engine/buffer"
)

func TestSelectionRegion(t *testing.T) {
	s := Between(8, 3)
	r := s.Region()
	if r.Start != 3 || r.End != 8 {
		t.Errorf("Region() = %v, want [3:8)", r)
	}
	if s.IsEmpty() {
		t.Error("selection with extent should not be empty")
	}
	if c := s.Collapse(); !c.IsEmpty() || c.Point != 3 {
		t.Errorf("Collapse() = %v", c)
	}
	if m := s.MoveTo(5); m.Mark != 8 || m.Point != 5 {
		t.Errorf("MoveTo(5) = %v", m)
	}
}

func TestSelectionClamp(t *testing.T) {
	s := Between(-2, 40).Clamp(10)
	if s.Mark != 0 || s.Point != 10 {
		t.Errorf("Clamp = %v", s)
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		offset ByteOffset
		edit   buffer.Edit
		sticky bool
		want   ByteOffset
	}{
		{"insert before", 5, buffer.Insertion(2, "abc"), false, 8},
		{"insert after", 5, buffer.Insertion(7, "abc"), false, 5},
		{"insert at offset", 5, buffer.Insertion(5, "abc"), false, 5},
		{"insert at sticky offset", 5, buffer.Insertion(5, "abc"), true, 8},
		{"delete before", 5, buffer.Deletion(0, 2), false, 3},
		{"delete spanning", 5, buffer.Deletion(3, 8), true, 3},
		{"replace spanning", 5, buffer.Edit{Range: buffer.Range{Start: 4, End: 6}, NewText: "xyz"}, false, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shift(tt.offset, tt.edit, tt.sticky); got != tt.want {
				t.Errorf("Shift = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyTyping(t *testing.T) {
	sel := At(5).Apply(buffer.Insertion(5, "ab"))
	if sel.Mark != 5 || sel.Point != 7 {
		t.Errorf("Apply = %v", sel)
	}
}
