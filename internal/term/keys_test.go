package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/texpand/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name  string
		ev    *tcell.EventKey
		want  key.Key
		rune  rune
		mods  key.Modifier
		valid bool
	}{
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.KeyRune, 'a', key.ModNone, true},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModAlt), key.KeyRune, 'e', key.ModAlt, true},
		{"alt upper", tcell.NewEventKey(tcell.KeyRune, 'E', tcell.ModAlt), key.KeyRune, 'e', key.ModAlt | key.ModShift, true},
		{"alt digit", tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModAlt), key.KeyRune, '3', key.ModAlt, true},
		{"alt enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModAlt), key.KeyEnter, 0, key.ModAlt, true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.KeyTab, 0, key.ModNone, true},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.KeyBackspace, 0, key.ModNone, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.KeyEscape, 0, key.ModNone, true},
		{"ctrl g", tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl), key.KeyRune, 'g', key.ModCtrl, true},
		{"ctrl space", tcell.NewEventKey(tcell.KeyNUL, 0, tcell.ModCtrl), key.KeyRune, ' ', key.ModCtrl, true},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.KeyF5, 0, key.ModNone, true},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.KeyLeft, 0, key.ModShift, true},
		{"unsupported", tcell.NewEventKey(tcell.KeyPrint, 0, tcell.ModNone), key.KeyNone, 0, key.ModNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertKey(tt.ev)
			if ok != tt.valid {
				t.Fatalf("ok = %v, want %v", ok, tt.valid)
			}
			if !ok {
				return
			}
			if got.Key != tt.want || got.Rune != tt.rune || got.Modifiers != tt.mods {
				t.Errorf("ConvertKey() = %v/%q/%v, want %v/%q/%v",
					got.Key, got.Rune, got.Modifiers, tt.want, tt.rune, tt.mods)
			}
		})
	}
}

func TestConvertedKeysMatchParsedBindings(t *testing.T) {
	tests := []struct {
		spec string
		ev   *tcell.EventKey
	}{
		{"Alt+e", tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModAlt)},
		{"<A-S-e>", tcell.NewEventKey(tcell.KeyRune, 'E', tcell.ModAlt)},
		{"Alt+Enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModAlt)},
		{"Ctrl+Space", tcell.NewEventKey(tcell.KeyNUL, 0, tcell.ModCtrl)},
		{"Tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			want := key.MustParse(tt.spec)
			got, ok := ConvertKey(tt.ev)
			if !ok || !got.Equals(want) {
				t.Errorf("ConvertKey() = %v, want %v", got, want)
			}
		})
	}
}
