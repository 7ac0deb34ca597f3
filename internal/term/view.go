package term

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/texpand/internal/engine"
	"github.com/dshills/texpand/internal/engine/buffer"
)

// TabWidth is the column stop for tab characters.
const TabWidth = 8

// Styles used by a View.
type Styles struct {
	Text   tcell.Style
	Region tcell.Style
	Status tcell.Style
	Help   tcell.Style
	Rule   tcell.Style
}

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Text:   tcell.StyleDefault,
		Region: tcell.StyleDefault.Reverse(true),
		Status: tcell.StyleDefault.Reverse(true),
		Help:   tcell.StyleDefault,
		Rule:   tcell.StyleDefault.Bold(true),
	}
}

// View draws a document, a status line and the help overlay. It is not
// safe for concurrent use.
type View struct {
	screen tcell.Screen
	doc    *engine.Document
	styles Styles

	modeline func() string
	status   string

	prompting  bool
	prompt     string
	promptText string

	help       []string
	helpScroll int
	helpShown  bool

	top int
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithStyles sets the styles.
func WithStyles(s Styles) ViewOption {
	return func(v *View) { v.styles = s }
}

// WithModeline sets the text shown in the status line when there is no
// message.
func WithModeline(fn func() string) ViewOption {
	return func(v *View) { v.modeline = fn }
}

// NewView creates a view of doc on screen.
func NewView(screen tcell.Screen, doc *engine.Document, opts ...ViewOption) *View {
	v := &View{screen: screen, doc: doc, styles: DefaultStyles()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetStatus implements prefix.Status.
func (v *View) SetStatus(msg string) {
	v.status = msg
	v.Draw()
}

// Status returns the current message.
func (v *View) Status() string { return v.status }

// ShowLine implements input.LineEditor.
func (v *View) ShowLine(prompt, text string) {
	v.prompting = true
	v.prompt = prompt
	v.promptText = text
	v.Draw()
}

// EndLine removes the line being read.
func (v *View) EndLine() {
	v.prompting = false
	v.prompt, v.promptText = "", ""
}

// Show implements engine.HelpDisplay.
func (v *View) Show(lines []string, scroll int) {
	v.help = lines
	v.helpScroll = scroll
	v.helpShown = true
	v.Draw()
}

// Hide implements engine.HelpDisplay.
func (v *View) Hide() {
	if !v.helpShown {
		return
	}
	v.helpShown = false
	v.help = nil
	v.Draw()
}

// Height implements engine.HelpDisplay. The help may use half the screen.
func (v *View) Height() int {
	_, h := v.screen.Size()
	if n := h/2 - 1; n > 1 {
		return n
	}
	return 1
}

// Draw renders the whole screen.
func (v *View) Draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	rows := h - 1
	if v.helpShown {
		rows -= v.drawHelp(w, rows)
	}
	cx, cy := v.drawText(w, rows)

	if v.prompting {
		line := v.prompt + v.promptText
		v.fill(0, h-1, w, v.styles.Text)
		v.put(0, h-1, w, line, v.styles.Text)
		s.ShowCursor(min(runewidth.StringWidth(line), w-1), h-1)
	} else {
		msg := v.status
		if msg == "" && v.modeline != nil {
			msg = v.modeline()
		}
		v.fill(0, h-1, w, v.styles.Status)
		v.put(0, h-1, w, msg, v.styles.Status)
		if cy >= 0 {
			s.ShowCursor(cx, cy)
		} else {
			s.HideCursor()
		}
	}
	s.Show()
}

// drawHelp draws the help block at the bottom of the first rows lines
// and returns the number of lines it took.
func (v *View) drawHelp(w, rows int) int {
	lines := v.help
	if v.helpScroll < len(lines) {
		lines = lines[v.helpScroll:]
	} else {
		lines = nil
	}
	n := min(len(lines), v.Height())
	if n+1 >= rows {
		n = rows - 2
	}
	if n < 0 {
		return 0
	}
	top := rows - n - 1

	rule := "─── Help "
	if v.helpScroll > 0 || len(lines) > n {
		rule += "(more) "
	}
	rule += strings.Repeat("─", max(0, w-runewidth.StringWidth(rule)))
	v.put(0, top, w, rule, v.styles.Rule)
	for i := 0; i < n; i++ {
		v.put(0, top+1+i, w, lines[i], v.styles.Help)
	}
	return n + 1
}

// drawText draws the document into the first rows lines, scrolling so
// the point is visible, and returns the cursor cell. cy is -1 when the
// text area is empty.
func (v *View) drawText(w, rows int) (cx, cy int) {
	if rows <= 0 {
		return 0, -1
	}
	buf := v.doc.Buffer()
	point := v.doc.Point()
	region, hasRegion := v.doc.Region()

	pointLine := int(buf.OffsetToPoint(point).Line)
	if pointLine < v.top {
		v.top = pointLine
	}
	if pointLine >= v.top+rows {
		v.top = pointLine - rows + 1
	}

	cx, cy = 0, -1
	lines := int(buf.LineCount())
	for row := 0; row < rows && v.top+row < lines; row++ {
		n := uint32(v.top + row)
		offset := buf.PointToOffset(buffer.Point{Line: n})
		line := buf.LineText(n)
		col := 0
		for i, r := range line {
			at := offset + int64(i)
			if at == point {
				cx, cy = col, row
			}
			style := v.styles.Text
			if hasRegion && at >= region.Start && at < region.End {
				style = v.styles.Region
			}
			col = v.cell(col, row, w, r, style)
		}
		if offset+int64(len(line)) == point {
			cx, cy = col, row
		}
	}
	if cx >= w {
		cx = w - 1
	}
	return cx, cy
}

// cell draws r at col and returns the next column.
func (v *View) cell(col, row, w int, r rune, style tcell.Style) int {
	if r == '\t' {
		next := (col/TabWidth + 1) * TabWidth
		for ; col < next; col++ {
			if col < w {
				v.screen.SetContent(col, row, ' ', nil, style)
			}
		}
		return col
	}
	if r == utf8.RuneError || !isPrint(r) {
		r = '?'
	}
	rw := runewidth.RuneWidth(r)
	if rw == 0 {
		rw = 1
	}
	if col+rw <= w {
		v.screen.SetContent(col, row, r, nil, style)
	}
	return col + rw
}

func isPrint(r rune) bool { return r >= ' ' && r != 0x7f }

// put writes s at (x, y), clipped to width w.
func (v *View) put(x, y, w int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= w {
			return
		}
		x = v.cell(x, y, w, r, style)
	}
}

func (v *View) fill(x, y, w int, style tcell.Style) {
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}
}
