package prefix

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/texpand/internal/table"
)

// maxCell bounds the width of one help table cell.
const maxCell = 28

func levelTag(level, maxLevel int) string {
	return fmt.Sprintf("[level %d/%d]", level, maxLevel)
}

// Columns aligns rows into columns separated by two spaces. Cells are
// measured in terminal cells, not bytes.
func Columns(rows [][]string) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			w := runewidth.StringWidth(clip(cell))
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			cell = clip(cell)
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

func clip(s string) string {
	if runewidth.StringWidth(s) <= maxCell {
		return s
	}
	return runewidth.Truncate(s, maxCell, "…")
}

// keyLabel renders a binding key for help tables.
func keyLabel(r rune) string {
	if r == ' ' {
		return "SPC"
	}
	return string(r)
}

// SymbolHelp renders the symbol table with the current level marked.
// hints are appended below the table.
func SymbolHelp(tables *table.Merged, level int, hints []string) []string {
	levels := tables.Levels()
	header := []string{"key"}
	for l := 1; l <= levels; l++ {
		h := fmt.Sprintf("level %d", l)
		if l == level {
			h = "[" + h + "]"
		}
		header = append(header, h)
	}
	rows := [][]string{header}

	symbols := tables.Symbols()
	sort.SliceStable(symbols, func(i, j int) bool { return symbols[i].Key < symbols[j].Key })
	seen := make(map[rune]bool)
	for _, s := range symbols {
		if seen[s.Key] || !s.Defined() {
			continue
		}
		seen[s.Key] = true
		row := []string{keyLabel(s.Key)}
		for l := 1; l <= levels; l++ {
			m, _ := s.At(l)
			row = append(row, m)
		}
		rows = append(rows, row)
	}

	lines := []string{"Math symbols " + levelTag(level, levels)}
	lines = append(lines, Columns(rows)...)
	if len(hints) > 0 {
		lines = append(lines, "")
		lines = append(lines, hints...)
	}
	return lines
}

// ModifierHelp renders the modifier table with the column of the
// current mode marked.
func ModifierHelp(tables *table.Merged, math bool) []string {
	mathHead, textHead := "math", "text"
	if math {
		mathHead = "[math]"
	} else {
		textHead = "[text]"
	}
	rows := [][]string{{"key", mathHead, textHead, "form"}}

	mods := tables.Modifiers()
	sort.SliceStable(mods, func(i, j int) bool { return mods[i].Key < mods[j].Key })
	seen := make(map[rune]bool)
	for _, m := range mods {
		if seen[m.Key] {
			continue
		}
		seen[m.Key] = true
		form := "{\\cmd ...}"
		if m.Command {
			form = "\\cmd{...}"
		}
		rows = append(rows, []string{keyLabel(m.Key), m.Math, m.Text, form})
	}

	lines := []string{"Modify: accents and fonts"}
	return append(lines, Columns(rows)...)
}
