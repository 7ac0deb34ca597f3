package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/texpand/internal/prefix"
	"github.com/dshills/texpand/internal/table"
)

// DumpTables writes a summary of the merged tables.
func (app *Application) DumpTables(w io.Writer) error {
	o, err := app.cfg.Overrides()
	if err != nil {
		return err
	}
	m := table.Compile(o)

	var rows [][]string
	for _, c := range m.Commands() {
		rows = append(rows, []string{c.Keyword, modes(c.Text, c.Math), c.Action.String(), c.Doc})
	}
	section(w, fmt.Sprintf("Commands (%d)", len(m.Commands())), rows)

	rows = rows[:0]
	for _, e := range m.Environments() {
		item := ""
		if e.Item != "" {
			item = "item " + strings.TrimSpace(e.Item)
		}
		rows = append(rows, []string{e.Name, item})
	}
	section(w, fmt.Sprintf("Environments (%d)", len(m.Environments())), rows)

	rows = rows[:0]
	for _, s := range m.Symbols() {
		row := []string{string(s.Key)}
		for level := 1; level <= m.Levels(); level++ {
			macro, _ := s.At(level)
			row = append(row, macro)
		}
		rows = append(rows, row)
	}
	section(w, fmt.Sprintf("Symbols (%d, %d levels)", len(m.Symbols()), m.Levels()), rows)

	rows = rows[:0]
	for _, md := range m.Modifiers() {
		rows = append(rows, []string{string(md.Key), md.Math, md.Text})
	}
	section(w, fmt.Sprintf("Modifiers (%d)", len(m.Modifiers())), rows)
	return nil
}

func section(w io.Writer, title string, rows [][]string) {
	fmt.Fprintf(w, "%s\n", title)
	for _, line := range prefix.Columns(rows) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w)
}

func modes(text, math bool) string {
	switch {
	case text && math:
		return "text+math"
	case math:
		return "math"
	default:
		return "text"
	}
}
