package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/bjaus/tabular/seq"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// layout is a fully materialized table: every cell formatted, every column
// setting resolved to a position.
type layout struct {
	title   string
	caption string
	header  []string
	rows    [][]string
	footer  []string
	groups  []string
	widths  []int
	aligns  []Alignment
	styles  []func(string) string
	wrap    []int
	page    int
}

func newLayout(columns []string, records []Record, cfg *RenderConfig) *layout {
	l := &layout{
		title:   cfg.Title,
		caption: cfg.Caption,
		footer:  cfg.Footer,
		page:    cfg.PageSize,
		rows:    make([][]string, len(records)),
	}
	if !cfg.NoHeader {
		l.header = columns
	}
	for i, rec := range records {
		l.rows[i] = rec.Row()
	}
	if cfg.GroupBy != "" {
		l.groups = make([]string, len(records))
		for i, rec := range records {
			v, _ := rec.Get(cfg.GroupBy)
			l.groups[i] = cellString(v)
		}
	}

	l.aligns = make([]Alignment, len(columns))
	l.styles = make([]func(string) string, len(columns))
	l.wrap = make([]int, len(columns))
	maxWidths := make([]int, len(columns))
	for i, c := range columns {
		l.aligns[i] = cfg.Align[c]
		l.styles[i] = cfg.Styles[c]
		l.wrap[i] = cfg.WrapWidths[c]
		maxWidths[i] = cfg.MaxWidths[c]
	}

	if cfg.Numbered {
		if l.header != nil {
			l.header = append([]string{cfg.NumberHeader}, l.header...)
		}
		for i, row := range l.rows {
			l.rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		if len(l.footer) > 0 {
			l.footer = append([]string{""}, l.footer...)
		}
		l.aligns = append([]Alignment{AlignRight}, l.aligns...)
		l.styles = append([]func(string) string{nil}, l.styles...)
		l.wrap = append([]int{0}, l.wrap...)
		maxWidths = append([]int{0}, maxWidths...)
	}

	l.widths = computeWidths(len(l.aligns), l.header, l.rows, l.footer)
	for i, m := range maxWidths {
		if m > 0 && l.widths[i] > m {
			l.widths[i] = m
		}
	}
	return l
}

func computeWidths(numCols int, header []string, rows [][]string, footer []string) []int {
	widths := make([]int, numCols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	measure(footer)
	return widths
}

func writeTable(w io.Writer, columns []string, rows seq.Seq[Record], cfg *RenderConfig) error {
	if len(columns) == 0 {
		return eachRecord(rows, func(Record) error { return nil })
	}
	records, err := seq.Collect(rows)
	if err != nil {
		return err
	}
	l := newLayout(columns, records, cfg)
	t := &tableWriter{w: w, l: l, plain: cfg.Border == BorderNone, bc: borderSets[cfg.Border]}
	if err := t.render(); err != nil {
		return err
	}
	if l.caption != "" {
		if _, err := fmt.Fprintln(w, l.caption); err != nil {
			return err
		}
	}
	return nil
}

type rule int

const (
	ruleTop rule = iota
	ruleTitle
	ruleUnderTitle
	ruleMid
	ruleBottom
)

// tableWriter draws a layout. A plain table has no borders: columns are
// separated by two spaces and only middle rules are drawn, as dashes.
type tableWriter struct {
	w     io.Writer
	l     *layout
	bc    borderChars
	plain bool
}

func (t *tableWriter) render() error {
	l := t.l
	if t.plain || l.title == "" {
		if err := t.rule(ruleTop); err != nil {
			return err
		}
	} else {
		if err := t.titleBlock(); err != nil {
			return err
		}
	}
	if len(l.header) > 0 {
		if err := t.headerBlock(); err != nil {
			return err
		}
	}
	for i, row := range l.rows {
		if l.groups != nil && i > 0 && l.groups[i] != l.groups[i-1] {
			if err := t.rule(ruleMid); err != nil {
				return err
			}
		}
		if l.page > 0 && len(l.header) > 0 && i > 0 && i%l.page == 0 {
			if err := t.rule(ruleMid); err != nil {
				return err
			}
			if err := t.headerBlock(); err != nil {
				return err
			}
		}
		if err := t.row(row); err != nil {
			return err
		}
	}
	if len(l.footer) > 0 {
		if err := t.rule(ruleMid); err != nil {
			return err
		}
		if err := t.row(l.footer); err != nil {
			return err
		}
	}
	return t.rule(ruleBottom)
}

func (t *tableWriter) titleBlock() error {
	if err := t.rule(ruleTitle); err != nil {
		return err
	}
	padded := alignCell(t.l.title, tableInnerWidth(t.l.widths)-2, AlignCenter)
	if _, err := fmt.Fprintf(t.w, "%s %s %s\n", t.bc.vertical, padded, t.bc.vertical); err != nil {
		return err
	}
	return t.rule(ruleUnderTitle)
}

func (t *tableWriter) headerBlock() error {
	if err := t.row(t.l.header); err != nil {
		return err
	}
	return t.rule(ruleMid)
}

func (t *tableWriter) rule(r rule) error {
	if t.plain {
		if r != ruleMid {
			return nil
		}
		dashes := make([]string, len(t.l.widths))
		for i, width := range t.l.widths {
			dashes[i] = strings.Repeat("-", width)
		}
		_, err := fmt.Fprintln(t.w, strings.Join(dashes, "  "))
		return err
	}
	bc := t.bc
	switch r {
	case ruleTop:
		return drawHLine(t.w, t.l.widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight)
	case ruleTitle:
		return drawHLine(t.w, t.l.widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight)
	case ruleUnderTitle:
		return drawHLine(t.w, t.l.widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee)
	case ruleBottom:
		return drawHLine(t.w, t.l.widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
	default:
		return drawHLine(t.w, t.l.widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee)
	}
}

// row writes one logical row, which spans several lines when a cell wraps.
func (t *tableWriter) row(cells []string) error {
	l := t.l
	wrapped := wrapRow(cells, l.widths, l.wrap)
	for line := range maxLines(wrapped) {
		parts := make([]string, len(l.widths))
		for i, width := range l.widths {
			cell := ""
			if line < len(wrapped[i]) {
				cell = wrapped[i][line]
			}
			formatted := formatTableCell(cell, width, l.aligns[i])
			if l.styles[i] != nil {
				formatted = l.styles[i](formatted)
			}
			parts[i] = formatted
		}
		var text string
		if t.plain {
			text = strings.TrimRight(strings.Join(parts, "  "), " ")
		} else {
			v := t.bc.vertical
			text = v + " " + strings.Join(parts, " "+v+" ") + " " + v
		}
		if _, err := fmt.Fprintln(t.w, text); err != nil {
			return err
		}
	}
	return nil
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	segments := make([]string, len(widths))
	for i, width := range widths {
		segments[i] = strings.Repeat(fill, width+2)
	}
	_, err := fmt.Fprintln(w, left+strings.Join(segments, mid)+right)
	return err
}

// --- Cell wrapping ---

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// A rune wider than the column still takes a line of its own.
			r := []rune(s)
			line = string(r[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

func wrapRow(cells []string, widths []int, wrapWidths []int) [][]string {
	wrapped := make([][]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if ww := wrapWidths[i]; ww > 0 && ww < width {
			wrapped[i] = wrapCell(cell, ww)
		} else {
			wrapped[i] = []string{cell}
		}
	}
	return wrapped
}

func maxLines(wrapped [][]string) int {
	n := 1
	for _, lines := range wrapped {
		n = max(n, len(lines))
	}
	return n
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		tail := "..."
		if width <= 3 {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
