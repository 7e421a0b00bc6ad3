package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bjaus/argfmt"
	"github.com/mattn/go-runewidth"
)

// borderStyle selects the characters of the inspect table.
type borderStyle int

const (
	borderRounded borderStyle = iota
	borderNone
	borderASCII
	borderHeavy
	borderDouble
)

var borderNames = map[string]borderStyle{
	"rounded": borderRounded,
	"none":    borderNone,
	"ascii":   borderASCII,
	"heavy":   borderHeavy,
	"double":  borderDouble,
}

func parseBorder(s string) (borderStyle, error) {
	if b, ok := borderNames[s]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("unknown border style %q", s)
}

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[borderStyle]borderChars{
	borderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	borderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	borderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	borderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// table is a rendered grid of strings with a header row and per-column
// alignment.
type table struct {
	title    string
	header   []string
	rows     [][]string
	aligns   []argfmt.Align
	maxWidth int
}

func (t *table) write(w io.Writer, style borderStyle) error {
	widths := t.widths()
	aligns := make([]argfmt.Align, len(widths))
	copy(aligns, t.aligns)
	if style == borderNone {
		return t.writePlain(w, widths, aligns)
	}
	return t.writeBordered(w, widths, aligns, borderSets[style])
}

func (t *table) widths() []int {
	n := len(t.header)
	for _, row := range t.rows {
		n = max(n, len(row))
	}
	widths := make([]int, n)
	for i, h := range t.header {
		widths[i] = max(widths[i], runewidth.StringWidth(h))
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if t.maxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.maxWidth)
		}
	}
	return widths
}

func (t *table) writePlain(w io.Writer, widths []int, aligns []argfmt.Align) error {
	if err := writePlainRow(w, t.header, widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := writePlainRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []argfmt.Align) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = formatCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

func (t *table) writeBordered(w io.Writer, widths []int, aligns []argfmt.Align, bc borderChars) error {
	if t.title != "" {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := innerWidth(widths) - 2
		if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, formatCell(t.title, inner, argfmt.AlignCenter), bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}

	if err := drawRow(w, t.header, widths, aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := drawRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// innerWidth is the width between the outer borders: each cell plus one
// space either side, and one separator between cells.
func innerWidth(widths []int) int {
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
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawRow(w io.Writer, cells []string, widths []int, aligns []argfmt.Align, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(formatCell(cell, width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// cellSpecs pads a cell through the formatter itself.
var cellSpecs = map[argfmt.Align]string{
	argfmt.AlignNone:   "{:<{}}",
	argfmt.AlignLeft:   "{:<{}}",
	argfmt.AlignRight:  "{:>{}}",
	argfmt.AlignCenter: "{:^{}}",
}

func formatCell(s string, width int, align argfmt.Align) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	out, err := argfmt.Format(cellSpecs[align], s, width)
	if err != nil {
		return s
	}
	return out
}
