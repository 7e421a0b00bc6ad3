package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bjaus/argfmt"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

var errUnsupportedReport = errors.New("unsupported inspect format")

// reportFormat is an output format for -inspect.
type reportFormat string

const (
	reportTable    reportFormat = "table"
	reportJSON     reportFormat = "json"
	reportJSONL    reportFormat = "jsonl"
	reportYAML     reportFormat = "yaml"
	reportCSV      reportFormat = "csv"
	reportMarkdown reportFormat = "markdown"
)

var reportFormats = []reportFormat{reportTable, reportJSON, reportJSONL, reportYAML, reportCSV, reportMarkdown}

func parseReportFormat(s string) (reportFormat, error) {
	for _, f := range reportFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errUnsupportedReport, s)
}

// reportOptions tune the tabular formats.
type reportOptions struct {
	border   borderStyle
	maxWidth int
	title    string
}

func writeReport(w io.Writer, f reportFormat, fields []argfmt.Field, opts reportOptions) error {
	switch f {
	case reportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if fields == nil {
			fields = []argfmt.Field{}
		}
		return enc.Encode(fields)
	case reportJSONL:
		enc := json.NewEncoder(w)
		for _, fd := range fields {
			if err := enc.Encode(fd); err != nil {
				return err
			}
		}
		return nil
	case reportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return err
		}
		return enc.Close()
	case reportCSV:
		return writeFieldsCSV(w, fields)
	case reportMarkdown:
		return writeFieldsMarkdown(w, fields)
	case reportTable:
		t := &table{
			title:    opts.title,
			header:   fieldHeader,
			aligns:   fieldAligns,
			maxWidth: opts.maxWidth,
		}
		for i, fd := range fields {
			t.rows = append(t.rows, fieldRow(i, fd))
		}
		return t.write(w, opts.border)
	}
	return fmt.Errorf("%w: %q", errUnsupportedReport, f)
}

var fieldHeader = []string{"#", "Offset", "Field", "Arg", "Tag", "Fill", "Align", "Sign", "Flags", "Width", "Prec", "Type"}

var fieldAligns = []argfmt.Align{
	argfmt.AlignRight, argfmt.AlignRight, argfmt.AlignLeft, argfmt.AlignRight,
	argfmt.AlignLeft, argfmt.AlignCenter, argfmt.AlignLeft, argfmt.AlignCenter,
	argfmt.AlignLeft, argfmt.AlignRight, argfmt.AlignRight, argfmt.AlignLeft,
}

func fieldRow(i int, fd argfmt.Field) []string {
	var flags []string
	if fd.Alt {
		flags = append(flags, "#")
	}
	if fd.Zero {
		flags = append(flags, "0")
	}
	if fd.Locale {
		flags = append(flags, "L")
	}
	typ := fd.Type
	switch {
	case len(fd.Directives) > 0:
		typ = strings.Join(fd.Directives, " ")
	case fd.Spec != "":
		typ = fd.Spec
	}
	return []string{
		strconv.Itoa(i + 1),
		strconv.Itoa(fd.Offset),
		fd.Text,
		strconv.Itoa(fd.Position),
		fd.Tag,
		fd.Fill,
		fd.Align,
		fd.Sign,
		strings.Join(flags, ""),
		countCell(fd.Width, fd.WidthArg, 0),
		countCell(fd.Precision, fd.PrecisionArg, -1),
		typ,
	}
}

// countCell renders a width or precision: a nested reference as "{N}",
// an unset value as an empty cell.
func countCell(lit, arg, unset int) string {
	switch {
	case arg >= 0:
		return "{" + strconv.Itoa(arg) + "}"
	case lit == unset:
		return ""
	}
	return strconv.Itoa(lit)
}

func writeFieldsCSV(w io.Writer, fields []argfmt.Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fieldHeader[1:]); err != nil {
		return err
	}
	for i, fd := range fields {
		if err := cw.Write(fieldRow(i, fd)[1:]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFieldsMarkdown(w io.Writer, fields []argfmt.Field) error {
	rows := make([][]string, len(fields))
	for i, fd := range fields {
		rows[i] = fieldRow(i, fd)
		for j, cell := range rows[i] {
			rows[i][j] = strings.ReplaceAll(cell, "|", `\|`)
		}
	}

	widths := make([]int, len(fieldHeader))
	for i, col := range fieldHeader {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if err := writeMarkdownRow(w, fieldHeader, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		switch fieldAligns[i] {
		case argfmt.AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case argfmt.AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = formatCell(cells[i], width, fieldAligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
