package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bjaus/argfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseArg(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want any
	}{
		"int":            {in: "i:42", want: int64(42)},
		"hex int":        {in: "i:0x10", want: int64(16)},
		"negative int":   {in: "i:-3", want: int64(-3)},
		"uint":           {in: "u:7", want: uint64(7)},
		"float":          {in: "f:1.5", want: 1.5},
		"bool":           {in: "b:true", want: true},
		"char":           {in: "c:é", want: argfmt.Char('é')},
		"string":         {in: "s:a:b", want: "a:b"},
		"empty string":   {in: "s:", want: ""},
		"pointer":        {in: "p:0x10", want: uintptr(16)},
		"nil":            {in: "n:", want: nil},
		"no prefix":      {in: "plain", want: "plain"},
		"url":            {in: "http://example.com", want: "http://example.com"},
		"unknown prefix": {in: "z:foo", want: "z:foo"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseArg(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseArgTypes(t *testing.T) {
	t.Parallel()

	v, err := parseArg("x:2.5")
	require.NoError(t, err)
	x, ok := v.(*big.Float)
	require.True(t, ok)
	assert.Equal(t, "2.5", x.Text('g', 10))

	v, err = parseArg("t:2024-03-05T14:07:09Z")
	require.NoError(t, err)
	tm, ok := v.(time.Time)
	require.True(t, ok)
	assert.True(t, tm.Equal(time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)))

	v, err = parseArg("t:now")
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v)
}

func TestParseArgErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"i:abc", "u:-1", "f:one", "x:abc", "b:maybe", "c:ab", "c:", "t:yesterday", "p:zz"} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			_, err := parseArg(in)
			assert.Error(t, err)
		})
	}
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	got, err := parseArgs([]string{"i:1", "s:two", "three"})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "two", "three"}, got)

	_, err = parseArgs([]string{"i:1", "i:x"})
	assert.Error(t, err)
}

func TestParseReportFormat(t *testing.T) {
	t.Parallel()

	for _, f := range reportFormats {
		got, err := parseReportFormat(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := parseReportFormat("xml")
	assert.ErrorIs(t, err, errUnsupportedReport)
}

func TestParseBorder(t *testing.T) {
	t.Parallel()

	for name, want := range borderNames {
		got, err := parseBorder(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseBorder("dotted")
	assert.Error(t, err)
}

func TestCountCell(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{2}", countCell(0, 2, 0))
	assert.Equal(t, "", countCell(0, -1, 0))
	assert.Equal(t, "", countCell(-1, -1, -1))
	assert.Equal(t, "8", countCell(8, -1, 0))
	assert.Equal(t, "0", countCell(0, -1, -1))
}

func TestFormatCell(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		s     string
		width int
		align argfmt.Align
		want  string
	}{
		"right":          {s: "abc", width: 5, align: argfmt.AlignRight, want: "  abc"},
		"left":           {s: "abc", width: 5, align: argfmt.AlignLeft, want: "abc  "},
		"none":           {s: "abc", width: 4, align: argfmt.AlignNone, want: "abc "},
		"center odd":     {s: "x", width: 4, align: argfmt.AlignCenter, want: " x  "},
		"truncated":      {s: "abcdefgh", width: 5, align: argfmt.AlignLeft, want: "ab..."},
		"narrow":         {s: "abcdef", width: 3, align: argfmt.AlignLeft, want: "abc"},
		"wide runes fit": {s: "日本", width: 4, align: argfmt.AlignCenter, want: "日本"},
		"wide runes pad": {s: "日本", width: 6, align: argfmt.AlignRight, want: "  日本"},
		"braces":         {s: "{}", width: 3, align: argfmt.AlignLeft, want: "{} "},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, formatCell(tc.s, tc.width, tc.align))
		})
	}
}

func TestTablePlain(t *testing.T) {
	t.Parallel()

	tbl := &table{
		header: []string{"A", "Bee"},
		rows:   [][]string{{"1", "x"}},
		aligns: []argfmt.Align{argfmt.AlignRight, argfmt.AlignLeft},
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.write(&buf, borderNone))
	assert.Equal(t, "A  Bee\n-  ---\n1  x\n", buf.String())
}

func TestTableBordered(t *testing.T) {
	t.Parallel()

	tbl := &table{
		header: []string{"A", "Bee"},
		rows:   [][]string{{"1", "x"}},
		aligns: []argfmt.Align{argfmt.AlignRight, argfmt.AlignLeft},
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.write(&buf, borderASCII))
	want := strings.Join([]string{
		"+---+-----+",
		"| A | Bee |",
		"+---+-----+",
		"| 1 | x   |",
		"+---+-----+",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())

	buf.Reset()
	tbl.title = "T"
	require.NoError(t, tbl.write(&buf, borderASCII))
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "+---------+", lines[0])
	assert.Equal(t, "|    T    |", lines[1])
	assert.Equal(t, "+---+-----+", lines[2])
}

func TestTableMaxWidth(t *testing.T) {
	t.Parallel()

	tbl := &table{
		header:   []string{"Name"},
		rows:     [][]string{{"a very long cell"}},
		aligns:   []argfmt.Align{argfmt.AlignLeft},
		maxWidth: 6,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.write(&buf, borderNone))
	assert.Equal(t, "Name\n------\na v...\n", buf.String())
}

func inspectFields(t *testing.T) []argfmt.Field {
	t.Helper()
	fields, err := argfmt.Inspect("n={0:>5d} s={1:*^{2}}", 42, "mid", 9)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	return fields
}

func TestWriteReportJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, reportJSON, inspectFields(t), reportOptions{}))

	var got []argfmt.Field
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "{0:>5d}", got[0].Text)
	assert.Equal(t, 2, got[0].Offset)
	assert.Equal(t, "right", got[0].Align)
	assert.Equal(t, 5, got[0].Width)
	assert.Equal(t, "d", got[0].Type)
	assert.Equal(t, "*", got[1].Fill)
	assert.Equal(t, 2, got[1].WidthArg)

	buf.Reset()
	require.NoError(t, writeReport(&buf, reportJSON, nil, reportOptions{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteReportJSONL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, reportJSONL, inspectFields(t), reportOptions{}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var fd argfmt.Field
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &fd))
	assert.Equal(t, "{1:*^{2}}", fd.Text)
	assert.Equal(t, "center", fd.Align)
}

func TestWriteReportYAML(t *testing.T) {
	t.Parallel()

	fields := inspectFields(t)
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, reportYAML, fields, reportOptions{}))

	var got []argfmt.Field
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, fields, got)
}

func TestWriteReportCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, reportCSV, inspectFields(t), reportOptions{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, fieldHeader[1:], records[0])
	assert.Equal(t, []string{"2", "{0:>5d}", "0", "int64", "", "right", "", "", "5", "", "d"}, records[1])
	assert.Equal(t, "{2}", records[2][8])
}

func TestWriteReportMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, reportMarkdown, inspectFields(t), reportOptions{}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "| "), line)
		assert.True(t, strings.HasSuffix(line, " |"), line)
	}
	assert.Contains(t, lines[1], "--:")
	assert.Contains(t, lines[1], ":-")
	assert.Contains(t, lines[2], "{0:>5d}")
}

func TestWriteReportTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := reportOptions{border: borderRounded, title: "n={0:>5d} s={1:*^{2}}"}
	require.NoError(t, writeReport(&buf, reportTable, inspectFields(t), opts))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "╭"))
	assert.Contains(t, out, opts.title)
	assert.Contains(t, out, "{0:>5d}")
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestWriteReportUnsupported(t *testing.T) {
	t.Parallel()

	err := writeReport(&bytes.Buffer{}, reportFormat("xml"), nil, reportOptions{})
	assert.ErrorIs(t, err, errUnsupportedReport)
}

func runToFile(t *testing.T, cfg config, format string, args ...string) []byte {
	t.Helper()
	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, run(cfg, format, args, out))
	b, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	return b
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg    config
		format string
		args   []string
		want   []byte
	}{
		"plain":    {cfg: config{encoding: "utf-8"}, format: "{:>4}|{}", args: []string{"i:42", "x"}, want: []byte("  42|x")},
		"locale":   {cfg: config{encoding: "utf-8", locale: "de_DE"}, format: "{:L}", args: []string{"i:1234567"}, want: []byte("1.234.567")},
		"utc zone": {cfg: config{encoding: "utf-8", utc: true}, format: "{:%H %z}", args: []string{"t:2024-03-05T14:07:09+02:00"}, want: []byte("14 +0000")},
		"utf16":    {cfg: config{encoding: "utf-16le"}, format: "{}", args: []string{"c:é"}, want: []byte{0xE9, 0}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, runToFile(t, tc.cfg, tc.format, tc.args...))
		})
	}
}

func TestRunInspect(t *testing.T) {
	t.Parallel()

	got := runToFile(t, config{inspect: "jsonl", border: "rounded"}, "{:x}", "i:255")
	var fd argfmt.Field
	require.NoError(t, json.Unmarshal(got, &fd))
	assert.Equal(t, "x", fd.Type)
	assert.Equal(t, "int64", fd.Tag)
}

func TestRunLocalesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locales.yaml")
	doc := "- name: da_DK\n  decimal_point: \",\"\n  thousands_sep: \".\"\n  grouping: [3]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	got := runToFile(t, config{encoding: "utf-8", locales: path, locale: "da_DK"}, "{:.1Lf}", "f:1234.5")
	assert.Equal(t, "1.234,5", string(got))
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg    config
		format string
		args   []string
		want   error
	}{
		"unknown locale":   {cfg: config{encoding: "utf-8", locale: "tlh_XX"}, format: "{}", args: []string{"x"}, want: argfmt.ErrLocaleNotFound},
		"bad format":       {cfg: config{encoding: "utf-8"}, format: "{:q}", args: []string{"i:1"}, want: argfmt.ErrInvalidIntSpec},
		"missing argument": {cfg: config{encoding: "utf-8"}, format: "{} {}", args: []string{"x"}, want: argfmt.ErrArgumentIndex},
		"bad inspect":      {cfg: config{inspect: "xml", border: "rounded"}, format: "{}", args: []string{"x"}, want: errUnsupportedReport},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, err := os.Create(filepath.Join(t.TempDir(), "out"))
			require.NoError(t, err)
			defer out.Close()
			err = run(tc.cfg, tc.format, tc.args, out)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer out.Close()
	assert.Error(t, run(config{encoding: "latin1"}, "{}", []string{"x"}, out))
	assert.Error(t, run(config{encoding: "utf-8", locales: "/nonexistent/locales.yaml"}, "{}", nil, out))
	assert.Error(t, run(config{inspect: "json", border: "dotted"}, "{}", []string{"x"}, out))
}
