package argfmt_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/bjaus/argfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	x, y int
}

var errUnknownPresentation = errors.New("unknown presentation")

type testStructFormatter struct {
	presentation string
}

func (f *testStructFormatter) Parse(spec string) error {
	switch spec {
	case "", "m", "x", "y":
		f.presentation = spec
		return nil
	}
	return fmt.Errorf("%w: %q", errUnknownPresentation, spec)
}

func (f *testStructFormatter) Format(v testStruct, ctx *argfmt.Context) error {
	switch f.presentation {
	case "m":
		return ctx.Format("{} {} {} {} {}", "This", "Is", "Text", "From", "TestStruct")
	case "x":
		return ctx.Format("{}", v.x)
	case "y":
		return ctx.Format("{}", v.y)
	}
	return ctx.Format("({}, {})", v.x, v.y)
}

func init() {
	argfmt.Register(func() argfmt.TypeFormatter[testStruct] { return &testStructFormatter{} })
}

// money formats itself.
type money struct {
	cents int64
}

func (m money) FormatArg(spec string, ctx *argfmt.Context) error {
	if spec == "" {
		spec = ">"
	}
	return ctx.Format("{:"+spec+"}.{:02}", m.cents/100, m.cents%100)
}

// probe reports what the formatter looks like from inside a user formatter.
type probe struct{}

func (probe) FormatArg(spec string, ctx *argfmt.Context) error {
	_, err := fmt.Fprintf(ctx, "active=%t spec=%q", ctx.Formatter().IsCustomFormatProcActive(), spec)
	return err
}

// nester formats a nested value that is itself custom.
type nester struct {
	inner testStruct
}

func (n nester) FormatArg(_ string, ctx *argfmt.Context) error {
	return ctx.Format("<{0:x}|{0}>", n.inner)
}

func TestCustomReentrancy(t *testing.T) {
	t.Parallel()

	f := argfmt.New()
	got, err := f.Format("{1:m}\n- Coordinate: (X: {1:x}, Y: {1:y})\n-->{0}", 424242424, testStruct{x: 42, y: 52})
	require.NoError(t, err)
	assert.Equal(t, "This Is Text From TestStruct\n- Coordinate: (X: 42, Y: 52)\n-->424242424", got)
	assert.False(t, f.IsCustomFormatProcActive())

	got, err = f.Format("{} {}", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "1 2", got)
}

func TestCustomFormatters(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"simple":            {format: "{}", args: []any{testStruct{x: 1, y: 2}}, want: "(1, 2)"},
		"pointer":           {format: "{:x}", args: []any{&testStruct{x: 7}}, want: "7"},
		"automatic around":  {format: "{} {:y} {}", args: []any{"a", testStruct{y: 3}, "b"}, want: "a 3 b"},
		"formattable":       {format: "{}", args: []any{money{cents: 1234}}, want: "12.34"},
		"formattable spec":  {format: "[{:>5}]", args: []any{money{cents: 705}}, want: "[    7.05]"},
		"active inside":     {format: "{:abc}", args: []any{probe{}}, want: `active=true spec="abc"`},
		"nested custom":     {format: "{}", args: []any{nester{inner: testStruct{x: 4, y: 5}}}, want: "<4|(4, 5)>"},
		"braces inside":     {format: "{:{}}", args: []any{probe{}}, want: `active=true spec="{}"`},
		"after manual args": {format: "{1}{0:m}", args: []any{testStruct{}, "!"}, want: "!This Is Text From TestStruct"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := argfmt.Format(tc.format, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCustomParseError(t *testing.T) {
	t.Parallel()

	_, err := argfmt.Format("{:q}", testStruct{})
	assert.ErrorIs(t, err, errUnknownPresentation)
}

func TestCustomUnclosed(t *testing.T) {
	t.Parallel()

	_, err := argfmt.Format("{:x", testStruct{})
	assert.ErrorIs(t, err, argfmt.ErrMissingClosingBracket)
}

func TestCustomWritesToSink(t *testing.T) {
	t.Parallel()

	var buf argfmt.UTF16Buffer
	require.NoError(t, argfmt.FormatTo(&buf, "{}|{}", money{cents: 1999}, "é"))
	assert.Equal(t, "19.99|é", buf.String())

	var out bytes.Buffer
	require.NoError(t, argfmt.FormatTo(&out, "{:m}", testStruct{}))
	assert.Equal(t, "This Is Text From TestStruct", out.String())
}

func TestEnableCustomFormatProc(t *testing.T) {
	t.Parallel()

	f := argfmt.New()
	assert.False(t, f.IsCustomFormatProcActive())

	f.EnableCustomFormatProc(true)
	assert.True(t, f.IsCustomFormatProcActive())
	got, err := f.Format("{:>3}", 1)
	require.NoError(t, err)
	assert.Equal(t, "  1", got)

	f.EnableCustomFormatProc(false)
	assert.False(t, f.IsCustomFormatProcActive())
	got, err = f.Format("{:<3}|", 1)
	require.NoError(t, err)
	assert.Equal(t, "1  |", got)
}

func TestCustomLocale(t *testing.T) {
	t.Parallel()

	de, err := argfmt.LookupLocale("de_DE")
	require.NoError(t, err)

	got, err := argfmt.FormatLocale(de, "{}", localeEcho{})
	require.NoError(t, err)
	assert.Equal(t, "de_DE 1.234,5", got)
}

type localeEcho struct{}

func (localeEcho) FormatArg(_ string, ctx *argfmt.Context) error {
	return ctx.Format("{} {:L}", ctx.Locale().Name, 1234.5)
}
