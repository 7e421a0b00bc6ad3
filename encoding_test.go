package argfmt_test

import (
	"bytes"
	"testing"

	"github.com/bjaus/argfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF16Buffer(t *testing.T) {
	t.Parallel()

	var buf argfmt.UTF16Buffer
	require.NoError(t, argfmt.FormatTo(&buf, "{}-{:*^5}", "a", "é"))
	assert.Equal(t, []uint16{'a', '-', '*', '*', 0xE9, '*', '*'}, buf.Units())
	assert.Equal(t, "a-**é**", buf.String())
	assert.Equal(t, 7, buf.Len())
	assert.Equal(t, 2, buf.UnitWidth())

	buf.Reset()
	require.NoError(t, argfmt.FormatTo(&buf, "{}", "😀"))
	assert.Equal(t, []uint16{0xD83D, 0xDE00}, buf.Units())
}

func TestUTF32Buffer(t *testing.T) {
	t.Parallel()

	var buf argfmt.UTF32Buffer
	require.NoError(t, argfmt.FormatTo(&buf, "{:>3}|{}", 7, "😀"))
	assert.Equal(t, []rune{' ', ' ', '7', '|', '😀'}, buf.Runes())
	assert.Equal(t, "  7|😀", buf.String())
	assert.Equal(t, 5, buf.Len())
	assert.Equal(t, 4, buf.UnitWidth())
}

func TestEncodedWriter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		enc  argfmt.Encoding
		want []byte
	}{
		"utf16le": {enc: argfmt.UTF16LE, want: []byte{'h', 0, 'i', 0, 0xE9, 0}},
		"utf16be": {enc: argfmt.UTF16BE, want: []byte{0, 'h', 0, 'i', 0, 0xE9}},
		"utf32le": {enc: argfmt.UTF32LE, want: []byte{'h', 0, 0, 0, 'i', 0, 0, 0, 0xE9, 0, 0, 0}},
		"utf32be": {enc: argfmt.UTF32BE, want: []byte{0, 0, 0, 'h', 0, 0, 0, 'i', 0, 0, 0, 0xE9}},
		"utf8":    {enc: argfmt.UTF8, want: []byte("hié")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			require.NoError(t, argfmt.FormatTo(argfmt.NewEncodedWriter(&out, tc.enc), "{}{}", "hi", argfmt.Char('é')))
			assert.Equal(t, tc.want, out.Bytes())
		})
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want argfmt.Encoding
	}{
		"dashed":     {in: "utf-16le", want: argfmt.UTF16LE},
		"upper":      {in: "UTF32BE", want: argfmt.UTF32BE},
		"plain utf8": {in: "utf-8", want: argfmt.UTF8},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := argfmt.ParseEncoding(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), got.String())
		})
	}

	_, err := argfmt.ParseEncoding("latin1")
	assert.Error(t, err)
}

func TestDetectBOM(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   []byte
		enc  argfmt.Encoding
		size int
	}{
		"none":     {in: []byte("abc"), enc: argfmt.UTF8, size: 0},
		"utf8":     {in: []byte{0xEF, 0xBB, 0xBF, 'a'}, enc: argfmt.UTF8, size: 3},
		"utf16le":  {in: []byte{0xFF, 0xFE, 'a', 0}, enc: argfmt.UTF16LE, size: 2},
		"utf16be":  {in: []byte{0xFE, 0xFF, 0, 'a'}, enc: argfmt.UTF16BE, size: 2},
		"utf32le":  {in: []byte{0xFF, 0xFE, 0, 0, 'a', 0, 0, 0}, enc: argfmt.UTF32LE, size: 4},
		"utf32be":  {in: []byte{0, 0, 0xFE, 0xFF}, enc: argfmt.UTF32BE, size: 4},
		"short":    {in: []byte{0xFF}, enc: argfmt.UTF8, size: 0},
		"no input": {in: nil, enc: argfmt.UTF8, size: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			enc, size := argfmt.DetectBOM(tc.in)
			assert.Equal(t, tc.enc, enc)
			assert.Equal(t, tc.size, size)
		})
	}
}

func TestTextArguments(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg  any
		want string
	}{
		"utf8 bytes":      {arg: []byte("plain"), want: "plain"},
		"utf8 bom":        {arg: []byte{0xEF, 0xBB, 0xBF, 'o', 'k'}, want: "ok"},
		"utf16le bytes":   {arg: []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, want: "hi"},
		"utf16be bytes":   {arg: []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, want: "hi"},
		"utf32le bytes":   {arg: []byte{0xFF, 0xFE, 0, 0, 'A', 0, 0, 0}, want: "A"},
		"utf16 units":     {arg: []uint16{'o', 0xD83D, 0xDE00}, want: "o😀"},
		"utf32 runes":     {arg: []rune{'r', 'ü'}, want: "rü"},
		"surrogate bytes": {arg: []byte{0xFF, 0xFE, 0x3D, 0xD8, 0x00, 0xDE}, want: "😀"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := argfmt.Format("{}", tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTextArgumentErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg any
	}{
		"invalid utf8":          {arg: []byte{'a', 0xC3}},
		"odd utf16 length":      {arg: []byte{0xFF, 0xFE, 'a'}},
		"lone high surrogate":   {arg: []byte{0xFF, 0xFE, 0x3D, 0xD8}},
		"lone low surrogate":    {arg: []byte{0xFF, 0xFE, 0x00, 0xDE}},
		"utf32 out of range":    {arg: []byte{0xFF, 0xFE, 0, 0, 0, 0, 0x11, 0}},
		"unit surrogate":        {arg: []uint16{0xDE00}},
		"unit pair truncated":   {arg: []uint16{'a', 0xD83D}},
		"rune surrogate":        {arg: []rune{0xD800}},
		"rune beyond unicode":   {arg: []rune{0x110000}},
		"high surrogate no low": {arg: []uint16{0xD83D, 'a'}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := argfmt.Format("{}", tc.arg)
			assert.ErrorIs(t, err, argfmt.ErrInvalidCodepoint)
		})
	}
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	got, err := argfmt.DecodeText([]byte{0xFE, 0xFF, 0, 'o', 0, 'k'})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)

	got, err = argfmt.DecodeText([]byte("as is"))
	require.NoError(t, err)
	assert.Equal(t, "as is", got)

	_, err = argfmt.DecodeText([]byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, argfmt.ErrInvalidCodepoint)
}
