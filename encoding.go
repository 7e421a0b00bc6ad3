package argfmt

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Encoding is a Unicode encoding form used for text input and output.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var encodingNames = map[Encoding]string{
	UTF8:    "utf8",
	UTF16LE: "utf16le",
	UTF16BE: "utf16be",
	UTF32LE: "utf32le",
	UTF32BE: "utf32be",
}

// String returns the encoding name.
func (e Encoding) String() string {
	if s, ok := encodingNames[e]; ok {
		return s
	}
	return fmt.Sprintf("encoding(%d)", int(e))
}

// UnitWidth returns the size of one code unit in bytes.
func (e Encoding) UnitWidth() int {
	switch e {
	case UTF16LE, UTF16BE:
		return 2
	case UTF32LE, UTF32BE:
		return 4
	default:
		return 1
	}
}

// ParseEncoding parses an encoding name such as "utf-16le" or "UTF32BE".
func ParseEncoding(s string) (Encoding, error) {
	name := strings.ReplaceAll(strings.ToLower(s), "-", "")
	for e, n := range encodingNames {
		if n == name {
			return e, nil
		}
	}
	return UTF8, fmt.Errorf("argfmt: unknown encoding %q", s)
}

func (e Encoding) xtext() encoding.Encoding {
	switch e {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
	default:
		return unicode.UTF8
	}
}

// DetectBOM reports the encoding announced by a byte order mark at the
// start of b and the length of that mark. Text without a mark is UTF-8.
func DetectBOM(b []byte) (Encoding, int) {
	switch {
	case len(b) >= 4 && b[0] == 0xFF && b[1] == 0xFE && b[2] == 0 && b[3] == 0:
		return UTF32LE, 4
	case len(b) >= 4 && b[0] == 0 && b[1] == 0 && b[2] == 0xFE && b[3] == 0xFF:
		return UTF32BE, 4
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return UTF8, 3
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return UTF16LE, 2
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return UTF16BE, 2
	}
	return UTF8, 0
}

// DecodeText converts b to UTF-8, honoring a leading byte order mark.
func DecodeText(b []byte) (string, error) {
	body, s, transcoded, err := normalizeBytes(b)
	if err != nil {
		return "", err
	}
	if transcoded {
		return s, nil
	}
	return string(body), nil
}

// normalizeBytes returns either the UTF-8 body of b (BOM removed, not
// copied) or, when b carries a UTF-16/32 mark, the transcoded text.
func normalizeBytes(b []byte) ([]byte, string, bool, error) {
	enc, n := DetectBOM(b)
	body := b[n:]
	if enc == UTF8 {
		if !utf8.Valid(body) {
			return nil, "", false, invalidCodepoint("utf8", firstInvalidUTF8(body))
		}
		return body, "", false, nil
	}
	if off := firstInvalidUnit(enc, body); off >= 0 {
		return nil, "", false, invalidCodepoint(enc.String(), off+n)
	}
	out, err := enc.xtext().NewDecoder().Bytes(body)
	if err != nil {
		return nil, "", false, &Error{Kind: KindInvalidCodepoint, Offset: -1, Cause: err}
	}
	return nil, string(out), true, nil
}

func invalidCodepoint(enc string, at int) *Error {
	return &Error{Kind: KindInvalidCodepoint, Offset: -1, Detail: fmt.Sprintf("%s at byte %d", enc, at)}
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// firstInvalidUnit scans UTF-16/32 bytes for truncated units, unpaired
// surrogates and out of range scalars. It returns -1 for valid input.
func firstInvalidUnit(enc Encoding, b []byte) int {
	w := enc.UnitWidth()
	if len(b)%w != 0 {
		return len(b) - len(b)%w
	}
	unit := func(i int) uint32 {
		switch enc {
		case UTF16LE:
			return uint32(b[i]) | uint32(b[i+1])<<8
		case UTF16BE:
			return uint32(b[i])<<8 | uint32(b[i+1])
		case UTF32LE:
			return uint32(b[i]) | uint32(b[i+1])<<8 | uint32(b[i+2])<<16 | uint32(b[i+3])<<24
		default:
			return uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		}
	}
	for i := 0; i < len(b); i += w {
		u := unit(i)
		if w == 4 {
			if !utf8.ValidRune(rune(u)) {
				return i
			}
			continue
		}
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+2 >= len(b) {
				return i
			}
			if next := unit(i + 2); next < 0xDC00 || next > 0xDFFF {
				return i
			}
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF:
			return i
		}
	}
	return -1
}

func decodeUTF16Units(units []uint16) (string, error) {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		switch {
		case utf16.IsSurrogate(u):
			if u >= 0xDC00 || i+1 == len(units) {
				return "", invalidCodepoint("utf16", i*2)
			}
			r := utf16.DecodeRune(u, rune(units[i+1]))
			if r == utf8.RuneError {
				return "", invalidCodepoint("utf16", i*2)
			}
			b.WriteRune(r)
			i++
		default:
			b.WriteRune(u)
		}
	}
	return b.String(), nil
}

func decodeUTF32Units(runes []rune) (string, error) {
	for i, r := range runes {
		if !utf8.ValidRune(r) {
			return "", invalidCodepoint("utf32", i*4)
		}
	}
	return string(runes), nil
}

// UTF16Buffer is a sink that stores output as UTF-16 code units.
type UTF16Buffer struct {
	units []uint16
}

// Write appends the UTF-8 text p as UTF-16 code units.
func (b *UTF16Buffer) Write(p []byte) (int, error) {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		b.units = utf16.AppendRune(b.units, r)
		i += size
	}
	return len(p), nil
}

// WriteString appends s as UTF-16 code units.
func (b *UTF16Buffer) WriteString(s string) (int, error) {
	for _, r := range s {
		b.units = utf16.AppendRune(b.units, r)
	}
	return len(s), nil
}

// Units returns the accumulated code units.
func (b *UTF16Buffer) Units() []uint16 { return b.units }

// Len returns the number of code units.
func (b *UTF16Buffer) Len() int { return len(b.units) }

// Reset empties the buffer.
func (b *UTF16Buffer) Reset() { b.units = b.units[:0] }

// String decodes the buffer back to UTF-8.
func (b *UTF16Buffer) String() string { return string(utf16.Decode(b.units)) }

// UnitWidth reports the code unit size in bytes.
func (b *UTF16Buffer) UnitWidth() int { return 2 }

// UTF32Buffer is a sink that stores output as Unicode code points.
type UTF32Buffer struct {
	runes []rune
}

// Write appends the UTF-8 text p as code points.
func (b *UTF32Buffer) Write(p []byte) (int, error) {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		b.runes = append(b.runes, r)
		i += size
	}
	return len(p), nil
}

// WriteString appends s as code points.
func (b *UTF32Buffer) WriteString(s string) (int, error) {
	for _, r := range s {
		b.runes = append(b.runes, r)
	}
	return len(s), nil
}

// Runes returns the accumulated code points.
func (b *UTF32Buffer) Runes() []rune { return b.runes }

// Len returns the number of code points.
func (b *UTF32Buffer) Len() int { return len(b.runes) }

// Reset empties the buffer.
func (b *UTF32Buffer) Reset() { b.runes = b.runes[:0] }

// String encodes the buffer as UTF-8.
func (b *UTF32Buffer) String() string { return string(b.runes) }

// UnitWidth reports the code unit size in bytes.
func (b *UTF32Buffer) UnitWidth() int { return 4 }

type encodedWriter struct {
	w   io.Writer
	enc *encoding.Encoder
	e   Encoding
}

// NewEncodedWriter returns a writer that transcodes UTF-8 input to enc
// before writing it to w. No byte order mark is written. For UTF8 it
// returns w unchanged.
func NewEncodedWriter(w io.Writer, enc Encoding) io.Writer {
	if enc == UTF8 {
		return w
	}
	return &encodedWriter{w: w, enc: enc.xtext().NewEncoder(), e: enc}
}

func (e *encodedWriter) Write(p []byte) (int, error) {
	out, _, err := transform.Bytes(e.enc, p)
	if err != nil {
		return 0, &Error{Kind: KindInvalidCodepoint, Offset: -1, Detail: e.e.String(), Cause: err}
	}
	if _, err := e.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (e *encodedWriter) UnitWidth() int { return e.e.UnitWidth() }
