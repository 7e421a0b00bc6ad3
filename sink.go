package argfmt

import (
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Align is the alignment of a padded field.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// unitWidther is implemented by sinks whose code units are wider than a
// byte. The sink itself performs the transcoding.
type unitWidther interface {
	UnitWidth() int
}

// sink is the write primitive for one formatting call.
type sink struct {
	w     io.Writer
	bw    io.ByteWriter
	sw    io.StringWriter
	u16   *UTF16Buffer
	u32   *UTF32Buffer
	width int
}

func (s *sink) bind(w io.Writer) {
	*s = sink{w: w, width: 1}
	switch x := w.(type) {
	case *UTF16Buffer:
		s.u16, s.width = x, 2
		return
	case *UTF32Buffer:
		s.u32, s.width = x, 4
		return
	}
	if uw, ok := w.(unitWidther); ok {
		s.width = uw.UnitWidth()
	}
	if s.width == 1 {
		s.bw, _ = w.(io.ByteWriter)
	}
	s.sw, _ = w.(io.StringWriter)
}

func (s *sink) write(p []byte) error {
	switch {
	case len(p) == 0:
		return nil
	case s.u16 != nil:
		_, err := s.u16.Write(p)
		return err
	case s.u32 != nil:
		_, err := s.u32.Write(p)
		return err
	case s.bw != nil && len(p) <= 3:
		for _, c := range p {
			if err := s.bw.WriteByte(c); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := s.w.Write(p)
	return err
}

func (s *sink) writeString(str string) error {
	switch {
	case len(str) == 0:
		return nil
	case s.u16 != nil:
		_, err := s.u16.WriteString(str)
		return err
	case s.u32 != nil:
		_, err := s.u32.WriteString(str)
		return err
	case s.bw != nil && len(str) <= 3:
		for i := 0; i < len(str); i++ {
			if err := s.bw.WriteByte(str[i]); err != nil {
				return err
			}
		}
		return nil
	case s.sw != nil:
		_, err := s.sw.WriteString(str)
		return err
	}
	_, err := s.w.Write([]byte(str))
	return err
}

// pad writes n copies of fill.
func (s *sink) pad(fill rune, n int) error {
	if n <= 0 {
		return nil
	}
	var chunk [64]byte
	var one [utf8.UTFMax]byte
	size := utf8.EncodeRune(one[:], fill)
	per := len(chunk) / size
	filled := 0
	for filled < per && filled < n {
		copy(chunk[filled*size:], one[:size])
		filled++
	}
	for n > 0 {
		k := min(n, per)
		if err := s.write(chunk[:k*size]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// writeAligned writes value padded with fill to width display columns.
// The odd column of a centered value goes after it.
func (s *sink) writeAligned(value []byte, width int, align Align, fill rune) error {
	pad := width - displayWidth(value)
	if pad <= 0 {
		return s.write(value)
	}
	switch align {
	case AlignRight:
		if err := s.pad(fill, pad); err != nil {
			return err
		}
		return s.write(value)
	case AlignCenter:
		left := pad / 2
		if err := s.pad(fill, left); err != nil {
			return err
		}
		if err := s.write(value); err != nil {
			return err
		}
		return s.pad(fill, pad-left)
	default:
		if err := s.write(value); err != nil {
			return err
		}
		return s.pad(fill, pad)
	}
}

// displayWidth returns the number of terminal columns b occupies.
func displayWidth(b []byte) int {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return runewidth.StringWidth(string(b))
		}
	}
	return len(b)
}

// truncateWidth returns the longest prefix of b that fits in cols columns.
func truncateWidth(b []byte, cols int) []byte {
	n := 0
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		w := 1
		if r >= utf8.RuneSelf {
			w = runewidth.RuneWidth(r)
		}
		if n+w > cols {
			return b[:i]
		}
		n += w
		i += size
	}
	return b
}
