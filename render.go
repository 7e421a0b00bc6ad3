package argfmt

import (
	"strconv"
	"unicode/utf8"
)

// resolveCount returns a literal width or precision, or the value of the
// argument a nested reference points at.
func (fr *frame) resolveCount(lit, argPos int) (int, error) {
	if argPos < 0 {
		return lit, nil
	}
	a, err := fr.store.At(argPos)
	if err != nil {
		return 0, err
	}
	n, ok := a.integer()
	if !ok {
		return 0, &Error{
			Kind:   KindArgumentType,
			Offset: -1,
			Detail: "nested width or precision argument " + strconv.Itoa(argPos) + " is " + a.tag.String(),
		}
	}
	return n, nil
}

// numericLocale is the locale used by 'L' fields.
func (fr *frame) numericLocale() *Locale {
	if fr.loc != nil {
		return fr.loc
	}
	return DefaultLocale()
}

// renderSimple writes a field that has no spec at all.
func (fr *frame) renderSimple(arg *Arg, pos int) error {
	switch arg.tag {
	case TagEmpty:
		return nil
	case TagString, TagStringView:
		return fr.out.writeString(arg.s)
	case TagBytes:
		return fr.out.write(arg.b)
	case TagInt32, TagInt64:
		fr.buf = strconv.AppendInt(fr.scratch[:0], arg.i, 10)
		return fr.out.write(fr.buf)
	case TagUint32, TagUint64:
		fr.buf = strconv.AppendUint(fr.scratch[:0], arg.u, 10)
		return fr.out.write(fr.buf)
	case TagBool:
		if arg.i != 0 {
			return fr.out.writeString("true")
		}
		return fr.out.writeString("false")
	case TagCustom:
		return fr.renderCustom(arg, "")
	case TagTime:
		fr.ts.reset()
		return fr.renderTime(arg)
	}
	fr.spec.reset(pos)
	return fr.render(arg)
}

// render writes arg using the parsed fr.spec.
func (fr *frame) render(arg *Arg) error {
	spec := &fr.spec
	width, err := fr.resolveCount(spec.Width, spec.WidthArg)
	if err != nil {
		return err
	}
	prec, err := fr.resolveCount(spec.Precision, spec.PrecisionArg)
	if err != nil {
		return err
	}
	align := spec.Align
	if align == AlignNone {
		align = AlignLeft
		if numericPresentation(arg.tag, spec.Type) {
			align = AlignRight
		}
	}

	switch arg.tag {
	case TagEmpty:
		return fr.out.writeAligned(nil, width, align, spec.Fill)
	case TagString, TagStringView:
		return fr.renderText(arg.s, nil, prec, width, align)
	case TagBytes:
		return fr.renderText("", arg.b, prec, width, align)
	case TagInt32, TagInt64:
		neg := arg.i < 0
		mag := uint64(arg.i)
		if neg {
			mag = ^mag + 1
		}
		return fr.renderInteger(neg, mag, width, align)
	case TagUint32, TagUint64:
		return fr.renderInteger(false, arg.u, width, align)
	case TagBool:
		if numericPresentation(arg.tag, spec.Type) {
			return fr.renderInteger(false, uint64(arg.i), width, align)
		}
		text := "false"
		if arg.i != 0 {
			text = "true"
		}
		if spec.Locale {
			loc := fr.numericLocale()
			text = loc.FalseName
			if arg.i != 0 {
				text = loc.TrueName
			}
		}
		return fr.renderText(text, nil, -1, width, align)
	case TagChar:
		if numericPresentation(arg.tag, spec.Type) {
			neg := arg.i < 0
			mag := uint64(arg.i)
			if neg {
				mag = ^mag + 1
			}
			return fr.renderInteger(neg, mag, width, align)
		}
		fr.buf = utf8.AppendRune(fr.scratch[:0], rune(arg.i))
		return fr.out.writeAligned(fr.buf, width, align, spec.Fill)
	case TagFloat32, TagFloat64, TagExtended:
		return fr.renderFloat(arg, prec, width, align)
	case TagConstPointer:
		return fr.renderPointer(arg.u, width, align)
	case TagPointer:
		return fr.renderPointer(uint64(uintptr(arg.ptr)), width, align)
	case TagTime, TagCustom:
		return &Error{Kind: KindArgumentType, Offset: -1, Detail: arg.tag.String() + " argument with a standard spec"}
	}
	return &Error{Kind: KindArgumentType, Offset: -1, Detail: "unknown tag " + arg.tag.String()}
}

// renderText truncates text to prec columns and pads it to width. Exactly
// one of s and b carries the text.
func (fr *frame) renderText(s string, b []byte, prec, width int, align Align) error {
	if prec < 0 && width == 0 {
		if b != nil {
			return fr.out.write(b)
		}
		return fr.out.writeString(s)
	}
	if b == nil {
		fr.buf = append(fr.scratch[:0], s...)
		b = fr.buf
	}
	if prec >= 0 {
		b = truncateWidth(b, prec)
	}
	return fr.out.writeAligned(b, width, align, fr.spec.Fill)
}

func appendSign(dst []byte, neg bool, sign Sign) []byte {
	switch {
	case neg:
		return append(dst, '-')
	case sign == SignPlus:
		return append(dst, '+')
	case sign == SignSpace:
		return append(dst, ' ')
	}
	return dst
}

func upperASCII(b []byte) {
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

func (fr *frame) renderInteger(neg bool, mag uint64, width int, align Align) error {
	spec := &fr.spec
	if spec.Type == 'c' {
		if neg || mag > utf8.MaxRune || !utf8.ValidRune(rune(mag)) {
			return &Error{Kind: KindInvalidCodepoint, Offset: -1, Detail: "integer " + strconv.FormatUint(mag, 10) + " is not a character"}
		}
		fr.buf = utf8.AppendRune(fr.scratch[:0], rune(mag))
		return fr.out.writeAligned(fr.buf, width, align, spec.Fill)
	}

	buf := appendSign(fr.scratch[:0], neg, spec.Sign)
	base := 10
	switch spec.Type {
	case 'b', 'B':
		base = 2
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
	}
	if spec.Alt {
		switch spec.Type {
		case 'b':
			buf = append(buf, "0b"...)
		case 'B':
			buf = append(buf, "0B"...)
		case 'o':
			if mag != 0 {
				buf = append(buf, '0')
			}
		case 'x':
			buf = append(buf, "0x"...)
		case 'X':
			buf = append(buf, "0X"...)
		}
	}
	prefixLen := len(buf)
	buf = strconv.AppendUint(buf, mag, base)
	if spec.Type == 'X' {
		upperASCII(buf[prefixLen:])
	}
	fr.buf = buf
	return fr.writeNumber(buf, prefixLen, width, align, false)
}

func (fr *frame) renderPointer(addr uint64, width int, align Align) error {
	buf := append(fr.scratch[:0], "0x"...)
	buf = strconv.AppendUint(buf, addr, 16)
	fr.buf = buf
	return fr.writeNumber(buf, 2, width, align, false)
}

// writeNumber localizes num when requested and pads it. Zero padding goes
// between the sign or base prefix and the digits.
func (fr *frame) writeNumber(num []byte, prefixLen, width int, align Align, isFloat bool) error {
	spec := &fr.spec
	if spec.Locale {
		fr.aux = fr.numericLocale().appendLocalized(fr.aux[:0], num, prefixLen, isFloat)
		num = fr.aux
	}
	if spec.Zero && spec.Align == AlignNone {
		pad := width - displayWidth(num)
		if err := fr.out.write(num[:prefixLen]); err != nil {
			return err
		}
		if err := fr.out.pad('0', pad); err != nil {
			return err
		}
		return fr.out.write(num[prefixLen:])
	}
	return fr.out.writeAligned(num, width, align, spec.Fill)
}
