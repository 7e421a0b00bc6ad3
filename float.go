package argfmt

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
)

func (fr *frame) renderFloat(arg *Arg, prec, width int, align Align) error {
	spec := &fr.spec
	var (
		num    []byte
		finite bool
	)
	if arg.tag == TagExtended {
		num, finite = appendBigFloat(fr.scratch[:0], arg.x, spec, prec)
	} else {
		bits := 64
		if arg.tag == TagFloat32 {
			bits = 32
		}
		num, finite = appendFloat(fr.scratch[:0], arg.f, bits, spec, prec)
	}
	fr.buf = num

	if !finite {
		return fr.out.writeAligned(num, width, align, spec.Fill)
	}
	prefixLen := 0
	if len(num) > 0 && (num[0] == '-' || num[0] == '+' || num[0] == ' ') {
		prefixLen = 1
	}
	return fr.writeNumber(num, prefixLen, width, align, true)
}

func isUpperFloat(typ byte) bool {
	return typ == 'A' || typ == 'E' || typ == 'F' || typ == 'G'
}

func defaultPrecision(prec int) int {
	if prec < 0 {
		return 6
	}
	return prec
}

// appendNonFinite appends inf or nan. The bool result is always false so
// callers can return it directly.
func appendNonFinite(dst []byte, word string, typ byte) ([]byte, bool) {
	start := len(dst)
	dst = append(dst, word...)
	if isUpperFloat(typ) {
		upperASCII(dst[start:])
	}
	return dst, false
}

func appendFloat(dst []byte, v float64, bits int, spec *FieldSpec, prec int) ([]byte, bool) {
	dst = appendSign(dst, math.Signbit(v), spec.Sign)
	switch {
	case math.IsInf(v, 0):
		return appendNonFinite(dst, "inf", spec.Type)
	case math.IsNaN(v):
		return appendNonFinite(dst, "nan", spec.Type)
	}

	abs := math.Abs(v)
	start := len(dst)
	general := false
	switch spec.Type {
	case 0:
		if prec < 0 {
			dst = appendShortest(start,
				strconv.AppendFloat(dst, abs, 'e', -1, bits),
				func(b []byte) []byte { return strconv.AppendFloat(b, abs, 'f', -1, bits) })
		} else {
			dst = strconv.AppendFloat(dst, abs, 'g', prec, bits)
			general = true
		}
	case 'f', 'F':
		dst = strconv.AppendFloat(dst, abs, 'f', defaultPrecision(prec), bits)
	case 'e', 'E':
		dst = strconv.AppendFloat(dst, abs, 'e', defaultPrecision(prec), bits)
	case 'g', 'G':
		prec = defaultPrecision(prec)
		dst = strconv.AppendFloat(dst, abs, 'g', prec, bits)
		general = true
	case 'a', 'A':
		dst = normalizeHexFloat(strconv.AppendFloat(dst, abs, 'x', prec, bits), start)
	}
	return finishFloat(dst, start, spec, prec, general), true
}

func appendBigFloat(dst []byte, x *big.Float, spec *FieldSpec, prec int) ([]byte, bool) {
	dst = appendSign(dst, x.Signbit(), spec.Sign)
	if x.IsInf() {
		return appendNonFinite(dst, "inf", spec.Type)
	}

	abs := new(big.Float).Abs(x)
	start := len(dst)
	general := false
	switch spec.Type {
	case 0:
		if prec < 0 {
			dst = appendShortest(start,
				abs.Append(dst, 'e', -1),
				func(b []byte) []byte { return abs.Append(b, 'f', -1) })
		} else {
			dst = abs.Append(dst, 'g', prec)
			general = true
		}
	case 'f', 'F':
		dst = abs.Append(dst, 'f', defaultPrecision(prec))
	case 'e', 'E':
		dst = abs.Append(dst, 'e', defaultPrecision(prec))
	case 'g', 'G':
		prec = defaultPrecision(prec)
		dst = abs.Append(dst, 'g', prec)
		general = true
	case 'a', 'A':
		dst = normalizeHexFloat(abs.Append(dst, 'x', prec), start)
	}
	return finishFloat(dst, start, spec, prec, general), true
}

// appendShortest keeps whichever of the scientific form already in
// sci[start:] and the fixed form produced by fixed is shorter. Ties go to
// fixed notation.
func appendShortest(start int, sci []byte, fixed func([]byte) []byte) []byte {
	sciLen := len(sci) - start
	all := fixed(sci)
	fixLen := len(all) - start - sciLen
	if fixLen <= sciLen {
		copy(all[start:], all[start+sciLen:])
		return all[:start+fixLen]
	}
	return all[:start+sciLen]
}

// normalizeHexFloat rewrites "0x1.8p+01" as "1.8p+1".
func normalizeHexFloat(dst []byte, start int) []byte {
	if bytes.HasPrefix(dst[start:], []byte("0x")) {
		copy(dst[start:], dst[start+2:])
		dst = dst[:len(dst)-2]
	}
	p := bytes.IndexByte(dst[start:], 'p')
	if p < 0 {
		return dst
	}
	digits := start + p + 2
	if digits > len(dst) {
		return dst
	}
	zeros := 0
	for digits+zeros < len(dst)-1 && dst[digits+zeros] == '0' {
		zeros++
	}
	if zeros > 0 {
		copy(dst[digits:], dst[digits+zeros:])
		dst = dst[:len(dst)-zeros]
	}
	return dst
}

func finishFloat(dst []byte, start int, spec *FieldSpec, prec int, general bool) []byte {
	if spec.Alt {
		if general {
			dst = keepTrailingZeros(dst, start, prec)
		}
		dst = ensurePoint(dst, start, spec.Type == 'a' || spec.Type == 'A')
	}
	if isUpperFloat(spec.Type) {
		upperASCII(dst[start:])
	}
	return dst
}

// exponentIndex returns the index of the exponent marker in b, or len(b).
func exponentIndex(b []byte, hex bool) int {
	marker := byte('e')
	if hex {
		marker = 'p'
	}
	if i := bytes.IndexByte(b, marker); i >= 0 {
		return i
	}
	return len(b)
}

// ensurePoint inserts a decimal point before the exponent when the
// mantissa has none.
func ensurePoint(dst []byte, start int, hex bool) []byte {
	end := start + exponentIndex(dst[start:], hex)
	if bytes.IndexByte(dst[start:end], '.') >= 0 {
		return dst
	}
	dst = append(dst, 0)
	copy(dst[end+1:], dst[end:])
	dst[end] = '.'
	return dst
}

// keepTrailingZeros pads a %g style mantissa with zeros until it has prec
// significant digits.
func keepTrailingZeros(dst []byte, start, prec int) []byte {
	if prec == 0 {
		prec = 1
	}
	end := start + exponentIndex(dst[start:], false)
	sig, seen, dot := 0, false, false
	for _, c := range dst[start:end] {
		if c == '.' {
			dot = true
			continue
		}
		if c != '0' {
			seen = true
		}
		if seen {
			sig++
		}
	}
	if !seen {
		sig = 1
	}
	missing := prec - sig
	if missing <= 0 {
		return dst
	}

	var tail [16]byte
	n := copy(tail[:], dst[end:])
	dst = dst[:end]
	if !dot {
		dst = append(dst, '.')
	}
	for range missing {
		dst = append(dst, '0')
	}
	return append(dst, tail[:n]...)
}
