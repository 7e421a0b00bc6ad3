package argfmt

import "strings"

// timeToken is one element of a calendar spec: literal text when dir is
// zero, otherwise a directive with an optional 'E' or 'O' modifier.
type timeToken struct {
	lit string
	dir byte
	mod byte
}

// String returns the token as it appears in a format string.
func (t timeToken) String() string {
	switch {
	case t.dir == 0:
		return t.lit
	case t.mod != 0:
		return string([]byte{'%', t.mod, t.dir})
	default:
		return string([]byte{'%', t.dir})
	}
}

// TimeSpec is the parsed spec of a calendar field: the usual fill, align,
// width and precision plus a directive sequence.
type TimeSpec struct {
	FieldSpec
	tokens []timeToken
}

func (ts *TimeSpec) reset() {
	ts.FieldSpec.reset(0)
	ts.tokens = ts.tokens[:0]
}

const (
	standardDirectives = "aAbBcCdDeFgGhHIjklmMnpPrRsStTuUVwWxXyYzZ%"
	eraDirectives      = "cCxXyY"
	altDigitDirectives = "deHImMSuUVwWy"
)

func validDirective(dir, mod byte) bool {
	switch mod {
	case 'E':
		return strings.IndexByte(eraDirectives, dir) >= 0
	case 'O':
		return strings.IndexByte(altDigitDirectives, dir) >= 0
	}
	return strings.IndexByte(standardDirectives, dir) >= 0
}

// parseTimeSpec parses "[[fill]align][width][.precision][L]%..." starting
// at i, just after ':'. It returns the index of the closing '}'.
func (fr *frame) parseTimeSpec(i, pos int) (int, error) {
	s := fr.format
	ts := &fr.ts
	ts.reset()
	ts.Position = pos

	i, err := parseFillAlign(s, i, &ts.FieldSpec)
	if err != nil {
		return i, err
	}
	i, err = fr.parseWidthPrecision(i, &ts.FieldSpec, func(int) error { return nil })
	if err != nil {
		return i, err
	}
	if i < len(s) && s[i] == 'L' {
		ts.Locale, i = true, i+1
	}
	if i >= len(s) {
		return i, newError(KindMissingClosingBracket, i, "")
	}
	if s[i] == '}' {
		return i, nil
	}
	if s[i] != '%' {
		return i, newError(KindInvalidCtimeSpec, i, "expected '%'")
	}

	lit := -1
	for i < len(s) && s[i] != '}' {
		if s[i] != '%' {
			if lit < 0 {
				lit = i
			}
			i++
			continue
		}
		if lit >= 0 {
			ts.tokens = append(ts.tokens, timeToken{lit: s[lit:i]})
			lit = -1
		}
		i++
		if i >= len(s) || s[i] == '}' {
			return i, newError(KindMissingCtimeSpec, i-1, "")
		}
		var mod byte
		if s[i] == 'E' || s[i] == 'O' {
			mod = s[i]
			i++
			if i >= len(s) || s[i] == '}' {
				return i, newError(KindMissingCtimeSpec, i-2, "")
			}
		}
		if !validDirective(s[i], mod) {
			return i, newError(KindInvalidCtimeSpec, i, timeToken{dir: s[i], mod: mod}.String())
		}
		ts.tokens = append(ts.tokens, timeToken{dir: s[i], mod: mod})
		i++
	}
	if lit >= 0 {
		ts.tokens = append(ts.tokens, timeToken{lit: s[lit:i]})
	}
	if i >= len(s) {
		return i, newError(KindMissingClosingBracket, i, "")
	}
	return i, nil
}
