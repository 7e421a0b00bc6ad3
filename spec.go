package argfmt

import (
	"strconv"
	"unicode/utf8"
)

// Sign controls the sign printed for non-negative numbers.
type Sign uint8

const (
	SignNone Sign = iota
	SignPlus
	SignMinus
	SignSpace
)

func (s Sign) String() string {
	switch s {
	case SignPlus:
		return "+"
	case SignMinus:
		return "-"
	case SignSpace:
		return "space"
	default:
		return "none"
	}
}

// FieldSpec is the parsed form of one field's spec. WidthArg and
// PrecisionArg are argument positions for nested {} references, or -1.
type FieldSpec struct {
	Position     int
	Width        int
	WidthArg     int
	Precision    int
	PrecisionArg int
	Fill         rune
	Align        Align
	Sign         Sign
	Alt          bool
	Zero         bool
	Locale       bool
	Type         byte
	fillSet      bool
}

func (s *FieldSpec) reset(pos int) {
	*s = FieldSpec{Position: pos, Fill: ' ', WidthArg: -1, Precision: -1, PrecisionArg: -1}
}

type indexMode uint8

const (
	modeNone indexMode = iota
	modeAutomatic
	modeManual
)

const typeLetters = "aAbBcdeEfFgGopsxX"

func isAlign(c byte) (Align, bool) {
	switch c {
	case '<':
		return AlignLeft, true
	case '>':
		return AlignRight, true
	case '^':
		return AlignCenter, true
	}
	return AlignNone, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// specErrorKind is the error raised for a bad type letter on tag.
func specErrorKind(tag Tag) ErrorKind {
	switch {
	case tag.isInteger():
		return KindInvalidIntSpec
	case tag.isFloat():
		return KindInvalidFloatSpec
	case tag == TagBool:
		return KindInvalidBoolSpec
	case tag == TagChar:
		return KindInvalidCharSpec
	case tag.isPointer():
		return KindInvalidPointerSpec
	default:
		return KindInvalidStringSpec
	}
}

// validType reports whether type letter c may format a value tagged tag.
func validType(tag Tag, c byte) bool {
	var allowed string
	switch {
	case tag.isInteger():
		allowed = "bBcdoxX"
	case tag.isFloat():
		allowed = "aAeEfFgG"
	case tag.isText():
		allowed = "s"
	case tag == TagBool:
		allowed = "sbBdoxX"
	case tag == TagChar:
		allowed = "cbBdoxX"
	case tag.isPointer():
		allowed = "p"
	case tag == TagEmpty:
		allowed = typeLetters
	}
	for i := 0; i < len(allowed); i++ {
		if allowed[i] == c {
			return true
		}
	}
	return false
}

// numericPresentation reports whether the spec renders a value as a
// number, which decides default alignment and zero padding.
func numericPresentation(tag Tag, typ byte) bool {
	switch {
	case tag.isInteger():
		return typ != 'c'
	case tag.isFloat(), tag.isPointer():
		return true
	case tag == TagBool:
		return typ != 0 && typ != 's'
	case tag == TagChar:
		return typ != 0 && typ != 'c'
	}
	return false
}

// parsePosition parses the argument id that starts at i, just after '{'.
// It returns the position and the index of the ':' or '}' that follows.
func (fr *frame) parsePosition(i int) (int, int, error) {
	s := fr.format
	if i >= len(s) {
		return 0, i, newError(KindMissingClosingBracket, i-1, "")
	}

	if isDigit(s[i]) {
		if fr.mode == modeAutomatic {
			return 0, i, newError(KindPositionFieldMode, i, "manual position after automatic fields")
		}
		fr.mode = modeManual
		pos, j, err := parseIndex(s, i)
		if err != nil {
			return 0, j, err
		}
		if j >= len(s) {
			return 0, j, newError(KindMissingClosingBracket, i-1, "")
		}
		if s[j] != ':' && s[j] != '}' {
			return 0, j, newError(KindPositionFieldRunon, j, "")
		}
		return pos, j, nil
	}

	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	if j >= len(s) {
		return 0, j, newError(KindMissingClosingBracket, i-1, "")
	}
	if s[j] != ':' && s[j] != '}' {
		return 0, j, newError(KindPositionFieldSpec, j, "")
	}
	if fr.mode == modeManual {
		if s[j] == ':' {
			return 0, j, newError(KindPositionFieldNoPosition, j, "")
		}
		return 0, j, newError(KindPositionFieldMode, j, "automatic field after manual positions")
	}
	pos, err := fr.nextAutomatic(j)
	return pos, j, err
}

func (fr *frame) nextAutomatic(at int) (int, error) {
	fr.mode = modeAutomatic
	pos := fr.next
	if pos > maxArgIndex {
		return 0, newError(KindMaxArgsExceeded, at, "position "+strconv.Itoa(pos))
	}
	fr.next++
	return pos, nil
}

// parseIndex reads a decimal position no larger than maxArgIndex.
func parseIndex(s string, i int) (int, int, error) {
	start := i
	n := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		if n > maxArgIndex {
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			return 0, i, newError(KindMaxArgsExceeded, start, "position "+s[start:i])
		}
		i++
	}
	return n, i, nil
}

// parseCount reads a decimal width or precision literal.
func parseCount(s string, i int) (int, int) {
	n := 0
	for i < len(s) && isDigit(s[i]) {
		if n < 1<<24 {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	return n, i
}

// parseNested parses a nested "{}" or "{N}" reference starting at the '{'
// at i and returns the position and the index after its '}'.
func (fr *frame) parseNested(i int) (int, int, error) {
	s := fr.format
	j := i + 1
	if j >= len(s) {
		return 0, j, newError(KindMissingClosingBracket, i, "")
	}
	switch {
	case s[j] == '}':
		if fr.mode == modeManual {
			return 0, j, newError(KindPositionFieldMode, j, "automatic nested field after manual positions")
		}
		pos, err := fr.nextAutomatic(j)
		return pos, j + 1, err
	case isDigit(s[j]):
		if fr.mode == modeAutomatic {
			return 0, j, newError(KindPositionFieldMode, j, "manual nested position after automatic fields")
		}
		fr.mode = modeManual
		pos, k, err := parseIndex(s, j)
		if err != nil {
			return 0, k, err
		}
		if k >= len(s) {
			return 0, k, newError(KindMissingClosingBracket, i, "")
		}
		if s[k] != '}' {
			return 0, k, newError(KindPositionFieldRunon, k, "")
		}
		return pos, k + 1, nil
	default:
		return 0, j, newError(KindPositionFieldSpec, j, "")
	}
}

// parseFillAlign reads an optional "[fill]align" prefix at i.
func parseFillAlign(s string, i int, spec *FieldSpec) (int, error) {
	if i >= len(s) {
		return i, nil
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if i+size < len(s) {
		if a, ok := isAlign(s[i+size]); ok {
			if r == '{' || r == '}' {
				return i, newError(KindInvalidFillCharacter, i, "")
			}
			spec.Fill, spec.fillSet, spec.Align = r, true, a
			return i + size + 1, nil
		}
	}
	if a, ok := isAlign(s[i]); ok {
		spec.Align = a
		return i + 1, nil
	}
	return i, nil
}

// parseWidthPrecision reads "[width][.precision]" at i. checkPrecision
// is called before a precision is accepted.
func (fr *frame) parseWidthPrecision(i int, spec *FieldSpec, checkPrecision func(at int) error) (int, error) {
	s := fr.format
	var err error
	switch {
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		spec.Width, i = parseCount(s, i)
	case i < len(s) && s[i] == '{':
		if spec.WidthArg, i, err = fr.parseNested(i); err != nil {
			return i, err
		}
	}

	if i < len(s) && s[i] == '.' {
		if err := checkPrecision(i); err != nil {
			return i, err
		}
		i++
		switch {
		case i < len(s) && isDigit(s[i]):
			spec.Precision, i = parseCount(s, i)
		case i < len(s) && s[i] == '{':
			if spec.PrecisionArg, i, err = fr.parseNested(i); err != nil {
				return i, err
			}
		default:
			return i, newError(KindMissingClosingBracket, i, "missing precision after '.'")
		}
	}
	return i, nil
}

// parseSpec parses the spec of a non-time, non-custom field. i is the
// index just after ':'; the returned index is that of the closing '}'.
func (fr *frame) parseSpec(i int, tag Tag) (int, error) {
	s := fr.format
	spec := &fr.spec

	i, err := parseFillAlign(s, i, spec)
	if err != nil {
		return i, err
	}

	if i < len(s) {
		switch s[i] {
		case '+':
			spec.Sign, i = SignPlus, i+1
		case '-':
			spec.Sign, i = SignMinus, i+1
		case ' ':
			spec.Sign, i = SignSpace, i+1
		}
	}

	if i < len(s) && s[i] == '#' {
		if !tag.isInteger() && !tag.isFloat() && tag != TagBool && tag != TagChar {
			return i, newError(KindInvalidAltType, i, "argument is "+tag.String())
		}
		spec.Alt, i = true, i+1
	}

	if i < len(s) && s[i] == '0' {
		spec.Zero, i = true, i+1
	}

	i, err = fr.parseWidthPrecision(i, spec, func(at int) error {
		if !tag.isText() && !tag.isFloat() {
			return newError(KindInvalidPrecisionType, at, "argument is "+tag.String())
		}
		return nil
	})
	if err != nil {
		return i, err
	}

	if i < len(s) && s[i] == 'L' {
		if tag == TagChar || tag == TagEmpty || tag.isPointer() || tag.isText() {
			return i, newError(KindInvalidLocaleType, i, "argument is "+tag.String())
		}
		spec.Locale, i = true, i+1
	}

	if i < len(s) && s[i] != '}' {
		if !validType(tag, s[i]) {
			return i, newError(specErrorKind(tag), i, "type "+strconv.QuoteRune(rune(s[i]))+" for "+tag.String())
		}
		spec.Type, i = s[i], i+1
	}

	if i >= len(s) {
		return i, newError(KindMissingClosingBracket, i, "")
	}
	if s[i] != '}' {
		return i, newError(specErrorKind(tag), i, "unexpected "+strconv.Quote(s[i:i+1]))
	}

	if spec.Zero && !spec.fillSet && !numericPresentation(tag, spec.Type) {
		spec.Fill = '0'
	}
	return i, nil
}

// findClose returns the index of the '}' closing a field whose spec
// starts at i, skipping balanced nested braces.
func findClose(s string, i int) int {
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}
