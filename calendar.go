package argfmt

import (
	"strconv"
	"time"
)

// defaultTimePattern renders calendar fields that have no directives.
const defaultTimePattern = "%F %T"

// calendar holds the broken-down time of one calendar field.
type calendar struct {
	zone   Zone
	loc    *Locale
	year   int
	month  int
	day    int
	hour   int
	min    int
	sec    int
	wday   int // 0 = Sunday
	yday   int // 1-based
	unix   int64
	prec   int
	nanos  int
	useLoc bool
}

func (fr *frame) renderTime(arg *Arg) error {
	ts := &fr.ts
	width, err := fr.resolveCount(ts.Width, ts.WidthArg)
	if err != nil {
		return err
	}
	prec, err := fr.resolveCount(ts.Precision, ts.PrecisionArg)
	if err != nil {
		return err
	}

	c := fr.newCalendar(arg.t, prec)
	buf := fr.scratch[:0]
	switch {
	case len(ts.tokens) == 0:
		buf = c.appendPattern(buf, defaultTimePattern, 0)
	case len(ts.tokens) == 1 && width == 0 && prec < 0:
		c.setLocale(fr, ts.tokens[0].mod)
		buf = c.appendToken(buf, ts.tokens[0], 0)
		fr.buf = buf
		return fr.out.write(buf)
	default:
		for _, tok := range ts.tokens {
			c.setLocale(fr, tok.mod)
			buf = c.appendToken(buf, tok, 0)
		}
	}
	fr.buf = buf

	align := ts.Align
	if align == AlignNone {
		align = AlignLeft
	}
	return fr.out.writeAligned(buf, width, align, ts.Fill)
}

func (fr *frame) newCalendar(t time.Time, prec int) *calendar {
	c := &fr.cal
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	*c = calendar{
		zone:  fr.f.zone(),
		loc:   classicLocale,
		year:  year,
		month: int(month),
		day:   day,
		hour:  hour,
		min:   minute,
		sec:   sec,
		wday:  int(t.Weekday()),
		yday:  t.YearDay(),
		unix:  t.Unix(),
		prec:  prec,
	}
	if prec > 0 {
		c.nanos = fr.f.now().Nanosecond()
	}
	return c
}

// setLocale selects the name tables for the next directive. An explicit
// locale always applies; the process default only for 'L', 'E' and 'O'.
func (c *calendar) setLocale(fr *frame, mod byte) {
	loc := fr.loc
	if loc == nil && (fr.ts.Locale || mod != 0) {
		loc = DefaultLocale()
	}
	c.useLoc = loc != nil && !loc.classic()
	c.loc = classicLocale
	if c.useLoc {
		c.loc = loc
	}
}

func (c *calendar) appendToken(dst []byte, tok timeToken, depth int) []byte {
	if tok.dir == 0 {
		return append(dst, tok.lit...)
	}
	return c.appendDirective(dst, tok.dir, tok.mod, depth)
}

// appendPattern renders a strftime pattern such as a locale's date
// format. Unknown directives are copied literally.
func (c *calendar) appendPattern(dst []byte, pattern string, depth int) []byte {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 == len(pattern) {
			dst = append(dst, pattern[i])
			continue
		}
		j := i + 1
		var mod byte
		if (pattern[j] == 'E' || pattern[j] == 'O') && j+1 < len(pattern) {
			mod = pattern[j]
			j++
		}
		if !validDirective(pattern[j], mod) || depth > 2 {
			dst = append(dst, pattern[i:j+1]...)
		} else {
			dst = c.appendDirective(dst, pattern[j], mod, depth+1)
		}
		i = j
	}
	return dst
}

func (c *calendar) appendDirective(dst []byte, dir, mod byte, depth int) []byte {
	alt := mod == 'O' && c.useLoc && len(c.loc.AltDigits) == 10
	switch dir {
	case 'a':
		return append(dst, c.loc.ShortWeekdays[c.wday]...)
	case 'A':
		return append(dst, c.loc.Weekdays[c.wday]...)
	case 'b', 'h':
		return append(dst, c.loc.ShortMonths[c.month-1]...)
	case 'B':
		return append(dst, c.loc.Months[c.month-1]...)
	case 'c':
		return c.appendPattern(dst, c.loc.DateTimeFormat, depth)
	case 'C':
		return c.appendNumber(dst, floorDiv(c.year, 100), 2, '0', false)
	case 'd':
		return c.appendNumber(dst, c.day, 2, '0', alt)
	case 'D':
		return c.appendPattern(dst, "%m/%d/%y", depth)
	case 'e':
		return c.appendNumber(dst, c.day, 2, ' ', alt)
	case 'F':
		return c.appendPattern(dst, "%Y-%m-%d", depth)
	case 'g':
		y, _ := isoWeek(c.year, c.yday, c.wday)
		return c.appendNumber(dst, floorMod(y, 100), 2, '0', false)
	case 'G':
		y, _ := isoWeek(c.year, c.yday, c.wday)
		return appendYear(dst, y)
	case 'H':
		return c.appendNumber(dst, c.hour, 2, '0', alt)
	case 'I':
		return c.appendNumber(dst, hour12(c.hour), 2, '0', alt)
	case 'j':
		return c.appendNumber(dst, c.yday, 3, '0', false)
	case 'k':
		return c.appendNumber(dst, c.hour, 2, ' ', false)
	case 'l':
		return c.appendNumber(dst, hour12(c.hour), 2, ' ', false)
	case 'm':
		return c.appendNumber(dst, c.month, 2, '0', alt)
	case 'M':
		return c.appendNumber(dst, c.min, 2, '0', alt)
	case 'n':
		return append(dst, '\n')
	case 'p':
		return append(dst, c.meridiem()...)
	case 'P':
		start := len(dst)
		dst = append(dst, c.meridiem()...)
		lowerASCII(dst[start:])
		return dst
	case 'r':
		return c.appendPattern(dst, c.loc.TimeFormat12, depth)
	case 'R':
		return c.appendPattern(dst, "%H:%M", depth)
	case 's':
		return strconv.AppendInt(dst, c.unix, 10)
	case 'S':
		dst = c.appendNumber(dst, c.sec, 2, '0', alt)
		return c.appendFraction(dst)
	case 't':
		return append(dst, '\t')
	case 'T':
		return c.appendPattern(dst, "%H:%M:%S", depth)
	case 'u':
		wd := c.wday
		if wd == 0 {
			wd = 7
		}
		return c.appendNumber(dst, wd, 1, '0', alt)
	case 'U':
		return c.appendNumber(dst, (c.yday-1+7-c.wday)/7, 2, '0', alt)
	case 'V':
		_, w := isoWeek(c.year, c.yday, c.wday)
		return c.appendNumber(dst, w, 2, '0', alt)
	case 'w':
		return c.appendNumber(dst, c.wday, 1, '0', alt)
	case 'W':
		return c.appendNumber(dst, (c.yday-1+7-(c.wday+6)%7)/7, 2, '0', alt)
	case 'x':
		return c.appendPattern(dst, c.loc.DateFormat, depth)
	case 'X':
		return c.appendPattern(dst, c.loc.TimeFormat, depth)
	case 'y':
		return c.appendNumber(dst, floorMod(c.year, 100), 2, '0', alt)
	case 'Y':
		return appendYear(dst, c.year)
	case 'z':
		return appendOffset(dst, c.zone.Offset())
	case 'Z':
		return append(dst, c.zone.Abbreviation()...)
	case '%':
		return append(dst, '%')
	}
	return append(dst, '%', dir)
}

func (c *calendar) meridiem() string {
	if c.hour < 12 {
		if c.loc.AM == "" {
			return classicLocale.AM
		}
		return c.loc.AM
	}
	if c.loc.PM == "" {
		return classicLocale.PM
	}
	return c.loc.PM
}

// appendNumber appends v padded to width with pad, using the locale's
// alternative digits when alt is set.
func (c *calendar) appendNumber(dst []byte, v, width int, pad byte, alt bool) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	var tmp [20]byte
	digits := strconv.AppendInt(tmp[:0], int64(v), 10)
	for n := len(digits); n < width; n++ {
		if pad == '0' && alt {
			dst = append(dst, c.loc.AltDigits[0]...)
			continue
		}
		dst = append(dst, pad)
	}
	if !alt {
		return append(dst, digits...)
	}
	for _, d := range digits {
		dst = append(dst, c.loc.AltDigits[d-'0']...)
	}
	return dst
}

// appendFraction appends prec digits of the current second, truncated.
func (c *calendar) appendFraction(dst []byte) []byte {
	if c.prec <= 0 {
		return dst
	}
	dst = append(dst, '.')
	var tmp [9]byte
	n := c.nanos
	for i := len(tmp) - 1; i >= 0; i-- {
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	if c.prec <= len(tmp) {
		return append(dst, tmp[:c.prec]...)
	}
	dst = append(dst, tmp[:]...)
	for range c.prec - len(tmp) {
		dst = append(dst, '0')
	}
	return dst
}

func appendTwoDigits(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10%10), byte('0'+v%10))
}

func appendFourDigits(dst []byte, v int) []byte {
	dst = appendTwoDigits(dst, v/100)
	return appendTwoDigits(dst, v%100)
}

func appendYear(dst []byte, year int) []byte {
	if year >= 0 && year <= 9999 {
		return appendFourDigits(dst, year)
	}
	return strconv.AppendInt(dst, int64(year), 10)
}

// appendOffset appends a UTC offset in seconds as +HHMM.
func appendOffset(dst []byte, offset int) []byte {
	if offset < 0 {
		dst = append(dst, '-')
		offset = -offset
	} else {
		dst = append(dst, '+')
	}
	dst = appendTwoDigits(dst, offset/3600)
	return appendTwoDigits(dst, offset%3600/60)
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func lowerASCII(b []byte) {
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// isoWeek returns the ISO 8601 week-based year and week number for a
// 1-based day of year and a Sunday-based weekday.
func isoWeek(year, yday, wday int) (int, int) {
	iso := wday
	if iso == 0 {
		iso = 7
	}
	w := (10 + yday - iso) / 7
	if w < 1 {
		return year - 1, weeksInYear(year - 1)
	}
	if w > weeksInYear(year) {
		return year + 1, 1
	}
	return year, w
}

// weeksInYear returns 53 for years whose 1 January or 31 December is a
// Thursday, otherwise 52.
func weeksInYear(year int) int {
	p := func(y int) int {
		return floorMod(y+floorDiv(y, 4)-floorDiv(y, 100)+floorDiv(y, 400), 7)
	}
	if p(year) == 4 || p(year-1) == 3 {
		return 53
	}
	return 52
}
