package argfmt

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Formatter renders format strings. It keeps scratch buffers and argument
// stores between calls, so reusing one Formatter avoids allocations. A
// Formatter must not be used from several goroutines at once; the
// package-level functions draw Formatters from a pool and are safe for
// concurrent use.
type Formatter struct {
	loc      *Locale
	zoneSrc  Zone
	clock    func() time.Time
	frames   []*frame
	depth    int
	inCustom int
	forced   bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocale sets the locale used when a call does not pass one.
func WithLocale(l *Locale) Option {
	return func(f *Formatter) { f.loc = l }
}

// WithZone sets the zone rendered by %z and %Z. The default is LocalZone.
func WithZone(z Zone) Option {
	return func(f *Formatter) { f.zoneSrc = z }
}

// WithClock sets the clock that supplies sub-second digits for calendar
// fields with a precision. The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) { f.clock = now }
}

// New returns a Formatter configured by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) zone() Zone {
	if f.zoneSrc != nil {
		return f.zoneSrc
	}
	return LocalZone()
}

func (f *Formatter) now() time.Time {
	if f.clock != nil {
		return f.clock()
	}
	return time.Now()
}

// Format renders format with args and returns the result.
func (f *Formatter) Format(format string, args ...any) (string, error) {
	var b strings.Builder
	if err := f.run(&b, nil, format, args); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatLocale renders format with args using loc for localized fields.
func (f *Formatter) FormatLocale(loc *Locale, format string, args ...any) (string, error) {
	var b strings.Builder
	if err := f.run(&b, loc, format, args); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatTo renders format with args into w. Output written before an
// error is not rolled back.
func (f *Formatter) FormatTo(w io.Writer, format string, args ...any) error {
	return f.run(w, nil, format, args)
}

// FormatToLocale renders format with args into w using loc for localized
// fields.
func (f *Formatter) FormatToLocale(w io.Writer, loc *Locale, format string, args ...any) error {
	return f.run(w, loc, format, args)
}

// EnableCustomFormatProc marks the formatter as running inside a
// user-defined formatter. While enabled, calls use a nested argument
// store and leave the primary one untouched.
func (f *Formatter) EnableCustomFormatProc(enable bool) { f.forced = enable }

// IsCustomFormatProcActive reports whether a user-defined formatter is
// running or EnableCustomFormatProc(true) is in effect.
func (f *Formatter) IsCustomFormatProcActive() bool { return f.forced || f.inCustom > 0 }

// frame is the state of one formatting call. Nested calls made from user
// formatters get their own frame, so the caller's arguments, indexing
// mode and buffers survive them.
type frame struct {
	f       *Formatter
	w       io.Writer
	loc     *Locale
	fields  *[]Field
	format  string
	ctx     Context
	out     sink
	store   ArgStore
	spec    FieldSpec
	ts      TimeSpec
	cal     calendar
	buf     []byte
	aux     []byte
	scratch [66]byte
	next    int
	mode    indexMode
}

func (f *Formatter) frameAt(depth int) *frame {
	for len(f.frames) <= depth {
		f.frames = append(f.frames, &frame{f: f})
	}
	return f.frames[depth]
}

func (f *Formatter) run(w io.Writer, loc *Locale, format string, args []any) error {
	return f.exec(w, loc, format, args, nil)
}

func (f *Formatter) exec(w io.Writer, loc *Locale, format string, args []any, fields *[]Field) error {
	depth := f.depth
	if f.forced && depth == 0 {
		depth = 1
	}
	fr := f.frameAt(depth)
	prev := f.depth
	f.depth = depth + 1
	defer func() {
		f.depth = prev
		fr.release()
	}()

	if loc == nil {
		loc = f.loc
	}
	fr.w, fr.loc, fr.format, fr.fields = w, loc, format, fields
	fr.mode, fr.next = modeNone, 0
	fr.out.bind(w)
	if err := fr.store.Capture(args...); err != nil {
		return err
	}
	return fr.scan()
}

// release drops references to the caller's values.
func (fr *frame) release() {
	fr.store.reset()
	fr.w, fr.loc, fr.fields, fr.format = nil, nil, nil, ""
	fr.out = sink{}
	fr.ctx = Context{}
}

func (fr *frame) literal(s string) error {
	if fr.fields != nil {
		return nil
	}
	return fr.out.writeString(s)
}

// scan walks the format string, copying literal text and rendering each
// field in turn.
func (fr *frame) scan() error {
	s := fr.format
	lit := 0
	for i := 0; i < len(s); {
		j := strings.IndexAny(s[i:], "{}")
		if j < 0 {
			break
		}
		i += j
		if i+1 < len(s) && s[i+1] == s[i] {
			if err := fr.literal(s[lit : i+1]); err != nil {
				return err
			}
			i += 2
			lit = i
			continue
		}
		if s[i] == '}' {
			i++
			continue
		}
		if err := fr.literal(s[lit:i]); err != nil {
			return err
		}
		end, err := fr.field(i)
		if err != nil {
			return err
		}
		i, lit = end, end
	}
	return fr.literal(s[lit:])
}

// field parses and renders the field opening at s[open] and returns the
// index after its closing '}'.
func (fr *frame) field(open int) (int, error) {
	s := fr.format
	pos, i, err := fr.parsePosition(open + 1)
	if err != nil {
		return i, err
	}
	arg, err := fr.store.At(pos)
	if err != nil {
		err.(*Error).Offset = open
		return i, err
	}

	if s[i] == '}' {
		if fr.fields != nil {
			fr.spec.reset(pos)
			fr.record(open, i+1, arg, nil)
			return i + 1, nil
		}
		return i + 1, fr.renderSimple(arg, pos)
	}

	i++
	switch arg.tag {
	case TagCustom:
		end := findClose(s, i)
		if end < 0 {
			return len(s), newError(KindMissingClosingBracket, open, "")
		}
		if fr.fields != nil {
			fr.spec.reset(pos)
			fr.record(open, end+1, arg, nil)
			return end + 1, nil
		}
		return end + 1, fr.renderCustom(arg, s[i:end])
	case TagTime:
		end, err := fr.parseTimeSpec(i, pos)
		if err != nil {
			return end, err
		}
		if fr.fields != nil {
			fr.record(open, end+1, arg, &fr.ts)
			return end + 1, nil
		}
		return end + 1, fr.renderTime(arg)
	default:
		fr.spec.reset(pos)
		end, err := fr.parseSpec(i, arg.tag)
		if err != nil {
			return end, err
		}
		if fr.fields != nil {
			fr.record(open, end+1, arg, nil)
			return end + 1, nil
		}
		return end + 1, fr.render(arg)
	}
}

var pool = sync.Pool{New: func() any { return New() }}

// Format renders format with args and returns the result.
func Format(format string, args ...any) (string, error) {
	f := pool.Get().(*Formatter)
	defer pool.Put(f)
	return f.Format(format, args...)
}

// FormatLocale renders format with args using loc for localized fields.
func FormatLocale(loc *Locale, format string, args ...any) (string, error) {
	f := pool.Get().(*Formatter)
	defer pool.Put(f)
	return f.FormatLocale(loc, format, args...)
}

// FormatTo renders format with args into w.
func FormatTo(w io.Writer, format string, args ...any) error {
	f := pool.Get().(*Formatter)
	defer pool.Put(f)
	return f.FormatTo(w, format, args...)
}

// FormatToLocale renders format with args into w using loc for localized
// fields.
func FormatToLocale(w io.Writer, loc *Locale, format string, args ...any) error {
	f := pool.Get().(*Formatter)
	defer pool.Put(f)
	return f.FormatToLocale(w, loc, format, args...)
}
