package argfmt

import (
	"io"
	"reflect"
	"sync"
)

// TypeFormatter formats values of a user-defined type. A new TypeFormatter
// is created for every field: Parse receives the field's spec (the text
// between ':' and the closing '}', empty for "{}") and Format renders the
// value using what Parse stored.
type TypeFormatter[T any] interface {
	Parse(spec string) error
	Format(v T, ctx *Context) error
}

// Formattable is implemented by values that format themselves. It is
// checked when no TypeFormatter is registered for the value's type.
type Formattable interface {
	FormatArg(spec string, ctx *Context) error
}

// customValue refers to a captured user-defined argument. It does not own
// the value and is only valid during the call that captured it.
type customValue struct {
	value  any
	format func(spec string, ctx *Context) error
}

var (
	customMu    sync.RWMutex
	customTypes = map[reflect.Type]func(v any) customValue{}
)

// Register installs newFormatter as the formatter for arguments of type T
// and *T.
func Register[T any](newFormatter func() TypeFormatter[T]) {
	bind := func(v any) customValue {
		return customValue{
			value: v,
			format: func(spec string, ctx *Context) error {
				var val T
				switch x := v.(type) {
				case T:
					val = x
				case *T:
					val = *x
				}
				tf := newFormatter()
				if err := tf.Parse(spec); err != nil {
					return err
				}
				return tf.Format(val, ctx)
			},
		}
	}
	customMu.Lock()
	customTypes[reflect.TypeFor[T]()] = bind
	customMu.Unlock()
}

func lookupCustom(v any) (customValue, bool) {
	typ := reflect.TypeOf(v)
	customMu.RLock()
	bind, ok := customTypes[typ]
	if !ok && typ.Kind() == reflect.Pointer && !reflect.ValueOf(v).IsNil() {
		bind, ok = customTypes[typ.Elem()]
	}
	customMu.RUnlock()
	if ok {
		return bind(v), true
	}
	if f, ok := v.(Formattable); ok {
		return customValue{value: v, format: f.FormatArg}, true
	}
	return customValue{}, false
}

func typeName(v any) string {
	return reflect.TypeOf(v).String()
}

// Context is handed to user-defined formatters. It writes to the sink of
// the call being formatted and can issue nested formatting calls that do
// not disturb that call's arguments.
type Context struct {
	fr *frame
}

// Write writes p to the active sink, transcoding when the sink is UTF-16
// or UTF-32.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.fr.out.write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString writes s to the active sink.
func (c *Context) WriteString(s string) (int, error) {
	if err := c.fr.out.writeString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// Format renders a nested format string into the active sink using the
// active locale.
func (c *Context) Format(format string, args ...any) error {
	return c.fr.f.run(c.fr.w, c.fr.loc, format, args)
}

// Locale returns the locale of the active call, or nil when none was
// given.
func (c *Context) Locale() *Locale { return c.fr.loc }

// Writer returns the sink of the active call.
func (c *Context) Writer() io.Writer { return c.fr.w }

// Formatter returns the formatter running the active call.
func (c *Context) Formatter() *Formatter { return c.fr.f }

func (fr *frame) renderCustom(arg *Arg, spec string) error {
	f := fr.f
	f.inCustom++
	defer func() { f.inCustom-- }()
	fr.ctx.fr = fr
	return arg.c.format(spec, &fr.ctx)
}
