package argfmt

import (
	"math/big"
	"strconv"
	"time"
	"unsafe"
)

// MaxArgs is the capacity of an argument store. Positions run from 0 to
// MaxArgs-1.
const MaxArgs = 25

const maxArgIndex = MaxArgs - 1

// Tag identifies the type held by an argument slot.
type Tag uint8

const (
	TagEmpty        Tag = iota // nil
	TagString                  // text owned by the store after transcoding
	TagBytes                   // borrowed UTF-8 []byte
	TagStringView              // borrowed Go string
	TagInt32                   // int8, int16, int32
	TagUint32                  // uint8, uint16, uint32
	TagInt64                   // int, int64
	TagUint64                  // uint, uint64
	TagBool                    // bool
	TagChar                    // Char
	TagFloat32                 // float32
	TagFloat64                 // float64
	TagExtended                // *big.Float
	TagConstPointer            // uintptr
	TagPointer                 // unsafe.Pointer
	TagTime                    // time.Time, *time.Time
	TagCustom                  // registered or Formattable values
)

var tagNames = [...]string{
	TagEmpty:        "empty",
	TagString:       "string",
	TagBytes:        "bytes",
	TagStringView:   "string_view",
	TagInt32:        "int32",
	TagUint32:       "uint32",
	TagInt64:        "int64",
	TagUint64:       "uint64",
	TagBool:         "bool",
	TagChar:         "char",
	TagFloat32:      "float32",
	TagFloat64:      "float64",
	TagExtended:     "extended",
	TagConstPointer: "const_pointer",
	TagPointer:      "pointer",
	TagTime:         "time",
	TagCustom:       "custom",
}

// String returns the tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag(" + strconv.Itoa(int(t)) + ")"
}

func (t Tag) isText() bool {
	return t == TagString || t == TagBytes || t == TagStringView
}

func (t Tag) isInteger() bool {
	switch t {
	case TagInt32, TagUint32, TagInt64, TagUint64:
		return true
	}
	return false
}

func (t Tag) isFloat() bool {
	return t == TagFloat32 || t == TagFloat64 || t == TagExtended
}

func (t Tag) isPointer() bool {
	return t == TagConstPointer || t == TagPointer
}

// Char is a single character argument. Plain rune values are int32 and
// format as integers; wrap them in Char to format them as text.
type Char rune

// Arg is one captured argument: a type tag plus the value stored in the
// field that tag selects.
type Arg struct {
	t   time.Time
	ptr unsafe.Pointer
	x   *big.Float
	c   customValue
	s   string
	b   []byte
	i   int64
	u   uint64
	f   float64
	tag Tag
}

// Tag returns the type tag of the slot.
func (a *Arg) Tag() Tag { return a.tag }

func (a *Arg) mismatch(want Tag) error {
	return &Error{
		Kind:   KindArgumentType,
		Offset: -1,
		Detail: "slot holds " + a.tag.String() + ", not " + want.String(),
	}
}

// Int32 returns the value of a TagInt32 slot.
func (a *Arg) Int32() (int32, error) {
	if a.tag != TagInt32 {
		return 0, a.mismatch(TagInt32)
	}
	return int32(a.i), nil
}

// Uint32 returns the value of a TagUint32 slot.
func (a *Arg) Uint32() (uint32, error) {
	if a.tag != TagUint32 {
		return 0, a.mismatch(TagUint32)
	}
	return uint32(a.u), nil
}

// Int64 returns the value of a TagInt64 slot.
func (a *Arg) Int64() (int64, error) {
	if a.tag != TagInt64 {
		return 0, a.mismatch(TagInt64)
	}
	return a.i, nil
}

// Uint64 returns the value of a TagUint64 slot.
func (a *Arg) Uint64() (uint64, error) {
	if a.tag != TagUint64 {
		return 0, a.mismatch(TagUint64)
	}
	return a.u, nil
}

// Bool returns the value of a TagBool slot.
func (a *Arg) Bool() (bool, error) {
	if a.tag != TagBool {
		return false, a.mismatch(TagBool)
	}
	return a.i != 0, nil
}

// Char returns the value of a TagChar slot.
func (a *Arg) Char() (Char, error) {
	if a.tag != TagChar {
		return 0, a.mismatch(TagChar)
	}
	return Char(a.i), nil
}

// Float32 returns the value of a TagFloat32 slot.
func (a *Arg) Float32() (float32, error) {
	if a.tag != TagFloat32 {
		return 0, a.mismatch(TagFloat32)
	}
	return float32(a.f), nil
}

// Float64 returns the value of a TagFloat64 slot.
func (a *Arg) Float64() (float64, error) {
	if a.tag != TagFloat64 {
		return 0, a.mismatch(TagFloat64)
	}
	return a.f, nil
}

// Extended returns the value of a TagExtended slot.
func (a *Arg) Extended() (*big.Float, error) {
	if a.tag != TagExtended {
		return nil, a.mismatch(TagExtended)
	}
	return a.x, nil
}

// ConstPointer returns the value of a TagConstPointer slot.
func (a *Arg) ConstPointer() (uintptr, error) {
	if a.tag != TagConstPointer {
		return 0, a.mismatch(TagConstPointer)
	}
	return uintptr(a.u), nil
}

// Pointer returns the value of a TagPointer slot.
func (a *Arg) Pointer() (unsafe.Pointer, error) {
	if a.tag != TagPointer {
		return nil, a.mismatch(TagPointer)
	}
	return a.ptr, nil
}

// Time returns the value of a TagTime slot.
func (a *Arg) Time() (time.Time, error) {
	if a.tag != TagTime {
		return time.Time{}, a.mismatch(TagTime)
	}
	return a.t, nil
}

// Text returns the value of a TagString, TagBytes or TagStringView slot.
func (a *Arg) Text() (string, error) {
	switch a.tag {
	case TagString, TagStringView:
		return a.s, nil
	case TagBytes:
		return string(a.b), nil
	default:
		return "", a.mismatch(TagStringView)
	}
}

// Custom returns the value held by a TagCustom slot.
func (a *Arg) Custom() (any, error) {
	if a.tag != TagCustom {
		return nil, a.mismatch(TagCustom)
	}
	return a.c.value, nil
}

// textBytes returns the UTF-8 bytes of a text slot without copying when
// the slot already holds bytes.
func (a *Arg) textBytes(scratch []byte) []byte {
	if a.tag == TagBytes {
		return a.b
	}
	return append(scratch[:0], a.s...)
}

// integer returns a non-negative int for nested width and precision
// references.
func (a *Arg) integer() (int, bool) {
	switch a.tag {
	case TagInt32, TagInt64:
		if a.i < 0 {
			return 0, false
		}
		return int(a.i), true
	case TagUint32, TagUint64:
		if a.u > uint64(int(^uint(0)>>1)) {
			return 0, false
		}
		return int(a.u), true
	}
	return 0, false
}

func (a *Arg) set(v any) error {
	switch x := v.(type) {
	case nil:
		a.tag = TagEmpty
	case string:
		a.tag, a.s = TagStringView, x
	case []byte:
		body, s, transcoded, err := normalizeBytes(x)
		if err != nil {
			return err
		}
		if transcoded {
			a.tag, a.s = TagString, s
		} else {
			a.tag, a.b = TagBytes, body
		}
	case []uint16:
		s, err := decodeUTF16Units(x)
		if err != nil {
			return err
		}
		a.tag, a.s = TagString, s
	case []rune:
		s, err := decodeUTF32Units(x)
		if err != nil {
			return err
		}
		a.tag, a.s = TagString, s
	case int8:
		a.tag, a.i = TagInt32, int64(x)
	case int16:
		a.tag, a.i = TagInt32, int64(x)
	case int32:
		a.tag, a.i = TagInt32, int64(x)
	case int:
		a.tag, a.i = TagInt64, int64(x)
	case int64:
		a.tag, a.i = TagInt64, x
	case uint8:
		a.tag, a.u = TagUint32, uint64(x)
	case uint16:
		a.tag, a.u = TagUint32, uint64(x)
	case uint32:
		a.tag, a.u = TagUint32, uint64(x)
	case uint:
		a.tag, a.u = TagUint64, uint64(x)
	case uint64:
		a.tag, a.u = TagUint64, x
	case bool:
		a.tag, a.i = TagBool, 0
		if x {
			a.i = 1
		}
	case Char:
		a.tag, a.i = TagChar, int64(x)
	case float32:
		a.tag, a.f = TagFloat32, float64(x)
	case float64:
		a.tag, a.f = TagFloat64, x
	case *big.Float:
		if x == nil {
			a.tag = TagEmpty
			return nil
		}
		a.tag, a.x = TagExtended, x
	case uintptr:
		a.tag, a.u = TagConstPointer, uint64(x)
	case unsafe.Pointer:
		a.tag, a.ptr = TagPointer, x
	case time.Time:
		a.tag, a.t = TagTime, x
	case *time.Time:
		if x == nil {
			a.tag = TagEmpty
			return nil
		}
		a.tag, a.t = TagTime, *x
	default:
		cv, ok := lookupCustom(v)
		if !ok {
			return &Error{Kind: KindUnsupportedType, Offset: -1, Detail: typeName(v)}
		}
		a.tag, a.c = TagCustom, cv
	}
	return nil
}

// ArgStore is a fixed-capacity set of captured arguments. It is reset at
// the start of every formatting call that uses it.
type ArgStore struct {
	args [MaxArgs]Arg
	n    int
}

// Len returns the number of captured arguments.
func (s *ArgStore) Len() int { return s.n }

// At returns the slot at position i.
func (s *ArgStore) At(i int) (*Arg, error) {
	if i < 0 || i >= s.n {
		return nil, &Error{
			Kind:   KindArgumentIndex,
			Offset: -1,
			Detail: "position " + strconv.Itoa(i) + " with " + strconv.Itoa(s.n) + " arguments",
		}
	}
	return &s.args[i], nil
}

func (s *ArgStore) reset() {
	clear(s.args[:s.n])
	s.n = 0
}

// Capture resets the store and records args.
func (s *ArgStore) Capture(args ...any) error {
	s.reset()
	if len(args) > MaxArgs {
		return &Error{
			Kind:   KindMaxArgsExceeded,
			Offset: -1,
			Detail: strconv.Itoa(len(args)) + " arguments",
		}
	}
	for i, v := range args {
		if err := s.args[i].set(v); err != nil {
			s.n = i
			return err
		}
	}
	s.n = len(args)
	return nil
}
