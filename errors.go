package argfmt

import (
	"strconv"
	"strings"
)

// ErrorKind names one class of formatting failure.
type ErrorKind string

// Format errors raised while parsing a format string.
const (
	KindMissingClosingBracket   ErrorKind = "missing_closing_bracket"
	KindPositionFieldSpec       ErrorKind = "position_field_spec"
	KindPositionFieldMode       ErrorKind = "position_field_mode"
	KindPositionFieldNoPosition ErrorKind = "position_field_no_position"
	KindPositionFieldRunon      ErrorKind = "position_field_runon"
	KindMaxArgsExceeded         ErrorKind = "max_args_exceeded"
	KindInvalidFillCharacter    ErrorKind = "invalid_fill_character"
	KindInvalidAltType          ErrorKind = "invalid_alt_type"
	KindInvalidPrecisionType    ErrorKind = "invalid_precision_type"
	KindInvalidLocaleType       ErrorKind = "invalid_locale_type"
	KindInvalidIntSpec          ErrorKind = "invalid_int_spec"
	KindInvalidFloatSpec        ErrorKind = "invalid_float_spec"
	KindInvalidStringSpec       ErrorKind = "invalid_string_spec"
	KindInvalidBoolSpec         ErrorKind = "invalid_bool_spec"
	KindInvalidCharSpec         ErrorKind = "invalid_char_spec"
	KindInvalidPointerSpec      ErrorKind = "invalid_pointer_spec"
	KindInvalidCtimeSpec        ErrorKind = "invalid_ctime_spec"
	KindMissingCtimeSpec        ErrorKind = "missing_ctime_spec"
	KindInvalidCodepoint        ErrorKind = "invalid_codepoint"
)

// Contract errors raised by the argument store and locale registry.
const (
	KindArgumentIndex   ErrorKind = "argument_index"
	KindArgumentType    ErrorKind = "argument_type"
	KindUnsupportedType ErrorKind = "unsupported_type"
	KindLocaleNotFound  ErrorKind = "locale_not_found"
)

var messages = map[ErrorKind]string{
	KindMissingClosingBracket:   "missing closing '}' in argument spec field",
	KindPositionFieldSpec:       "position field may only be empty or followed by ':' or '}' in automatic indexing mode",
	KindPositionFieldMode:       "cannot mix automatic and manual argument indexing",
	KindPositionFieldNoPosition: "missing position in manual indexing mode",
	KindPositionFieldRunon:      "missing ':' or '}' after position field",
	KindMaxArgsExceeded:         "argument count or position exceeds the supported maximum of 25 arguments",
	KindInvalidFillCharacter:    "'{' and '}' are not valid fill characters",
	KindInvalidAltType:          "alternate form is only valid for integer, floating point, bool and char types",
	KindInvalidPrecisionType:    "precision is only valid for string and floating point types",
	KindInvalidLocaleType:       "locale flag is not valid for char, pointer, empty or string types",
	KindInvalidIntSpec:          "invalid integer type specifier",
	KindInvalidFloatSpec:        "invalid floating point type specifier",
	KindInvalidStringSpec:       "invalid string type specifier",
	KindInvalidBoolSpec:         "invalid bool type specifier",
	KindInvalidCharSpec:         "invalid char type specifier",
	KindInvalidPointerSpec:      "invalid pointer type specifier",
	KindInvalidCtimeSpec:        "invalid calendar time specifier",
	KindMissingCtimeSpec:        "missing calendar time specifier after '%'",
	KindInvalidCodepoint:        "malformed code point in text argument",
	KindArgumentIndex:           "argument index out of range",
	KindArgumentType:            "argument type mismatch",
	KindUnsupportedType:         "unsupported argument type",
	KindLocaleNotFound:          "locale not found",
}

// Error describes a failed formatting call. Offset is the byte offset into
// the format string where the problem was found, or -1 when it does not
// apply.
type Error struct {
	Cause  error
	Kind   ErrorKind
	Detail string
	Offset int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("argfmt: ")
	if msg, ok := messages[e.Kind]; ok {
		b.WriteString(msg)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel errors for use with errors.Is.
var (
	ErrMissingClosingBracket   = &Error{Kind: KindMissingClosingBracket, Offset: -1}
	ErrPositionFieldSpec       = &Error{Kind: KindPositionFieldSpec, Offset: -1}
	ErrPositionFieldMode       = &Error{Kind: KindPositionFieldMode, Offset: -1}
	ErrPositionFieldNoPosition = &Error{Kind: KindPositionFieldNoPosition, Offset: -1}
	ErrPositionFieldRunon      = &Error{Kind: KindPositionFieldRunon, Offset: -1}
	ErrMaxArgsExceeded         = &Error{Kind: KindMaxArgsExceeded, Offset: -1}
	ErrInvalidFillCharacter    = &Error{Kind: KindInvalidFillCharacter, Offset: -1}
	ErrInvalidAltType          = &Error{Kind: KindInvalidAltType, Offset: -1}
	ErrInvalidPrecisionType    = &Error{Kind: KindInvalidPrecisionType, Offset: -1}
	ErrInvalidLocaleType       = &Error{Kind: KindInvalidLocaleType, Offset: -1}
	ErrInvalidIntSpec          = &Error{Kind: KindInvalidIntSpec, Offset: -1}
	ErrInvalidFloatSpec        = &Error{Kind: KindInvalidFloatSpec, Offset: -1}
	ErrInvalidStringSpec       = &Error{Kind: KindInvalidStringSpec, Offset: -1}
	ErrInvalidBoolSpec         = &Error{Kind: KindInvalidBoolSpec, Offset: -1}
	ErrInvalidCharSpec         = &Error{Kind: KindInvalidCharSpec, Offset: -1}
	ErrInvalidPointerSpec      = &Error{Kind: KindInvalidPointerSpec, Offset: -1}
	ErrInvalidCtimeSpec        = &Error{Kind: KindInvalidCtimeSpec, Offset: -1}
	ErrMissingCtimeSpec        = &Error{Kind: KindMissingCtimeSpec, Offset: -1}
	ErrInvalidCodepoint        = &Error{Kind: KindInvalidCodepoint, Offset: -1}
	ErrArgumentIndex           = &Error{Kind: KindArgumentIndex, Offset: -1}
	ErrArgumentType            = &Error{Kind: KindArgumentType, Offset: -1}
	ErrUnsupportedType         = &Error{Kind: KindUnsupportedType, Offset: -1}
	ErrLocaleNotFound          = &Error{Kind: KindLocaleNotFound, Offset: -1}
)

func newError(kind ErrorKind, offset int, detail string) *Error {
	return &Error{Kind: kind, Offset: offset, Detail: detail}
}
