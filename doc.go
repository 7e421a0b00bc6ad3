// Package argfmt renders "{}" format strings at run time.
//
// A format string mixes literal text with replacement fields. "{{" and
// "}}" produce literal braces; a lone "}" is copied as is. Each field
// selects an argument and optionally describes how to render it:
//
//	{[position][:spec]}
//
// Positions are either all automatic ("{} {}") or all manual ("{1} {0}")
// within one format string. At most [MaxArgs] arguments are accepted.
//
// # Standard spec
//
//	[[fill]align][sign][#][0][width][.precision][L][type]
//
//   - align is '<', '>' or '^'. fill is any character except '{' and '}'.
//   - sign is '+', '-' or ' ' and applies to numbers.
//   - '#' selects the alternate form: 0b/0x/0 prefixes for integers and a
//     forced decimal point for floats.
//   - '0' pads numbers with zeros after the sign and prefix.
//   - width and precision are decimal literals or nested references such
//     as "{}" or "{2}" to integer arguments.
//   - 'L' localizes grouping, decimal point and boolean names.
//
// Type letters depend on the argument:
//
//	integers  b B c d o x X
//	floats    a A e E f F g G
//	strings   s
//	bool      s b B d o x X
//	Char      c b B d o x X
//	pointers  p
//
// Without a type, floats use the shorter of fixed and scientific notation,
// strings and booleans align left and numbers align right.
//
//	argfmt.Format("{:*^9}", "mid")      // "***mid***"
//	argfmt.Format("{:+#010x}", 255)     // "+0x00000ff"
//	argfmt.Format("{0:.{1}f}", 3.14159, 2) // "3.14"
//
// # Calendar fields
//
// A [time.Time] argument takes a strftime pattern after the usual fill,
// align, width and precision:
//
//	argfmt.Format("{:%Y-%m-%d %H:%M}", t)
//	argfmt.Format("{:>20.3%T}", t)
//
// 'E' and 'O' modifiers select era and alternative digit forms from the
// locale. A precision appends that many sub-second digits to %S. Zone
// directives read the Formatter's [Zone].
//
// # Locales
//
// A [Locale] supplies the separators, grouping and calendar names used by
// 'L' fields and by calendar fields. Locales are looked up by name with
// [LookupLocale] and more can be added with [RegisterLocale] or
// [LoadLocales].
//
// # User-defined types
//
// Types registered with [Register] or implementing [Formattable] receive
// the raw spec text and a [Context]. Context.Format may be called from
// inside a formatter; the nested call has its own arguments and does not
// disturb the field being rendered.
//
// # Sinks
//
// Output goes to any [io.Writer]. [UTF16Buffer], [UTF32Buffer] and
// [NewEncodedWriter] transcode the UTF-8 produced by the formatter into
// wider code units.
package argfmt
