package argfmt

import "strings"

// Field describes one replacement field of a format string as the parser
// sees it. Inspect returns them without rendering anything.
type Field struct {
	Offset       int      `json:"offset" yaml:"offset"`
	Text         string   `json:"text" yaml:"text"`
	Position     int      `json:"position" yaml:"position"`
	Tag          string   `json:"tag" yaml:"tag"`
	Fill         string   `json:"fill,omitempty" yaml:"fill,omitempty"`
	Align        string   `json:"align,omitempty" yaml:"align,omitempty"`
	Sign         string   `json:"sign,omitempty" yaml:"sign,omitempty"`
	Alt          bool     `json:"alt,omitempty" yaml:"alt,omitempty"`
	Zero         bool     `json:"zero,omitempty" yaml:"zero,omitempty"`
	Width        int      `json:"width,omitempty" yaml:"width,omitempty"`
	WidthArg     int      `json:"width_arg" yaml:"width_arg"`
	Precision    int      `json:"precision" yaml:"precision"`
	PrecisionArg int      `json:"precision_arg" yaml:"precision_arg"`
	Locale       bool     `json:"locale,omitempty" yaml:"locale,omitempty"`
	Type         string   `json:"type,omitempty" yaml:"type,omitempty"`
	Directives   []string `json:"directives,omitempty" yaml:"directives,omitempty"`
	Spec         string   `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// Inspect parses format against args and reports every field. It applies
// the same checks as Format, so a format string that Inspect accepts
// fails in Format only on errors found while rendering, such as a nested
// width argument that is not an integer.
func (f *Formatter) Inspect(format string, args ...any) ([]Field, error) {
	var fields []Field
	if err := f.exec(nil, nil, format, args, &fields); err != nil {
		return fields, err
	}
	return fields, nil
}

// Inspect parses format against args with a pooled Formatter.
func Inspect(format string, args ...any) ([]Field, error) {
	f := pool.Get().(*Formatter)
	defer pool.Put(f)
	return f.Inspect(format, args...)
}

// record appends the field spanning s[open:end] to fr.fields. ts is set
// for calendar fields; other fields read fr.spec.
func (fr *frame) record(open, end int, arg *Arg, ts *TimeSpec) {
	text := fr.format[open:end]
	spec := &fr.spec
	if ts != nil {
		spec = &ts.FieldSpec
	}
	fd := Field{
		Offset:       open,
		Text:         text,
		Position:     spec.Position,
		Tag:          arg.tag.String(),
		Sign:         signName(spec.Sign),
		Alt:          spec.Alt,
		Zero:         spec.Zero,
		Width:        spec.Width,
		WidthArg:     spec.WidthArg,
		Precision:    spec.Precision,
		PrecisionArg: spec.PrecisionArg,
		Locale:       spec.Locale,
	}
	if spec.Align != AlignNone {
		fd.Align = spec.Align.String()
	}
	if spec.fillSet || spec.Fill != ' ' {
		fd.Fill = string(spec.Fill)
	}
	if spec.Type != 0 {
		fd.Type = string(rune(spec.Type))
	}
	if ts != nil {
		for _, tok := range ts.tokens {
			if tok.dir != 0 {
				fd.Directives = append(fd.Directives, tok.String())
			}
		}
	}
	if arg.tag == TagCustom {
		if i := strings.IndexByte(text, ':'); i >= 0 {
			fd.Spec = text[i+1 : len(text)-1]
		}
	}
	*fr.fields = append(*fr.fields, fd)
}

func signName(s Sign) string {
	if s == SignNone {
		return ""
	}
	return s.String()
}
