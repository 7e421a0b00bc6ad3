package argfmt

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Locale holds the numeric punctuation and calendar names used by
// localized fields. Grouping lists digit group sizes from the decimal
// point outward; the last size repeats and a size <= 0 stops grouping.
type Locale struct {
	Name           string   `yaml:"name"`
	DecimalPoint   string   `yaml:"decimal_point"`
	ThousandsSep   string   `yaml:"thousands_sep"`
	Grouping       []int    `yaml:"grouping"`
	TrueName       string   `yaml:"true_name"`
	FalseName      string   `yaml:"false_name"`
	Months         []string `yaml:"months"`
	ShortMonths    []string `yaml:"short_months"`
	Weekdays       []string `yaml:"weekdays"`
	ShortWeekdays  []string `yaml:"short_weekdays"`
	AM             string   `yaml:"am"`
	PM             string   `yaml:"pm"`
	DateTimeFormat string   `yaml:"date_time_format"`
	DateFormat     string   `yaml:"date_format"`
	TimeFormat     string   `yaml:"time_format"`
	TimeFormat12   string   `yaml:"time_format_12"`
	AltDigits      []string `yaml:"alt_digits"`

	tag language.Tag
}

// Tag returns the language tag the locale was registered under.
func (l *Locale) Tag() language.Tag { return l.tag }

// classic reports whether calendar fields may use the built-in English
// tables for this locale.
func (l *Locale) classic() bool {
	if l == nil {
		return true
	}
	switch l.Name {
	case "", "C", "POSIX", "en_US":
		return true
	}
	return false
}

var classicLocale = &Locale{
	Name:           "C",
	DecimalPoint:   ".",
	TrueName:       "true",
	FalseName:      "false",
	Months:         []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	ShortMonths:    []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Weekdays:       []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	ShortWeekdays:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	AM:             "AM",
	PM:             "PM",
	DateTimeFormat: "%a %b %e %H:%M:%S %Y",
	DateFormat:     "%m/%d/%y",
	TimeFormat:     "%H:%M:%S",
	TimeFormat12:   "%I:%M:%S %p",
	tag:            language.Und,
}

// Classic returns the "C" locale: '.' decimal point, no grouping, English
// calendar names.
func Classic() *Locale { return classicLocale }

func numberedNames(n int, suffix string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i+1) + suffix
	}
	return out
}

func builtinLocales() []*Locale {
	c := classicLocale
	return []*Locale{
		{
			Name: "en_US", DecimalPoint: ".", ThousandsSep: ",", Grouping: []int{3},
			TrueName: "true", FalseName: "false",
			Months: c.Months, ShortMonths: c.ShortMonths, Weekdays: c.Weekdays, ShortWeekdays: c.ShortWeekdays,
			AM: "AM", PM: "PM",
			DateTimeFormat: c.DateTimeFormat, DateFormat: c.DateFormat, TimeFormat: c.TimeFormat, TimeFormat12: c.TimeFormat12,
		},
		{
			Name: "de_DE", DecimalPoint: ",", ThousandsSep: ".", Grouping: []int{3},
			TrueName: "true", FalseName: "false",
			Months:        []string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
			ShortMonths:   []string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
			Weekdays:      []string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
			ShortWeekdays: []string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
			DateTimeFormat: "%a %d %b %Y %T", DateFormat: "%d.%m.%Y", TimeFormat: "%T", TimeFormat12: "%I:%M:%S %p",
		},
		{
			Name: "fr_FR", DecimalPoint: ",", ThousandsSep: "\u202f", Grouping: []int{3},
			TrueName: "true", FalseName: "false",
			Months:        []string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
			ShortMonths:   []string{"janv.", "févr.", "mars", "avril", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
			Weekdays:      []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
			ShortWeekdays: []string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
			DateTimeFormat: "%a %d %b %Y %T", DateFormat: "%d/%m/%Y", TimeFormat: "%T", TimeFormat12: "%I:%M:%S %p",
		},
		{
			Name: "hi_IN", DecimalPoint: ".", ThousandsSep: ",", Grouping: []int{3, 2},
			TrueName: "true", FalseName: "false",
			Months:        []string{"जनवरी", "फ़रवरी", "मार्च", "अप्रैल", "मई", "जून", "जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर"},
			ShortMonths:   []string{"जनवरी", "फ़रवरी", "मार्च", "अप्रैल", "मई", "जून", "जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर"},
			Weekdays:      []string{"रविवार", "सोमवार", "मंगलवार", "बुधवार", "गुरुवार", "शुक्रवार", "शनिवार"},
			ShortWeekdays: []string{"रवि", "सोम", "मंगल", "बुध", "गुरु", "शुक्र", "शनि"},
			AM:            "पूर्वाह्न", PM: "अपराह्न",
			DateTimeFormat: "%A %d %b %Y %I:%M:%S %p", DateFormat: "%d/%m/%y", TimeFormat: "%I:%M:%S %p", TimeFormat12: "%I:%M:%S %p",
			AltDigits: []string{"०", "१", "२", "३", "४", "५", "६", "७", "८", "९"},
		},
		{
			Name: "zh_HK", DecimalPoint: ".", ThousandsSep: ",", Grouping: []int{3},
			TrueName: "true", FalseName: "false",
			Months:        numberedNames(12, "月"),
			ShortMonths:   numberedNames(12, "月"),
			Weekdays:      []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"},
			ShortWeekdays: []string{"日", "一", "二", "三", "四", "五", "六"},
			AM:            "上午", PM: "下午",
			DateTimeFormat: "%Y年%m月%d日 %A %H:%M:%S", DateFormat: "%Y年%m月%d日 %A", TimeFormat: "%p %I:%M:%S", TimeFormat12: "%p %I:%M:%S",
		},
		{
			Name: "ja_JP", DecimalPoint: ".", ThousandsSep: ",", Grouping: []int{3},
			TrueName: "true", FalseName: "false",
			Months:        numberedNames(12, "月"),
			ShortMonths:   numberedNames(12, "月"),
			Weekdays:      []string{"日曜日", "月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日"},
			ShortWeekdays: []string{"日", "月", "火", "水", "木", "金", "土"},
			AM:            "午前", PM: "午後",
			DateTimeFormat: "%Y年%m月%d日 %H時%M分%S秒", DateFormat: "%Y年%m月%d日", TimeFormat: "%H時%M分%S秒", TimeFormat12: "%p%I時%M分%S秒",
		},
	}
}

var (
	registryMu   sync.RWMutex
	registry     = map[string]*Locale{}
	registryTags []language.Tag
	matcher      language.Matcher
)

func init() {
	for _, l := range builtinLocales() {
		if err := RegisterLocale(l); err != nil {
			panic(err)
		}
	}
}

// localeKey turns POSIX style names ("de_DE.UTF-8@euro") and BCP 47 tags
// ("de-DE") into a language tag.
func localeKey(name string) (language.Tag, error) {
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	return language.Parse(strings.ReplaceAll(name, "_", "-"))
}

func isClassicName(name string) bool {
	switch name {
	case "", "C", "POSIX", "C.UTF-8", "C.utf8":
		return true
	}
	return false
}

// RegisterLocale adds l to the locale registry, replacing any locale with
// the same language tag. Missing calendar tables are taken from the C
// locale.
func RegisterLocale(l *Locale) error {
	tag, err := localeKey(l.Name)
	if err != nil {
		return &Error{Kind: KindLocaleNotFound, Offset: -1, Detail: l.Name, Cause: err}
	}
	l.tag = tag
	l.fillDefaults()

	registryMu.Lock()
	defer registryMu.Unlock()
	key := tag.String()
	if _, ok := registry[key]; !ok {
		registryTags = append(registryTags, tag)
	}
	registry[key] = l
	matcher = language.NewMatcher(registryTags)
	Logger().Debug("locale registered", zap.String("name", l.Name), zap.String("tag", key))
	return nil
}

func (l *Locale) fillDefaults() {
	c := classicLocale
	if l.DecimalPoint == "" {
		l.DecimalPoint = c.DecimalPoint
	}
	if l.TrueName == "" {
		l.TrueName = c.TrueName
	}
	if l.FalseName == "" {
		l.FalseName = c.FalseName
	}
	if len(l.Months) != 12 {
		l.Months = c.Months
	}
	if len(l.ShortMonths) != 12 {
		l.ShortMonths = c.ShortMonths
	}
	if len(l.Weekdays) != 7 {
		l.Weekdays = c.Weekdays
	}
	if len(l.ShortWeekdays) != 7 {
		l.ShortWeekdays = c.ShortWeekdays
	}
	if l.DateTimeFormat == "" {
		l.DateTimeFormat = c.DateTimeFormat
	}
	if l.DateFormat == "" {
		l.DateFormat = c.DateFormat
	}
	if l.TimeFormat == "" {
		l.TimeFormat = c.TimeFormat
	}
	if l.TimeFormat12 == "" {
		l.TimeFormat12 = c.TimeFormat12
	}
	if len(l.AltDigits) != 0 && len(l.AltDigits) != 10 {
		l.AltDigits = nil
	}
}

// LookupLocale finds a registered locale by POSIX name or BCP 47 tag.
// "", "C" and "POSIX" name the classic locale. When there is no exact
// match the closest registered locale of the same language is returned.
func LookupLocale(name string) (*Locale, error) {
	if isClassicName(name) {
		return classicLocale, nil
	}
	tag, err := localeKey(name)
	if err != nil {
		return nil, &Error{Kind: KindLocaleNotFound, Offset: -1, Detail: name, Cause: err}
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	if l, ok := registry[tag.String()]; ok {
		return l, nil
	}
	if matcher != nil {
		_, idx, conf := matcher.Match(tag)
		if conf >= language.High {
			return registry[registryTags[idx].String()], nil
		}
	}
	return nil, &Error{Kind: KindLocaleNotFound, Offset: -1, Detail: name}
}

var (
	defaultLocale     *Locale
	defaultLocaleOnce sync.Once
)

// DefaultLocale returns the process locale used by 'L' fields when no
// locale is given. It is read once from LC_ALL, LC_NUMERIC or LANG and
// falls back to the classic locale.
func DefaultLocale() *Locale {
	defaultLocaleOnce.Do(func() {
		defaultLocale = classicLocale
		for _, env := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
			name := os.Getenv(env)
			if name == "" {
				continue
			}
			if l, err := LookupLocale(name); err == nil {
				defaultLocale = l
			} else {
				Logger().Debug("process locale unavailable", zap.String(env, name), zap.Error(err))
			}
			break
		}
		Logger().Debug("default locale initialized", zap.String("name", defaultLocale.Name))
	})
	return defaultLocale
}
