package argfmt

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type localeFile struct {
	Locales []*Locale `yaml:"locales"`
}

// LoadLocales reads locale definitions from YAML and registers them. The
// document is either a list of locales or a mapping with a "locales" key:
//
//	locales:
//	  - name: nl_NL
//	    decimal_point: ","
//	    thousands_sep: "."
//	    grouping: [3]
func LoadLocales(r io.Reader) ([]*Locale, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("argfmt: read locales: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("argfmt: parse locales: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var locales []*Locale
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		err = node.Content[0].Decode(&locales)
	case yaml.MappingNode:
		var f localeFile
		err = node.Content[0].Decode(&f)
		locales = f.Locales
	default:
		err = errors.New("expected a list of locales or a mapping with a locales key")
	}
	if err != nil {
		return nil, fmt.Errorf("argfmt: decode locales: %w", err)
	}

	for _, l := range locales {
		if l == nil || l.Name == "" {
			return nil, fmt.Errorf("argfmt: decode locales: %w", &Error{Kind: KindLocaleNotFound, Offset: -1, Detail: "locale without a name"})
		}
		if err := RegisterLocale(l); err != nil {
			return nil, err
		}
	}
	Logger().Debug("locales loaded", zap.Int("count", len(locales)))
	return locales, nil
}
