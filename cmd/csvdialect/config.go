package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/tabforge/dialect-csv/pkg/csv"
)

// loadDialect builds the input dialect from three layers, lowest priority
// first: built-in defaults, the optional YAML dialect file, then flags.
func loadDialect(flags *pflag.FlagSet, dialectFile string) (csv.Dialect, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"preset": "default",
	}, "."), nil); err != nil {
		return csv.Dialect{}, err
	}
	if dialectFile != "" {
		if err := k.Load(file.Provider(dialectFile), yaml.Parser()); err != nil {
			return csv.Dialect{}, fmt.Errorf("loading dialect file: %w", err)
		}
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return csv.Dialect{}, err
	}

	return dialectFromKoanf(k)
}

func dialectFromKoanf(k *koanf.Koanf) (csv.Dialect, error) {
	base, ok := csv.Preset(k.String("preset"))
	if !ok {
		return csv.Dialect{}, fmt.Errorf("unknown preset %q", k.String("preset"))
	}

	var opts []csv.Option
	if d := k.String("delimiter"); d != "" {
		opts = append(opts, csv.WithDelimiter(d))
	}
	if q, set, err := charFlag(k, "quote"); err != nil {
		return csv.Dialect{}, err
	} else if set {
		opts = append(opts, csv.WithQuote(q))
	}
	if e, set, err := charFlag(k, "escape"); err != nil {
		return csv.Dialect{}, err
	} else if set {
		opts = append(opts, csv.WithEscape(e))
	}
	if c, set, err := charFlag(k, "comment"); err != nil {
		return csv.Dialect{}, err
	} else if set {
		opts = append(opts, csv.WithComment(c))
	}
	if m := k.String("quote-mode"); m != "" {
		mode, err := parseQuoteMode(m)
		if err != nil {
			return csv.Dialect{}, err
		}
		opts = append(opts, csv.WithQuoteMode(mode))
	}
	if n := k.String("null"); n != "" {
		opts = append(opts, csv.WithNullString(n))
	}
	if k.Bool("header") {
		opts = append(opts, csv.WithHeader())
	}
	if k.Bool("trim") {
		opts = append(opts, csv.WithTrim(true))
	}

	return csv.NewDialectFrom(base, opts...)
}

// charFlag reads a single-character option. "none" disables the
// character; "" leaves the preset's value alone.
func charFlag(k *koanf.Koanf, key string) (rune, bool, error) {
	s := k.String(key)
	switch s {
	case "":
		return 0, false, nil
	case "none":
		return 0, true, nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false, fmt.Errorf("--%s must be a single character or \"none\"", key)
	}
	return runes[0], true, nil
}

func parseQuoteMode(name string) (csv.QuoteMode, error) {
	switch name {
	case "minimal":
		return csv.QuoteMinimal, nil
	case "all":
		return csv.QuoteAll, nil
	case "all-non-null":
		return csv.QuoteAllNonNull, nil
	case "non-numeric":
		return csv.QuoteNonNumeric, nil
	case "none":
		return csv.QuoteNone, nil
	default:
		return 0, fmt.Errorf("unknown quote mode %q", name)
	}
}
