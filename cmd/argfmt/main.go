// Command argfmt renders a format string with typed arguments.
//
//	argfmt '{:>8.2f}|{:^7}' f:3.14159 s:mid
//	argfmt -locale de_DE '{:L}' i:1234567
//	argfmt -inspect table '{0:*^9}{1:%Y-%m-%d}' i:5 t:now
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bjaus/argfmt"
	"go.uber.org/zap"
	"golang.org/x/term"
)

type config struct {
	locale   string
	locales  string
	encoding string
	inspect  string
	border   string
	maxWidth int
	utc      bool
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.locale, "locale", "", "Locale for L fields and calendar names (e.g. de_DE)")
	flag.StringVar(&cfg.locales, "locales", "", "YAML file with extra locale definitions")
	flag.StringVar(&cfg.encoding, "encoding", "utf-8", "Output encoding: utf-8, utf-16le, utf-16be, utf-32le, utf-32be")
	flag.StringVar(&cfg.inspect, "inspect", "", "Describe the fields instead of rendering: table, json, jsonl, yaml, csv, markdown")
	flag.StringVar(&cfg.border, "border", "rounded", "Inspect table border: rounded, none, ascii, heavy, double")
	flag.IntVar(&cfg.maxWidth, "max-width", 0, "Truncate inspect table cells to this many columns")
	flag.BoolVar(&cfg.utc, "utc", false, "Render %z and %Z in UTC")
	flag.BoolVar(&cfg.verbose, "v", false, "Log debug events to stderr")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: argfmt [flags] <format> [i:|u:|f:|x:|b:|c:|s:|t:|p:|n:]value...")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, format string, rawArgs []string, stdout *os.File) error {
	if cfg.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		argfmt.SetLogger(logger)
	}

	if cfg.locales != "" {
		f, err := os.Open(cfg.locales)
		if err != nil {
			return fmt.Errorf("open locales: %w", err)
		}
		_, err = argfmt.LoadLocales(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load locales %s: %w", cfg.locales, err)
		}
	}

	var opts []argfmt.Option
	if cfg.locale != "" {
		loc, err := argfmt.LookupLocale(cfg.locale)
		if err != nil {
			return err
		}
		opts = append(opts, argfmt.WithLocale(loc))
	}
	if cfg.utc {
		opts = append(opts, argfmt.WithZone(argfmt.FixedZone("UTC", 0)))
	}
	f := argfmt.New(opts...)

	args, err := parseArgs(rawArgs)
	if err != nil {
		return err
	}

	if cfg.inspect != "" {
		return inspect(f, cfg, format, args, stdout)
	}

	enc, err := argfmt.ParseEncoding(cfg.encoding)
	if err != nil {
		return err
	}
	var w io.Writer = stdout
	if enc != argfmt.UTF8 {
		w = argfmt.NewEncodedWriter(stdout, enc)
	}
	if err := f.FormatTo(w, format, args...); err != nil {
		return err
	}
	if enc == argfmt.UTF8 && term.IsTerminal(int(stdout.Fd())) {
		_, err = fmt.Fprintln(stdout)
	}
	return err
}

func inspect(f *argfmt.Formatter, cfg config, format string, args []any, w io.Writer) error {
	rf, err := parseReportFormat(cfg.inspect)
	if err != nil {
		return err
	}
	border, err := parseBorder(cfg.border)
	if err != nil {
		return err
	}
	fields, err := f.Inspect(format, args...)
	if err != nil {
		return err
	}
	return writeReport(w, rf, fields, reportOptions{
		border:   border,
		maxWidth: cfg.maxWidth,
		title:    format,
	})
}
