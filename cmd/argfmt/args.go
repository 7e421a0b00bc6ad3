package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bjaus/argfmt"
)

// parseArg converts a command-line argument into a typed value. A prefix
// selects the type:
//
//	i:42  u:42  f:1.5  x:1.5 (big.Float)  b:true  c:A  s:text
//	t:2024-01-02T15:04:05Z  p:0xc000010000  n: (empty)
//
// An argument without a known prefix is a string.
func parseArg(s string) (any, error) {
	kind, val, ok := strings.Cut(s, ":")
	if !ok || len(kind) != 1 {
		return s, nil
	}
	switch kind {
	case "i":
		n, err := strconv.ParseInt(val, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return n, nil
	case "u":
		n, err := strconv.ParseUint(val, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return n, nil
	case "f":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case "x":
		v, _, err := big.ParseFloat(val, 10, 256, big.ToNearestEven)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case "b":
		v, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case "c":
		r, size := utf8.DecodeRuneInString(val)
		if size == 0 || size != len(val) {
			return nil, fmt.Errorf("argument %q: want exactly one character", s)
		}
		return argfmt.Char(r), nil
	case "s":
		return val, nil
	case "t":
		if val == "now" {
			return time.Now(), nil
		}
		v, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return v, nil
	case "p":
		n, err := strconv.ParseUint(val, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", s, err)
		}
		return uintptr(n), nil
	case "n":
		return nil, nil
	}
	return s, nil
}

func parseArgs(in []string) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, s := range in {
		v, err := parseArg(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
