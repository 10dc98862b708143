package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/stackchart/pkg/errors"
)

type argKind int

const (
	argString argKind = iota
	argNumber
)

func (k argKind) String() string {
	if k == argNumber {
		return "number"
	}
	return "string"
}

// function describes one formatter call: its parameter kinds, how many
// are required, and how to build the step from bound arguments.
type function struct {
	args    []argKind
	minArgs int
	build   func(a args) (func(string) string, error)
}

func (f function) arity() string {
	if f.minArgs == len(f.args) {
		return fmt.Sprintf("%d argument(s)", len(f.args))
	}
	return fmt.Sprintf("%d to %d arguments", f.minArgs, len(f.args))
}

type args []*Arg

func (a args) str(i int, def string) string {
	if i < len(a) {
		return string(*a[i].String)
	}
	return def
}

func (a args) num(i int, def float64) float64 {
	if i < len(a) {
		return *a[i].Number
	}
	return def
}

func (a args) digits(i int, def int) (int, error) {
	n := a.num(i, float64(def))
	if n < 0 || n > 20 || n != math.Trunc(n) {
		return 0, errors.New(errors.ErrCodeInvalidFormatter, "digit count must be an integer from 0 to 20, got %v", n)
	}
	return int(n), nil
}

var registry = map[string]function{
	"fixed": {
		args: []argKind{argNumber}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			d, err := a.digits(0, 0)
			if err != nil {
				return nil, err
			}
			return numeric(func(v float64) string { return strconv.FormatFloat(v, 'f', d, 64) }), nil
		},
	},
	"precision": {
		args: []argKind{argNumber}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			d, err := a.digits(0, 0)
			if err != nil || d == 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormatter, "precision takes 1 to 20 significant digits")
			}
			return numeric(func(v float64) string { return strconv.FormatFloat(v, 'g', d, 64) }), nil
		},
	},
	"scale": {
		args: []argKind{argNumber}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			k := a.num(0, 1)
			return numeric(func(v float64) string { return strconv.FormatFloat(v*k, 'f', -1, 64) }), nil
		},
	},
	"percent": {
		args: []argKind{argNumber}, minArgs: 0,
		build: func(a args) (func(string) string, error) {
			d, err := a.digits(0, 0)
			if err != nil {
				return nil, err
			}
			return numeric(func(v float64) string { return strconv.FormatFloat(v*100, 'f', d, 64) + "%" }), nil
		},
	},
	"thousands": {
		args: []argKind{argString}, minArgs: 0,
		build: func(a args) (func(string) string, error) {
			sep := a.str(0, ",")
			return func(s string) string { return groupThousands(s, sep) }, nil
		},
	},
	"compact": {
		args: []argKind{argNumber}, minArgs: 0,
		build: func(a args) (func(string) string, error) {
			d, err := a.digits(0, 1)
			if err != nil {
				return nil, err
			}
			return numeric(func(v float64) string { return compact(v, d) }), nil
		},
	},
	"prefix": {
		args: []argKind{argString}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			p := a.str(0, "")
			return func(s string) string { return p + s }, nil
		},
	},
	"suffix": {
		args: []argKind{argString}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			p := a.str(0, "")
			return func(s string) string { return s + p }, nil
		},
	},
	"default": {
		args: []argKind{argString}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			d := a.str(0, "")
			return func(s string) string {
				if strings.TrimSpace(s) == "" {
					return d
				}
				return s
			}, nil
		},
	},
	"replace": {
		args: []argKind{argString, argString}, minArgs: 2,
		build: func(a args) (func(string) string, error) {
			old, repl := a.str(0, ""), a.str(1, "")
			if old == "" {
				return nil, errors.New(errors.ErrCodeInvalidFormatter, "replace needs a non-empty search string")
			}
			return func(s string) string { return strings.ReplaceAll(s, old, repl) }, nil
		},
	},
	"upper": {
		build: func(args) (func(string) string, error) { return strings.ToUpper, nil },
	},
	"lower": {
		build: func(args) (func(string) string, error) { return strings.ToLower, nil },
	},
	"trim": {
		build: func(args) (func(string) string, error) { return strings.TrimSpace, nil },
	},
	"truncate": {
		args: []argKind{argNumber, argString}, minArgs: 1,
		build: func(a args) (func(string) string, error) {
			n, err := a.digits(0, 0)
			if err != nil {
				return nil, err
			}
			tail := a.str(1, "..")
			return func(s string) string { return truncate(s, n, tail) }, nil
		},
	},
	"date": {
		args: []argKind{argString, argString}, minArgs: 2,
		build: func(a args) (func(string) string, error) {
			in, out := a.str(0, ""), a.str(1, "")
			return func(s string) string {
				t, err := time.Parse(in, strings.TrimSpace(s))
				if err != nil {
					return s
				}
				return t.Format(out)
			}, nil
		},
	},
}

// numeric applies f to input that parses as a number and passes anything
// else through unchanged.
func numeric(f func(float64) string) func(string) string {
	return func(s string) string {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return s
		}
		return f(v)
	}
}

// groupThousands inserts sep between digit groups of the integer part of
// a plain decimal number. Other input is returned unchanged.
func groupThousands(s, sep string) string {
	if _, err := strconv.ParseFloat(s, 64); err != nil || strings.ContainsAny(s, "eE") {
		return s
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

var compactUnits = []struct {
	limit  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
}

func compact(v float64, digits int) string {
	for _, u := range compactUnits {
		if math.Abs(v) >= u.limit {
			s := strconv.FormatFloat(v/u.limit, 'f', digits, 64)
			if strings.Contains(s, ".") {
				s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
			}
			return s + u.suffix
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int, tail string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + tail
}
