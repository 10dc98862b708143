// Package format compiles label formatter expressions.
//
// A formatter expression is a pipeline of calls separated by "|". Each
// call receives the output of the previous one; the first receives the
// raw label string:
//
//	fixed(1) | thousands() | prefix("$")
//
// turns "12345.678" into "$12,345.7". Numeric functions leave input that
// does not parse as a number unchanged, so a formatter never fails at
// render time. See [Functions] for the available calls.
package format

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/stackchart/pkg/errors"
)

var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Symbol", Pattern: `[|(),]`},
	})

	exprParser = participle.MustBuild[Expr](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace"),
	)
)

// Expr is a parsed formatter pipeline.
type Expr struct {
	Calls []*Call `parser:"@@ ( '|' @@ )*"`
}

// Call is one function application. Parentheses are optional for calls
// without arguments.
type Call struct {
	Pos  lexer.Position `parser:""`
	Name string         `parser:"@Ident"`
	Args []*Arg         `parser:"( '(' ( @@ ( ',' @@ )* )? ')' )?"`
}

// Arg is a string or number literal.
type Arg struct {
	String *Literal `parser:"  @String"`
	Number *float64 `parser:"| @Number"`
}

// Literal is an unquoted string argument.
type Literal string

// Capture implements participle.Capture.
func (l *Literal) Capture(values []string) error {
	raw := values[0]
	if strings.HasPrefix(raw, "'") {
		raw = `"` + strings.ReplaceAll(strings.Trim(raw, "'"), `"`, `\"`) + `"`
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return err
	}
	*l = Literal(s)
	return nil
}

// Parse parses a formatter expression without resolving its functions.
func Parse(src string) (*Expr, error) {
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormatter, err, "parse formatter %q", src)
	}
	return expr, nil
}

// Compile parses src and binds every call. An empty or blank expression
// compiles to nil, which chart formatters treat as "use the raw string".
func Compile(src string) (func(string) string, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}

	steps := make([]func(string) string, 0, len(expr.Calls))
	for _, c := range expr.Calls {
		step, err := bind(c)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return func(s string) string {
		for _, step := range steps {
			s = step(s)
		}
		return s
	}, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(src string) func(string) string {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Functions returns the names of all formatter functions, sorted.
func Functions() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func bind(c *Call) (func(string) string, error) {
	fn, ok := registry[c.Name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormatter,
			"%s: unknown formatter function %q", c.Pos, c.Name)
	}
	if len(c.Args) < fn.minArgs || len(c.Args) > len(fn.args) {
		return nil, errors.New(errors.ErrCodeInvalidFormatter,
			"%s: %s takes %s", c.Pos, c.Name, fn.arity())
	}
	for i, a := range c.Args {
		if (fn.args[i] == argNumber) != (a.Number != nil) {
			return nil, errors.New(errors.ErrCodeInvalidFormatter,
				"%s: argument %d of %s must be a %s", c.Pos, i+1, c.Name, fn.args[i])
		}
	}
	return fn.build(args(c.Args))
}
