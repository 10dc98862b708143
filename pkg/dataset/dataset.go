package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Record is a single data point with arbitrary named fields.
type Record map[string]any

// Dataset is an ordered sequence of records.
type Dataset []Record

// Len returns the number of records.
func (ds Dataset) Len() int { return len(ds) }

// Canonical returns a deterministic JSON encoding of the dataset, suitable
// for content hashing. Map keys are emitted in sorted order.
func (ds Dataset) Canonical() ([]byte, error) {
	if ds == nil {
		ds = Dataset{}
	}
	return json.Marshal(ds)
}

// CheckKeys reports the first record that lacks either key.
func (ds Dataset) CheckKeys(k Keys) error {
	for i, r := range ds {
		if _, ok := r[k.XKey]; !ok {
			return errors.New(errors.ErrCodeInvalidField, "missing x field").At(i, k.XKey)
		}
		if _, ok := r[k.YKey]; !ok {
			return errors.New(errors.ErrCodeInvalidField, "missing y field").At(i, k.YKey)
		}
	}
	return nil
}

// yField names the Y field of acc when it is known.
func yField(acc Accessor) string {
	if k, ok := acc.(Keys); ok {
		return k.YKey
	}
	return ""
}

// CheckNumeric reports the first record whose Y value is not a finite number.
func (ds Dataset) CheckNumeric(acc Accessor) error {
	for i, r := range ds {
		v := acc.Y(r)
		if _, ok := v.Numeric(); !ok {
			return errors.New(errors.ErrCodeInvalidValue, "y value %q is not numeric", v.String()).At(i, yField(acc))
		}
	}
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// Accessor extracts the X (category) and Y (numeric) fields of a record.
type Accessor interface {
	X(Record) Value
	Y(Record) Value
}

// Keys is an [Accessor] that looks fields up by name.
type Keys struct {
	XKey string `json:"x_key" toml:"x_key"`
	YKey string `json:"y_key" toml:"y_key"`
}

// X returns the record's XKey field.
func (k Keys) X(r Record) Value { return Value{raw: r[k.XKey]} }

// Y returns the record's YKey field.
func (k Keys) Y(r Record) Value { return Value{raw: r[k.YKey]} }

// Validate checks both keys with [errors.ValidateFieldKey].
func (k Keys) Validate() error {
	if err := errors.ValidateFieldKey(k.XKey); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, err, "x key")
	}
	if err := errors.ValidateFieldKey(k.YKey); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, err, "y key")
	}
	return nil
}

// AccessorFunc adapts two closures to the [Accessor] interface.
// A nil function yields a missing value.
type AccessorFunc struct {
	XFunc func(Record) Value
	YFunc func(Record) Value
}

// X calls XFunc.
func (a AccessorFunc) X(r Record) Value {
	if a.XFunc == nil {
		return Value{}
	}
	return a.XFunc(r)
}

// Y calls YFunc.
func (a AccessorFunc) Y(r Record) Value {
	if a.YFunc == nil {
		return Value{}
	}
	return a.YFunc(r)
}

// =============================================================================
// Values
// =============================================================================

// Value wraps a raw field value without converting it.
type Value struct {
	raw any
}

// NewValue wraps v.
func NewValue(v any) Value { return Value{raw: v} }

// Raw returns the wrapped value unchanged.
func (v Value) Raw() any { return v.raw }

// IsMissing reports whether the field was absent or null.
func (v Value) IsMissing() bool { return v.raw == nil }

// String returns the raw string form of the value. Missing values render
// as the empty string.
func (v Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Float coerces the value to a number. Numbers pass through; strings use
// their longest numeric prefix ("12px" → 12, " 3.5e2x" → 350). Anything
// else, including non-finite results, coerces to 0.
func (v Value) Float() float64 {
	var f float64
	switch x := v.raw.(type) {
	case nil, bool:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case json.Number:
		f = parsePrefix(x.String())
	case string:
		f = parsePrefix(x)
	default:
		f = parsePrefix(v.String())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Numeric reports whether the entire value is a finite number, and returns
// it. Unlike [Value.Float], "12px" and "" are not numeric.
func (v Value) Numeric() (float64, bool) {
	switch x := v.raw.(type) {
	case nil, bool:
		return 0, false
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := x.Float64()
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int, int64, int32, uint, uint64, uint32:
		return v.Float(), true
	default:
		return 0, false
	}
}

// parsePrefix parses the longest leading decimal literal of s, after
// skipping leading whitespace. It returns NaN when s has no numeric prefix.
func parsePrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return math.NaN()
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
