package check

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/framecheck/framecheck/pkg/frame"
)

// sampleSize caps how many distinct offending values a message lists.
const sampleSize = 3

// defaultTimeLayouts are tried in order when a datetime check has no
// explicit format.
var defaultTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// sampler accumulates up to sampleSize distinct offending values for
// inclusion in a failure message.
type sampler struct {
	seen   map[string]struct{}
	values []any
}

func (s *sampler) add(v any) {
	key := valueKey(v)
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	if len(s.values) < sampleSize {
		s.values = append(s.values, v)
	}
}

func (s *sampler) String() string {
	return fmt.Sprintf("%v", s.values)
}

// asFloat converts numeric values to float64. Booleans are not numeric.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// isIntegerLike reports whether a value can be treated as an integer with
// no information loss. Floats with a zero fractional part qualify;
// booleans never do.
func isIntegerLike(v any) bool {
	switch x := v.(type) {
	case bool:
		return false
	case float32:
		return float64(x) == math.Trunc(float64(x)) && !math.IsInf(float64(x), 0)
	case float64:
		return x == math.Trunc(x) && !math.IsInf(x, 0)
	default:
		_, ok := asFloat(v)
		return ok
	}
}

// asTime coerces a cell value to a time.Time. Strings are parsed with the
// explicit format when given, otherwise the default layouts are tried.
func asTime(v any, format string) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		if format != "" {
			t, err := time.Parse(format, x)
			return t, err == nil
		}
		for _, layout := range defaultTimeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// resolveTimeBound parses a datetime bound expression. The relative
// aliases "today", "now", "yesterday" and "tomorrow" are resolved against
// the wall clock at evaluation time.
func resolveTimeBound(expr, format, name string) (time.Time, error) {
	switch strings.ToLower(expr) {
	case "now":
		return time.Now(), nil
	case "today":
		return midnight(time.Now()), nil
	case "yesterday":
		return midnight(time.Now().AddDate(0, 0, -1)), nil
	case "tomorrow":
		return midnight(time.Now().AddDate(0, 0, 1)), nil
	}

	if t, ok := asTime(expr, format); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("failed to parse %s=%q", name, expr)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// valueKey returns a canonical string for set membership and uniqueness
// grouping. Numeric values of different Go types compare equal when their
// float64 representations match.
func valueKey(v any) string {
	if frame.IsNull(v) {
		return "\x00null"
	}
	if f, ok := asFloat(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	switch x := v.(type) {
	case bool:
		return "b:" + strconv.FormatBool(x)
	case string:
		return "s:" + x
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("v:%v", x)
	}
}

// valuesEqual reports whether two cell values are equal under valueKey
// semantics.
func valuesEqual(a, b any) bool {
	return valueKey(a) == valueKey(b)
}

// rowKey builds a uniqueness grouping key from the given columns of a row.
func rowKey(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = valueKey(v)
	}
	return strings.Join(parts, "\x1f")
}

// safeValue applies a value predicate, treating a panic as failure.
func safeValue(fn ValueFunc, v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(v)
}

// safeRow applies a row predicate, treating a panic as failure.
func safeRow(fn RowFunc, row frame.Row) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(row)
}
