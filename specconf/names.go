package specconf

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

var (
	integerEncodings = map[string]variant.IntegerEncoding{
		"signed":   variant.Signed,
		"unsigned": variant.Unsigned,
	}
	widths = map[string]variant.StorageWidth{
		"b8":  variant.B8,
		"b16": variant.B16,
		"b32": variant.B32,
		"b64": variant.B64,
	}
	stringEncodings = map[string]variant.StringEncoding{
		"byte":  variant.ByteString,
		"utf8":  variant.Utf8,
		"utf16": variant.Utf16,
		"utf32": variant.Utf32,
	}
	timeTypes = map[string]variant.TimeType{
		"local": variant.LocalTime,
		"zoned": variant.ZonedTime,
	}
	timeResolutions = map[string]variant.TimeResolution{
		"second":         variant.Second,
		"millisecond":    variant.Millisecond,
		"microsecond100": variant.Microsecond100,
		"microsecond":    variant.Microsecond,
		"nanosecond":     variant.Nanosecond,
	}
	durationTypes = map[string]variant.DurationType{
		"year_to_month": variant.YearToMonth,
		"day_to_second": variant.DayToSecond,
	}
	durationResolutions = map[string]variant.DurationResolution{
		"years":        variant.Years,
		"months":       variant.Months,
		"days":         variant.Days,
		"hours":        variant.Hours,
		"minutes":      variant.Minutes,
		"seconds":      variant.Seconds,
		"milliseconds": variant.Milliseconds,
		"microseconds": variant.Microseconds,
		"nanoseconds":  variant.Nanoseconds,
	}
	listPolicies = map[string]variant.ListPolicy{
		"variable_size":    variant.PolicyVariableSize,
		"fixed_size":       variant.PolicyFixedSize,
		"fixed_capacity":   variant.PolicyFixedCapacity,
		"initial_capacity": variant.PolicyInitialCapacity,
	}
	orderings = map[string]variant.Ordering{
		"ordered":   variant.Ordered,
		"unordered": variant.Unordered,
	}
)

// lookup maps a catalog keyword to its value, ignoring case.
func lookup[T any](field, value string, values map[string]T) (T, error) {
	if v, ok := values[strings.ToLower(value)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, want one of %s",
		field, value, strings.Join(slices.Sorted(maps.Keys(values)), ", "))
}

func categoryNamed(name string) (variant.PrimitiveCategory, bool) {
	for c := variant.CategoryNumeric; c <= variant.CategoryAll; c++ {
		if strings.EqualFold(c.String(), name) || strings.EqualFold(snake(c.String()), name) {
			return c, true
		}
	}
	return 0, false
}

// snake turns "ObjectOrReference" into "object_or_reference".
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
