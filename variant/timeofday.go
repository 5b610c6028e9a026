package variant

import (
	"fmt"
	"strings"
)

const (
	NanosPerSecond = 1_000_000_000
	NanosPerDay    = 86_400 * NanosPerSecond

	// TicksPerSecond is the number of 100-microsecond ticks in a second.
	TicksPerSecond = 10_000
	TicksPerDay    = 86_400 * TicksPerSecond

	// MaxOffsetSeconds bounds a zoned time's UTC offset.
	MaxOffsetSeconds = 18 * 3600
)

// TimeComponents is a time of day split into its components.
type TimeComponents struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

// Check validates every component against its range.
func (c TimeComponents) Check() error {
	fields := [...]struct {
		name  string
		value int
		max   int
	}{
		{"hour", c.Hour, 23},
		{"minute", c.Minute, 59},
		{"second", c.Second, 59},
		{"millisecond", c.Millisecond, 999},
		{"microsecond", c.Microsecond, 999},
		{"nanosecond", c.Nanosecond, 999},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > f.max {
			return &RangeError{Component: f.name, Value: int64(f.value), Min: 0, Max: int64(f.max)}
		}
	}
	return nil
}

// CheckResolution rejects a nonzero component finer than r.
func (c TimeComponents) CheckResolution(r TimeResolution) error {
	fail := func(component string, v int) error {
		return &ResolutionError{Component: component, Value: int64(v), Resolution: r.String()}
	}
	switch r {
	case Second:
		if c.Millisecond != 0 {
			return fail("millisecond", c.Millisecond)
		}
		fallthrough
	case Millisecond:
		if c.Microsecond != 0 {
			return fail("microsecond", c.Microsecond)
		}
		if c.Nanosecond != 0 {
			return fail("nanosecond", c.Nanosecond)
		}
	case Microsecond100:
		if c.Microsecond%100 != 0 {
			return fail("microsecond", c.Microsecond)
		}
		fallthrough
	case Microsecond:
		if c.Nanosecond != 0 {
			return fail("nanosecond", c.Nanosecond)
		}
	}
	return nil
}

// NanosOfDay returns the nanoseconds since midnight.
func (c TimeComponents) NanosOfDay() uint64 {
	secs := uint64(c.Hour)*3600 + uint64(c.Minute)*60 + uint64(c.Second)
	return secs*NanosPerSecond + uint64(c.Millisecond)*1_000_000 + uint64(c.Microsecond)*1_000 + uint64(c.Nanosecond)
}

// Ticks returns the 100-microsecond ticks since midnight, truncating finer
// components.
func (c TimeComponents) Ticks() uint32 {
	secs := uint32(c.Hour)*3600 + uint32(c.Minute)*60 + uint32(c.Second)
	return secs*TicksPerSecond + uint32(c.Millisecond)*10 + uint32(c.Microsecond)/100
}

// ComponentsFromNanos splits nanoseconds since midnight into components.
func ComponentsFromNanos(n uint64) TimeComponents {
	secs := n / NanosPerSecond
	frac := n % NanosPerSecond
	return TimeComponents{
		Hour:        int(secs / 3600),
		Minute:      int(secs / 60 % 60),
		Second:      int(secs % 60),
		Millisecond: int(frac / 1_000_000),
		Microsecond: int(frac / 1_000 % 1_000),
		Nanosecond:  int(frac % 1_000),
	}
}

// ComponentsFromTicks splits 100-microsecond ticks since midnight into
// components.
func ComponentsFromTicks(t uint32) TimeComponents {
	return ComponentsFromNanos(uint64(t) * 100_000)
}

// FormatTimeOfDay renders HH:MM:SS followed by a fraction whose trailing
// zero groups of three digits are trimmed.
func FormatTimeOfDay(c TimeComponents) string {
	base := fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	switch {
	case c.Nanosecond != 0:
		return fmt.Sprintf("%s.%03d%03d%03d", base, c.Millisecond, c.Microsecond, c.Nanosecond)
	case c.Microsecond != 0:
		return fmt.Sprintf("%s.%03d%03d", base, c.Millisecond, c.Microsecond)
	case c.Millisecond != 0:
		return fmt.Sprintf("%s.%03d", base, c.Millisecond)
	default:
		return base
	}
}

// ParseTimeOfDay parses HH:MM:SS[.fraction] or HHMMSS[.fraction], optionally
// preceded by T. The fraction has 1 to 9 digits.
func ParseTimeOfDay(s string) (TimeComponents, error) {
	body := strings.TrimPrefix(s, "T")
	clock, frac, hasFrac := strings.Cut(body, ".")

	var hs, ms, ss string
	switch {
	case len(clock) == 8 && clock[2] == ':' && clock[5] == ':':
		hs, ms, ss = clock[0:2], clock[3:5], clock[6:8]
	case len(clock) == 6:
		hs, ms, ss = clock[0:2], clock[2:4], clock[4:6]
	default:
		return TimeComponents{}, &FormatError{What: "time", Substring: clock, Input: s, Reason: "expected HH:MM:SS or HHMMSS, got"}
	}

	var c TimeComponents
	var err error
	if c.Hour, err = parseDigits("time", "hour", hs, s); err != nil {
		return TimeComponents{}, err
	}
	if c.Minute, err = parseDigits("time", "minute", ms, s); err != nil {
		return TimeComponents{}, err
	}
	if c.Second, err = parseDigits("time", "second", ss, s); err != nil {
		return TimeComponents{}, err
	}
	if hasFrac {
		if len(frac) == 0 || len(frac) > 9 {
			return TimeComponents{}, &FormatError{What: "time", Substring: frac, Input: s, Reason: "fraction must have 1 to 9 digits, got"}
		}
		padded := frac + strings.Repeat("0", 9-len(frac))
		if c.Millisecond, err = parseDigits("time", "fraction", padded[0:3], s); err != nil {
			return TimeComponents{}, withSubstring(err, frac)
		}
		if c.Microsecond, err = parseDigits("time", "fraction", padded[3:6], s); err != nil {
			return TimeComponents{}, withSubstring(err, frac)
		}
		if c.Nanosecond, err = parseDigits("time", "fraction", padded[6:9], s); err != nil {
			return TimeComponents{}, withSubstring(err, frac)
		}
	}
	if err := c.Check(); err != nil {
		return TimeComponents{}, err
	}
	return c, nil
}

func withSubstring(err error, sub string) error {
	if fe, ok := err.(*FormatError); ok {
		fe.Substring = sub
	}
	return err
}

// FormatOffset renders a UTC offset as Z or ±HH:MM.
func FormatOffset(seconds int32) string {
	if seconds == 0 {
		return "Z"
	}
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds/60%60)
}

// ParseOffset parses Z, ±HH:MM or ±HHMM.
func ParseOffset(s string) (int32, error) {
	if s == "Z" || s == "z" {
		return 0, nil
	}
	if len(s) < 5 || (s[0] != '+' && s[0] != '-') {
		return 0, &FormatError{What: "offset", Input: s, Reason: "expected Z or ±HH:MM"}
	}
	rest := s[1:]
	var hs, ms string
	switch {
	case len(rest) == 5 && rest[2] == ':':
		hs, ms = rest[0:2], rest[3:5]
	case len(rest) == 4:
		hs, ms = rest[0:2], rest[2:4]
	default:
		return 0, &FormatError{What: "offset", Substring: rest, Input: s, Reason: "expected HH:MM, got"}
	}
	h, err := parseDigits("offset", "hours", hs, s)
	if err != nil {
		return 0, err
	}
	m, err := parseDigits("offset", "minutes", ms, s)
	if err != nil {
		return 0, err
	}
	if m > 59 {
		return 0, &RangeError{Component: "offset minutes", Value: int64(m), Min: 0, Max: 59}
	}
	secs := int32(h*3600 + m*60)
	if s[0] == '-' {
		secs = -secs
	}
	if err := CheckOffset(secs); err != nil {
		return 0, err
	}
	return secs, nil
}

// CheckOffset validates a UTC offset in seconds.
func CheckOffset(seconds int32) error {
	if seconds < -MaxOffsetSeconds || seconds > MaxOffsetSeconds {
		return &RangeError{Component: "offset", Value: int64(seconds), Min: -MaxOffsetSeconds, Max: MaxOffsetSeconds}
	}
	return nil
}

// splitOffset separates a trailing zone designator from a time string.
func splitOffset(s string) (clock, offset string) {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return s[:len(s)-1], s[len(s)-1:]
	}
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		return s[:i], s[i:]
	}
	return s, ""
}
