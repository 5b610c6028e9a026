package variant

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Interval is the value of a duration. Year-to-month durations use only
// Months; day-to-second durations use Days and Nanos, normalized so that
// both carry the same sign and |Nanos| is less than one day.
type Interval struct {
	Months int64
	Days   int64
	Nanos  int64
}

// DayTime builds a normalized day-to-second interval. It panics if the total
// number of days does not fit in an int64; DurationAccessor.SetDayTime
// reports that case as an error instead.
func DayTime(days, hours, minutes, seconds, nanos int64) Interval {
	iv, err := dayTime(days, hours, minutes, seconds, nanos)
	if err != nil {
		panic(err)
	}
	return iv
}

// YearMonth builds a year-to-month interval. It panics if the total number of
// months does not fit in an int64.
func YearMonth(years, months int64) Interval {
	iv, err := yearMonth(years, months)
	if err != nil {
		panic(err)
	}
	return iv
}

func dayTime(days, hours, minutes, seconds, nanos int64) (Interval, error) {
	iv := Interval{Days: days}
	for _, c := range [...]struct{ v, unit int64 }{
		{hours, 3600 * NanosPerSecond},
		{minutes, 60 * NanosPerSecond},
		{seconds, NanosPerSecond},
		{nanos, 1},
	} {
		perDay := NanosPerDay / c.unit
		d, ok := addInt64(iv.Days, c.v/perDay)
		if !ok {
			return Interval{}, intervalOverflow(fmt.Sprintf("%dd %dh %dm %ds %dns", days, hours, minutes, seconds, nanos), "days")
		}
		iv.Days = d
		iv.Nanos += c.v % perDay * c.unit
	}
	d, ok := addInt64(iv.Days, iv.Nanos/NanosPerDay)
	if !ok {
		return Interval{}, intervalOverflow(fmt.Sprintf("%dd %dh %dm %ds %dns", days, hours, minutes, seconds, nanos), "days")
	}
	iv.Days, iv.Nanos = d, iv.Nanos%NanosPerDay
	return iv.normalize(), nil
}

func yearMonth(years, months int64) (Interval, error) {
	const maxYears = math.MaxInt64 / 12
	if years > maxYears || years < -maxYears {
		return Interval{}, intervalOverflow(fmt.Sprintf("%dy %dm", years, months), "months")
	}
	m, ok := addInt64(years*12, months)
	if !ok {
		return Interval{}, intervalOverflow(fmt.Sprintf("%dy %dm", years, months), "months")
	}
	return Interval{Months: m}, nil
}

// addInt64 adds a and b, failing when the sum overflows or is MinInt64, whose
// magnitude has no int64 form.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (s > a) != (b > 0) || s == math.MinInt64 {
		return 0, false
	}
	return s, true
}

func intervalOverflow(value, unit string) *OverflowError {
	e := newOverflow(value, int64(-math.MaxInt64), int64(math.MaxInt64))
	if unit != "" {
		e.Min += " " + unit
		e.Max += " " + unit
	}
	return e
}

func (iv Interval) normalize() Interval {
	iv.Days += iv.Nanos / NanosPerDay
	iv.Nanos %= NanosPerDay
	switch {
	case iv.Days > 0 && iv.Nanos < 0:
		iv.Days--
		iv.Nanos += NanosPerDay
	case iv.Days < 0 && iv.Nanos > 0:
		iv.Days++
		iv.Nanos -= NanosPerDay
	}
	return iv
}

// IsNegative reports whether the interval points backwards in time.
func (iv Interval) IsNegative() bool {
	return iv.Months < 0 || iv.Days < 0 || iv.Nanos < 0
}

// Compare orders intervals by months, then days, then nanoseconds.
func (iv Interval) Compare(o Interval) int {
	switch {
	case iv.Months != o.Months:
		return cmp.Compare(iv.Months, o.Months)
	case iv.Days != o.Days:
		return cmp.Compare(iv.Days, o.Days)
	default:
		return cmp.Compare(iv.Nanos, o.Nanos)
	}
}

// CheckResolution rejects a nonzero component finer than r.
func (iv Interval) CheckResolution(r DurationResolution) error {
	fail := func(component string, v int64) error {
		return &ResolutionError{Component: component, Value: v, Resolution: r.String()}
	}
	n := abs64(iv.Nanos)
	switch r {
	case Years:
		if iv.Months%12 != 0 {
			return fail("months", iv.Months%12)
		}
	case Days:
		if n != 0 {
			return fail("hours", n/(3600*NanosPerSecond))
		}
	case Hours:
		if v := n % (3600 * NanosPerSecond); v != 0 {
			return fail("minutes", v/(60*NanosPerSecond))
		}
	case Minutes:
		if v := n % (60 * NanosPerSecond); v != 0 {
			return fail("seconds", v/NanosPerSecond)
		}
	case Seconds:
		if v := n % NanosPerSecond; v != 0 {
			return fail("nanoseconds", v)
		}
	case Milliseconds:
		if v := n % 1_000_000; v != 0 {
			return fail("nanoseconds", v)
		}
	case Microseconds:
		if v := n % 1_000; v != 0 {
			return fail("nanoseconds", v)
		}
	}
	return nil
}

// GoDuration converts a day-to-second interval to a time.Duration.
func (iv Interval) GoDuration() (time.Duration, error) {
	const maxDays = int64(1<<63-1) / NanosPerDay
	if iv.Days > maxDays || iv.Days < -maxDays {
		return 0, newOverflow(fmt.Sprintf("%dd", iv.Days), time.Duration(-1<<63), time.Duration(1<<63-1))
	}
	return time.Duration(iv.Days*NanosPerDay + iv.Nanos), nil
}

// IntervalFromDuration converts a time.Duration to a day-to-second interval.
func IntervalFromDuration(d time.Duration) Interval {
	return Interval{Nanos: int64(d)}.normalize()
}

// FormatDuration renders an interval of type t: PyYmM for year-to-month and
// PnDTnHnMn[.f]S for day-to-second. Negative values take a leading '-'.
func FormatDuration(iv Interval, t DurationType) string {
	var b strings.Builder
	if iv.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if t == YearToMonth {
		m := abs64(iv.Months)
		fmt.Fprintf(&b, "%dY%dM", m/12, m%12)
		return b.String()
	}
	n := abs64(iv.Nanos)
	secs, frac := n/NanosPerSecond, n%NanosPerSecond
	fmt.Fprintf(&b, "%dDT%dH%dM%d", abs64(iv.Days), secs/3600, secs/60%60, secs%60)
	if frac != 0 {
		f := fmt.Sprintf("%09d", frac)
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(f, "0"))
	}
	b.WriteByte('S')
	return b.String()
}

// ParseDuration parses the text written by FormatDuration. Components may be
// omitted; the designators present decide the duration type. Mixing
// year/month designators with day/time designators is an error.
func ParseDuration(s string) (Interval, DurationType, error) {
	bad := func(sub, reason string) (Interval, DurationType, error) {
		return Interval{}, 0, &FormatError{What: "duration", Substring: sub, Input: s, Reason: reason}
	}
	body := s
	neg := false
	if strings.HasPrefix(body, "-") {
		neg, body = true, body[1:]
	}
	if !strings.HasPrefix(body, "P") || len(body) == 1 {
		return bad("", "expected leading P")
	}
	body = body[1:]

	var c struct{ years, months, days, hours, minutes, seconds, nanos int64 }
	ym, dt := false, false
	inTime := false
	for len(body) > 0 {
		if body[0] == 'T' {
			if inTime {
				return bad(body, "repeated T in")
			}
			inTime, dt = true, true
			body = body[1:]
			continue
		}
		i := 0
		for i < len(body) && (body[i] >= '0' && body[i] <= '9' || body[i] == '.') {
			i++
		}
		if i == 0 || i == len(body) {
			return bad(body, "expected number and designator at")
		}
		num, unit := body[:i], body[i]
		body = body[i+1:]
		if strings.Contains(num, ".") && !(inTime && unit == 'S') {
			return bad(num, "fraction only allowed on seconds, got")
		}
		whole, frac, _ := strings.Cut(num, ".")
		v, err := strconv.ParseInt(whole, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return Interval{}, 0, intervalOverflow(num+string(unit), "")
		}
		if err != nil {
			return bad(num, "invalid number")
		}
		var total *int64
		switch {
		case !inTime && unit == 'Y':
			total, ym = &c.years, true
		case !inTime && unit == 'M':
			total, ym = &c.months, true
		case !inTime && unit == 'D':
			total, dt = &c.days, true
		case inTime && unit == 'H':
			total = &c.hours
		case inTime && unit == 'M':
			total = &c.minutes
		case inTime && unit == 'S':
			total = &c.seconds
			if frac != "" {
				if len(frac) > 9 {
					return bad(frac, "fraction must have 1 to 9 digits, got")
				}
				f, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
				if err != nil {
					return bad(frac, "invalid fraction")
				}
				c.nanos += f
			}
		default:
			return bad(string(unit), "unexpected designator")
		}
		sum, ok := addInt64(*total, v)
		if !ok {
			return Interval{}, 0, intervalOverflow(num+string(unit), "")
		}
		*total = sum
	}
	if ym && dt {
		return bad("", "cannot mix year/month and day/time components")
	}

	var (
		iv  Interval
		err error
	)
	typ := DayToSecond
	if ym {
		typ = YearToMonth
		iv, err = yearMonth(c.years, c.months)
	} else {
		iv, err = dayTime(c.days, c.hours, c.minutes, c.seconds, c.nanos)
	}
	if err != nil {
		var oe *OverflowError
		if errors.As(err, &oe) {
			oe.Value = s
		}
		return Interval{}, 0, err
	}
	if neg {
		iv = Interval{Months: -iv.Months, Days: -iv.Days, Nanos: -iv.Nanos}
	}
	return iv, typ, nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
