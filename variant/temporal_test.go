package variant

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeComponents
	}{
		{"12:34:56.789456123", TimeComponents{12, 34, 56, 789, 456, 123}},
		{"12:34:56", TimeComponents{Hour: 12, Minute: 34, Second: 56}},
		{"123456", TimeComponents{Hour: 12, Minute: 34, Second: 56}},
		{"T235959.5", TimeComponents{Hour: 23, Minute: 59, Second: 59, Millisecond: 500}},
		{"00:00:00.0001", TimeComponents{Microsecond: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimeOfDayErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"12:34", ErrInvalidFormat},
		{"12-34-56", ErrInvalidFormat},
		{"12:34:56.", ErrInvalidFormat},
		{"12:34:56.1234567890", ErrInvalidFormat},
		{"12:34:56.12x", ErrInvalidFormat},
		{"24:00:00", ErrOutOfRange},
		{"12:60:00", ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if _, err := ParseTimeOfDay(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("ParseTimeOfDay(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	tests := []struct {
		c    TimeComponents
		want string
	}{
		{TimeComponents{12, 34, 56, 789, 456, 123}, "12:34:56.789456123"},
		{TimeComponents{Hour: 1, Minute: 2, Second: 3}, "01:02:03"},
		{TimeComponents{Hour: 1, Millisecond: 50}, "01:00:00.050"},
		{TimeComponents{Microsecond: 100}, "00:00:00.000100"},
	}
	for _, tt := range tests {
		if got := FormatTimeOfDay(tt.c); got != tt.want {
			t.Errorf("FormatTimeOfDay(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestTimeComponentConversions(t *testing.T) {
	c := TimeComponents{12, 34, 56, 789, 456, 123}
	if got := ComponentsFromNanos(c.NanosOfDay()); got != c {
		t.Errorf("nanos round trip = %+v", got)
	}
	if got := (TimeComponents{Hour: 1}).Ticks(); got != 36_000_000 {
		t.Errorf("Ticks = %d", got)
	}
	ticked := TimeComponents{Hour: 23, Minute: 59, Second: 59, Millisecond: 999, Microsecond: 900}
	if got := ComponentsFromTicks(ticked.Ticks()); got != ticked {
		t.Errorf("ticks round trip = %+v", got)
	}
	if got := (TimeComponents{Microsecond: 150}).Ticks(); got != 1 {
		t.Errorf("Ticks truncation = %d, want 1", got)
	}
}

func TestCheckResolution(t *testing.T) {
	tests := []struct {
		name      string
		c         TimeComponents
		r         TimeResolution
		component string
	}{
		{"second_rejects_ms", TimeComponents{Millisecond: 1}, Second, "millisecond"},
		{"ms_rejects_us", TimeComponents{Microsecond: 1}, Millisecond, "microsecond"},
		{"us100_rejects_us", TimeComponents{Microsecond: 150}, Microsecond100, "microsecond"},
		{"us100_rejects_ns", TimeComponents{Microsecond: 200, Nanosecond: 1}, Microsecond100, "nanosecond"},
		{"us_rejects_ns", TimeComponents{Nanosecond: 1}, Microsecond, "nanosecond"},
		{"ns_accepts_all", TimeComponents{1, 2, 3, 4, 5, 6}, Nanosecond, ""},
		{"us100_accepts_multiple", TimeComponents{Microsecond: 200}, Microsecond100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.CheckResolution(tt.r)
			if tt.component == "" {
				if err != nil {
					t.Fatalf("CheckResolution = %v", err)
				}
				return
			}
			var re *ResolutionError
			if !errors.As(err, &re) {
				t.Fatalf("CheckResolution = %v, want *ResolutionError", err)
			}
			if re.Component != tt.component {
				t.Errorf("component = %q, want %q", re.Component, tt.component)
			}
			if !errors.Is(err, ErrResolutionOutOfBounds) {
				t.Error("ResolutionError should match ErrResolutionOutOfBounds")
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	tests := []struct {
		in   string
		want int32
		err  error
	}{
		{in: "Z", want: 0},
		{in: "+05:30", want: 19800},
		{in: "-0800", want: -28800},
		{in: "+18:00", want: MaxOffsetSeconds},
		{in: "+19:00", err: ErrOutOfRange},
		{in: "+05:60", err: ErrOutOfRange},
		{in: "05:00", err: ErrInvalidFormat},
		{in: "+5:00", err: ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOffset(tt.in)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("ParseOffset(%q) error = %v, want %v", tt.in, err, tt.err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseOffset(%q) = %d, %v", tt.in, got, err)
			}
		})
	}
	if got := FormatOffset(-28800); got != "-08:00" {
		t.Errorf("FormatOffset = %q", got)
	}
	if got := FormatOffset(0); got != "Z" {
		t.Errorf("FormatOffset(0) = %q", got)
	}
	if clock, off := splitOffset("12:00:00+05:30"); clock != "12:00:00" || off != "+05:30" {
		t.Errorf("splitOffset = %q, %q", clock, off)
	}
}

func TestIntervalNormalize(t *testing.T) {
	iv := DayTime(1, 25, 0, 0, 0)
	if iv.Days != 2 || iv.Nanos != 3600*NanosPerSecond {
		t.Errorf("DayTime(1, 25h) = %+v", iv)
	}
	iv = DayTime(1, -1, 0, 0, 0)
	if iv.Days != 0 || iv.Nanos != 23*3600*NanosPerSecond {
		t.Errorf("DayTime(1, -1h) = %+v", iv)
	}
	iv = IntervalFromDuration(-25 * time.Hour)
	if iv.Days != -1 || iv.Nanos != -3600*NanosPerSecond {
		t.Errorf("IntervalFromDuration(-25h) = %+v", iv)
	}
	if !iv.IsNegative() {
		t.Error("IsNegative = false")
	}
	d, err := iv.GoDuration()
	if err != nil || d != -25*time.Hour {
		t.Errorf("GoDuration = %v, %v", d, err)
	}
	if _, err := (Interval{Days: 1 << 40}).GoDuration(); !errors.Is(err, ErrOverflow) {
		t.Errorf("GoDuration overflow error = %v", err)
	}
}

func TestIntervalCompare(t *testing.T) {
	a := DayTime(1, 0, 0, 0, 0)
	b := DayTime(0, 23, 59, 59, 999)
	if a.Compare(b) != 1 || b.Compare(a) != -1 || a.Compare(a) != 0 {
		t.Error("day-to-second ordering is wrong")
	}
	if YearMonth(1, 0).Compare(YearMonth(0, 13)) != -1 {
		t.Error("year-to-month ordering is wrong")
	}
}

func TestIntervalResolution(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		r    DurationResolution
		ok   bool
	}{
		{"years_whole", YearMonth(2, 0), Years, true},
		{"years_partial", YearMonth(1, 1), Years, false},
		{"months", YearMonth(1, 1), Months, true},
		{"days_with_hours", DayTime(1, 1, 0, 0, 0), Days, false},
		{"hours_with_minutes", DayTime(0, 1, 1, 0, 0), Hours, false},
		{"seconds_with_nanos", DayTime(0, 0, 0, 1, 5), Seconds, false},
		{"millis_whole", DayTime(0, 0, 0, 1, 2_000_000), Milliseconds, true},
		{"micros_with_nanos", DayTime(0, 0, 0, 0, 1_001), Microseconds, false},
		{"nanos", DayTime(0, 0, 0, 0, 1), Nanoseconds, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.iv.CheckResolution(tt.r)
			if tt.ok && err != nil {
				t.Fatalf("CheckResolution = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrResolutionOutOfBounds) {
				t.Fatalf("CheckResolution = %v, want ErrResolutionOutOfBounds", err)
			}
		})
	}
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		iv   Interval
		typ  DurationType
		text string
	}{
		{YearMonth(2, 2), YearToMonth, "P2Y2M"},
		{YearMonth(0, -5), YearToMonth, "-P0Y5M"},
		{DayTime(1, 2, 3, 4, 500_000_000), DayToSecond, "P1DT2H3M4.5S"},
		{DayTime(0, -1, 0, 0, 0), DayToSecond, "-P0DT1H0M0S"},
		{DayTime(0, 0, 0, 0, 1), DayToSecond, "P0DT0H0M0.000000001S"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := FormatDuration(tt.iv, tt.typ); got != tt.text {
				t.Errorf("FormatDuration = %q, want %q", got, tt.text)
			}
			iv, typ, err := ParseDuration(tt.text)
			if err != nil {
				t.Fatalf("ParseDuration(%q): %v", tt.text, err)
			}
			if iv != tt.iv || typ != tt.typ {
				t.Errorf("ParseDuration(%q) = %+v, %s", tt.text, iv, typ)
			}
		})
	}
}

func TestParseDurationShorthand(t *testing.T) {
	iv, typ, err := ParseDuration("PT36H")
	if err != nil {
		t.Fatal(err)
	}
	if typ != DayToSecond || iv != DayTime(1, 12, 0, 0, 0) {
		t.Errorf("PT36H = %+v, %s", iv, typ)
	}
	iv, typ, err = ParseDuration("P14M")
	if err != nil {
		t.Fatal(err)
	}
	if typ != YearToMonth || iv.Months != 14 {
		t.Errorf("P14M = %+v, %s", iv, typ)
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, in := range []string{"", "P", "1D", "P1Y1D", "P1.5D", "PT1H2", "P1X", "PTT1H", "PT1.1234567891S"} {
		t.Run(in, func(t *testing.T) {
			if _, _, err := ParseDuration(in); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ParseDuration(%q) error = %v", in, err)
			}
		})
	}
}

func TestParseDurationOverflow(t *testing.T) {
	for _, in := range []string{
		"PT9999999999999999999H",
		"P999999999999999999Y",
		"P9223372036854775807Y",
		"P9223372036854775807M1M",
		"P9223372036854775807DT24H",
		"-P9223372036854775807DT86400S",
		"P99999999999999999999D",
	} {
		t.Run(in, func(t *testing.T) {
			iv, _, err := ParseDuration(in)
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("ParseDuration(%q) = %+v, %v, want ErrOverflow", in, iv, err)
			}
		})
	}
}

func TestParseDurationLargeButValid(t *testing.T) {
	iv, typ, err := ParseDuration("PT9999999999H")
	if err != nil {
		t.Fatal(err)
	}
	want := Interval{Days: 9999999999 / 24, Nanos: 9999999999 % 24 * 3600 * NanosPerSecond}
	if typ != DayToSecond || iv != want {
		t.Errorf("PT9999999999H = %+v, want %+v", iv, want)
	}
	if got := FormatDuration(iv, typ); got != "P416666666DT15H0M0S" {
		t.Errorf("FormatDuration = %q", got)
	}

	iv, _, err = ParseDuration("-P768614336404564650Y7M")
	if err != nil {
		t.Fatal(err)
	}
	if iv.Months != -(768614336404564650*12 + 7) {
		t.Errorf("Months = %d", iv.Months)
	}
}

func TestIntervalConstructorsOverflow(t *testing.T) {
	if _, err := dayTime(math.MaxInt64, 24, 0, 0, 0); !errors.Is(err, ErrOverflow) {
		t.Errorf("dayTime(max days, 24h) = %v", err)
	}
	if _, err := dayTime(0, math.MaxInt64, math.MaxInt64, 0, 0); err != nil {
		t.Errorf("dayTime(0, max hours, max minutes) = %v", err)
	}
	if _, err := yearMonth(math.MaxInt64/12+1, 0); !errors.Is(err, ErrOverflow) {
		t.Errorf("yearMonth(too many years) = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("YearMonth did not panic on overflow")
		}
	}()
	YearMonth(math.MinInt64, 0)
}
