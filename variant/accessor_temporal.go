package variant

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ============================================================
// Date
// ============================================================

// DateAccessor reads and writes a Gregorian date.
type DateAccessor struct {
	spec    *DateSpec
	adaptor DateAdaptor
}

// Spec returns the spec the date was created with.
func (a *DateAccessor) Spec() *DateSpec { return a.spec }

// Days returns the day count since 0001-01-01.
func (a *DateAccessor) Days() int32 {
	if a.adaptor.StoresDateAsDays() {
		return a.adaptor.Days()
	}
	return daysFrom(a.adaptor.YearMonthDay())
}

// YearMonthDay returns the calendar components.
func (a *DateAccessor) YearMonthDay() (year, month, day int) {
	if a.adaptor.StoresDateAsDays() {
		return dateFrom(a.adaptor.Days())
	}
	return a.adaptor.YearMonthDay()
}

// Year returns the calendar year.
func (a *DateAccessor) Year() int {
	y, _, _ := a.YearMonthDay()
	return y
}

// Month returns the month, 1 to 12.
func (a *DateAccessor) Month() int {
	_, m, _ := a.YearMonthDay()
	return m
}

// Day returns the day of the month.
func (a *DateAccessor) Day() int {
	_, _, d := a.YearMonthDay()
	return d
}

// SetDate stores a calendar date after validating it.
func (a *DateAccessor) SetDate(year, month, day int) error {
	if err := CheckDate(year, month, day); err != nil {
		return err
	}
	if a.adaptor.StoresDateAsDays() {
		return providerError("set date", a.adaptor.SetDays(daysFrom(year, month, day)))
	}
	return providerError("set date", a.adaptor.SetYearMonthDay(year, month, day))
}

// SetDays stores a day count after validating it.
func (a *DateAccessor) SetDays(days int32) error {
	if days < 0 || days > MaxDays {
		return &RangeError{Component: "days", Value: int64(days), Min: 0, Max: MaxDays}
	}
	if a.adaptor.StoresDateAsDays() {
		return providerError("set date", a.adaptor.SetDays(days))
	}
	y, m, d := dateFrom(days)
	return providerError("set date", a.adaptor.SetYearMonthDay(y, m, d))
}

// DayOfWeek returns the weekday of the date.
func (a *DateAccessor) DayOfWeek() Weekday { return DayOfWeekOf(a.YearMonthDay()) }

// DayOfYear returns the ordinal day, 1 to 366.
func (a *DateAccessor) DayOfYear() int { return DayOfYearOf(a.YearMonthDay()) }

// IsLeapYear reports whether the date falls in a leap year.
func (a *DateAccessor) IsLeapYear() bool { return IsLeapYear(a.Year()) }

// Parse stores a date written as YYYY-MM-DD or YYYYMMDD.
func (a *DateAccessor) Parse(s string) error {
	y, m, d, err := ParseDate(s)
	if err != nil {
		return err
	}
	return a.SetDate(y, m, d)
}

// Time returns midnight UTC of the date.
func (a *DateAccessor) Time() time.Time {
	y, m, d := a.YearMonthDay()
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// SetFromTime stores the calendar date of t in t's location.
func (a *DateAccessor) SetFromTime(t time.Time) error {
	return a.SetDate(t.Year(), int(t.Month()), t.Day())
}

// SetEqualTo copies other's value.
func (a *DateAccessor) SetEqualTo(other *DateAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.SetDays(other.Days())
}

// String renders the value in its text format.
func (a *DateAccessor) String() string { return FormatDate(a.YearMonthDay()) }

func (a *DateAccessor) kind() Kind { return KindDate }

func (a *DateAccessor) assign(other accessor) error {
	return a.SetDays(other.(*DateAccessor).Days())
}

func (a *DateAccessor) equal(other accessor) bool {
	o, ok := other.(*DateAccessor)
	return ok && a.Days() == o.Days()
}

func (a *DateAccessor) compare(other accessor) (int, error) {
	return cmp.Compare(a.Days(), other.(*DateAccessor).Days()), nil
}

func (a *DateAccessor) hash(d *xxhash.Digest) { hashInt64(d, int64(a.Days())) }

// ============================================================
// Time
// ============================================================

type timeStrategy uint8

const (
	timeAsComponents timeStrategy = iota
	timeAsTicks
	timeAsNanos
)

// TimeAccessor reads and writes a time of day at a declared resolution.
type TimeAccessor struct {
	spec       *TimeSpec
	adaptor    TimeAdaptor
	resolution TimeResolution
	zoned      bool
	strategy   timeStrategy
}

func newTimeAccessor(spec *TimeSpec, adaptor TimeAdaptor) (*TimeAccessor, error) {
	t, _ := spec.Type()
	r, _ := spec.Resolution()
	return newTimeAccessorFor(spec, t, r, adaptor)
}

func newTimeAccessorFor(spec *TimeSpec, t TimeType, r TimeResolution, adaptor TimeAdaptor) (*TimeAccessor, error) {
	a := &TimeAccessor{spec: spec, adaptor: adaptor, resolution: r, zoned: t == ZonedTime}
	switch {
	case adaptor.CanReturnTimeAsNanos():
		a.strategy = timeAsNanos
	case adaptor.CanReturnTimeAsTicks():
		if !r.FitsTicks() {
			return nil, fmt.Errorf("%w: tick storage cannot hold %s resolution", ErrNotSupported, r)
		}
		a.strategy = timeAsTicks
	default:
		a.strategy = timeAsComponents
	}
	return a, nil
}

// Spec returns the spec the time was created with.
func (a *TimeAccessor) Spec() *TimeSpec { return a.spec }

// Resolution returns the declared resolution.
func (a *TimeAccessor) Resolution() TimeResolution { return a.resolution }

// IsZoned reports whether the time carries a UTC offset.
func (a *TimeAccessor) IsZoned() bool { return a.zoned }

// Components returns the time split into its components.
func (a *TimeAccessor) Components() TimeComponents {
	switch a.strategy {
	case timeAsNanos:
		return ComponentsFromNanos(a.adaptor.Nanos())
	case timeAsTicks:
		return ComponentsFromTicks(a.adaptor.Ticks())
	default:
		return a.adaptor.Components()
	}
}

// Hour returns the hour, 0 to 23.
func (a *TimeAccessor) Hour() int { return a.Components().Hour }

// Minute returns the minute, 0 to 59.
func (a *TimeAccessor) Minute() int { return a.Components().Minute }

// Second returns the second, 0 to 59.
func (a *TimeAccessor) Second() int { return a.Components().Second }

// Millisecond returns the millisecond component.
func (a *TimeAccessor) Millisecond() int { return a.Components().Millisecond }

// Microsecond returns the microsecond component.
func (a *TimeAccessor) Microsecond() int { return a.Components().Microsecond }

// Nanosecond returns the nanosecond component.
func (a *TimeAccessor) Nanosecond() int { return a.Components().Nanosecond }

// NanosOfDay returns nanoseconds since midnight.
func (a *TimeAccessor) NanosOfDay() uint64 {
	if a.strategy == timeAsNanos {
		return a.adaptor.Nanos()
	}
	return a.Components().NanosOfDay()
}

// SetTime stores c after checking component ranges and the declared
// resolution.
func (a *TimeAccessor) SetTime(c TimeComponents) error {
	if err := c.Check(); err != nil {
		return err
	}
	if err := c.CheckResolution(a.resolution); err != nil {
		return err
	}
	var err error
	switch a.strategy {
	case timeAsNanos:
		err = a.adaptor.SetNanos(c.NanosOfDay())
	case timeAsTicks:
		err = a.adaptor.SetTicks(c.Ticks())
	default:
		err = a.adaptor.SetComponents(c)
	}
	return providerError("set time", err)
}

// SetHMS is SetTime with only hour, minute and second.
func (a *TimeAccessor) SetHMS(hour, minute, second int) error {
	return a.SetTime(TimeComponents{Hour: hour, Minute: minute, Second: second})
}

// SetNanosOfDay stores nanoseconds since midnight.
func (a *TimeAccessor) SetNanosOfDay(n uint64) error {
	if n >= NanosPerDay {
		return &RangeError{Component: "nanos of day", Value: int64(n), Min: 0, Max: NanosPerDay - 1}
	}
	return a.SetTime(ComponentsFromNanos(n))
}

// Offset returns the UTC offset in seconds. Local times report 0.
func (a *TimeAccessor) Offset() int32 {
	if !a.zoned {
		return 0
	}
	return a.adaptor.OffsetSeconds()
}

// SetOffset stores the UTC offset of a zoned time.
func (a *TimeAccessor) SetOffset(seconds int32) error {
	if !a.zoned {
		return fmt.Errorf("%w: offset on a local time", ErrNotSupported)
	}
	if err := CheckOffset(seconds); err != nil {
		return err
	}
	return providerError("set offset", a.adaptor.SetOffsetSeconds(seconds))
}

// Parse stores a time written as [T]HH:MM:SS[.fraction] or
// [T]HHMMSS[.fraction]. Zoned times require a trailing Z or ±HH:MM.
func (a *TimeAccessor) Parse(s string) error {
	clock, offset := s, ""
	if a.zoned {
		clock, offset = splitOffset(s)
		if offset == "" {
			return &FormatError{What: "time", Input: s, Reason: "zoned time requires an offset"}
		}
	}
	c, err := ParseTimeOfDay(clock)
	if err != nil {
		return withInput(err, s)
	}
	var secs int32
	if a.zoned {
		if secs, err = ParseOffset(offset); err != nil {
			return withInput(err, s)
		}
	}
	if err := a.SetTime(c); err != nil {
		return err
	}
	if a.zoned {
		return a.SetOffset(secs)
	}
	return nil
}

func withInput(err error, input string) error {
	if fe, ok := err.(*FormatError); ok {
		fe.Input = input
	}
	return err
}

// SetEqualTo copies other's value.
func (a *TimeAccessor) SetEqualTo(other *TimeAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

// String renders the value in its text format.
func (a *TimeAccessor) String() string {
	s := FormatTimeOfDay(a.Components())
	if a.zoned {
		s += FormatOffset(a.Offset())
	}
	return s
}

func (a *TimeAccessor) kind() Kind { return KindTime }

func (a *TimeAccessor) assign(other accessor) error {
	o := other.(*TimeAccessor)
	if err := a.SetTime(o.Components()); err != nil {
		return err
	}
	if a.zoned {
		return a.SetOffset(o.Offset())
	}
	return nil
}

func (a *TimeAccessor) equal(other accessor) bool {
	o, ok := other.(*TimeAccessor)
	return ok && a.NanosOfDay() == o.NanosOfDay() && a.Offset() == o.Offset()
}

// compare orders zoned times by their UTC instant, then by offset.
func (a *TimeAccessor) compare(other accessor) (int, error) {
	o := other.(*TimeAccessor)
	x := int64(a.NanosOfDay()) - int64(a.Offset())*NanosPerSecond
	y := int64(o.NanosOfDay()) - int64(o.Offset())*NanosPerSecond
	if c := cmp.Compare(x, y); c != 0 {
		return c, nil
	}
	return cmp.Compare(a.Offset(), o.Offset()), nil
}

func (a *TimeAccessor) hash(d *xxhash.Digest) {
	hashUint64(d, a.NanosOfDay())
	hashInt64(d, int64(a.Offset()))
}

// ============================================================
// DateTime
// ============================================================

// DateTimeAccessor reads and writes a date combined with a time of day.
type DateTimeAccessor struct {
	spec *DateTimeSpec
	date *DateAccessor
	time *TimeAccessor
}

func newDateTimeAccessor(spec *DateTimeSpec, adaptor DateTimeAdaptor) (*DateTimeAccessor, error) {
	t, _ := spec.Type()
	r, _ := spec.Resolution()
	ta, err := newTimeAccessorFor(spec.TimeSpec(), t, r, adaptor.Time())
	if err != nil {
		return nil, err
	}
	return &DateTimeAccessor{
		spec: spec,
		date: &DateAccessor{spec: &DateSpec{}, adaptor: adaptor.Date()},
		time: ta,
	}, nil
}

// Spec returns the spec the datetime was created with.
func (a *DateTimeAccessor) Spec() *DateTimeSpec { return a.spec }

// Date returns the accessor of the date part.
func (a *DateTimeAccessor) Date() *DateAccessor { return a.date }

// Time returns the accessor of the time-of-day part.
func (a *DateTimeAccessor) Time() *TimeAccessor { return a.time }

// SetDateTime stores both parts. Nothing is stored when either part is
// invalid.
func (a *DateTimeAccessor) SetDateTime(year, month, day int, c TimeComponents) error {
	if err := CheckDate(year, month, day); err != nil {
		return err
	}
	if err := c.Check(); err != nil {
		return err
	}
	if err := c.CheckResolution(a.time.resolution); err != nil {
		return err
	}
	if err := a.date.SetDate(year, month, day); err != nil {
		return err
	}
	return a.time.SetTime(c)
}

// GoTime converts to a time.Time: UTC wall clock for local date-times, a
// fixed zone for zoned ones.
func (a *DateTimeAccessor) GoTime() time.Time {
	y, m, d := a.date.YearMonthDay()
	c := a.time.Components()
	loc := time.UTC
	if a.time.zoned {
		loc = time.FixedZone("", int(a.time.Offset()))
	}
	nanos := c.Millisecond*1_000_000 + c.Microsecond*1_000 + c.Nanosecond
	return time.Date(y, time.Month(m), d, c.Hour, c.Minute, c.Second, nanos, loc)
}

// SetFromTime stores t's wall clock in t's location, truncated to the
// declared resolution. Zoned date-times also store t's offset.
func (a *DateTimeAccessor) SetFromTime(t time.Time) error {
	c := truncateComponents(TimeComponents{
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / 1_000_000,
		Microsecond: t.Nanosecond() / 1_000 % 1_000,
		Nanosecond:  t.Nanosecond() % 1_000,
	}, a.time.resolution)
	if err := a.SetDateTime(t.Year(), int(t.Month()), t.Day(), c); err != nil {
		return err
	}
	if a.time.zoned {
		_, off := t.Zone()
		return a.time.SetOffset(int32(off))
	}
	return nil
}

func truncateComponents(c TimeComponents, r TimeResolution) TimeComponents {
	switch r {
	case Second:
		c.Millisecond = 0
		fallthrough
	case Millisecond:
		c.Microsecond = 0
		c.Nanosecond = 0
	case Microsecond100:
		c.Microsecond -= c.Microsecond % 100
		fallthrough
	case Microsecond:
		c.Nanosecond = 0
	}
	return c
}

// Parse stores text of the form YYYY-MM-DDTHH:MM:SS[.fraction][offset].
func (a *DateTimeAccessor) Parse(s string) error {
	ds, ts, ok := strings.Cut(s, "T")
	if !ok {
		return &FormatError{What: "datetime", Input: s, Reason: "missing T separator"}
	}
	y, m, d, err := ParseDate(ds)
	if err != nil {
		return withInput(err, s)
	}
	clock, offset := ts, ""
	if a.time.zoned {
		clock, offset = splitOffset(ts)
		if offset == "" {
			return &FormatError{What: "datetime", Input: s, Reason: "zoned date-time requires an offset"}
		}
	}
	c, err := ParseTimeOfDay(clock)
	if err != nil {
		return withInput(err, s)
	}
	var secs int32
	if a.time.zoned {
		if secs, err = ParseOffset(offset); err != nil {
			return withInput(err, s)
		}
	}
	if err := a.SetDateTime(y, m, d, c); err != nil {
		return err
	}
	if a.time.zoned {
		return a.time.SetOffset(secs)
	}
	return nil
}

// SetEqualTo copies other's value.
func (a *DateTimeAccessor) SetEqualTo(other *DateTimeAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

// String renders the value in its text format.
func (a *DateTimeAccessor) String() string {
	return a.date.String() + "T" + a.time.String()
}

func (a *DateTimeAccessor) kind() Kind { return KindDateTime }

func (a *DateTimeAccessor) assign(other accessor) error {
	o := other.(*DateTimeAccessor)
	if err := a.date.assign(o.date); err != nil {
		return err
	}
	return a.time.assign(o.time)
}

func (a *DateTimeAccessor) equal(other accessor) bool {
	o, ok := other.(*DateTimeAccessor)
	return ok && a.date.equal(o.date) && a.time.equal(o.time)
}

// instant returns UTC seconds since 0001-01-01 and the nanosecond fraction.
func (a *DateTimeAccessor) instant() (int64, int64) {
	n := int64(a.time.NanosOfDay())
	secs := int64(a.date.Days())*86_400 + n/NanosPerSecond - int64(a.time.Offset())
	return secs, n % NanosPerSecond
}

func (a *DateTimeAccessor) compare(other accessor) (int, error) {
	o := other.(*DateTimeAccessor)
	as, an := a.instant()
	bs, bn := o.instant()
	switch {
	case as != bs:
		return cmp.Compare(as, bs), nil
	case an != bn:
		return cmp.Compare(an, bn), nil
	default:
		return cmp.Compare(a.time.Offset(), o.time.Offset()), nil
	}
}

func (a *DateTimeAccessor) hash(d *xxhash.Digest) {
	a.date.hash(d)
	a.time.hash(d)
}

// ============================================================
// Duration
// ============================================================

// DurationAccessor reads and writes a year-to-month or day-to-second
// duration at a declared resolution.
type DurationAccessor struct {
	spec       *DurationSpec
	adaptor    DurationAdaptor
	typ        DurationType
	resolution DurationResolution
}

func newDurationAccessor(spec *DurationSpec, adaptor DurationAdaptor) *DurationAccessor {
	t, _ := spec.Type()
	r, _ := spec.Resolution()
	return &DurationAccessor{spec: spec, adaptor: adaptor, typ: t, resolution: r}
}

// Spec returns the spec the duration was created with.
func (a *DurationAccessor) Spec() *DurationSpec { return a.spec }

// Type returns the duration type.
func (a *DurationAccessor) Type() DurationType { return a.typ }

// Resolution returns the finest component the value may carry.
func (a *DurationAccessor) Resolution() DurationResolution { return a.resolution }

// Interval returns the stored value.
func (a *DurationAccessor) Interval() Interval { return a.adaptor.Interval() }

// TotalMonths returns the year-to-month value in months.
func (a *DurationAccessor) TotalMonths() int64 { return a.Interval().Months }

// Years returns whole years of a year-to-month value.
func (a *DurationAccessor) Years() int64 { return a.Interval().Months / 12 }

// Months returns the months left after whole years.
func (a *DurationAccessor) Months() int64 { return a.Interval().Months % 12 }

// Days returns whole days of a day-to-second value.
func (a *DurationAccessor) Days() int64 { return a.Interval().Days }

// Hours returns the hours left after whole days.
func (a *DurationAccessor) Hours() int64 { return a.Interval().Nanos / (3600 * NanosPerSecond) }

// Minutes returns the minutes left after whole hours.
func (a *DurationAccessor) Minutes() int64 { return a.Interval().Nanos / (60 * NanosPerSecond) % 60 }

// Seconds returns the seconds left after whole minutes.
func (a *DurationAccessor) Seconds() int64 { return a.Interval().Nanos / NanosPerSecond % 60 }

// Nanoseconds returns the fraction of the current second in nanoseconds.
func (a *DurationAccessor) Nanoseconds() int64 { return a.Interval().Nanos % NanosPerSecond }

// SetInterval stores iv after checking it against the duration type and
// resolution.
func (a *DurationAccessor) SetInterval(iv Interval) error {
	switch a.typ {
	case YearToMonth:
		if iv.Days != 0 {
			return &ResolutionError{Component: "days", Value: iv.Days, Resolution: a.resolution.String()}
		}
		if iv.Nanos != 0 {
			return &ResolutionError{Component: "nanoseconds", Value: iv.Nanos, Resolution: a.resolution.String()}
		}
	case DayToSecond:
		if iv.Months != 0 {
			return &RangeError{Component: "months", Value: iv.Months, Min: 0, Max: 0}
		}
		iv = iv.normalize()
	}
	if err := iv.CheckResolution(a.resolution); err != nil {
		return err
	}
	return providerError("set duration", a.adaptor.SetInterval(iv))
}

// SetYearsMonths stores a year-to-month value.
func (a *DurationAccessor) SetYearsMonths(years, months int64) error {
	iv, err := yearMonth(years, months)
	if err != nil {
		return err
	}
	return a.SetInterval(iv)
}

// SetDayTime stores a day-to-second value.
func (a *DurationAccessor) SetDayTime(days, hours, minutes, seconds, nanos int64) error {
	iv, err := dayTime(days, hours, minutes, seconds, nanos)
	if err != nil {
		return err
	}
	return a.SetInterval(iv)
}

// Duration converts a day-to-second value to a time.Duration.
func (a *DurationAccessor) Duration() (time.Duration, error) {
	if a.typ != DayToSecond {
		return 0, fmt.Errorf("%w: %s duration as time.Duration", ErrNotSupported, a.typ)
	}
	return a.Interval().GoDuration()
}

// SetDuration stores a time.Duration in a day-to-second value.
func (a *DurationAccessor) SetDuration(d time.Duration) error {
	return a.SetInterval(IntervalFromDuration(d))
}

// Parse stores text written as PyYmM or PnDTnHnMn[.f]S.
func (a *DurationAccessor) Parse(s string) error {
	iv, typ, err := ParseDuration(s)
	if err != nil {
		return err
	}
	if typ != a.typ && !(iv == Interval{}) {
		return &FormatError{What: "duration", Input: s, Reason: "expected a " + a.typ.String() + " duration"}
	}
	return a.SetInterval(iv)
}

// SetEqualTo copies other's value.
func (a *DurationAccessor) SetEqualTo(other *DurationAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.SetInterval(other.Interval())
}

// String renders the value in its text format.
func (a *DurationAccessor) String() string { return FormatDuration(a.Interval(), a.typ) }

func (a *DurationAccessor) kind() Kind { return KindDuration }

func (a *DurationAccessor) assign(other accessor) error {
	return a.SetInterval(other.(*DurationAccessor).Interval())
}

func (a *DurationAccessor) equal(other accessor) bool {
	o, ok := other.(*DurationAccessor)
	return ok && a.Interval() == o.Interval()
}

func (a *DurationAccessor) compare(other accessor) (int, error) {
	return a.Interval().Compare(other.(*DurationAccessor).Interval()), nil
}

func (a *DurationAccessor) hash(d *xxhash.Digest) {
	iv := a.Interval()
	hashInt64(d, iv.Months)
	hashInt64(d, iv.Days)
	hashInt64(d, iv.Nanos)
}
