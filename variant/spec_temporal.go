package variant

import (
	"fmt"
)

// ============================================================
// Date
// ============================================================

// DateSpec describes a Gregorian calendar date with day precision between
// 0001-01-01 and 9999-12-31. It has no options and is always at access level.
type DateSpec struct{}

// NewDateSpec returns a date DataSpec.
func NewDateSpec() *DataSpec {
	return NewPrimitiveSpec(&DateSpec{})
}

// Kind returns KindDate.
func (s *DateSpec) Kind() Kind { return KindDate }

// Level is always LevelAccess: the spec has no options.
func (s *DateSpec) Level() Level { return LevelAccess }

// IsOrdered always reports true.
func (s *DateSpec) IsOrdered() bool { return true }
func (s *DateSpec) String() string { return "Date" }

// IsCompatibleWith reports whether s may stand in for required.
func (s *DateSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	_, ok := required.(*DateSpec)
	return ok
}

// ============================================================
// Time resolution and zone
// ============================================================

// TimeType says whether a time carries a UTC offset.
type TimeType uint8

const (
	LocalTime TimeType = iota + 1
	ZonedTime
)

// String returns the name of the time type.
func (t TimeType) String() string {
	switch t {
	case LocalTime:
		return "Local"
	case ZonedTime:
		return "Zoned"
	default:
		return "Unknown"
	}
}

// TimeResolution is the finest time-of-day component a value may carry.
type TimeResolution uint8

const (
	Second TimeResolution = iota + 1
	Millisecond
	Microsecond100
	Microsecond
	Nanosecond
)

// String returns the name of the time resolution.
func (r TimeResolution) String() string {
	switch r {
	case Second:
		return "Second"
	case Millisecond:
		return "Millisecond"
	case Microsecond100:
		return "Microsecond100"
	case Microsecond:
		return "Microsecond"
	case Nanosecond:
		return "Nanosecond"
	default:
		return "Unknown"
	}
}

// FitsTicks reports whether values at this resolution can be stored as
// 100-microsecond ticks.
func (r TimeResolution) FitsTicks() bool {
	return r >= Second && r <= Microsecond100
}

func validTimeResolution(r TimeResolution) bool {
	return r >= Second && r <= Nanosecond
}

// ============================================================
// Time
// ============================================================

// TimeSpec describes a time of day.
type TimeSpec struct {
	typ        *TimeType
	resolution *TimeResolution
}

// Type returns the time type and whether it is bound.
func (s *TimeSpec) Type() (TimeType, bool) {
	if s.typ == nil {
		return 0, false
	}
	return *s.typ, true
}

// Resolution returns the resolution and whether it is bound.
func (s *TimeSpec) Resolution() (TimeResolution, bool) {
	if s.resolution == nil {
		return 0, false
	}
	return *s.resolution, true
}

// IsZoned reports whether the spec is bound to ZonedTime.
func (s *TimeSpec) IsZoned() bool {
	return s.typ != nil && *s.typ == ZonedTime
}

// Kind returns KindTime.
func (s *TimeSpec) Kind() Kind { return KindTime }

// IsOrdered always reports true.
func (s *TimeSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *TimeSpec) Level() Level {
	if s.typ != nil && s.resolution != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *TimeSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*TimeSpec)
	if !ok {
		return false
	}
	return fieldCompatible(s.typ, r.typ) && fieldCompatible(s.resolution, r.resolution)
}

// String renders the spec as Time{...}.
func (s *TimeSpec) String() string {
	return fmt.Sprintf("Time{%s, %s}", fieldString(s.typ), fieldString(s.resolution))
}

// TimeSpecBuilder builds time specs.
type TimeSpecBuilder struct {
	spec TimeSpec
}

// NewTimeSpecBuilder returns an empty time spec builder.
func NewTimeSpecBuilder() *TimeSpecBuilder {
	return &TimeSpecBuilder{}
}

// WithType binds the time type.
func (b *TimeSpecBuilder) WithType(t TimeType) *TimeSpecBuilder {
	b.spec.typ = ptr(t)
	return b
}

// WithResolution binds the resolution.
func (b *TimeSpecBuilder) WithResolution(r TimeResolution) *TimeSpecBuilder {
	b.spec.resolution = ptr(r)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *TimeSpecBuilder) TryBuild() (*DataSpec, error) {
	if err := checkTimeOptions(b.spec.typ, b.spec.resolution); err != nil {
		return nil, err
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *TimeSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewTimeSpec is shorthand for an access-level time spec.
func NewTimeSpec(t TimeType, r TimeResolution) *DataSpec {
	return NewTimeSpecBuilder().WithType(t).WithResolution(r).Build()
}

func checkTimeOptions(t *TimeType, r *TimeResolution) error {
	if t != nil && *t != LocalTime && *t != ZonedTime {
		return fmt.Errorf("variant: time type %d is not valid", *t)
	}
	if r != nil && !validTimeResolution(*r) {
		return fmt.Errorf("variant: time resolution %d is not valid", *r)
	}
	return nil
}

// ============================================================
// DateTime
// ============================================================

// DateTimeSpec describes a calendar date combined with a time of day.
type DateTimeSpec struct {
	typ        *TimeType
	resolution *TimeResolution
}

// Type returns the time type and whether it is bound.
func (s *DateTimeSpec) Type() (TimeType, bool) {
	if s.typ == nil {
		return 0, false
	}
	return *s.typ, true
}

// Resolution returns the resolution and whether it is bound.
func (s *DateTimeSpec) Resolution() (TimeResolution, bool) {
	if s.resolution == nil {
		return 0, false
	}
	return *s.resolution, true
}

// TimeSpec returns the spec of the time-of-day part.
func (s *DateTimeSpec) TimeSpec() *TimeSpec {
	return &TimeSpec{typ: s.typ, resolution: s.resolution}
}

// Kind returns KindDateTime.
func (s *DateTimeSpec) Kind() Kind { return KindDateTime }

// IsOrdered always reports true.
func (s *DateTimeSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *DateTimeSpec) Level() Level {
	if s.typ != nil && s.resolution != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *DateTimeSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*DateTimeSpec)
	if !ok {
		return false
	}
	return fieldCompatible(s.typ, r.typ) && fieldCompatible(s.resolution, r.resolution)
}

// String renders the spec as DateTime{...}.
func (s *DateTimeSpec) String() string {
	return fmt.Sprintf("DateTime{%s, %s}", fieldString(s.typ), fieldString(s.resolution))
}

// DateTimeSpecBuilder builds date-time specs.
type DateTimeSpecBuilder struct {
	spec DateTimeSpec
}

// NewDateTimeSpecBuilder returns an empty date-time spec builder.
func NewDateTimeSpecBuilder() *DateTimeSpecBuilder {
	return &DateTimeSpecBuilder{}
}

// WithType binds the time type.
func (b *DateTimeSpecBuilder) WithType(t TimeType) *DateTimeSpecBuilder {
	b.spec.typ = ptr(t)
	return b
}

// WithResolution binds the resolution.
func (b *DateTimeSpecBuilder) WithResolution(r TimeResolution) *DateTimeSpecBuilder {
	b.spec.resolution = ptr(r)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *DateTimeSpecBuilder) TryBuild() (*DataSpec, error) {
	if err := checkTimeOptions(b.spec.typ, b.spec.resolution); err != nil {
		return nil, err
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *DateTimeSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewDateTimeSpec is shorthand for an access-level date-time spec.
func NewDateTimeSpec(t TimeType, r TimeResolution) *DataSpec {
	return NewDateTimeSpecBuilder().WithType(t).WithResolution(r).Build()
}

// ============================================================
// Duration
// ============================================================

// DurationType selects which components a duration carries.
type DurationType uint8

const (
	// YearToMonth durations carry years and months.
	YearToMonth DurationType = iota + 1
	// DayToSecond durations carry days, hours, minutes, seconds and a
	// fraction of a second.
	DayToSecond
)

// String returns the name of the duration type.
func (t DurationType) String() string {
	switch t {
	case YearToMonth:
		return "YearToMonth"
	case DayToSecond:
		return "DayToSecond"
	default:
		return "Unknown"
	}
}

// DurationResolution is the finest component a duration may carry.
type DurationResolution uint8

const (
	Years DurationResolution = iota + 1
	Months
	Days
	Hours
	Minutes
	Seconds
	Milliseconds
	Microseconds
	Nanoseconds
)

// String returns the name of the duration resolution.
func (r DurationResolution) String() string {
	switch r {
	case Years:
		return "Years"
	case Months:
		return "Months"
	case Days:
		return "Days"
	case Hours:
		return "Hours"
	case Minutes:
		return "Minutes"
	case Seconds:
		return "Seconds"
	case Milliseconds:
		return "Milliseconds"
	case Microseconds:
		return "Microseconds"
	case Nanoseconds:
		return "Nanoseconds"
	default:
		return "Unknown"
	}
}

// Allows reports whether resolution r can be used with duration type t.
func (t DurationType) Allows(r DurationResolution) bool {
	switch t {
	case YearToMonth:
		return r == Years || r == Months
	case DayToSecond:
		return r >= Days && r <= Nanoseconds
	default:
		return false
	}
}

// DurationSpec describes an elapsed amount of time.
type DurationSpec struct {
	typ        *DurationType
	resolution *DurationResolution
}

// Type returns the duration type and whether it is bound.
func (s *DurationSpec) Type() (DurationType, bool) {
	if s.typ == nil {
		return 0, false
	}
	return *s.typ, true
}

// Resolution returns the resolution and whether it is bound.
func (s *DurationSpec) Resolution() (DurationResolution, bool) {
	if s.resolution == nil {
		return 0, false
	}
	return *s.resolution, true
}

// Kind returns KindDuration.
func (s *DurationSpec) Kind() Kind { return KindDuration }

// IsOrdered always reports true.
func (s *DurationSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *DurationSpec) Level() Level {
	if s.typ != nil && s.resolution != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *DurationSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*DurationSpec)
	if !ok {
		return false
	}
	return fieldCompatible(s.typ, r.typ) && fieldCompatible(s.resolution, r.resolution)
}

// String renders the spec as Duration{...}.
func (s *DurationSpec) String() string {
	return fmt.Sprintf("Duration{%s, %s}", fieldString(s.typ), fieldString(s.resolution))
}

// DurationSpecBuilder builds duration specs.
type DurationSpecBuilder struct {
	spec DurationSpec
}

// NewDurationSpecBuilder returns an empty duration spec builder.
func NewDurationSpecBuilder() *DurationSpecBuilder {
	return &DurationSpecBuilder{}
}

// WithType binds the duration type.
func (b *DurationSpecBuilder) WithType(t DurationType) *DurationSpecBuilder {
	b.spec.typ = ptr(t)
	return b
}

// WithResolution binds the resolution.
func (b *DurationSpecBuilder) WithResolution(r DurationResolution) *DurationSpecBuilder {
	b.spec.resolution = ptr(r)
	return b
}

// TryBuild returns the spec, or an error when the resolution does not fit
// the duration type.
func (b *DurationSpecBuilder) TryBuild() (*DataSpec, error) {
	t, r := b.spec.typ, b.spec.resolution
	if t != nil && *t != YearToMonth && *t != DayToSecond {
		return nil, fmt.Errorf("variant: duration type %d is not valid", *t)
	}
	if r != nil {
		if *r < Years || *r > Nanoseconds {
			return nil, fmt.Errorf("variant: duration resolution %d is not valid", *r)
		}
		if t == nil {
			return nil, fmt.Errorf("variant: duration resolution %s requires a duration type", *r)
		}
		if !t.Allows(*r) {
			return nil, fmt.Errorf("variant: duration resolution %s does not fit duration type %s", *r, *t)
		}
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *DurationSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewDurationSpec is shorthand for an access-level duration spec.
func NewDurationSpec(t DurationType, r DurationResolution) *DataSpec {
	return NewDurationSpecBuilder().WithType(t).WithResolution(r).Build()
}
