package variant

import (
	"iter"

	"github.com/google/uuid"
)

// Adaptors are the raw storage operations a backend implements for one
// primitive kind. They perform no validation: every value they receive has
// already been checked by the accessor wrapping them. Mutating operations
// may return a backend failure, which the accessor reports as a
// *ProviderError.
//
// An adaptor that declares a capability unsupported (for example a
// nanosecond time adaptor asked for ticks) panics when the corresponding
// method is called.

// BooleanAdaptor stores a boolean.
type BooleanAdaptor interface {
	Bool() bool
	SetBool(v bool) error
}

// IntegerAdaptor stores a fixed-width integer. Signed specs use the Int64
// pair, unsigned specs the Uint64 pair.
type IntegerAdaptor interface {
	Int64() int64
	Uint64() uint64
	SetInt64(v int64) error
	SetUint64(v uint64) error
}

// FloatAdaptor stores a 32- or 64-bit float.
type FloatAdaptor interface {
	Float64() float64
	SetFloat64(v float64) error
}

// StringAdaptor stores a string.
type StringAdaptor interface {
	Text() string
	SetText(v string) error
}

// GuidAdaptor stores a 128-bit identifier.
type GuidAdaptor interface {
	UUID() uuid.UUID
	SetUUID(v uuid.UUID) error
}

// DateAdaptor stores a calendar date either as a day count or as
// year/month/day components.
type DateAdaptor interface {
	// StoresDateAsDays selects the Days pair; otherwise the YearMonthDay
	// pair is used.
	StoresDateAsDays() bool
	Days() int32
	SetDays(days int32) error
	YearMonthDay() (year, month, day int)
	SetYearMonthDay(year, month, day int) error
}

// TimeAdaptor stores a time of day as nanoseconds, 100-microsecond ticks or
// six components, plus a UTC offset for zoned times.
type TimeAdaptor interface {
	CanReturnTimeAsNanos() bool
	CanReturnTimeAsTicks() bool
	Nanos() uint64
	SetNanos(n uint64) error
	Ticks() uint32
	SetTicks(t uint32) error
	Components() TimeComponents
	SetComponents(c TimeComponents) error
	OffsetSeconds() int32
	SetOffsetSeconds(s int32) error
}

// DateTimeAdaptor stores a date and a time of day.
type DateTimeAdaptor interface {
	Date() DateAdaptor
	Time() TimeAdaptor
}

// DurationAdaptor stores an interval.
type DurationAdaptor interface {
	Interval() Interval
	SetInterval(iv Interval) error
}

// ListAdaptor stores a list of variables. Index arguments are always in
// range and lengths are already checked against the storage policy.
type ListAdaptor interface {
	IsFixedSize() bool
	IsFixedCapacity() bool
	// Capacity is meaningful only for fixed-size and fixed-capacity lists.
	Capacity() int
	Len() int
	Get(i int) *Variable
	Set(i int, v *Variable) error
	Push(v *Variable) error
	Pop() (*Variable, error)
	Insert(i int, v *Variable) error
	Remove(i int) (*Variable, error)
	Clear() error
	All() iter.Seq[*Variable]
}

// SetAdaptor stores a set of distinct variables.
type SetAdaptor interface {
	Len() int
	Contains(v *Variable) bool
	// Insert reports whether v was added.
	Insert(v *Variable) (bool, error)
	// Remove reports whether v was present.
	Remove(v *Variable) (bool, error)
	Clear() error
	All() iter.Seq[*Variable]
}

// MapAdaptor stores key/value pairs.
type MapAdaptor interface {
	Len() int
	Get(key *Variable) (*Variable, bool)
	// Insert reports whether key was newly added rather than overwritten.
	Insert(key, value *Variable) (bool, error)
	Remove(key *Variable) (*Variable, bool, error)
	Clear() error
	All() iter.Seq2[*Variable, *Variable]
}

// TupleAdaptor stores a fixed number of heterogeneous variables.
type TupleAdaptor interface {
	Len() int
	Get(i int) *Variable
	Set(i int, v *Variable) error
}

// SequenceAdaptor yields elements once, front to back.
type SequenceAdaptor interface {
	Next() (*Variable, bool)
}

// Unsupported panics with a message naming an adaptor capability that the
// adaptor declared it does not provide.
func Unsupported(capability string) {
	panic("variant: adaptor does not support " + capability)
}
