package transient

import (
	"github.com/LennyHof/Epiphany-sub000/variant"
)

// ============================================================
// Dates
// ============================================================

type dateDays struct{ days int32 }

func (d *dateDays) StoresDateAsDays() bool { return true }
func (d *dateDays) Days() int32 { return d.days }

func (d *dateDays) SetDays(days int32) error {
	d.days = days
	return nil
}

func (d *dateDays) YearMonthDay() (int, int, int) {
	variant.Unsupported("year/month/day date storage")
	return 0, 0, 0
}

func (d *dateDays) SetYearMonthDay(int, int, int) error {
	variant.Unsupported("year/month/day date storage")
	return nil
}

type dateYMD struct {
	year  int16
	month uint8
	day   uint8
}

func (d *dateYMD) StoresDateAsDays() bool { return false }

func (d *dateYMD) Days() int32 {
	variant.Unsupported("day-count date storage")
	return 0
}

func (d *dateYMD) SetDays(int32) error {
	variant.Unsupported("day-count date storage")
	return nil
}

func (d *dateYMD) YearMonthDay() (int, int, int) {
	return int(d.year), int(d.month), int(d.day)
}

func (d *dateYMD) SetYearMonthDay(year, month, day int) error {
	d.year, d.month, d.day = int16(year), uint8(month), uint8(day)
	return nil
}

// ============================================================
// Times of day
// ============================================================

// offset is shared by every time storage strategy.
type offset struct{ seconds int32 }

func (o *offset) OffsetSeconds() int32 { return o.seconds }

func (o *offset) SetOffsetSeconds(s int32) error {
	o.seconds = s
	return nil
}

type timeNanos struct {
	offset
	nanos uint64
}

func (t *timeNanos) CanReturnTimeAsNanos() bool { return true }
func (t *timeNanos) CanReturnTimeAsTicks() bool { return false }
func (t *timeNanos) Nanos() uint64 { return t.nanos }

func (t *timeNanos) SetNanos(n uint64) error {
	t.nanos = n
	return nil
}

func (t *timeNanos) Ticks() uint32 {
	variant.Unsupported("tick time storage")
	return 0
}

func (t *timeNanos) SetTicks(uint32) error {
	variant.Unsupported("tick time storage")
	return nil
}

func (t *timeNanos) Components() variant.TimeComponents {
	variant.Unsupported("component time storage")
	return variant.TimeComponents{}
}

func (t *timeNanos) SetComponents(variant.TimeComponents) error {
	variant.Unsupported("component time storage")
	return nil
}

type timeTicks struct {
	offset
	ticks uint32
}

func (t *timeTicks) CanReturnTimeAsNanos() bool { return false }
func (t *timeTicks) CanReturnTimeAsTicks() bool { return true }
func (t *timeTicks) Ticks() uint32 { return t.ticks }

func (t *timeTicks) SetTicks(v uint32) error {
	t.ticks = v
	return nil
}

func (t *timeTicks) Nanos() uint64 {
	variant.Unsupported("nanosecond time storage")
	return 0
}

func (t *timeTicks) SetNanos(uint64) error {
	variant.Unsupported("nanosecond time storage")
	return nil
}

func (t *timeTicks) Components() variant.TimeComponents {
	variant.Unsupported("component time storage")
	return variant.TimeComponents{}
}

func (t *timeTicks) SetComponents(variant.TimeComponents) error {
	variant.Unsupported("component time storage")
	return nil
}

type timeComponents struct {
	offset
	c variant.TimeComponents
}

func (t *timeComponents) CanReturnTimeAsNanos() bool { return false }
func (t *timeComponents) CanReturnTimeAsTicks() bool { return false }
func (t *timeComponents) Components() variant.TimeComponents { return t.c }

func (t *timeComponents) SetComponents(c variant.TimeComponents) error {
	t.c = c
	return nil
}

func (t *timeComponents) Nanos() uint64 {
	variant.Unsupported("nanosecond time storage")
	return 0
}

func (t *timeComponents) SetNanos(uint64) error {
	variant.Unsupported("nanosecond time storage")
	return nil
}

func (t *timeComponents) Ticks() uint32 {
	variant.Unsupported("tick time storage")
	return 0
}

func (t *timeComponents) SetTicks(uint32) error {
	variant.Unsupported("tick time storage")
	return nil
}

type dateTime struct {
	date variant.DateAdaptor
	time variant.TimeAdaptor
}

func (d *dateTime) Date() variant.DateAdaptor { return d.date }
func (d *dateTime) Time() variant.TimeAdaptor { return d.time }
