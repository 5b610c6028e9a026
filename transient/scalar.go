package transient

import (
	"github.com/google/uuid"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

type boolCell struct{ v bool }

func (c *boolCell) Bool() bool { return c.v }

func (c *boolCell) SetBool(v bool) error {
	c.v = v
	return nil
}

// intCell stores an integer at its native width. Range checks happen in
// the accessor, so the conversions below never truncate.
type intCell[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64] struct{ v T }

func (c *intCell[T]) Int64() int64 { return int64(c.v) }
func (c *intCell[T]) Uint64() uint64 { return uint64(c.v) }

func (c *intCell[T]) SetInt64(v int64) error {
	c.v = T(v)
	return nil
}

func (c *intCell[T]) SetUint64(v uint64) error {
	c.v = T(v)
	return nil
}

type floatCell[T float32 | float64] struct{ v T }

func (c *floatCell[T]) Float64() float64 { return float64(c.v) }

func (c *floatCell[T]) SetFloat64(v float64) error {
	c.v = T(v)
	return nil
}

type stringCell struct{ v string }

func (c *stringCell) Text() string { return c.v }

func (c *stringCell) SetText(v string) error {
	c.v = v
	return nil
}

type guidCell struct{ v uuid.UUID }

func (c *guidCell) UUID() uuid.UUID { return c.v }

func (c *guidCell) SetUUID(v uuid.UUID) error {
	c.v = v
	return nil
}

type durationCell struct{ v variant.Interval }

func (c *durationCell) Interval() variant.Interval { return c.v }

func (c *durationCell) SetInterval(v variant.Interval) error {
	c.v = v
	return nil
}
