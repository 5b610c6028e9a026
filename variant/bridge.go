package variant

import (
	"fmt"
	"time"
)

// Native numeric types accepted by the bridges.
type (
	SignedInt interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64
	}
	UnsignedInt interface {
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
	}
	NativeInt interface {
		SignedInt | UnsignedInt
	}
	NativeFloat interface {
		~float32 | ~float64
	}
)

func isSigned[T NativeInt]() bool {
	var zero T
	return zero-1 < zero
}

// bitsOf counts the bits of T by shifting a one bit out of it.
func bitsOf[T NativeInt]() int {
	var v T = 1
	n := 0
	for v != 0 {
		v <<= 1
		n++
	}
	return n
}

// IntegerFrom stores a native integer through the checked setters.
func IntegerFrom[T NativeInt](a *IntegerAccessor, v T) error {
	if isSigned[T]() {
		return a.SetInt64(int64(v))
	}
	return a.SetUint64(uint64(v))
}

// IntegerAs reads the value as native type T, failing with an overflow
// error when it does not fit.
func IntegerAs[T NativeInt](a *IntegerAccessor) (T, error) {
	lo, hi := integerRange(isSigned[T](), bitsOf[T]())
	if a.signed {
		v := a.adaptor.Int64()
		if v < lo || (v > 0 && uint64(v) > hi) {
			return 0, newOverflow(v, lo, hi)
		}
		return T(v), nil
	}
	v := a.adaptor.Uint64()
	if v > hi {
		return 0, newOverflow(v, lo, hi)
	}
	return T(v), nil
}

// FloatFrom stores a native float through the checked setter.
func FloatFrom[T NativeFloat](a *FloatAccessor, v T) error {
	return a.SetFloat64(float64(v))
}

// FloatAs reads the value as native type T, failing when a float32 target
// cannot hold it.
func FloatAs[T NativeFloat](a *FloatAccessor) (T, error) {
	v := a.Float64()
	var zero T
	if _, single := any(zero).(float32); single {
		if err := checkFloat32(v); err != nil {
			return 0, err
		}
	}
	return T(v), nil
}

// ============================================================
// Variable-level bridges
// ============================================================

// NewInteger creates an integer variable of spec holding v.
func NewInteger[T NativeInt](p DataProvider, spec *DataSpec, v T) (*Variable, error) {
	vr, err := NewVariable(p, spec)
	if err != nil {
		return nil, err
	}
	if vr.Kind() != KindInteger {
		return nil, fmt.Errorf("%w: %s is not an integer spec", ErrIncompatibleSpec, spec)
	}
	if err := IntegerFrom(vr.AsInteger(), v); err != nil {
		return nil, err
	}
	return vr, nil
}

// NewFloat creates a float variable of spec holding v.
func NewFloat[T NativeFloat](p DataProvider, spec *DataSpec, v T) (*Variable, error) {
	vr, err := NewVariable(p, spec)
	if err != nil {
		return nil, err
	}
	if vr.Kind() != KindFloat {
		return nil, fmt.Errorf("%w: %s is not a float spec", ErrIncompatibleSpec, spec)
	}
	if err := FloatFrom(vr.AsFloat(), v); err != nil {
		return nil, err
	}
	return vr, nil
}

// NewDateFromTime creates a date variable holding t's calendar date.
func NewDateFromTime(p DataProvider, t time.Time) (*Variable, error) {
	vr, err := NewVariable(p, NewDateSpec())
	if err != nil {
		return nil, err
	}
	if err := vr.AsDate().SetFromTime(t); err != nil {
		return nil, err
	}
	return vr, nil
}
