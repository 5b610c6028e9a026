package variant

import (
	"bytes"
	"cmp"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ============================================================
// Boolean
// ============================================================

// BooleanAccessor reads and writes a boolean.
type BooleanAccessor struct {
	spec    *BooleanSpec
	adaptor BooleanAdaptor
}

// Spec returns the spec the boolean was created with.
func (a *BooleanAccessor) Spec() *BooleanSpec { return a.spec }

// Value returns the stored value.
func (a *BooleanAccessor) Value() bool { return a.adaptor.Bool() }

// Set stores v.
func (a *BooleanAccessor) Set(v bool) error {
	return providerError("set boolean", a.adaptor.SetBool(v))
}

// SetEqualTo copies other's value.
func (a *BooleanAccessor) SetEqualTo(other *BooleanAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.Set(other.Value())
}

// String renders the value in its text format.
func (a *BooleanAccessor) String() string { return strconv.FormatBool(a.Value()) }

func (a *BooleanAccessor) kind() Kind { return KindBoolean }

func (a *BooleanAccessor) assign(other accessor) error {
	return a.Set(other.(*BooleanAccessor).Value())
}

func (a *BooleanAccessor) equal(other accessor) bool {
	o, ok := other.(*BooleanAccessor)
	return ok && a.Value() == o.Value()
}

func (a *BooleanAccessor) compare(other accessor) (int, error) {
	x, y := a.Value(), other.(*BooleanAccessor).Value()
	switch {
	case x == y:
		return 0, nil
	case !x:
		return -1, nil
	default:
		return 1, nil
	}
}

func (a *BooleanAccessor) hash(d *xxhash.Digest) {
	if a.Value() {
		d.Write([]byte{1})
	} else {
		d.Write([]byte{0})
	}
}

// ============================================================
// Integer
// ============================================================

// IntegerAccessor reads and writes a fixed-width integer. Every setter
// checks the value against the exact range of the declared width and
// encoding.
type IntegerAccessor struct {
	spec     *IntegerSpec
	adaptor  IntegerAdaptor
	signed   bool
	min      int64
	max      uint64
	bitWidth int
}

func newIntegerAccessor(spec *IntegerSpec, adaptor IntegerAdaptor) *IntegerAccessor {
	enc, _ := spec.Encoding()
	w, _ := spec.Storage()
	a := &IntegerAccessor{spec: spec, adaptor: adaptor, signed: enc == Signed, bitWidth: w.Bits()}
	a.min, a.max = integerRange(a.signed, a.bitWidth)
	return a
}

// integerRange returns the bounds of an integer of the given encoding and
// width.
func integerRange(signed bool, bits int) (int64, uint64) {
	if signed {
		if bits == 64 {
			return math.MinInt64, math.MaxInt64
		}
		return -(1 << (bits - 1)), 1<<(bits-1) - 1
	}
	if bits == 64 {
		return 0, math.MaxUint64
	}
	return 0, 1<<bits - 1
}

// Spec returns the spec the integer was created with.
func (a *IntegerAccessor) Spec() *IntegerSpec { return a.spec }

// IsSigned reports whether the integer uses the Signed encoding.
func (a *IntegerAccessor) IsSigned() bool { return a.signed }

// Range returns the inclusive bounds of the declared width and encoding.
func (a *IntegerAccessor) Range() (int64, uint64) { return a.min, a.max }

// Int64 returns the value, failing when an unsigned value exceeds
// math.MaxInt64.
func (a *IntegerAccessor) Int64() (int64, error) {
	if a.signed {
		return a.adaptor.Int64(), nil
	}
	u := a.adaptor.Uint64()
	if u > math.MaxInt64 {
		return 0, newOverflow(u, int64(math.MinInt64), int64(math.MaxInt64))
	}
	return int64(u), nil
}

// Uint64 returns the value, failing when a signed value is negative.
func (a *IntegerAccessor) Uint64() (uint64, error) {
	if !a.signed {
		return a.adaptor.Uint64(), nil
	}
	s := a.adaptor.Int64()
	if s < 0 {
		return 0, newOverflow(s, uint64(0), uint64(math.MaxUint64))
	}
	return uint64(s), nil
}

// SetInt64 stores v after checking it against the declared range.
func (a *IntegerAccessor) SetInt64(v int64) error {
	if a.signed {
		if a.bitWidth < 64 && (v < a.min || v > int64(a.max)) {
			return newOverflow(v, a.min, a.max)
		}
		return providerError("set integer", a.adaptor.SetInt64(v))
	}
	if v < 0 || (a.bitWidth < 64 && uint64(v) > a.max) {
		return newOverflow(v, a.min, a.max)
	}
	return providerError("set integer", a.adaptor.SetUint64(uint64(v)))
}

// SetUint64 stores v after checking it against the declared range.
func (a *IntegerAccessor) SetUint64(v uint64) error {
	if a.signed {
		if v > a.max {
			return newOverflow(v, a.min, a.max)
		}
		return providerError("set integer", a.adaptor.SetInt64(int64(v)))
	}
	if a.bitWidth < 64 && v > a.max {
		return newOverflow(v, a.min, a.max)
	}
	return providerError("set integer", a.adaptor.SetUint64(v))
}

// SetEqualTo copies other's value.
func (a *IntegerAccessor) SetEqualTo(other *IntegerAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

// String renders the value in its text format.
func (a *IntegerAccessor) String() string {
	if a.signed {
		return strconv.FormatInt(a.adaptor.Int64(), 10)
	}
	return strconv.FormatUint(a.adaptor.Uint64(), 10)
}

func (a *IntegerAccessor) kind() Kind { return KindInteger }

func (a *IntegerAccessor) assign(other accessor) error {
	o := other.(*IntegerAccessor)
	if o.signed {
		return a.SetInt64(o.adaptor.Int64())
	}
	return a.SetUint64(o.adaptor.Uint64())
}

// logical returns the value as a sign and a magnitude-compatible uint64.
func (a *IntegerAccessor) logical() (neg bool, s int64, u uint64) {
	if a.signed {
		s = a.adaptor.Int64()
		if s < 0 {
			return true, s, 0
		}
		return false, s, uint64(s)
	}
	u = a.adaptor.Uint64()
	return false, 0, u
}

func (a *IntegerAccessor) equal(other accessor) bool {
	o, ok := other.(*IntegerAccessor)
	if !ok {
		return false
	}
	c, _ := a.compare(o)
	return c == 0
}

func (a *IntegerAccessor) compare(other accessor) (int, error) {
	o := other.(*IntegerAccessor)
	an, as, au := a.logical()
	bn, bs, bu := o.logical()
	switch {
	case an && bn:
		return cmp.Compare(as, bs), nil
	case an:
		return -1, nil
	case bn:
		return 1, nil
	default:
		return cmp.Compare(au, bu), nil
	}
}

func (a *IntegerAccessor) hash(d *xxhash.Digest) {
	neg, s, u := a.logical()
	if neg {
		d.Write([]byte{'-'})
		hashInt64(d, s)
		return
	}
	d.Write([]byte{'+'})
	hashUint64(d, u)
}

// ============================================================
// Float
// ============================================================

// FloatAccessor reads and writes a 32- or 64-bit float. B32 values are
// checked against the finite range of IEEE single precision.
type FloatAccessor struct {
	spec    *FloatSpec
	adaptor FloatAdaptor
	single  bool
}

func newFloatAccessor(spec *FloatSpec, adaptor FloatAdaptor) *FloatAccessor {
	w, _ := spec.Storage()
	return &FloatAccessor{spec: spec, adaptor: adaptor, single: w == B32}
}

// Spec returns the spec the float was created with.
func (a *FloatAccessor) Spec() *FloatSpec { return a.spec }

// Float64 returns the stored value.
func (a *FloatAccessor) Float64() float64 { return a.adaptor.Float64() }

// Float32 returns the value, failing when it exceeds the float32 range.
func (a *FloatAccessor) Float32() (float32, error) {
	v := a.adaptor.Float64()
	if err := checkFloat32(v); err != nil {
		return 0, err
	}
	return float32(v), nil
}

// SetFloat64 stores v. Finite values outside the float32 range overflow a
// B32 float; infinities and NaN are stored as is.
func (a *FloatAccessor) SetFloat64(v float64) error {
	if a.single {
		if err := checkFloat32(v); err != nil {
			return err
		}
	}
	return providerError("set float", a.adaptor.SetFloat64(v))
}

// SetFloat32 stores v; it fits every float width.
func (a *FloatAccessor) SetFloat32(v float32) error {
	return providerError("set float", a.adaptor.SetFloat64(float64(v)))
}

func checkFloat32(v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	if v > math.MaxFloat32 || v < -math.MaxFloat32 {
		return newOverflow(v, -math.MaxFloat32, math.MaxFloat32)
	}
	return nil
}

// SetEqualTo copies other's value.
func (a *FloatAccessor) SetEqualTo(other *FloatAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.SetFloat64(other.Float64())
}

// String renders the value in its text format.
func (a *FloatAccessor) String() string {
	bits := 64
	if a.single {
		bits = 32
	}
	return strconv.FormatFloat(a.Float64(), 'g', -1, bits)
}

func (a *FloatAccessor) kind() Kind { return KindFloat }

func (a *FloatAccessor) assign(other accessor) error {
	return a.SetFloat64(other.(*FloatAccessor).Float64())
}

func (a *FloatAccessor) equal(other accessor) bool {
	o, ok := other.(*FloatAccessor)
	return ok && cmp.Compare(a.Float64(), o.Float64()) == 0
}

// compare orders NaN before every other value, as cmp.Compare does.
func (a *FloatAccessor) compare(other accessor) (int, error) {
	return cmp.Compare(a.Float64(), other.(*FloatAccessor).Float64()), nil
}

func (a *FloatAccessor) hash(d *xxhash.Digest) {
	v := a.Float64()
	switch {
	case math.IsNaN(v):
		v = math.NaN()
	case v == 0:
		v = 0
	}
	hashUint64(d, math.Float64bits(v))
}

// ============================================================
// String
// ============================================================

// StringAccessor reads and writes a string. Length limits count code units
// of the declared encoding; Utf8, Utf16 and Utf32 strings must be valid
// UTF-8 text in Go.
type StringAccessor struct {
	spec     *StringSpec
	adaptor  StringAdaptor
	encoding StringEncoding
	storage  StringStorage
}

func newStringAccessor(spec *StringSpec, adaptor StringAdaptor) *StringAccessor {
	enc, _ := spec.Encoding()
	st, _ := spec.Storage()
	return &StringAccessor{spec: spec, adaptor: adaptor, encoding: enc, storage: st}
}

// Spec returns the spec the string was created with.
func (a *StringAccessor) Spec() *StringSpec { return a.spec }

// Value returns the stored value.
func (a *StringAccessor) Value() string { return a.adaptor.Text() }

// Len returns the length in code units of the declared encoding.
func (a *StringAccessor) Len() int { return codeUnits(a.encoding, a.Value()) }

func codeUnits(enc StringEncoding, s string) int {
	switch enc {
	case Utf16:
		n := 0
		for _, r := range s {
			n += utf16.RuneLen(r)
		}
		return n
	case Utf32:
		return utf8.RuneCountInString(s)
	default:
		return len(s)
	}
}

// Set stores v after checking its encoding and length.
func (a *StringAccessor) Set(v string) error {
	if a.encoding != ByteString && !utf8.ValidString(v) {
		return &FormatError{What: strings.ToLower(a.encoding.String()) + " string", Input: v, Reason: "invalid UTF-8"}
	}
	if a.storage.Policy == StringMaxLength {
		if n := codeUnits(a.encoding, v); n > a.storage.Length {
			return newOverflow("length "+strconv.Itoa(n), 0, a.storage.Length)
		}
	}
	return providerError("set string", a.adaptor.SetText(v))
}

// SetEqualTo copies other's value.
func (a *StringAccessor) SetEqualTo(other *StringAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.Set(other.Value())
}

// String renders the value in its text format.
func (a *StringAccessor) String() string { return a.Value() }

func (a *StringAccessor) kind() Kind { return KindString }

func (a *StringAccessor) assign(other accessor) error {
	return a.Set(other.(*StringAccessor).Value())
}

func (a *StringAccessor) equal(other accessor) bool {
	o, ok := other.(*StringAccessor)
	return ok && a.Value() == o.Value()
}

func (a *StringAccessor) compare(other accessor) (int, error) {
	return strings.Compare(a.Value(), other.(*StringAccessor).Value()), nil
}

func (a *StringAccessor) hash(d *xxhash.Digest) { hashString(d, a.Value()) }

// ============================================================
// Guid
// ============================================================

// GuidAccessor reads and writes a 128-bit identifier.
type GuidAccessor struct {
	spec    *GuidSpec
	adaptor GuidAdaptor
}

// Spec returns the spec the guid was created with.
func (a *GuidAccessor) Spec() *GuidSpec { return a.spec }

// Value returns the stored value.
func (a *GuidAccessor) Value() uuid.UUID { return a.adaptor.UUID() }

// Set stores v.
func (a *GuidAccessor) Set(v uuid.UUID) error {
	return providerError("set guid", a.adaptor.SetUUID(v))
}

// SetString parses any form accepted by uuid.Parse.
func (a *GuidAccessor) SetString(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return &FormatError{What: "guid", Input: s, Reason: err.Error()}
	}
	return a.Set(id)
}

// SetRandom stores a new random (version 4) identifier.
func (a *GuidAccessor) SetRandom() error {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}
	return a.Set(id)
}

// SetEqualTo copies other's value.
func (a *GuidAccessor) SetEqualTo(other *GuidAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.Set(other.Value())
}

// String renders the value in its text format.
func (a *GuidAccessor) String() string { return a.Value().String() }

func (a *GuidAccessor) kind() Kind { return KindGuid }

func (a *GuidAccessor) assign(other accessor) error {
	return a.Set(other.(*GuidAccessor).Value())
}

func (a *GuidAccessor) equal(other accessor) bool {
	o, ok := other.(*GuidAccessor)
	return ok && a.Value() == o.Value()
}

func (a *GuidAccessor) compare(other accessor) (int, error) {
	x, y := a.Value(), other.(*GuidAccessor).Value()
	return bytes.Compare(x[:], y[:]), nil
}

func (a *GuidAccessor) hash(d *xxhash.Digest) {
	id := a.Value()
	d.Write(id[:])
}
