package variant

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// accessor is implemented by every typed accessor.
type accessor interface {
	kind() Kind
	// assign deep-copies other, whose spec has already been checked.
	assign(other accessor) error
	equal(other accessor) bool
	compare(other accessor) (int, error)
	hash(d *xxhash.Digest)
	String() string
}

// Variable is a live value: an access-level spec together with the accessor
// for one stored value. A Variable is owned by one logical owner at a time
// and performs no locking.
type Variable struct {
	spec     *DataSpec
	provider DataProvider
	value    accessor
}

// Spec returns the variable's spec.
func (v *Variable) Spec() *DataSpec { return v.spec }

// Provider returns the provider that created the variable.
func (v *Variable) Provider() DataProvider { return v.provider }

// Kind returns the primitive kind.
func (v *Variable) Kind() Kind { return v.spec.Kind() }

func (v *Variable) mismatch(want Kind) {
	panic(fmt.Sprintf("variant: variable of kind %s accessed as %s", v.Kind(), want))
}

// ============================================================
// Typed accessors
// ============================================================
//
// Each As method panics when the variable holds a different kind.

// AsBoolean returns the Boolean accessor. It panics if v does not hold a Boolean.
func (v *Variable) AsBoolean() *BooleanAccessor {
	a, ok := v.value.(*BooleanAccessor)
	if !ok {
		v.mismatch(KindBoolean)
	}
	return a
}

// AsInteger returns the Integer accessor. It panics if v does not hold an Integer.
func (v *Variable) AsInteger() *IntegerAccessor {
	a, ok := v.value.(*IntegerAccessor)
	if !ok {
		v.mismatch(KindInteger)
	}
	return a
}

// AsFloat returns the Float accessor. It panics if v does not hold a Float.
func (v *Variable) AsFloat() *FloatAccessor {
	a, ok := v.value.(*FloatAccessor)
	if !ok {
		v.mismatch(KindFloat)
	}
	return a
}

// AsString returns the String accessor. It panics if v does not hold a String.
func (v *Variable) AsString() *StringAccessor {
	a, ok := v.value.(*StringAccessor)
	if !ok {
		v.mismatch(KindString)
	}
	return a
}

// AsGuid returns the Guid accessor. It panics if v does not hold a Guid.
func (v *Variable) AsGuid() *GuidAccessor {
	a, ok := v.value.(*GuidAccessor)
	if !ok {
		v.mismatch(KindGuid)
	}
	return a
}

// AsDate returns the Date accessor. It panics if v does not hold a Date.
func (v *Variable) AsDate() *DateAccessor {
	a, ok := v.value.(*DateAccessor)
	if !ok {
		v.mismatch(KindDate)
	}
	return a
}

// AsTime returns the Time accessor. It panics if v does not hold a Time.
func (v *Variable) AsTime() *TimeAccessor {
	a, ok := v.value.(*TimeAccessor)
	if !ok {
		v.mismatch(KindTime)
	}
	return a
}

// AsDateTime returns the DateTime accessor. It panics if v does not hold a DateTime.
func (v *Variable) AsDateTime() *DateTimeAccessor {
	a, ok := v.value.(*DateTimeAccessor)
	if !ok {
		v.mismatch(KindDateTime)
	}
	return a
}

// AsDuration returns the Duration accessor. It panics if v does not hold a Duration.
func (v *Variable) AsDuration() *DurationAccessor {
	a, ok := v.value.(*DurationAccessor)
	if !ok {
		v.mismatch(KindDuration)
	}
	return a
}

// AsList returns the List accessor. It panics if v does not hold a List.
func (v *Variable) AsList() *ListAccessor {
	a, ok := v.value.(*ListAccessor)
	if !ok {
		v.mismatch(KindList)
	}
	return a
}

// AsSet returns the Set accessor. It panics if v does not hold a Set.
func (v *Variable) AsSet() *SetAccessor {
	a, ok := v.value.(*SetAccessor)
	if !ok {
		v.mismatch(KindSet)
	}
	return a
}

// AsMap returns the Map accessor. It panics if v does not hold a Map.
func (v *Variable) AsMap() *MapAccessor {
	a, ok := v.value.(*MapAccessor)
	if !ok {
		v.mismatch(KindMap)
	}
	return a
}

// AsTuple returns the Tuple accessor. It panics if v does not hold a Tuple.
func (v *Variable) AsTuple() *TupleAccessor {
	a, ok := v.value.(*TupleAccessor)
	if !ok {
		v.mismatch(KindTuple)
	}
	return a
}

// AsSequence returns the Sequence accessor. It panics if v does not hold a Sequence.
func (v *Variable) AsSequence() *SequenceAccessor {
	a, ok := v.value.(*SequenceAccessor)
	if !ok {
		v.mismatch(KindSequence)
	}
	return a
}

// ============================================================
// Deep assignment, equality, ordering, hashing
// ============================================================

// SetEqualTo copies other's value into v. other's spec must be compatible
// with v's spec.
func (v *Variable) SetEqualTo(other *Variable) error {
	if other == v {
		return nil
	}
	if err := other.spec.CheckCompatibleWith(v.spec); err != nil {
		return err
	}
	return v.value.assign(other.value)
}

// TryClone returns an independent copy of v built by the same provider.
func (v *Variable) TryClone() (*Variable, error) {
	c, err := NewVariable(v.provider, v.spec)
	if err != nil {
		return nil, err
	}
	if err := c.SetEqualTo(v); err != nil {
		return nil, err
	}
	return c, nil
}

// cloneAs builds a variable of spec using p and deep-copies src into it.
func cloneAs(p DataProvider, spec *DataSpec, src *Variable) (*Variable, error) {
	c, err := NewVariable(p, spec)
	if err != nil {
		return nil, err
	}
	if err := c.SetEqualTo(src); err != nil {
		return nil, err
	}
	return c, nil
}

// Equal reports whether v and other hold the same logical value. Variables
// of different kinds are never equal.
func (v *Variable) Equal(other *Variable) bool {
	if v == other {
		return true
	}
	if v == nil || other == nil || v.Kind() != other.Kind() {
		return false
	}
	return v.value.equal(other.value)
}

// Compare orders v against other. Both must be of the same kind and v's
// spec must be ordered.
func (v *Variable) Compare(other *Variable) (int, error) {
	if v.Kind() != other.Kind() {
		return 0, &SpecError{Provided: other.spec.String(), Required: v.spec.String()}
	}
	if !v.spec.IsOrdered() || !other.spec.IsOrdered() {
		return 0, fmt.Errorf("%w: %s", ErrNotOrdered, v.spec)
	}
	return v.value.compare(other.value)
}

// Hash returns a hash consistent with Equal.
func (v *Variable) Hash() uint64 {
	d := xxhash.New()
	d.Write([]byte{byte(v.Kind())})
	v.value.hash(d)
	return d.Sum64()
}

// String renders the value in its text format.
func (v *Variable) String() string {
	return v.value.String()
}
