package variant

import (
	"errors"
	"fmt"
)

// DataProvider manufactures adaptors for a storage backend. Each factory
// receives an access-level spec of its kind.
//
// Embed UnsupportedProvider to implement only the kinds a backend supports.
type DataProvider interface {
	BooleanAdaptor(spec *BooleanSpec) (BooleanAdaptor, error)
	IntegerAdaptor(spec *IntegerSpec) (IntegerAdaptor, error)
	FloatAdaptor(spec *FloatSpec) (FloatAdaptor, error)
	StringAdaptor(spec *StringSpec) (StringAdaptor, error)
	GuidAdaptor(spec *GuidSpec) (GuidAdaptor, error)
	DateAdaptor(spec *DateSpec) (DateAdaptor, error)
	TimeAdaptor(spec *TimeSpec) (TimeAdaptor, error)
	DateTimeAdaptor(spec *DateTimeSpec) (DateTimeAdaptor, error)
	DurationAdaptor(spec *DurationSpec) (DurationAdaptor, error)
	ListAdaptor(spec *ListSpec) (ListAdaptor, error)
	SetAdaptor(spec *SetSpec) (SetAdaptor, error)
	MapAdaptor(spec *MapSpec) (MapAdaptor, error)
	TupleAdaptor(spec *TupleSpec) (TupleAdaptor, error)
	SequenceAdaptor(spec *SequenceSpec) (SequenceAdaptor, error)
}

// UnsupportedProvider fails every factory with ErrNotSupported.
type UnsupportedProvider struct{}

func unsupported(kind Kind) error {
	return &ProviderError{Op: kind.String() + " adaptor", Err: ErrNotSupported}
}

// BooleanAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) BooleanAdaptor(*BooleanSpec) (BooleanAdaptor, error) {
	return nil, unsupported(KindBoolean)
}

// IntegerAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) IntegerAdaptor(*IntegerSpec) (IntegerAdaptor, error) {
	return nil, unsupported(KindInteger)
}

// FloatAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) FloatAdaptor(*FloatSpec) (FloatAdaptor, error) {
	return nil, unsupported(KindFloat)
}

// StringAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) StringAdaptor(*StringSpec) (StringAdaptor, error) {
	return nil, unsupported(KindString)
}

// GuidAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) GuidAdaptor(*GuidSpec) (GuidAdaptor, error) {
	return nil, unsupported(KindGuid)
}

// DateAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) DateAdaptor(*DateSpec) (DateAdaptor, error) {
	return nil, unsupported(KindDate)
}

// TimeAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) TimeAdaptor(*TimeSpec) (TimeAdaptor, error) {
	return nil, unsupported(KindTime)
}

// DateTimeAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) DateTimeAdaptor(*DateTimeSpec) (DateTimeAdaptor, error) {
	return nil, unsupported(KindDateTime)
}

// DurationAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) DurationAdaptor(*DurationSpec) (DurationAdaptor, error) {
	return nil, unsupported(KindDuration)
}

// ListAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) ListAdaptor(*ListSpec) (ListAdaptor, error) {
	return nil, unsupported(KindList)
}

// SetAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) SetAdaptor(*SetSpec) (SetAdaptor, error) {
	return nil, unsupported(KindSet)
}

// MapAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) MapAdaptor(*MapSpec) (MapAdaptor, error) {
	return nil, unsupported(KindMap)
}

// TupleAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) TupleAdaptor(*TupleSpec) (TupleAdaptor, error) {
	return nil, unsupported(KindTuple)
}

// SequenceAdaptor fails with ErrNotSupported.
func (UnsupportedProvider) SequenceAdaptor(*SequenceSpec) (SequenceAdaptor, error) {
	return nil, unsupported(KindSequence)
}

// NewVariable creates a variable of spec backed by p. The spec must be an
// access-level primitive spec. Failures reported by p's factories are
// returned as *ProviderError.
func NewVariable(p DataProvider, spec *DataSpec) (*Variable, error) {
	if p == nil {
		return nil, errors.New("variant: nil data provider")
	}
	if spec == nil || spec.Type() != SpecPrimitive || spec.PrimitiveSpec() == nil || spec.Level() != LevelAccess {
		return nil, fmt.Errorf("%w: %s", ErrNotAccessLevel, spec)
	}
	v := &Variable{spec: spec, provider: p}
	var err error
	switch ps := spec.PrimitiveSpec().(type) {
	case *BooleanSpec:
		var a BooleanAdaptor
		if a, err = p.BooleanAdaptor(ps); err == nil {
			v.value = &BooleanAccessor{spec: ps, adaptor: a}
		}
	case *IntegerSpec:
		var a IntegerAdaptor
		if a, err = p.IntegerAdaptor(ps); err == nil {
			v.value = newIntegerAccessor(ps, a)
		}
	case *FloatSpec:
		var a FloatAdaptor
		if a, err = p.FloatAdaptor(ps); err == nil {
			v.value = newFloatAccessor(ps, a)
		}
	case *StringSpec:
		var a StringAdaptor
		if a, err = p.StringAdaptor(ps); err == nil {
			v.value = newStringAccessor(ps, a)
		}
	case *GuidSpec:
		var a GuidAdaptor
		if a, err = p.GuidAdaptor(ps); err == nil {
			v.value = &GuidAccessor{spec: ps, adaptor: a}
		}
	case *DateSpec:
		var a DateAdaptor
		if a, err = p.DateAdaptor(ps); err == nil {
			v.value = &DateAccessor{spec: ps, adaptor: a}
		}
	case *TimeSpec:
		var a TimeAdaptor
		if a, err = p.TimeAdaptor(ps); err == nil {
			v.value, err = newTimeAccessor(ps, a)
		}
	case *DateTimeSpec:
		var a DateTimeAdaptor
		if a, err = p.DateTimeAdaptor(ps); err == nil {
			v.value, err = newDateTimeAccessor(ps, a)
		}
	case *DurationSpec:
		var a DurationAdaptor
		if a, err = p.DurationAdaptor(ps); err == nil {
			v.value = newDurationAccessor(ps, a)
		}
	case *ListSpec:
		var a ListAdaptor
		if a, err = p.ListAdaptor(ps); err == nil {
			v.value = newListAccessor(ps, a, p)
		}
	case *SetSpec:
		var a SetAdaptor
		if a, err = p.SetAdaptor(ps); err == nil {
			v.value = &SetAccessor{spec: ps, adaptor: a, provider: p}
		}
	case *MapSpec:
		var a MapAdaptor
		if a, err = p.MapAdaptor(ps); err == nil {
			v.value = &MapAccessor{spec: ps, adaptor: a, provider: p}
		}
	case *TupleSpec:
		var a TupleAdaptor
		if a, err = p.TupleAdaptor(ps); err == nil {
			v.value, err = newTupleAccessor(ps, a, p)
		}
	case *SequenceSpec:
		var a SequenceAdaptor
		if a, err = p.SequenceAdaptor(ps); err == nil {
			v.value = &SequenceAccessor{spec: ps, adaptor: a}
		}
	default:
		err = unsupported(spec.Kind())
	}
	if err != nil {
		var pe *ProviderError
		if !errors.As(err, &pe) {
			err = &ProviderError{Op: spec.Kind().String() + " adaptor", Err: err}
		}
		return nil, err
	}
	return v, nil
}

// MustNewVariable is NewVariable that panics on error.
func MustNewVariable(p DataProvider, spec *DataSpec) *Variable {
	v, err := NewVariable(p, spec)
	if err != nil {
		panic(err)
	}
	return v
}

// providerError wraps a failure from an adaptor operation unless it is
// already a variant error. Factory failures in NewVariable are always wrapped.
func providerError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) || isVariantError(err) {
		return err
	}
	return &ProviderError{Op: op, Err: err}
}

func isVariantError(err error) bool {
	for _, s := range []error{
		ErrIncompatibleSpec, ErrOverflow, ErrIndexOutOfBounds, ErrFixedSize, ErrFixedCapacity,
		ErrCannotPopOnEmpty, ErrResolutionOutOfBounds, ErrInvalidFormat, ErrOutOfRange,
		ErrNotSupported, ErrNotOrdered, ErrReadOnly, ErrNotAccessLevel,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
