package variant

// Level says what a spec can be used for.
type Level uint8

const (
	// LevelCompare specs may leave fields unbound and are only usable for
	// compatibility checks.
	LevelCompare Level = iota
	// LevelAccess specs bind every field needed to store a value.
	LevelAccess
)

// String returns the level name.
func (l Level) String() string {
	if l == LevelAccess {
		return "Access"
	}
	return "Compare"
}

func minLevel(levels ...Level) Level {
	for _, l := range levels {
		if l == LevelCompare {
			return LevelCompare
		}
	}
	return LevelAccess
}

// PrimitiveSpec describes one primitive kind in detail. Implementations are
// immutable after construction and safe to share.
type PrimitiveSpec interface {
	Kind() Kind
	Level() Level
	// IsCompatibleWith reports whether a value described by this spec may
	// stand in for a value required to match required. Specs of different
	// kinds are never compatible.
	IsCompatibleWith(required PrimitiveSpec) bool
	IsOrdered() bool
	String() string
}

// CheckCompatible returns a *SpecError when provided is not compatible with
// required.
func CheckCompatible(provided, required PrimitiveSpec) error {
	if provided.IsCompatibleWith(required) {
		return nil
	}
	return &SpecError{Provided: provided.String(), Required: required.String()}
}

// SpecType says which kind of type a DataSpec describes.
type SpecType uint8

const (
	SpecNone SpecType = iota
	SpecPrimitive
	SpecCategory
)

// Primitive is a kind optionally bound to a detailed spec. A Primitive with
// no spec is a pure type description.
type Primitive struct {
	kind Kind
	spec PrimitiveSpec
}

// Kind returns the primitive kind.
func (p *Primitive) Kind() Kind { return p.kind }

// Spec returns the bound spec, or nil when the primitive is unbound.
func (p *Primitive) Spec() PrimitiveSpec { return p.spec }

func (p *Primitive) isCompatibleWith(required *Primitive) bool {
	if p.kind != required.kind {
		return false
	}
	switch {
	case required.spec == nil:
		return true
	case p.spec == nil:
		return false
	default:
		return p.spec.IsCompatibleWith(required.spec)
	}
}

// String returns the name of the primitive.
func (p *Primitive) String() string {
	if p.spec == nil {
		return p.kind.String()
	}
	return p.spec.String()
}

// DataSpec is the top-level description of a value. It is immutable and may
// be shared by any number of variables.
type DataSpec struct {
	level     Level
	typ       SpecType
	primitive *Primitive
	category  PrimitiveCategory
}

// NewNoneSpec returns a spec that places no requirement on a value.
func NewNoneSpec() *DataSpec {
	return &DataSpec{level: LevelCompare, typ: SpecNone}
}

// NewPrimitiveSpec wraps a detailed primitive spec. The level is the spec's
// own level.
func NewPrimitiveSpec(spec PrimitiveSpec) *DataSpec {
	if spec == nil {
		panic("variant: nil primitive spec")
	}
	return &DataSpec{
		level:     spec.Level(),
		typ:       SpecPrimitive,
		primitive: &Primitive{kind: spec.Kind(), spec: spec},
	}
}

// NewKindSpec returns a compare-level spec that requires only the kind.
func NewKindSpec(kind Kind) *DataSpec {
	return &DataSpec{
		level:     LevelCompare,
		typ:       SpecPrimitive,
		primitive: &Primitive{kind: kind},
	}
}

// NewCategorySpec returns a compare-level spec that requires a category.
func NewCategorySpec(category PrimitiveCategory) *DataSpec {
	return &DataSpec{level: LevelCompare, typ: SpecCategory, category: category}
}

// Level returns the spec level.
func (s *DataSpec) Level() Level { return s.level }

// Type returns what the spec describes.
func (s *DataSpec) Type() SpecType { return s.typ }

// Primitive returns the described primitive, or nil.
func (s *DataSpec) Primitive() *Primitive { return s.primitive }

// Category returns the described category and whether the spec is a
// category spec.
func (s *DataSpec) Category() (PrimitiveCategory, bool) {
	return s.category, s.typ == SpecCategory
}

// Kind returns the primitive kind, or 0 when the spec is not a primitive.
func (s *DataSpec) Kind() Kind {
	if s.primitive == nil {
		return 0
	}
	return s.primitive.kind
}

// PrimitiveSpec returns the detailed primitive spec, or nil.
func (s *DataSpec) PrimitiveSpec() PrimitiveSpec {
	if s.primitive == nil {
		return nil
	}
	return s.primitive.spec
}

// IsCompatibleWith reports whether a value described by s may stand in for a
// value required to match required. A nil or None requirement accepts
// anything; a None spec satisfies only a None requirement.
func (s *DataSpec) IsCompatibleWith(required *DataSpec) bool {
	if required == nil || required.typ == SpecNone {
		return true
	}
	if s == nil {
		return false
	}
	switch s.typ {
	case SpecPrimitive:
		switch required.typ {
		case SpecPrimitive:
			return s.primitive.isCompatibleWith(required.primitive)
		case SpecCategory:
			return required.category.Contains(s.primitive.kind)
		}
	case SpecCategory:
		if required.typ == SpecCategory {
			return s.category.IsCompatibleWith(required.category)
		}
	}
	return false
}

// CheckCompatibleWith is IsCompatibleWith returning a *SpecError naming
// both specs on failure.
func (s *DataSpec) CheckCompatibleWith(required *DataSpec) error {
	if s.IsCompatibleWith(required) {
		return nil
	}
	return &SpecError{Provided: s.String(), Required: required.String()}
}

// IsOrdered reports whether values of this spec have a total order. Only
// bound primitive specs can be ordered.
func (s *DataSpec) IsOrdered() bool {
	if s == nil || s.primitive == nil || s.primitive.spec == nil {
		return false
	}
	return s.primitive.spec.IsOrdered()
}

// String returns a readable form of the spec.
func (s *DataSpec) String() string {
	if s == nil {
		return "None"
	}
	switch s.typ {
	case SpecPrimitive:
		return s.primitive.String()
	case SpecCategory:
		return "Category(" + s.category.String() + ")"
	default:
		return "None"
	}
}

// ============================================================
// Field rule
// ============================================================

// fieldCompatible applies the optional-field rule to one comparable field.
func fieldCompatible[T comparable](self, required *T) bool {
	switch {
	case required == nil:
		return true
	case self == nil:
		return false
	default:
		return *self == *required
	}
}

// specFieldCompatible applies the optional-field rule to a nested DataSpec.
func specFieldCompatible(self, required *DataSpec) bool {
	switch {
	case required == nil:
		return true
	case self == nil:
		return false
	default:
		return self.IsCompatibleWith(required)
	}
}

func specLevel(s *DataSpec) Level {
	if s == nil {
		return LevelCompare
	}
	return s.level
}

func fieldString[T any](f *T) string {
	if f == nil {
		return "_"
	}
	return toString(*f)
}

func specFieldString(s *DataSpec) string {
	if s == nil {
		return "_"
	}
	return s.String()
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return "?"
}

func ptr[T any](v T) *T { return &v }
