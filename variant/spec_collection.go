package variant

import (
	"fmt"
	"strings"
)

// ============================================================
// List storage
// ============================================================

// ListPolicy selects how a list's length may change.
type ListPolicy uint8

const (
	// PolicyVariableSize lists are fully mutable and unbounded.
	PolicyVariableSize ListPolicy = iota + 1
	// PolicyFixedSize lists have an immutable length; elements are mutable in place.
	PolicyFixedSize
	// PolicyFixedCapacity lists may grow up to a capacity.
	PolicyFixedCapacity
	// PolicyInitialCapacity lists are fully mutable; the size is a hint.
	PolicyInitialCapacity
)

// String returns the name of the list policy.
func (p ListPolicy) String() string {
	switch p {
	case PolicyVariableSize:
		return "VariableSize"
	case PolicyFixedSize:
		return "FixedSize"
	case PolicyFixedCapacity:
		return "FixedCapacity"
	case PolicyInitialCapacity:
		return "InitialCapacity"
	default:
		return "Unknown"
	}
}

// ListStorage is a list storage policy and its size parameter.
type ListStorage struct {
	Policy ListPolicy
	Size   int
}

// VariableSize is the default list storage.
func VariableSize() ListStorage { return ListStorage{Policy: PolicyVariableSize} }

// FixedSize lists always hold exactly n elements.
func FixedSize(n int) ListStorage { return ListStorage{Policy: PolicyFixedSize, Size: n} }

// FixedCapacity lists hold at most n elements.
func FixedCapacity(n int) ListStorage { return ListStorage{Policy: PolicyFixedCapacity, Size: n} }

// InitialCapacity lists preallocate room for n elements.
func InitialCapacity(n int) ListStorage { return ListStorage{Policy: PolicyInitialCapacity, Size: n} }

// String returns the name of the list storage.
func (s ListStorage) String() string {
	if s.Policy == PolicyVariableSize {
		return s.Policy.String()
	}
	return fmt.Sprintf("%s(%d)", s.Policy, s.Size)
}

func (s ListStorage) validate() error {
	switch s.Policy {
	case PolicyVariableSize:
		return nil
	case PolicyFixedSize, PolicyFixedCapacity, PolicyInitialCapacity:
		if s.Size < 0 {
			return fmt.Errorf("variant: list storage %s has negative size", s)
		}
		return nil
	default:
		return fmt.Errorf("variant: list storage policy %d is not valid", s.Policy)
	}
}

// Ordering selects the associative structure backing a set or map.
type Ordering uint8

const (
	// Unordered sets and maps are hash based and iterate in insertion order.
	Unordered Ordering = iota + 1
	// Ordered sets and maps are sorted by element or key.
	Ordered
)

// String returns the name of the ordering.
func (o Ordering) String() string {
	switch o {
	case Unordered:
		return "Unordered"
	case Ordered:
		return "Ordered"
	default:
		return "Unknown"
	}
}

// ============================================================
// List
// ============================================================

// ListSpec describes a homogeneous list.
type ListSpec struct {
	element *DataSpec
	storage *ListStorage
}

// Element returns the element spec, or nil when unbound.
func (s *ListSpec) Element() *DataSpec { return s.element }

// Storage returns the storage policy and whether it is bound.
func (s *ListSpec) Storage() (ListStorage, bool) {
	if s.storage == nil {
		return ListStorage{}, false
	}
	return *s.storage, true
}

// Kind returns KindList.
func (s *ListSpec) Kind() Kind { return KindList }

// Level returns LevelAccess once every option is bound.
func (s *ListSpec) Level() Level {
	if s.storage == nil {
		return LevelCompare
	}
	return specLevel(s.element)
}

// IsOrdered reports whether lists compare lexicographically, which requires
// an ordered element spec.
func (s *ListSpec) IsOrdered() bool {
	return s.element.IsOrdered()
}

// IsCompatibleWith reports whether s may stand in for required, applying the same rule to nested specs.
func (s *ListSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*ListSpec)
	if !ok {
		return false
	}
	return specFieldCompatible(s.element, r.element) && fieldCompatible(s.storage, r.storage)
}

// String renders the spec as List{...}.
func (s *ListSpec) String() string {
	return fmt.Sprintf("List{%s, %s}", specFieldString(s.element), fieldString(s.storage))
}

// ListSpecBuilder builds list specs.
type ListSpecBuilder struct {
	spec ListSpec
}

// NewListSpecBuilder returns an empty list spec builder.
func NewListSpecBuilder() *ListSpecBuilder {
	return &ListSpecBuilder{}
}

// WithElement binds the element spec.
func (b *ListSpecBuilder) WithElement(element *DataSpec) *ListSpecBuilder {
	b.spec.element = element
	return b
}

// WithStorage binds the storage policy.
func (b *ListSpecBuilder) WithStorage(storage ListStorage) *ListSpecBuilder {
	b.spec.storage = ptr(storage)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *ListSpecBuilder) TryBuild() (*DataSpec, error) {
	if st := b.spec.storage; st != nil {
		if b.spec.element == nil {
			return nil, fmt.Errorf("variant: list storage %s declared without an element spec", st)
		}
		if err := st.validate(); err != nil {
			return nil, err
		}
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *ListSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewListSpec is shorthand for a variable-size list of element.
func NewListSpec(element *DataSpec) *DataSpec {
	return NewListSpecBuilder().WithElement(element).WithStorage(VariableSize()).Build()
}

// ============================================================
// Set
// ============================================================

// SetSpec describes a set of distinct elements.
type SetSpec struct {
	element  *DataSpec
	ordering *Ordering
}

// Element returns the element spec, or nil when unbound.
func (s *SetSpec) Element() *DataSpec { return s.element }

// Ordering returns the ordering and whether it is bound.
func (s *SetSpec) Ordering() (Ordering, bool) {
	if s.ordering == nil {
		return 0, false
	}
	return *s.ordering, true
}

// Kind returns KindSet.
func (s *SetSpec) Kind() Kind { return KindSet }

// Level returns LevelAccess once every option is bound.
func (s *SetSpec) Level() Level {
	if s.ordering == nil {
		return LevelCompare
	}
	return specLevel(s.element)
}

// IsOrdered reports whether the set is declared Ordered over ordered specs.
func (s *SetSpec) IsOrdered() bool {
	return s.ordering != nil && *s.ordering == Ordered && s.element.IsOrdered()
}

// IsCompatibleWith reports whether s may stand in for required, applying the same rule to nested specs.
func (s *SetSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*SetSpec)
	if !ok {
		return false
	}
	return specFieldCompatible(s.element, r.element) && fieldCompatible(s.ordering, r.ordering)
}

// String renders the spec as Set{...}.
func (s *SetSpec) String() string {
	return fmt.Sprintf("Set{%s, %s}", specFieldString(s.element), fieldString(s.ordering))
}

// SetSpecBuilder builds set specs.
type SetSpecBuilder struct {
	spec SetSpec
}

// NewSetSpecBuilder returns an empty set spec builder.
func NewSetSpecBuilder() *SetSpecBuilder {
	return &SetSpecBuilder{}
}

// WithElement binds the element spec.
func (b *SetSpecBuilder) WithElement(element *DataSpec) *SetSpecBuilder {
	b.spec.element = element
	return b
}

// WithOrdering binds the ordering.
func (b *SetSpecBuilder) WithOrdering(o Ordering) *SetSpecBuilder {
	b.spec.ordering = ptr(o)
	return b
}

// TryBuild returns the spec. An Ordered set over an element spec that is not
// ordered is an error.
func (b *SetSpecBuilder) TryBuild() (*DataSpec, error) {
	if err := checkOrdering("set element", b.spec.element, b.spec.ordering); err != nil {
		return nil, err
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *SetSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewSetSpec is shorthand for an access-level set spec.
func NewSetSpec(element *DataSpec, o Ordering) *DataSpec {
	return NewSetSpecBuilder().WithElement(element).WithOrdering(o).Build()
}

func checkOrdering(what string, spec *DataSpec, o *Ordering) error {
	if o == nil {
		return nil
	}
	if *o != Ordered && *o != Unordered {
		return fmt.Errorf("variant: ordering %d is not valid", *o)
	}
	if spec == nil {
		return fmt.Errorf("variant: %s ordering declared without a spec", what)
	}
	if *o == Ordered && !spec.IsOrdered() {
		return fmt.Errorf("variant: %s spec %s is not ordered", what, spec)
	}
	return nil
}

// ============================================================
// Map
// ============================================================

// MapSpec describes a map from keys to values.
type MapSpec struct {
	key      *DataSpec
	value    *DataSpec
	ordering *Ordering
}

// Key returns the key spec, or nil when unbound.
func (s *MapSpec) Key() *DataSpec { return s.key }

// Value returns the value spec, or nil when unbound.
func (s *MapSpec) Value() *DataSpec { return s.value }

// Ordering returns the key ordering and whether it is bound.
func (s *MapSpec) Ordering() (Ordering, bool) {
	if s.ordering == nil {
		return 0, false
	}
	return *s.ordering, true
}

// Kind returns KindMap.
func (s *MapSpec) Kind() Kind { return KindMap }

// Level returns LevelAccess once every option is bound.
func (s *MapSpec) Level() Level {
	if s.ordering == nil {
		return LevelCompare
	}
	return minLevel(specLevel(s.key), specLevel(s.value))
}

// IsOrdered reports whether the map is declared Ordered over ordered specs.
func (s *MapSpec) IsOrdered() bool {
	return s.ordering != nil && *s.ordering == Ordered && s.key.IsOrdered() && s.value.IsOrdered()
}

// IsCompatibleWith reports whether s may stand in for required, applying the same rule to nested specs.
func (s *MapSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*MapSpec)
	if !ok {
		return false
	}
	return specFieldCompatible(s.key, r.key) &&
		specFieldCompatible(s.value, r.value) &&
		fieldCompatible(s.ordering, r.ordering)
}

// String renders the spec as Map{...}.
func (s *MapSpec) String() string {
	return fmt.Sprintf("Map{%s, %s, %s}", specFieldString(s.key), specFieldString(s.value), fieldString(s.ordering))
}

// MapSpecBuilder builds map specs.
type MapSpecBuilder struct {
	spec MapSpec
}

// NewMapSpecBuilder returns an empty map spec builder.
func NewMapSpecBuilder() *MapSpecBuilder {
	return &MapSpecBuilder{}
}

// WithKey binds the key spec.
func (b *MapSpecBuilder) WithKey(key *DataSpec) *MapSpecBuilder {
	b.spec.key = key
	return b
}

// WithValue binds the value spec.
func (b *MapSpecBuilder) WithValue(value *DataSpec) *MapSpecBuilder {
	b.spec.value = value
	return b
}

// WithOrdering binds the key ordering.
func (b *MapSpecBuilder) WithOrdering(o Ordering) *MapSpecBuilder {
	b.spec.ordering = ptr(o)
	return b
}

// TryBuild returns the spec. An Ordered map over a key spec that is not
// ordered is an error.
func (b *MapSpecBuilder) TryBuild() (*DataSpec, error) {
	if err := checkOrdering("map key", b.spec.key, b.spec.ordering); err != nil {
		return nil, err
	}
	if b.spec.ordering != nil && b.spec.value == nil {
		return nil, fmt.Errorf("variant: map ordering declared without a value spec")
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *MapSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewMapSpec is shorthand for an access-level map spec.
func NewMapSpec(key, value *DataSpec, o Ordering) *DataSpec {
	return NewMapSpecBuilder().WithKey(key).WithValue(value).WithOrdering(o).Build()
}

// ============================================================
// Tuple
// ============================================================

// TupleSpec describes a fixed-length heterogeneous sequence of values.
type TupleSpec struct {
	elements []*DataSpec
	bound    bool
}

// Elements returns a copy of the element specs, or nil when unbound.
func (s *TupleSpec) Elements() []*DataSpec {
	if !s.bound {
		return nil
	}
	out := make([]*DataSpec, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements, or -1 when unbound.
func (s *TupleSpec) Len() int {
	if !s.bound {
		return -1
	}
	return len(s.elements)
}

// Element returns the spec of element i.
func (s *TupleSpec) Element(i int) *DataSpec { return s.elements[i] }

// Kind returns KindTuple.
func (s *TupleSpec) Kind() Kind { return KindTuple }

// IsOrdered reports whether tuples compare element by element, which requires
// a bound tuple whose element specs are all ordered.
func (s *TupleSpec) IsOrdered() bool {
	if !s.bound {
		return false
	}
	for _, e := range s.elements {
		if !e.IsOrdered() {
			return false
		}
	}
	return true
}

// Level returns LevelAccess once every option is bound.
func (s *TupleSpec) Level() Level {
	if !s.bound {
		return LevelCompare
	}
	for _, e := range s.elements {
		if specLevel(e) == LevelCompare {
			return LevelCompare
		}
	}
	return LevelAccess
}

// IsCompatibleWith reports whether s may stand in for required, applying the same rule to nested specs.
func (s *TupleSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*TupleSpec)
	if !ok {
		return false
	}
	switch {
	case !r.bound:
		return true
	case !s.bound:
		return false
	case len(s.elements) != len(r.elements):
		return false
	}
	for i := range s.elements {
		if !specFieldCompatible(s.elements[i], r.elements[i]) {
			return false
		}
	}
	return true
}

// String renders the spec as Tuple{...}.
func (s *TupleSpec) String() string {
	if !s.bound {
		return "Tuple{_}"
	}
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = specFieldString(e)
	}
	return "Tuple{" + strings.Join(parts, ", ") + "}"
}

// TupleSpecBuilder builds tuple specs.
type TupleSpecBuilder struct {
	elements []*DataSpec
	bound    bool
}

// NewTupleSpecBuilder returns an empty tuple spec builder.
func NewTupleSpecBuilder() *TupleSpecBuilder {
	return &TupleSpecBuilder{}
}

// WithElements binds the element specs, replacing any added so far.
func (b *TupleSpecBuilder) WithElements(elements ...*DataSpec) *TupleSpecBuilder {
	b.elements = append([]*DataSpec(nil), elements...)
	b.bound = true
	return b
}

// AddElement appends one element spec.
func (b *TupleSpecBuilder) AddElement(element *DataSpec) *TupleSpecBuilder {
	b.elements = append(b.elements, element)
	b.bound = true
	return b
}

// TryBuild returns the spec, or an error when an element spec is missing.
func (b *TupleSpecBuilder) TryBuild() (*DataSpec, error) {
	for i, e := range b.elements {
		if e == nil {
			return nil, fmt.Errorf("variant: tuple element %d has no spec", i)
		}
	}
	spec := &TupleSpec{elements: append([]*DataSpec(nil), b.elements...), bound: b.bound}
	return NewPrimitiveSpec(spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *TupleSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewTupleSpec is shorthand for a tuple of the given element specs.
func NewTupleSpec(elements ...*DataSpec) *DataSpec {
	return NewTupleSpecBuilder().WithElements(elements...).Build()
}

// ============================================================
// Sequence
// ============================================================

// SequenceSpec describes a read-only, forward-only, single-pass view over
// elements of one spec.
type SequenceSpec struct {
	element *DataSpec
}

// Element returns the element spec, or nil when unbound.
func (s *SequenceSpec) Element() *DataSpec { return s.element }

// Kind returns KindSequence.
func (s *SequenceSpec) Kind() Kind { return KindSequence }

// Level is the level of the element spec.
func (s *SequenceSpec) Level() Level { return specLevel(s.element) }

// IsOrdered always reports false.
func (s *SequenceSpec) IsOrdered() bool { return false }

// IsCompatibleWith reports whether s may stand in for required, applying the same rule to nested specs.
func (s *SequenceSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*SequenceSpec)
	return ok && specFieldCompatible(s.element, r.element)
}

// String renders the spec as Sequence{...}.
func (s *SequenceSpec) String() string {
	return fmt.Sprintf("Sequence{%s}", specFieldString(s.element))
}

// SequenceSpecBuilder builds sequence specs.
type SequenceSpecBuilder struct {
	spec SequenceSpec
}

// NewSequenceSpecBuilder returns an empty sequence spec builder.
func NewSequenceSpecBuilder() *SequenceSpecBuilder {
	return &SequenceSpecBuilder{}
}

// WithElement binds the element spec.
func (b *SequenceSpecBuilder) WithElement(element *DataSpec) *SequenceSpecBuilder {
	b.spec.element = element
	return b
}

// TryBuild returns the spec.
func (b *SequenceSpecBuilder) TryBuild() (*DataSpec, error) {
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec.
func (b *SequenceSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewSequenceSpec is shorthand for a sequence of element.
func NewSequenceSpec(element *DataSpec) *DataSpec {
	return NewSequenceSpecBuilder().WithElement(element).Build()
}
