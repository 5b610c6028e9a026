package variant

import (
	"fmt"
)

// ============================================================
// Boolean
// ============================================================

// BooleanSpec describes a boolean value. It has no options and is always at
// access level.
type BooleanSpec struct{}

// NewBooleanSpec returns a boolean DataSpec.
func NewBooleanSpec() *DataSpec {
	return NewPrimitiveSpec(&BooleanSpec{})
}

// Kind returns KindBoolean.
func (s *BooleanSpec) Kind() Kind { return KindBoolean }

// Level is always LevelAccess: the spec has no options.
func (s *BooleanSpec) Level() Level { return LevelAccess }

// IsOrdered always reports true.
func (s *BooleanSpec) IsOrdered() bool { return true }
func (s *BooleanSpec) String() string { return "Boolean" }

// IsCompatibleWith reports whether s may stand in for required.
func (s *BooleanSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	_, ok := required.(*BooleanSpec)
	return ok
}

// ============================================================
// Integer
// ============================================================

// IntegerEncoding is the signedness of an integer.
type IntegerEncoding uint8

const (
	Signed IntegerEncoding = iota + 1
	Unsigned
)

// String returns the name of the integer encoding.
func (e IntegerEncoding) String() string {
	switch e {
	case Signed:
		return "Signed"
	case Unsigned:
		return "Unsigned"
	default:
		return "Unknown"
	}
}

// StorageWidth is the physical width of a numeric value.
type StorageWidth uint8

const (
	B8 StorageWidth = iota + 1
	B16
	B32
	B64
)

// Bits returns the width in bits.
func (w StorageWidth) Bits() int {
	switch w {
	case B8:
		return 8
	case B16:
		return 16
	case B32:
		return 32
	case B64:
		return 64
	default:
		return 0
	}
}

// String returns the name of the storage width.
func (w StorageWidth) String() string {
	if b := w.Bits(); b != 0 {
		return fmt.Sprintf("B%d", b)
	}
	return "Unknown"
}

// IntegerSpec describes a fixed-width integer.
type IntegerSpec struct {
	encoding *IntegerEncoding
	storage  *StorageWidth
}

// Encoding returns the encoding and whether it is bound.
func (s *IntegerSpec) Encoding() (IntegerEncoding, bool) {
	if s.encoding == nil {
		return 0, false
	}
	return *s.encoding, true
}

// Storage returns the storage width and whether it is bound.
func (s *IntegerSpec) Storage() (StorageWidth, bool) {
	if s.storage == nil {
		return 0, false
	}
	return *s.storage, true
}

// Kind returns KindInteger.
func (s *IntegerSpec) Kind() Kind { return KindInteger }

// IsOrdered always reports true.
func (s *IntegerSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *IntegerSpec) Level() Level {
	if s.encoding != nil && s.storage != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *IntegerSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*IntegerSpec)
	if !ok {
		return false
	}
	return fieldCompatible(s.encoding, r.encoding) && fieldCompatible(s.storage, r.storage)
}

// String renders the spec as Integer{...}.
func (s *IntegerSpec) String() string {
	return fmt.Sprintf("Integer{%s, %s}", fieldString(s.encoding), fieldString(s.storage))
}

// IntegerSpecBuilder builds integer specs.
type IntegerSpecBuilder struct {
	spec IntegerSpec
}

// NewIntegerSpecBuilder returns an empty integer spec builder.
func NewIntegerSpecBuilder() *IntegerSpecBuilder {
	return &IntegerSpecBuilder{}
}

// WithEncoding binds the encoding.
func (b *IntegerSpecBuilder) WithEncoding(e IntegerEncoding) *IntegerSpecBuilder {
	b.spec.encoding = ptr(e)
	return b
}

// WithStorage binds the storage width.
func (b *IntegerSpecBuilder) WithStorage(w StorageWidth) *IntegerSpecBuilder {
	b.spec.storage = ptr(w)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *IntegerSpecBuilder) TryBuild() (*DataSpec, error) {
	if b.spec.encoding != nil && (*b.spec.encoding < Signed || *b.spec.encoding > Unsigned) {
		return nil, fmt.Errorf("variant: integer encoding %d is not valid", *b.spec.encoding)
	}
	if b.spec.storage != nil && b.spec.storage.Bits() == 0 {
		return nil, fmt.Errorf("variant: integer storage %d is not valid", *b.spec.storage)
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *IntegerSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewIntegerSpec is shorthand for an access-level integer spec.
func NewIntegerSpec(e IntegerEncoding, w StorageWidth) *DataSpec {
	return NewIntegerSpecBuilder().WithEncoding(e).WithStorage(w).Build()
}

// ============================================================
// Float
// ============================================================

// FloatSpec describes an IEEE-754 floating point value.
type FloatSpec struct {
	storage *StorageWidth
}

// Storage returns the storage width and whether it is bound.
func (s *FloatSpec) Storage() (StorageWidth, bool) {
	if s.storage == nil {
		return 0, false
	}
	return *s.storage, true
}

// Kind returns KindFloat.
func (s *FloatSpec) Kind() Kind { return KindFloat }

// IsOrdered always reports true.
func (s *FloatSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *FloatSpec) Level() Level {
	if s.storage != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *FloatSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*FloatSpec)
	return ok && fieldCompatible(s.storage, r.storage)
}

// String renders the spec as Float{...}.
func (s *FloatSpec) String() string {
	return fmt.Sprintf("Float{%s}", fieldString(s.storage))
}

// FloatSpecBuilder builds float specs.
type FloatSpecBuilder struct {
	spec FloatSpec
}

// NewFloatSpecBuilder returns an empty float spec builder.
func NewFloatSpecBuilder() *FloatSpecBuilder {
	return &FloatSpecBuilder{}
}

// WithStorage binds the storage width, B32 or B64.
func (b *FloatSpecBuilder) WithStorage(w StorageWidth) *FloatSpecBuilder {
	b.spec.storage = ptr(w)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *FloatSpecBuilder) TryBuild() (*DataSpec, error) {
	if b.spec.storage != nil && *b.spec.storage != B32 && *b.spec.storage != B64 {
		return nil, fmt.Errorf("variant: float storage must be B32 or B64, got %s", *b.spec.storage)
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *FloatSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewFloatSpec is shorthand for an access-level float spec.
func NewFloatSpec(w StorageWidth) *DataSpec {
	return NewFloatSpecBuilder().WithStorage(w).Build()
}

// ============================================================
// String
// ============================================================

// StringEncoding is the character encoding of a string.
type StringEncoding uint8

const (
	ByteString StringEncoding = iota + 1
	Utf8
	Utf16
	Utf32
)

// String returns the name of the string encoding.
func (e StringEncoding) String() string {
	switch e {
	case ByteString:
		return "ByteString"
	case Utf8:
		return "Utf8"
	case Utf16:
		return "Utf16"
	case Utf32:
		return "Utf32"
	default:
		return "Unknown"
	}
}

// StringStoragePolicy selects how string length is bounded.
type StringStoragePolicy uint8

const (
	StringVariableLength StringStoragePolicy = iota + 1
	StringMaxLength
)

// StringStorage bounds a string's length in code units of its encoding.
type StringStorage struct {
	Policy StringStoragePolicy
	Length int
}

// VariableLength is an unbounded string storage.
func VariableLength() StringStorage {
	return StringStorage{Policy: StringVariableLength}
}

// MaxLength bounds a string to n code units.
func MaxLength(n int) StringStorage {
	return StringStorage{Policy: StringMaxLength, Length: n}
}

// String returns the name of the string storage.
func (s StringStorage) String() string {
	if s.Policy == StringMaxLength {
		return fmt.Sprintf("MaxLength(%d)", s.Length)
	}
	return "VariableLength"
}

// StringSpec describes a string value.
type StringSpec struct {
	encoding *StringEncoding
	storage  *StringStorage
}

// Encoding returns the encoding and whether it is bound.
func (s *StringSpec) Encoding() (StringEncoding, bool) {
	if s.encoding == nil {
		return 0, false
	}
	return *s.encoding, true
}

// Storage returns the storage policy and whether it is bound.
func (s *StringSpec) Storage() (StringStorage, bool) {
	if s.storage == nil {
		return StringStorage{}, false
	}
	return *s.storage, true
}

// Kind returns KindString.
func (s *StringSpec) Kind() Kind { return KindString }

// IsOrdered always reports true.
func (s *StringSpec) IsOrdered() bool { return true }

// Level returns LevelAccess once every option is bound.
func (s *StringSpec) Level() Level {
	if s.encoding != nil && s.storage != nil {
		return LevelAccess
	}
	return LevelCompare
}

// IsCompatibleWith reports whether s may stand in for required.
func (s *StringSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	r, ok := required.(*StringSpec)
	if !ok {
		return false
	}
	return fieldCompatible(s.encoding, r.encoding) && fieldCompatible(s.storage, r.storage)
}

// String renders the spec as String{...}.
func (s *StringSpec) String() string {
	return fmt.Sprintf("String{%s, %s}", fieldString(s.encoding), fieldString(s.storage))
}

// StringSpecBuilder builds string specs.
type StringSpecBuilder struct {
	spec StringSpec
}

// NewStringSpecBuilder returns an empty string spec builder.
func NewStringSpecBuilder() *StringSpecBuilder {
	return &StringSpecBuilder{}
}

// WithEncoding binds the encoding.
func (b *StringSpecBuilder) WithEncoding(e StringEncoding) *StringSpecBuilder {
	b.spec.encoding = ptr(e)
	return b
}

// WithStorage binds the storage policy.
func (b *StringSpecBuilder) WithStorage(s StringStorage) *StringSpecBuilder {
	b.spec.storage = ptr(s)
	return b
}

// TryBuild returns the spec, or an error for contradictory configuration.
func (b *StringSpecBuilder) TryBuild() (*DataSpec, error) {
	if st := b.spec.storage; st != nil {
		switch st.Policy {
		case StringVariableLength:
		case StringMaxLength:
			if st.Length <= 0 {
				return nil, fmt.Errorf("variant: string max length must be positive, got %d", st.Length)
			}
		default:
			return nil, fmt.Errorf("variant: string storage policy %d is not valid", st.Policy)
		}
	}
	spec := b.spec
	return NewPrimitiveSpec(&spec), nil
}

// Build returns the spec. It panics on contradictory configuration.
func (b *StringSpecBuilder) Build() *DataSpec {
	return mustBuild(b.TryBuild())
}

// NewStringSpec is shorthand for an access-level string spec.
func NewStringSpec(e StringEncoding, s StringStorage) *DataSpec {
	return NewStringSpecBuilder().WithEncoding(e).WithStorage(s).Build()
}

// ============================================================
// Guid
// ============================================================

// GuidSpec describes a 128-bit globally unique identifier.
type GuidSpec struct{}

// NewGuidSpec returns a guid DataSpec.
func NewGuidSpec() *DataSpec {
	return NewPrimitiveSpec(&GuidSpec{})
}

// Kind returns KindGuid.
func (s *GuidSpec) Kind() Kind { return KindGuid }

// Level is always LevelAccess: the spec has no options.
func (s *GuidSpec) Level() Level { return LevelAccess }

// IsOrdered always reports true.
func (s *GuidSpec) IsOrdered() bool { return true }
func (s *GuidSpec) String() string { return "Guid" }

// IsCompatibleWith reports whether s may stand in for required.
func (s *GuidSpec) IsCompatibleWith(required PrimitiveSpec) bool {
	_, ok := required.(*GuidSpec)
	return ok
}

func mustBuild(spec *DataSpec, err error) *DataSpec {
	if err != nil {
		panic(err)
	}
	return spec
}
