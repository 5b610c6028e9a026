package variant

import (
	"errors"
	"strings"
	"testing"
)

func TestCompatibilityReflexiveAndAsymmetric(t *testing.T) {
	tests := []struct {
		name    string
		full    *DataSpec
		partial *DataSpec
	}{
		{
			name:    "integer_encoding",
			full:    NewIntegerSpec(Signed, B64),
			partial: NewIntegerSpecBuilder().WithStorage(B64).Build(),
		},
		{
			name:    "integer_storage",
			full:    NewIntegerSpec(Unsigned, B8),
			partial: NewIntegerSpecBuilder().WithEncoding(Unsigned).Build(),
		},
		{
			name:    "float",
			full:    NewFloatSpec(B32),
			partial: NewFloatSpecBuilder().Build(),
		},
		{
			name:    "string_storage",
			full:    NewStringSpecBuilder().WithEncoding(Utf8).WithStorage(MaxLength(10)).Build(),
			partial: NewStringSpecBuilder().WithEncoding(Utf8).Build(),
		},
		{
			name:    "time_resolution",
			full:    NewTimeSpec(LocalTime, Nanosecond),
			partial: NewTimeSpecBuilder().WithType(LocalTime).Build(),
		},
		{
			name:    "duration_type",
			full:    NewDurationSpec(YearToMonth, Months),
			partial: NewDurationSpecBuilder().Build(),
		},
		{
			name:    "list_storage",
			full:    NewListSpecBuilder().WithElement(NewBooleanSpec()).WithStorage(FixedSize(2)).Build(),
			partial: NewListSpecBuilder().WithElement(NewBooleanSpec()).Build(),
		},
		{
			name:    "list_element",
			full:    NewListSpec(NewIntegerSpec(Signed, B32)),
			partial: NewListSpec(NewIntegerSpecBuilder().WithEncoding(Signed).Build()),
		},
		{
			name:    "map_ordering",
			full:    NewMapSpec(NewIntegerSpec(Signed, B32), NewBooleanSpec(), Ordered),
			partial: NewMapSpecBuilder().WithKey(NewIntegerSpec(Signed, B32)).WithValue(NewBooleanSpec()).Build(),
		},
		{
			name:    "map_value",
			full:    NewMapSpec(NewIntegerSpec(Signed, B32), NewFloatSpec(B64), Unordered),
			partial: NewMapSpec(NewIntegerSpec(Signed, B32), NewFloatSpecBuilder().Build(), Unordered),
		},
		{
			name:    "set_element",
			full:    NewSetSpec(NewDateSpec(), Ordered),
			partial: NewSetSpecBuilder().WithElement(NewKindSpec(KindDate)).Build(),
		},
		{
			name:    "tuple_elements",
			full:    NewTupleSpec(NewBooleanSpec(), NewFloatSpec(B64)),
			partial: NewTupleSpecBuilder().Build(),
		},
		{
			name:    "kind_only",
			full:    NewGuidSpec(),
			partial: NewKindSpec(KindGuid),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.full.IsCompatibleWith(tt.full) {
				t.Errorf("%s not compatible with itself", tt.full)
			}
			if !tt.partial.IsCompatibleWith(tt.partial) {
				t.Errorf("%s not compatible with itself", tt.partial)
			}
			if !tt.full.IsCompatibleWith(tt.partial) {
				t.Errorf("%s should satisfy %s", tt.full, tt.partial)
			}
			if tt.partial.IsCompatibleWith(tt.full) {
				t.Errorf("%s should not satisfy %s", tt.partial, tt.full)
			}
		})
	}
}

func TestCompatibilityFieldMismatch(t *testing.T) {
	signed := NewIntegerSpec(Signed, B64)
	unsigned := NewIntegerSpec(Unsigned, B64)
	if signed.IsCompatibleWith(unsigned) || unsigned.IsCompatibleWith(signed) {
		t.Error("signed and unsigned integers must not be compatible")
	}
	err := signed.CheckCompatibleWith(unsigned)
	if !errors.Is(err, ErrIncompatibleSpec) {
		t.Fatalf("CheckCompatibleWith = %v, want ErrIncompatibleSpec", err)
	}
	var se *SpecError
	if !errors.As(err, &se) {
		t.Fatalf("error %T is not *SpecError", err)
	}
	if se.Provided != "Integer{Signed, B64}" || se.Required != "Integer{Unsigned, B64}" {
		t.Errorf("SpecError = %+v", se)
	}
	if NewIntegerSpec(Signed, B8).IsCompatibleWith(NewFloatSpec(B64)) {
		t.Error("different kinds must not be compatible")
	}
}

func TestCompatibilityNone(t *testing.T) {
	none := NewNoneSpec()
	b := NewBooleanSpec()
	if !b.IsCompatibleWith(none) {
		t.Error("everything satisfies None")
	}
	if !b.IsCompatibleWith(nil) {
		t.Error("everything satisfies a nil requirement")
	}
	if none.IsCompatibleWith(b) {
		t.Error("None must not satisfy a primitive")
	}
	if !none.IsCompatibleWith(none) {
		t.Error("None satisfies None")
	}
}

func TestCategories(t *testing.T) {
	tests := []struct {
		spec     *DataSpec
		category PrimitiveCategory
		want     bool
	}{
		{NewIntegerSpec(Signed, B64), CategoryNumeric, true},
		{NewFloatSpec(B32), CategoryNumeric, true},
		{NewBooleanSpec(), CategoryNumeric, false},
		{NewBooleanSpec(), CategoryBasic, true},
		{NewDurationSpec(DayToSecond, Seconds), CategoryInterval, true},
		{NewDateSpec(), CategoryDateTime, true},
		{NewDateSpec(), CategoryTime, false},
		{NewTimeSpec(ZonedTime, Second), CategoryTime, true},
		{NewListSpec(NewBooleanSpec()), CategoryCollection, true},
		{NewTupleSpec(NewBooleanSpec()), CategoryCollection, false},
		{NewTupleSpec(NewBooleanSpec()), CategorySequenceable, true},
		{NewSequenceSpec(NewBooleanSpec()), CategorySequenceable, true},
		{NewGuidSpec(), CategorySimple, true},
		{NewMapSpec(NewBooleanSpec(), NewBooleanSpec(), Unordered), CategoryAll, true},
		{NewKindSpec(KindObject), CategoryObjectOrReference, true},
		{NewKindSpec(KindSchema), CategorySchema, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String()+"_"+tt.category.String(), func(t *testing.T) {
			got := tt.spec.IsCompatibleWith(NewCategorySpec(tt.category))
			if got != tt.want {
				t.Errorf("%s compatible with %s = %v, want %v", tt.spec, tt.category, got, tt.want)
			}
		})
	}
}

func TestCategoryCompatibilityTable(t *testing.T) {
	collection := NewCategorySpec(CategoryCollection)
	sequenceable := NewCategorySpec(CategorySequenceable)
	all := NewCategorySpec(CategoryAll)
	numeric := NewCategorySpec(CategoryNumeric)

	if !collection.IsCompatibleWith(sequenceable) {
		t.Error("Collection should widen to Sequenceable")
	}
	if sequenceable.IsCompatibleWith(collection) {
		t.Error("Sequenceable must not narrow to Collection")
	}
	if !all.IsCompatibleWith(numeric) || !numeric.IsCompatibleWith(all) {
		t.Error("All is compatible with everything in both directions")
	}
	if numeric.IsCompatibleWith(collection) {
		t.Error("Numeric must not satisfy Collection")
	}
	if NewCategorySpec(CategoryNumeric).IsCompatibleWith(NewIntegerSpec(Signed, B8)) {
		t.Error("a category never satisfies a primitive")
	}
	if c, ok := ParseCategory("Sequenceable"); !ok || c != CategorySequenceable {
		t.Errorf("ParseCategory = %v, %v", c, ok)
	}
	if _, ok := ParseCategory("Nope"); ok {
		t.Error("ParseCategory accepted an unknown name")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		spec *DataSpec
		want Level
	}{
		{"boolean", NewBooleanSpec(), LevelAccess},
		{"integer_full", NewIntegerSpec(Signed, B16), LevelAccess},
		{"integer_partial", NewIntegerSpecBuilder().WithEncoding(Signed).Build(), LevelCompare},
		{"kind", NewKindSpec(KindInteger), LevelCompare},
		{"category", NewCategorySpec(CategoryAll), LevelCompare},
		{"none", NewNoneSpec(), LevelCompare},
		{"list_full", NewListSpec(NewBooleanSpec()), LevelAccess},
		{"list_no_storage", NewListSpecBuilder().WithElement(NewBooleanSpec()).Build(), LevelCompare},
		{"list_partial_element", NewListSpec(NewKindSpec(KindBoolean)), LevelCompare},
		{"set_no_ordering", NewSetSpecBuilder().WithElement(NewBooleanSpec()).Build(), LevelCompare},
		{"map_full", NewMapSpec(NewBooleanSpec(), NewDateSpec(), Unordered), LevelAccess},
		{"map_partial_value", NewMapSpec(NewBooleanSpec(), NewCategorySpec(CategoryNumeric), Unordered), LevelCompare},
		{"tuple_full", NewTupleSpec(NewBooleanSpec(), NewDateSpec()), LevelAccess},
		{"tuple_unbound", NewTupleSpecBuilder().Build(), LevelCompare},
		{"time_partial", NewTimeSpecBuilder().WithResolution(Second).Build(), LevelCompare},
		{"duration_full", NewDurationSpec(DayToSecond, Nanoseconds), LevelAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Level(); got != tt.want {
				t.Errorf("%s level = %s, want %s", tt.spec, got, tt.want)
			}
		})
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*DataSpec, error)
		want  string
	}{
		{
			name:  "float_b8",
			build: NewFloatSpecBuilder().WithStorage(B8).TryBuild,
			want:  "float storage must be B32 or B64",
		},
		{
			name:  "string_zero_length",
			build: NewStringSpecBuilder().WithStorage(MaxLength(0)).TryBuild,
			want:  "must be positive",
		},
		{
			name:  "list_storage_without_element",
			build: NewListSpecBuilder().WithStorage(FixedSize(3)).TryBuild,
			want:  "without an element spec",
		},
		{
			name:  "list_negative_size",
			build: NewListSpecBuilder().WithElement(NewBooleanSpec()).WithStorage(FixedCapacity(-1)).TryBuild,
			want:  "negative size",
		},
		{
			name:  "ordered_set_unordered_element",
			build: NewSetSpecBuilder().WithElement(NewSequenceSpec(NewBooleanSpec())).WithOrdering(Ordered).TryBuild,
			want:  "is not ordered",
		},
		{
			name:  "ordered_map_category_key",
			build: NewMapSpecBuilder().WithKey(NewCategorySpec(CategoryNumeric)).WithValue(NewBooleanSpec()).WithOrdering(Ordered).TryBuild,
			want:  "is not ordered",
		},
		{
			name:  "duration_resolution_mismatch",
			build: NewDurationSpecBuilder().WithType(YearToMonth).WithResolution(Seconds).TryBuild,
			want:  "does not fit duration type",
		},
		{
			name:  "duration_resolution_without_type",
			build: NewDurationSpecBuilder().WithResolution(Days).TryBuild,
			want:  "requires a duration type",
		},
		{
			name:  "tuple_nil_element",
			build: NewTupleSpecBuilder().AddElement(NewBooleanSpec()).AddElement(nil).TryBuild,
			want:  "tuple element 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestBuildPanicsOnContradiction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Build did not panic")
		}
	}()
	NewDurationSpec(DayToSecond, Years)
}

func TestIsOrdered(t *testing.T) {
	tests := []struct {
		name string
		spec *DataSpec
		want bool
	}{
		{"integer", NewIntegerSpec(Signed, B8), true},
		{"tuple", NewTupleSpec(NewBooleanSpec()), true},
		{"tuple_with_unordered_set", NewTupleSpec(NewBooleanSpec(), NewSetSpec(NewDateSpec(), Unordered)), false},
		{"unbound_tuple", NewTupleSpecBuilder().Build(), false},
		{"list_of_unordered_tuples", NewListSpec(NewTupleSpec(NewSequenceSpec(NewDateSpec()))), false},
		{"list_of_dates", NewListSpec(NewDateSpec()), true},
		{"unordered_set", NewSetSpec(NewDateSpec(), Unordered), false},
		{"ordered_set", NewSetSpec(NewDateSpec(), Ordered), true},
		{"ordered_map", NewMapSpec(NewDateSpec(), NewBooleanSpec(), Ordered), true},
		{"sequence", NewSequenceSpec(NewBooleanSpec()), false},
		{"kind_only", NewKindSpec(KindInteger), false},
		{"category", NewCategorySpec(CategoryNumeric), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.IsOrdered(); got != tt.want {
				t.Errorf("%s IsOrdered = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestSpecString(t *testing.T) {
	tests := []struct {
		spec *DataSpec
		want string
	}{
		{NewIntegerSpec(Signed, B64), "Integer{Signed, B64}"},
		{NewIntegerSpecBuilder().WithStorage(B8).Build(), "Integer{_, B8}"},
		{NewListSpecBuilder().WithElement(NewBooleanSpec()).WithStorage(FixedSize(2)).Build(), "List{Boolean, FixedSize(2)}"},
		{NewMapSpec(NewDateSpec(), NewGuidSpec(), Ordered), "Map{Date, Guid, Ordered}"},
		{NewTupleSpec(NewBooleanSpec(), NewFloatSpec(B32)), "Tuple{Boolean, Float{B32}}"},
		{NewTimeSpec(ZonedTime, Microsecond100), "Time{Zoned, Microsecond100}"},
		{NewCategorySpec(CategoryCollection), "Category(Collection)"},
		{NewKindSpec(KindBlob), "Blob"},
		{NewNoneSpec(), "None"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.spec.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner(2)
	a := in.Intern(NewIntegerSpec(Signed, B64))
	b := in.Intern(NewIntegerSpec(Signed, B64))
	if a != b {
		t.Error("equal specs were not shared")
	}
	c := in.Intern(NewIntegerSpecBuilder().WithEncoding(Signed).Build())
	if c == a {
		t.Error("different specs were shared")
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
	in.Intern(NewBooleanSpec())
	if in.Len() != 2 {
		t.Errorf("Len after eviction = %d, want 2", in.Len())
	}
	if in.Intern(nil) != nil {
		t.Error("Intern(nil) should be nil")
	}
}
