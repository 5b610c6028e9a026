package specschema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/LennyHof/Epiphany-sub000/specconf"
	"github.com/LennyHof/Epiphany-sub000/variant"
)

func TestIntegerBounds(t *testing.T) {
	tests := []struct {
		spec     *variant.DataSpec
		min, max json.Number
	}{
		{variant.NewIntegerSpec(variant.Signed, variant.B8), "-128", "127"},
		{variant.NewIntegerSpec(variant.Signed, variant.B64), "-9223372036854775808", "9223372036854775807"},
		{variant.NewIntegerSpec(variant.Unsigned, variant.B16), "0", "65535"},
		{variant.NewIntegerSpec(variant.Unsigned, variant.B64), "0", "18446744073709551615"},
		{variant.NewIntegerSpecBuilder().WithEncoding(variant.Unsigned).Build(), "0", ""},
		{variant.NewIntegerSpecBuilder().WithStorage(variant.B32).Build(), "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			s, err := FromDataSpec(tt.spec)
			require.NoError(t, err)
			require.Equal(t, "integer", s.Type)
			require.Equal(t, tt.min, s.Minimum)
			require.Equal(t, tt.max, s.Maximum)
			require.Equal(t, jsonschema.Version, s.Version)
		})
	}
}

func TestScalars(t *testing.T) {
	tests := []struct {
		spec    *variant.DataSpec
		typ     string
		format  string
		pattern bool
	}{
		{variant.NewBooleanSpec(), "boolean", "", false},
		{variant.NewFloatSpec(variant.B32), "number", "", false},
		{variant.NewGuidSpec(), "string", "uuid", false},
		{variant.NewDateSpec(), "string", "date", false},
		{variant.NewTimeSpec(variant.ZonedTime, variant.Second), "string", "time", false},
		{variant.NewTimeSpec(variant.LocalTime, variant.Second), "string", "", true},
		{variant.NewDateTimeSpec(variant.ZonedTime, variant.Second), "string", "date-time", false},
		{variant.NewDateTimeSpec(variant.LocalTime, variant.Second), "string", "", true},
		{variant.NewDurationSpec(variant.DayToSecond, variant.Seconds), "string", "", true},
		{variant.NewDurationSpecBuilder().Build(), "string", "duration", false},
		{variant.NewKindSpec(variant.KindDate), "string", "date", false},
	}
	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			s, err := FromDataSpec(tt.spec)
			require.NoError(t, err)
			require.Equal(t, tt.typ, s.Type)
			require.Equal(t, tt.format, s.Format)
			require.Equal(t, tt.pattern, s.Pattern != "")
			require.Equal(t, tt.spec.String(), s.Description)
		})
	}
}

func TestStringMaxLength(t *testing.T) {
	s, err := FromDataSpec(variant.NewStringSpec(variant.Utf16, variant.MaxLength(12)))
	require.NoError(t, err)
	require.NotNil(t, s.MaxLength)
	require.Equal(t, uint64(12), *s.MaxLength)

	s, err = FromDataSpec(variant.NewStringSpec(variant.Utf8, variant.VariableLength()))
	require.NoError(t, err)
	require.Nil(t, s.MaxLength)
}

func TestCollections(t *testing.T) {
	b := variant.NewBooleanSpec()

	fixed := variant.NewListSpecBuilder().WithElement(b).WithStorage(variant.FixedSize(3)).Build()
	s, err := FromDataSpec(fixed)
	require.NoError(t, err)
	require.Equal(t, "array", s.Type)
	require.Equal(t, "boolean", s.Items.Type)
	require.Equal(t, uint64(3), *s.MinItems)
	require.Equal(t, uint64(3), *s.MaxItems)

	capped := variant.NewListSpecBuilder().WithElement(b).WithStorage(variant.FixedCapacity(5)).Build()
	s, err = FromDataSpec(capped)
	require.NoError(t, err)
	require.Nil(t, s.MinItems)
	require.Equal(t, uint64(5), *s.MaxItems)

	s, err = FromDataSpec(variant.NewSetSpec(variant.NewDateSpec(), variant.Ordered))
	require.NoError(t, err)
	require.True(t, s.UniqueItems)
	require.Equal(t, "date", s.Items.Format)

	s, err = FromDataSpec(variant.NewTupleSpec(b, variant.NewGuidSpec()))
	require.NoError(t, err)
	require.Len(t, s.PrefixItems, 2)
	require.Equal(t, "uuid", s.PrefixItems[1].Format)
	out, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(out), `"items":false`)
}

func TestMaps(t *testing.T) {
	str := variant.NewStringSpec(variant.Utf8, variant.VariableLength())
	i32 := variant.NewIntegerSpec(variant.Signed, variant.B32)

	s, err := FromDataSpec(variant.NewMapSpec(str, i32, variant.Unordered))
	require.NoError(t, err)
	require.Equal(t, "object", s.Type)
	require.Equal(t, "integer", s.AdditionalProperties.Type)
	require.Equal(t, "string", s.PropertyNames.Type)

	s, err = FromDataSpec(variant.NewMapSpec(i32, str, variant.Ordered))
	require.NoError(t, err)
	require.Equal(t, "array", s.Type)
	require.Equal(t, "array", s.Items.Type)
	require.Len(t, s.Items.PrefixItems, 2)
	require.Equal(t, "integer", s.Items.PrefixItems[0].Type)
}

func TestCategories(t *testing.T) {
	s, err := FromDataSpec(variant.NewCategorySpec(variant.CategoryNumeric))
	require.NoError(t, err)
	require.Len(t, s.AnyOf, 2)
	require.Equal(t, "integer", s.AnyOf[0].Type)
	require.Equal(t, "number", s.AnyOf[1].Type)

	s, err = FromDataSpec(variant.NewCategorySpec(variant.CategoryAll))
	require.NoError(t, err)
	require.Empty(t, s.AnyOf)
	require.Empty(t, s.Type)

	_, err = FromDataSpec(variant.NewCategorySpec(variant.CategoryObjectOrReference))
	require.ErrorIs(t, err, ErrNoRepresentation)
	_, err = FromDataSpec(variant.NewKindSpec(variant.KindObject))
	require.ErrorIs(t, err, ErrNoRepresentation)

	s, err = FromDataSpec(variant.NewNoneSpec())
	require.NoError(t, err)
	require.Empty(t, s.Type)
}

func TestFromCatalog(t *testing.T) {
	const doc = `
specs:
  - name: amount
    type: integer
    encoding: signed
    width: b64
  - name: ledger
    type: map
    key: {type: string, encoding: utf8, length: variable}
    value: amount
    ordering: unordered
  - name: history
    type: list
    element: ledger
    storage: {policy: variable_size}
`
	c, err := specconf.Load(strings.NewReader(doc))
	require.NoError(t, err)

	s, err := FromCatalog(c)
	require.NoError(t, err)
	require.Len(t, s.Definitions, 3)
	require.Equal(t, "#/$defs/amount", s.Definitions["ledger"].AdditionalProperties.Ref)
	require.Equal(t, "#/$defs/ledger", s.Definitions["history"].Items.Ref)
	require.Equal(t, "string", s.Definitions["ledger"].PropertyNames.Type)
	require.Equal(t, "integer", s.Definitions["amount"].Type)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	require.Contains(t, string(out), `"$defs"`)
	require.Contains(t, string(out), `"$ref":"#/$defs/amount"`)
}

func TestFromCatalogError(t *testing.T) {
	c, err := specconf.Load(strings.NewReader("specs:\n  - {name: obj, type: kind, kind: object}\n"))
	require.NoError(t, err)
	_, err = FromCatalog(c)
	require.ErrorIs(t, err, ErrNoRepresentation)
	require.Contains(t, err.Error(), `spec "obj"`)
}
