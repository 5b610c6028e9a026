// Package specschema renders DataSpecs as JSON Schema documents describing
// the text form of their values: scalars as their canonical strings or JSON
// numbers, lists, sets, tuples and sequences as arrays, and maps as objects
// when keyed by strings or as arrays of [key, value] pairs otherwise.
package specschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/LennyHof/Epiphany-sub000/specconf"
	"github.com/LennyHof/Epiphany-sub000/variant"
)

// ErrNoRepresentation is returned for kinds that have no JSON form.
var ErrNoRepresentation = errors.New("specschema: kind has no JSON representation")

const (
	localTimePattern     = `^T?\d{2}:?\d{2}:?\d{2}(\.\d{1,9})?$`
	localDateTimePattern = `^\d{4}-?\d{2}-?\d{2}T\d{2}:?\d{2}:?\d{2}(\.\d{1,9})?$`
	yearMonthPattern     = `^-?P(\d+Y)?(\d+M)?$`
	dayTimePattern       = `^-?P(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d{1,9})?S)?)?$`
)

// FromDataSpec returns the JSON Schema of values described by spec.
func FromDataSpec(spec *variant.DataSpec) (*jsonschema.Schema, error) {
	s, err := (&converter{}).convert(spec)
	if err != nil {
		return nil, err
	}
	s.Version = jsonschema.Version
	return s, nil
}

// FromCatalog returns a schema whose $defs hold one definition per catalog
// entry. Nested specs that are themselves catalog entries become $refs.
func FromCatalog(c *specconf.Catalog) (*jsonschema.Schema, error) {
	conv := &converter{refs: make(map[*variant.DataSpec]string, c.Len())}
	for name, spec := range c.All() {
		if _, dup := conv.refs[spec]; !dup {
			conv.refs[spec] = name
		}
	}
	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Definitions: make(jsonschema.Definitions, c.Len()),
	}
	for name, spec := range c.All() {
		s, err := conv.convert(spec)
		if err != nil {
			return nil, fmt.Errorf("spec %q: %w", name, err)
		}
		root.Definitions[name] = s
	}
	return root, nil
}

type converter struct {
	refs map[*variant.DataSpec]string
}

// nested converts an element, key or value spec, referring to a catalog
// definition when there is one.
func (c *converter) nested(spec *variant.DataSpec) (*jsonschema.Schema, error) {
	if name, ok := c.refs[spec]; ok {
		return &jsonschema.Schema{Ref: "#/$defs/" + name}, nil
	}
	return c.convert(spec)
}

func (c *converter) convert(spec *variant.DataSpec) (*jsonschema.Schema, error) {
	switch spec.Type() {
	case variant.SpecNone:
		return &jsonschema.Schema{}, nil
	case variant.SpecCategory:
		cat, _ := spec.Category()
		return categorySchema(cat)
	}
	var (
		s   *jsonschema.Schema
		err error
	)
	if ps := spec.PrimitiveSpec(); ps != nil {
		s, err = c.primitive(ps)
	} else {
		s, err = kindSchema(spec.Kind())
	}
	if err != nil {
		return nil, err
	}
	s.Description = spec.String()
	return s, nil
}

func (c *converter) primitive(ps variant.PrimitiveSpec) (*jsonschema.Schema, error) {
	switch p := ps.(type) {
	case *variant.IntegerSpec:
		return integerSchema(p), nil
	case *variant.StringSpec:
		s := &jsonschema.Schema{Type: "string"}
		// maxLength counts characters, which never exceed code units.
		if st, ok := p.Storage(); ok && st.Policy == variant.StringMaxLength {
			s.MaxLength = count(st.Length)
		}
		return s, nil
	case *variant.TimeSpec:
		if p.IsZoned() {
			return &jsonschema.Schema{Type: "string", Format: "time"}, nil
		}
		return &jsonschema.Schema{Type: "string", Pattern: localTimePattern}, nil
	case *variant.DateTimeSpec:
		if t, _ := p.Type(); t == variant.ZonedTime {
			return &jsonschema.Schema{Type: "string", Format: "date-time"}, nil
		}
		return &jsonschema.Schema{Type: "string", Pattern: localDateTimePattern}, nil
	case *variant.DurationSpec:
		s := &jsonschema.Schema{Type: "string"}
		switch t, _ := p.Type(); t {
		case variant.YearToMonth:
			s.Pattern = yearMonthPattern
		case variant.DayToSecond:
			s.Pattern = dayTimePattern
		default:
			s.Format = "duration"
		}
		return s, nil
	case *variant.ListSpec:
		items, err := c.nested(p.Element())
		if err != nil {
			return nil, err
		}
		s := &jsonschema.Schema{Type: "array", Items: items}
		if st, ok := p.Storage(); ok {
			switch st.Policy {
			case variant.PolicyFixedSize:
				s.MinItems = count(st.Size)
				s.MaxItems = count(st.Size)
			case variant.PolicyFixedCapacity:
				s.MaxItems = count(st.Size)
			}
		}
		return s, nil
	case *variant.SetSpec:
		items, err := c.nested(p.Element())
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{Type: "array", Items: items, UniqueItems: true}, nil
	case *variant.MapSpec:
		return c.mapSchema(p)
	case *variant.TupleSpec:
		s := &jsonschema.Schema{
			Type:     "array",
			Items:    jsonschema.FalseSchema,
			MinItems: count(p.Len()),
			MaxItems: count(p.Len()),
		}
		for _, e := range p.Elements() {
			es, err := c.nested(e)
			if err != nil {
				return nil, err
			}
			s.PrefixItems = append(s.PrefixItems, es)
		}
		return s, nil
	case *variant.SequenceSpec:
		items, err := c.nested(p.Element())
		if err != nil {
			return nil, err
		}
		return &jsonschema.Schema{Type: "array", Items: items}, nil
	default:
		return kindSchema(ps.Kind())
	}
}

func (c *converter) mapSchema(p *variant.MapSpec) (*jsonschema.Schema, error) {
	key, err := c.nested(p.Key())
	if err != nil {
		return nil, err
	}
	value, err := c.nested(p.Value())
	if err != nil {
		return nil, err
	}
	if p.Key().Kind() == variant.KindString {
		return &jsonschema.Schema{Type: "object", PropertyNames: key, AdditionalProperties: value}, nil
	}
	pair := &jsonschema.Schema{
		Type:        "array",
		PrefixItems: []*jsonschema.Schema{key, value},
		Items:       jsonschema.FalseSchema,
		MinItems:    count(2),
		MaxItems:    count(2),
	}
	return &jsonschema.Schema{Type: "array", Items: pair}, nil
}

func integerSchema(p *variant.IntegerSpec) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "integer"}
	enc, encOK := p.Encoding()
	w, wOK := p.Storage()
	switch {
	case encOK && wOK && enc == variant.Signed:
		bits := w.Bits()
		s.Minimum = number(strconv.FormatInt(-1<<(bits-1), 10))
		s.Maximum = number(strconv.FormatUint(1<<(bits-1)-1, 10))
	case encOK && wOK:
		bits := w.Bits()
		s.Minimum = number("0")
		s.Maximum = number(strconv.FormatUint(1<<bits-1, 10))
	case encOK && enc == variant.Unsigned:
		s.Minimum = number("0")
	}
	return s
}

// kindSchema describes any value of kind.
func kindSchema(kind variant.Kind) (*jsonschema.Schema, error) {
	switch kind {
	case variant.KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}, nil
	case variant.KindInteger:
		return &jsonschema.Schema{Type: "integer"}, nil
	case variant.KindFloat:
		return &jsonschema.Schema{Type: "number"}, nil
	case variant.KindString, variant.KindTime, variant.KindDateTime, variant.KindDuration:
		return &jsonschema.Schema{Type: "string"}, nil
	case variant.KindGuid:
		return &jsonschema.Schema{Type: "string", Format: "uuid"}, nil
	case variant.KindDate:
		return &jsonschema.Schema{Type: "string", Format: "date"}, nil
	case variant.KindList, variant.KindSequence, variant.KindTuple:
		return &jsonschema.Schema{Type: "array"}, nil
	case variant.KindSet:
		return &jsonschema.Schema{Type: "array", UniqueItems: true}, nil
	case variant.KindMap:
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{{Type: "object"}, {Type: "array"}}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoRepresentation, kind)
	}
}

// categorySchema accepts any kind of the category that has a JSON form.
func categorySchema(cat variant.PrimitiveCategory) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{Description: "Category(" + cat.String() + ")"}
	if cat == variant.CategoryAll {
		return s, nil
	}
	for k := variant.KindBoolean; k <= variant.KindSchema; k++ {
		if !cat.Contains(k) {
			continue
		}
		ks, err := kindSchema(k)
		if err != nil {
			continue
		}
		ks.Description = k.String()
		s.AnyOf = append(s.AnyOf, ks)
	}
	if len(s.AnyOf) == 0 {
		return nil, fmt.Errorf("%w: category %s", ErrNoRepresentation, cat)
	}
	return s, nil
}

func count(n int) *uint64 {
	v := uint64(n)
	return &v
}

func number(s string) json.Number { return json.Number(s) }
