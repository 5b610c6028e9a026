package specconf

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

// node is one spec declaration, named or inline.
type node struct {
	Type       string   `yaml:"type"`
	Kind       string   `yaml:"kind,omitempty"`
	Category   string   `yaml:"category,omitempty"`
	Encoding   string   `yaml:"encoding,omitempty"`
	Width      string   `yaml:"width,omitempty"`
	Length     string   `yaml:"length,omitempty"`
	Variant    string   `yaml:"variant,omitempty"`
	Resolution string   `yaml:"resolution,omitempty"`
	Storage    *storage `yaml:"storage,omitempty"`
	Ordering   string   `yaml:"ordering,omitempty"`
	Element    *ref     `yaml:"element,omitempty"`
	Key        *ref     `yaml:"key,omitempty"`
	Value      *ref     `yaml:"value,omitempty"`
	Elements   []ref    `yaml:"elements,omitempty"`
}

type storage struct {
	Policy string `yaml:"policy"`
	Size   int    `yaml:"size,omitempty"`
}

// ref is a nested spec: a name of another entry or an inline node.
type ref struct {
	Name   string
	Inline *node
	Line   int
}

var nodeKeys = map[string]bool{
	"type": true, "kind": true, "category": true, "encoding": true, "width": true,
	"length": true, "variant": true, "resolution": true, "storage": true,
	"ordering": true, "element": true, "key": true, "value": true, "elements": true,
}

func (r *ref) UnmarshalYAML(n *yaml.Node) error {
	r.Line = n.Line
	switch n.Kind {
	case yaml.ScalarNode:
		r.Name = n.Value
		return nil
	case yaml.MappingNode:
		// Node.Decode does not inherit KnownFields from the outer decoder.
		for i := 0; i < len(n.Content); i += 2 {
			if k := n.Content[i]; !nodeKeys[k.Value] {
				return fmt.Errorf("line %d: field %s not found in inline spec", k.Line, k.Value)
			}
		}
		r.Inline = new(node)
		return n.Decode(r.Inline)
	default:
		return fmt.Errorf("line %d: spec must be a name or a mapping", n.Line)
	}
}

type loader struct {
	interner *variant.Interner
	logger   *slog.Logger

	entries  map[string]*entry
	building map[string]bool
	built    map[string]*variant.DataSpec
}

// resolve builds the entry called name. path holds the names being built
// above it and is used to report reference cycles.
func (l *loader) resolve(name string, path []string) (*variant.DataSpec, error) {
	if s, ok := l.built[name]; ok {
		return s, nil
	}
	e, ok := l.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpec, name)
	}
	path = append(path, name)
	if l.building[name] {
		return nil, fmt.Errorf("reference cycle %s", strings.Join(path, " -> "))
	}
	l.building[name] = true
	defer delete(l.building, name)

	s, err := l.build(&e.Spec, path)
	if err != nil {
		return nil, fmt.Errorf("spec %q: %w", name, err)
	}
	l.built[name] = s
	l.logger.Debug("spec built", "name", name, "spec", s.String(), "level", s.Level())
	return s, nil
}

func (l *loader) nested(r *ref, field string, path []string) (*variant.DataSpec, error) {
	if r == nil {
		return nil, fmt.Errorf("%s is required", field)
	}
	if r.Inline != nil {
		s, err := l.build(r.Inline, path)
		if err != nil {
			return nil, fmt.Errorf("%s (line %d): %w", field, r.Line, err)
		}
		return s, nil
	}
	return l.resolve(r.Name, path)
}

func (l *loader) intern(s *variant.DataSpec) *variant.DataSpec {
	if l.interner == nil {
		return s
	}
	return l.interner.Intern(s)
}

func (l *loader) build(n *node, path []string) (*variant.DataSpec, error) {
	s, err := l.buildSpec(n, path)
	if err != nil {
		return nil, err
	}
	return l.intern(s), nil
}

func (l *loader) buildSpec(n *node, path []string) (*variant.DataSpec, error) {
	switch strings.ToLower(n.Type) {
	case "none":
		return variant.NewNoneSpec(), nil
	case "kind":
		k, ok := variant.ParseKind(n.Kind)
		if !ok {
			return nil, fmt.Errorf("invalid kind %q", n.Kind)
		}
		return variant.NewKindSpec(k), nil
	case "category":
		c, ok := categoryNamed(n.Category)
		if !ok {
			return nil, fmt.Errorf("invalid category %q", n.Category)
		}
		return variant.NewCategorySpec(c), nil
	case "boolean":
		return variant.NewBooleanSpec(), nil
	case "guid":
		return variant.NewGuidSpec(), nil
	case "date":
		return variant.NewDateSpec(), nil
	case "integer":
		b := variant.NewIntegerSpecBuilder()
		if n.Encoding != "" {
			e, err := lookup("encoding", n.Encoding, integerEncodings)
			if err != nil {
				return nil, err
			}
			b.WithEncoding(e)
		}
		if n.Width != "" {
			w, err := lookup("width", n.Width, widths)
			if err != nil {
				return nil, err
			}
			b.WithStorage(w)
		}
		return b.TryBuild()
	case "float":
		b := variant.NewFloatSpecBuilder()
		if n.Width != "" {
			w, err := lookup("width", n.Width, widths)
			if err != nil {
				return nil, err
			}
			b.WithStorage(w)
		}
		return b.TryBuild()
	case "string":
		return buildString(n)
	case "time", "datetime":
		return buildTime(n)
	case "duration":
		b := variant.NewDurationSpecBuilder()
		if n.Variant != "" {
			t, err := lookup("variant", n.Variant, durationTypes)
			if err != nil {
				return nil, err
			}
			b.WithType(t)
		}
		if n.Resolution != "" {
			r, err := lookup("resolution", n.Resolution, durationResolutions)
			if err != nil {
				return nil, err
			}
			b.WithResolution(r)
		}
		return b.TryBuild()
	case "list":
		elem, err := l.nested(n.Element, "element", path)
		if err != nil {
			return nil, err
		}
		b := variant.NewListSpecBuilder().WithElement(elem)
		if n.Storage != nil {
			p, err := lookup("storage policy", n.Storage.Policy, listPolicies)
			if err != nil {
				return nil, err
			}
			b.WithStorage(variant.ListStorage{Policy: p, Size: n.Storage.Size})
		}
		return b.TryBuild()
	case "set":
		elem, err := l.nested(n.Element, "element", path)
		if err != nil {
			return nil, err
		}
		b := variant.NewSetSpecBuilder().WithElement(elem)
		if n.Ordering != "" {
			o, err := lookup("ordering", n.Ordering, orderings)
			if err != nil {
				return nil, err
			}
			b.WithOrdering(o)
		}
		return b.TryBuild()
	case "map":
		key, err := l.nested(n.Key, "key", path)
		if err != nil {
			return nil, err
		}
		value, err := l.nested(n.Value, "value", path)
		if err != nil {
			return nil, err
		}
		b := variant.NewMapSpecBuilder().WithKey(key).WithValue(value)
		if n.Ordering != "" {
			o, err := lookup("ordering", n.Ordering, orderings)
			if err != nil {
				return nil, err
			}
			b.WithOrdering(o)
		}
		return b.TryBuild()
	case "tuple":
		b := variant.NewTupleSpecBuilder()
		for i := range n.Elements {
			s, err := l.nested(&n.Elements[i], fmt.Sprintf("elements[%d]", i), path)
			if err != nil {
				return nil, err
			}
			b.AddElement(s)
		}
		return b.TryBuild()
	case "sequence":
		elem, err := l.nested(n.Element, "element", path)
		if err != nil {
			return nil, err
		}
		return variant.NewSequenceSpecBuilder().WithElement(elem).TryBuild()
	case "":
		return nil, errors.New("type is required")
	default:
		return nil, fmt.Errorf("invalid type %q", n.Type)
	}
}

func buildString(n *node) (*variant.DataSpec, error) {
	b := variant.NewStringSpecBuilder()
	if n.Encoding != "" {
		e, err := lookup("encoding", n.Encoding, stringEncodings)
		if err != nil {
			return nil, err
		}
		b.WithEncoding(e)
	}
	switch n.Length {
	case "":
	case "variable":
		b.WithStorage(variant.VariableLength())
	default:
		size, err := strconv.Atoi(n.Length)
		if err != nil {
			return nil, fmt.Errorf("invalid length %q: want \"variable\" or a count", n.Length)
		}
		b.WithStorage(variant.MaxLength(size))
	}
	return b.TryBuild()
}

func buildTime(n *node) (*variant.DataSpec, error) {
	var t *variant.TimeType
	var r *variant.TimeResolution
	if n.Variant != "" {
		v, err := lookup("variant", n.Variant, timeTypes)
		if err != nil {
			return nil, err
		}
		t = &v
	}
	if n.Resolution != "" {
		v, err := lookup("resolution", n.Resolution, timeResolutions)
		if err != nil {
			return nil, err
		}
		r = &v
	}
	if strings.EqualFold(n.Type, "datetime") {
		b := variant.NewDateTimeSpecBuilder()
		if t != nil {
			b.WithType(*t)
		}
		if r != nil {
			b.WithResolution(*r)
		}
		return b.TryBuild()
	}
	b := variant.NewTimeSpecBuilder()
	if t != nil {
		b.WithType(*t)
	}
	if r != nil {
		b.WithResolution(*r)
	}
	return b.TryBuild()
}
