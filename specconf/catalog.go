// Package specconf loads named DataSpecs from YAML catalog files.
//
// A catalog lists specs under a top-level "specs" key. Collection specs name
// their element, key and value specs either by reference to another entry or
// inline:
//
//	specs:
//	  - name: amount
//	    type: integer
//	    encoding: signed
//	    width: b64
//	  - name: scores
//	    type: list
//	    element: amount
//	    storage: {policy: fixed_capacity, size: 8}
//	  - name: lookup
//	    type: map
//	    key: {type: integer, encoding: unsigned, width: b32}
//	    value: amount
//	    ordering: ordered
//
// Omitted options leave the spec partial, which is how compare-level
// requirements are written.
package specconf

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

// ErrUnknownSpec is returned for a name that is not in the catalog.
var ErrUnknownSpec = errors.New("specconf: unknown spec")

// Catalog holds named specs in declaration order. A Catalog is immutable
// once loaded and safe for concurrent use.
type Catalog struct {
	names []string
	specs map[string]*variant.DataSpec
}

// Option configures Load.
type Option func(*loader)

// WithInterner shares structurally identical specs through in, including
// specs shared with other catalogs loaded with the same interner.
func WithInterner(in *variant.Interner) Option {
	return func(l *loader) { l.interner = in }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

type document struct {
	Specs []entry `yaml:"specs"`
}

type entry struct {
	Name string `yaml:"name"`
	Spec node   `yaml:",inline"`
}

// LoadFile reads a catalog from path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // user-specified catalog path
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Load reads a catalog from r. Unknown keys are rejected.
func Load(r io.Reader, opts ...Option) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	l := &loader{
		logger:   slog.Default(),
		entries:  make(map[string]*entry, len(doc.Specs)),
		building: make(map[string]bool),
		built:    make(map[string]*variant.DataSpec, len(doc.Specs)),
	}
	for _, opt := range opts {
		opt(l)
	}

	c := &Catalog{specs: l.built}
	for i := range doc.Specs {
		e := &doc.Specs[i]
		switch {
		case e.Name == "":
			return nil, fmt.Errorf("spec %d: name is required", i)
		case strings.ContainsAny(e.Name, " \t\n"):
			return nil, fmt.Errorf("spec %q: name must not contain whitespace", e.Name)
		case l.entries[e.Name] != nil:
			return nil, fmt.Errorf("spec %q: declared twice", e.Name)
		}
		l.entries[e.Name] = e
		c.names = append(c.names, e.Name)
	}
	for _, name := range c.names {
		if _, err := l.resolve(name, nil); err != nil {
			return nil, err
		}
	}
	l.logger.Debug("catalog loaded", "specs", len(c.names))
	return c, nil
}

// Lookup returns the spec named name.
func (c *Catalog) Lookup(name string) (*variant.DataSpec, bool) {
	s, ok := c.specs[name]
	return s, ok
}

// Get is Lookup returning ErrUnknownSpec for a missing name.
func (c *Catalog) Get(name string) (*variant.DataSpec, error) {
	if s, ok := c.specs[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpec, name)
}

// MustLookup is Lookup that panics on a missing name.
func (c *Catalog) MustLookup(name string) *variant.DataSpec {
	s, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the spec names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of named specs.
func (c *Catalog) Len() int { return len(c.names) }

// All iterates over the specs in declaration order.
func (c *Catalog) All() iter.Seq2[string, *variant.DataSpec] {
	return func(yield func(string, *variant.DataSpec) bool) {
		for _, name := range c.names {
			if !yield(name, c.specs[name]) {
				return
			}
		}
	}
}
