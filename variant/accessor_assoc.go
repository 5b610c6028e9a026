package variant

import (
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ============================================================
// Set
// ============================================================

// SetAccessor reads and writes a set. Elements are checked against the
// element spec and deep-copied on insert.
type SetAccessor struct {
	spec     *SetSpec
	adaptor  SetAdaptor
	provider DataProvider
}

// Spec returns the spec the set was created with.
func (a *SetAccessor) Spec() *SetSpec { return a.spec }

// Len returns the number of elements.
func (a *SetAccessor) Len() int { return a.adaptor.Len() }

// IsEmpty reports whether Len is zero.
func (a *SetAccessor) IsEmpty() bool { return a.adaptor.Len() == 0 }

func (a *SetAccessor) checkElement(v *Variable) error {
	return v.spec.CheckCompatibleWith(a.spec.element)
}

// Contains reports whether an element equal to v is present.
func (a *SetAccessor) Contains(v *Variable) (bool, error) {
	if err := a.checkElement(v); err != nil {
		return false, err
	}
	return a.adaptor.Contains(v), nil
}

// Insert adds a copy of v and reports whether it was not already present.
func (a *SetAccessor) Insert(v *Variable) (bool, error) {
	if err := a.checkElement(v); err != nil {
		return false, err
	}
	if a.adaptor.Contains(v) {
		return false, nil
	}
	e, err := cloneAs(a.provider, a.spec.element, v)
	if err != nil {
		return false, err
	}
	added, err := a.adaptor.Insert(e)
	return added, providerError("set insert", err)
}

// Remove deletes v and reports whether it was present.
func (a *SetAccessor) Remove(v *Variable) (bool, error) {
	if err := a.checkElement(v); err != nil {
		return false, err
	}
	removed, err := a.adaptor.Remove(v)
	return removed, providerError("set remove", err)
}

// Clear removes every element.
func (a *SetAccessor) Clear() error {
	return providerError("set clear", a.adaptor.Clear())
}

// All iterates over the elements: sorted for ordered sets, in insertion
// order otherwise.
func (a *SetAccessor) All() iter.Seq[*Variable] { return a.adaptor.All() }

// Elements returns a sequence variable viewing the set's elements.
func (a *SetAccessor) Elements() *Variable {
	return newSequenceVariable(a.provider, a.spec.element, a.adaptor.All())
}

// SetEqualTo replaces the set's contents with copies of other's elements.
func (a *SetAccessor) SetEqualTo(other *SetAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

func (a *SetAccessor) kind() Kind { return KindSet }

func (a *SetAccessor) assign(other accessor) error {
	o := other.(*SetAccessor)
	if o == a {
		return nil
	}
	if err := a.adaptor.Clear(); err != nil {
		return providerError("set clear", err)
	}
	for e := range o.adaptor.All() {
		c, err := cloneAs(a.provider, a.spec.element, e)
		if err != nil {
			return err
		}
		if _, err := a.adaptor.Insert(c); err != nil {
			return providerError("set insert", err)
		}
	}
	return nil
}

func (a *SetAccessor) equal(other accessor) bool {
	o, ok := other.(*SetAccessor)
	if !ok || a.Len() != o.Len() {
		return false
	}
	for e := range a.adaptor.All() {
		if e.spec.CheckCompatibleWith(o.spec.element) != nil || !o.adaptor.Contains(e) {
			return false
		}
	}
	return true
}

// compare orders ordered sets lexicographically over their sorted elements.
func (a *SetAccessor) compare(other accessor) (int, error) {
	return compareSeq(a.adaptor.All(), other.(*SetAccessor).adaptor.All())
}

func (a *SetAccessor) hash(d *xxhash.Digest) {
	hashUnordered(d, a.Len(), func(yield func(uint64) bool) {
		for e := range a.adaptor.All() {
			if !yield(e.Hash()) {
				return
			}
		}
	})
}

// String renders the value in its text format.
func (a *SetAccessor) String() string {
	return joinSeq("{", "}", a.adaptor.All())
}

// ============================================================
// Map
// ============================================================

// MapAccessor reads and writes a map. Keys and values are checked against
// their specs and deep-copied on insert.
type MapAccessor struct {
	spec     *MapSpec
	adaptor  MapAdaptor
	provider DataProvider
}

// Spec returns the spec the map was created with.
func (a *MapAccessor) Spec() *MapSpec { return a.spec }

// Len returns the number of elements.
func (a *MapAccessor) Len() int { return a.adaptor.Len() }

// IsEmpty reports whether Len is zero.
func (a *MapAccessor) IsEmpty() bool { return a.adaptor.Len() == 0 }

func (a *MapAccessor) checkKey(k *Variable) error {
	return k.spec.CheckCompatibleWith(a.spec.key)
}

// Get returns the value stored under key.
func (a *MapAccessor) Get(key *Variable) (*Variable, bool, error) {
	if err := a.checkKey(key); err != nil {
		return nil, false, err
	}
	v, ok := a.adaptor.Get(key)
	return v, ok, nil
}

// Contains reports whether key is present.
func (a *MapAccessor) Contains(key *Variable) (bool, error) {
	_, ok, err := a.Get(key)
	return ok, err
}

// Insert stores copies of key and value and reports whether key was newly
// added rather than overwritten.
func (a *MapAccessor) Insert(key, value *Variable) (bool, error) {
	if err := a.checkKey(key); err != nil {
		return false, err
	}
	if err := value.spec.CheckCompatibleWith(a.spec.value); err != nil {
		return false, err
	}
	k, err := cloneAs(a.provider, a.spec.key, key)
	if err != nil {
		return false, err
	}
	v, err := cloneAs(a.provider, a.spec.value, value)
	if err != nil {
		return false, err
	}
	added, err := a.adaptor.Insert(k, v)
	return added, providerError("map insert", err)
}

// Remove deletes key and returns its value.
func (a *MapAccessor) Remove(key *Variable) (*Variable, bool, error) {
	if err := a.checkKey(key); err != nil {
		return nil, false, err
	}
	v, ok, err := a.adaptor.Remove(key)
	return v, ok, providerError("map remove", err)
}

// Clear removes every entry.
func (a *MapAccessor) Clear() error {
	return providerError("map clear", a.adaptor.Clear())
}

// All iterates over key/value pairs: sorted by key for ordered maps, in
// insertion order otherwise.
func (a *MapAccessor) All() iter.Seq2[*Variable, *Variable] { return a.adaptor.All() }

// Keys returns a sequence variable viewing the map's keys.
func (a *MapAccessor) Keys() *Variable {
	return newSequenceVariable(a.provider, a.spec.key, func(yield func(*Variable) bool) {
		for k := range a.adaptor.All() {
			if !yield(k) {
				return
			}
		}
	})
}

// Values returns a sequence variable viewing the map's values.
func (a *MapAccessor) Values() *Variable {
	return newSequenceVariable(a.provider, a.spec.value, func(yield func(*Variable) bool) {
		for _, v := range a.adaptor.All() {
			if !yield(v) {
				return
			}
		}
	})
}

// SetEqualTo replaces the map's contents with copies of other's entries.
func (a *MapAccessor) SetEqualTo(other *MapAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

func (a *MapAccessor) kind() Kind { return KindMap }

func (a *MapAccessor) assign(other accessor) error {
	o := other.(*MapAccessor)
	if o == a {
		return nil
	}
	if err := a.adaptor.Clear(); err != nil {
		return providerError("map clear", err)
	}
	for k, v := range o.adaptor.All() {
		kc, err := cloneAs(a.provider, a.spec.key, k)
		if err != nil {
			return err
		}
		vc, err := cloneAs(a.provider, a.spec.value, v)
		if err != nil {
			return err
		}
		if _, err := a.adaptor.Insert(kc, vc); err != nil {
			return providerError("map insert", err)
		}
	}
	return nil
}

func (a *MapAccessor) equal(other accessor) bool {
	o, ok := other.(*MapAccessor)
	if !ok || a.Len() != o.Len() {
		return false
	}
	for k, v := range a.adaptor.All() {
		if k.spec.CheckCompatibleWith(o.spec.key) != nil {
			return false
		}
		w, ok := o.adaptor.Get(k)
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// compare orders ordered maps lexicographically over (key, value) pairs.
func (a *MapAccessor) compare(other accessor) (int, error) {
	o := other.(*MapAccessor)
	next, stop := iter.Pull2(o.adaptor.All())
	defer stop()
	for k, v := range a.adaptor.All() {
		ok2, ov, more := next()
		if !more {
			return 1, nil
		}
		if c, err := k.Compare(ok2); err != nil || c != 0 {
			return c, err
		}
		if c, err := v.Compare(ov); err != nil || c != 0 {
			return c, err
		}
	}
	if _, _, more := next(); more {
		return -1, nil
	}
	return 0, nil
}

func (a *MapAccessor) hash(d *xxhash.Digest) {
	hashUnordered(d, a.Len(), func(yield func(uint64) bool) {
		for k, v := range a.adaptor.All() {
			if !yield(k.Hash()*31 + v.Hash()) {
				return
			}
		}
	})
}

// String renders the value in its text format.
func (a *MapAccessor) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for k, v := range a.adaptor.All() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k.String())
		b.WriteString(": ")
		b.WriteString(v.String())
	}
	b.WriteByte('}')
	return b.String()
}

// ============================================================
// Tuple
// ============================================================

// TupleAccessor reads and writes a fixed-length heterogeneous tuple.
type TupleAccessor struct {
	spec     *TupleSpec
	adaptor  TupleAdaptor
	provider DataProvider
}

func newTupleAccessor(spec *TupleSpec, adaptor TupleAdaptor, p DataProvider) (*TupleAccessor, error) {
	if adaptor.Len() != spec.Len() {
		return nil, &IndexError{Index: adaptor.Len(), Length: spec.Len()}
	}
	return &TupleAccessor{spec: spec, adaptor: adaptor, provider: p}, nil
}

// Spec returns the spec the tuple was created with.
func (a *TupleAccessor) Spec() *TupleSpec { return a.spec }

// Len returns the number of elements.
func (a *TupleAccessor) Len() int { return a.adaptor.Len() }

// Get returns element i.
func (a *TupleAccessor) Get(i int) (*Variable, error) {
	if i < 0 || i >= a.adaptor.Len() {
		return nil, &IndexError{Index: i, Length: a.adaptor.Len()}
	}
	return a.adaptor.Get(i), nil
}

// Set replaces element i with a copy of v after checking v against element
// spec i.
func (a *TupleAccessor) Set(i int, v *Variable) error {
	if i < 0 || i >= a.adaptor.Len() {
		return &IndexError{Index: i, Length: a.adaptor.Len()}
	}
	spec := a.spec.elements[i]
	if err := v.spec.CheckCompatibleWith(spec); err != nil {
		return err
	}
	c, err := cloneAs(a.provider, spec, v)
	if err != nil {
		return err
	}
	return providerError("tuple set", a.adaptor.Set(i, c))
}

// All iterates over the elements in order.
func (a *TupleAccessor) All() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for i := 0; i < a.adaptor.Len(); i++ {
			if !yield(a.adaptor.Get(i)) {
				return
			}
		}
	}
}

// Elements returns a sequence variable viewing the tuple's elements.
func (a *TupleAccessor) Elements() *Variable {
	return newSequenceVariable(a.provider, nil, a.All())
}

// SetEqualTo copies other's elements in place.
func (a *TupleAccessor) SetEqualTo(other *TupleAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

func (a *TupleAccessor) kind() Kind { return KindTuple }

func (a *TupleAccessor) assign(other accessor) error {
	o := other.(*TupleAccessor)
	if o == a {
		return nil
	}
	for i := 0; i < a.adaptor.Len(); i++ {
		if err := a.adaptor.Get(i).SetEqualTo(o.adaptor.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

func (a *TupleAccessor) equal(other accessor) bool {
	o, ok := other.(*TupleAccessor)
	if !ok || a.Len() != o.Len() {
		return false
	}
	for i := 0; i < a.adaptor.Len(); i++ {
		if !a.adaptor.Get(i).Equal(o.adaptor.Get(i)) {
			return false
		}
	}
	return true
}

func (a *TupleAccessor) compare(other accessor) (int, error) {
	return compareSeq(a.All(), other.(*TupleAccessor).All())
}

func (a *TupleAccessor) hash(d *xxhash.Digest) {
	hashUint64(d, uint64(a.Len()))
	for e := range a.All() {
		hashUint64(d, e.Hash())
	}
}

// String renders the value in its text format.
func (a *TupleAccessor) String() string { return joinSeq("(", ")", a.All()) }

// ============================================================
// Sequence
// ============================================================

// SequenceAccessor is a read-only, forward-only, single-pass view.
// A view over a collection holds no resources until the first Next. Once
// started, it must be read to the end or closed.
type SequenceAccessor struct {
	spec    *SequenceSpec
	adaptor SequenceAdaptor
}

// pullSequence adapts an iterator to a SequenceAdaptor. The iterator is
// started on the first Next and released once exhausted or closed.
type pullSequence struct {
	seq  iter.Seq[*Variable]
	next func() (*Variable, bool)
	stop func()
	done bool
}

func (s *pullSequence) Next() (*Variable, bool) {
	if s.done {
		return nil, false
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull(s.seq)
	}
	v, ok := s.next()
	if !ok {
		s.Close()
	}
	return v, ok
}

func (s *pullSequence) Close() {
	if s.done {
		return
	}
	s.done = true
	if s.stop != nil {
		s.stop()
	}
	s.seq = nil
}

func newSequenceVariable(p DataProvider, element *DataSpec, seq iter.Seq[*Variable]) *Variable {
	spec := NewSequenceSpec(element)
	return &Variable{
		spec:     spec,
		provider: p,
		value: &SequenceAccessor{
			spec:    spec.PrimitiveSpec().(*SequenceSpec),
			adaptor: &pullSequence{seq: seq},
		},
	}
}

// Spec returns the spec the sequence was created with.
func (a *SequenceAccessor) Spec() *SequenceSpec { return a.spec }

// Next returns the next element, or false once the sequence is exhausted.
func (a *SequenceAccessor) Next() (*Variable, bool) { return a.adaptor.Next() }

// Close releases a sequence that will not be read to the end. Closing an
// exhausted or unstarted sequence is a no-op.
func (a *SequenceAccessor) Close() {
	if c, ok := a.adaptor.(interface{ Close() }); ok {
		c.Close()
	}
}

// All drains the sequence. Breaking out of the loop leaves the remaining
// elements for later reads, so call Close if none will follow.
func (a *SequenceAccessor) All() iter.Seq[*Variable] {
	return func(yield func(*Variable) bool) {
		for {
			v, ok := a.adaptor.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// SetEqualTo always fails: sequences are read-only.
func (a *SequenceAccessor) SetEqualTo(*SequenceAccessor) error { return ErrReadOnly }

func (a *SequenceAccessor) kind() Kind { return KindSequence }
func (a *SequenceAccessor) assign(accessor) error { return ErrReadOnly }

// equal holds only for the same view; reading elements would consume them.
func (a *SequenceAccessor) equal(other accessor) bool { return a == other }

func (a *SequenceAccessor) compare(accessor) (int, error) { return 0, ErrNotOrdered }

func (a *SequenceAccessor) hash(d *xxhash.Digest) {}

// String renders the value in its text format.
func (a *SequenceAccessor) String() string { return "Sequence" }
