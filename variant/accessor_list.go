package variant

import (
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ListAccessor reads and writes a list. Every mutation is checked against
// the storage policy first, then against the current length, then against
// the element spec. Values passed in are deep-copied into storage built by
// the list's provider; Get returns the stored element, which may be mutated
// in place.
type ListAccessor struct {
	spec     *ListSpec
	adaptor  ListAdaptor
	provider DataProvider
}

func newListAccessor(spec *ListSpec, adaptor ListAdaptor, p DataProvider) *ListAccessor {
	return &ListAccessor{spec: spec, adaptor: adaptor, provider: p}
}

// Spec returns the spec the list was created with.
func (a *ListAccessor) Spec() *ListSpec { return a.spec }

// Len returns the number of elements.
func (a *ListAccessor) Len() int { return a.adaptor.Len() }

// IsEmpty reports whether Len is zero.
func (a *ListAccessor) IsEmpty() bool { return a.adaptor.Len() == 0 }

// IsFixedSize reports whether the list length is immutable.
func (a *ListAccessor) IsFixedSize() bool { return a.adaptor.IsFixedSize() }

// IsFixedCapacity reports whether the list is bounded by Capacity.
func (a *ListAccessor) IsFixedCapacity() bool { return a.adaptor.IsFixedCapacity() }

// Capacity returns the size bound of fixed-size and fixed-capacity lists,
// or -1 for growable lists.
func (a *ListAccessor) Capacity() int {
	if a.adaptor.IsFixedSize() || a.adaptor.IsFixedCapacity() {
		return a.adaptor.Capacity()
	}
	return -1
}

func (a *ListAccessor) checkGrow(op string) error {
	switch {
	case a.adaptor.IsFixedSize():
		return &FixedSizeError{Op: op, Size: a.adaptor.Capacity()}
	case a.adaptor.IsFixedCapacity() && a.adaptor.Len() >= a.adaptor.Capacity():
		return &FixedCapacityError{Capacity: a.adaptor.Capacity()}
	}
	return nil
}

func (a *ListAccessor) checkShrink(op string) error {
	if a.adaptor.IsFixedSize() {
		return &FixedSizeError{Op: op, Size: a.adaptor.Capacity()}
	}
	return nil
}

func (a *ListAccessor) checkIndex(i, length int) error {
	if i < 0 || i >= length {
		return &IndexError{Index: i, Length: length}
	}
	return nil
}

// element checks v against the element spec and returns a deep copy.
func (a *ListAccessor) element(v *Variable) (*Variable, error) {
	if err := v.spec.CheckCompatibleWith(a.spec.element); err != nil {
		return nil, err
	}
	return cloneAs(a.provider, a.spec.element, v)
}

// Get returns the element at i.
func (a *ListAccessor) Get(i int) (*Variable, error) {
	if err := a.checkIndex(i, a.adaptor.Len()); err != nil {
		return nil, err
	}
	return a.adaptor.Get(i), nil
}

// Set replaces the element at i with a copy of v.
func (a *ListAccessor) Set(i int, v *Variable) error {
	if err := a.checkIndex(i, a.adaptor.Len()); err != nil {
		return err
	}
	e, err := a.element(v)
	if err != nil {
		return err
	}
	return providerError("list set", a.adaptor.Set(i, e))
}

// Push appends a copy of v.
func (a *ListAccessor) Push(v *Variable) error {
	if err := a.checkGrow("push"); err != nil {
		return err
	}
	e, err := a.element(v)
	if err != nil {
		return err
	}
	return providerError("list push", a.adaptor.Push(e))
}

// Pop removes and returns the last element.
func (a *ListAccessor) Pop() (*Variable, error) {
	if err := a.checkShrink("pop"); err != nil {
		return nil, err
	}
	if a.adaptor.Len() == 0 {
		return nil, ErrCannotPopOnEmpty
	}
	v, err := a.adaptor.Pop()
	return v, providerError("list pop", err)
}

// Insert places a copy of v at i, shifting later elements. i may equal Len.
// A list that cannot grow reports its policy error before any index error.
func (a *ListAccessor) Insert(i int, v *Variable) error {
	if err := a.checkGrow("insert"); err != nil {
		return err
	}
	if err := a.checkIndex(i, a.adaptor.Len()+1); err != nil {
		return &IndexError{Index: i, Length: a.adaptor.Len()}
	}
	e, err := a.element(v)
	if err != nil {
		return err
	}
	return providerError("list insert", a.adaptor.Insert(i, e))
}

// Remove deletes and returns the element at i.
func (a *ListAccessor) Remove(i int) (*Variable, error) {
	if err := a.checkShrink("remove"); err != nil {
		return nil, err
	}
	if err := a.checkIndex(i, a.adaptor.Len()); err != nil {
		return nil, err
	}
	v, err := a.adaptor.Remove(i)
	return v, providerError("list remove", err)
}

// Clear removes every element.
func (a *ListAccessor) Clear() error {
	if err := a.checkShrink("clear"); err != nil {
		return err
	}
	return providerError("list clear", a.adaptor.Clear())
}

// All iterates over the stored elements.
func (a *ListAccessor) All() iter.Seq[*Variable] { return a.adaptor.All() }

// Elements returns a sequence variable viewing the list's elements.
func (a *ListAccessor) Elements() *Variable {
	return newSequenceVariable(a.provider, a.spec.element, a.adaptor.All())
}

// SetEqualTo replaces the list's contents with copies of other's elements.
func (a *ListAccessor) SetEqualTo(other *ListAccessor) error {
	if err := CheckCompatible(other.spec, a.spec); err != nil {
		return err
	}
	return a.assign(other)
}

func (a *ListAccessor) kind() Kind { return KindList }

func (a *ListAccessor) assign(other accessor) error {
	o := other.(*ListAccessor)
	if o == a {
		return nil
	}
	if a.adaptor.IsFixedSize() {
		if o.Len() != a.Len() {
			return &FixedSizeError{Op: "assign", Size: a.adaptor.Capacity()}
		}
		i := 0
		for e := range o.adaptor.All() {
			if err := a.adaptor.Get(i).SetEqualTo(e); err != nil {
				return err
			}
			i++
		}
		return nil
	}
	if a.adaptor.IsFixedCapacity() && o.Len() > a.adaptor.Capacity() {
		return &FixedCapacityError{Capacity: a.adaptor.Capacity()}
	}
	if err := a.adaptor.Clear(); err != nil {
		return providerError("list clear", err)
	}
	for e := range o.adaptor.All() {
		c, err := cloneAs(a.provider, a.spec.element, e)
		if err != nil {
			return err
		}
		if err := a.adaptor.Push(c); err != nil {
			return providerError("list push", err)
		}
	}
	return nil
}

func (a *ListAccessor) equal(other accessor) bool {
	o, ok := other.(*ListAccessor)
	if !ok || a.Len() != o.Len() {
		return false
	}
	next, stop := iter.Pull(o.adaptor.All())
	defer stop()
	for e := range a.adaptor.All() {
		f, _ := next()
		if !e.Equal(f) {
			return false
		}
	}
	return true
}

// compare orders lists lexicographically.
func (a *ListAccessor) compare(other accessor) (int, error) {
	return compareSeq(a.adaptor.All(), other.(*ListAccessor).adaptor.All())
}

func compareSeq(x, y iter.Seq[*Variable]) (int, error) {
	next, stop := iter.Pull(y)
	defer stop()
	for e := range x {
		f, ok := next()
		if !ok {
			return 1, nil
		}
		c, err := e.Compare(f)
		if err != nil || c != 0 {
			return c, err
		}
	}
	if _, ok := next(); ok {
		return -1, nil
	}
	return 0, nil
}

func (a *ListAccessor) hash(d *xxhash.Digest) {
	hashUint64(d, uint64(a.Len()))
	for e := range a.adaptor.All() {
		hashUint64(d, e.Hash())
	}
}

// String renders the value in its text format.
func (a *ListAccessor) String() string {
	return joinSeq("[", "]", a.adaptor.All())
}

func joinSeq(open, end string, seq iter.Seq[*Variable]) string {
	var b strings.Builder
	b.WriteString(open)
	first := true
	for e := range seq {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(e.String())
	}
	b.WriteString(end)
	return b.String()
}
