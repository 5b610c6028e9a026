package transient

import (
	"iter"
	"slices"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

// list is a slice-backed list. Policy checks happen in the accessor; the
// policy is kept here only to answer the capability predicates.
type list struct {
	policy variant.ListPolicy
	size   int
	items  []*variant.Variable
}

func (l *list) IsFixedSize() bool { return l.policy == variant.PolicyFixedSize }
func (l *list) IsFixedCapacity() bool { return l.policy == variant.PolicyFixedCapacity }
func (l *list) Capacity() int { return l.size }
func (l *list) Len() int { return len(l.items) }
func (l *list) Get(i int) *variant.Variable { return l.items[i] }

func (l *list) Set(i int, v *variant.Variable) error {
	l.items[i] = v
	return nil
}

func (l *list) Push(v *variant.Variable) error {
	l.items = append(l.items, v)
	return nil
}

func (l *list) Pop() (*variant.Variable, error) {
	last := len(l.items) - 1
	v := l.items[last]
	l.items[last] = nil
	l.items = l.items[:last]
	return v, nil
}

func (l *list) Insert(i int, v *variant.Variable) error {
	l.items = slices.Insert(l.items, i, v)
	return nil
}

func (l *list) Remove(i int) (*variant.Variable, error) {
	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	return v, nil
}

func (l *list) Clear() error {
	clear(l.items)
	l.items = l.items[:0]
	return nil
}

func (l *list) All() iter.Seq[*variant.Variable] {
	return slices.Values(l.items)
}

type tuple struct {
	items []*variant.Variable
}

func (t *tuple) Len() int { return len(t.items) }
func (t *tuple) Get(i int) *variant.Variable { return t.items[i] }

func (t *tuple) Set(i int, v *variant.Variable) error {
	t.items[i] = v
	return nil
}

type emptySequence struct{}

func (emptySequence) Next() (*variant.Variable, bool) { return nil, false }
