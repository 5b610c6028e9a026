package transient

import (
	"iter"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

// compareVariables orders elements of an ordered set or map. Elements are
// spec-checked against the element spec, which the builders only accept when
// it is ordered at every level, so Compare cannot fail.
func compareVariables(a, b interface{}) int {
	c, err := a.(*variant.Variable).Compare(b.(*variant.Variable))
	if err != nil {
		panic(err)
	}
	return c
}

// ============================================================
// Ordered storage (red-black trees)
// ============================================================

type orderedSet struct {
	tree *treeset.Set
}

func newOrderedSet() *orderedSet {
	return &orderedSet{tree: treeset.NewWith(compareVariables)}
}

func (s *orderedSet) Len() int { return s.tree.Size() }
func (s *orderedSet) Contains(v *variant.Variable) bool { return s.tree.Contains(v) }

func (s *orderedSet) Insert(v *variant.Variable) (bool, error) {
	if s.tree.Contains(v) {
		return false, nil
	}
	s.tree.Add(v)
	return true, nil
}

func (s *orderedSet) Remove(v *variant.Variable) (bool, error) {
	if !s.tree.Contains(v) {
		return false, nil
	}
	s.tree.Remove(v)
	return true, nil
}

func (s *orderedSet) Clear() error {
	s.tree.Clear()
	return nil
}

func (s *orderedSet) All() iter.Seq[*variant.Variable] {
	return func(yield func(*variant.Variable) bool) {
		it := s.tree.Iterator()
		for it.Next() {
			if !yield(it.Value().(*variant.Variable)) {
				return
			}
		}
	}
}

type orderedMap struct {
	tree *treemap.Map
}

func newOrderedMap() *orderedMap {
	return &orderedMap{tree: treemap.NewWith(compareVariables)}
}

func (m *orderedMap) Len() int { return m.tree.Size() }

func (m *orderedMap) Get(key *variant.Variable) (*variant.Variable, bool) {
	v, ok := m.tree.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*variant.Variable), true
}

func (m *orderedMap) Insert(key, value *variant.Variable) (bool, error) {
	_, present := m.tree.Get(key)
	m.tree.Put(key, value)
	return !present, nil
}

func (m *orderedMap) Remove(key *variant.Variable) (*variant.Variable, bool, error) {
	v, ok := m.Get(key)
	if ok {
		m.tree.Remove(key)
	}
	return v, ok, nil
}

func (m *orderedMap) Clear() error {
	m.tree.Clear()
	return nil
}

func (m *orderedMap) All() iter.Seq2[*variant.Variable, *variant.Variable] {
	return func(yield func(*variant.Variable, *variant.Variable) bool) {
		it := m.tree.Iterator()
		for it.Next() {
			if !yield(it.Key().(*variant.Variable), it.Value().(*variant.Variable)) {
				return
			}
		}
	}
}

// ============================================================
// Unordered storage (hash buckets)
// ============================================================

type entry struct {
	key   *variant.Variable
	value *variant.Variable
}

// hashTable buckets entries by Variable.Hash and resolves collisions with
// Variable.Equal. Buckets iterate in the order their first entry was added.
type hashTable struct {
	buckets *orderedmap.OrderedMap[uint64, []entry]
	n       int
}

func newHashTable() *hashTable {
	return &hashTable{buckets: orderedmap.New[uint64, []entry]()}
}

func (t *hashTable) find(key *variant.Variable) (uint64, []entry, int) {
	h := key.Hash()
	bucket, _ := t.buckets.Get(h)
	for i, e := range bucket {
		if e.key.Equal(key) {
			return h, bucket, i
		}
	}
	return h, bucket, -1
}

func (t *hashTable) get(key *variant.Variable) (*variant.Variable, bool) {
	_, bucket, i := t.find(key)
	if i < 0 {
		return nil, false
	}
	return bucket[i].value, true
}

// put stores key and value and reports whether key was new.
func (t *hashTable) put(key, value *variant.Variable) bool {
	h, bucket, i := t.find(key)
	if i >= 0 {
		bucket[i].value = value
		return false
	}
	t.buckets.Set(h, append(bucket, entry{key: key, value: value}))
	t.n++
	return true
}

func (t *hashTable) remove(key *variant.Variable) (*variant.Variable, bool) {
	h, bucket, i := t.find(key)
	if i < 0 {
		return nil, false
	}
	v := bucket[i].value
	if len(bucket) == 1 {
		t.buckets.Delete(h)
	} else {
		t.buckets.Set(h, append(bucket[:i:i], bucket[i+1:]...))
	}
	t.n--
	return v, true
}

func (t *hashTable) clear() {
	t.buckets = orderedmap.New[uint64, []entry]()
	t.n = 0
}

func (t *hashTable) all(yield func(*variant.Variable, *variant.Variable) bool) {
	for pair := t.buckets.Oldest(); pair != nil; pair = pair.Next() {
		for _, e := range pair.Value {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

type hashSet struct {
	table *hashTable
}

func newHashSet() *hashSet { return &hashSet{table: newHashTable()} }

func (s *hashSet) Len() int { return s.table.n }

func (s *hashSet) Contains(v *variant.Variable) bool {
	_, _, i := s.table.find(v)
	return i >= 0
}

func (s *hashSet) Insert(v *variant.Variable) (bool, error) {
	if s.Contains(v) {
		return false, nil
	}
	return s.table.put(v, nil), nil
}

func (s *hashSet) Remove(v *variant.Variable) (bool, error) {
	_, ok := s.table.remove(v)
	return ok, nil
}

func (s *hashSet) Clear() error {
	s.table.clear()
	return nil
}

func (s *hashSet) All() iter.Seq[*variant.Variable] {
	return func(yield func(*variant.Variable) bool) {
		s.table.all(func(k, _ *variant.Variable) bool { return yield(k) })
	}
}

type hashMap struct {
	table *hashTable
}

func newHashMap() *hashMap { return &hashMap{table: newHashTable()} }

func (m *hashMap) Len() int { return m.table.n }

func (m *hashMap) Get(key *variant.Variable) (*variant.Variable, bool) {
	return m.table.get(key)
}

func (m *hashMap) Insert(key, value *variant.Variable) (bool, error) {
	return m.table.put(key, value), nil
}

func (m *hashMap) Remove(key *variant.Variable) (*variant.Variable, bool, error) {
	v, ok := m.table.remove(key)
	return v, ok, nil
}

func (m *hashMap) Clear() error {
	m.table.clear()
	return nil
}

func (m *hashMap) All() iter.Seq2[*variant.Variable, *variant.Variable] {
	return m.table.all
}
