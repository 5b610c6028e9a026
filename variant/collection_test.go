package variant_test

import (
	"errors"
	"runtime"
	"slices"
	"testing"

	"github.com/LennyHof/Epiphany-sub000/variant"
)

var i64 = variant.NewIntegerSpec(variant.Signed, variant.B64)

func intVar(t *testing.T, n int64) *variant.Variable {
	t.Helper()
	v := newVar(t, i64)
	if err := v.AsInteger().SetInt64(n); err != nil {
		t.Fatal(err)
	}
	return v
}

func ints(t *testing.T, seq func(func(*variant.Variable) bool)) []int64 {
	t.Helper()
	var out []int64
	for v := range seq {
		n, err := v.AsInteger().Int64()
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, n)
	}
	return out
}

func listOf(t *testing.T, spec *variant.DataSpec, values ...int64) *variant.Variable {
	t.Helper()
	l := newVar(t, spec)
	for _, n := range values {
		if err := l.AsList().Push(intVar(t, n)); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func TestFixedSizeList(t *testing.T) {
	spec := variant.NewListSpecBuilder().WithElement(i64).WithStorage(variant.FixedSize(2)).Build()
	l := newVar(t, spec).AsList()
	if l.Len() != 2 || !l.IsFixedSize() || l.Capacity() != 2 {
		t.Fatalf("Len = %d, IsFixedSize = %v, Capacity = %d", l.Len(), l.IsFixedSize(), l.Capacity())
	}

	if err := l.Push(intVar(t, 1)); !errors.Is(err, variant.ErrFixedSize) {
		t.Errorf("Push = %v, want ErrFixedSize", err)
	}
	if _, err := l.Pop(); !errors.Is(err, variant.ErrFixedSize) {
		t.Errorf("Pop = %v, want ErrFixedSize", err)
	}
	if err := l.Insert(0, intVar(t, 1)); !errors.Is(err, variant.ErrFixedSize) {
		t.Errorf("Insert = %v, want ErrFixedSize", err)
	}
	if _, err := l.Remove(0); !errors.Is(err, variant.ErrFixedSize) {
		t.Errorf("Remove = %v, want ErrFixedSize", err)
	}
	if err := l.Clear(); !errors.Is(err, variant.ErrFixedSize) {
		t.Errorf("Clear = %v, want ErrFixedSize", err)
	}

	if err := l.Set(1, intVar(t, 7)); err != nil {
		t.Fatal(err)
	}
	if err := l.Set(2, intVar(t, 7)); !errors.Is(err, variant.ErrIndexOutOfBounds) {
		t.Errorf("Set(2) = %v, want ErrIndexOutOfBounds", err)
	}
	if got := ints(t, l.All()); !slices.Equal(got, []int64{0, 7}) {
		t.Errorf("elements = %v", got)
	}

	var fe *variant.FixedSizeError
	err := l.Push(intVar(t, 1))
	if !errors.As(err, &fe) || fe.Op != "push" || fe.Size != 2 {
		t.Errorf("FixedSizeError = %+v", fe)
	}
}

func TestFixedSizeAssign(t *testing.T) {
	spec := variant.NewListSpecBuilder().WithElement(i64).WithStorage(variant.FixedSize(2)).Build()
	dst := newVar(t, spec)
	src := newVar(t, spec)
	_ = src.AsList().Set(0, intVar(t, 3))
	_ = src.AsList().Set(1, intVar(t, 4))
	if err := dst.SetEqualTo(src); err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(src) {
		t.Errorf("dst = %s, src = %s", dst, src)
	}

	larger := variant.NewListSpecBuilder().WithElement(i64).WithStorage(variant.FixedSize(3)).Build()
	if err := newVar(t, larger).SetEqualTo(src); !errors.Is(err, variant.ErrIncompatibleSpec) {
		t.Errorf("SetEqualTo across sizes = %v", err)
	}
}

func TestFixedCapacityList(t *testing.T) {
	spec := variant.NewListSpecBuilder().WithElement(i64).WithStorage(variant.FixedCapacity(2)).Build()
	l := newVar(t, spec).AsList()
	if !l.IsEmpty() || l.Capacity() != 2 {
		t.Fatalf("IsEmpty = %v, Capacity = %d", l.IsEmpty(), l.Capacity())
	}
	if err := l.Push(intVar(t, 1)); err != nil {
		t.Fatal(err)
	}
	if err := l.Insert(0, intVar(t, 0)); err != nil {
		t.Fatal(err)
	}
	if err := l.Push(intVar(t, 2)); !errors.Is(err, variant.ErrFixedCapacity) {
		t.Errorf("third Push = %v, want ErrFixedCapacity", err)
	}
	if got := ints(t, l.All()); !slices.Equal(got, []int64{0, 1}) {
		t.Errorf("elements = %v", got)
	}
	var fce *variant.FixedCapacityError
	if err := l.Insert(7, intVar(t, 2)); !errors.As(err, &fce) {
		t.Errorf("Insert(7) on a full list = %v, want *FixedCapacityError", err)
	}
	if _, err := l.Pop(); err != nil {
		t.Fatal(err)
	}
	var ie *variant.IndexError
	if err := l.Insert(7, intVar(t, 2)); !errors.As(err, &ie) || ie.Length != 1 {
		t.Errorf("Insert(7) with room = %v, want *IndexError with Length 1", err)
	}
	if err := l.Push(intVar(t, 1)); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if _, err := l.Pop(); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.Pop(); !errors.Is(err, variant.ErrCannotPopOnEmpty) {
		t.Errorf("Pop on empty = %v", err)
	}
}

func TestVariableSizeList(t *testing.T) {
	l := listOf(t, variant.NewListSpec(i64), 1, 2, 3)
	a := l.AsList()
	if a.Capacity() != -1 {
		t.Errorf("Capacity = %d, want -1", a.Capacity())
	}
	if err := a.Insert(3, intVar(t, 4)); err != nil {
		t.Fatalf("Insert at Len: %v", err)
	}
	if err := a.Insert(5, intVar(t, 9)); !errors.Is(err, variant.ErrIndexOutOfBounds) {
		t.Errorf("Insert past Len = %v", err)
	}
	removed, err := a.Remove(0)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := removed.AsInteger().Int64(); n != 1 {
		t.Errorf("removed %d", n)
	}
	if got := l.String(); got != "[2, 3, 4]" {
		t.Errorf("String = %q", got)
	}
	if _, err := a.Get(-1); !errors.Is(err, variant.ErrIndexOutOfBounds) {
		t.Errorf("Get(-1) = %v", err)
	}

	u8 := newVar(t, variant.NewIntegerSpec(variant.Unsigned, variant.B8))
	err = a.Push(u8)
	var se *variant.SpecError
	if !errors.As(err, &se) {
		t.Errorf("Push of wrong element spec = %v", err)
	}
	if a.Len() != 3 {
		t.Errorf("Len after failed push = %d", a.Len())
	}
	if err := a.Clear(); err != nil || !a.IsEmpty() {
		t.Errorf("Clear = %v, Len = %d", err, a.Len())
	}
}

func TestListDeepCopy(t *testing.T) {
	x := intVar(t, 5)
	l := listOf(t, variant.NewListSpec(i64))
	if err := l.AsList().Push(x); err != nil {
		t.Fatal(err)
	}
	_ = x.AsInteger().SetInt64(6)
	e, _ := l.AsList().Get(0)
	if n, _ := e.AsInteger().Int64(); n != 5 {
		t.Errorf("pushed element followed the source: %d", n)
	}

	src := listOf(t, variant.NewListSpec(i64), 1, 2)
	dst := listOf(t, variant.NewListSpec(i64), 9, 9, 9)
	if err := dst.SetEqualTo(src); err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(src) || dst.Hash() != src.Hash() {
		t.Fatalf("dst = %s, src = %s", dst, src)
	}
	first, _ := src.AsList().Get(0)
	_ = first.AsInteger().SetInt64(100)
	if got := ints(t, dst.AsList().All()); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("dst followed src: %v", got)
	}
	if dst.Equal(src) {
		t.Error("lists should differ after mutating src")
	}
}

func TestNestedListDeepCopy(t *testing.T) {
	inner := variant.NewListSpec(i64)
	outer := newVar(t, variant.NewListSpec(inner))
	row := listOf(t, inner, 1, 2)
	if err := outer.AsList().Push(row); err != nil {
		t.Fatal(err)
	}
	_ = row.AsList().Push(intVar(t, 3))

	stored, _ := outer.AsList().Get(0)
	if stored.AsList().Len() != 2 {
		t.Errorf("nested copy followed the source: %s", stored)
	}
	clone, err := outer.TryClone()
	if err != nil {
		t.Fatal(err)
	}
	_ = stored.AsList().Push(intVar(t, 4))
	cloned, _ := clone.AsList().Get(0)
	if got := cloned.String(); got != "[1, 2]" {
		t.Errorf("clone followed the original: %s", got)
	}
	if outer.String() != "[[1, 2, 4]]" {
		t.Errorf("outer = %s", outer)
	}
}

func TestListCompare(t *testing.T) {
	spec := variant.NewListSpec(i64)
	tests := []struct {
		a, b []int64
		want int
	}{
		{[]int64{1, 2}, []int64{1, 2}, 0},
		{[]int64{1, 2}, []int64{1, 3}, -1},
		{[]int64{1, 2, 0}, []int64{1, 2}, 1},
		{nil, []int64{0}, -1},
	}
	for _, tt := range tests {
		a := listOf(t, spec, tt.a...)
		b := listOf(t, spec, tt.b...)
		got, err := a.Compare(b)
		if err != nil || got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, %v; want %d", a, b, got, err, tt.want)
		}
	}
}

func TestOrderedSet(t *testing.T) {
	s := newVar(t, variant.NewSetSpec(i64, variant.Ordered))
	a := s.AsSet()
	for _, n := range []int64{3, 1, 2} {
		added, err := a.Insert(intVar(t, n))
		if err != nil || !added {
			t.Fatalf("Insert(%d) = %v, %v", n, added, err)
		}
	}
	if added, _ := a.Insert(intVar(t, 2)); added {
		t.Error("duplicate insert reported added")
	}
	if got := ints(t, a.All()); !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("elements = %v", got)
	}
	if got := s.String(); got != "{1, 2, 3}" {
		t.Errorf("String = %q", got)
	}
	if ok, _ := a.Contains(intVar(t, 3)); !ok {
		t.Error("Contains(3) = false")
	}
	if removed, _ := a.Remove(intVar(t, 1)); !removed {
		t.Error("Remove(1) = false")
	}
	if removed, _ := a.Remove(intVar(t, 1)); removed {
		t.Error("second Remove(1) = true")
	}

	other := newVar(t, variant.NewSetSpec(i64, variant.Ordered))
	_, _ = other.AsSet().Insert(intVar(t, 2))
	_, _ = other.AsSet().Insert(intVar(t, 4))
	if c, err := s.Compare(other); err != nil || c != -1 {
		t.Errorf("Compare({2,3}, {2,4}) = %d, %v", c, err)
	}

	if _, err := a.Insert(newVar(t, variant.NewBooleanSpec())); !errors.Is(err, variant.ErrIncompatibleSpec) {
		t.Errorf("Insert(boolean) = %v", err)
	}
}

func TestOrderedSetOfTuples(t *testing.T) {
	pair := variant.NewTupleSpec(i64, i64)
	s := newVar(t, variant.NewSetSpec(pair, variant.Ordered))
	for _, p := range [][2]int64{{1, 5}, {1, 2}, {0, 9}} {
		tup := newVar(t, pair)
		for i, n := range p {
			if err := tup.AsTuple().Set(i, intVar(t, n)); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := s.AsSet().Insert(tup); err != nil {
			t.Fatalf("Insert%v: %v", p, err)
		}
	}
	if got := s.String(); got != "{(0, 9), (1, 2), (1, 5)}" {
		t.Errorf("String = %q", got)
	}
}

func TestOrderedCollectionsRejectUnorderedMembers(t *testing.T) {
	unorderedSet := variant.NewSetSpec(i64, variant.Unordered)
	tests := []struct {
		name  string
		build func() (*variant.DataSpec, error)
	}{
		{"set_of_tuple_with_set", variant.NewSetSpecBuilder().
			WithElement(variant.NewTupleSpec(i64, unorderedSet)).
			WithOrdering(variant.Ordered).TryBuild},
		{"set_of_list_of_tuples", variant.NewSetSpecBuilder().
			WithElement(variant.NewListSpec(variant.NewTupleSpec(unorderedSet))).
			WithOrdering(variant.Ordered).TryBuild},
		{"map_keyed_by_tuple_with_sequence", variant.NewMapSpecBuilder().
			WithKey(variant.NewTupleSpec(variant.NewSequenceSpec(i64))).
			WithValue(i64).
			WithOrdering(variant.Ordered).TryBuild},
		{"set_of_unbound_tuples", variant.NewSetSpecBuilder().
			WithElement(variant.NewTupleSpecBuilder().Build()).
			WithOrdering(variant.Ordered).TryBuild},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if spec, err := tt.build(); err == nil {
				t.Errorf("TryBuild = %s, want error", spec)
			}
		})
	}

	// The unordered form of the same set is fine.
	spec := variant.NewSetSpec(variant.NewTupleSpec(i64, unorderedSet), variant.Unordered)
	s := newVar(t, spec)
	if _, err := s.AsSet().Insert(newVar(t, variant.NewTupleSpec(i64, unorderedSet))); err != nil {
		t.Fatal(err)
	}
}

func TestUnorderedSetEquality(t *testing.T) {
	spec := variant.NewSetSpec(i64, variant.Unordered)
	s1 := newVar(t, spec)
	s2 := newVar(t, spec)
	for _, n := range []int64{1, 2, 3} {
		_, _ = s1.AsSet().Insert(intVar(t, n))
	}
	for _, n := range []int64{3, 2, 1} {
		_, _ = s2.AsSet().Insert(intVar(t, n))
	}
	if got := ints(t, s1.AsSet().All()); !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("insertion order = %v", got)
	}
	if !s1.Equal(s2) || s1.Hash() != s2.Hash() {
		t.Error("sets with the same elements differ")
	}
	if removed, _ := s2.AsSet().Remove(intVar(t, 2)); !removed {
		t.Error("Remove(2) = false")
	}
	if s1.Equal(s2) {
		t.Error("sets should differ after Remove")
	}

	dst := newVar(t, spec)
	if err := dst.SetEqualTo(s1); err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(s1) {
		t.Errorf("dst = %s", dst)
	}
	if err := s1.AsSet().Clear(); err != nil || !s1.AsSet().IsEmpty() {
		t.Errorf("Clear = %v", err)
	}
	if dst.AsSet().Len() != 3 {
		t.Errorf("dst followed Clear: %d", dst.AsSet().Len())
	}
}

func TestOrderedMap(t *testing.T) {
	m := newVar(t, variant.NewMapSpec(i64, variant.NewBooleanSpec(), variant.Ordered))
	a := m.AsMap()
	tru := newVar(t, variant.NewBooleanSpec())
	_ = tru.AsBoolean().Set(true)
	fls := newVar(t, variant.NewBooleanSpec())

	for _, n := range []int64{20, 10} {
		added, err := a.Insert(intVar(t, n), fls)
		if err != nil || !added {
			t.Fatalf("Insert(%d) = %v, %v", n, added, err)
		}
	}
	if added, _ := a.Insert(intVar(t, 10), tru); added {
		t.Error("overwrite reported added")
	}
	if got := m.String(); got != "{10: true, 20: false}" {
		t.Errorf("String = %q", got)
	}
	v, ok, err := a.Get(intVar(t, 10))
	if err != nil || !ok || !v.AsBoolean().Value() {
		t.Errorf("Get(10) = %v, %v, %v", v, ok, err)
	}
	if _, ok, _ := a.Get(intVar(t, 30)); ok {
		t.Error("Get(30) found a value")
	}
	if got := ints(t, a.Keys().AsSequence().All()); !slices.Equal(got, []int64{10, 20}) {
		t.Errorf("Keys = %v", got)
	}
	var values []bool
	for v := range a.Values().AsSequence().All() {
		values = append(values, v.AsBoolean().Value())
	}
	if !slices.Equal(values, []bool{true, false}) {
		t.Errorf("Values = %v", values)
	}

	old, ok, err := a.Remove(intVar(t, 20))
	if err != nil || !ok || old.AsBoolean().Value() {
		t.Errorf("Remove(20) = %v, %v, %v", old, ok, err)
	}
	if a.Len() != 1 {
		t.Errorf("Len = %d", a.Len())
	}
	if _, err := a.Insert(tru, tru); !errors.Is(err, variant.ErrIncompatibleSpec) {
		t.Errorf("Insert with boolean key = %v", err)
	}
}

func TestUnorderedMap(t *testing.T) {
	spec := variant.NewMapSpec(variant.NewStringSpec(variant.Utf8, variant.VariableLength()), i64, variant.Unordered)
	key := func(s string) *variant.Variable {
		k := newVar(t, variant.NewStringSpec(variant.Utf8, variant.VariableLength()))
		_ = k.AsString().Set(s)
		return k
	}
	m1 := newVar(t, spec)
	m2 := newVar(t, spec)
	_, _ = m1.AsMap().Insert(key("a"), intVar(t, 1))
	_, _ = m1.AsMap().Insert(key("b"), intVar(t, 2))
	_, _ = m2.AsMap().Insert(key("b"), intVar(t, 2))
	_, _ = m2.AsMap().Insert(key("a"), intVar(t, 1))
	if !m1.Equal(m2) || m1.Hash() != m2.Hash() {
		t.Error("maps with the same entries differ")
	}
	_, _ = m2.AsMap().Insert(key("a"), intVar(t, 5))
	if m1.Equal(m2) {
		t.Error("maps should differ after overwrite")
	}
	if m2.AsMap().Len() != 2 {
		t.Errorf("Len = %d", m2.AsMap().Len())
	}
	if _, err := m1.Compare(m2); !errors.Is(err, variant.ErrNotOrdered) {
		t.Errorf("Compare of unordered maps = %v", err)
	}
	if ok, _ := m1.AsMap().Contains(key("b")); !ok {
		t.Error("Contains(b) = false")
	}
}

func TestTuple(t *testing.T) {
	spec := variant.NewTupleSpec(variant.NewBooleanSpec(), i64)
	tup := newVar(t, spec)
	a := tup.AsTuple()
	if a.Len() != 2 {
		t.Fatalf("Len = %d", a.Len())
	}
	b := newVar(t, variant.NewBooleanSpec())
	_ = b.AsBoolean().Set(true)
	if err := a.Set(0, b); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(1, intVar(t, 5)); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(1, b); !errors.Is(err, variant.ErrIncompatibleSpec) {
		t.Errorf("Set(1, boolean) = %v", err)
	}
	if _, err := a.Get(2); !errors.Is(err, variant.ErrIndexOutOfBounds) {
		t.Errorf("Get(2) = %v", err)
	}
	if got := tup.String(); got != "(true, 5)" {
		t.Errorf("String = %q", got)
	}

	other := newVar(t, spec)
	if c, err := other.Compare(tup); err != nil || c != -1 {
		t.Errorf("Compare((false, 0), (true, 5)) = %d, %v", c, err)
	}
	if err := other.SetEqualTo(tup); err != nil || !other.Equal(tup) {
		t.Errorf("SetEqualTo = %v", err)
	}
	_ = b.AsBoolean().Set(false)
	if first, _ := a.Get(0); !first.AsBoolean().Value() {
		t.Error("tuple element followed its source")
	}
}

func TestSequence(t *testing.T) {
	l := listOf(t, variant.NewListSpec(i64), 1, 2, 3)
	seq := l.AsList().Elements()
	if seq.Kind() != variant.KindSequence {
		t.Fatalf("Kind = %s", seq.Kind())
	}
	s := seq.AsSequence()
	first, ok := s.Next()
	if !ok {
		t.Fatal("empty sequence")
	}
	if n, _ := first.AsInteger().Int64(); n != 1 {
		t.Errorf("first = %d", n)
	}
	if got := ints(t, s.All()); !slices.Equal(got, []int64{2, 3}) {
		t.Errorf("rest = %v", got)
	}
	if _, ok := s.Next(); ok {
		t.Error("sequence yielded after exhaustion")
	}

	other := l.AsList().Elements()
	defer other.AsSequence().Close()
	if err := other.SetEqualTo(seq); !errors.Is(err, variant.ErrReadOnly) {
		t.Errorf("SetEqualTo = %v, want ErrReadOnly", err)
	}
	if _, err := other.Compare(seq); !errors.Is(err, variant.ErrNotOrdered) {
		t.Errorf("Compare = %v, want ErrNotOrdered", err)
	}

	empty := newVar(t, variant.NewSequenceSpec(i64))
	if _, ok := empty.AsSequence().Next(); ok {
		t.Error("provider-built sequence is not empty")
	}
}

func TestSequenceViewsReleaseIterators(t *testing.T) {
	l := listOf(t, variant.NewListSpec(i64), 1, 2, 3)
	before := runtime.NumGoroutine()

	var views []*variant.Variable
	for range 500 {
		views = append(views, l.AsList().Elements())
	}
	if n := runtime.NumGoroutine() - before; n > 10 {
		t.Errorf("%d goroutines held by unread views", n)
	}

	for i, v := range views {
		s := v.AsSequence()
		if _, ok := s.Next(); !ok {
			t.Fatal("empty view")
		}
		if i%2 == 0 {
			s.Close()
		} else {
			for range s.All() {
			}
		}
		if _, ok := s.Next(); ok {
			t.Fatal("view yielded after Close or exhaustion")
		}
	}
	if n := runtime.NumGoroutine() - before; n > 10 {
		t.Errorf("%d goroutines held by closed or drained views", n)
	}

	unread := l.AsList().Elements().AsSequence()
	unread.Close()
	unread.Close()
	if _, ok := unread.Next(); ok {
		t.Error("closed view yielded")
	}
}
