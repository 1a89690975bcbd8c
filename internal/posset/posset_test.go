package posset

import "testing"

func TestSetBasic(t *testing.T) {
	s := New(100)

	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	s.Add(5)
	if !s.Contains(5) {
		t.Error("set should contain 5 after Add")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Add(5) // duplicate, no-op
	if s.Len() != 1 {
		t.Errorf("duplicate add should not grow set, got len %d", s.Len())
	}

	s.AddAll(10, 3, 7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSetRemove(t *testing.T) {
	s := New(10)
	s.AddAll(1, 2, 3)
	s.Remove(2)
	if s.Contains(2) {
		t.Error("2 should have been removed")
	}
	if !s.Contains(1) || !s.Contains(3) {
		t.Error("remaining members should be untouched")
	}
	if s.Len() != 2 {
		t.Errorf("expected len 2, got %d", s.Len())
	}
	s.Remove(2) // no-op
	if s.Len() != 2 {
		t.Error("removing an absent member should be a no-op")
	}
}

func TestSetSorted(t *testing.T) {
	s := New(20)
	s.AddAll(9, 1, 5, 3)
	got := s.Sorted()
	want := []uint32{1, 3, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestSetSortedIsCanonicalKey(t *testing.T) {
	a := New(20)
	a.AddAll(3, 1, 2)
	b := New(20)
	b.AddAll(1, 2, 3)

	ka, kb := a.Sorted(), b.Sorted()
	if len(ka) != len(kb) {
		t.Fatalf("canonical keys should agree on length")
	}
	for i := range ka {
		if ka[i] != kb[i] {
			t.Errorf("canonical keys diverge at %d: %d vs %d", i, ka[i], kb[i])
		}
	}
}

func TestSetUnion(t *testing.T) {
	a := New(10)
	a.AddAll(1, 2)
	b := New(10)
	b.AddAll(2, 3)
	a.Union(b)
	if a.Len() != 3 {
		t.Errorf("expected union len 3, got %d", a.Len())
	}
	for _, v := range []uint32{1, 2, 3} {
		if !a.Contains(v) {
			t.Errorf("union missing %d", v)
		}
	}
}

func TestSetClone(t *testing.T) {
	a := New(10)
	a.AddAll(1, 2)
	c := a.Clone()
	c.Add(3)
	if a.Contains(3) {
		t.Error("mutating clone should not affect original")
	}
	if !c.Contains(1) || !c.Contains(2) || !c.Contains(3) {
		t.Error("clone should carry over original members plus new one")
	}
}

func TestSetIter(t *testing.T) {
	s := New(10)
	s.AddAll(4, 5, 6)
	seen := map[uint32]bool{}
	s.Iter(func(v uint32) { seen[v] = true })
	for _, v := range []uint32{4, 5, 6} {
		if !seen[v] {
			t.Errorf("Iter missed %d", v)
		}
	}
}
