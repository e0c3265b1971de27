package ecs

import "testing"

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero id")
	}
	if !p.Alive(a) {
		t.Fatal("new entity not alive")
	}
	p.Destroy(a)
	if p.Alive(a) {
		t.Fatal("destroyed entity still alive")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("expected index reuse, got %d vs %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Fatalf("expected generation bump, got %d", b.Generation())
	}
	if p.Alive(a) {
		t.Fatal("stale id reported alive after reuse")
	}
	p.Destroy(a) // stale destroy must not kill b
	if !p.Alive(b) || p.Live() != 1 {
		t.Fatalf("stale destroy affected live entity, live=%d", p.Live())
	}
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	ids := []EntityID{NewEntityID(7, 1), NewEntityID(2, 1), NewEntityID(9, 1), NewEntityID(4, 1)}
	for i, id := range ids {
		v := i
		s.Set(id, &v)
	}
	s.Remove(ids[1])
	replacement := 42
	s.Set(ids[2], &replacement)

	var got []EntityID
	s.Each(func(id EntityID, _ *int) { got = append(got, id) })
	want := []EntityID{ids[0], ids[2], ids[3]}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if v, ok := s.Get(ids[2]); !ok || *v != 42 {
		t.Fatal("replacement not stored in place")
	}
	if v, ok := s.Get(ids[3]); !ok || *v != 3 {
		t.Fatal("index not rebuilt after removal")
	}
	if s.Has(ids[1]) {
		t.Fatal("removed id still present")
	}
}

func TestWorldFlushRunsHooksOnce(t *testing.T) {
	w := NewWorld()
	s := NewStore[string]()
	w.Registry().Register(s)
	id := w.CreateEntity()
	name := "tree"
	s.Set(id, &name)

	var hooked []EntityID
	w.OnDestroy(func(e EntityID) {
		if !s.Has(e) {
			t.Fatal("hook ran after components were removed")
		}
		hooked = append(hooked, e)
	})
	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if w.Pending() != 1 {
		t.Fatalf("expected one queued entity, got %d", w.Pending())
	}
	w.FlushDestroyQueue()
	if len(hooked) != 1 {
		t.Fatalf("expected one hook call, got %d", len(hooked))
	}
	if w.Alive(id) || s.Has(id) {
		t.Fatal("entity not fully destroyed")
	}
	w.MarkForDestruction(id)
	if w.Pending() != 0 {
		t.Fatal("dead entity queued again")
	}
}
