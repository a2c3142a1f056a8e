package store

import "testing"

func TestMemoryPutGetDelete(t *testing.T) {
	m := NewMemory()

	rec := Record{ID: 42, URI: "http://example.org/r1", WKT: "POINT (1 2)"}
	if err := m.Put(rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := m.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URI != rec.URI || got.WKT != rec.WKT {
		t.Fatalf("Get returned %+v, want %+v", got, rec)
	}

	if err := m.Delete(42); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(42); err != ErrNotFound {
		t.Fatalf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get(1); err != ErrNotFound {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
}
