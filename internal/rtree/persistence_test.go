package rtree

import (
	"path/filepath"
	"testing"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	datPath := filepath.Join(dir, "test.dat")
	idxPath := filepath.Join(dir, "test.idx")

	tr := New()
	tr.Upsert(1, geospatial.Envelope{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1})
	tr.Upsert(2, geospatial.Envelope{MinX: 10, MaxX: 11, MinY: 10, MaxY: 11})

	if err := tr.SaveTo(datPath, idxPath, 1700000000); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(datPath, idxPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("loaded Len() = %d, want 2", loaded.Len())
	}
	ids := loaded.Intersection(geospatial.Envelope{MinX: -1, MaxX: 2, MinY: -1, MaxY: 2})
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("loaded Intersection = %v, want [1]", ids)
	}
}
