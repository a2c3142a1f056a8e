package facade

import (
	"fmt"
	"testing"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

func point(id uint64, uri string, x, y float64) store.Record {
	return store.Record{
		ID:       id,
		URI:      uri,
		WKT:      fmt.Sprintf("POINT (%g %g)", x, y),
		Envelope: geospatial.Envelope{MinX: x, MaxX: x, MinY: y, MaxY: y},
		Description: rdf.JSONGraph{
			uri: {rdf.PredRDFType: {{Value: "http://example.org/Thing", Type: "uri"}}},
		},
	}
}

func TestIndexAndNearest(t *testing.T) {
	fc := New(store.NewMemory())
	if err := fc.Index(point(1, "http://example.org/a", 0, 0)); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := fc.Index(point(2, "http://example.org/b", 5, 5)); err != nil {
		t.Fatalf("Index: %v", err)
	}

	recs, err := fc.Nearest(geospatial.Point{X: 0, Y: 0}, 1)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(recs) != 1 || recs[0].URI != "http://example.org/a" {
		t.Fatalf("Nearest = %+v, want single record a", recs)
	}
}

func TestIntersectionAndContains(t *testing.T) {
	fc := New(store.NewMemory())
	poly := store.Record{
		ID:       10,
		URI:      "http://example.org/park",
		WKT:      "POLYGON ((-83.6 34.1, -83.2 34.1, -83.2 34.5, -83.6 34.5, -83.6 34.1))",
		Envelope: geospatial.Envelope{MinX: -83.6, MaxX: -83.2, MinY: 34.1, MaxY: 34.5},
	}
	if err := fc.Index(poly); err != nil {
		t.Fatalf("Index: %v", err)
	}

	overlap, err := geospatial.ParseWKT("POLYGON ((-83.8 34.1, -83.4 34.1, -83.4 34.4, -83.8 34.4, -83.8 34.1))")
	if err != nil {
		t.Fatalf("ParseWKT: %v", err)
	}
	recs, err := fc.Intersection(overlap)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Intersection = %d records, want 1", len(recs))
	}

	noverlap, err := geospatial.ParseWKT("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	if err != nil {
		t.Fatalf("ParseWKT: %v", err)
	}
	recs, err = fc.Intersection(noverlap)
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("Intersection with disjoint polygon = %d records, want 0", len(recs))
	}

	enclosing, err := geospatial.ParseWKT("POLYGON ((-90 30, -80 30, -80 40, -90 40, -90 30))")
	if err != nil {
		t.Fatalf("ParseWKT: %v", err)
	}
	recs, err = fc.Contains(enclosing)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Contains = %d records, want 1", len(recs))
	}
}

func TestReindexEvictsStaleEnvelope(t *testing.T) {
	fc := New(store.NewMemory())
	if err := fc.Index(point(1, "http://example.org/a", 0, 0)); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := fc.Index(point(1, "http://example.org/a", 100, 100)); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	recs, err := fc.Intersection(geospatial.Shape{Kind: geospatial.KindPolygon, Polygons: []geospatial.Ring{{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}}})
	if err != nil {
		t.Fatalf("Intersection: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("stale envelope still matched after reindex: %+v", recs)
	}
}
