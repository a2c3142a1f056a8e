package ingest

import (
	"testing"

	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

type fakeIndexer struct {
	recs []store.Record
}

func (f *fakeIndexer) Index(rec store.Record) error {
	f.recs = append(f.recs, rec)
	return nil
}

func TestLatLongFinalises(t *testing.T) {
	idx := &fakeIndexer{}
	ing := New(idx, nil)

	subject := rdf.IRI("http://example.org/foo")
	quads := []rdf.Quad{
		{S: subject, P: rdf.IRI(rdf.PredRDFType), O: rdf.IRI("http://www.w3.org/2003/01/geo/wgs84_pos#SpatialThing"), Graph: "http://example.org/g1"},
		{S: subject, P: rdf.IRI(rdf.PredLat), O: rdf.Lit("10.0", "", ""), Graph: "http://example.org/g1"},
		{S: subject, P: rdf.IRI(rdf.PredLong), O: rdf.Lit("10.0", "", ""), Graph: "http://example.org/g1"},
	}
	for _, q := range quads {
		if err := ing.AddQuad(q); err != nil {
			t.Fatalf("AddQuad: %v", err)
		}
	}
	if err := ing.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(idx.recs) != 1 {
		t.Fatalf("got %d records, want 1", len(idx.recs))
	}
	rec := idx.recs[0]
	if rec.URI != subject.Value {
		t.Errorf("URI = %q, want %q", rec.URI, subject.Value)
	}
	if rec.Envelope.MinX != 10.0 || rec.Envelope.MinY != 10.0 {
		t.Errorf("Envelope = %+v, want point at (10,10)", rec.Envelope)
	}
}

func TestIndirectedWKTResolvesThroughDescribe(t *testing.T) {
	idx := &fakeIndexer{}
	blank := rdf.Blank("b0")
	resource := rdf.IRI("http://example.org/bar")

	describe := func(uri string) ([]rdf.Triple, error) {
		return []rdf.Triple{
			{S: resource, P: rdf.IRI("http://purl.org/dc/terms/spatial"), O: blank},
		}, nil
	}
	ing := New(idx, describe)

	quads := []rdf.Quad{
		{S: blank, P: rdf.IRI(rdf.PredRDFType), O: rdf.IRI("http://www.opengis.net/ont/OGC-GeoSPARQL/1.0/Geometry"), Graph: "http://example.org/g2"},
		{S: blank, P: rdf.IRI(rdf.PredAsWKT), O: rdf.Lit("POLYGON((-83.6 34.1, -83.2 34.1, -83.2 34.5, -83.6 34.5, -83.6 34.1))", "", ""), Graph: "http://example.org/g2"},
	}
	for _, q := range quads {
		if err := ing.AddQuad(q); err != nil {
			t.Fatalf("AddQuad: %v", err)
		}
	}
	if err := ing.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(idx.recs) != 1 {
		t.Fatalf("got %d records, want 1", len(idx.recs))
	}
	if idx.recs[0].URI != resource.Value {
		t.Errorf("URI = %q, want indirected %q", idx.recs[0].URI, resource.Value)
	}
}

func TestNoGeometryPredicateDropsSilently(t *testing.T) {
	idx := &fakeIndexer{}
	ing := New(idx, nil)

	subject := rdf.IRI("http://example.org/baz")
	if err := ing.AddQuad(rdf.Quad{S: subject, P: rdf.IRI(rdf.PredRDFType), O: rdf.IRI("http://example.org/Thing")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := ing.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(idx.recs) != 0 {
		t.Fatalf("got %d records, want 0 (no geometry predicate present)", len(idx.recs))
	}
}

func TestUnparseableWKTDropsSilently(t *testing.T) {
	idx := &fakeIndexer{}
	ing := New(idx, nil)

	subject := rdf.IRI("http://example.org/broken")
	if err := ing.AddQuad(rdf.Quad{S: subject, P: rdf.IRI(rdf.PredAsWKT), O: rdf.Lit("NOT WKT AT ALL", "", "")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := ing.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(idx.recs) != 0 {
		t.Fatalf("got %d records, want 0 (unparseable WKT)", len(idx.recs))
	}
}

func TestSubjectChangeFinalisesPrevious(t *testing.T) {
	idx := &fakeIndexer{}
	ing := New(idx, nil)

	a := rdf.IRI("http://example.org/a")
	b := rdf.IRI("http://example.org/b")

	if err := ing.AddQuad(rdf.Quad{S: a, P: rdf.IRI(rdf.PredLat), O: rdf.Lit("1.0", "", "")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := ing.AddQuad(rdf.Quad{S: a, P: rdf.IRI(rdf.PredLong), O: rdf.Lit("1.0", "", "")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	// subject changes to b: a must finalise here, before b's triples arrive.
	if err := ing.AddQuad(rdf.Quad{S: b, P: rdf.IRI(rdf.PredLat), O: rdf.Lit("2.0", "", "")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := ing.AddQuad(rdf.Quad{S: b, P: rdf.IRI(rdf.PredLong), O: rdf.Lit("2.0", "", "")}); err != nil {
		t.Fatalf("AddQuad: %v", err)
	}
	if err := ing.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(idx.recs) != 2 {
		t.Fatalf("got %d records, want 2", len(idx.recs))
	}
	if idx.recs[0].URI != a.Value || idx.recs[1].URI != b.Value {
		t.Fatalf("records out of order: %+v", idx.recs)
	}
}
