package query

import (
	"testing"

	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

func rec(uri, typ, text string) store.Record {
	desc := rdf.JSONGraph{
		uri: {
			rdf.PredRDFType: {{Value: typ, Type: "uri"}},
		},
	}
	if text != "" {
		desc[uri]["http://example.org/note"] = []rdf.JSONObject{{Value: text, Type: "literal"}}
	}
	return store.Record{URI: uri, Description: desc}
}

func TestFilterTypesKeepsMatchingOnly(t *testing.T) {
	recs := []store.Record{
		rec("http://example.org/a", "http://example.org/Park", ""),
		rec("http://example.org/b", "http://example.org/Building", ""),
	}
	s := FilterTypes(ParseGraph(FromRecords(recs)), []string{"http://example.org/Park"})
	items, err := Drain(s)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(items) != 1 || items[0].Record.URI != "http://example.org/a" {
		t.Fatalf("items = %+v, want only a", items)
	}
}

func TestFilterTextCaseInsensitive(t *testing.T) {
	recs := []store.Record{
		rec("http://example.org/a", "http://example.org/Park", "Central Park"),
		rec("http://example.org/b", "http://example.org/Park", "Some Building"),
	}
	s := FilterText(ParseGraph(FromRecords(recs)), "CENTRAL")
	items, err := Drain(s)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(items) != 1 || items[0].Record.URI != "http://example.org/a" {
		t.Fatalf("items = %+v, want only a", items)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	recs := []store.Record{
		{URI: "a"}, {URI: "b"}, {URI: "c"}, {URI: "d"},
	}
	s := Limit(Offset(FromRecords(recs), 1), 2)
	items, err := Drain(s)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(items) != 2 || items[0].Record.URI != "b" || items[1].Record.URI != "c" {
		t.Fatalf("items = %+v, want [b c]", items)
	}
}

func TestOffsetBeyondResultSetYieldsEmpty(t *testing.T) {
	recs := []store.Record{{URI: "a"}}
	s := Offset(FromRecords(recs), 5)
	items, err := Drain(s)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v, want empty", items)
	}
}

func TestTrimGraphClearsGraph(t *testing.T) {
	recs := []store.Record{rec("http://example.org/a", "http://example.org/Park", "")}
	s := TrimGraph(ParseGraph(FromRecords(recs)))
	items, err := Drain(s)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if items[0].Graph != nil {
		t.Fatalf("Graph = %+v, want nil after TrimGraph", items[0].Graph)
	}
}
