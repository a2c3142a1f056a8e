package manager

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/ingest"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

func point(x, y float64) geospatial.Point {
	return geospatial.Point{X: x, Y: y}
}

func tempManager(t *testing.T) *Manager {
	t.Helper()
	dir, err := os.MkdirTemp("", "lsi-manager-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return New(dir, afero.NewMemMapFs(), nil, nil)
}

func TestProvisionOpensEmptyIndex(t *testing.T) {
	m := tempManager(t)
	if err := m.Provision("places"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	fc, ok := m.Search("places")
	if !ok {
		t.Fatalf("Search: index not found after Provision")
	}
	recs, err := fc.Nearest(point(0, 0), 10)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("Nearest on fresh index = %d records, want 0", len(recs))
	}
}

func TestProvisionMissingNameFails(t *testing.T) {
	m := tempManager(t)
	if err := m.Provision(""); err == nil {
		t.Fatalf("Provision(\"\") = nil error, want a bad-request error")
	}
}

func TestReindexPreservesRecordsAcrossReopen(t *testing.T) {
	m := tempManager(t)
	if err := m.Provision("places"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	fc, _ := m.Search("places")
	rec := store.Record{ID: 1, URI: "urn:a", WKT: "POINT (1 2)", Envelope: geospatial.Envelope{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2}}
	if err := fc.Index(rec); err != nil {
		t.Fatalf("Index: %v", err)
	}

	// Reopen without forcing rebuild: should reuse the existing payload
	// store and coarse index files.
	if err := m.Provision("places"); err != nil {
		t.Fatalf("second Provision: %v", err)
	}
	fc2, ok := m.Search("places")
	if !ok {
		t.Fatalf("Search after reopen: index not found")
	}
	recs, err := fc2.Nearest(point(1, 2), 10)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(recs) != 1 || recs[0].URI != "urn:a" {
		t.Fatalf("Nearest after reopen = %+v, want the persisted record", recs)
	}
}

func TestResetClearsRecords(t *testing.T) {
	m := tempManager(t)
	if err := m.Provision("places"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	fc, _ := m.Search("places")
	if err := fc.Index(store.Record{ID: 1, URI: "urn:a", WKT: "POINT (1 2)", Envelope: geospatial.Envelope{MinX: 1, MaxX: 1, MinY: 2, MaxY: 2}}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	if err := m.Reset("places"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	fc2, ok := m.Search("places")
	if !ok {
		t.Fatalf("Search after reset: index not found")
	}
	recs, err := fc2.Nearest(point(1, 2), 10)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("Nearest after reset = %d records, want 0", len(recs))
	}
}

func TestSearchUnknownIndexReturnsFalse(t *testing.T) {
	m := tempManager(t)
	if _, ok := m.Search("nope"); ok {
		t.Fatalf("Search(\"nope\") = true, want false")
	}
}

func TestStartOpensIndexesFoundOnDisk(t *testing.T) {
	dir, err := os.MkdirTemp("", "lsi-manager-start-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	m1 := New(dir, afero.NewOsFs(), nil, nil)
	if err := m1.Provision("places"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	fc, _ := m1.Search("places")
	if err := fc.Index(store.Record{ID: 1, URI: "urn:a", WKT: "POINT (3 4)", Envelope: geospatial.Envelope{MinX: 3, MaxX: 3, MinY: 4, MaxY: 4}}); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := m1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	m2 := New(dir, afero.NewOsFs(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m2.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer m2.Close()

	fc2, ok := m2.Search("places")
	if !ok {
		t.Fatalf("Search after Start: index not found on disk")
	}
	recs, err := fc2.Nearest(point(3, 4), 10)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Nearest after Start = %d records, want 1", len(recs))
	}
}

func TestTailFactoryIsPolledAndIngested(t *testing.T) {
	m := tempManager(t)
	m.TailPollInterval = 10 * time.Millisecond

	quads := `<urn:a> <http://www.w3.org/2003/01/geo/wgs84_pos#lat> "1.0" <urn:g> .
<urn:a> <http://www.w3.org/2003/01/geo/wgs84_pos#long> "2.0" <urn:g> .
`
	fetched := make(chan struct{}, 1)
	m.Tail = func(name string) ingest.FetchFunc {
		return func(ctx context.Context) (io.ReadCloser, error) {
			select {
			case fetched <- struct{}{}:
			default:
			}
			return io.NopCloser(strings.NewReader(quads)), nil
		}
	}

	if err := m.Provision("tailed"); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	defer m.Close()

	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatalf("tail task never polled its fetch function")
	}

	deadline := time.After(2 * time.Second)
	for {
		fc, ok := m.Search("tailed")
		if !ok {
			t.Fatalf("Search: index disappeared")
		}
		recs, err := fc.Nearest(point(1, 2), 10)
		if err != nil {
			t.Fatalf("Nearest: %v", err)
		}
		if len(recs) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("tailed record never appeared in the index")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
