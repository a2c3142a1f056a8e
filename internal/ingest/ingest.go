/*
Copyright © 2026 the LSI authors.
This file is part of the Linked Spatial Index.

The Linked Spatial Index is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Linked Spatial Index is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Linked Spatial Index.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package ingest turns a stream of RDF quads into finalised Resource
// Description Records: it accumulates a Pending Description per
// (subject, graph) pair, extracts a geometry from whichever recognised
// predicate is present, resolves GeoSPARQL-style indirection through an
// injected describe capability, and hands each finalised record to an
// Indexer.
package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

// DescribeFunc resolves the indirection GeoSPARQL-style geometries
// introduce: given the blank node or IRI that carried the asWKT/
// asGeoJSON literal, it returns whatever other triples describe the
// "real" resource that geometry belongs to (spec.md §4.3, §9). A nil
// DescribeFunc disables indirection resolution entirely, matching the
// original implementation's optional describe= constructor argument.
type DescribeFunc func(uri string) ([]rdf.Triple, error)

// Indexer receives one finalised record per resource and is responsible
// for the rest of the insertion protocol (R-tree upsert, payload put).
type Indexer interface {
	Index(rec store.Record) error
}

// Ingester drives the Pending Description finite state machine. It is
// not safe for concurrent use by multiple goroutines: callers own the
// same single-writer discipline the façade requires (spec.md §5).
type Ingester struct {
	indexer  Indexer
	describe DescribeFunc
	current  *pending
}

// New returns an Ingester that hands finalised records to indexer,
// resolving indirected geometries via describe (which may be nil).
func New(indexer Indexer, describe DescribeFunc) *Ingester {
	return &Ingester{indexer: indexer, describe: describe}
}

// AddQuad feeds a single quad into the state machine. A change of
// subject or graph relative to the pending description finalises the
// previous one before starting a new one, mirroring the original's
// add() method.
func (ing *Ingester) AddQuad(q rdf.Quad) error {
	if ing.current == nil || !ing.current.sameSubject(q.S, q.Graph) {
		if err := ing.Flush(); err != nil {
			return err
		}
		ing.current = newPending(q.S, q.Graph)
	}
	ing.current.add(rdf.Triple{S: q.S, P: q.P, O: q.O})
	return nil
}

// AddStream reads quads from r until io.EOF and feeds each into AddQuad,
// finalising whatever remains pending once the stream is exhausted.
func (ing *Ingester) AddStream(r *rdf.QuadReader) error {
	for {
		q, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading quad stream: %w", err)
		}
		if err := ing.AddQuad(q); err != nil {
			return err
		}
	}
	return ing.Flush()
}

// Flush finalises whatever Pending Description is currently
// accumulating, if any. Callers that feed quads one at a time via
// AddQuad must call Flush once after the last quad to finalise the
// final resource, since finalisation is otherwise only triggered by the
// arrival of the next resource's first triple.
func (ing *Ingester) Flush() error {
	p := ing.current
	ing.current = nil
	if p == nil {
		return nil
	}

	literal, indirected, ok := p.geometryLiteral()
	if !ok {
		return nil // no recognised geometry predicate: drop silently
	}

	wkt := literal
	if p.isGeoJSON() {
		converted, err := geospatial.GeoJSONToWKT([]byte(literal))
		if err != nil {
			return nil // malformed GeoJSON literal: drop silently
		}
		wkt = converted
	}

	subject := p.uriTerm
	desc := p.desc
	if indirected && ing.describe != nil {
		triples, err := ing.describe(subject.Value)
		if err != nil {
			return fmt.Errorf("describing %s: %w", subject.Value, err)
		}
		for _, t := range triples {
			desc.Add(t)
		}
		if s, found := findNewSubject(desc, subject); found {
			subject = s
		}
	}

	shape, err := geospatial.ParseWKT(wkt)
	if err != nil {
		return nil // unparseable WKT: drop silently (spec.md §4.7)
	}

	rec := store.Record{
		ID:          ResourceID(subject.Value, p.graph),
		URI:         subject.Value,
		Graph:       p.graph,
		WKT:         wkt,
		Envelope:    shape.Envelope(),
		Description: desc.ToJSON(),
	}
	return ing.indexer.Index(rec)
}

// findNewSubject looks for a triple in g whose object is obj, returning
// its subject: this is how an indirected geometry's blank node is
// resolved to the "real" resource a describe() lookup identified. The
// last such triple found wins, matching the original's loop-and-
// overwrite behaviour.
func findNewSubject(g *rdf.Graph, obj rdf.Term) (rdf.Term, bool) {
	var found bool
	var subj rdf.Term
	for _, t := range g.Triples() {
		if t.O.Kind == obj.Kind && t.O.Value == obj.Value {
			subj, found = t.S, true
		}
	}
	return subj, found
}
