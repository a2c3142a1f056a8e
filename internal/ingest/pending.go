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

package ingest

import (
	"fmt"
	"strings"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/rdf"
)

// pending is the Pending Description state for one (subject, graph) pair
// currently being accumulated: the triples seen so far plus the lexical
// values of whichever geometry-bearing predicates have appeared, so
// finalisation can apply the priority rule without re-scanning the
// description.
type pending struct {
	uriTerm rdf.Term
	graph   string
	desc    *rdf.Graph

	wkt, geojson, lat, long, georss           string
	haveWKT, haveGeoJSON, haveLat, haveLong, haveGeoRSS bool
}

func newPending(uriTerm rdf.Term, graph string) *pending {
	return &pending{uriTerm: uriTerm, graph: graph, desc: rdf.NewGraph()}
}

// sameSubject reports whether a newly-arrived triple belongs to the
// (subject, graph) pair this pending description is accumulating.
func (p *pending) sameSubject(s rdf.Term, graph string) bool {
	return p.uriTerm.Kind == s.Kind && p.uriTerm.Value == s.Value && p.graph == graph
}

// add appends t to the description and, if its predicate is one of the
// recognised geometry predicates, remembers the object's lexical value.
func (p *pending) add(t rdf.Triple) {
	p.desc.Add(t)
	if t.P.Kind != rdf.KindIRI {
		return
	}
	switch t.P.Value {
	case rdf.PredAsWKT:
		p.wkt, p.haveWKT = t.O.Value, true
	case rdf.PredAsJSON:
		p.geojson, p.haveGeoJSON = t.O.Value, true
	case rdf.PredLat:
		p.lat, p.haveLat = t.O.Value, true
	case rdf.PredLong:
		p.long, p.haveLong = t.O.Value, true
	case rdf.PredGeoRSS:
		p.georss, p.haveGeoRSS = t.O.Value, true
	}
}

// geometryLiteral applies the finalisation priority rule (asWKT >
// asGeoJSON > lat/long > GeoRSS point) and returns the geometry literal
// for whichever encoding was present (normalised WKT, or the raw GeoJSON
// text, which the caller converts; see isGeoJSON), plus whether that encoding
// is the indirected GeoSPARQL style that needs a describe() lookup to
// find the resource's "real" identity (spec.md §4.3).
func (p *pending) geometryLiteral() (wkt string, indirected, ok bool) {
	switch {
	case p.haveWKT:
		return geospatial.NormalizeWKT(p.wkt), true, true
	case p.haveGeoJSON:
		return p.geojson, true, true // converted to WKT by the caller, which can report parse failure
	case p.haveLat && p.haveLong:
		return fmt.Sprintf("POINT(%s %s)", p.long, p.lat), false, true
	case p.haveGeoRSS:
		fields := strings.Fields(p.georss)
		if len(fields) != 2 {
			return "", false, false
		}
		return fmt.Sprintf("POINT(%s %s)", fields[1], fields[0]), false, true
	default:
		return "", false, false
	}
}

// isGeoJSON reports whether the geometry literal returned by
// geometryLiteral still needs GeoJSON-to-WKT conversion.
func (p *pending) isGeoJSON() bool { return !p.haveWKT && p.haveGeoJSON }
