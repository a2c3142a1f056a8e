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

// Package rdf provides the RDF term/quad model used across the index:
// namespace constants, a small graph type, an RDF/JSON codec for the
// on-disk Resource Description Record, and closure serialization in the
// negotiated RDF formats built on github.com/geoknoesis/rdf-go.
package rdf

// Namespace prefixes recognised by the geometry extractor, fixed by the
// specification and matched IRI-exact.
const (
	NSWGS84     = "http://www.w3.org/2003/01/geo/wgs84_pos#"
	NSGeoRSS    = "http://www.georss.org/georss/"
	NSGeoSPARQL = "http://www.opengis.net/ont/OGC-GeoSPARQL/1.0/"
	NSOSG       = "http://data.ordnancesurvey.co.uk/ontology/geometry/"
	NSRDF       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

// Recognised geometry predicates. The finalisation logic in
// internal/ingest picks among them by priority asWKT > asGeoJSON >
// lat/long > GeoRSS point; asGML is recognised but never extracted.
const (
	PredLat      = NSWGS84 + "lat"
	PredLong     = NSWGS84 + "long"
	PredGeoRSS   = NSGeoRSS + "point"
	PredAsWKT    = NSGeoSPARQL + "asWKT"
	PredAsGeoRSS = PredGeoRSS
	PredAsJSON   = NSOSG + "asGeoJSON"
	PredAsGML    = NSOSG + "asGML"
	PredRDFType  = NSRDF + "type"
)

// GeometryPredicates lists every recognised geometry predicate. The
// ingester captures a candidate value for each of them except asGML.
var GeometryPredicates = map[string]bool{
	PredLat:    true,
	PredLong:   true,
	PredGeoRSS: true,
	PredAsWKT:  true,
	PredAsJSON: true,
	PredAsGML:  true,
}
