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

package rdf

import (
	"encoding/json"
	"fmt"
	"io"

	extrdf "github.com/geoknoesis/rdf-go"
)

// Format identifies one of the RDF serializations the closure query can
// negotiate, including RDF/JSON (served as application/json).
type Format string

// Recognised closure formats, matching the media types in spec.md §4.4.
const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatNQuads   Format = "nquads"
	FormatRDFXML   Format = "rdfxml"
	FormatJSON     Format = "rdfjson"
)

// NamedGraph pairs a graph identifier with the RDF/JSON description of
// the resource(s) belonging to it.
type NamedGraph struct {
	Name string
	Data JSONGraph
}

// EncodeClosure assembles graphs into one conjunctive graph and writes it
// to w in the requested format. Triple-only formats (turtle, ntriples,
// rdfxml) necessarily lose the named-graph partitioning, mirroring how
// the original implementation's ConjunctiveGraph behaves under those
// serializers.
func EncodeClosure(w io.Writer, graphs []NamedGraph, format Format) error {
	switch format {
	case FormatJSON:
		return encodeClosureJSON(w, graphs)
	case FormatNQuads:
		return encodeClosureQuads(w, graphs)
	case FormatTurtle, FormatNTriples, FormatRDFXML:
		return encodeClosureTriples(w, graphs, format)
	default:
		return fmt.Errorf("unsupported closure format %q", format)
	}
}

func encodeClosureJSON(w io.Writer, graphs []NamedGraph) error {
	out := make(map[string]JSONGraph, len(graphs))
	for _, ng := range graphs {
		out[ng.Name] = ng.Data
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func encodeClosureQuads(w io.Writer, graphs []NamedGraph) error {
	enc, err := extrdf.NewQuadEncoder(w, extrdf.QuadFormatNQuads)
	if err != nil {
		return fmt.Errorf("opening n-quads encoder: %w", err)
	}
	for _, ng := range graphs {
		g := GraphFromJSON(ng.Data)
		for _, tr := range g.Triples() {
			if err := enc.Encode(extrdf.Quad{
				S: toExternal(tr.S),
				P: toExternal(tr.P),
				O: toExternal(tr.O),
				G: extrdf.IRI(ng.Name),
			}); err != nil {
				return fmt.Errorf("encoding quad: %w", err)
			}
		}
	}
	return enc.Close()
}

func encodeClosureTriples(w io.Writer, graphs []NamedGraph, format Format) error {
	var tf extrdf.TripleFormat
	switch format {
	case FormatTurtle:
		tf = extrdf.TripleFormatTurtle
	case FormatNTriples:
		tf = extrdf.TripleFormatNTriples
	case FormatRDFXML:
		tf = extrdf.TripleFormatRDFXML
	}
	enc, err := extrdf.NewTripleEncoder(w, tf)
	if err != nil {
		return fmt.Errorf("opening %s encoder: %w", format, err)
	}
	for _, ng := range graphs {
		g := GraphFromJSON(ng.Data)
		for _, tr := range g.Triples() {
			if err := enc.Encode(extrdf.Triple{
				S: toExternal(tr.S),
				P: toExternal(tr.P),
				O: toExternal(tr.O),
			}); err != nil {
				return fmt.Errorf("encoding triple: %w", err)
			}
		}
	}
	return enc.Close()
}

// MediaType returns the HTTP content type for a negotiated format.
func (f Format) MediaType() string {
	switch f {
	case FormatTurtle:
		return "text/turtle"
	case FormatNTriples:
		return "application/n-triples"
	case FormatNQuads:
		return "application/n-quads"
	case FormatRDFXML:
		return "application/rdf+xml"
	default:
		return "application/json"
	}
}
