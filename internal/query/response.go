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

package query

import (
	"encoding/json"
	"io"

	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

// PlainResult is the shape of one record in the default (non-closure)
// JSON array response, mirroring the original implementation's raw
// dict-per-result encoding.
type PlainResult struct {
	URI         string        `json:"uri"`
	Graph       string        `json:"graph"`
	Geom        string        `json:"geom"`
	Description rdf.JSONGraph `json:"json_description"`
}

// EncodeJSON writes results as a plain JSON array, the pipeline's
// default terminal stage when no query=closure parameter is present
// (supplemented from the original implementation, see SPEC_FULL.md §9).
func EncodeJSON(w io.Writer, results []store.Record) error {
	out := make([]PlainResult, len(results))
	for i, rec := range results {
		out[i] = PlainResult{
			URI:         rec.URI,
			Graph:       rec.Graph,
			Geom:        rec.WKT,
			Description: rec.Description,
		}
	}
	return json.NewEncoder(w).Encode(out)
}

// EncodeClosure writes results as a negotiated RDF closure: the named
// graph each record belongs to, merged into one conjunctive graph.
func EncodeClosure(w io.Writer, results []store.Record, format rdf.Format) error {
	graphs := make([]rdf.NamedGraph, len(results))
	for i, rec := range results {
		graphs[i] = rdf.NamedGraph{Name: rec.Graph, Data: rec.Description}
	}
	return rdf.EncodeClosure(w, graphs, format)
}
