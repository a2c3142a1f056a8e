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

// Package store is the payload store: the part of a named index that
// remembers, for every finalised resource, the RDF description and
// geometry that produced its R-tree entry. It is deliberately dumb —
// put/get/delete/close, keyed by the resource's index id — so that the
// façade in internal/facade can treat it as an interchangeable backend.
package store

import (
	"errors"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/rdf"
)

// ErrNotFound is returned by Get when no record exists for an id.
var ErrNotFound = errors.New("store: record not found")

// Record is a finalised resource description record (RDR): everything
// needed to answer a query about one resource without re-reading the
// original quad stream.
type Record struct {
	ID          uint64
	URI         string
	Graph       string
	WKT         string
	Envelope    geospatial.Envelope
	Description rdf.JSONGraph
}

// Store is the payload store contract. Implementations must be safe for
// concurrent Get calls from multiple readers while at most one writer
// calls Put/Delete, matching the façade's single-writer/multi-reader
// discipline (spec.md §5).
type Store interface {
	Put(rec Record) error
	Get(id uint64) (Record, error)
	Delete(id uint64) error
	Close() error
}
