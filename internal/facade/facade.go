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

// Package facade is the Linked R-tree façade: the glue between RDF
// ingestion and the coarse spatial index. It implements the insertion
// protocol (ingest.Indexer) and the three query operations
// (nearest/intersection/contains), applying the exact-geometry
// sweep-and-prune refinement from internal/geospatial on top of the
// coarse R-tree candidate set from internal/rtree.
package facade

import (
	"sync"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/rtree"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

// Facade ties one named index's coarse R-tree and payload store
// together behind the single-writer/multi-reader discipline required
// of a named index (spec.md §5).
type Facade struct {
	mu    sync.RWMutex
	tree  *rtree.Tree
	store store.Store
}

// New builds a façade over a fresh, empty coarse index and st.
func New(st store.Store) *Facade {
	return &Facade{tree: rtree.New(), store: st}
}

// Open builds a façade over an already-populated coarse index (as
// produced by rtree.LoadFrom) and st.
func Open(tree *rtree.Tree, st store.Store) *Facade {
	return &Facade{tree: tree, store: st}
}

// Tree exposes the coarse index, for persistence (SaveTo) by the owning
// index manager.
func (f *Facade) Tree() *rtree.Tree { return f.tree }

// Index implements ingest.Indexer: the insertion protocol's coarse and
// payload halves, applied atomically with respect to other writers and
// readers of this façade.
func (f *Facade) Index(rec store.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tree.Upsert(rec.ID, rec.Envelope)
	return f.store.Put(rec)
}

// Nearest returns the limit closest records to centre, ranked by the
// coarse index's own envelope-centroid distance (spec.md §4.2).
func (f *Facade) Nearest(centre geospatial.Point, limit int) ([]store.Record, error) {
	f.mu.RLock()
	ids := f.tree.Nearest(centre, limit)
	f.mu.RUnlock()
	return f.fetch(ids)
}

// Intersection returns every record whose exact geometry intersects
// operand: a coarse envelope search followed by an exact sweep-and-prune
// refinement.
func (f *Facade) Intersection(operand geospatial.Shape) ([]store.Record, error) {
	return f.sweepAndPrune(operand, geospatial.Intersects)
}

// Contains returns every record whose exact geometry lies entirely
// within operand.
func (f *Facade) Contains(operand geospatial.Shape) ([]store.Record, error) {
	return f.sweepAndPrune(operand, geospatial.Contains)
}

func (f *Facade) sweepAndPrune(operand geospatial.Shape, relate func(a, b geospatial.Shape) bool) ([]store.Record, error) {
	f.mu.RLock()
	ids := f.tree.Intersection(operand.Envelope())
	f.mu.RUnlock()

	candidates, err := f.fetch(ids)
	if err != nil {
		return nil, err
	}
	out := make([]store.Record, 0, len(candidates))
	for _, rec := range candidates {
		shape, err := geospatial.ParseWKT(rec.WKT)
		if err != nil {
			continue // a record's own WKT failing to re-parse is unexpected but not fatal to the query
		}
		if relate(operand, shape) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fetch resolves ids into records, silently skipping ids the payload
// store has no record for (spec.md §4.7: payload-store misses are
// silent), preserving ids' order.
func (f *Facade) fetch(ids []uint64) ([]store.Record, error) {
	out := make([]store.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := f.store.Get(id)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close releases the façade's payload store. The coarse index has no
// resources of its own to release; its snapshot is persisted separately
// by the owning index manager.
func (f *Facade) Close() error {
	return f.store.Close()
}
