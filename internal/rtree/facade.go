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

// Package rtree is the Linked R-tree façade: the coarse, envelope-only
// spatial index backing a named index, plus the insertion protocol that
// keeps it consistent with a resource's latest geometry. Exact relate
// predicates (intersects/contains) live in internal/geospatial; this
// package only ever reasons about bounding boxes.
package rtree

import (
	"fmt"
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
)

const dimensions = 2

// entry adapts an indexed resource's envelope to rtreego.Spatial.
type entry struct {
	id  uint64
	env geospatial.Envelope
}

func (e *entry) Bounds() *rtreego.Rect {
	return envRect(e.env)
}

func envRect(env geospatial.Envelope) *rtreego.Rect {
	width := env.MaxX - env.MinX
	height := env.MaxY - env.MinY
	if width <= 0 {
		width = minSpan
	}
	if height <= 0 {
		height = minSpan
	}
	rect, err := rtreego.NewRect(rtreego.Point{env.MinX, env.MinY}, []float64{width, height})
	if err != nil {
		// A degenerate envelope (point geometry, zero-width line) is
		// widened by minSpan above; NewRect only fails for negative
		// lengths, which cannot happen here.
		panic(fmt.Sprintf("rtree: invalid envelope %+v: %v", env, err))
	}
	return rect
}

// minSpan is the smallest bounding-box edge length the underlying
// R-tree will accept; point geometries are widened by this much so
// rtreego.NewRect never sees a zero-length side.
const minSpan = 1e-9

// Tree is the façade over the coarse spatial index for one named index.
// It is safe for a single writer concurrent with many readers, matching
// the single-writer/multi-reader discipline of the index it belongs to.
type Tree struct {
	mu      sync.RWMutex
	rt      *rtreego.Rtree
	entries map[uint64]*entry
}

// New returns an empty façade.
func New() *Tree {
	return &Tree{
		rt:      rtreego.NewTree(dimensions, 25, 50),
		entries: make(map[uint64]*entry),
	}
}

// Upsert applies the insertion protocol for a single finalised resource:
// if id is already present its stale entry is deleted first, then the
// new envelope is inserted. Callers are responsible for the payload-store
// half of the protocol (spec.md §4.2 steps 3-4).
func (t *Tree) Upsert(id uint64, env geospatial.Envelope) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.entries[id]; ok {
		t.rt.Delete(old)
	}
	e := &entry{id: id, env: env}
	t.entries[id] = e
	t.rt.Insert(e)
}

// Delete removes id from the index, if present.
func (t *Tree) Delete(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.entries[id]; ok {
		t.rt.Delete(old)
		delete(t.entries, id)
	}
}

// Len returns the number of entries currently indexed.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Intersection returns the ids of every entry whose envelope overlaps
// env. This is the coarse candidate set; callers refine it with
// geospatial.Intersects/Contains against the exact geometry.
func (t *Tree) Intersection(env geospatial.Envelope) []uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	results := t.rt.SearchIntersect(envRect(env))
	ids := make([]uint64, len(results))
	for i, r := range results {
		ids[i] = r.(*entry).id
	}
	return ids
}

// Nearest returns the ids of the n closest entries to centre, ordered
// nearest first, using the R-tree's own envelope-centroid distance
// (spec.md §4.2: nearest ranks by envelope distance, not exact geometry
// distance).
func (t *Tree) Nearest(centre geospatial.Point, n int) []uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n <= 0 || len(t.entries) == 0 {
		return nil
	}
	results := t.rt.NearestNeighbors(n, rtreego.Point{centre.X, centre.Y})
	ids := make([]uint64, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		ids = append(ids, r.(*entry).id)
	}
	return ids
}
