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

import "hash/fnv"

// ResourceID computes the deterministic index id for a resource: the
// FNV-1a 64 hash of its URI and graph, separated by a NUL byte. FNV-1a
// was chosen (spec.md's resolved Open Question) over Go's map-seeded
// hash/maphash precisely because it is stable across process restarts,
// which an index id must be.
func ResourceID(uri, graph string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(uri))
	h.Write([]byte{0})
	h.Write([]byte(graph))
	return h.Sum64()
}
