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

package rtree

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
)

// snapshot is the gob-encoded contents of a <name>.dat file: every
// (id, envelope) pair currently in the tree. Rebuilt wholesale on load,
// following the same gob-snapshot-then-reindex idiom as the pack's
// geo-index-rtree persistence helper.
type snapshot struct {
	Entries []snapshotEntry
}

type snapshotEntry struct {
	ID  uint64
	Env geospatial.Envelope
}

// Manifest is the small JSON sidecar written to <name>.idx: a cheap
// existence marker and sanity check, read by the index manager without
// paying the cost of loading the full R-tree snapshot.
type Manifest struct {
	Entries    int `json:"entries"`
	BuiltAt    int64 `json:"builtAt"`
	Dimensions int `json:"dimensions"`
}

// SaveTo writes the tree's snapshot to datPath and its manifest to
// idxPath. builtAt is a caller-supplied unix timestamp (the façade does
// not read the clock itself, so it stays deterministic under test).
func (t *Tree) SaveTo(datPath, idxPath string, builtAt int64) error {
	t.mu.RLock()
	snap := snapshot{Entries: make([]snapshotEntry, 0, len(t.entries))}
	for id, e := range t.entries {
		snap.Entries = append(snap.Entries, snapshotEntry{ID: id, Env: e.env})
	}
	t.mu.RUnlock()

	datFile, err := os.Create(datPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", datPath, err)
	}
	defer datFile.Close()
	if err := gob.NewEncoder(datFile).Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot to %s: %w", datPath, err)
	}

	manifest := Manifest{Entries: len(snap.Entries), BuiltAt: builtAt, Dimensions: dimensions}
	idxFile, err := os.Create(idxPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", idxPath, err)
	}
	defer idxFile.Close()
	enc := json.NewEncoder(idxFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("encoding manifest to %s: %w", idxPath, err)
	}
	return nil
}

// LoadFrom rebuilds a fresh Tree from a <name>.dat snapshot. The
// manifest at idxPath is read only as a sanity check against the
// snapshot's own entry count; a mismatch is reported but does not
// prevent loading, since the snapshot itself is the source of truth.
func LoadFrom(datPath, idxPath string) (*Tree, error) {
	datFile, err := os.Open(datPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", datPath, err)
	}
	defer datFile.Close()

	var snap snapshot
	if err := gob.NewDecoder(datFile).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot from %s: %w", datPath, err)
	}

	t := New()
	for _, e := range snap.Entries {
		t.Upsert(e.ID, e.Env)
	}

	if idxFile, err := os.Open(idxPath); err == nil {
		defer idxFile.Close()
		var manifest Manifest
		if err := json.NewDecoder(idxFile).Decode(&manifest); err == nil {
			if manifest.Entries != len(snap.Entries) {
				return t, fmt.Errorf("manifest %s reports %d entries, snapshot %s has %d",
					idxPath, manifest.Entries, datPath, len(snap.Entries))
			}
		}
	}
	return t, nil
}
