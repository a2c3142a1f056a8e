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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Index is the per-index on-disk configuration (the <name>.cfg file,
// spec.md §6). Tail defaults to true: unless a config file says
// otherwise, a newly provisioned index starts a tail task.
type Index struct {
	Rebuild    bool                   `json:"rebuild"`
	Tail       bool                   `json:"tail"`
	TailSource string                 `json:"tailSource,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// DefaultIndex is the configuration used for an index with no existing
// .cfg file.
func DefaultIndex() Index {
	return Index{Tail: true}
}

// ReadIndex loads path via fs, returning DefaultIndex if the file does
// not exist (matching the original implementation's IOError fallback).
func ReadIndex(fs afero.Fs, path string) (Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultIndex(), nil
		}
		return Index{}, fmt.Errorf("reading index config %s: %w", path, err)
	}
	var cfg Index
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Index{}, fmt.Errorf("parsing index config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteIndex persists cfg to path, clearing Rebuild first: a rebuild
// request is one-shot, consumed the next time the index is opened
// (mirroring the original's idx_cfg["rebuild"] = False before writing
// back).
func WriteIndex(fs afero.Fs, path string, cfg Index) error {
	cfg.Rebuild = false
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index config: %w", err)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}
