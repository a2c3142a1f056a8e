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
	"github.com/wwaites/linkedspatialindex/internal/rdf"
	"github.com/wwaites/linkedspatialindex/internal/store"
)

// Item is one result as it travels through the pipeline: the record
// itself, plus the parsed RDF graph once ParseGraph has run (nil
// before that stage and after TrimGraph).
type Item struct {
	Record store.Record
	Graph  *rdf.Graph
}

// Stream is a pull-based, lazily-evaluated result sequence: each call
// to Next returns the next item, or ok=false once exhausted. Every
// pipeline stage below wraps an upstream Stream in a closure, so no
// stage does more work than the caller actually consumes — the same
// shape as the original implementation's Python generator pipeline.
type Stream func() (item Item, ok bool, err error)

// FromRecords adapts an already-fetched slice of records (the façade's
// coarse result set) into a Stream.
func FromRecords(recs []store.Record) Stream {
	i := 0
	return func() (Item, bool, error) {
		if i >= len(recs) {
			return Item{}, false, nil
		}
		item := Item{Record: recs[i]}
		i++
		return item, true, nil
	}
}

// ParseGraph materialises each item's RDF/JSON description into a Graph,
// needed by FilterTypes and FilterText.
func ParseGraph(in Stream) Stream {
	return func() (Item, bool, error) {
		item, ok, err := in()
		if !ok || err != nil {
			return item, ok, err
		}
		item.Graph = rdf.GraphFromJSON(item.Record.Description)
		return item, true, nil
	}
}

// TrimGraph discards the parsed graph once the type/text filters no
// longer need it, so it is not carried needlessly into the response
// encoder.
func TrimGraph(in Stream) Stream {
	return func() (Item, bool, error) {
		item, ok, err := in()
		if !ok || err != nil {
			return item, ok, err
		}
		item.Graph = nil
		return item, true, nil
	}
}

// FilterTypes keeps only items whose subject has an rdf:type triple
// matching one of types. Requires ParseGraph upstream.
func FilterTypes(in Stream, types []string) Stream {
	return func() (Item, bool, error) {
		for {
			item, ok, err := in()
			if !ok || err != nil {
				return item, ok, err
			}
			if item.Graph != nil && item.Graph.HasType(item.Record.URI, types) {
				return item, true, nil
			}
		}
	}
}

// Offset skips the first n items.
func Offset(in Stream, n int) Stream {
	skipped := 0
	return func() (Item, bool, error) {
		for skipped < n {
			_, ok, err := in()
			if !ok || err != nil {
				return Item{}, ok, err
			}
			skipped++
		}
		return in()
	}
}

// Limit yields at most n items before reporting exhaustion, without
// pulling a single item more than necessary from upstream.
func Limit(in Stream, n int) Stream {
	count := 0
	return func() (Item, bool, error) {
		if count >= n {
			return Item{}, false, nil
		}
		item, ok, err := in()
		if ok {
			count++
		}
		return item, ok, err
	}
}

// Drain pulls every remaining item from in, for the response encoders
// that need the whole (already offset/limited) result set materialised.
func Drain(in Stream) ([]Item, error) {
	var out []Item
	for {
		item, ok, err := in()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out, nil
}
