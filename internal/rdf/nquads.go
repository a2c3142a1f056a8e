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
	"fmt"
	"io"

	extrdf "github.com/geoknoesis/rdf-go"
)

// QuadReader streams quads from an N-Quads byte stream, one at a time,
// using github.com/geoknoesis/rdf-go's pull-style quad decoder. Consumers
// call Next until it returns io.EOF.
type QuadReader struct {
	dec *extrdf.QuadDecoder
}

// NewQuadReader wraps r as a line-oriented N-Quads stream.
func NewQuadReader(r io.Reader) (*QuadReader, error) {
	dec, err := extrdf.NewQuadDecoder(r, extrdf.QuadFormatNQuads)
	if err != nil {
		return nil, fmt.Errorf("opening n-quads decoder: %w", err)
	}
	return &QuadReader{dec: dec}, nil
}

// Next returns the next quad, or io.EOF once the stream is exhausted.
func (q *QuadReader) Next() (Quad, error) {
	eq, err := q.dec.Next()
	if err != nil {
		return Quad{}, err
	}
	return Quad{
		S:     fromExternal(eq.S),
		P:     fromExternal(eq.P),
		O:     fromExternal(eq.O),
		Graph: graphName(eq.G),
	}, nil
}

// Close releases resources held by the underlying decoder.
func (q *QuadReader) Close() error { return q.dec.Close() }

// graphName extracts a graph identifier string from an rdf-go graph term,
// treating any nil/unset term as the default (empty-named) graph.
func graphName(g extrdf.Term) string {
	if g == nil {
		return ""
	}
	return fromExternal(g).Value
}

// fromExternal converts an rdf-go term into our own internal Term, so the
// rest of the codebase never has to import github.com/geoknoesis/rdf-go
// directly.
func fromExternal(t extrdf.Term) Term {
	switch v := t.(type) {
	case extrdf.IRI:
		return IRI(string(v))
	case extrdf.BlankNode:
		return Blank(string(v))
	case extrdf.Literal:
		return Lit(v.Value, string(v.Datatype), v.Lang)
	default:
		if t == nil {
			return Term{}
		}
		return Lit(fmt.Sprintf("%v", t), "", "")
	}
}

// toExternal converts one of our Terms back into an rdf-go term, for use
// when building a closure graph to encode.
func toExternal(t Term) extrdf.Term {
	switch t.Kind {
	case KindIRI:
		return extrdf.IRI(t.Value)
	case KindBlank:
		return extrdf.BlankNode(t.Value)
	default:
		return extrdf.Literal{Value: t.Value, Datatype: extrdf.IRI(t.Datatype), Lang: t.Lang}
	}
}
