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

// Package geospatial wraps github.com/go-spatial/geom for WKT/GeoJSON
// codecs and reduces every supported shape to a small internal
// representation (points, rings, polygons) that the sweep-and-prune
// refinement in predicate.go operates on directly. The boolean relate
// predicates themselves (Intersects/Contains) are this package's own
// code: they are the "hard core" the specification calls out explicitly
// (§4.2, §9 "sweep and prune"), grounded on the ray-casting and segment
// intersection approach the teacher's own vendored geometry library
// (github.com/ctessum/geom, see within.go/intersection.go) uses.
package geospatial

import (
	"fmt"
	"math"
	"strings"

	spgeom "github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"
	"github.com/go-spatial/geom/encoding/wkt"
)

// Point is a single coordinate (longitude=X, latitude=Y, CRS84 order).
type Point struct{ X, Y float64 }

// Ring is a path of points; used both for (open) linestrings and for
// closed polygon shells.
type Ring []Point

// Shape is the normalised form of every geometry this index handles.
type Shape struct {
	Kind     Kind
	Points   []Point // Point, MultiPoint
	Lines    []Ring  // LineString, MultiLineString
	Polygons []Ring  // one shell per Polygon/MultiPolygon member; holes are dropped (see fromGeom)
}

// Kind tags the geometry type of a Shape.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

// Envelope is the bounding box of a geometry, in the field order fixed
// by the specification's data model: (minx, maxx, miny, maxy).
type Envelope struct {
	MinX, MaxX, MinY, MaxY float64
}

// WorldEnvelope is the whole-earth bounding box. Stale-entry eviction in
// rtree.Tree.Upsert deletes the stored entry directly and does not use it.
var WorldEnvelope = Envelope{MinX: -180, MaxX: 180, MinY: -90, MaxY: 90}

// ParseWKT parses a normalised WKT string into a Shape.
func ParseWKT(s string) (Shape, error) {
	g, err := wkt.DecodeString(s)
	if err != nil {
		return Shape{}, fmt.Errorf("parsing wkt: %w", err)
	}
	return fromGeom(g)
}

// EncodeWKT renders a Shape back to WKT, used for round-trip tests.
func EncodeWKT(s Shape) (string, error) {
	g := toGeom(s)
	out, err := wkt.EncodeString(g)
	if err != nil {
		return "", fmt.Errorf("encoding wkt: %w", err)
	}
	return out, nil
}

// NormalizeWKT collapses an asWKT literal, which may carry a leading CRS
// URI token, into bare, whitespace-collapsed WKT (spec.md §4.3 step 1).
func NormalizeWKT(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	// A leading CRS token always looks like a URI; WKT geometry keywords
	// never do.
	if strings.Contains(fields[0], "://") {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// GeoJSONToWKT converts a GeoJSON geometry (or a Feature wrapping one)
// payload to normalised WKT.
func GeoJSONToWKT(data []byte) (string, error) {
	g, err := geojson.Decode(data)
	if err != nil {
		return "", fmt.Errorf("decoding geojson: %w", err)
	}
	out, err := wkt.EncodeString(g)
	if err != nil {
		return "", fmt.Errorf("encoding geojson geometry as wkt: %w", err)
	}
	return NormalizeWKT(out), nil
}

// Envelope computes the exact bounding box of a Shape.
func (s Shape) Envelope() Envelope {
	e := Envelope{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	extend := func(p Point) {
		e.MinX = math.Min(e.MinX, p.X)
		e.MaxX = math.Max(e.MaxX, p.X)
		e.MinY = math.Min(e.MinY, p.Y)
		e.MaxY = math.Max(e.MaxY, p.Y)
	}
	for _, p := range s.Points {
		extend(p)
	}
	for _, r := range s.Lines {
		for _, p := range r {
			extend(p)
		}
	}
	for _, r := range s.Polygons {
		for _, p := range r {
			extend(p)
		}
	}
	return e
}

// Centroid returns a representative centre point: the point itself for
// point geometries, otherwise the vertex-averaged centroid of the first
// ring/line (adequate for nearest-neighbour ranking, which only needs a
// single representative coordinate per spec.md §4.2).
func (s Shape) Centroid() Point {
	switch s.Kind {
	case KindPoint:
		if len(s.Points) > 0 {
			return s.Points[0]
		}
	case KindLine:
		if len(s.Lines) > 0 {
			return ringCentroid(s.Lines[0])
		}
	case KindPolygon:
		if len(s.Polygons) > 0 {
			return polygonCentroid(s.Polygons[0])
		}
	}
	return Point{}
}

func ringCentroid(r Ring) Point {
	if len(r) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range r {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(r))
	return Point{X: sx / n, Y: sy / n}
}

// polygonCentroid computes the area-weighted centroid of a polygon ring
// using the standard shoelace-based formula.
func polygonCentroid(r Ring) Point {
	if len(r) < 3 {
		return ringCentroid(r)
	}
	var area, cx, cy float64
	for i := 0; i < len(r); i++ {
		p0 := r[i]
		p1 := r[(i+1)%len(r)]
		cross := p0.X*p1.Y - p1.X*p0.Y
		area += cross
		cx += (p0.X + p1.X) * cross
		cy += (p0.Y + p1.Y) * cross
	}
	area /= 2
	if area == 0 {
		return ringCentroid(r)
	}
	cx /= 6 * area
	cy /= 6 * area
	return Point{X: cx, Y: cy}
}

// BufferPoint approximates a circular buffer of radiusDeg around centre
// as a 32-sided regular polygon. A single, fixed-shape buffer function is
// all the query pipeline needs (circle operands and the mandatory
// point-operand buffer of spec.md §4.4), so this is hand-rolled rather
// than pulled from a general-purpose buffering engine.
func BufferPoint(centre Point, radiusDeg float64) Shape {
	const segments = 32
	ring := make(Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring = append(ring, Point{
			X: centre.X + radiusDeg*math.Cos(theta),
			Y: centre.Y + radiusDeg*math.Sin(theta),
		})
	}
	ring = append(ring, ring[0])
	return Shape{Kind: KindPolygon, Polygons: []Ring{ring}}
}

// Blank reference to spgeom.Geometry, the interface whose concrete types
// fromGeom distinguishes.
var _ spgeom.Geometry
