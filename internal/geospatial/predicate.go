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

package geospatial

// Intersects reports whether a and b share any point. Used by the
// façade's sweep-and-prune refinement after the R-tree's envelope-only
// coarse filter has already ruled out disjoint bounding boxes.
func Intersects(a, b Shape) bool {
	if !a.Envelope().overlaps(b.Envelope()) {
		return false
	}
	for _, pa := range allPoints(a) {
		if pointIn(pa, b) || onBoundary(pa, b) {
			return true
		}
	}
	for _, pb := range allPoints(b) {
		if pointIn(pb, a) || onBoundary(pb, a) {
			return true
		}
	}
	for _, ra := range allRings(a) {
		for _, rb := range allRings(b) {
			if ringsCross(ra, rb) {
				return true
			}
		}
	}
	return false
}

// Contains reports whether outer entirely contains inner (outer.Contains(inner)).
func Contains(outer, inner Shape) bool {
	if !outer.Envelope().contains(inner.Envelope()) {
		return false
	}
	for _, p := range allPoints(inner) {
		if !pointIn(p, outer) && !onBoundary(p, outer) {
			return false
		}
	}
	for _, r := range allRings(inner) {
		for _, p := range r {
			if !pointIn(p, outer) && !onBoundary(p, outer) {
				return false
			}
		}
	}
	return true
}

func (e Envelope) overlaps(o Envelope) bool {
	return e.MinX <= o.MaxX && e.MaxX >= o.MinX && e.MinY <= o.MaxY && e.MaxY >= o.MinY
}

func (e Envelope) contains(o Envelope) bool {
	return e.MinX <= o.MinX && e.MaxX >= o.MaxX && e.MinY <= o.MinY && e.MaxY >= o.MaxY
}

func allPoints(s Shape) []Point {
	switch s.Kind {
	case KindPoint:
		return s.Points
	case KindLine:
		var out []Point
		for _, r := range s.Lines {
			out = append(out, r...)
		}
		return out
	default:
		var out []Point
		for _, r := range s.Polygons {
			out = append(out, r...)
		}
		return out
	}
}

func allRings(s Shape) []Ring {
	switch s.Kind {
	case KindLine:
		return s.Lines
	case KindPolygon:
		return s.Polygons
	default:
		return nil
	}
}

// pointIn determines point-in-shape membership. Point and line shapes
// have no interior, so only polygon shapes can contain a point; the
// caller is responsible for also checking boundary membership via
// onBoundary where touching counts (spec.md §4.2: contains/intersects
// both treat edge-touching as a match).
func pointIn(pt Point, s Shape) bool {
	if s.Kind != KindPolygon {
		return false
	}
	in := false
	for _, ring := range s.Polygons {
		if rayCast(pt, ring) {
			in = !in
		}
	}
	return in
}

// rayCast is the standard even-odd ray casting test, adapted from the
// teacher's vendored github.com/ctessum/geom (within.go pointInPolygon).
func rayCast(pt Point, ring Ring) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		pi, pj := ring[i], ring[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xInt := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < xInt {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onBoundary(pt Point, s Shape) bool {
	for _, ring := range allRings(s) {
		if pointOnRing(pt, ring) {
			return true
		}
	}
	for _, p := range s.Points {
		if p == pt {
			return true
		}
	}
	return false
}

func pointOnRing(pt Point, ring Ring) bool {
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		if pointOnSegment(pt, a, b) {
			return true
		}
	}
	return false
}

func pointOnSegment(pt, a, b Point) bool {
	cross := (pt.Y-a.Y)*(b.X-a.X) - (pt.X-a.X)*(b.Y-a.Y)
	const eps = 1e-9
	if cross > eps || cross < -eps {
		return false
	}
	if pt.X < min(a.X, b.X)-eps || pt.X > max(a.X, b.X)+eps {
		return false
	}
	if pt.Y < min(a.Y, b.Y)-eps || pt.Y > max(a.Y, b.Y)+eps {
		return false
	}
	return true
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ringsCross reports whether any segment of ra intersects any segment of rb.
// Adapted from the teacher's vendored intersection primitives
// (github.com/ctessum/geom/intersection.go), simplified to a boolean test.
func ringsCross(ra, rb Ring) bool {
	for i := 0; i < len(ra); i++ {
		a0, a1 := ra[i], ra[(i+1)%len(ra)]
		for j := 0; j < len(rb); j++ {
			b0, b1 := rb[j], rb[(j+1)%len(rb)]
			if segmentsIntersect(a0, a1, b0, b1) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p0, p1, p2, p3 Point) bool {
	d1 := cross3(p2, p3, p0)
	d2 := cross3(p2, p3, p1)
	d3 := cross3(p0, p1, p2)
	d4 := cross3(p0, p1, p3)
	if ((d1 > 0) != (d2 > 0)) && ((d3 > 0) != (d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegmentBB(p2, p3, p0) {
		return true
	}
	if d2 == 0 && onSegmentBB(p2, p3, p1) {
		return true
	}
	if d3 == 0 && onSegmentBB(p0, p1, p2) {
		return true
	}
	if d4 == 0 && onSegmentBB(p0, p1, p3) {
		return true
	}
	return false
}

func cross3(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegmentBB(a, b, p Point) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}
