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

import (
	"fmt"

	spgeom "github.com/go-spatial/geom"
)

// fromGeom reduces any go-spatial/geom.Geometry this index supports into
// our normalised Shape. Holes in polygons are intentionally dropped: the
// specification's refinement only needs containment/intersection against
// the outer boundary of the resources it indexes (parks, buildings,
// regions), never donut geometries with meaningful interior holes.
func fromGeom(g spgeom.Geometry) (Shape, error) {
	switch v := g.(type) {
	case spgeom.Point:
		return Shape{Kind: KindPoint, Points: []Point{{X: v.X(), Y: v.Y()}}}, nil
	case spgeom.MultiPoint:
		pts := make([]Point, len(v))
		for i, p := range v {
			pts[i] = Point{X: p[0], Y: p[1]}
		}
		return Shape{Kind: KindPoint, Points: pts}, nil
	case spgeom.LineString:
		return Shape{Kind: KindLine, Lines: []Ring{lineToRing(v)}}, nil
	case spgeom.MultiLineString:
		lines := make([]Ring, len(v))
		for i, l := range v {
			lines[i] = coordsToRing(l)
		}
		return Shape{Kind: KindLine, Lines: lines}, nil
	case spgeom.Polygon:
		return Shape{Kind: KindPolygon, Polygons: []Ring{polygonShell(v)}}, nil
	case spgeom.MultiPolygon:
		rings := make([]Ring, len(v))
		for i, poly := range v {
			rings[i] = polygonShell(poly)
		}
		return Shape{Kind: KindPolygon, Polygons: rings}, nil
	default:
		return Shape{}, fmt.Errorf("unsupported geometry type %T", g)
	}
}

func lineToRing(l spgeom.LineString) Ring {
	return coordsToRing(l)
}

func coordsToRing(coords [][2]float64) Ring {
	r := make(Ring, len(coords))
	for i, c := range coords {
		r[i] = Point{X: c[0], Y: c[1]}
	}
	return r
}

func polygonShell(p spgeom.Polygon) Ring {
	if len(p) == 0 {
		return nil
	}
	return coordsToRing(p[0])
}

// toGeom converts a Shape back into a go-spatial/geom.Geometry for
// WKT re-encoding (round-trip tests, debug output).
func toGeom(s Shape) spgeom.Geometry {
	switch s.Kind {
	case KindPoint:
		if len(s.Points) == 1 {
			return spgeom.Point{s.Points[0].X, s.Points[0].Y}
		}
		pts := make(spgeom.MultiPoint, len(s.Points))
		for i, p := range s.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		return pts
	case KindLine:
		if len(s.Lines) == 1 {
			return spgeom.LineString(ringToCoords(s.Lines[0]))
		}
		lines := make(spgeom.MultiLineString, len(s.Lines))
		for i, r := range s.Lines {
			lines[i] = ringToCoords(r)
		}
		return lines
	default:
		if len(s.Polygons) == 1 {
			return spgeom.Polygon{ringToCoords(s.Polygons[0])}
		}
		polys := make(spgeom.MultiPolygon, len(s.Polygons))
		for i, r := range s.Polygons {
			polys[i] = spgeom.Polygon{ringToCoords(r)}
		}
		return polys
	}
}

func ringToCoords(r Ring) [][2]float64 {
	out := make([][2]float64, len(r))
	for i, p := range r {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
