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

// Package query is the search pipeline: spatial operand construction
// from request parameters, and the lazy filter stages (type, text,
// offset, limit) layered over a façade's coarse result set.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
	"github.com/wwaites/linkedspatialindex/internal/lsierr"
)

// earthRadiusKm is the magic number the circle operand's degree-delta
// approximation is built on; valid only away from the poles and for
// small radii (spec.md §4.4).
const earthRadiusKm = 6371.0

// pointBufferDeg is the fixed buffer applied to any operand that
// reduces to a bare point before it is passed to the index (spec.md
// §4.4, §8 boundary).
const pointBufferDeg = 0.0001

// ParseOperand builds the query Shape from exactly one of wkt, bbox, or
// circle (whichever is non-empty); it is a BadRequest error to supply
// none or more than one, or for the one supplied to be malformed.
func ParseOperand(wkt, bbox, circle string) (geospatial.Shape, error) {
	present := 0
	for _, v := range []string{wkt, bbox, circle} {
		if v != "" {
			present++
		}
	}
	if present == 0 {
		return geospatial.Shape{}, lsierr.New(lsierr.BadRequest, "missing or invalid spatial argument (bbox or wkt)")
	}
	if present > 1 {
		return geospatial.Shape{}, lsierr.New(lsierr.BadRequest, "only one spatial argument (wkt, bbox or circle) may be given")
	}

	var shape geospatial.Shape
	var err error
	switch {
	case wkt != "":
		shape, err = parseWKTOperand(wkt)
	case bbox != "":
		shape, err = parseBBoxOperand(bbox)
	default:
		shape, err = parseCircleOperand(circle)
	}
	if err != nil {
		return geospatial.Shape{}, err
	}

	if shape.Kind == geospatial.KindPoint && len(shape.Points) == 1 {
		shape = geospatial.BufferPoint(shape.Points[0], pointBufferDeg)
	}
	return shape, nil
}

func parseWKTOperand(raw string) (geospatial.Shape, error) {
	shape, err := geospatial.ParseWKT(geospatial.NormalizeWKT(raw))
	if err != nil {
		return geospatial.Shape{}, lsierr.Wrap(lsierr.BadRequest, "invalid wkt", err)
	}
	return shape, nil
}

// parseBBoxOperand converts "minY,minX,maxY,maxX" into the
// counter-clockwise rectangle spec.md §4.4 specifies.
func parseBBoxOperand(raw string) (geospatial.Shape, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 4 {
		return geospatial.Shape{}, lsierr.New(lsierr.BadRequest, "invalid bounding box")
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return geospatial.Shape{}, lsierr.Wrap(lsierr.BadRequest, "invalid bounding box", err)
		}
		vals[i] = v
	}
	minY, minX, maxY, maxX := vals[0], vals[1], vals[2], vals[3]
	ring := geospatial.Ring{
		{X: minX, Y: minY},
		{X: minX, Y: maxY},
		{X: maxX, Y: maxY},
		{X: maxX, Y: minY},
		{X: minX, Y: minY},
	}
	return geospatial.Shape{Kind: geospatial.KindPolygon, Polygons: []geospatial.Ring{ring}}, nil
}

// parseCircleOperand converts "centerY,centerX,radiusKm" into a point
// buffered by the degree-delta approximation, preserving the original
// implementation's longitude-in-cos quirk verbatim (spec.md §9).
func parseCircleOperand(raw string) (geospatial.Shape, error) {
	fields := strings.Split(raw, ",")
	if len(fields) != 3 {
		return geospatial.Shape{}, lsierr.New(lsierr.BadRequest, "invalid circle specification")
	}
	vals := make([]float64, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return geospatial.Shape{}, lsierr.Wrap(lsierr.BadRequest, "invalid circle specification", err)
		}
		vals[i] = v
	}
	y, x, r := vals[0], vals[1], vals[2]

	delta := radToDeg(r / (earthRadiusKm * math.Cos(degToRad(x))))
	return geospatial.BufferPoint(geospatial.Point{X: x, Y: y}, delta), nil
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// ParseLimit parses the limit query parameter, defaulting to 10 and
// capping at 1000 (spec.md §4.4 step 7, §8 boundary).
func ParseLimit(raw string) int {
	if raw == "" {
		return 10
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 10
	}
	if n > 1000 {
		n = 1000
	}
	return n
}

// ParseOffset parses the offset query parameter, defaulting to 0.
func ParseOffset(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Predicate identifies which façade operation a search uses.
type Predicate string

const (
	PredicateNearest    Predicate = "nearest"
	PredicateIntersects Predicate = "intersects"
	PredicateContains   Predicate = "contains"
)

// ParsePredicate validates the predicate query parameter, defaulting to
// "nearest".
func ParsePredicate(raw string) (Predicate, error) {
	if raw == "" {
		return PredicateNearest, nil
	}
	switch Predicate(raw) {
	case PredicateNearest, PredicateIntersects, PredicateContains:
		return Predicate(raw), nil
	default:
		return "", lsierr.New(lsierr.BadRequest, "predicate must be one of intersects, contains, nearest")
	}
}
