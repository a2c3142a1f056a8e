package query

import (
	"testing"

	"github.com/wwaites/linkedspatialindex/internal/geospatial"
)

func TestParseOperandBBoxCounterClockwise(t *testing.T) {
	shape, err := ParseOperand("", "34.1,-83.6,34.5,-83.2", "")
	if err != nil {
		t.Fatalf("ParseOperand: %v", err)
	}
	if shape.Kind != geospatial.KindPolygon || len(shape.Polygons) != 1 {
		t.Fatalf("shape = %+v, want a single polygon", shape)
	}
	ring := shape.Polygons[0]
	if ring[0] != (geospatial.Point{X: -83.6, Y: 34.1}) {
		t.Fatalf("ring[0] = %+v, want minX,minY first", ring[0])
	}
}

func TestParseOperandWKTPointIsBuffered(t *testing.T) {
	shape, err := ParseOperand("POINT (0 0)", "", "")
	if err != nil {
		t.Fatalf("ParseOperand: %v", err)
	}
	if shape.Kind != geospatial.KindPolygon {
		t.Fatalf("point operand not buffered into a polygon: %+v", shape)
	}
}

func TestParseOperandCircle(t *testing.T) {
	shape, err := ParseOperand("", "", "34.3,-83.4,5")
	if err != nil {
		t.Fatalf("ParseOperand: %v", err)
	}
	if shape.Kind != geospatial.KindPolygon {
		t.Fatalf("circle operand should reduce to a buffered polygon: %+v", shape)
	}
}

func TestParseOperandRequiresExactlyOne(t *testing.T) {
	if _, err := ParseOperand("", "", ""); err == nil {
		t.Fatal("expected error when no spatial argument is given")
	}
}

func TestParseOperandInvalidBBox(t *testing.T) {
	if _, err := ParseOperand("", "not,a,bbox", ""); err == nil {
		t.Fatal("expected error for malformed bbox")
	}
}

func TestParseLimitCapsAt1000(t *testing.T) {
	if got := ParseLimit("5000"); got != 1000 {
		t.Fatalf("ParseLimit(5000) = %d, want 1000", got)
	}
	if got := ParseLimit(""); got != 10 {
		t.Fatalf("ParseLimit(\"\") = %d, want default 10", got)
	}
}

func TestParseOffsetDefault(t *testing.T) {
	if got := ParseOffset(""); got != 0 {
		t.Fatalf("ParseOffset(\"\") = %d, want 0", got)
	}
	if got := ParseOffset("3"); got != 3 {
		t.Fatalf("ParseOffset(\"3\") = %d, want 3", got)
	}
}

func TestParsePredicateDefaultAndInvalid(t *testing.T) {
	p, err := ParsePredicate("")
	if err != nil || p != PredicateNearest {
		t.Fatalf("ParsePredicate(\"\") = %v, %v, want nearest, nil", p, err)
	}
	if _, err := ParsePredicate("bogus"); err == nil {
		t.Fatal("expected error for invalid predicate")
	}
}
