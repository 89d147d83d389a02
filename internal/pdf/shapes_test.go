package pdf

import (
	"strings"
	"testing"
)

func scanString(t *testing.T, content string) []ShapeRecord {
	t.Helper()
	shapes, err := scanContent(strings.NewReader(content), 1)
	if err != nil {
		t.Fatalf("scanContent failed: %v", err)
	}
	return shapes
}

func TestScanContentStrokedLine(t *testing.T) {
	shapes := scanString(t, "100 200 m 300 200 l S")

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d: %v", len(shapes), shapes)
	}
	s := shapes[0]
	if s.ElementType != ShapeLine {
		t.Errorf("element_type = %q, want line", s.ElementType)
	}
	if s.X0 != 100 || s.Y0 != 200 || s.X1 != 300 || s.Y1 != 200 {
		t.Errorf("coordinates = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
	if s.Painted != "S" || s.Page != 1 {
		t.Errorf("painted=%q page=%d", s.Painted, s.Page)
	}
}

func TestScanContentPolyline(t *testing.T) {
	shapes := scanString(t, "0 0 m 10 0 l 10 10 l S")

	if len(shapes) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(shapes))
	}
	if shapes[1].X0 != 10 || shapes[1].Y0 != 0 || shapes[1].X1 != 10 || shapes[1].Y1 != 10 {
		t.Errorf("second segment = %+v", shapes[1])
	}
}

func TestScanContentFilledRectangle(t *testing.T) {
	shapes := scanString(t, "50 60 200 30 re f")

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	s := shapes[0]
	if s.ElementType != ShapeRectangle {
		t.Errorf("element_type = %q, want rectangle", s.ElementType)
	}
	if s.X0 != 50 || s.Y0 != 60 || s.X1 != 250 || s.Y1 != 90 {
		t.Errorf("bounds = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
	if s.Painted != "f" {
		t.Errorf("painted = %q, want f", s.Painted)
	}
}

func TestScanContentDiscardedPath(t *testing.T) {
	// n ends the path without painting, so nothing is reported.
	shapes := scanString(t, "100 200 m 300 200 l n 0 0 50 50 re n")
	if len(shapes) != 0 {
		t.Errorf("expected no shapes, got %v", shapes)
	}
}

func TestScanContentTranslationMatrix(t *testing.T) {
	shapes := scanString(t, "1 0 0 1 100 50 cm 0 0 m 10 0 l S")

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	s := shapes[0]
	if s.X0 != 100 || s.Y0 != 50 || s.X1 != 110 || s.Y1 != 50 {
		t.Errorf("translated segment = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
}

func TestScanContentScaleMatrix(t *testing.T) {
	shapes := scanString(t, "2 0 0 2 0 0 cm 10 10 20 5 re S")

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	s := shapes[0]
	if s.X0 != 20 || s.Y0 != 20 || s.X1 != 60 || s.Y1 != 30 {
		t.Errorf("scaled rectangle = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
}

func TestScanContentGraphicsStateNesting(t *testing.T) {
	// The translation applies only inside the q/Q pair.
	content := "q 1 0 0 1 100 0 cm 0 0 m 10 0 l S Q 0 0 m 10 0 l S"
	shapes := scanString(t, content)

	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	if shapes[0].X0 != 100 {
		t.Errorf("inner segment X0 = %v, want 100", shapes[0].X0)
	}
	if shapes[1].X0 != 0 {
		t.Errorf("outer segment X0 = %v, want 0", shapes[1].X0)
	}
}

func TestScanContentClosedSubpath(t *testing.T) {
	// h closes back to the subpath start, adding the final edge.
	shapes := scanString(t, "0 0 m 10 0 l 10 10 l h S")

	if len(shapes) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(shapes))
	}
	last := shapes[2]
	if last.X0 != 10 || last.Y0 != 10 || last.X1 != 0 || last.Y1 != 0 {
		t.Errorf("closing segment = %+v", last)
	}
}

func TestScanContentBezierMovesCurrentPoint(t *testing.T) {
	// The curve itself is not reported, but the current point advances to
	// its endpoint so the following line starts there.
	shapes := scanString(t, "0 0 m 1 1 2 2 30 40 c 50 40 l S")

	if len(shapes) != 1 {
		t.Fatalf("expected 1 segment, got %d: %v", len(shapes), shapes)
	}
	s := shapes[0]
	if s.X0 != 30 || s.Y0 != 40 || s.X1 != 50 || s.Y1 != 40 {
		t.Errorf("segment = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
}

func TestScanContentIgnoresTextAndNames(t *testing.T) {
	content := "BT /F1 12 Tf (Hello (nested) world) Tj ET 0 0 m 10 0 l S"
	shapes := scanString(t, content)

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d: %v", len(shapes), shapes)
	}
}

func TestScanContentSkipsInlineImage(t *testing.T) {
	content := "BI /W 2 /H 2 ID \x00\x01mS\x02\xff\nEI 0 0 m 10 0 l S"
	shapes := scanString(t, content)

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape after the inline image, got %d: %v", len(shapes), shapes)
	}
	if shapes[0].Painted != "S" {
		t.Errorf("painted = %q, want S", shapes[0].Painted)
	}
}

func TestScanContentMalformedInput(t *testing.T) {
	// Operators without operands must not panic or emit shapes.
	shapes := scanString(t, "l S re f cm q Q h")
	if len(shapes) != 0 {
		t.Errorf("expected no shapes from malformed input, got %v", shapes)
	}
}
