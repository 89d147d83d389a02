package pdf

import (
	"fmt"
	"io"
	"math"

	"github.com/ledongthuc/pdf"

	scanerrors "github.com/formlens/formlens/internal/pdf/errors"
)

// Shape element types.
const (
	ShapeLine      = "line"
	ShapeRectangle = "rectangle"
)

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identityMatrix = matrix{1, 0, 0, 1, 0, 0}

// mul returns m applied before n, the composition used by the cm operator.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// apply transforms a point through the matrix.
func (m matrix) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Shapes extracts vector drawings from page content streams
type Shapes struct{}

// NewShapes creates a new vector shape extractor
func NewShapes() *Shapes {
	return &Shapes{}
}

// PageShapes reads the decoded content stream of a page and returns the line
// and rectangle drawings found in it, in page coordinates.
func (s *Shapes) PageShapes(page pdf.Page, pageNumber int) ([]ShapeRecord, error) {
	var shapes []ShapeRecord

	err := scanerrors.SafePageWalk(pageNumber, func() error {
		reader, err := pageContentReader(page)
		if err != nil {
			return scanerrors.NewPageError(scanerrors.ErrorTypeInvalidStream, pageNumber, err.Error(), err)
		}

		shapes, err = scanContent(reader, pageNumber)
		if err != nil {
			return scanerrors.NewPageError(scanerrors.ErrorTypeInvalidStream, pageNumber, err.Error(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return shapes, nil
}

// pageContentReader returns a reader over the page's decoded content
// stream(s). Multiple streams are concatenated, as the PDF model requires.
func pageContentReader(page pdf.Page) (io.Reader, error) {
	contents := page.V.Key("Contents")
	if contents.IsNull() {
		return nil, fmt.Errorf("page has no content stream")
	}

	switch contents.Kind() {
	case pdf.Stream:
		return contents.Reader(), nil
	case pdf.Array:
		readers := make([]io.Reader, 0, 2*contents.Len())
		for i := 0; i < contents.Len(); i++ {
			part := contents.Index(i)
			if part.Kind() != pdf.Stream {
				continue
			}
			if len(readers) > 0 {
				readers = append(readers, newSpaceReader())
			}
			readers = append(readers, part.Reader())
		}
		if len(readers) == 0 {
			return nil, fmt.Errorf("content array holds no streams")
		}
		return io.MultiReader(readers...), nil
	default:
		return nil, fmt.Errorf("unexpected Contents kind %v", contents.Kind())
	}
}

func newSpaceReader() io.Reader {
	return &byteReader{b: '\n'}
}

type byteReader struct {
	b    byte
	done bool
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.done || len(p) == 0 {
		return 0, io.EOF
	}
	p[0] = r.b
	r.done = true
	return 1, nil
}

// pathPoint is a point on the current path in page coordinates.
type pathPoint struct {
	x, y float64
}

// scanContent interprets the path construction and painting operators of a
// content stream and emits shape records. Graphics state nesting (q/Q) and
// the current transformation matrix (cm) are honored so emitted coordinates
// are in page points. Bezier operators only move the current point; their
// curves are not reported as shapes.
func scanContent(r io.Reader, pageNumber int) ([]ShapeRecord, error) {
	lexer := newContentLexer(r)

	ctm := identityMatrix
	var ctmStack []matrix

	var operands []float64
	var segments [][2]pathPoint
	var rects [][2]pathPoint
	var current, subpathStart pathPoint
	hasCurrent := false

	var shapes []ShapeRecord

	clearPath := func() {
		segments = segments[:0]
		rects = rects[:0]
		hasCurrent = false
	}

	emit := func(op string) {
		for _, seg := range segments {
			shapes = append(shapes, ShapeRecord{
				ElementType: ShapeLine,
				X0:          round2(seg[0].x),
				Y0:          round2(seg[0].y),
				X1:          round2(seg[1].x),
				Y1:          round2(seg[1].y),
				Painted:     op,
				Page:        pageNumber,
			})
		}
		for _, rect := range rects {
			shapes = append(shapes, ShapeRecord{
				ElementType: ShapeRectangle,
				X0:          round2(rect[0].x),
				Y0:          round2(rect[0].y),
				X1:          round2(rect[1].x),
				Y1:          round2(rect[1].y),
				Painted:     op,
				Page:        pageNumber,
			})
		}
		clearPath()
	}

	closeSubpath := func() {
		if hasCurrent && current != subpathStart {
			segments = append(segments, [2]pathPoint{current, subpathStart})
			current = subpathStart
		}
	}

	takeOperands := func(n int) []float64 {
		if len(operands) < n {
			return nil
		}
		return operands[len(operands)-n:]
	}

	for {
		tok := lexer.nextToken()
		if tok.kind == tokenEOF {
			break
		}

		switch tok.kind {
		case tokenNumber:
			operands = append(operands, tok.num)
			continue
		case tokenName, tokenString, tokenArrayStart, tokenArrayEnd, tokenDictStart, tokenDictEnd:
			// Non-numeric operands belong to operators this scanner does
			// not interpret.
			continue
		case tokenOperator:
			// Handled below.
		default:
			continue
		}

		switch tok.value {
		case "q":
			ctmStack = append(ctmStack, ctm)
		case "Q":
			if n := len(ctmStack); n > 0 {
				ctm = ctmStack[n-1]
				ctmStack = ctmStack[:n-1]
			}
		case "cm":
			if ops := takeOperands(6); ops != nil {
				ctm = matrix{ops[0], ops[1], ops[2], ops[3], ops[4], ops[5]}.mul(ctm)
			}
		case "m":
			if ops := takeOperands(2); ops != nil {
				x, y := ctm.apply(ops[0], ops[1])
				current = pathPoint{x, y}
				subpathStart = current
				hasCurrent = true
			}
		case "l":
			if ops := takeOperands(2); ops != nil && hasCurrent {
				x, y := ctm.apply(ops[0], ops[1])
				next := pathPoint{x, y}
				segments = append(segments, [2]pathPoint{current, next})
				current = next
			}
		case "re":
			if ops := takeOperands(4); ops != nil {
				rect := transformedRect(ctm, ops[0], ops[1], ops[2], ops[3])
				rects = append(rects, rect)
				// re starts a new subpath at its corner.
				x, y := ctm.apply(ops[0], ops[1])
				current = pathPoint{x, y}
				subpathStart = current
				hasCurrent = true
			}
		case "c":
			if ops := takeOperands(6); ops != nil && hasCurrent {
				x, y := ctm.apply(ops[4], ops[5])
				current = pathPoint{x, y}
			}
		case "v", "y":
			if ops := takeOperands(4); ops != nil && hasCurrent {
				x, y := ctm.apply(ops[2], ops[3])
				current = pathPoint{x, y}
			}
		case "h":
			closeSubpath()
		case "S", "f", "F", "f*", "B", "B*":
			emit(tok.value)
		case "s", "b", "b*":
			closeSubpath()
			emit(tok.value)
		case "n":
			clearPath()
		case "W", "W*":
			// Clipping uses the path but does not paint it; the following
			// painting operator decides what happens.
		case "BI":
			lexer.skipInlineImage()
		}

		operands = operands[:0]
	}

	return shapes, nil
}

// transformedRect maps the rectangle through the CTM and returns its
// axis-aligned bounds, lower-left then upper-right.
func transformedRect(ctm matrix, x, y, w, h float64) [2]pathPoint {
	corners := [4][2]float64{
		{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h},
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		px, py := ctm.apply(c[0], c[1])
		minX = math.Min(minX, px)
		minY = math.Min(minY, py)
		maxX = math.Max(maxX, px)
		maxY = math.Max(maxY, py)
	}

	return [2]pathPoint{{minX, minY}, {maxX, maxY}}
}
