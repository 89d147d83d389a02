package pdf

import (
	"math"

	"github.com/ledongthuc/pdf"
)

// US Letter, the fallback when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// pageSize resolves the page dimensions in points from the MediaBox,
// following Parent links since the entry is inheritable.
func pageSize(page pdf.Page) (width, height float64) {
	v := page.V
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		mb := v.Key("MediaBox")
		if !mb.IsNull() && mb.Len() == 4 {
			x0 := numberAt(mb, 0)
			y0 := numberAt(mb, 1)
			x1 := numberAt(mb, 2)
			y1 := numberAt(mb, 3)
			w := math.Abs(x1 - x0)
			h := math.Abs(y1 - y0)
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

// numberAt reads the numeric array element at index i, accepting either
// integer or real values.
func numberAt(v pdf.Value, i int) float64 {
	e := v.Index(i)
	switch e.Kind() {
	case pdf.Integer:
		return float64(e.Int64())
	case pdf.Real:
		return e.Float64()
	default:
		return 0
	}
}

// round2 rounds to two decimals, the precision used for emitted coordinates.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
