package vision

import (
	"image"
	"math"
)

// Template matching parameters.
const (
	DefaultTemplateSize      = 20 // pixels, checkbox edge length at 150 DPI
	DefaultMatchThreshold    = 0.6
	templateBorderInset      = 2
	templateBorderThickness  = 2
	matchSuppressionRadiusPx = 3
)

// Match is a template match location with its correlation score.
type Match struct {
	X, Y  int
	Score float64
}

// EmptyBoxTemplate renders the checkbox search template: a white square with
// a black border inset from the edges.
func EmptyBoxTemplate(size int) *image.Gray {
	tmpl := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			tmpl.SetGray(x, y, grayPixel(255))
		}
	}

	lo := templateBorderInset
	hi := size - templateBorderInset - 1
	for t := 0; t < templateBorderThickness; t++ {
		for i := lo + t; i <= hi-t; i++ {
			tmpl.SetGray(i, lo+t, grayPixel(0))
			tmpl.SetGray(i, hi-t, grayPixel(0))
			tmpl.SetGray(lo+t, i, grayPixel(0))
			tmpl.SetGray(hi-t, i, grayPixel(0))
		}
	}

	return tmpl
}

// MatchTemplate slides the template over the image computing the normalized
// zero-mean cross-correlation at each position and returns the locations
// scoring at or above the threshold. Overlapping hits within a few pixels of
// a stronger hit are suppressed.
func MatchTemplate(gray, tmpl *image.Gray, threshold float64) []Match {
	iw, ih := gray.Bounds().Dx(), gray.Bounds().Dy()
	tw, th := tmpl.Bounds().Dx(), tmpl.Bounds().Dy()
	if tw > iw || th > ih {
		return nil
	}

	tMean, tNorm := templateStats(tmpl, tw, th)
	if tNorm == 0 {
		return nil
	}

	scores := make([]float64, (iw-tw+1)*(ih-th+1))
	cols := iw - tw + 1
	for y := 0; y+th <= ih; y++ {
		for x := 0; x+tw <= iw; x++ {
			scores[y*cols+x] = correlate(gray, tmpl, x, y, tw, th, tMean, tNorm)
		}
	}

	var matches []Match
	rows := ih - th + 1
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s := scores[y*cols+x]
			if s < threshold {
				continue
			}
			if !isLocalScoreMax(scores, cols, rows, x, y, s) {
				continue
			}
			matches = append(matches, Match{X: x, Y: y, Score: s})
		}
	}

	return matches
}

func isLocalScoreMax(scores []float64, cols, rows, x, y int, s float64) bool {
	r := matchSuppressionRadiusPx
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
				continue
			}
			n := scores[ny*cols+nx]
			if n > s {
				return false
			}
			if n == s && (ny < y || (ny == y && nx < x)) {
				return false
			}
		}
	}
	return true
}

func templateStats(tmpl *image.Gray, tw, th int) (mean, norm float64) {
	sum := 0.0
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sum += float64(tmpl.GrayAt(x, y).Y)
		}
	}
	mean = sum / float64(tw*th)

	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			d := float64(tmpl.GrayAt(x, y).Y) - mean
			norm += d * d
		}
	}
	return mean, math.Sqrt(norm)
}

func correlate(gray, tmpl *image.Gray, ox, oy, tw, th int, tMean, tNorm float64) float64 {
	sum := 0.0
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			sum += float64(gray.GrayAt(ox+x, oy+y).Y)
		}
	}
	wMean := sum / float64(tw*th)

	num := 0.0
	wVar := 0.0
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			wd := float64(gray.GrayAt(ox+x, oy+y).Y) - wMean
			td := float64(tmpl.GrayAt(x, y).Y) - tMean
			num += wd * td
			wVar += wd * wd
		}
	}

	wNorm := math.Sqrt(wVar)
	if wNorm == 0 {
		return 0
	}
	return num / (wNorm * tNorm)
}
