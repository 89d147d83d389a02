package vision

import (
	"image"
	"math"
	"sort"
)

// Hough transform parameters matching the layout scan defaults.
const (
	DefaultHoughThreshold = 200
	DefaultMinLineLength  = 100
	DefaultMaxLineGap     = 5

	houghThetaSteps = 180
)

// Segment is a detected line segment in pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// HoughSegments extracts line segments from a binary edge image. The
// accumulator uses 1-pixel rho resolution and 1-degree theta resolution.
// Bins reaching threshold votes are walked across the image to split the
// supporting pixels into runs, tolerating gaps up to maxGap; runs shorter
// than minLength are discarded. The edge image must be zero-origin.
func HoughSegments(edges *image.Gray, threshold, minLength, maxGap int) []Segment {
	bounds := edges.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	maxRho := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	rhoBins := 2*maxRho + 1

	sin := make([]float64, houghThetaSteps)
	cos := make([]float64, houghThetaSteps)
	for t := 0; t < houghThetaSteps; t++ {
		rad := float64(t) * math.Pi / float64(houghThetaSteps)
		sin[t] = math.Sin(rad)
		cos[t] = math.Cos(rad)
	}

	acc := make([]int32, rhoBins*houghThetaSteps)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.GrayAt(x, y).Y == 0 {
				continue
			}
			for t := 0; t < houghThetaSteps; t++ {
				rho := int(math.Round(float64(x)*cos[t] + float64(y)*sin[t]))
				acc[(rho+maxRho)*houghThetaSteps+t]++
			}
		}
	}

	peaks := findAccumulatorPeaks(acc, rhoBins, maxRho, threshold)

	var segments []Segment
	claimed := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range peaks {
		runs := walkLine(edges, claimed, w, h, p.theta, p.rho, sin, cos, minLength, maxGap)
		segments = append(segments, runs...)
	}

	return segments
}

type houghPeak struct {
	votes int32
	rho   int
	theta int
}

// findAccumulatorPeaks returns local maxima at or above threshold, strongest
// first.
func findAccumulatorPeaks(acc []int32, rhoBins, maxRho int, threshold int) []houghPeak {
	var peaks []houghPeak
	for r := 0; r < rhoBins; r++ {
		for t := 0; t < houghThetaSteps; t++ {
			v := acc[r*houghThetaSteps+t]
			if v < int32(threshold) {
				continue
			}
			if !isAccumulatorMax(acc, rhoBins, r, t, v) {
				continue
			}
			peaks = append(peaks, houghPeak{votes: v, rho: r - maxRho, theta: t})
		}
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].votes > peaks[j].votes })
	return peaks
}

func isAccumulatorMax(acc []int32, rhoBins, r, t int, v int32) bool {
	for dr := -1; dr <= 1; dr++ {
		for dt := -1; dt <= 1; dt++ {
			if dr == 0 && dt == 0 {
				continue
			}
			nr, nt := r+dr, t+dt
			if nr < 0 || nr >= rhoBins || nt < 0 || nt >= houghThetaSteps {
				continue
			}
			n := acc[nr*houghThetaSteps+nt]
			if n > v {
				return false
			}
			// Ties resolve toward the lower index so plateaus yield one peak.
			if n == v && (nr < r || (nr == r && nt < t)) {
				return false
			}
		}
	}
	return true
}

// walkLine traverses the parametric line through the image and collects edge
// pixel runs. Pixels already claimed by a previous segment do not support new
// ones, which keeps near-duplicate peaks from emitting the same segment twice.
func walkLine(edges, claimed *image.Gray, w, h, theta, rho int, sin, cos []float64, minLength, maxGap int) []Segment {
	// Direction vector of the line is perpendicular to its normal.
	dx, dy := -sin[theta], cos[theta]
	// Point on the line closest to the origin.
	px, py := float64(rho)*cos[theta], float64(rho)*sin[theta]

	diag := float64(w + h)
	var segments []Segment

	type pt struct{ x, y int }
	var run []pt
	gap := 0
	lastX, lastY := -1, -1

	flush := func() {
		if len(run) == 0 {
			return
		}
		first, last := run[0], run[len(run)-1]
		// The parametric walk may traverse right-to-left depending on theta;
		// emitted segments always read left-to-right, top-to-bottom.
		if last.x < first.x || (last.x == first.x && last.y < first.y) {
			first, last = last, first
		}
		length := math.Hypot(float64(last.x-first.x), float64(last.y-first.y))
		if length >= float64(minLength) {
			for _, p := range run {
				claimed.SetGray(p.x, p.y, grayPixel(edgeOn))
			}
			segments = append(segments, Segment{X1: first.x, Y1: first.y, X2: last.x, Y2: last.y})
		}
		run = run[:0]
	}

	for s := -diag; s <= diag; s++ {
		x := int(math.Round(px + s*dx))
		y := int(math.Round(py + s*dy))
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y

		if hasEdgeNear(edges, w, h, x, y) && claimed.GrayAt(x, y).Y == 0 {
			run = append(run, pt{x, y})
			gap = 0
			continue
		}

		if len(run) > 0 {
			gap++
			if gap > maxGap {
				flush()
				gap = 0
			}
		}
	}
	flush()

	return segments
}

// hasEdgeNear checks the pixel and its immediate neighbors, absorbing the
// one-pixel jitter left by rounding the parametric walk.
func hasEdgeNear(edges *image.Gray, w, h, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if edges.GrayAt(nx, ny).Y != 0 {
				return true
			}
		}
	}
	return false
}
