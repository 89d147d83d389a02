package vision

import (
	"image"
	"math"
)

// Line classification parameters.
const (
	orientationToleranceDeg = 10.0

	styleSampleCount   = 20
	styleDarkThreshold = 128
	solidDarkFraction  = 0.7
)

// LineConfig holds tunable parameters for line detection.
type LineConfig struct {
	CannyLow      float64
	CannyHigh     float64
	Threshold     int // accumulator votes required for a line
	MinLineLength int // pixels
	MaxLineGap    int // pixels
}

// DefaultLineConfig returns the parameter set tuned for 150 DPI form pages.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		CannyLow:      DefaultCannyLow,
		CannyHigh:     DefaultCannyHigh,
		Threshold:     DefaultHoughThreshold,
		MinLineLength: DefaultMinLineLength,
		MaxLineGap:    DefaultMaxLineGap,
	}
}

// LineDetector finds ruling lines on rasterized pages.
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a line detector with the given configuration.
func NewLineDetector(config LineConfig) *LineDetector {
	return &LineDetector{config: config}
}

// Detect runs edge detection and the Hough transform over the grayscale page
// image and returns classified line records with coordinates in points.
func (d *LineDetector) Detect(gray *image.Gray, dpi float64) []Line {
	edges := Canny(gray, d.config.CannyLow, d.config.CannyHigh)
	segments := HoughSegments(edges, d.config.Threshold, d.config.MinLineLength, d.config.MaxLineGap)

	ppp := PointsPerPixel(dpi)
	lines := make([]Line, 0, len(segments))
	for _, seg := range segments {
		length := math.Hypot(float64(seg.X2-seg.X1), float64(seg.Y2-seg.Y1))
		angle := math.Atan2(float64(seg.Y2-seg.Y1), float64(seg.X2-seg.X1)) * 180 / math.Pi

		lines = append(lines, Line{
			ElementType: "line",
			Orientation: classifyOrientation(angle),
			Style:       classifyStyle(gray, seg),
			Position: SegmentPosition{
				X1:    round2(float64(seg.X1) * ppp),
				Y1:    round2(float64(seg.Y1) * ppp),
				X2:    round2(float64(seg.X2) * ppp),
				Y2:    round2(float64(seg.Y2) * ppp),
				Units: PositionUnits,
			},
			Length: round2(length * ppp),
			Angle:  round2(angle),
		})
	}

	return lines
}

func classifyOrientation(angle float64) Orientation {
	switch {
	case math.Abs(angle) < orientationToleranceDeg || math.Abs(angle-180) < orientationToleranceDeg ||
		math.Abs(angle+180) < orientationToleranceDeg:
		return OrientationHorizontal
	case math.Abs(angle-90) < orientationToleranceDeg || math.Abs(angle+90) < orientationToleranceDeg:
		return OrientationVertical
	default:
		return OrientationDiagonal
	}
}

// classifyStyle samples evenly spaced points along the segment and counts
// dark pixels; a low dark fraction indicates a dotted or dashed line. Since
// edge detection reports segments on the flank of a stroke, each sample also
// checks the two pixels perpendicular to the segment.
func classifyStyle(gray *image.Gray, seg Segment) LineStyle {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Unit perpendicular of the segment, snapped to the pixel grid.
	px, py := perpendicularStep(seg)

	darkCount := 0
	for i := 0; i < styleSampleCount; i++ {
		t := float64(i) / float64(styleSampleCount-1)
		x := seg.X1 + int(math.Round(t*float64(seg.X2-seg.X1)))
		y := seg.Y1 + int(math.Round(t*float64(seg.Y2-seg.Y1)))

		for _, off := range [3]int{0, 1, -1} {
			sx, sy := x+off*px, y+off*py
			if sx < 0 || sy < 0 || sx >= w || sy >= h {
				continue
			}
			if gray.GrayAt(sx, sy).Y < styleDarkThreshold {
				darkCount++
				break
			}
		}
	}

	if float64(darkCount)/float64(styleSampleCount) < solidDarkFraction {
		return LineStyleDotted
	}
	return LineStyleSolid
}

func perpendicularStep(seg Segment) (int, int) {
	dx := float64(seg.X2 - seg.X1)
	dy := float64(seg.Y2 - seg.Y1)
	if math.Abs(dx) >= math.Abs(dy) {
		return 0, 1 // mostly horizontal: step vertically
	}
	return 1, 0
}
