package vision

import (
	"image"
	"math"
)

// Contour-based checkbox filters, in pixels at the render DPI.
const (
	checkboxMinSidePx      = 15
	checkboxMaxSidePx      = 35
	checkboxMinAspect      = 0.8
	checkboxMaxAspect      = 1.2
	checkboxMinExtent      = 0.7
	checkboxMaxExtent      = 1.0
	checkboxMinAreaPx      = 200
	checkboxMaxAreaPx      = 1000
	checkboxInteriorInset  = 3
	checkboxInteriorBright = 200.0
	approxEpsilonFraction  = 0.02
	dedupRadiusPts         = 10.0
	binarizeCutoff         = 128
)

// CheckboxConfig holds the tunables for checkbox detection.
type CheckboxConfig struct {
	TemplateSize   int
	MatchThreshold float64
}

// DefaultCheckboxConfig returns the detection parameters tuned for forms
// rendered at 150 DPI.
func DefaultCheckboxConfig() CheckboxConfig {
	return CheckboxConfig{
		TemplateSize:   DefaultTemplateSize,
		MatchThreshold: DefaultMatchThreshold,
	}
}

// CheckboxDetector finds empty checkboxes in a rasterized page using two
// passes: template matching against a synthetic empty box, then contour
// analysis to catch boxes the template misses. Duplicate hits across the two
// passes are merged, template matches winning.
type CheckboxDetector struct {
	cfg CheckboxConfig
}

// NewCheckboxDetector creates a detector with the given configuration.
func NewCheckboxDetector(cfg CheckboxConfig) *CheckboxDetector {
	return &CheckboxDetector{cfg: cfg}
}

// Detect returns the checkboxes found in the grayscale page image, with
// positions converted to points at the given render DPI.
func (d *CheckboxDetector) Detect(gray *image.Gray, dpi float64) []Checkbox {
	ppp := PointsPerPixel(dpi)

	var boxes []Checkbox

	// A single box can produce several template hits a few pixels apart, so
	// the 10pt suppression applies within the template pass as well as
	// between the two passes.
	tmpl := EmptyBoxTemplate(d.cfg.TemplateSize)
	for _, m := range MatchTemplate(gray, tmpl, d.cfg.MatchThreshold) {
		cb := Checkbox{
			ElementType: "checkbox",
			Method:      MethodTemplateMatching,
			Position: RegionPosition{
				X:      round2(float64(m.X) * ppp),
				Y:      round2(float64(m.Y) * ppp),
				Width:  round2(float64(d.cfg.TemplateSize) * ppp),
				Height: round2(float64(d.cfg.TemplateSize) * ppp),
				Units:  PositionUnits,
			},
			Confidence: round2(m.Score),
		}
		if !nearExisting(boxes, cb.Position) {
			boxes = append(boxes, cb)
		}
	}

	for _, cb := range d.contourBoxes(gray, ppp) {
		if !nearExisting(boxes, cb.Position) {
			boxes = append(boxes, cb)
		}
	}

	return boxes
}

func (d *CheckboxDetector) contourBoxes(gray *image.Gray, ppp float64) []Checkbox {
	binary := Close(Threshold(gray, binarizeCutoff))

	var boxes []Checkbox
	for _, c := range FindExternalContours(binary) {
		perimeter := ArcLength(c)
		approx := ApproxPolygon(c, approxEpsilonFraction*perimeter)
		if len(approx) != 4 {
			continue
		}

		rect := BoundingRect(c)
		w, h := rect.Dx(), rect.Dy()
		if w < checkboxMinSidePx || w > checkboxMaxSidePx ||
			h < checkboxMinSidePx || h > checkboxMaxSidePx {
			continue
		}

		aspect := float64(w) / float64(h)
		if aspect < checkboxMinAspect || aspect > checkboxMaxAspect {
			continue
		}

		area := ContourArea(c)
		extent := area / float64(w*h)
		if extent < checkboxMinExtent || extent > checkboxMaxExtent {
			continue
		}
		if area < checkboxMinAreaPx || area > checkboxMaxAreaPx {
			continue
		}

		brightness := interiorMean(gray, rect)
		if brightness <= checkboxInteriorBright {
			continue
		}

		boxes = append(boxes, Checkbox{
			ElementType: "checkbox",
			Method:      MethodContourAnalysis,
			Position: RegionPosition{
				X:      round2(float64(rect.Min.X) * ppp),
				Y:      round2(float64(rect.Min.Y) * ppp),
				Width:  round2(float64(w) * ppp),
				Height: round2(float64(h) * ppp),
				Units:  PositionUnits,
			},
			Properties: &CheckboxProperties{
				AspectRatio:        round2(aspect),
				Extent:             round2(extent),
				Area:               round2(area * ppp * ppp),
				InteriorBrightness: round2(brightness),
			},
		})
	}

	return boxes
}

// interiorMean averages the original gray values inside the box, inset from
// the border so the stroke itself does not drag the mean down. An empty box
// has a white interior, a filled or checked one does not.
func interiorMean(gray *image.Gray, rect image.Rectangle) float64 {
	x0 := rect.Min.X + checkboxInteriorInset
	y0 := rect.Min.Y + checkboxInteriorInset
	x1 := rect.Max.X - checkboxInteriorInset
	y1 := rect.Max.Y - checkboxInteriorInset
	if x1 <= x0 || y1 <= y0 {
		return 0
	}

	sum := 0.0
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
			n++
		}
	}
	return sum / float64(n)
}

func nearExisting(boxes []Checkbox, pos RegionPosition) bool {
	for _, b := range boxes {
		dx := b.Position.X - pos.X
		dy := b.Position.Y - pos.Y
		if math.Hypot(dx, dy) < dedupRadiusPts {
			return true
		}
	}
	return false
}
