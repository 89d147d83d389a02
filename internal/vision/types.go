// Package vision implements the classical computer-vision heuristics used to
// analyze rasterized PDF form pages: edge detection, Hough line extraction,
// background color clustering, and checkbox detection.
//
// All detectors consume pixel images and emit records whose coordinates are
// converted to PDF points (72 points per inch) using the rasterization DPI.
package vision

// Orientation classifies a detected line segment by its angle.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
	OrientationDiagonal   Orientation = "diagonal"
)

// LineStyle classifies a detected line segment as solid or dotted.
type LineStyle string

const (
	LineStyleSolid  LineStyle = "solid"
	LineStyleDotted LineStyle = "dotted"
)

// Detection method tags for checkbox records.
const (
	MethodTemplateMatching = "template_matching"
	MethodContourAnalysis  = "contour_analysis"
)

// SegmentPosition holds line segment endpoints in points.
type SegmentPosition struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Units string  `json:"units"`
}

// RegionPosition holds an axis-aligned bounding box in points.
type RegionPosition struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Units  string  `json:"units"`
}

// Line is a detected ruling line on a page.
type Line struct {
	ElementType string          `json:"element_type"`
	Orientation Orientation     `json:"orientation"`
	Style       LineStyle       `json:"line_style"`
	Position    SegmentPosition `json:"position"`
	Length      float64         `json:"length"`
	Angle       float64         `json:"angle"`
}

// ColorValue is a clustered color as both an RGB triple and a hex string.
type ColorValue struct {
	RGB [3]int `json:"rgb"`
	Hex string `json:"hex"`
}

// ColorRegion is a detected background color block.
type ColorRegion struct {
	ElementType string         `json:"element_type"`
	Position    RegionPosition `json:"position"`
	Color       ColorValue     `json:"color"`
	RegionCount int            `json:"region_count"`
}

// CheckboxProperties carries the geometric evidence behind a contour-based
// checkbox detection.
type CheckboxProperties struct {
	AspectRatio        float64 `json:"aspect_ratio"`
	Extent             float64 `json:"extent"`
	Area               float64 `json:"area"`
	InteriorBrightness float64 `json:"interior_brightness"`
}

// Checkbox is a detected checkbox widget.
type Checkbox struct {
	ElementType string              `json:"element_type"`
	Method      string              `json:"detection_method"`
	Position    RegionPosition      `json:"position"`
	Confidence  float64             `json:"confidence,omitempty"`
	Properties  *CheckboxProperties `json:"properties,omitempty"`
}

// PositionUnits is the unit label attached to every emitted coordinate.
const PositionUnits = "points"

// PointsPerPixel returns the point size of one pixel at the given DPI.
func PointsPerPixel(dpi float64) float64 {
	return 72.0 / dpi
}

// round2 rounds to two decimals, the precision used for all emitted
// coordinates.
func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
