package vision

import (
	"image"
	"math"
)

// Contour is a closed boundary of a foreground component, as an ordered list
// of pixel coordinates.
type Contour []image.Point

// FindExternalContours traces the outer boundary of every foreground
// component in a binary image (foreground pixels nonzero). Interior holes
// are not reported. The image must be zero-origin.
func FindExternalContours(binary *image.Gray) []Contour {
	w, h := binary.Bounds().Dx(), binary.Bounds().Dy()
	visited := make([]bool, w*h)

	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return binary.GrayAt(x, y).Y != 0
	}

	var contours []Contour
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Outer boundary starts where foreground follows background.
			if !fg(x, y) || fg(x-1, y) || visited[y*w+x] {
				continue
			}
			contours = append(contours, traceBoundary(fg, x, y))
			markComponent(fg, visited, w, h, x, y)
		}
	}

	return contours
}

// mooreOffsets is the 8-neighborhood in clockwise order starting west.
var mooreOffsets = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary follows the component boundary clockwise (Moore neighbor
// tracing) starting from the component's first scan-order pixel.
func traceBoundary(fg func(x, y int) bool, sx, sy int) Contour {
	start := image.Point{X: sx, Y: sy}
	contour := Contour{start}

	cur := start
	// Backtrack direction: we entered from the west.
	dir := 0
	for {
		found := false
		for i := 1; i <= 8; i++ {
			d := (dir + i) % 8
			n := image.Point{X: cur.X + mooreOffsets[d].X, Y: cur.Y + mooreOffsets[d].Y}
			if fg(n.X, n.Y) {
				// Next backtrack points at the previous neighbor.
				dir = (d + 5) % 8
				cur = n
				found = true
				break
			}
		}
		if !found {
			break // isolated pixel
		}
		if cur == start {
			break
		}
		contour = append(contour, cur)
		if len(contour) > 100000 {
			break // degenerate input
		}
	}

	return contour
}

// markComponent flood-fills the component so later scan rows skip it.
func markComponent(fg func(x, y int) bool, visited []bool, w, h, sx, sy int) {
	stack := []int{sy*w + sx}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] {
			continue
		}
		x, y := idx%w, idx/w
		if !fg(x, y) {
			continue
		}
		visited[idx] = true
		if x+1 < w {
			stack = append(stack, idx+1)
		}
		if x > 0 {
			stack = append(stack, idx-1)
		}
		if y+1 < h {
			stack = append(stack, idx+w)
		}
		if y > 0 {
			stack = append(stack, idx-w)
		}
	}
}

// ArcLength returns the perimeter of a closed contour.
func ArcLength(c Contour) float64 {
	if len(c) < 2 {
		return 0
	}
	total := 0.0
	for i := range c {
		p := c[i]
		q := c[(i+1)%len(c)]
		total += math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
	}
	return total
}

// ContourArea returns the enclosed area of a closed contour via the shoelace
// formula.
func ContourArea(c Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.0
	for i := range c {
		p := c[i]
		q := c[(i+1)%len(c)]
		sum += float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
	}
	return math.Abs(sum) / 2
}

// BoundingRect returns the axis-aligned bounding box of a contour.
func BoundingRect(c Contour) image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		minX = minInt(minX, p.X)
		minY = minInt(minY, p.Y)
		maxX = maxInt(maxX, p.X)
		maxY = maxInt(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// ApproxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm using the given distance tolerance.
func ApproxPolygon(c Contour, epsilon float64) Contour {
	if len(c) < 3 {
		return c
	}

	// Split at the two points farthest apart so each half is an open chain.
	far := 0
	best := 0.0
	for i, p := range c {
		d := math.Hypot(float64(p.X-c[0].X), float64(p.Y-c[0].Y))
		if d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return Contour{c[0]}
	}

	// The closing half gets its own backing array; appending to a subslice
	// of c could clobber points the first half still reads.
	closing := make(Contour, 0, len(c)-far+1)
	closing = append(closing, c[far:]...)
	closing = append(closing, c[0])

	first := simplifyChain(c[:far+1], epsilon)
	second := simplifyChain(closing, epsilon)

	// Drop duplicated junction points when joining the halves.
	approx := append(Contour{}, first...)
	if len(second) > 2 {
		approx = append(approx, second[1:len(second)-1]...)
	}
	return approx
}

func simplifyChain(chain Contour, epsilon float64) Contour {
	if len(chain) < 3 {
		return chain
	}

	idx, dist := 0, 0.0
	for i := 1; i < len(chain)-1; i++ {
		d := pointLineDistance(chain[i], chain[0], chain[len(chain)-1])
		if d > dist {
			dist = d
			idx = i
		}
	}

	if dist <= epsilon {
		return Contour{chain[0], chain[len(chain)-1]}
	}

	left := simplifyChain(chain[:idx+1], epsilon)
	right := simplifyChain(chain[idx:], epsilon)

	joined := make(Contour, 0, len(left)+len(right)-1)
	joined = append(joined, left[:len(left)-1]...)
	return append(joined, right...)
}

func pointLineDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dy*float64(p.X)-dx*float64(p.Y)+float64(b.X)*float64(a.Y)-float64(b.Y)*float64(a.X)) / length
}
