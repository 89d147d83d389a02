package vision

import (
	"image"
	"image/color"
	"math"
)

// Canny edge detection parameters matching the layout scan defaults.
const (
	DefaultCannyLow  = 100.0
	DefaultCannyHigh = 200.0

	gaussianKernelSize = 5
	gaussianSigma      = 1.4

	edgeOn = 255
)

// Canny computes a binary edge map of the grayscale image using Gaussian
// smoothing, Sobel gradients, non-maximum suppression, and double-threshold
// hysteresis. Edge pixels are 255, everything else 0.
func Canny(gray *image.Gray, low, high float64) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w < gaussianKernelSize || h < gaussianKernelSize {
		return edges
	}

	smoothed := gaussianBlur(gray)
	mag, dir := sobelGradients(smoothed)
	thin := suppressNonMaxima(mag, dir, w, h)
	hysteresis(thin, edges, w, h, low, high)

	return edges
}

// gaussianBlur applies a 5x5 Gaussian kernel. Border pixels are clamped.
func gaussianBlur(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	kernel, sum := buildGaussianKernel(gaussianKernelSize, gaussianSigma)
	half := gaussianKernelSize / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					sx := clampInt(x+kx, 0, w-1)
					sy := clampInt(y+ky, 0, h-1)
					acc += kernel[ky+half][kx+half] * float64(gray.GrayAt(bounds.Min.X+sx, bounds.Min.Y+sy).Y)
				}
			}
			out.SetGray(x, y, grayPixel(acc/sum))
		}
	}

	return out
}

func buildGaussianKernel(size int, sigma float64) ([][]float64, float64) {
	kernel := make([][]float64, size)
	half := size / 2
	sum := 0.0
	for y := 0; y < size; y++ {
		kernel[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			dx := float64(x - half)
			dy := float64(y - half)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[y][x] = v
			sum += v
		}
	}
	return kernel, sum
}

// sobelGradients returns per-pixel gradient magnitude and direction
// quantized to four sectors (0: horizontal, 1: 45deg, 2: vertical, 3: 135deg).
func sobelGradients(gray *image.Gray) ([]float64, []uint8) {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	mag := make([]float64, w*h)
	dir := make([]uint8, w*h)

	at := func(x, y int) float64 {
		return float64(gray.GrayAt(clampInt(x, 0, w-1), clampInt(y, 0, h-1)).Y)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			idx := y*w + x
			mag[idx] = math.Hypot(gx, gy)
			dir[idx] = quantizeDirection(gx, gy)
		}
	}

	return mag, dir
}

func quantizeDirection(gx, gy float64) uint8 {
	angle := math.Atan2(gy, gx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return 0
	case angle < 67.5:
		return 1
	case angle < 112.5:
		return 2
	default:
		return 3
	}
}

// suppressNonMaxima keeps only pixels that are local maxima along their
// gradient direction.
func suppressNonMaxima(mag []float64, dir []uint8, w, h int) []float64 {
	out := make([]float64, w*h)

	offsets := [4][2][2]int{
		{{1, 0}, {-1, 0}},  // gradient horizontal -> compare left/right
		{{1, -1}, {-1, 1}}, // 45deg
		{{0, 1}, {0, -1}},  // vertical
		{{1, 1}, {-1, -1}}, // 135deg
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			o := offsets[dir[idx]]
			n1 := mag[(y+o[0][1])*w+(x+o[0][0])]
			n2 := mag[(y+o[1][1])*w+(x+o[1][0])]
			if mag[idx] >= n1 && mag[idx] >= n2 {
				out[idx] = mag[idx]
			}
		}
	}

	return out
}

// hysteresis marks strong edges and grows them through connected weak edges.
func hysteresis(mag []float64, edges *image.Gray, w, h int, low, high float64) {
	const (
		unset = 0
		weak  = 1
		seen  = 2
	)
	state := make([]uint8, w*h)

	var stack []int
	for idx, m := range mag {
		if m >= high {
			state[idx] = seen
			stack = append(stack, idx)
		} else if m >= low {
			state[idx] = weak
		}
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w
		edges.SetGray(x, y, grayPixel(edgeOn))

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				nIdx := ny*w + nx
				if state[nIdx] == weak {
					state[nIdx] = seen
					stack = append(stack, nIdx)
				}
			}
		}
	}
}

func grayPixel(v float64) color.Gray {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return color.Gray{Y: uint8(v)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
