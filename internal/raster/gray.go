package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Grayscale converts an image to 8-bit grayscale with a zero origin.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
	return gray
}

// Downscale resizes an image so its longer side is at most maxSide pixels,
// preserving the aspect ratio. Images already within the limit are returned
// unchanged.
func Downscale(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if maxSide <= 0 || longest <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(longest)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}
