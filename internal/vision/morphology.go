package vision

import "image"

// Close applies morphological closing (dilate then erode) with a 3x3 square
// structuring element, sealing single-pixel gaps in foreground strokes.
func Close(binary *image.Gray) *image.Gray {
	return erode(dilate(binary))
}

func dilate(binary *image.Gray) *image.Gray {
	return morph(binary, func(anyOn bool, allOn bool) bool { return anyOn })
}

func erode(binary *image.Gray) *image.Gray {
	return morph(binary, func(anyOn bool, allOn bool) bool { return allOn })
}

func morph(binary *image.Gray, keep func(anyOn, allOn bool) bool) *image.Gray {
	w, h := binary.Bounds().Dx(), binary.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			anyOn, allOn := false, true
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					on := nx >= 0 && ny >= 0 && nx < w && ny < h && binary.GrayAt(nx, ny).Y != 0
					anyOn = anyOn || on
					allOn = allOn && on
				}
			}
			if keep(anyOn, allOn) {
				out.SetGray(x, y, grayPixel(edgeOn))
			}
		}
	}

	return out
}

// Threshold produces a binary image: pixels darker than the cutoff become
// foreground (255). This inverts the page so ink is foreground.
func Threshold(gray *image.Gray, cutoff uint8) *image.Gray {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if gray.GrayAt(x, y).Y < cutoff {
				out.SetGray(x, y, grayPixel(edgeOn))
			}
		}
	}
	return out
}
