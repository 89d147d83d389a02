// Package raster renders PDF pages to images for visual analysis.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DPI limits for page rendering.
const (
	DefaultDPI = 150
	MinDPI     = 36
	MaxDPI     = 600
)

// Renderer rasterizes PDF pages through MuPDF.
type Renderer struct {
	dpi float64
}

// NewRenderer creates a renderer at the given DPI. Values outside the
// supported range are clamped.
func NewRenderer(dpi float64) *Renderer {
	if dpi < MinDPI {
		dpi = MinDPI
	}
	if dpi > MaxDPI {
		dpi = MaxDPI
	}
	return &Renderer{dpi: dpi}
}

// DPI returns the render resolution.
func (r *Renderer) DPI() float64 {
	return r.dpi
}

// PointsPerPixel returns the point size of one rendered pixel.
func (r *Renderer) PointsPerPixel() float64 {
	return 72.0 / r.dpi
}

// PageCount returns the number of pages in the document at path.
func (r *Renderer) PageCount(path string) (int, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}

// RenderPage rasterizes a single page to RGBA. Pages are numbered from 1.
func (r *Renderer) RenderPage(path string, pageNumber int) (*image.RGBA, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if pageNumber < 1 || pageNumber > total {
		return nil, fmt.Errorf("page %d out of range: document has %d pages", pageNumber, total)
	}

	img, err := doc.ImageDPI(pageNumber-1, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", pageNumber, err)
	}
	return img, nil
}
