package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	scanerrors "github.com/formlens/formlens/internal/pdf/errors"
	"github.com/formlens/formlens/internal/raster"
	"github.com/formlens/formlens/internal/vision"
)

// Renders wider than this are downscaled before background color sampling.
// Default-DPI letter pages stay untouched.
const colorSampleMaxSide = 2200

// Layout runs the visual analysis pipeline over rendered PDF pages: line
// detection, background color clustering, checkbox detection, and vector
// shape extraction from the content stream.
type Layout struct {
	maxFileSize  int64
	defaultDPI   float64
	maxScanPages int
	validator    *Validator
	shapes       *Shapes
}

// NewLayout creates a new layout scanner with the specified constraints
func NewLayout(maxFileSize int64, defaultDPI float64, maxScanPages int) *Layout {
	if defaultDPI <= 0 {
		defaultDPI = raster.DefaultDPI
	}
	if maxScanPages <= 0 {
		maxScanPages = 1
	}
	return &Layout{
		maxFileSize:  maxFileSize,
		defaultDPI:   defaultDPI,
		maxScanPages: maxScanPages,
		validator:    NewValidator(maxFileSize),
		shapes:       NewShapes(),
	}
}

// ScanFile analyzes the requested page, or the leading pages up to the
// configured limit when no page is given.
func (l *Layout) ScanFile(req PDFScanLayoutRequest) (*PDFScanLayoutResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if err := l.validator.validatePDFFile(req.Path); err != nil {
		return nil, err
	}

	dpi := req.DPI
	if dpi <= 0 {
		dpi = l.defaultDPI
	}
	renderer := raster.NewRenderer(dpi)
	dpi = renderer.DPI()

	f, reader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages, err := l.selectPages(req.Page, totalPages)
	if err != nil {
		return nil, err
	}

	lineDetector := vision.NewLineDetector(vision.DefaultLineConfig())
	colorDetector := vision.NewColorDetector(vision.DefaultColorConfig())
	checkboxDetector := vision.NewCheckboxDetector(vision.DefaultCheckboxConfig())
	collection := scanerrors.NewErrorCollection()

	result := &PDFScanLayoutResult{
		Path: req.Path,
		DPI:  dpi,
	}

	collection.Add(truncationWarning(req.Page, totalPages, len(pages)))

	for _, pageNum := range pages {
		layout := PageLayout{Page: pageNum}

		img, renderErr := renderer.RenderPage(req.Path, pageNum)
		if renderErr != nil {
			collection.Add(scanerrors.NewPageError(
				scanerrors.ErrorTypeRenderFailed, pageNum, renderErr.Error(), renderErr))
		} else {
			gray := raster.Grayscale(img)
			layout.Lines = lineDetector.Detect(gray, dpi)
			layout.Checkboxes = checkboxDetector.Detect(gray, dpi)

			// Color sampling works on coarse cells, so high-DPI renders are
			// downscaled first; the effective DPI keeps coordinates in points.
			colorImg := raster.Downscale(img, colorSampleMaxSide)
			colorDPI := dpi
			if cb, ib := colorImg.Bounds(), img.Bounds(); cb.Dx() < ib.Dx() {
				colorDPI = dpi * float64(cb.Dx()) / float64(ib.Dx())
			}

			colors, colorErr := colorDetector.Detect(colorImg, colorDPI)
			if colorErr != nil {
				collection.Add(scanerrors.NewPageError(
					scanerrors.ErrorTypeRenderFailed, pageNum, colorErr.Error(), colorErr))
			}
			layout.BackgroundColors = colors
		}

		// Vector shapes come from the content stream, not the raster, so a
		// failed render does not block them.
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			collection.Add(scanerrors.NewPageError(
				scanerrors.ErrorTypeMalformedPage, pageNum, "page object is null", nil))
		} else {
			shapes, shapeErr := l.shapes.PageShapes(page, pageNum)
			if shapeErr != nil {
				collection.Add(scanerrors.NewPageError(
					scanerrors.ErrorTypeInvalidStream, pageNum, shapeErr.Error(), shapeErr))
			}
			layout.Shapes = shapes
		}

		result.Pages = append(result.Pages, layout)
	}

	result.Warnings = collection.Warnings()
	return result, nil
}

// truncationWarning reports when a full-document scan stopped at the page
// limit, so callers know the result does not cover the whole file.
func truncationWarning(requested, total, scanned int) *scanerrors.ScanError {
	if requested != 0 || scanned >= total {
		return nil
	}
	return scanerrors.NewScanError(scanerrors.ErrorTypeTruncatedScan, scanerrors.SeverityWarning,
		fmt.Sprintf("scanned first %d of %d pages; pass a page number to scan the rest", scanned, total), nil)
}

// selectPages resolves the page selection: a single requested page, or the
// leading pages capped at the scan limit.
func (l *Layout) selectPages(requested, total int) ([]int, error) {
	if total < 1 {
		return nil, fmt.Errorf("document has no pages")
	}

	if requested > 0 {
		if requested > total {
			return nil, fmt.Errorf("page %d out of range: document has %d pages", requested, total)
		}
		return []int{requested}, nil
	}
	if requested < 0 {
		return nil, fmt.Errorf("page cannot be negative")
	}

	n := total
	if n > l.maxScanPages {
		n = l.maxScanPages
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages, nil
}
