package pdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	scanerrors "github.com/formlens/formlens/internal/pdf/errors"
)

// Word grouping tolerances, in points unless scaled by font size.
const (
	baselineTolerance = 0.5
	wordGapFactor     = 0.3
)

// Words extracts word-level records with font metadata from PDF pages
type Words struct {
	maxFileSize int64
	validator   *Validator
}

// NewWords creates a new word extractor with the specified constraints
func NewWords(maxFileSize int64) *Words {
	return &Words{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// ScanFile extracts word records from every page of a PDF file
func (w *Words) ScanFile(req PDFScanWordsRequest) (*PDFScanWordsResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if err := w.validator.validatePDFFile(req.Path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	collection := scanerrors.NewErrorCollection()
	result := &PDFScanWordsResult{Path: req.Path}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			collection.Add(scanerrors.NewPageError(
				scanerrors.ErrorTypeMalformedPage, pageNum, "page object is null", nil))
			continue
		}

		width, height := pageSize(page)
		pageWords := PageWords{
			Page:   pageNum,
			Width:  round2(width),
			Height: round2(height),
		}

		walkErr := scanerrors.SafePageWalk(pageNum, func() error {
			content := page.Content()
			pageWords.Words = groupWords(content.Text, height, pageNum)
			return nil
		})
		if walkErr != nil {
			collection.Add(scanerrors.NewPageError(
				scanerrors.ErrorTypeMalformedPage, pageNum, walkErr.Error(), walkErr))
		}

		result.Pages = append(result.Pages, pageWords)
		result.TotalWords += len(pageWords.Words)
	}

	result.Warnings = collection.Warnings()
	return result, nil
}

// groupWords merges per-glyph runs into word records. Glyphs sharing a
// baseline are joined while the horizontal gap stays below a fraction of the
// font size; whitespace glyphs and font changes end the current word.
// Coordinates are flipped from the PDF bottom-left origin to a top-left
// origin so top = pageHeight - y - size.
func groupWords(glyphs []pdf.Text, pageHeight float64, pageNumber int) []WordRecord {
	runs := append(make([]pdf.Text, 0, len(glyphs)), glyphs...)

	// Reading order: top of the page first, then left to right.
	sort.SliceStable(runs, func(i, j int) bool {
		if diff := runs[i].Y - runs[j].Y; diff > baselineTolerance || diff < -baselineTolerance {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var words []WordRecord
	var current []pdf.Text

	flush := func() {
		if len(current) == 0 {
			return
		}
		if rec, ok := buildWord(current, pageHeight, pageNumber); ok {
			words = append(words, rec)
		}
		current = current[:0]
	}

	for _, g := range runs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1]
			sameBaseline := g.Y-prev.Y <= baselineTolerance && prev.Y-g.Y <= baselineTolerance
			gap := g.X - (prev.X + prev.W)
			maxGap := wordGapFactor * prev.FontSize
			if maxGap <= 0 {
				maxGap = wordGapFactor
			}
			if !sameBaseline || gap > maxGap || gap < -maxGap ||
				g.Font != prev.Font || g.FontSize != prev.FontSize {
				flush()
			}
		}

		current = append(current, g)
	}
	flush()

	return words
}

// buildWord assembles a word record from consecutive glyphs.
func buildWord(glyphs []pdf.Text, pageHeight float64, pageNumber int) (WordRecord, bool) {
	var text strings.Builder
	for _, g := range glyphs {
		text.WriteString(g.S)
	}
	if strings.TrimSpace(text.String()) == "" {
		return WordRecord{}, false
	}

	first := glyphs[0]
	last := glyphs[len(glyphs)-1]

	return WordRecord{
		Text:   text.String(),
		X0:     round2(first.X),
		X1:     round2(last.X + last.W),
		Top:    round2(pageHeight - first.Y - first.FontSize),
		Bottom: round2(pageHeight - first.Y),
		Font:   first.Font,
		Size:   round2(first.FontSize),
		Page:   pageNumber,
	}, true
}
