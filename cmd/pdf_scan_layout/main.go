package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/formlens/formlens/internal/pdf"
	"github.com/formlens/formlens/internal/raster"
)

const defaultMaxFileSize = 100 * 1024 * 1024 // 100MB

var (
	pageNumber   = flag.Int("page", 0, "Page number to scan (0 scans leading pages up to -maxpages)")
	renderDPI    = flag.Float64("dpi", raster.DefaultDPI, "Rendering resolution for visual analysis")
	maxPages     = flag.Int("maxpages", 10, "Maximum pages scanned when no page is given")
	outputFormat = flag.String("format", "json", "Output format: json, text")
	maxFileSize  = flag.Int64("maxfilesize", defaultMaxFileSize, "Maximum PDF file size in bytes")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to resolve path: %v\n", err)
		os.Exit(1)
	}

	scanner := pdf.NewLayout(*maxFileSize, *renderDPI, *maxPages)
	result, err := scanner.ScanFile(pdf.PDFScanLayoutRequest{
		Path: absPath,
		Page: *pageNumber,
		DPI:  *renderDPI,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning layout: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PDF Scan Layout - Detect visual structure on rendered PDF pages")
	fmt.Println()
	fmt.Println("Renders each page and detects horizontal and vertical lines (solid or")
	fmt.Println("dotted), clustered background colors, checkboxes, and vector shapes from")
	fmt.Println("the content stream. Positions are in points.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -page          Page number to scan (0 scans leading pages)")
	fmt.Println("  -dpi           Rendering resolution (default 150)")
	fmt.Println("  -maxpages      Page cap when scanning the whole document")
	fmt.Println("  -format        Output format: json (default), text")
	fmt.Println("  -maxfilesize   Maximum PDF file size in bytes")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("DETECTED ELEMENTS:")
	fmt.Println("  • Lines: endpoints, orientation, solid/dotted style, length, angle")
	fmt.Println("  • Background colors: clustered RGB values with region extents")
	fmt.Println("  • Checkboxes: template matching and contour analysis")
	fmt.Println("  • Shapes: stroked or filled lines and rectangles from the page content")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_scan_layout f1040.pdf")
	fmt.Println("  pdf_scan_layout -page 2 -dpi 300 w4.pdf")
	fmt.Println("  pdf_scan_layout -format text schedule-a.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_scan_layout [OPTIONS] <pdf_file>")
}

func outputResults(result *pdf.PDFScanLayoutResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *pdf.PDFScanLayoutResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *pdf.PDFScanLayoutResult) error {
	fmt.Printf("Scanned: %s\n", result.Path)
	fmt.Printf("Rendering resolution: %g DPI\n", result.DPI)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	fmt.Println()

	for _, page := range result.Pages {
		fmt.Printf("Page %d\n", page.Page)

		fmt.Printf("  Lines: %d\n", len(page.Lines))
		for _, line := range page.Lines {
			fmt.Printf("    %s %s (%.1f, %.1f)-(%.1f, %.1f) length %.1fpt angle %.1f\n",
				line.Orientation, line.Style,
				line.Position.X1, line.Position.Y1, line.Position.X2, line.Position.Y2,
				line.Length, line.Angle)
		}

		fmt.Printf("  Background colors: %d\n", len(page.BackgroundColors))
		for _, region := range page.BackgroundColors {
			fmt.Printf("    %s rgb(%d, %d, %d) at (%.1f, %.1f) %.1f x %.1f pt, %d regions\n",
				region.Color.Hex, region.Color.RGB[0], region.Color.RGB[1], region.Color.RGB[2],
				region.Position.X, region.Position.Y,
				region.Position.Width, region.Position.Height,
				region.RegionCount)
		}

		fmt.Printf("  Checkboxes: %d\n", len(page.Checkboxes))
		for _, box := range page.Checkboxes {
			fmt.Printf("    %s at (%.1f, %.1f) %.1f x %.1f pt",
				box.Method, box.Position.X, box.Position.Y,
				box.Position.Width, box.Position.Height)
			if box.Confidence > 0 {
				fmt.Printf(" confidence %.2f", box.Confidence)
			}
			fmt.Println()
		}

		fmt.Printf("  Shapes: %d\n", len(page.Shapes))
		for _, shape := range page.Shapes {
			fmt.Printf("    %s (%.1f, %.1f)-(%.1f, %.1f) painted=%s\n",
				shape.ElementType, shape.X0, shape.Y0, shape.X1, shape.Y1, shape.Painted)
		}

		fmt.Println()
	}

	return nil
}
