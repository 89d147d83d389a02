package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/formlens/formlens/internal/pdf"
)

const defaultMaxFileSize = 100 * 1024 * 1024 // 100MB

var (
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

	scanner := pdf.NewWords(*maxFileSize)
	result, err := scanner.ScanFile(pdf.PDFScanWordsRequest{Path: absPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning words: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PDF Scan Words - Extract word-level text with font metadata from PDF documents")
	fmt.Println()
	fmt.Println("Groups the glyphs of each page into words and reports every word with its")
	fmt.Println("bounding box, font name, font size, and page number. Coordinates are in")
	fmt.Println("points with the origin at the top-left of the page.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format        Output format: json (default), text")
	fmt.Println("  -maxfilesize   Maximum PDF file size in bytes")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_scan_words f1040.pdf")
	fmt.Println("  pdf_scan_words -format text w9.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_scan_words [OPTIONS] <pdf_file>")
}

func outputResults(result *pdf.PDFScanWordsResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *pdf.PDFScanWordsResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *pdf.PDFScanWordsResult) error {
	fmt.Printf("Scanned: %s\n", result.Path)
	fmt.Printf("Pages: %d\n", len(result.Pages))
	fmt.Printf("Total words: %d\n", result.TotalWords)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	fmt.Println()

	for _, page := range result.Pages {
		fmt.Printf("Page %d (%.0f x %.0f pt): %d words\n",
			page.Page, page.Width, page.Height, len(page.Words))
		for _, word := range page.Words {
			fmt.Printf("  %-24q (%.1f, %.1f)-(%.1f, %.1f) %s %.1fpt\n",
				word.Text, word.X0, word.Top, word.X1, word.Bottom, word.Font, word.Size)
		}
		fmt.Println()
	}

	return nil
}
