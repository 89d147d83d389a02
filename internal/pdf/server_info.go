package pdf

import (
	"fmt"
	"time"
)

// PDFServerInfo returns comprehensive server information and usage guidance
func (s *Service) PDFServerInfo(req PDFServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*PDFServerInfoResult, error) {
	validatedDir := defaultDirectory
	if err := s.pathValidator.ValidateDirectory(defaultDirectory); err != nil {
		// Use the configured directory if validation fails
		validatedDir = s.pathValidator.GetWorkspaceDirectory()
	}

	// Directory listing runs with a timeout so a slow filesystem cannot
	// hang the info call. Limited to the first 100 files.
	directoryContents := []FileInfo{}
	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)

	go func() {
		files, err := s.search.FindPDFsInDirectoryLimited(validatedDir, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
		// A failed directory scan leaves the listing empty.
	case <-time.After(5 * time.Second):
	}

	availableTools := []ToolInfo{
		{
			Name:        "pdf_scan_words",
			Description: "Extract word-level text records with font name, font size, and bounding boxes",
			Usage: "Use this tool to dump every word on every page with its position and font " +
				"metadata. Coordinates are in points with a top-left origin.",
			Parameters: "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_scan_layout",
			Description: "Detect lines, background colors, checkboxes, and vector shapes on rendered pages",
			Usage: "Use this tool to analyze the visual structure of form pages. Pages are rendered " +
				"at the configured DPI and scanned with edge, color, and template detectors.",
			Parameters: "path (required): Full absolute path to the PDF file, " +
				"page (optional): 1-based page number (default: leading pages up to the scan limit), " +
				"dpi (optional): render resolution",
		},
		{
			Name:        "pdf_validate_file",
			Description: "Validate if a file is a readable PDF",
			Usage:       "Use this tool to check if a file is a valid PDF before attempting to scan it.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_stats_file",
			Description: "Get detailed statistics about a PDF file",
			Usage:       "Use this tool to get metadata, page count, file size, and document properties of a PDF.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "pdf_search_directory",
			Description: "Search for PDF files in a directory with optional fuzzy search",
			Usage: "Use this tool to find PDF files in the default directory or any specified " +
				"directory. Supports fuzzy search by filename.",
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "pdf_stats_directory",
			Description: "Get statistics about PDF files in a directory",
			Usage: "Use this tool to get an overview of all PDF files in a directory including " +
				"total count, sizes, and file information.",
			Parameters: "directory (optional): Directory path to analyze (uses default if empty)",
		},
	}

	usageGuidance := `PDF Form Scan Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'pdf_search_directory' to find available PDF files
   - Use 'pdf_stats_directory' to get an overview of the directory

2. VALIDATE FILES:
   - Use 'pdf_validate_file' to check if a file is readable before processing

3. SCAN TEXT:
   - Use 'pdf_scan_words' to dump word records with font metadata
   - Each record carries text, x0/x1, top/bottom, font, size, and page

4. SCAN LAYOUT:
   - Use 'pdf_scan_layout' to detect visual form structure:
     * lines with orientation (horizontal/vertical/diagonal) and style (solid/dotted)
     * clustered background color regions with RGB and hex values
     * checkbox widgets found by template matching and contour analysis
     * vector line and rectangle drawings from the page content stream
   - All coordinates are reported in points (72 per inch)

5. GET METADATA:
   - Use 'pdf_stats_file' to get document properties, creation dates, author info, etc.

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- Layout scans render pages at ` + fmt.Sprintf("%.0f", s.rasterDPI) + ` DPI unless a request overrides it
- Scanned (image-only) documents produce no word records; use the layout scan instead`

	return &PDFServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       s.maxFileSize,
		RasterDPI:         s.rasterDPI,
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
	}, nil
}
