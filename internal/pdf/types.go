package pdf

import "github.com/formlens/formlens/internal/vision"

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// WordRecord represents a single word with its bounding box and font metadata.
// Coordinates are in points with a top-left page origin.
type WordRecord struct {
	Text   string  `json:"text"`
	X0     float64 `json:"x0"`
	X1     float64 `json:"x1"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Font   string  `json:"font"`
	Size   float64 `json:"size"`
	Page   int     `json:"page"`
}

// PageWords represents the word records extracted from one page
type PageWords struct {
	Page   int          `json:"page"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Words  []WordRecord `json:"words"`
}

// ShapeRecord represents a vector drawing read from a page content stream.
// Coordinates are in points with a bottom-left page origin, as written.
type ShapeRecord struct {
	ElementType string  `json:"element_type"` // "line" or "rectangle"
	X0          float64 `json:"x0"`
	Y0          float64 `json:"y0"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	Painted     string  `json:"painted"` // painting operator that closed the path
	Page        int     `json:"page"`
}

// Request Types

// PDFScanWordsRequest represents a request to extract word records from a PDF file
type PDFScanWordsRequest struct {
	Path string `json:"path"`
}

// PDFScanLayoutRequest represents a request for visual layout analysis of PDF pages
type PDFScanLayoutRequest struct {
	Path string  `json:"path"`
	Page int     `json:"page,omitempty"` // 0 means all pages up to the configured limit
	DPI  float64 `json:"dpi,omitempty"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFStatsFileRequest represents a request to get stats about a PDF file
type PDFStatsFileRequest struct {
	Path string `json:"path"`
}

// PDFSearchDirectoryRequest represents a request to search for PDF files in a directory
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// PDFStatsDirectoryRequest represents a request to get directory statistics
type PDFStatsDirectoryRequest struct {
	Directory string `json:"directory"`
}

// PDFServerInfoRequest represents a request to get server information and capabilities
type PDFServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// PDFScanWordsResult represents the result of word extraction
type PDFScanWordsResult struct {
	Path       string      `json:"path"`
	Pages      []PageWords `json:"pages"`
	TotalWords int         `json:"total_words"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// PageLayout represents the visual elements detected on one rendered page
type PageLayout struct {
	Page             int                  `json:"page"`
	Lines            []vision.Line        `json:"lines"`
	BackgroundColors []vision.ColorRegion `json:"background_colors"`
	Checkboxes       []vision.Checkbox    `json:"checkboxes"`
	Shapes           []ShapeRecord        `json:"shapes"`
}

// PDFScanLayoutResult represents the result of visual layout analysis
type PDFScanLayoutResult struct {
	Path     string       `json:"path"`
	DPI      float64      `json:"dpi"`
	Pages    []PageLayout `json:"pages"`
	Warnings []string     `json:"warnings,omitempty"`
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// PDFStatsFileResult represents the result of a PDF file stats operation
type PDFStatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
}

// PDFSearchDirectoryResult represents the result of a PDF search operation
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// PDFStatsDirectoryResult represents the result of directory statistics
type PDFStatsDirectoryResult struct {
	Directory        string `json:"directory"`
	TotalFiles       int    `json:"total_files"`
	TotalSize        int64  `json:"total_size"`
	LargestFileSize  int64  `json:"largest_file_size"`
	LargestFileName  string `json:"largest_file_name"`
	SmallestFileSize int64  `json:"smallest_file_size"`
	SmallestFileName string `json:"smallest_file_name"`
	AverageFileSize  int64  `json:"average_file_size"`
}

// PDFServerInfoResult represents server information and usage guidance
type PDFServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	RasterDPI         float64    `json:"raster_dpi"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
