package pdf

import (
	"fmt"

	"github.com/formlens/formlens/internal/pdf/security"
)

// Service handles PDF scan operations by orchestrating the per-concern
// components behind path validation.
type Service struct {
	maxFileSize   int64
	rasterDPI     float64
	validator     *Validator
	stats         *Stats
	search        *Search
	words         *Words
	layout        *Layout
	pathValidator *security.PathValidator
}

// NewService creates a new PDF service with all components
func NewService(maxFileSize int64, configuredDirectory string, rasterDPI float64, maxScanPages int) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		rasterDPI:     rasterDPI,
		validator:     NewValidator(maxFileSize),
		stats:         NewStats(maxFileSize),
		search:        NewSearch(maxFileSize),
		words:         NewWords(maxFileSize),
		layout:        NewLayout(maxFileSize, rasterDPI, maxScanPages),
		pathValidator: pathValidator,
	}, nil
}

// PDFScanWords extracts word records with font metadata from a PDF file
func (s *Service) PDFScanWords(req PDFScanWordsRequest) (*PDFScanWordsResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.words.ScanFile(req)
}

// PDFScanLayout runs visual layout analysis over rendered pages of a PDF file
func (s *Service) PDFScanLayout(req PDFScanLayoutRequest) (*PDFScanLayoutResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.layout.ScanFile(req)
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// PDFStatsFile returns detailed statistics about a single PDF file
func (s *Service) PDFStatsFile(req PDFStatsFileRequest) (*PDFStatsFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(req)
}

// PDFSearchDirectory searches for PDF files in a directory
func (s *Service) PDFSearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetWorkspaceDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// PDFStatsDirectory returns statistics about PDF files in a directory
func (s *Service) PDFStatsDirectory(req PDFStatsDirectoryRequest) (*PDFStatsDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetWorkspaceDirectory()
	}
	return s.stats.GetDirectoryStats(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(filePath string) bool {
	return s.validator.IsValidPDF(filePath)
}

// ValidateConfiguration validates the service configuration
func (s *Service) ValidateConfiguration() error {
	if s.maxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be greater than 0")
	}
	if s.maxFileSize > 1024*1024*1024 { // 1GB limit
		return fmt.Errorf("maxFileSize cannot exceed 1GB")
	}
	return nil
}
