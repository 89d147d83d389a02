package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Stats handles PDF statistics operations
type Stats struct {
	maxFileSize int64
	validator   *Validator
}

// NewStats creates a new PDF stats analyzer with the specified constraints
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// GetFileStats returns detailed statistics about a single PDF file
func (s *Stats) GetFileStats(req PDFStatsFileRequest) (*PDFStatsFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := s.validator.ValidateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	result := &PDFStatsFileResult{
		Path:         req.Path,
		Size:         fileInfo.Size(),
		Pages:        s.pageCount(req.Path),
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
	}

	// Info-dictionary metadata comes from a separate parse; failures there
	// leave the basic stats intact.
	if f, r, err := pdf.Open(req.Path); err == nil {
		s.extractMetadata(r, result)
		f.Close()
	}

	return result, nil
}

// pageCount reads the page count through pdfcpu, falling back to ledongthuc
// when pdfcpu rejects the file.
func (s *Stats) pageCount(path string) int {
	if count, err := api.PageCountFile(path); err == nil {
		return count
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}

// GetDirectoryStats returns statistics about PDF files in a directory
func (s *Stats) GetDirectoryStats(req PDFStatsDirectoryRequest) (*PDFStatsDirectoryResult, error) {
	directory := req.Directory
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var totalFiles int
	var totalSize int64
	var largestFile int64
	var largestFileName string
	var smallestFile int64 = int64(^uint64(0) >> 1) // Max int64
	var smallestFileName string

	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Continue despite errors
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			return nil
		}

		// Quick validation without opening the file
		if s.validator.ValidateFileInfo(path, info) != nil {
			return nil
		}

		totalFiles++
		totalSize += info.Size()

		if info.Size() > largestFile {
			largestFile = info.Size()
			largestFileName = info.Name()
		}
		if info.Size() < smallestFile {
			smallestFile = info.Size()
			smallestFileName = info.Name()
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	var averageSize int64
	if totalFiles > 0 {
		averageSize = totalSize / int64(totalFiles)
	} else {
		smallestFile = 0
	}

	return &PDFStatsDirectoryResult{
		Directory:        directory,
		TotalFiles:       totalFiles,
		TotalSize:        totalSize,
		LargestFileSize:  largestFile,
		LargestFileName:  largestFileName,
		SmallestFileSize: smallestFile,
		SmallestFileName: smallestFileName,
		AverageFileSize:  averageSize,
	}, nil
}

// extractMetadata safely extracts Info-dictionary metadata from a PDF reader
func (s *Stats) extractMetadata(r *pdf.Reader, result *PDFStatsFileResult) {
	defer func() {
		// The library panics on some malformed Info dictionaries; basic
		// stats survive without metadata.
		_ = recover()
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	fields := []struct {
		key string
		dst *string
	}{
		{"Title", &result.Title},
		{"Author", &result.Author},
		{"Subject", &result.Subject},
		{"Producer", &result.Producer},
		{"CreationDate", &result.CreatedDate},
	}
	for _, f := range fields {
		if v := info.Key(f.key); !v.IsNull() {
			if str := strings.TrimSpace(v.String()); str != "" {
				*f.dst = str
			}
		}
	}
}
