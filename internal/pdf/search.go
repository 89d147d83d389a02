package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search handles PDF discovery in scan directories
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a new PDF search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// SearchDirectory searches for PDF files in the specified directory,
// optionally filtering filenames with a fuzzy query.
func (s *Search) SearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	var pdfFiles []FileInfo

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Continue despite per-entry errors
		}

		if d.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPDFFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Entry vanished mid-walk
		}
		if s.validator.ValidateFileInfo(path, info) != nil {
			return nil
		}
		if query != "" && !matchesQuery(info.Name(), query) {
			return nil
		}

		pdfFiles = append(pdfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &PDFSearchDirectoryResult{
		Files:       pdfFiles,
		TotalCount:  len(pdfFiles),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// FindPDFsInDirectoryLimited finds PDF files in a directory, stopping after
// the given number of results.
func (s *Search) FindPDFsInDirectoryLimited(directory string, limit int) ([]FileInfo, error) {
	result, err := s.SearchDirectory(PDFSearchDirectoryRequest{Directory: directory})
	if err != nil {
		return nil, err
	}

	files := result.Files
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// isPDFFile checks whether a filename has a PDF extension
func isPDFFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

// matchesQuery applies fuzzy matching between a filename and a query: a
// substring hit, or all query characters appearing in order.
func matchesQuery(fileName, query string) bool {
	name := strings.ToLower(fileName)
	if strings.Contains(name, query) {
		return true
	}

	i := 0
	for _, ch := range name {
		if i < len(query) && byte(ch) == query[i] {
			i++
		}
	}
	return i == len(query)
}
