package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

// populateDir writes placeholder PDF files into a fresh temp directory.
func populateDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create subdirectory: %v", err)
		}
		if err := os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
	}
	return dir
}

func TestSearch_SearchDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	dir := populateDir(t, "f1040.pdf", "w2.pdf", "schedule_a.pdf", "readme.txt")

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{"no query lists all PDFs", "", 3},
		{"substring match", "1040", 1},
		{"subsequence match", "sch", 1},
		{"case insensitive", "W2", 1},
		{"no match", "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := search.SearchDirectory(PDFSearchDirectoryRequest{
				Directory: dir,
				Query:     tt.query,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.TotalCount != tt.wantCount {
				t.Errorf("TotalCount = %d, want %d", result.TotalCount, tt.wantCount)
			}
			if len(result.Files) != tt.wantCount {
				t.Errorf("len(Files) = %d, want %d", len(result.Files), tt.wantCount)
			}
		})
	}
}

func TestSearch_SearchDirectoryErrors(t *testing.T) {
	search := NewSearch(1024 * 1024)

	if _, err := search.SearchDirectory(PDFSearchDirectoryRequest{}); err == nil {
		t.Error("empty directory should error")
	}
	if _, err := search.SearchDirectory(PDFSearchDirectoryRequest{Directory: "/no/such/dir"}); err == nil {
		t.Error("missing directory should error")
	}
}

func TestSearch_SkipsHiddenDirectories(t *testing.T) {
	search := NewSearch(1024 * 1024)
	dir := populateDir(t, "visible.pdf", ".hidden/secret.pdf")

	result, err := search.SearchDirectory(PDFSearchDirectoryRequest{Directory: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1 (hidden directories skipped)", result.TotalCount)
	}
}

func TestSearch_FindPDFsInDirectoryLimited(t *testing.T) {
	search := NewSearch(1024 * 1024)
	dir := populateDir(t, "a.pdf", "b.pdf", "c.pdf")

	files, err := search.FindPDFsInDirectoryLimited(dir, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("len(files) = %d, want 2", len(files))
	}

	all, err := search.FindPDFsInDirectoryLimited(dir, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("limit 0 should return everything, got %d", len(all))
	}
}

func TestIsPDFFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"form.pdf", true},
		{"FORM.PDF", true},
		{"form.pdf.bak", false},
		{"form.txt", false},
		{"pdf", false},
	}

	for _, tt := range tests {
		if got := isPDFFile(tt.name); got != tt.want {
			t.Errorf("isPDFFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		fileName string
		query    string
		want     bool
	}{
		{"f1040_2023.pdf", "1040", true},
		{"f1040_2023.pdf", "f23", true}, // subsequence
		{"f1040_2023.pdf", "4321", false},
		{"schedule_a.pdf", "sca", true},
	}

	for _, tt := range tests {
		if got := matchesQuery(tt.fileName, tt.query); got != tt.want {
			t.Errorf("matchesQuery(%q, %q) = %v, want %v", tt.fileName, tt.query, got, tt.want)
		}
	}
}
