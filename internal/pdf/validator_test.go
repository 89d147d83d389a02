package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidator_ValidateFile(t *testing.T) {
	validator := NewValidator(1024 * 1024) // 1MB limit

	tests := []struct {
		name        string
		req         PDFValidateFileRequest
		expectValid bool
	}{
		{
			name:        "empty path",
			req:         PDFValidateFileRequest{Path: ""},
			expectValid: false,
		},
		{
			name:        "non-existent file",
			req:         PDFValidateFileRequest{Path: "/non/existent/file.pdf"},
			expectValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validator.ValidateFile(tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}
			if result.Valid != tt.expectValid {
				t.Errorf("expected Valid=%v but got %v", tt.expectValid, result.Valid)
			}
			if result.Path != tt.req.Path {
				t.Errorf("expected Path=%s but got %s", tt.req.Path, result.Path)
			}
			if !tt.expectValid && result.Message == "" {
				t.Error("expected validation message for invalid file")
			}
		})
	}
}

func TestValidator_ValidateFileInfo(t *testing.T) {
	validator := NewValidator(1024) // 1KB limit for easy size testing

	tempDir := t.TempDir()

	writeFile := func(name string, size int) string {
		path := filepath.Join(tempDir, name)
		if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		return path
	}

	tests := []struct {
		name      string
		path      string
		expectErr bool
	}{
		{"valid extension and size", writeFile("form.pdf", 512), false},
		{"uppercase extension", writeFile("FORM.PDF", 512), false},
		{"wrong extension", writeFile("notes.txt", 512), true},
		{"empty file", writeFile("empty.pdf", 0), true},
		{"oversized file", writeFile("big.pdf", 2048), true},
		{"directory", tempDir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatalf("stat failed: %v", err)
			}

			err = validator.ValidateFileInfo(tt.path, info)
			if tt.expectErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidator_IsValidPDF(t *testing.T) {
	validator := NewValidator(1024 * 1024)

	if validator.IsValidPDF("/non/existent/file.pdf") {
		t.Error("non-existent file should not be valid")
	}

	// A file with a PDF extension but garbage content must fail the parse.
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if validator.IsValidPDF(path) {
		t.Error("garbage content should not parse as a PDF")
	}
}
