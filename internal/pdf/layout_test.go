package pdf

import (
	"reflect"
	"testing"

	"github.com/formlens/formlens/internal/raster"
)

func TestLayout_SelectPages(t *testing.T) {
	layout := NewLayout(1024*1024, 150, 5)

	tests := []struct {
		name      string
		requested int
		total     int
		want      []int
		wantErr   bool
	}{
		{"single page", 3, 10, []int{3}, false},
		{"first page", 1, 1, []int{1}, false},
		{"page out of range", 11, 10, nil, true},
		{"negative page", -1, 10, nil, true},
		{"no pages", 0, 0, nil, true},
		{"all pages under limit", 0, 3, []int{1, 2, 3}, false},
		{"capped at limit", 0, 12, []int{1, 2, 3, 4, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := layout.selectPages(tt.requested, tt.total)
			if (err != nil) != tt.wantErr {
				t.Fatalf("selectPages(%d, %d) error = %v, wantErr %v",
					tt.requested, tt.total, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectPages(%d, %d) = %v, want %v",
					tt.requested, tt.total, got, tt.want)
			}
		})
	}
}

func TestLayout_TruncationWarning(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		total     int
		scanned   int
		want      bool
	}{
		{"full scan truncated", 0, 12, 5, true},
		{"full scan complete", 0, 3, 3, false},
		{"single page request", 3, 12, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := truncationWarning(tt.requested, tt.total, tt.scanned)
			if (warn != nil) != tt.want {
				t.Fatalf("truncationWarning(%d, %d, %d) = %v, want warning %v",
					tt.requested, tt.total, tt.scanned, warn, tt.want)
			}
			if warn != nil && warn.Error() != "[TRUNCATED_SCAN] scanned first 5 of 12 pages; pass a page number to scan the rest" {
				t.Errorf("unexpected warning text: %q", warn.Error())
			}
		})
	}
}

func TestNewLayout_Defaults(t *testing.T) {
	layout := NewLayout(1024*1024, 0, 0)

	if layout.defaultDPI != raster.DefaultDPI {
		t.Errorf("defaultDPI = %v, want %v", layout.defaultDPI, raster.DefaultDPI)
	}
	if layout.maxScanPages != 1 {
		t.Errorf("maxScanPages = %d, want 1", layout.maxScanPages)
	}
}

func TestLayout_ScanFileErrors(t *testing.T) {
	layout := NewLayout(1024*1024, 150, 5)

	if _, err := layout.ScanFile(PDFScanLayoutRequest{}); err == nil {
		t.Error("empty path should error")
	}
	if _, err := layout.ScanFile(PDFScanLayoutRequest{Path: "/no/such/file.pdf"}); err == nil {
		t.Error("missing file should error")
	}
}
