package errors

import "fmt"

// SafePageWalk runs fn and converts a panic into a page-scoped scan error.
// The PDF parsing libraries panic on some malformed documents, so every
// per-page walk goes through this wrapper.
func SafePageWalk(page int, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPageError(ErrorTypePanic, page, fmt.Sprintf("recovered from panic: %v", r), nil)
		}
	}()

	return fn()
}
