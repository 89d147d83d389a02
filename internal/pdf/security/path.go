// Package security confines every file a scan touches to the configured
// workspace directory.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator checks scan paths against the workspace root. Symlinks are
// resolved so a link inside the workspace cannot reach files outside it.
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at the given workspace
// directory. The directory does not have to exist yet; config validation
// creates it on first run.
func NewPathValidator(root string) (*PathValidator, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace directory cannot be empty")
	}
	return &PathValidator{root: root}, nil
}

// GetWorkspaceDirectory returns the workspace root
func (v *PathValidator) GetWorkspaceDirectory() string {
	return v.root
}

// ValidatePath rejects paths that resolve outside the workspace. While the
// workspace does not exist yet, any path passes.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if v.rootMissing() {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	within, err := v.IsPathWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside the workspace: %s", path)
	}
	return nil
}

// IsPathWithinDirectory reports whether the path stays inside the workspace.
// Both the literal path and its symlink target are checked, against both the
// literal and resolved workspace root, so neither side of a link can smuggle
// a file across the boundary.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	if v.rootMissing() {
		return true, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absRoot, err := filepath.Abs(v.root)
	if err != nil {
		return false, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanRoot := filepath.Clean(absRoot)

	realPath := resolveSymlink(cleanPath)
	realRoot := cleanRoot
	if resolved, err := filepath.EvalSymlinks(cleanRoot); err == nil {
		realRoot = resolved
	}

	pathOK := underDir(cleanPath, cleanRoot) || underDir(cleanPath, realRoot)
	realOK := underDir(realPath, cleanRoot) || underDir(realPath, realRoot)
	return pathOK && realOK, nil
}

// NormalizePath resolves a path to absolute form, anchoring relative paths at
// the workspace root, and validates the result.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ValidateDirectory checks that a directory path is inside the workspace and,
// when it exists, actually is a directory. A directory that does not exist
// yet passes, matching how the workspace itself is created lazily.
func (v *PathValidator) ValidateDirectory(dirPath string) error {
	if err := v.ValidatePath(dirPath); err != nil {
		return err
	}
	if v.rootMissing() {
		return nil
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return nil
}

// SanitizePath strips null bytes, which some PDF tools pass through from
// malformed name objects, then normalizes and validates the remainder.
func (v *PathValidator) SanitizePath(path string) (string, error) {
	return v.NormalizePath(strings.ReplaceAll(path, "\x00", ""))
}

func (v *PathValidator) rootMissing() bool {
	_, err := os.Stat(v.root)
	return os.IsNotExist(err)
}

// resolveSymlink evaluates path when it is a symlink, falling back to the
// literal path when it is not or cannot be resolved.
func resolveSymlink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// underDir reports whether path equals dir or sits beneath it.
func underDir(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
