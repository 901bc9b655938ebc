// Package fs provides the filesystem primitives shared by the trash engine:
// exclusive file creation, rename with a cross-device fallback, and
// symlink-aware recursive sizing.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
)

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns an error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	// O_EXCL ensures the file doesn't exist and creates it atomically
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// Move moves a file or directory from src to dst.
// If the rename fails (typically a cross-device move) and fallbackCopy is
// true, it falls back to copy and delete.
func Move(src, dst string, fallbackCopy bool) error {
	// Ensure the destination directory exists
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Try rename(2) first
	if err := os.Rename(src, dst); err != nil {
		if !fallbackCopy {
			return fmt.Errorf("failed to move file: %w", err)
		}

		// Fallback to copy and delete
		if err := cp.Copy(src, dst); err != nil {
			return fmt.Errorf("failed to copy file: %w", err)
		}

		// If copy succeeds, remove the original
		if err := os.RemoveAll(src); err != nil {
			// If we can't remove the source, try to remove the copy
			_ = os.RemoveAll(dst)
			return fmt.Errorf("failed to remove source after copy: %w", err)
		}
	}

	return nil
}

// PathSize returns the size of path in bytes, recursing into directories.
// Symlinks count as their own link size (lstat) unless followSymlinks is
// set, in which case their targets are traversed.
func PathSize(path string, followSymlinks bool) (int64, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		if !followSymlinks {
			return fi.Size(), nil
		}
		fi, err = os.Stat(path)
		if err != nil {
			return 0, err
		}
	}

	if !fi.IsDir() {
		return fi.Size(), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		size, err := PathSize(filepath.Join(path, entry.Name()), followSymlinks)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// IsUnsafePath checks if the given path is unsafe to trash
func IsUnsafePath(path string) bool {
	// Check the original path before any normalization to preserve
	// inputs like "." or ".."
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true
	}

	// Clean the path to check for normalized root paths
	if filepath.Clean(path) == "/" {
		return true
	}

	// Check double slashes and similar patterns
	return strings.HasPrefix(path, "//")
}
