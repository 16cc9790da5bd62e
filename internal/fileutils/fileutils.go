// Package fileutils provides the file operations shared by the compile and
// check commands.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"arac/ar-rollforward/internal/models"
)

// InputExtensions are the extract formats picked up from a directory.
var InputExtensions = []string{".csv", ".xlsx"}

// OutputFilePrefix starts every default report name. Directory inputs skip
// files carrying it so a report written next to its extracts is never read
// back as one.
const OutputFilePrefix = "output_file "

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ListInputFiles expands each input into extract files. Files are returned as
// given; directories contribute every CSV or xlsx file beneath them. Hidden
// files, spreadsheet lock files ("~$name.xlsx"), default report names and any
// path in exclude are skipped during the walk. The result is sorted and free
// of duplicates.
func ListInputFiles(inputs []string, exclude ...string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, path := range exclude {
		if path != "" {
			skip[absPath(path)] = true
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", input, err)
		}
		if !info.IsDir() {
			add(input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != input && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, OutputFilePrefix) {
				return nil
			}
			if skip[absPath(path)] {
				return nil
			}
			if IsInputFile(name) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// IsInputFile reports whether name has an extract extension.
func IsInputFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range InputExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DefaultOutputName builds "<dir>/output_file <YYYY-MM-DD HHMM>.<ext>".
func DefaultOutputName(dir, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", OutputFilePrefix, now.Format("2006-01-02 1504"), ext))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// WriteAtomic calls write with a temporary path next to filePath and renames
// the result into place only when write succeeds. On failure nothing is left
// at filePath.
func WriteAtomic(filePath string, write func(tmpPath string) error) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".arac-*"+filepath.Ext(filePath))
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := write(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, models.PermissionReportFile); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}
