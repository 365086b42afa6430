// Package security validates file paths handed in on the command line.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedExtension is returned for workbook paths without an allowed extension.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// dangerousChars are shell metacharacters no workbook path needs.
var dangerousChars = []string{";", "&", "|", "$", "`", "<", ">", "!", "\n", "\r"}

// WorkbookExtensions are the spreadsheet formats dayline reads and writes.
var WorkbookExtensions = []string{".xlsx", ".xlsm"}

// ValidateFilePath cleans path, makes it absolute and resolves symlinks when
// the file exists.
func ValidateFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("file path cannot be empty")
	}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("file path contains forbidden character %q: %s", char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolved, nil
}

// ValidateWorkbookPath is ValidateFilePath plus an extension check.
func ValidateWorkbookPath(path string) (string, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(cleanPath))
	for _, allowed := range WorkbookExtensions {
		if ext == allowed {
			return cleanPath, nil
		}
	}
	return "", fmt.Errorf("%w %q: want one of %s", ErrUnsupportedExtension, ext, strings.Join(WorkbookExtensions, ", "))
}

// OpenWorkbook opens an existing workbook after validating its path.
func OpenWorkbook(path string) (*os.File, error) {
	cleanPath, err := ValidateWorkbookPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	return os.Open(cleanPath)
}

// CreateWorkbook creates or truncates a workbook after validating its path.
// The parent directory must exist.
func CreateWorkbook(path string) (*os.File, error) {
	cleanPath, err := ValidateWorkbookPath(path)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	// #nosec G304 - path is validated above
	return os.Create(cleanPath)
}
