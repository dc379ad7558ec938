// Package ioutils provides file system utilities for the csv-image-downloader.
//
// This package contains functions for:
//   - Directory creation
//   - Append-mode log files
//   - Line-oriented list files
//   - CSV table parsing
package ioutils

import (
	"bufio"
	"os"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/images/2024/catalog")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// OpenAppend opens a file for appending, creating it with mode 0644 if needed.
//
// The error log of a run is opened this way so that consecutive runs into the
// same destination keep adding to one errors.txt.
func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// ReadLines returns the trimmed, non-empty lines of a text file.
//
// Example:
//
//	// files.txt:
//	//   catalog-a.csv
//	//
//	//   catalog-b.csv
//	lines, err := ReadLines("files.txt") // ["catalog-a.csv", "catalog-b.csv"]
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
