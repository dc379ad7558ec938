// Package ioutils provides file system, CSV and image processing utilities.
//
// This package contains functions for:
//   - Directory creation and append-mode log files
//   - Reading CSV files into model.Table / model.Preview
//   - Reading list files (one path per line)
//   - Image resizing and format conversion
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/images")
//
//	// Open the error log in append mode
//	log, err := ioutils.OpenAppend("/path/to/images/errors.txt")
//
// # CSV Files
//
//	table, err := ioutils.ReadTable("products.csv")
//	preview, err := ioutils.ReadPreview("products.csv", 3)
//
// # Image Processing
//
// The ImageService post-processes downloaded images:
//
//	svc := ioutils.NewImageService()
//	err := svc.ProcessFile(ctx, path, ioutils.ImageOptions{ConvertToJPEG: true})
package ioutils
