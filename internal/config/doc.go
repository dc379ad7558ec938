// Package config provides configuration management for csv-image-downloader.
//
// This package handles:
//   - Loading settings from JSON/YAML files with environment overrides
//   - Saving settings to JSON files
//   - Default configuration values
//   - Default column selection for a CSV header
//   - Conversion to http.Options and ioutils.ImageOptions for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get the defaults matching the product CSV exports:
//
//	settings := config.DefaultSettings()
//	// Sentinel "#N/A", identifier fields produkt_ean, EAN, ean
//	// Columns starting with "zdjecie" preselected as {produkt_ean}-<position>
//	// Failures logged to <destination>/errors.txt
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	// Uses defaults if the file doesn't exist
//
// Every key can be overridden from the environment with the CSVIMG_ prefix:
//
//	CSVIMG_SENTINEL="n/a" CSVIMG_HTTP_TIMEOUT=10 csvimg run ...
//
// # Saving Settings
//
//	settings.LogFileName = "failures.txt"
//	err := settings.Save("/path/to/config.json")
package config
